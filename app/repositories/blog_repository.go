package repositories

import (
	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/pkg/orm"
)

// BlogRepository handles database operations for blog posts.
type BlogRepository struct{}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{}
}

// Published returns published posts, newest first.
func (r *BlogRepository) Published(page, limit int) ([]models.BlogPost, orm.Pagination, error) {
	var posts []models.BlogPost
	pagination, err := orm.DB().
		Model(&models.BlogPost{}).
		Where("published_at IS NOT NULL").
		Order("published_at desc").
		GetWithPagination(&posts, page, limit)
	return posts, pagination, err
}

// All returns every post for the back-office, drafts included.
func (r *BlogRepository) All(page, limit int) ([]models.BlogPost, orm.Pagination, error) {
	var posts []models.BlogPost
	pagination, err := orm.DB().
		Model(&models.BlogPost{}).
		Order("id desc").
		GetWithPagination(&posts, page, limit)
	return posts, pagination, err
}

// FindBySlug looks up one post.
func (r *BlogRepository) FindBySlug(slug string) (models.BlogPost, error) {
	var post models.BlogPost
	err := orm.DB().Model(&models.BlogPost{}).Where("slug = ?", slug).First(&post)
	return post, err
}

// FindByID looks up one post by primary key.
func (r *BlogRepository) FindByID(id uint) (models.BlogPost, error) {
	var post models.BlogPost
	err := orm.DB().Model(&models.BlogPost{}).Where("id = ?", id).First(&post)
	return post, err
}

// Create persists a new post.
func (r *BlogRepository) Create(post *models.BlogPost) error {
	return orm.DB().Create(post)
}

// Update persists changes to a post.
func (r *BlogRepository) Update(post *models.BlogPost) error {
	return orm.DB().Save(post)
}

// Delete soft-deletes a post.
func (r *BlogRepository) Delete(post *models.BlogPost) error {
	return orm.DB().Delete(post)
}
