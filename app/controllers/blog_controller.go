package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/pkg/bind"
	"github.com/lumicea/lumicea/pkg/middleware"
	"github.com/lumicea/lumicea/pkg/response"
)

// BlogController serves published posts publicly and full CRUD to admins.
type BlogController struct {
	posts *repositories.BlogRepository
}

func NewBlogController(posts *repositories.BlogRepository) *BlogController {
	return &BlogController{posts: posts}
}

// List returns published posts, newest first.
func (c *BlogController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	posts, pagination, err := c.posts.Published(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load posts")
		return
	}
	response.Paginated(w, posts, pagination)
}

// Show returns one published post by slug.
func (c *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := c.posts.FindBySlug(chi.URLParam(r, "slug"))
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && post.PublishedAt == nil) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load post")
		return
	}
	response.Success(w, post)
}

// AdminList returns every post including drafts.
func (c *BlogController) AdminList(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	posts, pagination, err := c.posts.All(page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load posts")
		return
	}
	response.Paginated(w, posts, pagination)
}

type blogPayload struct {
	Title     string `json:"title"     validate:"required,max=255"`
	Slug      string `json:"slug"      validate:"required,alpha_dash,max=255"`
	Body      string `json:"body"      validate:"required"`
	Published bool   `json:"published"`
}

// Create persists a new post, stamped with the acting admin as author.
func (c *BlogController) Create(w http.ResponseWriter, r *http.Request) {
	var body blogPayload
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	post := models.BlogPost{
		Title:    body.Title,
		Slug:     body.Slug,
		Body:     body.Body,
		AuthorID: middleware.UserIDFromCtx(r.Context()),
	}
	if body.Published {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := c.posts.Create(&post); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not create post")
		return
	}
	response.Created(w, post)
}

// Update applies changes to a post. Publishing sets the timestamp once;
// unpublishing clears it.
func (c *BlogController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := c.posts.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load post")
		return
	}

	var body blogPayload
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	post.Title = body.Title
	post.Slug = body.Slug
	post.Body = body.Body
	switch {
	case body.Published && post.PublishedAt == nil:
		now := time.Now()
		post.PublishedAt = &now
	case !body.Published:
		post.PublishedAt = nil
	}

	if err := c.posts.Update(&post); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not update post")
		return
	}
	response.Success(w, post)
}

// Delete soft-deletes a post.
func (c *BlogController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := c.posts.FindByID(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load post")
		return
	}

	if err := c.posts.Delete(&post); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not delete post")
		return
	}
	response.Success(w, map[string]string{"deleted": post.Slug})
}
