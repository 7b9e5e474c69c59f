package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lumicea/lumicea/app/models"
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(models.RoleAdmin))
	assert.False(t, IsAdmin(models.RoleCustomer))
	assert.False(t, IsAdmin(""))
	assert.False(t, IsAdmin("Admin")) // roles are case sensitive
}
