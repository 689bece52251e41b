package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewUserNormalizesEmail(t *testing.T) {
	user := NewUser("  Alice@Example.COM ", " Alice ")

	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Alice", NewUser("a@example.com", "Alice").DisplayName())
	assert.Equal(t, "a@example.com", NewUser("a@example.com", "").DisplayName())
}

func TestUserValidate(t *testing.T) {
	user := NewUser("not-an-email", "")
	user.PasswordHash = "hash"
	assert.Error(t, user.Validate())

	user = NewUser("a@example.com", "")
	assert.Error(t, user.Validate(), "password hash is required")

	user.PasswordHash = "hash"
	assert.NoError(t, user.Validate())
}

func TestUpdateVisibility(t *testing.T) {
	public := NewUpdate(uuid.New(), "We shipped!", false)
	private := NewUpdate(uuid.New(), "Backer survey", true)

	assert.True(t, public.VisibleTo(false))
	assert.True(t, public.VisibleTo(true))
	assert.False(t, private.VisibleTo(false))
	assert.True(t, private.VisibleTo(true))
}

func TestCommentAndUpdateValidate(t *testing.T) {
	assert.Error(t, NewComment(uuid.New(), uuid.New(), "   ").Validate())
	assert.NoError(t, NewComment(uuid.New(), uuid.New(), "Nice").Validate())
	assert.Error(t, NewUpdate(uuid.New(), "", false).Validate())
}
