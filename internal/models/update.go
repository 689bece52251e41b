package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Update is a progress note the owner posts on a project
type Update struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Text        string    `json:"text"`
	BackersOnly bool      `json:"backers_only"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewUpdate(projectID uuid.UUID, text string, backersOnly bool) *Update {
	return &Update{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Text:        strings.TrimSpace(text),
		BackersOnly: backersOnly,
		CreatedAt:   time.Now().UTC(),
	}
}

func (u *Update) Validate() error {
	if u.Text == "" {
		return &ValidationError{Field: "text", Message: "Update text is required"}
	}
	return nil
}

// VisibleTo reports whether a reader may see the update; privileged readers are
// the project owner and its backers.
func (u *Update) VisibleTo(privileged bool) bool {
	return !u.BackersOnly || privileged
}
