package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	UserID    uuid.UUID `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func NewComment(projectID, userID uuid.UUID, text string) *Comment {
	return &Comment{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Now().UTC(),
	}
}

func (c *Comment) Validate() error {
	if c.Text == "" {
		return &ValidationError{Field: "text", Message: "Comment text is required"}
	}
	return nil
}
