package db

import "time"

// Model replaces gorm.Model for content tables. Content rows are removed
// permanently, so there is no DeletedAt column.
type Model struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntityID returns the primary key.
func (m Model) EntityID() uint {
	return m.ID
}

// PublishStatus is the visibility state of a hero section or hero slide.
type PublishStatus string

const (
	StatusDraft     PublishStatus = "draft"
	StatusPublished PublishStatus = "published"
)

// Valid reports whether s is one of the known states.
func (s PublishStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}
