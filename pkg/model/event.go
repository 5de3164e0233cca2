package model

import "time"

// Event domain object defining a wedding event (ceremony, dinner, party...).
// Slug is the externally visible event id and must match ^[a-zA-Z0-9_-]+$.
type Event struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Slug        string    `gorm:"index;unique" json:"eventId"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Description *string   `json:"description"`
}
