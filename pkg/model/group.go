package model

import "time"

// Group domain object defining a household of guests. The password is a
// shared, human-memorable login secret for the guest site; it is stored as
// plaintext by design, there is no per-guest credential.
type Group struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"index;unique" json:"name"`
	Password  string    `json:"-"`
	Misc      *string   `json:"misc"`
	Guests    []Guest   `gorm:"foreignKey:GroupID" json:"guests,omitempty"`
}
