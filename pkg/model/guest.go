package model

import (
	"strings"
	"time"
)

// Guest domain object defining an invited guest. Contact fields are nullable
// on purpose: create and update always write the full contact sub-record, so
// an omitted field is persisted as null rather than left unchanged.
type Guest struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	FirstName         string    `json:"firstName"`
	LastName          string    `gorm:"index" json:"lastName"`
	Source            string    `json:"source"`
	Phone             *string   `json:"phone"`
	Email             *string   `json:"email"`
	Address           *string   `json:"address"`
	Misc              *string   `json:"misc"`
	PreferredLanguage *string   `json:"preferredLanguage"`
	GroupID           *uint     `gorm:"index" json:"groupId"`
	PlusOneOf         *uint     `gorm:"index" json:"plusOneOf"`
}

// IsPlusOne reports whether the guest accompanies another guest.
func (g *Guest) IsPlusOne() bool {
	return g.PlusOneOf != nil
}

// IsGrouped reports whether the guest already belongs to a group.
func (g *Guest) IsGrouped() bool {
	return g.GroupID != nil
}

// FullName returns "First Last", tolerating empty parts.
func (g *Guest) FullName() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

// HasContactDetails reports whether the guest carries a phone number or email
// address. Used when electing a group's principal guest.
func (g *Guest) HasContactDetails() bool {
	return (g.Phone != nil && *g.Phone != "") || (g.Email != nil && *g.Email != "")
}
