package model

import "time"

// Valid attendance responses. The absence of an attendance row is
// semantically equivalent to ResponseNoAnswer.
const (
	ResponseYes      = "yes"
	ResponseNo       = "no"
	ResponseNoAnswer = "no_answer"
)

// IsValidResponse reports whether response is one of the three accepted
// attendance values.
func IsValidResponse(response string) bool {
	return response == ResponseYes || response == ResponseNo || response == ResponseNoAnswer
}

// Attendance domain object recording a guest's response to an event. Rows are
// only ever written through an upsert keyed on (event_id, guest_id).
type Attendance struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	EventID   uint      `gorm:"uniqueIndex:idx_event_guest" json:"eventId"`
	GuestID   uint      `gorm:"uniqueIndex:idx_event_guest" json:"guestId"`
	Response  string    `json:"response"`
	Notes     *string   `json:"notes"`
}

func (Attendance) TableName() string {
	return "event_attendees"
}
