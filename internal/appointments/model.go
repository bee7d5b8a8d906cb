package appointments

import "time"

// Appointment status values. Every appointment starts as pending; admins
// move it through the table below.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Appointment represents one scheduling request made through the booking flow.
type Appointment struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"userId" json:"userId"`
	UserEmail      string    `bson:"userEmail" json:"userEmail"`
	ServiceType    string    `bson:"serviceType" json:"serviceType"`
	Date           string    `bson:"date" json:"date"` // calendar date, e.g. "2026-09-14"
	Time           string    `bson:"time" json:"time"`
	Status         string    `bson:"status" json:"status"`
	DocumentURL    string    `bson:"documentUrl,omitempty" json:"documentUrl,omitempty"`
	DocumentKey    string    `bson:"documentKey,omitempty" json:"-"`
	Notes          string    `bson:"notes,omitempty" json:"notes,omitempty"`
	AssignedMember string    `bson:"assignedMember,omitempty" json:"assignedMember,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ValidStatus reports whether s is one of the four known status literals.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// transitions is the allowed-transition table. completed and cancelled are
// terminal; re-setting the current value is always permitted as a no-op.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an appointment may move from one status to
// another.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}
