package practitioners

import "time"

// AvailabilitySlot is one row of a practitioner's weekly schedule.
type AvailabilitySlot struct {
	Day       string `bson:"day" json:"day"`
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
	Available bool   `bson:"available" json:"available"`
}

type Practitioner struct {
	ID           string             `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Title        string             `bson:"title" json:"title"`
	Bio          string             `bson:"bio" json:"bio"`
	Summary      string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Credentials  string             `bson:"credentials,omitempty" json:"credentials,omitempty"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
	PhotoURL     string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	PhotoKey     string             `bson:"photoKey,omitempty" json:"-"`
	Specialties  []string           `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Availability []AvailabilitySlot `bson:"availability,omitempty" json:"availability,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
