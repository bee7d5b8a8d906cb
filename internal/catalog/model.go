package catalog

import "time"

const (
	CategoryClinical   = "Clinical"
	CategoryCoaching   = "Coaching"
	CategoryAssessment = "Assessment"
	CategoryOther      = "Other"
)

// Service is one offering on the practice's services page.
type Service struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Duration    string    `bson:"duration,omitempty" json:"duration,omitempty"`
	Price       string    `bson:"price,omitempty" json:"price,omitempty"`
	Category    string    `bson:"category" json:"category"`
	Features    []string  `bson:"features,omitempty" json:"features,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryClinical, CategoryCoaching, CategoryAssessment, CategoryOther:
		return true
	}
	return false
}
