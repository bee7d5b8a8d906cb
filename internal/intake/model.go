package intake

import "time"

// Inquiry is a contact form submission. Append-only.
type Inquiry struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string    `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string    `bson:"message" json:"message"`
	Status    string    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// PatientForm is the metadata record for an uploaded patient document.
type PatientForm struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	PatientName  string    `bson:"patientName" json:"patientName"`
	DocumentType string    `bson:"documentType" json:"documentType"`
	UploadedBy   *string   `bson:"uploadedBy" json:"uploadedBy"`
	FileName     string    `bson:"fileName" json:"fileName"`
	FileURL      string    `bson:"fileUrl" json:"fileUrl"`
	StoragePath  string    `bson:"storagePath" json:"storagePath"`
	Status       string    `bson:"status" json:"status"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// NewsletterSubscriber is one email on the newsletter list.
type NewsletterSubscriber struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	SubscribedAt time.Time `bson:"subscribedAt" json:"subscribedAt"`
}
