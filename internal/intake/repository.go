package intake

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists the three append-only intake collections.
type Repository interface {
	CreateInquiry(ctx context.Context, inq *Inquiry) (*Inquiry, error)
	CreatePatientForm(ctx context.Context, pf *PatientForm) (*PatientForm, error)
	// Subscribe records the email; re-subscribing the same address is a
	// no-op and reports created=false.
	Subscribe(ctx context.Context, email string) (created bool, err error)
}

type MongoRepository struct {
	inquiries   *mongo.Collection
	forms       *mongo.Collection
	subscribers *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		inquiries:   db.Collection("inquiries"),
		forms:       db.Collection("patient_forms"),
		subscribers: db.Collection("newsletter_subscribers"),
	}
}

// EnsureIndexes creates the unique subscriber email index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.subscribers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoRepository) CreateInquiry(ctx context.Context, inq *Inquiry) (*Inquiry, error) {
	inq.ID = primitive.NewObjectID().Hex()
	inq.CreatedAt = time.Now().UTC()
	if _, err := r.inquiries.InsertOne(ctx, inq); err != nil {
		return nil, err
	}
	return inq, nil
}

func (r *MongoRepository) CreatePatientForm(ctx context.Context, pf *PatientForm) (*PatientForm, error) {
	pf.ID = primitive.NewObjectID().Hex()
	pf.CreatedAt = time.Now().UTC()
	if _, err := r.forms.InsertOne(ctx, pf); err != nil {
		return nil, err
	}
	return pf, nil
}

func (r *MongoRepository) Subscribe(ctx context.Context, email string) (bool, error) {
	sub := &NewsletterSubscriber{
		ID:           primitive.NewObjectID().Hex(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		SubscribedAt: time.Now().UTC(),
	}
	_, err := r.subscribers.InsertOne(ctx, sub)
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
