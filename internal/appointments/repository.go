package appointments

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("appointment not found")

// Repository defines persistence operations for appointments. The
// application never deletes an appointment, so no Delete is exposed.
type Repository interface {
	Create(ctx context.Context, a *Appointment) (*Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]*Appointment, error)
	ListAll(ctx context.Context) ([]*Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateAssignment(ctx context.Context, id, assignedMember, notes string) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, a *Appointment) (*Appointment, error) {
	now := time.Now().UTC()
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Appointment, error) {
	var a Appointment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByUser returns the owner's appointments. No sort is requested from the
// store; ordering happens in the service to avoid needing a composite index.
func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]*Appointment, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]*Appointment, error) {
	return r.list(ctx, bson.M{})
}

func (r *MongoRepository) list(ctx context.Context, filter bson.M) ([]*Appointment, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*Appointment{}
	for cur.Next(ctx) {
		var a Appointment
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, cur.Err()
}

func (r *MongoRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) UpdateAssignment(ctx context.Context, id, assignedMember, notes string) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"assignedMember": assignedMember, "notes": notes, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
