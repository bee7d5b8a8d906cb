package blog

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("post not found")

type Repository interface {
	Create(ctx context.Context, p *Post) (*Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	// ListPublished returns published posts only, newest publication first.
	ListPublished(ctx context.Context) ([]*Post, error)
	// ListAll returns every post for the admin view, newest creation first.
	ListAll(ctx context.Context) ([]*Post, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	// SlugInUse reports whether another post (excluding excludeID) already
	// owns the slug.
	SlugInUse(ctx context.Context, slug, excludeID string) (bool, error)
	CountPublished(ctx context.Context) (int64, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Create(ctx context.Context, p *Post) (*Post, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID().Hex()
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Post, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M) (*Post, error) {
	var p Post
	err := r.col.FindOne(ctx, filter).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) ListPublished(ctx context.Context) ([]*Post, error) {
	return r.list(ctx, bson.M{"published": true}, bson.D{{Key: "publishedAt", Value: -1}})
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]*Post, error) {
	return r.list(ctx, bson.M{}, bson.D{{Key: "createdAt", Value: -1}})
}

func (r *MongoRepository) list(ctx context.Context, filter bson.M, sort bson.D) ([]*Post, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	list := []*Post{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	unset := bson.M{}
	for k, v := range fields {
		if v == nil {
			unset[k] = ""
			continue
		}
		set[k] = v
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoRepository) SlugInUse(ctx context.Context, slug, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *MongoRepository) CountPublished(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"published": true})
}
