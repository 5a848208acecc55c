// internal/app/store/members/memberstore.go
package memberstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding member documents.
const CollectionName = "members"

// MongoStore provides access to the members collection.
type MongoStore struct {
	c *mongo.Collection
}

// New creates a MongoDB-backed member store.
func New(db *mongo.Database) *MongoStore {
	return &MongoStore{c: db.Collection(CollectionName)}
}

func (s *MongoStore) Insert(ctx context.Context, m models.Member) (models.Member, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	m.ID = primitive.NewObjectID()
	m.NameCI = text.Fold(m.Name)
	m.Normalize()
	// Mongo dates carry millisecond precision; match what a read returns.
	m.DateOfBirth = m.DateOfBirth.Truncate(time.Millisecond)
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Member{}, fmt.Errorf("insert member: %w", err)
	}
	return m, nil
}

func (s *MongoStore) GetByID(ctx context.Context, id primitive.ObjectID) (models.Member, error) {
	var m models.Member
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Member{}, ErrNotFound
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("get member %s: %w", id.Hex(), err)
	}
	m.Normalize()
	return m, nil
}

// List returns all members sorted by _id, which follows insertion order for
// ObjectIDs generated by this process.
func (s *MongoStore) List(ctx context.Context) ([]models.Member, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.Member{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode members: %w", err)
	}
	if out == nil {
		out = []models.Member{}
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

func (s *MongoStore) UpdateByID(ctx context.Context, id primitive.ObjectID, patch models.MemberPatch) (models.Member, error) {
	if patch.IsEmpty() {
		return s.GetByID(ctx, id)
	}

	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
		set["name_ci"] = text.Fold(*patch.Name)
	}
	if patch.DateOfBirth != nil {
		set["date_of_birth"] = patch.DateOfBirth.UTC()
	}
	if patch.MemberNumber != nil {
		set["member_number"] = *patch.MemberNumber
	}
	if patch.Interests != nil {
		interests := *patch.Interests
		if interests == nil {
			interests = []string{}
		}
		set["interests"] = interests
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.Member
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Member{}, ErrNotFound
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("update member %s: %w", id.Hex(), err)
	}
	m.Normalize()
	return m, nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, id primitive.ObjectID) (models.Member, error) {
	var m models.Member
	err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Member{}, ErrNotFound
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("delete member %s: %w", id.Hex(), err)
	}
	m.Normalize()
	return m, nil
}

// Count returns the number of stored members.
func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
