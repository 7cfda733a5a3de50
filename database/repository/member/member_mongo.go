package memberRepo

import (
	"context"
	"fmt"
	"time"

	"fitbook/database"
	"fitbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMemberRepo implements MemberRepository using MongoDB.
type MongoMemberRepo struct {
	coll *mongo.Collection
}

// NewMongoMemberRepo creates a MemberRepository backed by the "members"
// collection.
func NewMongoMemberRepo() MemberRepository {
	repo := &MongoMemberRepo{coll: database.Collection("members")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("member repo: failed to ensure indexes: %v\n", err)
	}
	return repo
}

func (r *MongoMemberRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MongoMemberRepo) Create(member *models.Member) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, member); err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}
	return nil
}

func (r *MongoMemberRepo) GetByID(id string) (*models.Member, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var member models.Member
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&member); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to fetch member %s: %w", id, err)
	}
	return &member, nil
}

func (r *MongoMemberRepo) GetByEmail(email string) (*models.Member, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var member models.Member
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&member); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to fetch member by email: %w", err)
	}
	return &member, nil
}

func (r *MongoMemberRepo) UpsertDevice(memberID string, device models.MemberDevice) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Replace any existing entry for this device, then push the new one.
	pull := bson.M{"$pull": bson.M{"devices": bson.M{"device_id": device.DeviceID}}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": memberID}, pull); err != nil {
		return fmt.Errorf("failed to clear previous device entry: %w", err)
	}
	push := bson.M{"$push": bson.M{"devices": device}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": memberID}, push)
	if err != nil {
		return fmt.Errorf("failed to record device for member %s: %w", memberID, err)
	}
	if result.MatchedCount == 0 {
		return ErrMemberNotFound
	}
	return nil
}
