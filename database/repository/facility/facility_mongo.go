package facilityRepo

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

// MongoFacilityRepo implements FacilityRepository using MongoDB.
type MongoFacilityRepo struct {
	coll *mongo.Collection
}

// NewMongoFacilityRepo creates a new FacilityRepository backed by the
// "facilities" collection.
func NewMongoFacilityRepo() FacilityRepository {
	repo := &MongoFacilityRepo{coll: database.Collection("facilities")}
	if err := repo.ensureIndexes(); err != nil {
		// Index creation is best-effort at startup; queries still work without.
		fmt.Printf("facility repo: failed to ensure indexes: %v\n", err)
	}
	return repo
}

func (r *MongoFacilityRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "active", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MongoFacilityRepo) GetByID(id string) (*models.Facility, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var facility models.Facility
	filter := bson.M{"id": id}
	if err := r.coll.FindOne(ctx, filter).Decode(&facility); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrFacilityNotFound
		}
		return nil, fmt.Errorf("failed to fetch facility with id %s: %w", id, err)
	}
	return &facility, nil
}

func (r *MongoFacilityRepo) List(category string) ([]models.Facility, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{"active": true}
	if category != "" {
		filter["category"] = category
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer cursor.Close(ctx)

	var facilities []models.Facility
	for cursor.Next(ctx) {
		var f models.Facility
		if err := cursor.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode facility: %w", err)
		}
		facilities = append(facilities, f)
	}
	return facilities, nil
}

func (r *MongoFacilityRepo) Create(facility *models.Facility) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, facility); err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}
	return nil
}

func (r *MongoFacilityRepo) Update(facility *models.Facility) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": facility.ID}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": facility})
	if err != nil {
		return fmt.Errorf("failed to update facility with id %s: %w", facility.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrFacilityNotFound
	}
	return nil
}

func (r *MongoFacilityRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete facility with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrFacilityNotFound
	}
	return nil
}
