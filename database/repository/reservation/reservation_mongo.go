package reservationRepo

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

// MongoReservationRepo implements ReservationRepository using MongoDB.
type MongoReservationRepo struct {
	coll *mongo.Collection
}

// NewMongoReservationRepo creates a ReservationRepository backed by the
// "reservations" collection.
func NewMongoReservationRepo() ReservationRepository {
	repo := &MongoReservationRepo{coll: database.Collection("reservations")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("reservation repo: failed to ensure indexes: %v\n", err)
	}
	return repo
}

func (r *MongoReservationRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "facility_id", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// activeFilter matches reservations that still block their hours.
func activeFilter(facilityID, date string) bson.M {
	return bson.M{
		"facility_id": facilityID,
		"date":        date,
		"status":      bson.M{"$ne": models.ReservationStatusCancelled},
	}
}

func (r *MongoReservationRepo) OccupiedIntervals(ctx context.Context, facilityID, date string) ([]models.OccupiedInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetProjection(bson.M{"resv_start_time": 1, "resv_end_time": 1}).
		SetSort(bson.D{{Key: "resv_start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, activeFilter(facilityID, date), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query occupied intervals for facility %s on %s: %w", facilityID, date, err)
	}
	defer cursor.Close(ctx)

	var intervals []models.OccupiedInterval
	for cursor.Next(ctx) {
		var iv models.OccupiedInterval
		if err := cursor.Decode(&iv); err != nil {
			return nil, fmt.Errorf("failed to decode occupied interval: %w", err)
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

// Create inserts the reservation and then re-checks the window against the
// live collection. If more than one active reservation covers any part of the
// window, the earliest insert wins and the loser's document is removed. The
// pre-insert count catches the common case cheaply; the post-insert recount is
// what makes the answer authoritative under concurrent submissions.
func (r *MongoReservationRepo) Create(ctx context.Context, resv *models.Reservation) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	overlap := activeFilter(resv.FacilityID, resv.Date)
	overlap["resv_start_time"] = bson.M{"$lt": resv.EndTime}
	overlap["resv_end_time"] = bson.M{"$gt": resv.StartTime}

	count, err := r.coll.CountDocuments(ctx, overlap)
	if err != nil {
		return fmt.Errorf("failed to check for overlapping reservations: %w", err)
	}
	if count > 0 {
		return ErrReservationConflict
	}

	if _, err := r.coll.InsertOne(ctx, resv); err != nil {
		return fmt.Errorf("failed to insert reservation: %w", err)
	}

	// Re-check: another submission may have inserted between our count and
	// insert. First created_at wins; ties break on id for determinism.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}})
	cursor, err := r.coll.Find(ctx, overlap, opts)
	if err != nil {
		return fmt.Errorf("failed to re-check overlapping reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var contenders []models.Reservation
	for cursor.Next(ctx) {
		var c models.Reservation
		if err := cursor.Decode(&c); err != nil {
			return fmt.Errorf("failed to decode reservation during re-check: %w", err)
		}
		contenders = append(contenders, c)
	}
	if len(contenders) > 1 && contenders[0].ID != resv.ID {
		if _, err := r.coll.DeleteOne(ctx, bson.M{"id": resv.ID}); err != nil {
			return fmt.Errorf("failed to roll back conflicting reservation %s: %w", resv.ID, err)
		}
		return ErrReservationConflict
	}
	return nil
}

func (r *MongoReservationRepo) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var resv models.Reservation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&resv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to fetch reservation %s: %w", id, err)
	}
	return &resv, nil
}

func (r *MongoReservationRepo) ListByUser(ctx context.Context, userID string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var reservations []models.Reservation
	for cursor.Next(ctx) {
		var resv models.Reservation
		if err := cursor.Decode(&resv); err != nil {
			return nil, fmt.Errorf("failed to decode reservation: %w", err)
		}
		reservations = append(reservations, resv)
	}
	return reservations, nil
}

func (r *MongoReservationRepo) CancelByUser(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":      id,
		"user_id": userID,
		"status":  bson.M{"$in": bson.A{models.ReservationStatusPending, models.ReservationStatusConfirmed}},
	}
	update := bson.M{"$set": bson.M{"status": models.ReservationStatusCancelled}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cancel reservation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *MongoReservationRepo) MarkCompleted(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.ReservationStatusConfirmed}
	update := bson.M{"$set": bson.M{"status": models.ReservationStatusCompleted}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark reservation %s completed: %w", id, err)
	}
	if result.MatchedCount == 0 {
		// Already cancelled or completed; nothing to do.
		return nil
	}
	return nil
}
