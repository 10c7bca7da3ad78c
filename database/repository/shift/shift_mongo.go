package shiftRepo

import (
	"context"
	"fmt"
	"time"

	"diarista/database"
	"diarista/models"
	"diarista/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoShiftRepo implements ShiftRepository using MongoDB.
type MongoShiftRepo struct {
	coll           *mongo.Collection
	engagementColl *mongo.Collection
}

// NewMongoShiftRepo creates a new instance of ShiftRepository using MongoDB.
func NewMongoShiftRepo() ShiftRepository {
	repo := &MongoShiftRepo{
		coll:           database.Collection("shifts"),
		engagementColl: database.Collection("engagements"),
	}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("failed to create shift indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoShiftRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One shift per engagement per calendar day.
		{
			Keys:    bson.D{{Key: "engagement_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetOrCreate upserts the shift for (engagement, date). The unique index
// plus the upsert guarantee that racing callers converge on one record.
func (r *MongoShiftRepo) GetOrCreate(engagementID, date string) (*models.Shift, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"engagement_id": engagementID, "date": date}
	update := bson.M{
		"$setOnInsert": bson.M{
			"id":            uuid.New().String(),
			"engagement_id": engagementID,
			"date":          date,
			"total_hours":   0.0,
			"created_at":    now,
			"updated_at":    now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var shift models.Shift
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&shift); err != nil {
		return nil, fmt.Errorf("failed to get or create shift for engagement %s on %s: %w", engagementID, date, err)
	}
	return &shift, nil
}

// Find returns the shift for (engagement, date), nil when absent.
func (r *MongoShiftRepo) Find(engagementID, date string) (*models.Shift, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var shift models.Shift
	err := r.coll.FindOne(ctx, bson.M{"engagement_id": engagementID, "date": date}).Decode(&shift)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch shift for engagement %s on %s: %w", engagementID, date, err)
	}
	return &shift, nil
}

// SetInstant writes one instant only while it is still unset. The filter
// doubles as the concurrency guard: the second of two racing writers
// matches nothing and reports false.
func (r *MongoShiftRepo) SetInstant(shiftID, field string, at time.Time) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": shiftID, field: nil}
	update := bson.M{"$set": bson.M{field: at, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to set %s on shift %s: %w", field, shiftID, err)
	}
	return result.MatchedCount > 0, nil
}

// Finish records the end instant with the derived total and completes the
// owning engagement inside one transaction, so a reader never observes a
// finished shift on a still-accepted engagement.
func (r *MongoShiftRepo) Finish(shiftID, engagementID string, endedAt time.Time, totalHours float64) (bool, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return false, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	won := false
	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{"id": shiftID, "ended_at": nil}
		update := bson.M{"$set": bson.M{
			"ended_at":    endedAt,
			"total_hours": totalHours,
			"updated_at":  time.Now(),
		}}
		result, err := r.coll.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("failed to finish shift %s: %w", shiftID, err)
		}
		if result.MatchedCount == 0 {
			// Already finished by a concurrent call; nothing to commit.
			return nil
		}
		won = true

		engFilter := bson.M{"id": engagementID, "status": models.EngagementAccepted}
		engUpdate := bson.M{"$set": bson.M{"status": models.EngagementCompleted, "updated_at": time.Now()}}
		if _, err := r.engagementColl.UpdateOne(sc, engFilter, engUpdate); err != nil {
			return fmt.Errorf("failed to complete engagement %s: %w", engagementID, err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return false, fmt.Errorf("finish transaction failed: %w", err)
	}

	return won, nil
}

// ListOpen returns shifts for the given date that started but did not end.
func (r *MongoShiftRepo) ListOpen(date string) ([]models.Shift, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{
		"date":       date,
		"started_at": bson.M{"$ne": nil},
		"ended_at":   nil,
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list open shifts for %s: %w", date, err)
	}
	defer cursor.Close(ctx)

	var shifts []models.Shift
	if err := cursor.All(ctx, &shifts); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	return shifts, nil
}

// GetAll retrieves all shifts, newest first.
func (r *MongoShiftRepo) GetAll() ([]models.Shift, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve shifts: %w", err)
	}
	defer cursor.Close(ctx)

	var shifts []models.Shift
	if err := cursor.All(ctx, &shifts); err != nil {
		return nil, fmt.Errorf("failed to decode shifts: %w", err)
	}
	return shifts, nil
}
