package engagementRepo

import (
	"context"
	"fmt"
	"time"

	"diarista/database"
	"diarista/models"
	"diarista/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoEngagementRepo implements EngagementRepository using MongoDB.
type MongoEngagementRepo struct {
	coll *mongo.Collection
}

// NewMongoEngagementRepo creates a new instance of EngagementRepository using MongoDB.
func NewMongoEngagementRepo() EngagementRepository {
	coll := database.Collection("engagements")
	repo := &MongoEngagementRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("failed to create engagement indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoEngagementRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "hirer_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "worker_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves an engagement by its unique ID.
func (r *MongoEngagementRepo) GetByID(id string) (*models.Engagement, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var eng models.Engagement
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&eng); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("engagement %s: %w", id, utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch engagement with id %s: %w", id, err)
	}
	return &eng, nil
}

// Create inserts a new engagement document.
func (r *MongoEngagementRepo) Create(engagement *models.Engagement) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	engagement.CreatedAt = now
	engagement.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, engagement); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	return nil
}

// UpdateStatus performs a compare-and-swap on the engagement status. It
// reports false when another caller already moved the engagement out of
// the `from` status.
func (r *MongoEngagementRepo) UpdateStatus(id, from, to string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update engagement %s status: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// FindAcceptedByWorker returns the worker's accepted engagement, if any.
func (r *MongoEngagementRepo) FindAcceptedByWorker(workerID string) (*models.Engagement, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"worker_id": workerID, "status": models.EngagementAccepted}
	var eng models.Engagement
	if err := r.coll.FindOne(ctx, filter).Decode(&eng); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find accepted engagement for worker %s: %w", workerID, err)
	}
	return &eng, nil
}

// ListForUser lists a user's engagements, newest first.
func (r *MongoEngagementRepo) ListForUser(userID, role string, limit int64) ([]models.Engagement, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{sideField(role): userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list engagements for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var engagements []models.Engagement
	if err := cursor.All(ctx, &engagements); err != nil {
		return nil, fmt.Errorf("failed to decode engagements: %w", err)
	}
	return engagements, nil
}

// CountByStatus tallies a user's engagements per status.
func (r *MongoEngagementRepo) CountByStatus(userID, role string) (map[string]int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{sideField(role): userID}}},
		bson.D{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count engagements for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	counts := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode engagement counts: %w", err)
		}
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// GetAll retrieves all engagements.
func (r *MongoEngagementRepo) GetAll() ([]models.Engagement, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve engagements: %w", err)
	}
	defer cursor.Close(ctx)

	var engagements []models.Engagement
	if err := cursor.All(ctx, &engagements); err != nil {
		return nil, fmt.Errorf("failed to decode engagements: %w", err)
	}
	return engagements, nil
}

// sideField maps a role onto the engagement field that holds that side's
// user ID.
func sideField(role string) string {
	if role == models.RoleHirer {
		return "hirer_id"
	}
	return "worker_id"
}
