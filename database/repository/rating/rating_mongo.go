package ratingRepo

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

// MongoRatingRepo implements RatingRepository using MongoDB.
type MongoRatingRepo struct {
	coll     *mongo.Collection
	userColl *mongo.Collection
}

// NewMongoRatingRepo creates a new instance of RatingRepository using MongoDB.
func NewMongoRatingRepo() RatingRepository {
	repo := &MongoRatingRepo{
		coll:     database.Collection("ratings"),
		userColl: database.Collection("users"),
	}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Sugar().Warnf("failed to create rating indexes: %v", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRatingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One rating per engagement per evaluator.
		{
			Keys:    bson.D{{Key: "engagement_id", Value: 1}, {Key: "evaluator_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "evaluated_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a rating by its unique ID.
func (r *MongoRatingRepo) GetByID(id string) (*models.Rating, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rating models.Rating
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rating); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("rating %s: %w", id, utils.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch rating with id %s: %w", id, err)
	}
	return &rating, nil
}

// FindByEngagementAndEvaluator returns the evaluator's rating for an
// engagement, nil when absent.
func (r *MongoRatingRepo) FindByEngagementAndEvaluator(engagementID, evaluatorID string) (*models.Rating, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"engagement_id": engagementID, "evaluator_id": evaluatorID}
	var rating models.Rating
	if err := r.coll.FindOne(ctx, filter).Decode(&rating); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch rating for engagement %s: %w", engagementID, err)
	}
	return &rating, nil
}

// ListByEvaluated lists ratings received by a user, newest first.
func (r *MongoRatingRepo) ListByEvaluated(userID string, limit int64) ([]models.Rating, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, bson.M{"evaluated_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}
	return ratings, nil
}

// Create inserts the rating and recomputes the evaluated user's average
// in the same transaction.
func (r *MongoRatingRepo) Create(rating *models.Rating) error {
	rating.CreatedAt = time.Now()
	return r.withRecompute(rating.EvaluatedID, func(sc mongo.SessionContext) error {
		if _, err := r.coll.InsertOne(sc, rating); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("engagement already rated by this evaluator: %w", utils.ErrConflict)
			}
			return fmt.Errorf("failed to create rating: %w", err)
		}
		return nil
	})
}

// Update rewrites the score and comment and recomputes the average in
// the same transaction.
func (r *MongoRatingRepo) Update(id string, score int, comment string) error {
	existing, err := r.GetByID(id)
	if err != nil {
		return err
	}
	return r.withRecompute(existing.EvaluatedID, func(sc mongo.SessionContext) error {
		update := bson.M{"$set": bson.M{"score": score, "comment": comment}}
		result, err := r.coll.UpdateOne(sc, bson.M{"id": id}, update)
		if err != nil {
			return fmt.Errorf("failed to update rating %s: %w", id, err)
		}
		if result.MatchedCount == 0 {
			return fmt.Errorf("rating %s: %w", id, utils.ErrNotFound)
		}
		return nil
	})
}

// Delete removes the rating and recomputes the average in the same
// transaction.
func (r *MongoRatingRepo) Delete(id string, evaluatedID string) error {
	return r.withRecompute(evaluatedID, func(sc mongo.SessionContext) error {
		result, err := r.coll.DeleteOne(sc, bson.M{"id": id})
		if err != nil {
			return fmt.Errorf("failed to delete rating %s: %w", id, err)
		}
		if result.DeletedCount == 0 {
			return fmt.Errorf("rating %s: %w", id, utils.ErrNotFound)
		}
		return nil
	})
}

// withRecompute runs the rating write and the average recompute for the
// evaluated user inside a single transaction.
func (r *MongoRatingRepo) withRecompute(evaluatedID string, write func(mongo.SessionContext) error) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if err := write(sc); err != nil {
			return err
		}
		return r.recomputeAverage(sc, evaluatedID)
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
		return err
	}
	return nil
}

// recomputeAverage rebuilds the evaluated user's average from scratch.
// The average is never adjusted incrementally; zero ratings store 0.00.
func (r *MongoRatingRepo) recomputeAverage(sc mongo.SessionContext, evaluatedID string) error {
	cursor, err := r.coll.Find(sc, bson.M{"evaluated_id": evaluatedID})
	if err != nil {
		return fmt.Errorf("failed to load ratings for recompute: %w", err)
	}
	defer cursor.Close(sc)

	var scores []int
	for cursor.Next(sc) {
		var rating models.Rating
		if err := cursor.Decode(&rating); err != nil {
			return fmt.Errorf("failed to decode rating during recompute: %w", err)
		}
		scores = append(scores, rating.Score)
	}

	average := models.RatingAverage(scores)
	update := bson.M{"$set": bson.M{"rating_average": average, "updated_at": time.Now()}}
	if _, err := r.userColl.UpdateOne(sc, bson.M{"id": evaluatedID}, update); err != nil {
		return fmt.Errorf("failed to store rating average for user %s: %w", evaluatedID, err)
	}
	return nil
}
