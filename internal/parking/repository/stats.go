package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	parkingerrors "parkd/internal/parking/errors"
	"parkd/pkg/config"
	"parkd/pkg/model"
)

const (
	StatsCollectionName = "Stats"

	// statsDocID keys the singleton aggregate document.
	statsDocID = "global"
)

type StatsRepository interface {
	Get(ctx context.Context) (*model.Stats, error)
	Apply(ctx context.Context, delta model.StatsDelta) error
}

type mongoStatsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoStatsRepository(cfg *config.Config) StatsRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoStatsRepository{
		cfg:        cfg,
		collection: db.Collection(StatsCollectionName),
	}
}

func (r *mongoStatsRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoStatsRepository) Get(ctx context.Context) (*model.Stats, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var stats model.Stats
	err := r.collection.FindOne(ctx, bson.M{"_id": statsDocID}).Decode(&stats)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, parkingerrors.ErrStatsNotFound
		}
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	return &stats, nil
}

// Apply increments the singleton counters atomically with $inc so
// concurrent coordinator instances never lose updates.
func (r *mongoStatsRepository) Apply(ctx context.Context, delta model.StatsDelta) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	inc := bson.M{}
	if delta.Revenue != 0 {
		inc["revenue"] = delta.Revenue
	}
	if delta.TotalParked != 0 {
		inc["total_parked"] = delta.TotalParked
	}
	if delta.TotalExited != 0 {
		inc["total_exited"] = delta.TotalExited
	}
	if delta.TotalWaitSeconds != 0 {
		inc["total_wait_seconds"] = delta.TotalWaitSeconds
	}
	if len(inc) == 0 {
		return nil
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": statsDocID}, bson.M{"$inc": inc})
	if err != nil {
		return fmt.Errorf("failed to update stats: %w", err)
	}
	return nil
}
