package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	parkingerrors "parkd/internal/parking/errors"
	"parkd/pkg/config"
	"parkd/pkg/model"
)

const (
	OccupancyCollectionName = "Occupancy"
)

type OccupancyRepository interface {
	// InsertOpen persists a new open record. A lost uniqueness race
	// (another open record for the same plate) is reported as
	// ErrDuplicatePlate, a tagged outcome rather than a failure.
	InsertOpen(ctx context.Context, record *model.OccupancyRecord) error
	FindOpen(ctx context.Context, plate string) (*model.OccupancyRecord, error)
	CloseOpen(ctx context.Context, plate string, exitTime time.Time, charge float64) error
	CountOpen(ctx context.Context) (int64, error)
}

type mongoOccupancyRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoOccupancyRepository(cfg *config.Config) OccupancyRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoOccupancyRepository{
		cfg:        cfg,
		collection: db.Collection(OccupancyCollectionName),
	}
}

func (r *mongoOccupancyRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoOccupancyRepository) InsertOpen(ctx context.Context, record *model.OccupancyRecord) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return parkingerrors.ErrDuplicatePlate
		}
		return fmt.Errorf("failed to insert occupancy record: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid.Hex()
	}
	return nil
}

func (r *mongoOccupancyRepository) FindOpen(ctx context.Context, plate string) (*model.OccupancyRecord, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{"plate": plate, "exit_time": nil}

	var record model.OccupancyRecord
	err := r.collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, parkingerrors.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find open occupancy record: %w", err)
	}

	return &record, nil
}

// CloseOpen stamps exit time and charge onto the open record for
// plate. Closed records are retained for audit; nothing is deleted.
func (r *mongoOccupancyRepository) CloseOpen(ctx context.Context, plate string, exitTime time.Time, charge float64) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	filter := bson.M{"plate": plate, "exit_time": nil}
	update := bson.M{"$set": bson.M{"exit_time": exitTime, "charge": charge}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to close occupancy record: %w", err)
	}
	if result.MatchedCount == 0 {
		return parkingerrors.ErrRecordNotFound
	}
	return nil
}

func (r *mongoOccupancyRepository) CountOpen(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"exit_time": nil})
	if err != nil {
		return 0, fmt.Errorf("failed to count open occupancy records: %w", err)
	}
	return count, nil
}
