package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	parkingerrors "parkd/internal/parking/errors"
	"parkd/pkg/config"
	"parkd/pkg/model"
)

const (
	SlotCollectionName = "Slots"
)

type SlotRepository interface {
	FindAll(ctx context.Context) ([]*model.Slot, error)
	SetOccupancy(ctx context.Context, slotID int, occupied bool, plate string) error
	Count(ctx context.Context) (int64, error)
}

type mongoSlotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoSlotRepository(cfg *config.Config) SlotRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotRepository{
		cfg:        cfg,
		collection: db.Collection(SlotCollectionName),
	}
}

func (r *mongoSlotRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoSlotRepository) FindAll(ctx context.Context) ([]*model.Slot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "slot_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []*model.Slot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode slots: %w", err)
	}

	return slots, nil
}

// SetOccupancy flips the persisted occupancy of one slot. The same
// call serves both the claim and the rollback sides of the
// coordinator's two-phase write.
func (r *mongoSlotRepository) SetOccupancy(ctx context.Context, slotID int, occupied bool, plate string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"occupied": occupied, "plate": plate}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"slot_id": slotID}, update)
	if err != nil {
		return fmt.Errorf("failed to update slot %d: %w", slotID, err)
	}
	if result.MatchedCount == 0 {
		return parkingerrors.ErrSlotNotFound
	}
	return nil
}

func (r *mongoSlotRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count slots: %w", err)
	}
	return count, nil
}
