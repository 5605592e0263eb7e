package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parkd/internal/migrations/mongo/validators"
	"parkd/pkg/model"
)

var (
	SlotsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slot_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "node_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	// The partial unique index admits any number of closed records per
	// plate while rejecting a second open one. Open records always
	// carry an explicit exit_time: null.
	OccupancyIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "plate", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"exit_time": bson.M{"$type": "null"},
				}),
		},
		{
			Keys: bson.D{{Key: "entry_time", Value: 1}},
		},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("🚀 Running parkd Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"Slots": {
			Indexes:   SlotsIndexes,
			Validator: validators.SlotValidator,
		},
		"Occupancy": {
			Indexes:   OccupancyIndexes,
			Validator: validators.OccupancyValidator,
		},
		"Stats": {
			Validator: validators.StatsValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

// SeedLot populates the slot inventory for a rows×cols grid and the
// stats singleton. Both seeds are idempotent: existing slots and an
// existing stats document are left untouched.
func SeedLot(ctx context.Context, client *mongo.Client, dbName string, rows, cols int) error {
	db := client.Database(dbName)

	slots := db.Collection("Slots")
	for i := 1; i <= rows*cols; i++ {
		filter := bson.M{"slot_id": i}
		update := bson.M{"$setOnInsert": bson.M{
			"slot_id":  i,
			"node_id":  i,
			"occupied": false,
			"plate":    "",
		}}
		opts := options.Update().SetUpsert(true)
		if _, err := slots.UpdateOne(ctx, filter, update, opts); err != nil {
			return fmt.Errorf("failed to seed slot %d: %w", i, err)
		}
	}
	fmt.Printf("🅿️ Seeded slot inventory: %d slots (%dx%d grid)\n", rows*cols, rows, cols)

	stats := db.Collection("Stats")
	filter := bson.M{"_id": "global"}
	update := bson.M{"$setOnInsert": model.Stats{}}
	opts := options.Update().SetUpsert(true)
	if _, err := stats.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to seed stats document: %w", err)
	}
	fmt.Println("📊 Seeded stats singleton")

	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}

	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
