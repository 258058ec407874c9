package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	userIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	apartmentIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "apartmentNo", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{
			{Key: "isAvailable", Value: 1},
			{Key: "rent", Value: 1},
		}},
	}

	agreementIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userEmail", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "createdDate", Value: -1},
		}},
	}

	announcementIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	couponIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	paymentIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "email", Value: 1},
			{Key: "createdAt", Value: -1},
		}},
	}
)

// Run ensures the six collections and their indexes. The unique indexes
// are what turns duplicate prevention (user email, coupon code, one
// agreement per user) from a racy read-then-write into a store
// guarantee.
func Run(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)

	collections := map[string][]mongo.IndexModel{
		"users":         userIndexes,
		"apartments":    apartmentIndexes,
		"agreements":    agreementIndexes,
		"announcements": announcementIndexes,
		"coupons":       couponIndexes,
		"payments":      paymentIndexes,
	}

	for name, indexes := range collections {
		if err := ensureCollection(ctx, db, name); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return db.CreateCollection(ctx, name)
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	if len(models) == 0 {
		return nil
	}
	_, err := db.Collection(name).Indexes().CreateMany(ctx, models)
	return err
}
