package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apartmentserrors "towerdesk/internal/apartments/errors"
	"towerdesk/pkg/config"
	"towerdesk/pkg/model"
)

const CollectionName = "apartments"

type ApartmentRepository interface {
	FindAvailable(ctx context.Context, minRent, maxRent, page, pageSize int) ([]model.Apartment, int64, error)
	Reserve(ctx context.Context, apartmentNo string) error
	Release(ctx context.Context, apartmentNo string) error
	Count(ctx context.Context) (int64, error)
	CountAvailable(ctx context.Context) (int64, error)
}

type mongoApartmentRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoApartmentRepository(cfg *config.Config) ApartmentRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoApartmentRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoApartmentRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// FindAvailable returns one page of bookable apartments within the rent
// range plus the total match count. maxRent <= 0 means unbounded.
func (r *mongoApartmentRepository) FindAvailable(ctx context.Context, minRent, maxRent, page, pageSize int) ([]model.Apartment, int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	rentFilter := bson.M{"$gte": minRent}
	if maxRent > 0 {
		rentFilter["$lte"] = maxRent
	}
	filter := bson.M{
		"rent":        rentFilter,
		"isAvailable": true,
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count apartments: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "apartmentNo", Value: 1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find apartments: %w", err)
	}
	defer cursor.Close(ctx)

	var apartments []model.Apartment
	if err = cursor.All(ctx, &apartments); err != nil {
		return nil, 0, fmt.Errorf("failed to decode apartments: %w", err)
	}

	return apartments, total, nil
}

// Reserve flips isAvailable from true to false in a single conditional
// update. A no-match result means the apartment is missing or already
// taken; the caller aborts the acceptance on ErrUnavailable, which
// closes the double-booking race.
func (r *mongoApartmentRepository) Reserve(ctx context.Context, apartmentNo string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	filter := bson.M{"apartmentNo": apartmentNo, "isAvailable": true}
	update := bson.M{"$set": bson.M{"isAvailable": false}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reserve apartment: %w", err)
	}
	if result.MatchedCount == 0 {
		return apartmentserrors.ErrUnavailable
	}
	return nil
}

// Release marks the apartment bookable again. Matching nothing is fine:
// member removal tolerates users with no apartment on record.
func (r *mongoApartmentRepository) Release(ctx context.Context, apartmentNo string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"isAvailable": true}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"apartmentNo": apartmentNo}, update); err != nil {
		return fmt.Errorf("failed to release apartment: %w", err)
	}
	return nil
}

func (r *mongoApartmentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count apartments: %w", err)
	}
	return count, nil
}

func (r *mongoApartmentRepository) CountAvailable(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"isAvailable": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count available apartments: %w", err)
	}
	return count, nil
}
