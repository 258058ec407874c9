package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	couponserrors "towerdesk/internal/coupons/errors"
	"towerdesk/pkg/config"
	"towerdesk/pkg/model"
)

const CollectionName = "coupons"

type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	FindAll(ctx context.Context) ([]*model.Coupon, error)
	SetAvailability(ctx context.Context, id string, isAvailable bool) error
}

type mongoCouponRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoCouponRepository(cfg *config.Config) CouponRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCouponRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// Create inserts the coupon and relies on the unique code index for
// duplicate prevention instead of a racy pre-read.
func (r *mongoCouponRepository) Create(ctx context.Context, coupon *model.Coupon) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	coupon.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, coupon)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return couponserrors.ErrDuplicateCode
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		coupon.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCouponRepository) FindAll(ctx context.Context) ([]*model.Coupon, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []*model.Coupon
	if err = cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}
	return coupons, nil
}

func (r *mongoCouponRepository) SetAvailability(ctx context.Context, id string, isAvailable bool) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", couponserrors.ErrInvalidID, id)
	}

	update := bson.M{"$set": bson.M{"isAvailable": isAvailable}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	if result.MatchedCount == 0 {
		return couponserrors.ErrNotFound
	}
	return nil
}
