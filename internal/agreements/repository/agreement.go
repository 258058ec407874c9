package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	agreementserrors "towerdesk/internal/agreements/errors"
	"towerdesk/pkg/config"
	mongotx "towerdesk/pkg/db/mongo"
	"towerdesk/pkg/model"
)

const CollectionName = "agreements"

type AgreementRepository interface {
	Create(ctx context.Context, agreement *model.Agreement) error
	FindByID(ctx context.Context, id string) (*model.Agreement, error)
	FindByUserEmail(ctx context.Context, email string) (*model.Agreement, error)
	FindByStatus(ctx context.Context, status model.AgreementStatus) ([]*model.Agreement, error)
	SetStatus(ctx context.Context, id string, status model.AgreementStatus) error
	DeleteByUserEmail(ctx context.Context, email string) (int64, error)
	CountByStatus(ctx context.Context, status model.AgreementStatus) (int64, error)
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoAgreementRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoAgreementRepository(cfg *config.Config) AgreementRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAgreementRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func (r *mongoAgreementRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoAgreementRepository) Create(ctx context.Context, agreement *model.Agreement) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	agreement.Status = model.AgreementPending
	agreement.CreatedDate = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, agreement)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return agreementserrors.ErrDuplicate
		}
		return fmt.Errorf("failed to create agreement: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		agreement.ID = oid.Hex()
	}
	return nil
}

func (r *mongoAgreementRepository) FindByID(ctx context.Context, id string) (*model.Agreement, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", agreementserrors.ErrInvalidID, id)
	}

	var agreement model.Agreement
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&agreement)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, agreementserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find agreement: %w", err)
	}
	return &agreement, nil
}

func (r *mongoAgreementRepository) FindByUserEmail(ctx context.Context, email string) (*model.Agreement, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	var agreement model.Agreement
	err := r.collection.FindOne(ctx, bson.M{"userEmail": email}).Decode(&agreement)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, agreementserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find agreement by email: %w", err)
	}
	return &agreement, nil
}

// FindByStatus lists agreements, newest first. An empty status returns
// everything.
func (r *mongoAgreementRepository) FindByStatus(ctx context.Context, status model.AgreementStatus) ([]*model.Agreement, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find agreements: %w", err)
	}
	defer cursor.Close(ctx)

	var agreements []*model.Agreement
	if err = cursor.All(ctx, &agreements); err != nil {
		return nil, fmt.Errorf("failed to decode agreements: %w", err)
	}
	return agreements, nil
}

func (r *mongoAgreementRepository) SetStatus(ctx context.Context, id string, status model.AgreementStatus) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", agreementserrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("failed to update agreement status: %w", err)
	}
	if result.MatchedCount == 0 {
		return agreementserrors.ErrNotFound
	}
	return nil
}

func (r *mongoAgreementRepository) DeleteByUserEmail(ctx context.Context, email string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteMany(ctx, bson.M{"userEmail": email})
	if err != nil {
		return 0, fmt.Errorf("failed to delete agreements: %w", err)
	}
	return result.DeletedCount, nil
}

func (r *mongoAgreementRepository) CountByStatus(ctx context.Context, status model.AgreementStatus) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count agreements: %w", err)
	}
	return count, nil
}

func (r *mongoAgreementRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
