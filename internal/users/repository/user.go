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

	userserrors "towerdesk/internal/users/errors"
	"towerdesk/pkg/config"
	"towerdesk/pkg/model"
)

const CollectionName = "users"

type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) (bool, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindRoleByEmail(ctx context.Context, email string) (model.Role, bool, error)
	FindMembers(ctx context.Context) ([]*model.User, error)
	PromoteToMember(ctx context.Context, agreement *model.Agreement, at time.Time) error
	DemoteToUser(ctx context.Context, email string) error
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}

type mongoUserRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoUserRepository(cfg *config.Config) UserRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoUserRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds a store call unless the context already belongs to
// a transaction; a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoUserRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Upsert registers the user exactly once. $setOnInsert makes repeated
// registrations a no-op at the store level instead of a racy
// read-then-write. Returns true when the record was created.
func (r *mongoUserRepository) Upsert(ctx context.Context, user *model.User) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	if user.Role == "" {
		user.Role = model.RoleUser
	}
	user.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	update := bson.M{"$setOnInsert": bson.M{
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": user.Email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to upsert user: %w", err)
	}

	if oid, ok := result.UpsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return result.UpsertedCount == 1, nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	var user model.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *mongoUserRepository) FindRoleByEmail(ctx context.Context, email string) (model.Role, bool, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if user.Role == "" {
		return model.RoleUser, true, nil
	}
	return user.Role, true, nil
}

func (r *mongoUserRepository) FindMembers(ctx context.Context) ([]*model.User, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "agreementAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"role": model.RoleMember}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []*model.User
	if err = cursor.All(ctx, &members); err != nil {
		return nil, fmt.Errorf("failed to decode members: %w", err)
	}
	return members, nil
}

// PromoteToMember applies the accept-side user mutation: role, the
// apartment fields copied from the agreement, and the acceptance stamp.
func (r *mongoUserRepository) PromoteToMember(ctx context.Context, agreement *model.Agreement, at time.Time) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"role":        model.RoleMember,
		"apartmentNo": agreement.ApartmentNo,
		"block":       agreement.Block,
		"floor":       agreement.Floor,
		"rent":        agreement.Rent,
		"agreementAt": at,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": agreement.UserEmail}, update)
	if err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}
	if result.MatchedCount == 0 {
		return userserrors.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) DemoteToUser(ctx context.Context, email string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	update := bson.M{
		"$set":   bson.M{"role": model.RoleUser},
		"$unset": bson.M{"apartmentNo": "", "block": "", "floor": "", "rent": "", "agreementAt": ""},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"email": email}, update)
	if err != nil {
		return fmt.Errorf("failed to demote user: %w", err)
	}
	if result.MatchedCount == 0 {
		return userserrors.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *mongoUserRepository) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count users by role: %w", err)
	}
	return count, nil
}
