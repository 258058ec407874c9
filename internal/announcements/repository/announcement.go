package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"towerdesk/pkg/config"
	"towerdesk/pkg/model"
)

const CollectionName = "announcements"

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	FindAll(ctx context.Context) ([]*model.Announcement, error)
}

type mongoAnnouncementRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAnnouncementRepository(cfg *config.Config) AnnouncementRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAnnouncementRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAnnouncementRepository) Create(ctx context.Context, announcement *model.Announcement) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.StoreWriteTimeout)
	defer cancel()

	announcement.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, announcement)
	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		announcement.ID = oid.Hex()
	}
	return nil
}

// FindAll returns the full feed, newest first. The feed is append-only
// so there is no update or delete path.
func (r *mongoAnnouncementRepository) FindAll(ctx context.Context) ([]*model.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.StoreReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find announcements: %w", err)
	}
	defer cursor.Close(ctx)

	var announcements []*model.Announcement
	if err = cursor.All(ctx, &announcements); err != nil {
		return nil, fmt.Errorf("failed to decode announcements: %w", err)
	}
	return announcements, nil
}
