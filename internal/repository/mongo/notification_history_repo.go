package mongo

import (
	"alcyxob/fitness-center/internal/domain"
	"alcyxob/fitness-center/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const notificationHistoryCollectionName = "notification_history"

type mongoNotificationHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationHistoryRepository creates the broadcast audit log repository.
func NewMongoNotificationHistoryRepository(db *mongo.Database) repository.NotificationHistoryRepository {
	return &mongoNotificationHistoryRepository{
		collection: db.Collection(notificationHistoryCollectionName),
	}
}

func (r *mongoNotificationHistoryRepository) Create(ctx context.Context, h *domain.NotificationHistory) (primitive.ObjectID, error) {
	h.ID = primitive.NewObjectID()
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, h)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted history ID")
	}
	return insertedID, nil
}

// ListRecent returns at most limit entries, newest first. Nothing is pruned on write.
func (r *mongoNotificationHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.NotificationHistory, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.NotificationHistory
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.NotificationHistory{}
	}
	return entries, nil
}

func (r *mongoNotificationHistoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureNotificationHistoryIndexes creates the createdAt index used by ListRecent.
func EnsureNotificationHistoryIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}
