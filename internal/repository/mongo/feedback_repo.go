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

const feedbackCollectionName = "feedback"

type mongoFeedbackRepository struct {
	collection *mongo.Collection
}

// NewMongoFeedbackRepository creates a new Feedback repository backed by MongoDB.
func NewMongoFeedbackRepository(db *mongo.Database) repository.FeedbackRepository {
	return &mongoFeedbackRepository{
		collection: db.Collection(feedbackCollectionName),
	}
}

func (r *mongoFeedbackRepository) Create(ctx context.Context, f *domain.Feedback) (primitive.ObjectID, error) {
	if f.CustomerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("feedback requires customerId")
	}
	f.ID = primitive.NewObjectID()
	f.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, f)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted feedback ID")
	}
	return insertedID, nil
}

func (r *mongoFeedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var items []domain.Feedback
	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Feedback{}
	}
	return items, nil
}

func (r *mongoFeedbackRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
