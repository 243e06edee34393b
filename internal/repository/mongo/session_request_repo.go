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

const sessionRequestCollectionName = "session_requests"

// mongoSessionRequestRepository implements repository.SessionRequestRepository
type mongoSessionRequestRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRequestRepository creates a new SessionRequest repository backed by MongoDB.
func NewMongoSessionRequestRepository(db *mongo.Database) repository.SessionRequestRepository {
	return &mongoSessionRequestRepository{
		collection: db.Collection(sessionRequestCollectionName),
	}
}

// Create inserts a new session request.
func (r *mongoSessionRequestRepository) Create(ctx context.Context, req *domain.SessionRequest) (primitive.ObjectID, error) {
	if req.CustomerID == primitive.NilObjectID || req.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("session request requires customerId and trainerId")
	}

	req.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if req.Status == "" {
		req.Status = domain.SessionPending
	}

	result, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session request ID")
	}
	return insertedID, nil
}

// GetByID retrieves a session request by its ID.
func (r *mongoSessionRequestRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SessionRequest, error) {
	var req domain.SessionRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListByTrainer returns all requests addressed to a trainer, newest first.
func (r *mongoSessionRequestRepository) ListByTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.SessionRequest, error) {
	return r.list(ctx, bson.M{"trainerId": trainerID})
}

// ListByCustomer returns all requests made by a customer, newest first.
func (r *mongoSessionRequestRepository) ListByCustomer(ctx context.Context, customerID primitive.ObjectID) ([]domain.SessionRequest, error) {
	return r.list(ctx, bson.M{"customerId": customerID})
}

func (r *mongoSessionRequestRepository) list(ctx context.Context, filter bson.M) ([]domain.SessionRequest, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []domain.SessionRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []domain.SessionRequest{}
	}
	return requests, nil
}

// Update writes back the mutable workflow fields. There is no status guard.
func (r *mongoSessionRequestRepository) Update(ctx context.Context, req *domain.SessionRequest) error {
	if req.ID == primitive.NilObjectID {
		return errors.New("session request ID is required for update")
	}

	req.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"status":          req.Status,
		"trainerResponse": req.TrainerResponse,
		"scheduledDate":   req.ScheduledDate,
		"scheduledTime":   req.ScheduledTime,
		"updatedAt":       req.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": req.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete hard-deletes a session request.
func (r *mongoSessionRequestRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSessionRequestIndexes creates necessary indexes for the session_requests collection.
func EnsureSessionRequestIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
