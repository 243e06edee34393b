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

const accountCollectionName = "accounts"

// mongoAccountRepository implements repository.AccountRepository. All three
// roles share one collection so a single unique index guards email.
type mongoAccountRepository struct {
	collection *mongo.Collection
}

// NewMongoAccountRepository creates a new Account repository backed by MongoDB.
func NewMongoAccountRepository(db *mongo.Database) repository.AccountRepository {
	return &mongoAccountRepository{
		collection: db.Collection(accountCollectionName),
	}
}

// Create inserts a new account into the database.
func (r *mongoAccountRepository) Create(ctx context.Context, account *domain.Account) (primitive.ObjectID, error) {
	if account.Email == "" || account.PasswordHash == "" || !account.Role.Valid() {
		return primitive.NilObjectID, errors.New("account email, password hash, and a valid role are required")
	}

	account.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	if account.Notifications == nil {
		account.Notifications = []domain.Notification{}
	}

	result, err := r.collection.InsertOne(ctx, account)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves an account by its ObjectID regardless of role.
func (r *mongoAccountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail retrieves an account by email address.
func (r *mongoAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoAccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var account domain.Account
	err := r.collection.FindOne(ctx, filter).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetByIDs fetches every account whose ID is in ids. Missing IDs are skipped.
func (r *mongoAccountRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Account, error) {
	if len(ids) == 0 {
		return []domain.Account{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// ListByRole returns all accounts of one role, newest first.
func (r *mongoAccountRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"role": role}, opts)
}

// ListTrainers returns unblocked trainers sorted by name, optionally
// restricted to one specialization.
func (r *mongoAccountRepository) ListTrainers(ctx context.Context, specialization string) ([]domain.Account, error) {
	filter := bson.M{"role": domain.RoleTrainer, "blocked": false}
	if specialization != "" {
		// Matches any element of the array.
		filter["trainer.specializations"] = specialization
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return r.find(ctx, filter, opts)
}

func (r *mongoAccountRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Account, error) {
	var accounts []domain.Account
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// UpdateProfile sets only the fields present in update.
func (r *mongoAccountRepository) UpdateProfile(ctx context.Context, id primitive.ObjectID, update domain.ProfileUpdate) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Age != nil {
		set["profile.age"] = *update.Age
	}
	if update.Gender != nil {
		set["profile.gender"] = *update.Gender
	}
	if update.Bio != nil {
		set["profile.bio"] = *update.Bio
	}
	if update.Trainer != nil {
		set["trainer"] = update.Trainer
	}
	return r.updateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// SetProfileImageKey stores the S3 key of the account's profile image.
func (r *mongoAccountRepository) SetProfileImageKey(ctx context.Context, id primitive.ObjectID, key string) error {
	update := bson.M{"$set": bson.M{"profile.profileImageKey": key, "updatedAt": time.Now().UTC()}}
	return r.updateOne(ctx, bson.M{"_id": id}, update)
}

// SetBlocked flips the blocked flag used at login.
func (r *mongoAccountRepository) SetBlocked(ctx context.Context, id primitive.ObjectID, blocked bool) error {
	update := bson.M{"$set": bson.M{"blocked": blocked, "updatedAt": time.Now().UTC()}}
	return r.updateOne(ctx, bson.M{"_id": id}, update)
}

// Delete removes an account. Nothing referencing it is cascaded.
func (r *mongoAccountRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SetSubscription overwrites the whole embedded subscription of a customer.
func (r *mongoAccountRepository) SetSubscription(ctx context.Context, customerID primitive.ObjectID, sub *domain.SubscriptionAssignment) error {
	filter := bson.M{"_id": customerID, "role": domain.RoleCustomer}
	update := bson.M{"$set": bson.M{"subscription": sub, "updatedAt": time.Now().UTC()}}
	return r.updateOne(ctx, filter, update)
}

// TransitionSubscription changes subscription.status only when it equals from.
func (r *mongoAccountRepository) TransitionSubscription(ctx context.Context, customerID primitive.ObjectID, from, to domain.SubscriptionStatus) (bool, error) {
	filter := bson.M{"_id": customerID, "subscription.status": from}
	update := bson.M{"$set": bson.M{"subscription.status": to, "updatedAt": time.Now().UTC()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// notificationPush builds the capped $push: $slice with a negative limit
// keeps the newest entries.
func notificationPush(n domain.Notification, limit int) bson.M {
	each := bson.M{"$each": []domain.Notification{n}}
	if limit > 0 {
		each["$slice"] = -limit
	}
	return bson.M{
		"$push": bson.M{"notifications": each},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
}

// PushNotification appends n to one account's inbox.
func (r *mongoAccountRepository) PushNotification(ctx context.Context, id primitive.ObjectID, n domain.Notification, limit int) error {
	return r.updateOne(ctx, bson.M{"_id": id}, notificationPush(n, limit))
}

// PushNotificationToRoles appends n to every account whose role is in roles.
func (r *mongoAccountRepository) PushNotificationToRoles(ctx context.Context, roles []domain.Role, n domain.Notification, limit int) (int64, error) {
	if len(roles) == 0 {
		return 0, nil
	}
	result, err := r.collection.UpdateMany(ctx, bson.M{"role": bson.M{"$in": roles}}, notificationPush(n, limit))
	if err != nil {
		return 0, err
	}
	return result.MatchedCount, nil
}

// MarkNotificationRead marks a single inbox entry as read.
func (r *mongoAccountRepository) MarkNotificationRead(ctx context.Context, id, notificationID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "notifications._id": notificationID}
	update := bson.M{"$set": bson.M{"notifications.$.read": true}}
	return r.updateOne(ctx, filter, update)
}

// MarkAllNotificationsRead marks every inbox entry of the account as read.
func (r *mongoAccountRepository) MarkAllNotificationsRead(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"notifications.$[].read": true}}
	return r.updateOne(ctx, bson.M{"_id": id}, update)
}

func (r *mongoAccountRepository) updateOne(ctx context.Context, filter, update bson.M) error {
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureAccountIndexes creates necessary indexes for the accounts collection.
// Call this once during application startup.
func EnsureAccountIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "trainer.specializations", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
