package accountRepo

import (
	"context"
	"fmt"
	"time"

	"bookable/database"
	"bookable/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo creates a new instance of AccountRepository using MongoDB.
func NewMongoAccountRepo() AccountRepository {
	coll := database.Collection("accounts")
	repo := &MongoAccountRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new account document.
func (r *MongoAccountRepo) Create(account *models.Account) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSubdomainTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by its unique ID.
func (r *MongoAccountRepo) GetByID(id string) (*models.Account, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByEmail retrieves an account by its owner email.
func (r *MongoAccountRepo) GetByEmail(email string) (*models.Account, error) {
	return r.findOne(bson.M{"email": email})
}

// GetBySubdomain retrieves an account by its subdomain label.
func (r *MongoAccountRepo) GetBySubdomain(subdomain string) (*models.Account, error) {
	return r.findOne(bson.M{"subdomain": subdomain})
}

func (r *MongoAccountRepo) findOne(filter bson.M) (*models.Account, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var account models.Account
	if err := r.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	return &account, nil
}

// SetSubdomain assigns a subdomain label. The partial unique index on
// "subdomain" is the ultimate arbiter; losing the race surfaces as
// ErrSubdomainTaken.
func (r *MongoAccountRepo) SetSubdomain(accountID, subdomain string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": accountID}
	update := bson.M{"$set": bson.M{"subdomain": subdomain, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSubdomainTaken
		}
		return fmt.Errorf("failed to set subdomain for account %s: %w", accountID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("account with id %s not found", accountID)
	}
	return nil
}

// SubdomainExists reports whether a label is already assigned.
func (r *MongoAccountRepo) SubdomainExists(subdomain string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"subdomain": subdomain})
	if err != nil {
		return false, fmt.Errorf("failed to check subdomain %s: %w", subdomain, err)
	}
	return count > 0, nil
}

// ListMissingSubdomain returns accounts that have no subdomain assigned.
func (r *MongoAccountRepo) ListMissingSubdomain() ([]models.Account, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"subdomain": bson.M{"$exists": false}},
		{"subdomain": ""},
	}}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts without subdomain: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	for cursor.Next(ctx) {
		var a models.Account
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// UpdateBookingPage replaces an account's booking-page configuration.
func (r *MongoAccountRepo) UpdateBookingPage(accountID string, page *models.BookingPage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": accountID}
	update := bson.M{"$set": bson.M{"booking_page": page, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booking page for account %s: %w", accountID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("account with id %s not found", accountID)
	}
	return nil
}
