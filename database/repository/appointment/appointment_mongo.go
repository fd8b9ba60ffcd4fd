package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"bookable/database"
	"bookable/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "status", Value: 1}, {Key: "start", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert persists a new appointment document.
func (r *MongoAppointmentRepo) Insert(appointment *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, appointment); err != nil {
		return fmt.Errorf("failed to insert appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment scoped to its account.
func (r *MongoAppointmentRepo) GetByID(accountID, id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appointment models.Appointment
	filter := bson.M{"id": id, "account_id": accountID}
	if err := r.coll.FindOne(ctx, filter).Decode(&appointment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appointment, nil
}

// FindLiveOverlapping queries live appointments intersecting [start, end).
// Half-open overlap: existing.start < end AND existing.end > start.
func (r *MongoAppointmentRepo) FindLiveOverlapping(accountID string, start, end time.Time) ([]models.Appointment, error) {
	filter := bson.M{
		"account_id": accountID,
		"status":     bson.M{"$in": models.LiveStatuses},
		"start":      bson.M{"$lt": end},
		"end":        bson.M{"$gt": start},
	}
	return r.list(filter)
}

// ListByAccount retrieves an account's appointments within [from, to).
func (r *MongoAppointmentRepo) ListByAccount(accountID string, from, to time.Time) ([]models.Appointment, error) {
	filter := bson.M{"account_id": accountID}
	if !from.IsZero() || !to.IsZero() {
		rangeFilter := bson.M{}
		if !from.IsZero() {
			rangeFilter["$gte"] = from
		}
		if !to.IsZero() {
			rangeFilter["$lt"] = to
		}
		filter["start"] = rangeFilter
	}
	return r.list(filter)
}

func (r *MongoAppointmentRepo) list(filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	for cursor.Next(ctx) {
		var a models.Appointment
		if err := cursor.Decode(&a); err != nil {
			return nil, fmt.Errorf("failed to decode appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	return appointments, nil
}

// UpdateStatus transitions an appointment's status. Appointments are never
// deleted, they are retained for history.
func (r *MongoAppointmentRepo) UpdateStatus(accountID, id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "account_id": accountID}
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment %s status: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}
