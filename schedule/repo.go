package schedule

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

const CollectionName = "calendar_events"

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test MockRepository

type Repository interface {
	Upsert(ctx context.Context, event CalendarEvent) (*CalendarEvent, error)
	UpsertMany(ctx context.Context, events []CalendarEvent) error
	Delete(ctx context.Context, patientId string, date time.Time) error
	ListRange(ctx context.Context, patientId string, from time.Time, to time.Time) ([]*CalendarEvent, error)
}

func NewRepository(db *mongo.Database, lifecycle fx.Lifecycle) (Repository, error) {
	repo := &repository{
		collection: db.Collection(CollectionName),
	}

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return repo.Initialize(ctx)
		},
	})

	return repo, nil
}

type repository struct {
	collection *mongo.Collection
}

func (r *repository) Initialize(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "patientId", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("UniqueOverridePerDay"),
		},
	})
	return err
}

// Upsert writes the override for (patient, date), replacing any existing one.
// Re-writing the same event type is a no-op rather than a duplicate.
func (r *repository) Upsert(ctx context.Context, event CalendarEvent) (*CalendarEvent, error) {
	selector := bson.M{
		"patientId": event.PatientId,
		"date":      event.Date,
	}
	update := bson.M{
		"$set": bson.M{
			"eventType":   event.EventType,
			"notes":       event.Notes,
			"updatedTime": time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	result := &CalendarEvent{}
	err := r.collection.FindOneAndUpdate(ctx, selector, update, opts).Decode(result)
	if err != nil {
		return nil, fmt.Errorf("error upserting calendar override: %w", err)
	}

	return result, nil
}

// UpsertMany issues one idempotent upsert per date. Writes are unordered and
// independent, so a partial failure leaves every touched date with exactly
// one override and a retry converges to the same result.
func (r *repository) UpsertMany(ctx context.Context, events []CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(events))
	now := time.Now()
	for _, event := range events {
		models = append(models, mongo.NewUpdateOneModel().
			SetFilter(bson.M{
				"patientId": event.PatientId,
				"date":      event.Date,
			}).
			SetUpdate(bson.M{
				"$set": bson.M{
					"eventType":   event.EventType,
					"notes":       event.Notes,
					"updatedTime": now,
				},
			}).
			SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := r.collection.BulkWrite(ctx, models, opts); err != nil {
		return fmt.Errorf("error bulk upserting calendar overrides: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, patientId string, date time.Time) error {
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return ErrOverrideNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{
		"patientId": patientObjId,
		"date":      date,
	})
	if err != nil {
		return fmt.Errorf("error deleting calendar override: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

func (r *repository) ListRange(ctx context.Context, patientId string, from time.Time, to time.Time) ([]*CalendarEvent, error) {
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, nil
	}

	selector := bson.M{
		"patientId": patientObjId,
		"date": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing calendar overrides: %w", err)
	}

	var events []*CalendarEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("error decoding calendar overrides: %w", err)
	}

	return events, nil
}
