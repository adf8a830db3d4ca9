package alerts

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/oncycle-org/adherence/store"
)

const CollectionName = "alerts"

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test MockRepository

type Repository interface {
	Create(ctx context.Context, alert Alert) (*Alert, error)
	Resolve(ctx context.Context, alertId string) error
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Alert, error)
	DeleteByMessage(ctx context.Context, messageId string) error
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
				{Key: "resolved", Value: 1},
				{Key: "createdTime", Value: -1},
			},
			Options: options.Index().
				SetName("ActiveAlertsByPatient"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, alert Alert) (*Alert, error) {
	alert.Resolved = false
	alert.CreatedTime = time.Now()

	res, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return nil, fmt.Errorf("error creating alert: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	alert.Id = &id
	return &alert, nil
}

// Resolve marks the alert resolved. Resolving an already resolved alert is
// a no-op, not an error.
func (r *repository) Resolve(ctx context.Context, alertId string) error {
	objId, err := primitive.ObjectIDFromHex(alertId)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objId}, bson.M{
		"$set": bson.M{"resolved": true},
	})
	if err != nil {
		return fmt.Errorf("error resolving alert: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Alert, error) {
	selector := bson.M{}
	if filter != nil {
		if filter.PatientIds != nil {
			selector["patientId"] = bson.M{"$in": store.ObjectIDSFromStringArray(filter.PatientIds)}
		}
		if filter.Resolved != nil {
			selector["resolved"] = *filter.Resolved
		}
		if filter.Severity != nil {
			selector["severity"] = *filter.Severity
		}
	}

	opts := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Offset)).
		SetSort(bson.D{{Key: "createdTime", Value: -1}})

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing alerts: %w", err)
	}

	var alerts []*Alert
	if err = cursor.All(ctx, &alerts); err != nil {
		return nil, fmt.Errorf("error decoding alerts: %w", err)
	}

	return alerts, nil
}

func (r *repository) DeleteByMessage(ctx context.Context, messageId string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"messageId": messageId})
	if err != nil {
		return fmt.Errorf("error deleting alerts for message: %w", err)
	}
	return nil
}
