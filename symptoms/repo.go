package symptoms

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

const CollectionName = "symptom_observations"

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test MockRepository

type Repository interface {
	Upsert(ctx context.Context, observation Observation) (*Observation, error)
	List(ctx context.Context, filter *Filter) ([]*Observation, error)
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
				{Key: "symptomType", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("OneFactPerSymptomPerDay"),
		},
	})
	return err
}

// Upsert keeps one fact per (patient, date, symptom type); a resubmission
// for the same day replaces the previous values.
func (r *repository) Upsert(ctx context.Context, observation Observation) (*Observation, error) {
	selector := bson.M{
		"patientId":   observation.PatientId,
		"date":        observation.Date,
		"symptomType": observation.Type,
	}
	update := bson.M{
		"$set": bson.M{
			"present":          observation.Present,
			"intensity":        observation.Intensity,
			"count":            observation.Count,
			"feverTemperature": observation.FeverTemperature,
			"feverChills":      observation.FeverChills,
			"updatedTime":      time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	result := &Observation{}
	err := r.collection.FindOneAndUpdate(ctx, selector, update, opts).Decode(result)
	if err != nil {
		return nil, fmt.Errorf("error upserting symptom observation: %w", err)
	}

	return result, nil
}

func (r *repository) List(ctx context.Context, filter *Filter) ([]*Observation, error) {
	selector := bson.M{}
	if filter != nil {
		if filter.PatientId != nil {
			patientObjId, err := primitive.ObjectIDFromHex(*filter.PatientId)
			if err != nil {
				return nil, nil
			}
			selector["patientId"] = patientObjId
		}
		if filter.Type != nil {
			selector["symptomType"] = *filter.Type
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "patientId", Value: 1}, {Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing symptom observations: %w", err)
	}

	var observations []*Observation
	if err = cursor.All(ctx, &observations); err != nil {
		return nil, fmt.Errorf("error decoding symptom observations: %w", err)
	}

	return observations, nil
}
