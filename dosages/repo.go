package dosages

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

const CollectionName = "dosage_history"

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test MockRepository

type Repository interface {
	List(ctx context.Context, filter *Filter) ([]*HistoryEntry, error)
	GetOpenEntry(ctx context.Context, patientId string) (*HistoryEntry, error)
	Create(ctx context.Context, entry HistoryEntry) (*HistoryEntry, error)
	CloseEntry(ctx context.Context, id primitive.ObjectID, endDate time.Time, weeksOnDosage int) error
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
				{Key: "startDate", Value: 1},
			},
			Options: options.Index().
				SetName("HistoryByPatient"),
		},
		{
			Keys: bson.D{
				{Key: "patientId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{
					{Key: "endDate", Value: bson.D{{Key: "$exists", Value: false}}},
				}).
				SetName("SingleOpenEntryPerPatient"),
		},
	})
	return err
}

func (r *repository) List(ctx context.Context, filter *Filter) ([]*HistoryEntry, error) {
	selector := bson.M{}
	if filter != nil {
		if filter.PatientId != nil {
			patientObjId, err := primitive.ObjectIDFromHex(*filter.PatientId)
			if err != nil {
				return nil, nil
			}
			selector["patientId"] = patientObjId
		}
		if filter.Medication != nil {
			selector["medication"] = *filter.Medication
		}
		if filter.TreatmentSetting != nil {
			selector["treatmentSetting"] = *filter.TreatmentSetting
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "patientId", Value: 1}, {Key: "startDate", Value: 1}})
	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing dosage history: %w", err)
	}

	var entries []*HistoryEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding dosage history: %w", err)
	}

	return entries, nil
}

// GetOpenEntry returns the single entry with no end date. Finding more than
// one means the history is corrupt and the error says so instead of
// picking an entry.
func (r *repository) GetOpenEntry(ctx context.Context, patientId string) (*HistoryEntry, error) {
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, ErrNoOpenEntry
	}

	selector := bson.M{
		"patientId": patientObjId,
		"endDate":   bson.M{"$exists": false},
	}
	cursor, err := r.collection.Find(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("error finding open dosage entry: %w", err)
	}

	var entries []*HistoryEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding open dosage entry: %w", err)
	}

	switch len(entries) {
	case 0:
		return nil, ErrNoOpenEntry
	case 1:
		return entries[0], nil
	default:
		return nil, ErrMultipleOpenEntries
	}
}

func (r *repository) Create(ctx context.Context, entry HistoryEntry) (*HistoryEntry, error) {
	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating dosage history entry: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	entry.Id = &id
	return &entry, nil
}

func (r *repository) CloseEntry(ctx context.Context, id primitive.ObjectID, endDate time.Time, weeksOnDosage int) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id, "endDate": bson.M{"$exists": false}}, bson.M{
		"$set": bson.M{
			"endDate":       endDate,
			"weeksOnDosage": weeksOnDosage,
		},
	})
	if err != nil {
		return fmt.Errorf("error closing dosage history entry: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNoOpenEntry
	}

	return nil
}
