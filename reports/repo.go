package reports

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

const CollectionName = "missed_medication_reports"

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test MockRepository

type Repository interface {
	Create(ctx context.Context, report Report) (*Report, error)
	GetByMissedDate(ctx context.Context, patientId string, date time.Time) (*Report, error)
	UpdateDates(ctx context.Context, id primitive.ObjectID, missedDates []time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByPatient(ctx context.Context, patientId string) ([]*Report, error)
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
				{Key: "missedDates", Value: 1},
			},
			Options: options.Index().
				SetName("ReportsByPatientAndDate"),
		},
	})
	return err
}

func (r *repository) Create(ctx context.Context, report Report) (*Report, error) {
	report.CreatedTime = time.Now()

	res, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("error creating missed medication report: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	report.Id = &id
	return &report, nil
}

func (r *repository) GetByMissedDate(ctx context.Context, patientId string, date time.Time) (*Report, error) {
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, ErrNoMissedDate
	}

	report := &Report{}
	err = r.collection.FindOne(ctx, bson.M{
		"patientId":   patientObjId,
		"missedDates": date,
	}).Decode(report)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNoMissedDate
	} else if err != nil {
		return nil, fmt.Errorf("error finding missed medication report: %w", err)
	}

	return report, nil
}

func (r *repository) UpdateDates(ctx context.Context, id primitive.ObjectID, missedDates []time.Time) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"missedDates": missedDates},
	})
	if err != nil {
		return fmt.Errorf("error updating missed medication report: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("error deleting missed medication report: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) ListByPatient(ctx context.Context, patientId string) ([]*Report, error) {
	patientObjId, err := primitive.ObjectIDFromHex(patientId)
	if err != nil {
		return nil, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdTime", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"patientId": patientObjId}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing missed medication reports: %w", err)
	}

	var reports []*Report
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("error decoding missed medication reports: %w", err)
	}

	return reports, nil
}
