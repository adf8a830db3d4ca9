package patients

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"

	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/store"
)

const CollectionName = "patients"

//go:generate mockgen --build_flags=--mod=mod -source=./repo.go -destination=./test/mock_repository.go -package test MockRepository

type Repository interface {
	Get(ctx context.Context, id string) (*Patient, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error)
	Create(ctx context.Context, patient Patient) (*Patient, error)
	Update(ctx context.Context, id string, update PatientUpdate) (*Patient, error)
	// UpdateTreatment moves the patient to a new medication and dosage.
	// Callers run it inside the same transaction that rolls the dosage
	// history forward, with the session flowing through ctx.
	UpdateTreatment(ctx context.Context, id string, medication medications.Medication, dosage string, effectiveDate time.Time) error
	Deactivate(ctx context.Context, id string) error
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
				{Key: "userId", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.D{
					{Key: "userId", Value: bson.D{{Key: "$exists", Value: true}}},
				}).
				SetName("UniquePatientUserId"),
		},
		{
			Keys: bson.D{
				{Key: "clinicianId", Value: 1},
				{Key: "active", Value: 1},
			},
			Options: options.Index().
				SetName("PatientsByClinician"),
		},
	})
	return err
}

func (r *repository) Get(ctx context.Context, id string) (*Patient, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	patient := &Patient{}
	err = r.collection.FindOne(ctx, bson.M{"_id": objId}).Decode(patient)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return patient, nil
}

func (r *repository) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error) {
	opts := options.Find().
		SetLimit(int64(pagination.Limit)).
		SetSkip(int64(pagination.Offset)).
		SetSort(bson.D{{Key: "fullName", Value: 1}, {Key: "_id", Value: 1}})

	selector := bson.M{}
	if filter.ClinicianId != nil {
		selector["clinicianId"] = *filter.ClinicianId
	}
	if filter.Medication != nil {
		selector["medication"] = *filter.Medication
	}
	if filter.TreatmentSetting != nil {
		selector["treatmentSetting"] = *filter.TreatmentSetting
	}
	if filter.Active != nil {
		selector["active"] = *filter.Active
	}

	cursor, err := r.collection.Find(ctx, selector, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing patients: %w", err)
	}

	var patients []*Patient
	if err = cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("error decoding patients list: %w", err)
	}

	return patients, nil
}

func (r *repository) Create(ctx context.Context, patient Patient) (*Patient, error) {
	now := time.Now()
	patient.Active = true
	patient.CreatedTime = now
	patient.UpdatedTime = now

	res, err := r.collection.InsertOne(ctx, patient)
	if err != nil {
		if store.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error creating patient: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	return r.Get(ctx, id.Hex())
}

func (r *repository) Update(ctx context.Context, id string, update PatientUpdate) (*Patient, error) {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objId}, bson.M{
		"$set":         update,
		"$currentDate": bson.M{"updatedTime": true},
	}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error updating patient: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *repository) UpdateTreatment(ctx context.Context, id string, medication medications.Medication, dosage string, effectiveDate time.Time) error {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objId}, bson.M{
		"$set": bson.M{
			"medication":             medication,
			"dosage":                 dosage,
			"currentDosageStartDate": effectiveDate,
		},
		"$currentDate": bson.M{"updatedTime": true},
	})
	if err != nil {
		return fmt.Errorf("error updating patient treatment: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) Deactivate(ctx context.Context, id string) error {
	objId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objId}, bson.M{
		"$set":         bson.M{"active": false},
		"$currentDate": bson.M{"updatedTime": true},
	})
	if err != nil {
		return fmt.Errorf("error deactivating patient: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}
