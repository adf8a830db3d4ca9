package symptoms_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx/fxtest"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/pointer"
	dbTest "github.com/oncycle-org/adherence/store/test"
	"github.com/oncycle-org/adherence/symptoms"
)

var _ = BeforeSuite(dbTest.SetupDatabase)
var _ = AfterSuite(dbTest.TeardownDatabase)

var _ = Describe("Symptoms Repository", func() {
	var repo symptoms.Repository
	var collection *mongo.Collection
	var patientId primitive.ObjectID
	var date time.Time

	BeforeEach(func() {
		var err error
		database := dbTest.GetTestDatabase()
		collection = database.Collection(symptoms.CollectionName)
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repo, err = symptoms.NewRepository(database, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()

		patientId = primitive.NewObjectID()
		date, err = dates.Parse("2024-03-05")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		_, err := collection.DeleteMany(context.Background(), primitive.M{})
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Upsert", func() {
		It("keeps a single fact per patient, date and type", func() {
			first, err := repo.Upsert(context.Background(), symptoms.Observation{
				PatientId: patientId,
				Date:      date,
				Type:      symptoms.SymptomNausea,
				Present:   true,
				Intensity: pointer.FromAny(4),
			})
			Expect(err).ToNot(HaveOccurred())

			second, err := repo.Upsert(context.Background(), symptoms.Observation{
				PatientId: patientId,
				Date:      date,
				Type:      symptoms.SymptomNausea,
				Present:   true,
				Intensity: pointer.FromAny(8),
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(second.Id).To(Equal(first.Id))
			Expect(second.Intensity).To(HaveValue(Equal(8)))

			count, err := collection.CountDocuments(context.Background(), primitive.M{"patientId": patientId})
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})

		It("stores different symptom types of the same day separately", func() {
			for _, symptomType := range []symptoms.SymptomType{symptoms.SymptomNausea, symptoms.SymptomFatigue} {
				_, err := repo.Upsert(context.Background(), symptoms.Observation{
					PatientId: patientId,
					Date:      date,
					Type:      symptomType,
					Present:   true,
				})
				Expect(err).ToNot(HaveOccurred())
			}

			count, err := collection.CountDocuments(context.Background(), primitive.M{"patientId": patientId})
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})
	})

	Describe("List", func() {
		It("filters by symptom type", func() {
			for _, symptomType := range []symptoms.SymptomType{symptoms.SymptomNausea, symptoms.SymptomDiarrhea} {
				_, err := repo.Upsert(context.Background(), symptoms.Observation{
					PatientId: patientId,
					Date:      date,
					Type:      symptomType,
					Present:   true,
				})
				Expect(err).ToNot(HaveOccurred())
			}

			observations, err := repo.List(context.Background(), &symptoms.Filter{
				Type: pointer.FromAny(symptoms.SymptomDiarrhea),
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(observations).To(HaveLen(1))
			Expect(observations[0].Type).To(Equal(symptoms.SymptomDiarrhea))
		})
	})
})
