package patients_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx/fxtest"

	"github.com/oncycle-org/adherence/patients"
	patientsTest "github.com/oncycle-org/adherence/patients/test"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/store"
	dbTest "github.com/oncycle-org/adherence/store/test"
)

var _ = Describe("Patients Repository", func() {
	var repo patients.Repository
	var database *mongo.Database
	var collection *mongo.Collection

	BeforeEach(func() {
		var err error
		database = dbTest.GetTestDatabase()
		collection = database.Collection(patients.CollectionName)
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repo, err = patients.NewRepository(database, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(repo).ToNot(BeNil())
		lifecycle.RequireStart()
	})

	AfterEach(func() {
		_, err := collection.DeleteMany(context.Background(), primitive.M{})
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Create", func() {
		It("returns the created patient with an id and active flag set", func() {
			patient := patientsTest.RandomPatient()
			result, err := repo.Create(context.Background(), patient)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).ToNot(BeNil())
			Expect(result.Id).ToNot(BeNil())
			Expect(result.Active).To(BeTrue())
			Expect(result.Medication).To(Equal(patient.Medication))
			Expect(result.Dosage).To(Equal(patient.Dosage))
		})

		It("rejects a second patient with the same user id", func() {
			patient := patientsTest.RandomPatient()
			_, err := repo.Create(context.Background(), patient)
			Expect(err).ToNot(HaveOccurred())

			duplicate := patientsTest.RandomPatient()
			duplicate.UserId = patient.UserId
			_, err = repo.Create(context.Background(), duplicate)
			Expect(err).To(MatchError(patients.ErrDuplicate))
		})
	})

	Describe("Get", func() {
		It("returns the correct patient", func() {
			created, err := repo.Create(context.Background(), patientsTest.RandomPatient())
			Expect(err).ToNot(HaveOccurred())

			result, err := repo.Get(context.Background(), created.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(result.UserId).To(Equal(created.UserId))
		})

		It("returns a not found error for unknown ids", func() {
			_, err := repo.Get(context.Background(), primitive.NewObjectID().Hex())
			Expect(err).To(MatchError(patients.ErrNotFound))
		})
	})

	Describe("List", func() {
		It("filters by clinician and active state", func() {
			clinicianId := "clinician-under-test"
			assigned := patientsTest.RandomPatient()
			assigned.ClinicianId = &clinicianId
			created, err := repo.Create(context.Background(), assigned)
			Expect(err).ToNot(HaveOccurred())

			_, err = repo.Create(context.Background(), patientsTest.RandomPatient())
			Expect(err).ToNot(HaveOccurred())

			result, err := repo.List(context.Background(), &patients.Filter{
				ClinicianId: &clinicianId,
				Active:      pointer.FromAny(true),
			}, store.DefaultPagination())
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Id).To(Equal(created.Id))
		})
	})

	Describe("Deactivate", func() {
		It("soft-deactivates without deleting the record", func() {
			created, err := repo.Create(context.Background(), patientsTest.RandomPatient())
			Expect(err).ToNot(HaveOccurred())

			Expect(repo.Deactivate(context.Background(), created.Id.Hex())).To(Succeed())

			result, err := repo.Get(context.Background(), created.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Active).To(BeFalse())
		})

		It("returns a not found error for unknown ids", func() {
			err := repo.Deactivate(context.Background(), primitive.NewObjectID().Hex())
			Expect(err).To(MatchError(patients.ErrNotFound))
		})
	})
})
