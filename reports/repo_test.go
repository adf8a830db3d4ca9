package reports_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx/fxtest"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/reports"
	dbTest "github.com/oncycle-org/adherence/store/test"
)

var _ = Describe("Reports Repository", func() {
	var repo reports.Repository
	var collection *mongo.Collection
	var patientId primitive.ObjectID

	mustParse := func(value string) time.Time {
		t, err := dates.Parse(value)
		Expect(err).ToNot(HaveOccurred())
		return t
	}

	BeforeEach(func() {
		var err error
		database := dbTest.GetTestDatabase()
		collection = database.Collection(reports.CollectionName)
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repo, err = reports.NewRepository(database, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()

		patientId = primitive.NewObjectID()
	})

	AfterEach(func() {
		_, err := collection.DeleteMany(context.Background(), primitive.M{})
		Expect(err).ToNot(HaveOccurred())
	})

	create := func(dateStrings ...string) *reports.Report {
		missed := make([]time.Time, 0, len(dateStrings))
		for _, value := range dateStrings {
			missed = append(missed, mustParse(value))
		}
		created, err := repo.Create(context.Background(), reports.Report{
			PatientId:   patientId,
			MissedDates: missed,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(created.Id).ToNot(BeNil())
		return created
	}

	Describe("GetByMissedDate", func() {
		It("matches a report containing the date", func() {
			created := create("2024-03-05", "2024-03-07")

			found, err := repo.GetByMissedDate(context.Background(), patientId.Hex(), mustParse("2024-03-07"))
			Expect(err).ToNot(HaveOccurred())
			Expect(found.Id).To(Equal(created.Id))
		})

		It("fails when no report contains the date", func() {
			create("2024-03-05")

			_, err := repo.GetByMissedDate(context.Background(), patientId.Hex(), mustParse("2024-03-06"))
			Expect(err).To(MatchError(reports.ErrNoMissedDate))
		})

		It("does not match reports of other patients", func() {
			create("2024-03-05")

			_, err := repo.GetByMissedDate(context.Background(), primitive.NewObjectID().Hex(), mustParse("2024-03-05"))
			Expect(err).To(MatchError(reports.ErrNoMissedDate))
		})
	})

	Describe("UpdateDates", func() {
		It("replaces the dates and keeps the rest of the report", func() {
			created := create("2024-03-05", "2024-03-07")

			err := repo.UpdateDates(context.Background(), *created.Id, []time.Time{mustParse("2024-03-07")})
			Expect(err).ToNot(HaveOccurred())

			found, err := repo.GetByMissedDate(context.Background(), patientId.Hex(), mustParse("2024-03-07"))
			Expect(err).ToNot(HaveOccurred())
			Expect(found.Id).To(Equal(created.Id))
			Expect(found.MissedDates).To(HaveLen(1))
		})

		It("fails for an unknown report", func() {
			err := repo.UpdateDates(context.Background(), primitive.NewObjectID(), []time.Time{mustParse("2024-03-07")})
			Expect(err).To(MatchError(reports.ErrNotFound))
		})
	})

	Describe("Delete", func() {
		It("removes the report", func() {
			created := create("2024-03-05")

			Expect(repo.Delete(context.Background(), *created.Id)).To(Succeed())

			_, err := repo.GetByMissedDate(context.Background(), patientId.Hex(), mustParse("2024-03-05"))
			Expect(err).To(MatchError(reports.ErrNoMissedDate))
		})

		It("fails for an unknown report", func() {
			err := repo.Delete(context.Background(), primitive.NewObjectID())
			Expect(err).To(MatchError(reports.ErrNotFound))
		})
	})

	Describe("ListByPatient", func() {
		It("returns only the patient's reports", func() {
			create("2024-03-05")
			create("2024-03-07")

			otherPatient := patientId
			patientId = primitive.NewObjectID()
			create("2024-03-09")
			patientId = otherPatient

			list, err := repo.ListByPatient(context.Background(), patientId.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(list).To(HaveLen(2))
		})
	})
})
