package alerts_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx/fxtest"

	"github.com/oncycle-org/adherence/alerts"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/store"
	dbTest "github.com/oncycle-org/adherence/store/test"
)

var _ = Describe("Alerts Repository", func() {
	var repo alerts.Repository
	var collection *mongo.Collection
	var patientId primitive.ObjectID

	BeforeEach(func() {
		var err error
		database := dbTest.GetTestDatabase()
		collection = database.Collection(alerts.CollectionName)
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repo, err = alerts.NewRepository(database, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()

		patientId = primitive.NewObjectID()
	})

	AfterEach(func() {
		_, err := collection.DeleteMany(context.Background(), primitive.M{})
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Create", func() {
		It("creates an unresolved alert", func() {
			created, err := repo.Create(context.Background(), alerts.Alert{
				PatientId: patientId,
				Type:      alerts.TypeSymptom,
				Message:   "diarrea intensity 8",
				Severity:  alerts.SeverityHigh,
				Resolved:  true, // must be ignored
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(created.Id).ToNot(BeNil())
			Expect(created.Resolved).To(BeFalse())
			Expect(created.CreatedTime).ToNot(BeZero())
		})
	})

	Describe("Resolve", func() {
		It("marks the alert resolved and is idempotent", func() {
			created, err := repo.Create(context.Background(), alerts.Alert{
				PatientId: patientId,
				Type:      alerts.TypeManual,
				Severity:  alerts.SeverityLow,
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(repo.Resolve(context.Background(), created.Id.Hex())).To(Succeed())
			Expect(repo.Resolve(context.Background(), created.Id.Hex())).To(Succeed())

			active, err := repo.List(context.Background(), &alerts.Filter{
				PatientIds: []string{patientId.Hex()},
				Resolved:   pointer.FromAny(false),
			}, store.DefaultPagination())
			Expect(err).ToNot(HaveOccurred())
			Expect(active).To(BeEmpty())
		})

		It("reports unknown alerts", func() {
			err := repo.Resolve(context.Background(), primitive.NewObjectID().Hex())
			Expect(err).To(MatchError(alerts.ErrNotFound))
		})
	})

	Describe("List", func() {
		It("filters to the unresolved alerts of the given patients", func() {
			other := primitive.NewObjectID()
			for _, id := range []primitive.ObjectID{patientId, other} {
				_, err := repo.Create(context.Background(), alerts.Alert{
					PatientId: id,
					Type:      alerts.TypeSymptom,
					Severity:  alerts.SeverityHigh,
				})
				Expect(err).ToNot(HaveOccurred())
			}

			resolved, err := repo.Create(context.Background(), alerts.Alert{
				PatientId: patientId,
				Type:      alerts.TypeMessage,
				Severity:  alerts.SeverityMedium,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(repo.Resolve(context.Background(), resolved.Id.Hex())).To(Succeed())

			active, err := repo.List(context.Background(), &alerts.Filter{
				PatientIds: []string{patientId.Hex()},
				Resolved:   pointer.FromAny(false),
			}, store.DefaultPagination())
			Expect(err).ToNot(HaveOccurred())
			Expect(active).To(HaveLen(1))
			Expect(active[0].PatientId).To(Equal(patientId))
		})
	})

	Describe("DeleteByMessage", func() {
		It("removes the alerts spawned by a retracted message", func() {
			messageId := primitive.NewObjectID().Hex()
			_, err := repo.Create(context.Background(), alerts.Alert{
				PatientId: patientId,
				Type:      alerts.TypeMessage,
				Severity:  alerts.SeverityMedium,
				MessageId: &messageId,
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(repo.DeleteByMessage(context.Background(), messageId)).To(Succeed())

			remaining, err := repo.List(context.Background(), &alerts.Filter{
				PatientIds: []string{patientId.Hex()},
			}, store.DefaultPagination())
			Expect(err).ToNot(HaveOccurred())
			Expect(remaining).To(BeEmpty())
		})
	})
})
