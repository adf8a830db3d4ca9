package schedule_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx/fxtest"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/schedule"
	dbTest "github.com/oncycle-org/adherence/store/test"
)

var _ = Describe("Calendar Overrides Repository", func() {
	var repo schedule.Repository
	var collection *mongo.Collection
	var patientId primitive.ObjectID

	BeforeEach(func() {
		var err error
		database := dbTest.GetTestDatabase()
		collection = database.Collection(schedule.CollectionName)
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repo, err = schedule.NewRepository(database, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		lifecycle.RequireStart()

		patientId = primitive.NewObjectID()
	})

	AfterEach(func() {
		_, err := collection.DeleteMany(context.Background(), primitive.M{})
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Upsert", func() {
		It("creates an override for the date", func() {
			result, err := repo.Upsert(context.Background(), schedule.CalendarEvent{
				PatientId: patientId,
				Date:      day("2024-02-01"),
				EventType: schedule.EventPause,
				Notes:     pointer.FromAny("toxicity pause"),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Id).ToNot(BeNil())
			Expect(result.EventType).To(Equal(schedule.EventPause))
		})

		It("replaces an existing override instead of duplicating it", func() {
			date := day("2024-02-01")
			first, err := repo.Upsert(context.Background(), schedule.CalendarEvent{
				PatientId: patientId,
				Date:      date,
				EventType: schedule.EventPause,
			})
			Expect(err).ToNot(HaveOccurred())

			second, err := repo.Upsert(context.Background(), schedule.CalendarEvent{
				PatientId: patientId,
				Date:      date,
				EventType: schedule.EventTaken,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(second.Id).To(Equal(first.Id))
			Expect(second.EventType).To(Equal(schedule.EventTaken))

			count, err := collection.CountDocuments(context.Background(), primitive.M{"patientId": patientId})
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(1)))
		})
	})

	Describe("UpsertMany", func() {
		It("is idempotent across retries", func() {
			events := make([]schedule.CalendarEvent, 0, 7)
			for i := 0; i < 7; i++ {
				events = append(events, schedule.CalendarEvent{
					PatientId: patientId,
					Date:      dates.AddDays(day("2024-02-01"), i),
					EventType: schedule.EventPause,
				})
			}

			Expect(repo.UpsertMany(context.Background(), events)).To(Succeed())
			Expect(repo.UpsertMany(context.Background(), events)).To(Succeed())

			count, err := collection.CountDocuments(context.Background(), primitive.M{"patientId": patientId})
			Expect(err).ToNot(HaveOccurred())
			Expect(count).To(Equal(int64(7)))
		})
	})

	Describe("Delete", func() {
		It("removes the override so the canonical rule applies again", func() {
			date := day("2024-02-01")
			_, err := repo.Upsert(context.Background(), schedule.CalendarEvent{
				PatientId: patientId,
				Date:      date,
				EventType: schedule.EventMissed,
			})
			Expect(err).ToNot(HaveOccurred())

			Expect(repo.Delete(context.Background(), patientId.Hex(), date)).To(Succeed())

			result, err := repo.ListRange(context.Background(), patientId.Hex(), date, date)
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(BeEmpty())
		})

		It("returns a not found error when no override exists", func() {
			err := repo.Delete(context.Background(), patientId.Hex(), day("2024-02-01"))
			Expect(err).To(MatchError(schedule.ErrOverrideNotFound))
		})
	})

	Describe("ListRange", func() {
		It("returns overrides inside the range sorted by date", func() {
			for _, value := range []string{"2024-02-05", "2024-02-01", "2024-02-10"} {
				_, err := repo.Upsert(context.Background(), schedule.CalendarEvent{
					PatientId: patientId,
					Date:      day(value),
					EventType: schedule.EventTaken,
				})
				Expect(err).ToNot(HaveOccurred())
			}

			result, err := repo.ListRange(context.Background(), patientId.Hex(), day("2024-02-01"), day("2024-02-05"))
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(2))
			Expect(result[0].Date).To(Equal(day("2024-02-01")))
			Expect(result[1].Date).To(Equal(day("2024-02-05")))
		})
	})
})
