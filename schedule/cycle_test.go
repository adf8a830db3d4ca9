package schedule_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/schedule"
)

func day(value string) time.Time {
	d, err := dates.Parse(value)
	Expect(err).ToNot(HaveOccurred())
	return d
}

var _ = Describe("Cycle calculator", func() {
	Describe("CanonicalState", func() {
		It("always returns take for abemaciclib", func() {
			for offset := 0; offset < 120; offset++ {
				date := dates.AddDays(schedule.Epoch, offset)
				Expect(schedule.CanonicalState(medications.Abemaciclib, date)).To(Equal(schedule.StateTake))
			}
		})

		It("returns take for the first 21 days of the cycle and pause for the last 7", func() {
			for _, medication := range []medications.Medication{medications.Ribociclib, medications.Palbociclib} {
				takes, pauses := 0, 0
				var pauseOffsets []int
				for offset := 0; offset < 28; offset++ {
					date := dates.AddDays(schedule.Epoch, offset)
					switch schedule.CanonicalState(medication, date) {
					case schedule.StateTake:
						takes++
					case schedule.StatePause:
						pauses++
						pauseOffsets = append(pauseOffsets, offset)
					}
				}
				Expect(takes).To(Equal(21))
				Expect(pauses).To(Equal(7))
				Expect(pauseOffsets).To(Equal([]int{21, 22, 23, 24, 25, 26, 27}))
			}
		})

		It("keeps the 21/7 shape over any 28 consecutive days", func() {
			for start := 0; start < 56; start++ {
				takes := 0
				for offset := start; offset < start+28; offset++ {
					date := dates.AddDays(schedule.Epoch, offset)
					if schedule.CanonicalState(medications.Ribociclib, date) == schedule.StateTake {
						takes++
					}
				}
				Expect(takes).To(Equal(21))
			}
		})

		It("returns pause on cycle day 21 and take on cycle day 20", func() {
			Expect(schedule.CanonicalState(medications.Ribociclib, day("2024-01-22"))).To(Equal(schedule.StatePause))
			Expect(schedule.CanonicalState(medications.Ribociclib, day("2024-01-21"))).To(Equal(schedule.StateTake))
		})

		It("falls back to pause for unknown medications", func() {
			Expect(schedule.CanonicalState("unknownib", day("2024-02-14"))).To(Equal(schedule.StatePause))
		})

		It("falls back to pause before the epoch", func() {
			Expect(schedule.CanonicalState(medications.Palbociclib, day("2023-12-31"))).To(Equal(schedule.StatePause))
		})
	})

	Describe("CycleDay", func() {
		It("is zero-based at the epoch", func() {
			cycleDay, ok := schedule.CycleDay(schedule.Epoch)
			Expect(ok).To(BeTrue())
			Expect(cycleDay).To(Equal(0))
		})

		It("wraps after 28 days", func() {
			cycleDay, ok := schedule.CycleDay(dates.AddDays(schedule.Epoch, 29))
			Expect(ok).To(BeTrue())
			Expect(cycleDay).To(Equal(1))
		})

		It("reports dates before the epoch as out of range", func() {
			_, ok := schedule.CycleDay(dates.AddDays(schedule.Epoch, -1))
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("BuildSchedule", func() {
	It("lets an override supersede the canonical rule for its date", func() {
		date := day("2024-01-03")
		overrides := []*schedule.CalendarEvent{
			{PatientId: primitive.NewObjectID(), Date: date, EventType: schedule.EventPause},
		}

		result := schedule.BuildSchedule(medications.Ribociclib, day("2024-01-01"), day("2024-01-05"), overrides)
		Expect(result).To(HaveLen(5))
		Expect(result[2].State).To(Equal(schedule.StatePause))
		Expect(result[2].Source).To(Equal(schedule.SourceOverride))
		Expect(result[1].State).To(Equal(schedule.StateTake))
		Expect(result[1].Source).To(Equal(schedule.SourceCanonical))
	})

	It("reverts to the canonical state without an override", func() {
		result := schedule.BuildSchedule(medications.Ribociclib, day("2024-01-03"), day("2024-01-03"), nil)
		Expect(result).To(HaveLen(1))
		Expect(result[0].State).To(Equal(schedule.StateTake))
		Expect(result[0].Source).To(Equal(schedule.SourceCanonical))
	})

	It("flags missed overrides with a distinct state", func() {
		date := day("2024-01-02")
		overrides := []*schedule.CalendarEvent{
			{PatientId: primitive.NewObjectID(), Date: date, EventType: schedule.EventMissed},
		}

		result := schedule.BuildSchedule(medications.Abemaciclib, date, date, overrides)
		Expect(result[0].State).To(Equal(schedule.StateMissed))
		Expect(result[0].Source).To(Equal(schedule.SourceOverride))
	})
})

var _ = Describe("TherapyPauseEvents", func() {
	var patientId primitive.ObjectID

	BeforeEach(func() {
		patientId = primitive.NewObjectID()
	})

	It("materializes seven consecutive pause overrides", func() {
		events := schedule.TherapyPauseEvents(patientId, medications.Abemaciclib, day("2024-04-01"), 3)
		Expect(events).To(HaveLen(7))
		for i, event := range events {
			Expect(event.EventType).To(Equal(schedule.EventPause))
			Expect(event.Date).To(Equal(dates.AddDays(day("2024-04-01"), i)))
		}
	})

	It("regenerates the following cycles for 21/7 drugs", func() {
		events := schedule.TherapyPauseEvents(patientId, medications.Ribociclib, day("2024-04-01"), 2)
		Expect(events).To(HaveLen(7 + 2*28))

		// Regenerated cycles anchor to the day after the pause week.
		Expect(events[7].Date).To(Equal(day("2024-04-08")))
		Expect(events[7].EventType).To(Equal(schedule.EventTaken))

		taken, paused := 0, 0
		for _, event := range events[7:] {
			switch event.EventType {
			case schedule.EventTaken:
				taken++
			case schedule.EventPause:
				paused++
			}
		}
		Expect(taken).To(Equal(2 * 21))
		Expect(paused).To(Equal(2 * 7))
	})
})
