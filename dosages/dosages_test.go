package dosages_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/dosages"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/patients"
)

func day(value string) time.Time {
	d, err := dates.Parse(value)
	Expect(err).ToNot(HaveOccurred())
	return d
}

func metastaticPalbociclibPatient(dosage string) *patients.Patient {
	id := primitive.NewObjectID()
	start := day("2024-01-01")
	return &patients.Patient{
		Id:                     &id,
		Medication:             medications.Palbociclib,
		Dosage:                 dosage,
		TreatmentSetting:       medications.SettingMetastatic,
		TreatmentStartDate:     &start,
		CurrentDosageStartDate: &start,
	}
}

var _ = Describe("Treatment weeks", func() {
	now := day("2024-05-01")

	Describe("WeeksOnTreatment", func() {
		It("rounds elapsed days up to whole weeks", func() {
			patient := metastaticPalbociclibPatient("125mg")
			// 2024-01-01 to 2024-05-01 is 121 days
			Expect(dosages.WeeksOnTreatment(patient, now)).To(Equal(18))
		})

		It("is zero when no start date is set", func() {
			patient := metastaticPalbociclibPatient("125mg")
			patient.TreatmentStartDate = nil
			Expect(dosages.WeeksOnTreatment(patient, now)).To(Equal(0))
		})
	})

	Describe("WeeksOnCurrentDosage", func() {
		It("equals weeks on treatment at the maximum labeled dosage", func() {
			patient := metastaticPalbociclibPatient("125mg")
			entryId := primitive.NewObjectID()
			open := &dosages.HistoryEntry{
				Id:        &entryId,
				PatientId: *patient.Id,
				Dosage:    "125mg",
				StartDate: day("2024-03-01"),
			}

			weeks, err := dosages.WeeksOnCurrentDosage(patient, open, now)
			Expect(err).ToNot(HaveOccurred())
			Expect(weeks).To(Equal(dosages.WeeksOnTreatment(patient, now)))
		})

		It("counts from the open entry's start below the maximum dosage", func() {
			patient := metastaticPalbociclibPatient("100mg")
			entryId := primitive.NewObjectID()
			open := &dosages.HistoryEntry{
				Id:        &entryId,
				PatientId: *patient.Id,
				Dosage:    "100mg",
				StartDate: day("2024-03-01"),
			}

			weeks, err := dosages.WeeksOnCurrentDosage(patient, open, now)
			Expect(err).ToNot(HaveOccurred())
			// 2024-03-01 to 2024-05-01, not from the treatment start
			Expect(weeks).To(Equal(dates.WeeksBetween(day("2024-03-01"), now)))
			Expect(weeks).To(BeNumerically("<=", dosages.WeeksOnTreatment(patient, now)))
		})

		It("falls back to the patient record when the history row is missing", func() {
			patient := metastaticPalbociclibPatient("100mg")
			dosageStart := day("2024-04-01")
			patient.CurrentDosageStartDate = &dosageStart

			weeks, err := dosages.WeeksOnCurrentDosage(patient, nil, now)
			Expect(err).ToNot(HaveOccurred())
			Expect(weeks).To(Equal(dates.WeeksBetween(dosageStart, now)))
		})

		It("is zero when neither a history row nor a dosage start date exists", func() {
			patient := metastaticPalbociclibPatient("100mg")
			patient.CurrentDosageStartDate = nil

			weeks, err := dosages.WeeksOnCurrentDosage(patient, nil, now)
			Expect(err).ToNot(HaveOccurred())
			Expect(weeks).To(Equal(0))
		})

		It("rejects an open entry that disagrees with the patient's dosage", func() {
			patient := metastaticPalbociclibPatient("100mg")
			entryId := primitive.NewObjectID()
			open := &dosages.HistoryEntry{
				Id:        &entryId,
				PatientId: *patient.Id,
				Dosage:    "75mg",
				StartDate: day("2024-03-01"),
			}

			_, err := dosages.WeeksOnCurrentDosage(patient, open, now)
			Expect(err).To(MatchError(dosages.ErrDosageMismatch))
		})
	})
})

var _ = Describe("Rollover", func() {
	It("closes the open entry the day before the change takes effect", func() {
		patient := metastaticPalbociclibPatient("125mg")
		entryId := primitive.NewObjectID()
		open := &dosages.HistoryEntry{
			Id:        &entryId,
			PatientId: *patient.Id,
			Dosage:    "125mg",
			StartDate: day("2024-01-01"),
		}

		closure, entry, err := dosages.Rollover(patient, open, medications.Palbociclib, "100mg", day("2024-03-01"))
		Expect(err).ToNot(HaveOccurred())
		Expect(closure).ToNot(BeNil())
		Expect(closure.EntryId).To(Equal(entryId))
		Expect(closure.EndDate).To(Equal(day("2024-02-29")))
		Expect(closure.WeeksOnDosage).To(Equal(dates.WeeksBetween(day("2024-01-01"), day("2024-03-01"))))

		Expect(entry.Dosage).To(Equal("100mg"))
		Expect(entry.StartDate).To(Equal(day("2024-03-01")))
		Expect(entry.EndDate).To(BeNil())
	})

	It("opens a first entry when no history exists", func() {
		patient := metastaticPalbociclibPatient("125mg")
		closure, entry, err := dosages.Rollover(patient, nil, medications.Palbociclib, "125mg", day("2024-01-01"))
		Expect(err).ToNot(HaveOccurred())
		Expect(closure).To(BeNil())
		Expect(entry.StartDate).To(Equal(day("2024-01-01")))
	})

	It("rejects effective dates inside the closed part of the history", func() {
		patient := metastaticPalbociclibPatient("125mg")
		entryId := primitive.NewObjectID()
		open := &dosages.HistoryEntry{
			Id:        &entryId,
			PatientId: *patient.Id,
			Dosage:    "125mg",
			StartDate: day("2024-03-01"),
		}

		_, _, err := dosages.Rollover(patient, open, medications.Palbociclib, "100mg", day("2024-02-01"))
		Expect(err).To(MatchError(dosages.ErrInvalidEffectiveDate))
	})
})
