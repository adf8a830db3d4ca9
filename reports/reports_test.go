package reports_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/patients"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/reports"
)

var _ = Describe("Adherence", func() {
	var patient *patients.Patient
	var patientId primitive.ObjectID
	var now time.Time

	mustParse := func(value string) time.Time {
		t, err := dates.Parse(value)
		Expect(err).ToNot(HaveOccurred())
		return t
	}

	report := func(dateStrings ...string) *reports.Report {
		missed := make([]time.Time, 0, len(dateStrings))
		for _, value := range dateStrings {
			missed = append(missed, mustParse(value))
		}
		return &reports.Report{
			PatientId:   patientId,
			MissedDates: missed,
		}
	}

	BeforeEach(func() {
		patientId = primitive.NewObjectID()
		now = mustParse("2024-03-11")
		patient = &patients.Patient{
			Id:                 &patientId,
			TreatmentStartDate: pointer.FromAny(mustParse("2024-03-01")),
		}
	})

	It("is 100 when no doses were missed", func() {
		Expect(reports.Adherence(patient, nil, now)).To(Equal(float64(100)))
	})

	It("is 100 when treatment has not started yet", func() {
		patient.TreatmentStartDate = pointer.FromAny(mustParse("2024-03-11"))
		result := reports.Adherence(patient, []*reports.Report{report("2024-03-10")}, now)
		Expect(result).To(Equal(float64(100)))
	})

	It("is 100 for a patient without a treatment start date", func() {
		patient.TreatmentStartDate = nil
		result := reports.Adherence(patient, []*reports.Report{report("2024-03-10")}, now)
		Expect(result).To(Equal(float64(100)))
	})

	It("subtracts missed days from the treatment window", func() {
		// 10 days of treatment, 2 missed
		result := reports.Adherence(patient, []*reports.Report{report("2024-03-02", "2024-03-03")}, now)
		Expect(result).To(Equal(float64(80)))
	})

	It("counts a date reported twice only once", func() {
		all := []*reports.Report{
			report("2024-03-02", "2024-03-03"),
			report("2024-03-03"),
		}
		Expect(reports.Adherence(patient, all, now)).To(Equal(float64(80)))
	})

	It("never goes below zero", func() {
		patient.TreatmentStartDate = pointer.FromAny(mustParse("2024-03-09"))
		all := []*reports.Report{report("2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05")}
		Expect(reports.Adherence(patient, all, now)).To(Equal(float64(0)))
	})
})
