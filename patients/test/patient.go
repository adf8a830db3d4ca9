package test

import (
	"time"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/patients"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/test"
)

// RandomTreatment picks a (setting, medication, dosage) triple with at least
// one labeled dosage, so generated patients always satisfy the catalog.
func RandomTreatment() (medications.TreatmentSetting, medications.Medication, string) {
	for {
		setting := medications.Settings[test.Rand.Intn(len(medications.Settings))]
		medication := medications.Medications[test.Rand.Intn(len(medications.Medications))]
		valid := medications.ValidDosages(setting, medication)
		if len(valid) == 0 {
			continue
		}
		return setting, medication, valid[test.Rand.Intn(len(valid))]
	}
}

func RandomPatient() patients.Patient {
	setting, medication, dosage := RandomTreatment()
	start := dates.AddDays(dates.Truncate(time.Now()), -test.Faker.IntBetween(30, 400))
	return patients.Patient{
		UserId:                 pointer.FromAny(test.Faker.UUID().V4()),
		FullName:               pointer.FromAny(test.Faker.Person().Name()),
		Email:                  pointer.FromAny(test.Faker.Internet().Email()),
		Medication:             medication,
		Dosage:                 dosage,
		TreatmentSetting:       setting,
		TreatmentStartDate:     &start,
		CurrentDosageStartDate: &start,
		ClinicianId:            pointer.FromAny(test.Faker.UUID().V4()),
		Active:                 true,
	}
}
