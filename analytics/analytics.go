// Package analytics computes population-level rollups across patients,
// dosage history and symptom observations. All computations are read-only
// single passes over rows fetched at request time, so the results can
// never drift from the source data.
package analytics

import (
	"context"
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/oncycle-org/adherence/dosages"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/patients"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/symptoms"
)

type Filter struct {
	Medication       *medications.Medication
	TreatmentSetting *medications.TreatmentSetting
}

type DosageGroup struct {
	Medication       medications.Medication
	TreatmentSetting medications.TreatmentSetting
	Dosage           string
	PatientCount     int
	AverageWeeks     float64
}

// ReductionTiming reports how long patients stay on their initial dosages
// before reducing. A nil value means no patient on the medication has
// enough history entries, which is different from an average of zero.
type ReductionTiming struct {
	Medication      medications.Medication
	FirstReduction  *float64
	SecondReduction *float64
}

type SymptomGroup struct {
	Medication       medications.Medication
	Dosage           string
	PatientCount     int
	SeverePercentage float64
}

type SettingSummary struct {
	TreatmentSetting        medications.TreatmentSetting
	PatientCount            int
	AverageWeeksOnTreatment float64
}

type PopulationSummary struct {
	TotalPatients int
	Settings      []SettingSummary
}

type Service interface {
	DosageBreakdown(ctx context.Context, filter *Filter) ([]DosageGroup, error)
	Reductions(ctx context.Context, medication *medications.Medication) ([]ReductionTiming, error)
	SymptomByDosage(ctx context.Context, symptomType symptoms.SymptomType, setting *medications.TreatmentSetting) ([]SymptomGroup, error)
	Population(ctx context.Context) (*PopulationSummary, error)
}

// severeIntensity is the intensity at which an observation counts towards
// the symptom-by-dosage percentage.
const severeIntensity = 5

type dosageGroupKey struct {
	medication medications.Medication
	setting    medications.TreatmentSetting
	dosage     string
}

// DosageBreakdown groups history rows by (medication, setting, dosage) and
// computes the distinct patient count and the mean weeks spent on the
// dosage. Open entries have no weeksOnDosage yet and contribute zero.
func DosageBreakdown(entries []*dosages.HistoryEntry) []DosageGroup {
	groupPatients := make(map[dosageGroupKey]mapset.Set[string])
	totalWeeks := make(map[dosageGroupKey]int)
	rows := make(map[dosageGroupKey]int)

	for _, entry := range entries {
		key := dosageGroupKey{
			medication: entry.Medication,
			setting:    entry.TreatmentSetting,
			dosage:     entry.Dosage,
		}
		if _, ok := groupPatients[key]; !ok {
			groupPatients[key] = mapset.NewThreadUnsafeSet[string]()
		}
		groupPatients[key].Add(entry.PatientId.Hex())
		if entry.WeeksOnDosage != nil {
			totalWeeks[key] += *entry.WeeksOnDosage
		}
		rows[key]++
	}

	groups := make([]DosageGroup, 0, len(groupPatients))
	for key, patientIds := range groupPatients {
		groups = append(groups, DosageGroup{
			Medication:       key.medication,
			TreatmentSetting: key.setting,
			Dosage:           key.dosage,
			PatientCount:     patientIds.Cardinality(),
			AverageWeeks:     float64(totalWeeks[key]) / float64(rows[key]),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Medication != groups[j].Medication {
			return groups[i].Medication < groups[j].Medication
		}
		if groups[i].TreatmentSetting != groups[j].TreatmentSetting {
			return groups[i].TreatmentSetting < groups[j].TreatmentSetting
		}
		return groups[i].Dosage < groups[j].Dosage
	})
	return groups
}

// Reductions aggregates, per medication, how many weeks patients spent
// before their first and second dosage reductions. A patient contributes to
// firstReduction with at least two history entries (the weeks of entry 0)
// and to secondReduction with at least three (entries 0 and 1 summed).
func Reductions(entries []*dosages.HistoryEntry) []ReductionTiming {
	byPatient := make(map[string][]*dosages.HistoryEntry)
	for _, entry := range entries {
		patientId := entry.PatientId.Hex()
		byPatient[patientId] = append(byPatient[patientId], entry)
	}

	type sums struct {
		firstTotal  int
		firstCount  int
		secondTotal int
		secondCount int
	}
	byMedication := make(map[medications.Medication]*sums)

	for _, history := range byPatient {
		sort.Slice(history, func(i, j int) bool {
			return history[i].StartDate.Before(history[j].StartDate)
		})

		medication := history[len(history)-1].Medication
		if _, ok := byMedication[medication]; !ok {
			byMedication[medication] = &sums{}
		}
		s := byMedication[medication]

		if len(history) >= 2 {
			s.firstTotal += weeksOrZero(history[0])
			s.firstCount++
		}
		if len(history) >= 3 {
			s.secondTotal += weeksOrZero(history[0]) + weeksOrZero(history[1])
			s.secondCount++
		}
	}

	timings := make([]ReductionTiming, 0, len(byMedication))
	for medication, s := range byMedication {
		timing := ReductionTiming{Medication: medication}
		if s.firstCount > 0 {
			timing.FirstReduction = pointer.FromAny(float64(s.firstTotal) / float64(s.firstCount))
		}
		if s.secondCount > 0 {
			timing.SecondReduction = pointer.FromAny(float64(s.secondTotal) / float64(s.secondCount))
		}
		timings = append(timings, timing)
	}

	sort.Slice(timings, func(i, j int) bool {
		return timings[i].Medication < timings[j].Medication
	})
	return timings
}

func weeksOrZero(entry *dosages.HistoryEntry) int {
	if entry.WeeksOnDosage == nil {
		return 0
	}
	return *entry.WeeksOnDosage
}

type symptomGroupKey struct {
	medication medications.Medication
	dosage     string
}

// SymptomByDosage computes, per (medication, dosage) pair, the percentage
// of the pair's patients with at least one severe observation of the given
// symptom. Patients are grouped by their current medication and dosage, and
// the denominator is the distinct patient count of the group.
func SymptomByDosage(all []*patients.Patient, observations []*symptoms.Observation, symptomType symptoms.SymptomType, setting *medications.TreatmentSetting) []SymptomGroup {
	severe := mapset.NewThreadUnsafeSet[string]()
	for _, observation := range observations {
		if observation.Type != symptomType {
			continue
		}
		if observation.Intensity != nil && *observation.Intensity >= severeIntensity {
			severe.Add(observation.PatientId.Hex())
		}
	}

	groupPatients := make(map[symptomGroupKey]mapset.Set[string])
	groupSevere := make(map[symptomGroupKey]mapset.Set[string])
	for _, patient := range all {
		if patient.Id == nil || patient.Dosage == "" {
			continue
		}
		if setting != nil && patient.TreatmentSetting != *setting {
			continue
		}

		key := symptomGroupKey{medication: patient.Medication, dosage: patient.Dosage}
		if _, ok := groupPatients[key]; !ok {
			groupPatients[key] = mapset.NewThreadUnsafeSet[string]()
			groupSevere[key] = mapset.NewThreadUnsafeSet[string]()
		}
		groupPatients[key].Add(patient.Id.Hex())
		if severe.Contains(patient.Id.Hex()) {
			groupSevere[key].Add(patient.Id.Hex())
		}
	}

	groups := make([]SymptomGroup, 0, len(groupPatients))
	for key, patientIds := range groupPatients {
		groups = append(groups, SymptomGroup{
			Medication:       key.medication,
			Dosage:           key.dosage,
			PatientCount:     patientIds.Cardinality(),
			SeverePercentage: float64(groupSevere[key].Cardinality()) / float64(patientIds.Cardinality()) * 100,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Medication != groups[j].Medication {
			return groups[i].Medication < groups[j].Medication
		}
		return groups[i].Dosage < groups[j].Dosage
	})
	return groups
}

// Population summarizes the active patient population per treatment
// setting.
func Population(all []*patients.Patient, now time.Time) *PopulationSummary {
	counts := make(map[medications.TreatmentSetting]int)
	weeks := make(map[medications.TreatmentSetting]int)
	for _, patient := range all {
		counts[patient.TreatmentSetting]++
		weeks[patient.TreatmentSetting] += dosages.WeeksOnTreatment(patient, now)
	}

	summary := &PopulationSummary{
		TotalPatients: len(all),
		Settings:      make([]SettingSummary, 0, len(counts)),
	}
	for setting, count := range counts {
		summary.Settings = append(summary.Settings, SettingSummary{
			TreatmentSetting:        setting,
			PatientCount:            count,
			AverageWeeksOnTreatment: float64(weeks[setting]) / float64(count),
		})
	}

	sort.Slice(summary.Settings, func(i, j int) bool {
		return summary.Settings[i].TreatmentSetting < summary.Settings[j].TreatmentSetting
	})
	return summary
}
