// Package medications holds the static drug catalog: the supported
// CDK4/6 inhibitors, treatment settings and the labeled dosage tables.
package medications

import (
	"errors"
	"fmt"
)

type Medication string

const (
	Abemaciclib Medication = "abemaciclib"
	Ribociclib  Medication = "ribociclib"
	Palbociclib Medication = "palbociclib"
)

type TreatmentSetting string

const (
	SettingMetastatic TreatmentSetting = "metastatic"
	SettingAdjuvant   TreatmentSetting = "adjuvant"
)

var ErrInvalidDosage = errors.New("dosage is not valid for the medication and treatment setting")

var Medications = []Medication{Abemaciclib, Ribociclib, Palbociclib}

var Settings = []TreatmentSetting{SettingMetastatic, SettingAdjuvant}

func IsKnown(medication Medication) bool {
	switch medication {
	case Abemaciclib, Ribociclib, Palbociclib:
		return true
	}
	return false
}

func IsKnownSetting(setting TreatmentSetting) bool {
	return setting == SettingMetastatic || setting == SettingAdjuvant
}

// dosages lists the labeled dosages for each (setting, medication) pair in
// descending order, so the first element is the maximum labeled dosage.
// Palbociclib carries no labeled dosage in the adjuvant setting.
var dosages = map[TreatmentSetting]map[Medication][]string{
	SettingMetastatic: {
		Palbociclib: {"125mg", "100mg", "75mg"},
		Ribociclib:  {"600mg", "400mg", "200mg"},
		Abemaciclib: {"150mg", "100mg", "50mg"},
	},
	SettingAdjuvant: {
		Palbociclib: {},
		Ribociclib:  {"400mg", "200mg"},
		Abemaciclib: {"150mg", "100mg", "50mg"},
	},
}

// ValidDosages returns the labeled dosages for the given setting and
// medication, highest first. The result may be empty.
func ValidDosages(setting TreatmentSetting, medication Medication) []string {
	bySetting, ok := dosages[setting]
	if !ok {
		return nil
	}
	return bySetting[medication]
}

func IsValidDosage(setting TreatmentSetting, medication Medication, dosage string) bool {
	for _, d := range ValidDosages(setting, medication) {
		if d == dosage {
			return true
		}
	}
	return false
}

// MaxDosage returns the maximum labeled dosage for the given setting and
// medication. The second return value is false when no dosage is labeled.
func MaxDosage(setting TreatmentSetting, medication Medication) (string, bool) {
	valid := ValidDosages(setting, medication)
	if len(valid) == 0 {
		return "", false
	}
	return valid[0], true
}

// ValidateDosage rejects dosages outside the labeled set with the specific
// constraint that was violated.
func ValidateDosage(setting TreatmentSetting, medication Medication, dosage string) error {
	if !IsValidDosage(setting, medication, dosage) {
		return fmt.Errorf("%w: %q for %s/%s", ErrInvalidDosage, dosage, medication, setting)
	}
	return nil
}
