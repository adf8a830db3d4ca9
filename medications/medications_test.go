package medications_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/oncycle-org/adherence/medications"
)

var _ = Describe("Medications", func() {
	Describe("ValidDosages", func() {
		It("lists metastatic palbociclib dosages highest first", func() {
			Expect(medications.ValidDosages(medications.SettingMetastatic, medications.Palbociclib)).
				To(Equal([]string{"125mg", "100mg", "75mg"}))
		})

		It("is empty for palbociclib in the adjuvant setting", func() {
			Expect(medications.ValidDosages(medications.SettingAdjuvant, medications.Palbociclib)).To(BeEmpty())
		})

		It("is empty for unknown settings", func() {
			Expect(medications.ValidDosages("neoadjuvant", medications.Ribociclib)).To(BeEmpty())
		})
	})

	Describe("ValidateDosage", func() {
		It("accepts labeled dosages", func() {
			err := medications.ValidateDosage(medications.SettingMetastatic, medications.Ribociclib, "400mg")
			Expect(err).ToNot(HaveOccurred())
		})

		It("rejects palbociclib in the adjuvant setting", func() {
			err := medications.ValidateDosage(medications.SettingAdjuvant, medications.Palbociclib, "125mg")
			Expect(err).To(MatchError(medications.ErrInvalidDosage))
		})

		It("rejects dosages outside the labeled set", func() {
			err := medications.ValidateDosage(medications.SettingMetastatic, medications.Abemaciclib, "200mg")
			Expect(err).To(MatchError(medications.ErrInvalidDosage))
		})
	})

	Describe("MaxDosage", func() {
		It("returns the maximum labeled dosage", func() {
			max, ok := medications.MaxDosage(medications.SettingMetastatic, medications.Palbociclib)
			Expect(ok).To(BeTrue())
			Expect(max).To(Equal("125mg"))
		})

		It("reports when no dosage is labeled", func() {
			_, ok := medications.MaxDosage(medications.SettingAdjuvant, medications.Palbociclib)
			Expect(ok).To(BeFalse())
		})
	})
})
