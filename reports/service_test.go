package reports_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/patients"
	patientsTest "github.com/oncycle-org/adherence/patients/test"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/reports"
	reportsTest "github.com/oncycle-org/adherence/reports/test"
)

var _ = Describe("Reports Service", func() {
	var ctrl *gomock.Controller
	var repo *reportsTest.MockRepository
	var patientsService *patientsTest.MockService
	var service reports.Service
	var patientId primitive.ObjectID

	mustParse := func(value string) time.Time {
		t, err := dates.Parse(value)
		Expect(err).ToNot(HaveOccurred())
		return t
	}

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		repo = reportsTest.NewMockRepository(ctrl)
		patientsService = patientsTest.NewMockService(ctrl)
		patientId = primitive.NewObjectID()

		var err error
		service, err = reports.NewService(repo, patientsService, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	Describe("Report", func() {
		It("rejects an empty list of dates", func() {
			_, err := service.Report(context.Background(), patientId.Hex(), nil, nil)
			Expect(err).To(MatchError(reports.ErrEmptyDates))
		})

		It("normalizes dates to midnight before storing them", func() {
			patientsService.EXPECT().
				Get(gomock.Any(), patientId.Hex()).
				Return(&patients.Patient{Id: &patientId}, nil)

			repo.EXPECT().
				Create(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, report reports.Report) (*reports.Report, error) {
					Expect(report.PatientId).To(Equal(patientId))
					Expect(report.MissedDates).To(ConsistOf(mustParse("2024-03-05")))
					return &report, nil
				})

			missed := []time.Time{time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)}
			_, err := service.Report(context.Background(), patientId.Hex(), missed, nil)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("Retract", func() {
		var reportId primitive.ObjectID

		BeforeEach(func() {
			reportId = primitive.NewObjectID()
		})

		It("deletes the report when its only date is retracted", func() {
			date := mustParse("2024-03-05")
			repo.EXPECT().
				GetByMissedDate(gomock.Any(), patientId.Hex(), date).
				Return(&reports.Report{
					Id:          &reportId,
					PatientId:   patientId,
					MissedDates: []time.Time{date},
				}, nil)
			repo.EXPECT().
				Delete(gomock.Any(), reportId).
				Return(nil)

			Expect(service.Retract(context.Background(), patientId.Hex(), date)).To(Succeed())
		})

		It("keeps the report and the remaining dates otherwise", func() {
			date := mustParse("2024-03-05")
			other := mustParse("2024-03-07")
			repo.EXPECT().
				GetByMissedDate(gomock.Any(), patientId.Hex(), date).
				Return(&reports.Report{
					Id:          &reportId,
					PatientId:   patientId,
					MissedDates: []time.Time{date, other},
					Notes:       pointer.FromAny("forgot the evening dose"),
				}, nil)
			repo.EXPECT().
				UpdateDates(gomock.Any(), reportId, []time.Time{other}).
				Return(nil)

			Expect(service.Retract(context.Background(), patientId.Hex(), date)).To(Succeed())
		})

		It("propagates the error when no report contains the date", func() {
			date := mustParse("2024-03-05")
			repo.EXPECT().
				GetByMissedDate(gomock.Any(), patientId.Hex(), date).
				Return(nil, reports.ErrNoMissedDate)

			err := service.Retract(context.Background(), patientId.Hex(), date)
			Expect(err).To(MatchError(reports.ErrNoMissedDate))
		})
	})
})
