package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/oncycle-org/adherence/dates"
	"github.com/oncycle-org/adherence/medications"
	"github.com/oncycle-org/adherence/patients"
	"github.com/oncycle-org/adherence/pointer"
	"github.com/oncycle-org/adherence/store"
)

type PatientDto struct {
	Id                 string  `json:"id"`
	UserId             *string `json:"userId,omitempty"`
	FullName           *string `json:"fullName,omitempty"`
	Email              *string `json:"email,omitempty"`
	Medication         string  `json:"medication"`
	Dosage             string  `json:"dosage"`
	TreatmentSetting   string  `json:"treatmentSetting"`
	TreatmentStartDate *string `json:"treatmentStartDate,omitempty"`
	ClinicianId        *string `json:"clinicianId,omitempty"`
	Active             bool    `json:"active"`
}

type CreatePatientDto struct {
	UserId             *string `json:"userId"`
	FullName           *string `json:"fullName"`
	Email              *string `json:"email"`
	Medication         string  `json:"medication"`
	Dosage             string  `json:"dosage"`
	TreatmentSetting   string  `json:"treatmentSetting"`
	TreatmentStartDate *string `json:"treatmentStartDate"`
	ClinicianId        *string `json:"clinicianId"`
}

type UpdatePatientDto struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	ClinicianId *string `json:"clinicianId"`
}

func newPatientDto(patient *patients.Patient) PatientDto {
	dto := PatientDto{
		Id:               patient.Id.Hex(),
		UserId:           patient.UserId,
		FullName:         patient.FullName,
		Email:            patient.Email,
		Medication:       string(patient.Medication),
		Dosage:           patient.Dosage,
		TreatmentSetting: string(patient.TreatmentSetting),
		ClinicianId:      patient.ClinicianId,
		Active:           patient.Active,
	}
	if patient.TreatmentStartDate != nil {
		dto.TreatmentStartDate = pointer.FromAny(dates.Format(*patient.TreatmentStartDate))
	}
	return dto
}

func (h *Handler) CreatePatient(c echo.Context) error {
	dto := CreatePatientDto{}
	if err := bind(c, &dto); err != nil {
		return err
	}

	patient := patients.Patient{
		UserId:           dto.UserId,
		FullName:         dto.FullName,
		Email:            dto.Email,
		Medication:       medications.Medication(dto.Medication),
		Dosage:           dto.Dosage,
		TreatmentSetting: medications.TreatmentSetting(dto.TreatmentSetting),
		ClinicianId:      dto.ClinicianId,
		Active:           true,
	}
	if dto.TreatmentStartDate != nil {
		startDate, err := dateParam(*dto.TreatmentStartDate)
		if err != nil {
			return err
		}
		patient.TreatmentStartDate = &startDate
	}

	ctx := c.Request().Context()
	created, err := h.patients.Create(ctx, patient)
	if err != nil {
		return mapError(err)
	}
	if _, err := h.dosages.OpenInitialEntry(ctx, created); err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusCreated, newPatientDto(created))
}

func (h *Handler) GetPatient(c echo.Context) error {
	patient, err := h.patients.Get(c.Request().Context(), c.Param("patientId"))
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, newPatientDto(patient))
}

func (h *Handler) ListPatients(c echo.Context) error {
	filter := &patients.Filter{
		Active: pointer.FromAny(true),
	}
	if clinicianId := c.QueryParam("clinicianId"); clinicianId != "" {
		filter.ClinicianId = &clinicianId
	}
	if medication := c.QueryParam("medication"); medication != "" {
		filter.Medication = pointer.FromAny(medications.Medication(medication))
	}
	if setting := c.QueryParam("setting"); setting != "" {
		filter.TreatmentSetting = pointer.FromAny(medications.TreatmentSetting(setting))
	}

	list, err := h.patients.List(c.Request().Context(), filter, pagination(c))
	if err != nil {
		return mapError(err)
	}

	dtos := make([]PatientDto, 0, len(list))
	for _, patient := range list {
		dtos = append(dtos, newPatientDto(patient))
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	dto := UpdatePatientDto{}
	if err := bind(c, &dto); err != nil {
		return err
	}

	updated, err := h.patients.Update(c.Request().Context(), c.Param("patientId"), patients.PatientUpdate{
		FullName:    dto.FullName,
		Email:       dto.Email,
		ClinicianId: dto.ClinicianId,
	})
	if err != nil {
		return mapError(err)
	}

	return c.JSON(http.StatusOK, newPatientDto(updated))
}

func (h *Handler) DeactivatePatient(c echo.Context) error {
	if err := h.patients.Deactivate(c.Request().Context(), c.Param("patientId")); err != nil {
		return mapError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func pagination(c echo.Context) store.Pagination {
	page := store.DefaultPagination()
	if offset, err := strconv.Atoi(c.QueryParam("offset")); err == nil && offset >= 0 {
		page.Offset = offset
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil && limit > 0 {
		page.Limit = limit
	}
	return page
}
