package handlers

import (
	"net/http"

	"clinica-api/internal/models"
	"clinica-api/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PatientHandler struct {
	patientRepo *repositories.PatientRepository
}

func NewPatientHandler(patientRepo *repositories.PatientRepository) *PatientHandler {
	return &PatientHandler{patientRepo: patientRepo}
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req models.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	patient := &models.Patient{
		ID:             uuid.New(),
		DocumentNumber: req.DocumentNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		Email:          req.Email,
		BirthDate:      req.BirthDate,
	}

	if err := h.patientRepo.Create(c.Request.Context(), patient); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patientRepo.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid patient ID")
		return
	}

	patient, err := h.patientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid patient ID")
		return
	}

	var req models.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err.Error())
		return
	}

	patient, err := h.patientRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.DocumentNumber != nil {
		patient.DocumentNumber = *req.DocumentNumber
	}
	if req.FirstName != nil {
		patient.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		patient.LastName = *req.LastName
	}
	if req.Phone != nil {
		patient.Phone = req.Phone
	}
	if req.Email != nil {
		patient.Email = req.Email
	}
	if req.BirthDate != nil {
		patient.BirthDate = req.BirthDate
	}

	if err := h.patientRepo.Update(c.Request.Context(), patient); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid patient ID")
		return
	}

	if err := h.patientRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
