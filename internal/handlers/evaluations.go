package handlers

import (
	"log"
	"strconv"
	"strings"
	"time"

	"carwash-app-server/internal/cache"
	"carwash-app-server/internal/middleware"
	"carwash-app-server/internal/models"
	"carwash-app-server/internal/store"
	"carwash-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// How far back the evaluation worklist reaches.
const pendingWindowDays = 7

// EvaluationHandler handles quality-evaluation requests.
type EvaluationHandler struct {
	Appointments *store.Appointments
	Evaluations  *store.Evaluations
	Cache        *cache.Lists
}

// NewEvaluationHandler creates a new EvaluationHandler.
func NewEvaluationHandler(appointments *store.Appointments, evaluations *store.Evaluations, lists *cache.Lists) *EvaluationHandler {
	return &EvaluationHandler{Appointments: appointments, Evaluations: evaluations, Cache: lists}
}

// GetPendingAppointments returns the pending appointments from the last
// seven days that are awaiting evaluation. The list is cached briefly and
// invalidated by every appointment or evaluation write.
func (h *EvaluationHandler) GetPendingAppointments(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	key := pendingEvaluationsKey(ownerID)
	if cached, ok := h.Cache.Get(key); ok {
		utils.Success(c, "Pending appointments fetched successfully", cached)
		return
	}

	today := time.Now()
	from := today.AddDate(0, 0, -pendingWindowDays).Format("2006-01-02")
	to := today.Format("2006-01-02")

	appointments, err := h.Appointments.PendingBetween(ownerID, from, to)
	if err != nil {
		log.Printf("pending appointments lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch pending appointments")
		return
	}

	h.Cache.Set(key, appointments)

	utils.Success(c, "Pending appointments fetched successfully", appointments)
}

// RecordEvaluationRequest represents the request body for recording an
// evaluation. Condition and rating fields are required only when the
// vehicle presented.
type RecordEvaluationRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required,uuid"`
	Presented     *bool  `json:"presented" binding:"required"`
	ACCondition   string `json:"acCondition" binding:"omitempty,oneof=excellent good fair poor"`
	TireCondition string `json:"tireCondition" binding:"omitempty,oneof=excellent good fair poor"`
	Rating        int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Notes         string `json:"notes"`
}

// RecordEvaluation writes the evaluation and transitions the appointment to
// evaluated or no-show.
func (h *EvaluationHandler) RecordEvaluation(c *gin.Context) {
	var req RecordEvaluationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	presented := *req.Presented
	if presented && req.Rating == 0 {
		utils.BadRequest(c, "A rating is required when the vehicle presented")
		return
	}

	appointment, err := h.Appointments.ByID(ownerID, req.AppointmentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			log.Printf("appointment lookup failed: %v", err)
			utils.InternalServerError(c, "Failed to load appointment")
		}
		return
	}

	evaluation := models.Evaluation{
		OwnerID:         ownerID,
		AppointmentID:   appointment.ID,
		Plate:           appointment.Plate,
		CustomerName:    appointment.CustomerName,
		Service:         appointment.Service,
		AppointmentDate: appointment.Date,
		Presented:       presented,
	}
	if presented {
		evaluation.ACCondition = req.ACCondition
		evaluation.TireCondition = req.TireCondition
		evaluation.Rating = req.Rating
		evaluation.Notes = req.Notes
	}

	if _, err := h.Evaluations.Record(&evaluation); err != nil {
		log.Printf("record evaluation failed: %v", err)
		utils.InternalServerError(c, "Failed to record evaluation")
		return
	}

	h.Cache.Invalidate(pendingEvaluationsKey(ownerID))

	utils.Created(c, "Evaluation recorded successfully", evaluation)
}

// parseFilters reads the shared evaluation query parameters.
func parseFilters(c *gin.Context) (store.EvaluationFilters, bool) {
	filters := store.EvaluationFilters{
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
	}
	if raw := c.Query("presented"); raw != "" {
		presented, err := strconv.ParseBool(raw)
		if err != nil {
			utils.BadRequest(c, "Query parameter 'presented' must be true or false")
			return filters, false
		}
		filters.Presented = &presented
	}
	return filters, true
}

// GetEvaluations lists evaluations, newest first, optionally filtered by
// appointment-date range and presentation status.
func (h *EvaluationHandler) GetEvaluations(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	filters, ok := parseFilters(c)
	if !ok {
		return
	}

	evaluations, err := h.Evaluations.ByOwnerWithFilters(ownerID, filters)
	if err != nil {
		// The filtered query needs the appointment_date index; a fresh
		// database that skipped migrations fails here first.
		if strings.Contains(strings.ToLower(err.Error()), "index") {
			log.Printf("list evaluations failed: %v (missing index on evaluations? rerun migrations)", err)
		} else {
			log.Printf("list evaluations failed: %v", err)
		}
		utils.InternalServerError(c, "Failed to fetch evaluations")
		return
	}

	utils.Success(c, "Evaluations fetched successfully", evaluations)
}

// ExportEvaluations returns the full evaluation list as JSON, intended as a
// backup step before a bulk cleanup.
func (h *EvaluationHandler) ExportEvaluations(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	evaluations, err := h.Evaluations.ByOwnerWithFilters(ownerID, store.EvaluationFilters{})
	if err != nil {
		log.Printf("export evaluations failed: %v", err)
		utils.InternalServerError(c, "Failed to export evaluations")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="evaluations.json"`)
	c.JSON(200, evaluations)
}

// DeletedCount reports how many records a bulk cleanup removed.
type DeletedCount struct {
	Deleted int64 `json:"deleted"`
}

// DeleteAllEvaluations removes every evaluation for the operator.
func (h *EvaluationHandler) DeleteAllEvaluations(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	deleted, err := h.Evaluations.DeleteAllForOwner(ownerID)
	if err != nil {
		log.Printf("bulk delete evaluations failed: %v", err)
		utils.InternalServerError(c, "Failed to delete evaluations")
		return
	}

	utils.Success(c, "Evaluations deleted successfully", DeletedCount{Deleted: deleted})
}

// DeleteEvaluationsBefore removes evaluations whose appointment date is on
// or before the given threshold.
func (h *EvaluationHandler) DeleteEvaluationsBefore(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	threshold := c.Param("date")
	if _, err := time.Parse("2006-01-02", threshold); err != nil {
		utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	deleted, err := h.Evaluations.DeleteBefore(ownerID, threshold)
	if err != nil {
		log.Printf("bulk delete evaluations failed: %v", err)
		utils.InternalServerError(c, "Failed to delete evaluations")
		return
	}

	utils.Success(c, "Evaluations deleted successfully", DeletedCount{Deleted: deleted})
}
