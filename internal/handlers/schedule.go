package handlers

import (
	"fmt"
	"log"

	"carwash-app-server/internal/cache"
	"carwash-app-server/internal/middleware"
	"carwash-app-server/internal/scheduling"
	"carwash-app-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler exposes the auto-scheduler.
type ScheduleHandler struct {
	Scheduler *scheduling.Scheduler
	Cache     *cache.Lists
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduler *scheduling.Scheduler, lists *cache.Lists) *ScheduleHandler {
	return &ScheduleHandler{Scheduler: scheduler, Cache: lists}
}

// ScheduleRecurrentRequest optionally overrides the scheduler defaults.
type ScheduleRecurrentRequest struct {
	Days int    `json:"days" binding:"omitempty,gt=0"`
	Time string `json:"time" binding:"omitempty"`
}

// ScheduleRecurrent runs history-based auto-scheduling: every vehicle with
// appointment history is booked into the default slot on the target date.
func (h *ScheduleHandler) ScheduleRecurrent(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	// Body is optional; defaults apply when absent.
	var req ScheduleRecurrentRequest
	if c.Request.ContentLength > 0 && !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.Scheduler.ScheduleRecurrent(ownerID, req.Days, req.Time)
	if err != nil {
		if err == scheduling.ErrNoRecurrentVehicles {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("recurrent auto-schedule failed: %v", err)
		utils.InternalServerError(c, "Auto-scheduling failed")
		return
	}

	h.Cache.Invalidate(pendingEvaluationsKey(ownerID))

	utils.Success(c, fmt.Sprintf("%d vehicles scheduled for %s", result.Scheduled, result.TargetDate), result)
}

// GetReferenceDateVehicles lists the distinct vehicles booked on a chosen
// date, with the time and service each would be re-booked with.
func (h *ScheduleHandler) GetReferenceDateVehicles(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	date := c.Query("date")
	if date == "" {
		utils.BadRequest(c, "Query parameter 'date' is required")
		return
	}

	seeds, err := h.Scheduler.VehiclesOnDate(ownerID, date)
	if err != nil {
		log.Printf("reference date lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch vehicles for the selected date")
		return
	}

	utils.Success(c, "Vehicles fetched successfully", seeds)
}

// ScheduleFromDateRequest selects the reference date for date-seed scheduling.
type ScheduleFromDateRequest struct {
	ReferenceDate string `json:"referenceDate" binding:"required,datetime=2006-01-02"`
	Days          int    `json:"days" binding:"omitempty,gt=0"`
}

// ScheduleFromDate runs date-seed auto-scheduling: every vehicle booked on
// the reference date is re-booked onto the target date at its original time,
// shifting to the next free half-hour slot on conflict.
func (h *ScheduleHandler) ScheduleFromDate(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req ScheduleFromDateRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result, err := h.Scheduler.ScheduleFromDate(ownerID, req.ReferenceDate, req.Days)
	if err != nil {
		if err == scheduling.ErrNoSeedAppointments {
			utils.BadRequest(c, err.Error())
			return
		}
		log.Printf("date-seed auto-schedule failed: %v", err)
		utils.InternalServerError(c, "Auto-scheduling failed")
		return
	}

	h.Cache.Invalidate(pendingEvaluationsKey(ownerID))

	utils.Success(c, fmt.Sprintf("%d vehicles scheduled for %s", result.Scheduled, result.TargetDate), result)
}
