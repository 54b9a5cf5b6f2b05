package handlers

import (
	"log"
	"strings"

	"carwash-app-server/internal/cache"
	"carwash-app-server/internal/middleware"
	"carwash-app-server/internal/models"
	"carwash-app-server/internal/scheduling"
	"carwash-app-server/internal/store"
	"carwash-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// pendingEvaluationsKey is the cache key for an owner's evaluation worklist.
func pendingEvaluationsKey(ownerID string) string {
	return "pending-evaluations:" + ownerID
}

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Appointments *store.Appointments
	Vehicles     *store.Vehicles
	Cache        *cache.Lists
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments *store.Appointments, vehicles *store.Vehicles, lists *cache.Lists) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments, Vehicles: vehicles, Cache: lists}
}

// CreateAppointmentRequest represents the request body for booking a slot.
type CreateAppointmentRequest struct {
	Plate        string  `json:"plate" binding:"required"`
	CustomerName string  `json:"customerName" binding:"required"`
	Date         string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time         string  `json:"time" binding:"required"`
	Service      string  `json:"service" binding:"required"`
	Price        float64 `json:"price" binding:"omitempty,gt=0"`
}

// CreateAppointment books a one-hour slot after checking availability. The
// vehicle is saved for future bookings when its plate is not yet on file.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	plate := strings.ToUpper(strings.TrimSpace(req.Plate))
	slot := scheduling.NormalizeClock(req.Time)

	availability, err := scheduling.CheckAvailability(h.Appointments, ownerID, req.Date, slot, scheduling.CheckOptions{})
	if err != nil {
		log.Printf("availability check failed: %v", err)
		utils.InternalServerError(c, "Could not verify slot availability")
		return
	}
	if !availability.Available {
		utils.Conflict(c, availability.Conflict)
		return
	}

	price := req.Price
	if price == 0 {
		price = models.PriceForService(req.Service)
	}

	appointment := models.Appointment{
		OwnerID:      ownerID,
		Plate:        plate,
		CustomerName: req.CustomerName,
		Date:         req.Date,
		Time:         slot,
		Service:      req.Service,
		Price:        price,
		Status:       models.StatusPending,
	}
	if _, err := h.Appointments.Insert(&appointment); err != nil {
		log.Printf("create appointment failed: %v", err)
		utils.InternalServerError(c, "Failed to create appointment")
		return
	}

	// Save the vehicle the first time its plate is booked.
	onFile, err := h.Vehicles.PlateExists(ownerID, plate)
	if err != nil {
		log.Printf("vehicle lookup failed: %v", err)
	} else if !onFile {
		vehicle := models.Vehicle{OwnerID: ownerID, Plate: plate, CustomerName: req.CustomerName}
		if _, err := h.Vehicles.Insert(&vehicle); err != nil {
			log.Printf("save vehicle failed: %v", err)
		}
	}

	h.Cache.Invalidate(pendingEvaluationsKey(ownerID))

	utils.Created(c, "Appointment created successfully", appointment)
}

// GetAppointments returns the owner's appointments ordered by date then time.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appointments, err := h.Appointments.ByOwner(ownerID)
	if err != nil {
		log.Printf("list appointments failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch appointments")
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// SearchAppointments filters the owner's appointments by plate or customer
// name. The match is case-insensitive and applied locally to the full list.
func (h *AppointmentHandler) SearchAppointments(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	needle := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if needle == "" {
		utils.BadRequest(c, "Query parameter 'q' is required")
		return
	}

	appointments, err := h.Appointments.ByOwner(ownerID)
	if err != nil {
		log.Printf("search appointments failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch appointments")
		return
	}

	matches := make([]models.Appointment, 0)
	for _, appointment := range appointments {
		if strings.Contains(strings.ToLower(appointment.Plate), needle) ||
			strings.Contains(strings.ToLower(appointment.CustomerName), needle) {
			matches = append(matches, appointment)
		}
	}

	utils.Success(c, "Appointments fetched successfully", matches)
}

// OccupiedSlot is one taken slot on a date.
type OccupiedSlot struct {
	ID      string `json:"id"`
	Time    string `json:"time"`
	Plate   string `json:"plate"`
	Service string `json:"service"`
}

// GetOccupiedSlots lists the taken slots for a date, for the booking form.
func (h *AppointmentHandler) GetOccupiedSlots(c *gin.Context) {
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

	appointments, err := h.Appointments.ByOwnerAndDate(ownerID, date)
	if err != nil {
		log.Printf("occupied slots lookup failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch occupied slots")
		return
	}

	occupied := make([]OccupiedSlot, 0, len(appointments))
	for _, appointment := range appointments {
		occupied = append(occupied, OccupiedSlot{
			ID:      appointment.ID,
			Time:    appointment.Time,
			Plate:   appointment.Plate,
			Service: appointment.Service,
		})
	}

	utils.Success(c, "Occupied slots fetched successfully", occupied)
}

// CheckAvailability reports whether a slot is free, for live form validation.
func (h *AppointmentHandler) CheckAvailability(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	date := c.Query("date")
	slot := c.Query("time")
	if date == "" || slot == "" {
		utils.BadRequest(c, "Query parameters 'date' and 'time' are required")
		return
	}

	availability, err := scheduling.CheckAvailability(h.Appointments, ownerID, date, slot,
		scheduling.CheckOptions{ExcludeID: c.Query("excludeId")})
	if err != nil {
		log.Printf("availability check failed: %v", err)
		utils.InternalServerError(c, "Could not verify slot availability")
		return
	}

	utils.Success(c, "Availability checked", availability)
}

// DeleteAppointment cancels an appointment, freeing its slot.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Appointments.Delete(ownerID, c.Param("id")); err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			log.Printf("delete appointment failed: %v", err)
			utils.InternalServerError(c, "Failed to delete appointment")
		}
		return
	}

	h.Cache.Invalidate(pendingEvaluationsKey(ownerID))

	utils.Success(c, "Appointment deleted successfully", nil)
}
