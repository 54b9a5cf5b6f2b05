package handlers

import (
	"log"

	"carwash-app-server/internal/middleware"
	"carwash-app-server/internal/scheduling"
	"carwash-app-server/internal/store"
	"carwash-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VehicleHandler handles vehicle related requests.
type VehicleHandler struct {
	Vehicles  *store.Vehicles
	Scheduler *scheduling.Scheduler
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicles *store.Vehicles, scheduler *scheduling.Scheduler) *VehicleHandler {
	return &VehicleHandler{Vehicles: vehicles, Scheduler: scheduler}
}

// GetVehicles returns all vehicles on file for the operator.
func (h *VehicleHandler) GetVehicles(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	vehicles, err := h.Vehicles.ByOwner(ownerID)
	if err != nil {
		log.Printf("list vehicles failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch vehicles")
		return
	}

	utils.Success(c, "Vehicles fetched successfully", vehicles)
}

// GetRecurrentVehicles returns the vehicles that have appointment history,
// i.e. the candidates for history-based auto-scheduling.
func (h *VehicleHandler) GetRecurrentVehicles(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	vehicles, err := h.Scheduler.RecurrentVehicles(ownerID)
	if err != nil {
		log.Printf("list recurrent vehicles failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch recurrent vehicles")
		return
	}

	utils.Success(c, "Recurrent vehicles fetched successfully", vehicles)
}

// DeleteVehicle removes a vehicle from file. Its past appointments remain.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	ownerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Vehicles.Delete(ownerID, c.Param("id")); err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Vehicle not found")
		} else {
			log.Printf("delete vehicle failed: %v", err)
			utils.InternalServerError(c, "Failed to delete vehicle")
		}
		return
	}

	utils.Success(c, "Vehicle deleted successfully", nil)
}
