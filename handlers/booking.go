package handlers

import (
	"net/http"

	bookingRepo "stayease/database/repository/booking"
	propertyRepo "stayease/database/repository/property"
	"stayease/middleware"
	"stayease/models"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves booking creation, listing and status transitions.
type BookingHandler struct {
	Bookings   bookingRepo.BookingRepository
	Properties propertyRepo.PropertyRepository
}

func NewBookingHandler(bookings bookingRepo.BookingRepository, properties propertyRepo.PropertyRepository) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Properties: properties}
}

// CreateHandler handles POST /api/bookings.
func (h *BookingHandler) CreateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	customerID := c.GetString(middleware.CustomerIDKey)

	var req struct {
		PropertyID   string `json:"property_id" binding:"required"`
		RoomID       string `json:"room_id" binding:"required"`
		Price        int64  `json:"price"`
		FoodIncluded bool   `json:"food_included"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.Properties.GetByID(c.Request.Context(), req.PropertyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	room, ok := property.RoomByID(req.RoomID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found in property"})
		return
	}
	if room.Occupied {
		c.JSON(http.StatusConflict, gin.H{"error": "Room is already occupied"})
		return
	}

	price := req.Price
	if price == 0 {
		price = room.Rent
	}

	booking := &models.Booking{
		CustomerID:   customerID,
		PropertyID:   req.PropertyID,
		RoomID:       req.RoomID,
		Price:        price,
		FoodIncluded: req.FoodIncluded,
		Status:       models.BookingPending,
	}
	id, err := h.Bookings.Create(c.Request.Context(), booking)
	if err != nil {
		logger.Error("Booking create failed", zap.String("customer", customerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create booking"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "booking": booking})
}

// ListMineHandler handles GET /api/bookings.
func (h *BookingHandler) ListMineHandler(c *gin.Context) {
	customerID := c.GetString(middleware.CustomerIDKey)
	bookings, err := h.Bookings.GetByCustomerID(c.Request.Context(), customerID)
	if err != nil {
		utils.GetLogger().Error("Booking list failed", zap.String("customer", customerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateStatusHandler handles PATCH /api/bookings/:id/status. The
// repository rejects transitions outside pending -> confirmed ->
// cancelled/completed.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	logger := utils.GetLogger()
	customerID := c.GetString(middleware.CustomerIDKey)
	id := c.Param("id")

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	if booking.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your booking"})
		return
	}

	if err := h.Bookings.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		logger.Warn("Booking status transition rejected",
			zap.String("booking", id), zap.String("status", req.Status), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}
