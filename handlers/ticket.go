package handlers

import (
	"net/http"

	ticketRepo "stayease/database/repository/ticket"
	"stayease/middleware"
	"stayease/models"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TicketHandler serves support ticket endpoints.
type TicketHandler struct {
	Repo ticketRepo.TicketRepository
}

func NewTicketHandler(repo ticketRepo.TicketRepository) *TicketHandler {
	return &TicketHandler{Repo: repo}
}

// CreateHandler handles POST /api/tickets.
func (h *TicketHandler) CreateHandler(c *gin.Context) {
	customerID := c.GetString(middleware.CustomerIDKey)

	var req struct {
		Subject string `json:"subject" binding:"required"`
		Body    string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket := &models.Ticket{
		CustomerID: customerID,
		Subject:    req.Subject,
		Body:       req.Body,
	}
	id, err := h.Repo.Create(c.Request.Context(), ticket)
	if err != nil {
		utils.GetLogger().Error("Ticket create failed", zap.String("customer", customerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create ticket"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListMineHandler handles GET /api/tickets.
func (h *TicketHandler) ListMineHandler(c *gin.Context) {
	customerID := c.GetString(middleware.CustomerIDKey)
	tickets, err := h.Repo.GetByCustomerID(c.Request.Context(), customerID)
	if err != nil {
		utils.GetLogger().Error("Ticket list failed", zap.String("customer", customerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list tickets"})
		return
	}
	c.JSON(http.StatusOK, tickets)
}

// CloseHandler handles POST /api/admin/tickets/:id/close.
func (h *TicketHandler) CloseHandler(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Reply string `json:"reply"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Repo.Close(c.Request.Context(), id, req.Reply); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ticket closed"})
}
