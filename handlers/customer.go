package handlers

import (
	"net/http"
	"time"

	customerRepo "stayease/database/repository/customer"
	"stayease/middleware"
	"stayease/models"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CustomerHandler serves registration, login and account endpoints.
type CustomerHandler struct {
	Repo customerRepo.CustomerRepository
}

func NewCustomerHandler(repo customerRepo.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{Repo: repo}
}

// RegisterHandler handles POST /api/customers/register.
func (h *CustomerHandler) RegisterHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Password hash failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	customer := &models.Customer{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Status:       models.CustomerActive,
	}
	if err := h.Repo.Create(c.Request.Context(), customer); err != nil {
		logger.Error("Customer create failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create account"})
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// LoginHandler handles POST /api/customers/login.
func (h *CustomerHandler) LoginHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.Repo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(customer.ID, customer.Email, 24*time.Hour)
	if err != nil {
		logger.Error("Token generation failed", zap.String("customer", customer.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "customer": customer})
}

// GetMeHandler handles GET /api/customers/me.
func (h *CustomerHandler) GetMeHandler(c *gin.Context) {
	customerID := c.GetString(middleware.CustomerIDKey)
	customer, err := h.Repo.GetByID(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// UpdateHandler handles PUT /api/customers/me.
func (h *CustomerHandler) UpdateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	customerID := c.GetString(middleware.CustomerIDKey)

	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.Repo.GetByID(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		return
	}
	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.Phone != "" {
		customer.Phone = req.Phone
	}
	if err := h.Repo.Update(c.Request.Context(), customer); err != nil {
		logger.Error("Customer update failed", zap.String("customer", customerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, customer)
}

// DeleteHandler handles DELETE /api/customers/me. The account is
// soft-deleted and marked inactive; billing skips it from the next run on.
func (h *CustomerHandler) DeleteHandler(c *gin.Context) {
	logger := utils.GetLogger()
	customerID := c.GetString(middleware.CustomerIDKey)
	if err := h.Repo.Delete(c.Request.Context(), customerID); err != nil {
		logger.Error("Customer delete failed", zap.String("customer", customerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deactivated"})
}
