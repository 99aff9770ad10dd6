package handlers

import (
	"net/http"

	propertyRepo "stayease/database/repository/property"
	"stayease/models"
	"stayease/services/storage"
	"stayease/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PropertyHandler serves the property CRUD and photo upload endpoints.
type PropertyHandler struct {
	Repo    propertyRepo.PropertyRepository
	Storage storage.StorageService
}

func NewPropertyHandler(repo propertyRepo.PropertyRepository, storageSvc storage.StorageService) *PropertyHandler {
	return &PropertyHandler{Repo: repo, Storage: storageSvc}
}

// CreateHandler handles POST /api/admin/properties.
func (h *PropertyHandler) CreateHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.Repo.Create(c.Request.Context(), &property)
	if err != nil {
		logger.Error("Property create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create property"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListHandler handles GET /api/properties.
func (h *PropertyHandler) ListHandler(c *gin.Context) {
	properties, err := h.Repo.GetAll(c.Request.Context())
	if err != nil {
		utils.GetLogger().Error("Property list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list properties"})
		return
	}
	c.JSON(http.StatusOK, properties)
}

// GetHandler handles GET /api/properties/:id.
func (h *PropertyHandler) GetHandler(c *gin.Context) {
	id := c.Param("id")
	property, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, property)
}

// UpdateHandler handles PUT /api/admin/properties/:id.
func (h *PropertyHandler) UpdateHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	var property models.Property
	if err := c.ShouldBindJSON(&property); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	property.ID = id

	if err := h.Repo.Update(c.Request.Context(), &property); err != nil {
		logger.Error("Property update failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Update failed"})
		return
	}
	c.JSON(http.StatusOK, property)
}

// DeleteHandler handles DELETE /api/admin/properties/:id.
func (h *PropertyHandler) DeleteHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// UploadPhotoHandler handles POST /api/admin/properties/:id/photos.
func (h *PropertyHandler) UploadPhotoHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")

	if _, err := h.Repo.GetByID(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read photo file"})
		return
	}
	defer file.Close()

	url, err := h.Storage.UploadPropertyPhoto(c.Request.Context(), id, file, fileHeader.Filename)
	if err != nil {
		logger.Error("Photo upload failed", zap.String("property", id), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Photo upload failed"})
		return
	}

	if err := h.Repo.AddPhotoURL(c.Request.Context(), id, url); err != nil {
		logger.Error("Photo attach failed", zap.String("property", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Photo upload failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}
