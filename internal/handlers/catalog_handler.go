package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"profix/internal/models"
	"profix/internal/services"
)

type CatalogHandler struct {
	Service *services.CatalogService
}

type upsertServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Category    string `json:"category"`
	BasePrice   string `json:"base_price"`
	IsActive    *bool  `json:"is_active"`
}

func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

// @Summary      Каталог услуг
// @Tags         Catalog
// @Produce      json
// @Success      200  {array}  models.Service
// @Router       /services [get]
func (h *CatalogHandler) List(c *gin.Context) {
	services, err := h.Service.ListActive()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if services == nil {
		services = []*models.Service{}
	}
	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) GetBySlug(c *gin.Context) {
	svc, err := h.Service.GetBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if svc == nil || !svc.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}
	c.JSON(http.StatusOK, svc)
}

// ---- админка каталога

func (h *CatalogHandler) ListAll(c *gin.Context) {
	services, err := h.Service.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req upsertServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	svc := &models.Service{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := h.Service.Create(svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	existing, err := h.Service.GetByID(id)
	if err != nil || existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
		return
	}

	var req upsertServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Name = req.Name
	existing.Slug = req.Slug
	existing.Description = req.Description
	existing.Category = req.Category
	existing.BasePrice = req.BasePrice
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := h.Service.Update(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.Service.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}
