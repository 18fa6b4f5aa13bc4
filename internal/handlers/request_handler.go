package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"profix/internal/models"
	"profix/internal/services"
)

// RequestHandler — публичная часть: приём заявки и проверка статуса
// по opaque-ссылке.
type RequestHandler struct {
	Service *services.RequestService
}

func NewRequestHandler(service *services.RequestService) *RequestHandler {
	return &RequestHandler{Service: service}
}

type createRequestRequest struct {
	ServiceType  string `json:"service_type"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Priority     string `json:"priority"`
	ContactName  string `json:"contact_name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
	ContactPhone string `json:"contact_phone"`
}

// @Summary      Новая заявка
// @Description  Принимает заявку с сайта и возвращает ссылку для отслеживания
// @Tags         Requests
// @Accept       json
// @Produce      json
// @Param        request  body      handlers.createRequestRequest  true  "Заявка"
// @Success      201      {object}  models.ServiceRequest
// @Failure      400      {object}  map[string]string
// @Router       /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sr, err := h.Service.CreateRequest(services.CreateRequestInput{
		ServiceType:  req.ServiceType,
		Title:        req.Title,
		Description:  req.Description,
		Priority:     models.RequestPriority(req.Priority),
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, sr)
}

func (h *RequestHandler) GetByReference(c *gin.Context) {
	sr, err := h.Service.GetByReference(c.Param("reference"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if sr == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		return
	}
	c.JSON(http.StatusOK, sr)
}
