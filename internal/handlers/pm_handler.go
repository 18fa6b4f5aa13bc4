package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"profix/internal/models"
	"profix/internal/services"
)

// PMHandler — кабинет менеджера: свои заявки, статусы, заметки.
type PMHandler struct {
	Requests *services.RequestService
	PMs      *services.PMService
}

func NewPMHandler(requests *services.RequestService, pms *services.PMService) *PMHandler {
	return &PMHandler{Requests: requests, PMs: pms}
}

func (h *PMHandler) ListRequests(c *gin.Context) {
	pmID, _ := getUserAndRole(c)
	views, err := h.Requests.ListForPM(pmID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *PMHandler) UpdateStatus(c *gin.Context) {
	pmID, _ := getUserAndRole(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Requests.UpdateStatusByPM(pmID, id, models.RequestStatus(req.Status)); err != nil {
		switch err {
		case services.ErrBadStatus:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status value"})
		case services.ErrRequestNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		case services.ErrNotAssigned:
			c.JSON(http.StatusForbidden, gin.H{"error": "request is not assigned to you"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func (h *PMHandler) AddNote(c *gin.Context) {
	pmID, _ := getUserAndRole(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rendered, err := h.Requests.AddNote(pmID, id, req.Note)
	if err != nil {
		switch err {
		case services.ErrRequestNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		case services.ErrNotAssigned:
			c.JSON(http.StatusForbidden, gin.H{"error": "request is not assigned to you"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note": rendered})
}

func (h *PMHandler) Me(c *gin.Context) {
	pmID, _ := getUserAndRole(c)
	pm, err := h.PMs.GetByID(pmID)
	if err != nil || pm == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project manager not found"})
		return
	}
	c.JSON(http.StatusOK, pm)
}

func (h *PMHandler) SetAvailability(c *gin.Context) {
	pmID, _ := getUserAndRole(c)

	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.PMs.SetAvailability(pmID, *req.IsAvailable); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "availability updated"})
}
