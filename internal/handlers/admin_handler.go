package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"profix/internal/models"
	"profix/internal/pdf"
	"profix/internal/services"
)

// AdminHandler — заявки, провижининг PM, аналитика.
type AdminHandler struct {
	Requests  *services.RequestService
	PMs       *services.PMService
	Analytics *services.AnalyticsService
	Reports   pdf.Generator
}

func NewAdminHandler(requests *services.RequestService, pms *services.PMService, analytics *services.AnalyticsService, reports pdf.Generator) *AdminHandler {
	return &AdminHandler{Requests: requests, PMs: pms, Analytics: analytics, Reports: reports}
}

// ---- заявки

func (h *AdminHandler) ListRequests(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "100"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 100
	}
	offset := (page - 1) * size

	var filter models.RequestFilter
	if s := c.Query("status"); s != "" {
		status := models.RequestStatus(s)
		filter.Status = &status
	}
	if p := c.Query("priority"); p != "" {
		priority := models.RequestPriority(p)
		filter.Priority = &priority
	}
	if pm := c.Query("pm_id"); pm != "" {
		if pmID, err := strconv.Atoi(pm); err == nil {
			filter.AssignedPMID = &pmID
		}
	}

	requests, err := h.Requests.ListFiltered(filter, size, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, requests)
}

func (h *AdminHandler) AssignRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		PMID int `json:"pm_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Requests.Assign(id, req.PMID); err != nil {
		switch err {
		case services.ErrRequestNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
		case services.ErrPMNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Project manager not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "request assigned"})
}

func (h *AdminHandler) RespondToRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Response string `json:"response" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Requests.Respond(id, req.Response); err != nil {
		if err == services.ErrRequestNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "response saved"})
}

// ---- PM

type upsertPMRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Phone          *string `json:"phone"`
	Specialization *string `json:"specialization"`
	IsAvailable    *bool   `json:"is_available"`
}

func (h *AdminHandler) CreatePM(c *gin.Context) {
	var req upsertPMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pm := &models.ProjectManager{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		IsAvailable:    req.IsAvailable == nil || *req.IsAvailable,
	}
	if err := h.PMs.Create(pm); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pm)
}

func (h *AdminHandler) ListPMs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "100"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 100
	}
	offset := (page - 1) * size

	pms, err := h.PMs.List(size, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, pms)
}

func (h *AdminHandler) UpdatePM(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	existing, err := h.PMs.GetByID(id)
	if err != nil || existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project manager not found"})
		return
	}

	var req upsertPMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing.Name = req.Name
	existing.Email = req.Email
	existing.Phone = req.Phone
	existing.Specialization = req.Specialization
	if req.IsAvailable != nil {
		existing.IsAvailable = *req.IsAvailable
	}

	if err := h.PMs.Update(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

// ---- аналитика

func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	summary, err := h.Analytics.GetSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AdminHandler) DownloadSummaryPDF(c *gin.Context) {
	summary, err := h.Analytics.GetSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	data, err := h.Reports.SummaryPDF(summary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="profix_summary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
