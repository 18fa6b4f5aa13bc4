package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"profix/internal/authz"
	"profix/internal/models"
	"profix/internal/repositories"
	"profix/internal/services"
)

type AuthHandler struct {
	otpService *services.OTPService
	sessions   *services.SessionService
	adminRepo  repositories.AdminRepository
}

func NewAuthHandler(otpService *services.OTPService, sessions *services.SessionService, adminRepo repositories.AdminRepository) *AuthHandler {
	return &AuthHandler{otpService: otpService, sessions: sessions, adminRepo: adminRepo}
}

// pmProfileResponse — профиль PM в ответе логина. Ровно поля кабинета,
// служебные (created_at) наружу не отдаём.
type pmProfileResponse struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone"`
	Specialization *string `json:"specialization"`
	IsAvailable    bool    `json:"is_available"`
}

func toPMProfileResponse(pm *models.ProjectManager) pmProfileResponse {
	return pmProfileResponse{
		ID:             pm.ID,
		Name:           pm.Name,
		Email:          pm.Email,
		Phone:          pm.Phone,
		Specialization: pm.Specialization,
		IsAvailable:    pm.IsAvailable,
	}
}

// @Summary      Запрос кода входа для PM
// @Description  Отправляет одноразовый код на email менеджера
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      map[string]string  true  "email"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Router       /auth/otp/request [post]
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.otpService.RequestOTP(req.Email); err != nil {
		switch err {
		case services.ErrFieldsRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		case services.ErrPMNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Project manager not found"})
		case services.ErrResendThrottled:
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, try later"})
		default:
			log.Printf("[auth][otp-request] failed: err=%v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// @Summary      Вход PM по коду
// @Description  Проверяет код, гасит его и возвращает профиль PM с токеном сессии
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      map[string]string  true  "email + otp"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /auth/otp/verify [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	start := time.Now()

	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][otp-verify] bad request: bind json failed: err=%v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required"})
		return
	}
	log.Printf("[auth][otp-verify] attempt email=%q", strings.TrimSpace(req.Email))

	pm, token, err := h.otpService.VerifyOTP(req.Email, req.OTP)
	if err != nil {
		switch err {
		case services.ErrFieldsRequired:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required"})
		case services.ErrOTPInvalid:
			// наружу не различаем "неверный", "протухший" и "повторный"
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		case services.ErrPMNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Project manager not found"})
		default:
			log.Printf("[auth][otp-verify] failed for email=%q: err=%v", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	log.Printf("[auth][otp-verify] success pm_id=%d took=%s", pm.ID, time.Since(start).Truncate(time.Millisecond))

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Login successful",
		"pm":           toPMProfileResponse(pm),
		"sessionToken": token,
	})
}

// @Summary      Вход администратора
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.AdminLoginRequest  true  "Данные для входа"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Router       /admin/login [post]
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	log.Printf("[auth][admin-login] attempt email=%q", email)

	admin, err := h.adminRepo.GetByEmail(email)
	if err != nil || admin == nil {
		log.Printf("[auth][admin-login] admin not found by email=%q: err=%v", email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	ph := strings.TrimSpace(admin.PasswordHash)
	if ph == "" {
		log.Printf("[auth][admin-login] empty password_hash in DB for adminID=%d email=%q", admin.ID, email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ph), []byte(strings.TrimSpace(req.Password))); err != nil {
		log.Printf("[auth][admin-login] bcrypt mismatch for adminID=%d email=%q: err=%v", admin.ID, email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.sessions.Mint(admin.ID, authz.RoleAdmin)
	if err != nil {
		log.Printf("[auth][admin-login] sign token failed for adminID=%d: err=%v", admin.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	log.Printf("[auth][admin-login] success adminID=%d", admin.ID)
	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"admin":        admin, // PasswordHash помечен json:"-", наружу не уйдет
		"sessionToken": token,
	})
}
