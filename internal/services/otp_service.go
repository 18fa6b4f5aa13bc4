package services

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"profix/internal/models"
)

var (
	ErrFieldsRequired  = errors.New("email and otp are required")
	ErrOTPInvalid      = errors.New("invalid or expired otp")
	ErrPMNotFound      = errors.New("project manager not found")
	ErrResendThrottled = errors.New("resend throttled")
)

// Настройки по умолчанию (перекрываются конфигом).
const (
	defaultOTPTTL     = 10 * time.Minute
	defaultMaxSends   = 3
	defaultSendWindow = 10 * time.Minute
)

type OTPStore interface {
	Create(email, code string, expiresAt time.Time) (int64, error)
	GetActiveByEmailAndCode(email, code string) (*models.OTPVerification, error)
	CountRecentSends(email string, since time.Time) (int, error)
	MarkVerified(id int64) error
	ExpireActiveByEmail(email string) error
}

type PMDirectory interface {
	GetByEmail(email string) (*models.ProjectManager, error)
}

type OTPService struct {
	Repo     OTPStore
	PMs      PMDirectory
	Emails   EmailService
	Sessions *SessionService
	RoleID   int

	CodeTTL    time.Duration // если 0 — defaultOTPTTL
	MaxSends   int
	SendWindow time.Duration
}

func NewOTPService(repo OTPStore, pms PMDirectory, emails EmailService, sessions *SessionService, roleID int) *OTPService {
	return &OTPService{
		Repo:       repo,
		PMs:        pms,
		Emails:     emails,
		Sessions:   sessions,
		RoleID:     roleID,
		CodeTTL:    defaultOTPTTL,
		MaxSends:   defaultMaxSends,
		SendWindow: defaultSendWindow,
	}
}

// --- утилита генерации 6-значного кода ---
func (s *OTPService) generateCode() string {
	src := rand.NewSource(time.Now().UnixNano())
	rnd := rand.New(src)
	return fmt.Sprintf("%06d", rnd.Intn(1000000))
}

// RequestOTP — выдача кода: троттлинг, протухание старых кодов адреса,
// новая запись, письмо. Код выдаём только существующему PM.
func (s *OTPService) RequestOTP(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrFieldsRequired
	}

	pm, err := s.PMs.GetByEmail(email)
	if err != nil {
		return err
	}
	if pm == nil {
		return ErrPMNotFound
	}

	// Троттлинг отправок: не чаще MaxSends за окно
	since := time.Now().Add(-s.sendWindow())
	cnt, err := s.Repo.CountRecentSends(email, since)
	if err != nil {
		return err
	}
	if cnt >= s.maxSends() {
		return ErrResendThrottled
	}

	// Один живой код на адрес: старые протухают до выдачи нового
	if err := s.Repo.ExpireActiveByEmail(email); err != nil {
		return err
	}

	code := s.generateCode()
	ttl := s.codeTTL()
	expiresAt := time.Now().Add(ttl)

	if _, err := s.Repo.Create(email, code, expiresAt); err != nil {
		return err
	}
	if err := s.Emails.SendOTPEmail(email, code, ttl); err != nil {
		return fmt.Errorf("smtp error: %w", err)
	}

	log.Printf("[otp][send] email=%s ttl=%s", email, ttl)
	return nil
}

// VerifyOTP — проверка кода и вход PM.
//
// Порядок намеренный: код гасится до загрузки PM, так что валидный код
// для адреса без PM всё равно сгорает. "Неверный", "протухший" и
// "повторный" наружу не различаются.
func (s *OTPService) VerifyOTP(email, otp string) (*models.ProjectManager, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	otp = strings.TrimSpace(otp)
	if email == "" || otp == "" {
		return nil, "", ErrFieldsRequired
	}

	rec, err := s.Repo.GetActiveByEmailAndCode(email, otp)
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", ErrOTPInvalid
	}

	// Гасим код и убеждаемся, что запись прошла: иначе код можно было бы
	// использовать повторно.
	if err := s.Repo.MarkVerified(rec.ID); err != nil {
		return nil, "", fmt.Errorf("consume otp: %w", err)
	}

	pm, err := s.PMs.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if pm == nil {
		return nil, "", ErrPMNotFound
	}

	token, err := s.Sessions.Mint(pm.ID, s.RoleID)
	if err != nil {
		return nil, "", err
	}

	log.Printf("[otp][verify] OK pm_id=%d email=%s", pm.ID, email)
	return pm, token, nil
}

func (s *OTPService) codeTTL() time.Duration {
	if s.CodeTTL <= 0 {
		return defaultOTPTTL
	}
	return s.CodeTTL
}

func (s *OTPService) maxSends() int {
	if s.MaxSends <= 0 {
		return defaultMaxSends
	}
	return s.MaxSends
}

func (s *OTPService) sendWindow() time.Duration {
	if s.SendWindow <= 0 {
		return defaultSendWindow
	}
	return s.SendWindow
}
