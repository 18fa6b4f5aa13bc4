package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"profix/internal/middleware"
	"profix/internal/models"
)

// --- фейки хранилищ в памяти ---

type memOTPStore struct {
	mu      sync.Mutex
	nextID  int64
	records []*models.OTPVerification

	markVerifiedErr error
}

func (s *memOTPStore) Create(email, code string, expiresAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.records = append(s.records, &models.OTPVerification{
		ID:        s.nextID,
		Email:     email,
		Code:      code,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	})
	return s.nextID, nil
}

func (s *memOTPStore) GetActiveByEmailAndCode(email, code string) (*models.OTPVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *models.OTPVerification
	for _, rec := range s.records {
		if rec.Email != email || rec.Code != code || rec.Verified || !rec.ExpiresAt.After(time.Now()) {
			continue
		}
		if best == nil || rec.CreatedAt.After(best.CreatedAt) {
			best = rec
		}
	}
	if best == nil {
		return nil, nil
	}
	cp := *best
	return &cp, nil
}

func (s *memOTPStore) CountRecentSends(email string, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, rec := range s.records {
		if rec.Email == email && rec.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

func (s *memOTPStore) MarkVerified(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.markVerifiedErr != nil {
		return s.markVerifiedErr
	}
	for _, rec := range s.records {
		if rec.ID == id {
			rec.Verified = true
			return nil
		}
	}
	return nil
}

func (s *memOTPStore) ExpireActiveByEmail(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, rec := range s.records {
		if rec.Email == email && !rec.Verified && rec.ExpiresAt.After(now) {
			rec.ExpiresAt = now
		}
	}
	return nil
}

func (s *memOTPStore) byID(id int64) *models.OTPVerification {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}

type memPMDirectory struct {
	byEmail map[string]*models.ProjectManager
}

func (d *memPMDirectory) GetByEmail(email string) (*models.ProjectManager, error) {
	return d.byEmail[email], nil
}

type recordingEmailService struct {
	mu    sync.Mutex
	codes []string
}

func (e *recordingEmailService) SendOTPEmail(email, code string, ttl time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.codes = append(e.codes, code)
	return nil
}

func (e *recordingEmailService) SendResponseEmail(email, reference, response string) error {
	return nil
}

var testSessionKey = []byte("test-session-key")

func newTestOTPService(store *memOTPStore, pms *memPMDirectory, emails *recordingEmailService) *OTPService {
	return NewOTPService(store, pms, emails, NewSessionService(testSessionKey, 45*time.Minute), 10)
}

func TestVerifyOTPMissingFields(t *testing.T) {
	svc := newTestOTPService(&memOTPStore{}, &memPMDirectory{}, &recordingEmailService{})
	cases := [][2]string{{"", ""}, {"pm@profix.kz", ""}, {"", "123456"}, {"   ", "123456"}}
	for _, c := range cases {
		if _, _, err := svc.VerifyOTP(c[0], c[1]); !errors.Is(err, ErrFieldsRequired) {
			t.Errorf("VerifyOTP(%q, %q): expected ErrFieldsRequired, got %v", c[0], c[1], err)
		}
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	store := &memOTPStore{}
	store.Create("pm@profix.kz", "111111", time.Now().Add(10*time.Minute))
	svc := newTestOTPService(store, &memPMDirectory{}, &recordingEmailService{})

	if _, _, err := svc.VerifyOTP("pm@profix.kz", "222222"); !errors.Is(err, ErrOTPInvalid) {
		t.Errorf("expected ErrOTPInvalid, got %v", err)
	}
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	store := &memOTPStore{}
	store.Create("pm@profix.kz", "111111", time.Now().Add(-time.Minute))
	svc := newTestOTPService(store, &memPMDirectory{}, &recordingEmailService{})

	if _, _, err := svc.VerifyOTP("pm@profix.kz", "111111"); !errors.Is(err, ErrOTPInvalid) {
		t.Errorf("expected ErrOTPInvalid for expired code, got %v", err)
	}
}

func TestVerifyOTPSuccess(t *testing.T) {
	store := &memOTPStore{}
	id, _ := store.Create("pm@profix.kz", "123456", time.Now().Add(10*time.Minute))
	pms := &memPMDirectory{byEmail: map[string]*models.ProjectManager{
		"pm@profix.kz": {ID: 42, Name: "Aigerim", Email: "pm@profix.kz"},
	}}
	svc := newTestOTPService(store, pms, &recordingEmailService{})

	pm, token, err := svc.VerifyOTP(" PM@profix.kz ", "123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pm == nil || pm.ID != 42 {
		t.Fatalf("expected pm 42, got %+v", pm)
	}

	claims := &middleware.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return testSessionKey, nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("session token must parse with the signing key: %v", err)
	}
	if claims.UserID != 42 || claims.RoleID != 10 {
		t.Errorf("claims: expected user 42, role 10, got %+v", claims)
	}
	if claims.ID == "" {
		t.Error("session token must carry a jti")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Error("session token must expire in the future")
	}

	if rec := store.byID(id); rec == nil || !rec.Verified {
		t.Error("code must be marked verified after successful login")
	}
}

func TestVerifyOTPCodeIsSingleUse(t *testing.T) {
	store := &memOTPStore{}
	store.Create("pm@profix.kz", "123456", time.Now().Add(10*time.Minute))
	pms := &memPMDirectory{byEmail: map[string]*models.ProjectManager{
		"pm@profix.kz": {ID: 1, Email: "pm@profix.kz"},
	}}
	svc := newTestOTPService(store, pms, &recordingEmailService{})

	if _, _, err := svc.VerifyOTP("pm@profix.kz", "123456"); err != nil {
		t.Fatalf("first use failed: %v", err)
	}
	if _, _, err := svc.VerifyOTP("pm@profix.kz", "123456"); !errors.Is(err, ErrOTPInvalid) {
		t.Errorf("second use: expected ErrOTPInvalid, got %v", err)
	}
}

// Валидный код для адреса без PM сгорает до поиска PM.
func TestVerifyOTPNoPMConsumesCode(t *testing.T) {
	store := &memOTPStore{}
	id, _ := store.Create("ghost@profix.kz", "123456", time.Now().Add(10*time.Minute))
	svc := newTestOTPService(store, &memPMDirectory{}, &recordingEmailService{})

	if _, _, err := svc.VerifyOTP("ghost@profix.kz", "123456"); !errors.Is(err, ErrPMNotFound) {
		t.Fatalf("expected ErrPMNotFound, got %v", err)
	}
	if rec := store.byID(id); rec == nil || !rec.Verified {
		t.Error("code must be consumed even when no pm exists for the email")
	}
}

func TestVerifyOTPMarkVerifiedFailureBlocksLogin(t *testing.T) {
	store := &memOTPStore{markVerifiedErr: errors.New("db down")}
	store.Create("pm@profix.kz", "123456", time.Now().Add(10*time.Minute))
	pms := &memPMDirectory{byEmail: map[string]*models.ProjectManager{
		"pm@profix.kz": {ID: 1, Email: "pm@profix.kz"},
	}}
	svc := newTestOTPService(store, pms, &recordingEmailService{})

	_, token, err := svc.VerifyOTP("pm@profix.kz", "123456")
	if err == nil || errors.Is(err, ErrOTPInvalid) || errors.Is(err, ErrPMNotFound) {
		t.Errorf("expected internal error, got %v", err)
	}
	if token != "" {
		t.Error("no session token may be issued when the code cannot be consumed")
	}
}

func TestRequestOTPUnknownEmail(t *testing.T) {
	svc := newTestOTPService(&memOTPStore{}, &memPMDirectory{}, &recordingEmailService{})
	if err := svc.RequestOTP("nobody@profix.kz"); !errors.Is(err, ErrPMNotFound) {
		t.Errorf("expected ErrPMNotFound, got %v", err)
	}
}

func TestRequestOTPExpiresPriorCodes(t *testing.T) {
	store := &memOTPStore{}
	pms := &memPMDirectory{byEmail: map[string]*models.ProjectManager{
		"pm@profix.kz": {ID: 1, Email: "pm@profix.kz"},
	}}
	emails := &recordingEmailService{}
	svc := newTestOTPService(store, pms, emails)

	if err := svc.RequestOTP("pm@profix.kz"); err != nil {
		t.Fatalf("first issue failed: %v", err)
	}
	if err := svc.RequestOTP("pm@profix.kz"); err != nil {
		t.Fatalf("second issue failed: %v", err)
	}
	if len(emails.codes) != 2 {
		t.Fatalf("expected 2 sent codes, got %d", len(emails.codes))
	}

	// Первый код протух при выдаче второго
	if rec, _ := store.GetActiveByEmailAndCode("pm@profix.kz", emails.codes[0]); rec != nil && emails.codes[0] != emails.codes[1] {
		t.Error("older code must be expired when a new one is issued")
	}
	if rec, _ := store.GetActiveByEmailAndCode("pm@profix.kz", emails.codes[1]); rec == nil {
		t.Error("latest code must stay active")
	}
}

func TestRequestOTPThrottled(t *testing.T) {
	store := &memOTPStore{}
	pms := &memPMDirectory{byEmail: map[string]*models.ProjectManager{
		"pm@profix.kz": {ID: 1, Email: "pm@profix.kz"},
	}}
	svc := newTestOTPService(store, pms, &recordingEmailService{})
	svc.MaxSends = 3
	svc.SendWindow = 10 * time.Minute

	for i := 0; i < 3; i++ {
		if err := svc.RequestOTP("pm@profix.kz"); err != nil {
			t.Fatalf("send %d failed: %v", i+1, err)
		}
	}
	if err := svc.RequestOTP("pm@profix.kz"); !errors.Is(err, ErrResendThrottled) {
		t.Errorf("expected ErrResendThrottled, got %v", err)
	}
}
