package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"profix/internal/models"
	"profix/internal/repositories"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrNotAssigned     = errors.New("request is not assigned to this pm")
	ErrBadStatus       = errors.New("unknown status value")
)

type RequestStore interface {
	Create(sr *models.ServiceRequest) error
	GetByID(id int) (*models.ServiceRequest, error)
	GetByReference(reference string) (*models.ServiceRequest, error)
	ListByAssignedPM(pmID int) ([]*models.ServiceRequest, error)
	ListFiltered(f models.RequestFilter, limit, offset int) ([]*models.ServiceRequest, error)
	UpdateStatus(id int, status models.RequestStatus) error
	UpdateAssignment(id int, pmID *int) error
	UpdateResponse(id int, response string) error
}

type ProfileStore interface {
	Create(p *models.Profile) error
	GetByEmail(email string) (*models.Profile, error)
	GetByUserIDs(userIDs []int) ([]*models.Profile, error)
}

type NoteStore interface {
	Create(n *models.RequestNote) error
	ListByRequestIDs(requestIDs []int) ([]*models.RequestNote, error)
}

type RequestService struct {
	Repo     RequestStore
	Profiles ProfileStore
	Notes    NoteStore
	PMs      repositories.ProjectManagerRepository
	Emails   EmailService
	Telegram *TelegramService // может быть nil
}

func NewRequestService(
	repo RequestStore,
	profiles ProfileStore,
	notes NoteStore,
	pms repositories.ProjectManagerRepository,
	emails EmailService,
	telegram *TelegramService,
) *RequestService {
	return &RequestService{
		Repo:     repo,
		Profiles: profiles,
		Notes:    notes,
		PMs:      pms,
		Emails:   emails,
		Telegram: telegram,
	}
}

type CreateRequestInput struct {
	ServiceType  string
	Title        string
	Description  string
	Priority     models.RequestPriority
	ContactName  string
	ContactEmail string
	ContactPhone string
}

// CreateRequest — приём заявки с сайта. Профиль клиента ищем по email,
// при отсутствии заводим.
func (s *RequestService) CreateRequest(in CreateRequestInput) (*models.ServiceRequest, error) {
	profile, err := s.Profiles.GetByEmail(in.ContactEmail)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.Profile{
			FullName: in.ContactName,
			Email:    in.ContactEmail,
			Phone:    in.ContactPhone,
		}
		if err := s.Profiles.Create(profile); err != nil {
			return nil, err
		}
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !IsValidPriority(priority) {
		return nil, fmt.Errorf("unknown priority %q", priority)
	}

	sr := &models.ServiceRequest{
		Reference:    uuid.NewString(),
		UserID:       profile.UserID,
		ServiceType:  in.ServiceType,
		Title:        in.Title,
		Description:  in.Description,
		Status:       models.StatusPending,
		Priority:     priority,
		ContactName:  in.ContactName,
		ContactEmail: in.ContactEmail,
		ContactPhone: in.ContactPhone,
	}
	if err := s.Repo.Create(sr); err != nil {
		return nil, err
	}

	// Уведомление в Telegram — best effort, заявку не валим
	if err := s.Telegram.NotifyAdmin(fmt.Sprintf(
		"Новая заявка #%d: %s (%s, приоритет %s)", sr.ID, sr.Title, sr.ServiceType, sr.Priority,
	)); err != nil {
		log.Printf("[request][create] telegram notify failed: id=%d err=%v", sr.ID, err)
	}

	return sr, nil
}

func (s *RequestService) GetByReference(reference string) (*models.ServiceRequest, error) {
	return s.Repo.GetByReference(reference)
}

// PMRequestView — заявка глазами PM: карточка клиента и заметки.
type PMRequestView struct {
	models.ServiceRequest
	Customer *models.Profile `json:"customer,omitempty"`
	Notes    []string        `json:"notes"`
}

// ListForPM — заявки PM с пакетным джойном профилей по user_id.
func (s *RequestService) ListForPM(pmID int) ([]*PMRequestView, error) {
	requests, err := s.Repo.ListByAssignedPM(pmID)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return []*PMRequestView{}, nil
	}

	seen := map[int]bool{}
	var userIDs []int
	var requestIDs []int
	for _, sr := range requests {
		requestIDs = append(requestIDs, sr.ID)
		if !seen[sr.UserID] {
			seen[sr.UserID] = true
			userIDs = append(userIDs, sr.UserID)
		}
	}

	profiles, err := s.Profiles.GetByUserIDs(userIDs)
	if err != nil {
		return nil, err
	}
	profileByUser := make(map[int]*models.Profile, len(profiles))
	for _, p := range profiles {
		profileByUser[p.UserID] = p
	}

	notes, err := s.Notes.ListByRequestIDs(requestIDs)
	if err != nil {
		return nil, err
	}
	notesByRequest := map[int][]string{}
	for _, n := range notes {
		notesByRequest[n.RequestID] = append(notesByRequest[n.RequestID], renderNote(n))
	}

	views := make([]*PMRequestView, 0, len(requests))
	for _, sr := range requests {
		noteLines := notesByRequest[sr.ID]
		if noteLines == nil {
			noteLines = []string{}
		}
		views = append(views, &PMRequestView{
			ServiceRequest: *sr,
			Customer:       profileByUser[sr.UserID],
			Notes:          noteLines,
		})
	}
	return views, nil
}

// UpdateStatusByPM — произвольный переход между четырьмя статусами,
// но только по своей заявке.
func (s *RequestService) UpdateStatusByPM(pmID, requestID int, status models.RequestStatus) error {
	if !IsValidStatus(status) {
		return ErrBadStatus
	}
	sr, err := s.Repo.GetByID(requestID)
	if err != nil {
		return err
	}
	if sr == nil {
		return ErrRequestNotFound
	}
	if sr.AssignedPMID == nil || *sr.AssignedPMID != pmID {
		return ErrNotAssigned
	}
	return s.Repo.UpdateStatus(requestID, status)
}

// AddNote — новая строка в request_notes; возвращаем отрендеренную строку
// в формате "[дата] текст", как её увидит список.
func (s *RequestService) AddNote(pmID, requestID int, body string) (string, error) {
	sr, err := s.Repo.GetByID(requestID)
	if err != nil {
		return "", err
	}
	if sr == nil {
		return "", ErrRequestNotFound
	}
	if sr.AssignedPMID == nil || *sr.AssignedPMID != pmID {
		return "", ErrNotAssigned
	}

	note := &models.RequestNote{
		RequestID:  requestID,
		AuthorPMID: pmID,
		Body:       body,
	}
	if err := s.Notes.Create(note); err != nil {
		return "", err
	}
	if note.CreatedAt.IsZero() {
		note.CreatedAt = time.Now()
	}
	return renderNote(note), nil
}

func renderNote(n *models.RequestNote) string {
	return fmt.Sprintf("[%s] %s", n.CreatedAt.Format("02.01.2006 15:04"), n.Body)
}

// ================== БЛОК: АДМИНКА ==================

func (s *RequestService) ListFiltered(f models.RequestFilter, limit, offset int) ([]*models.ServiceRequest, error) {
	return s.Repo.ListFiltered(f, limit, offset)
}

// Assign — назначение PM на заявку.
func (s *RequestService) Assign(requestID, pmID int) error {
	sr, err := s.Repo.GetByID(requestID)
	if err != nil {
		return err
	}
	if sr == nil {
		return ErrRequestNotFound
	}
	pm, err := s.PMs.GetByID(pmID)
	if err != nil {
		return err
	}
	if pm == nil {
		return ErrPMNotFound
	}
	if err := s.Repo.UpdateAssignment(requestID, &pmID); err != nil {
		return err
	}

	if err := s.Telegram.NotifyAdmin(fmt.Sprintf(
		"Заявка #%d назначена на %s", requestID, pm.Name,
	)); err != nil {
		log.Printf("[request][assign] telegram notify failed: id=%d err=%v", requestID, err)
	}
	return nil
}

// Respond — ответ админа; клиенту уходит письмо (best effort).
func (s *RequestService) Respond(requestID int, response string) error {
	sr, err := s.Repo.GetByID(requestID)
	if err != nil {
		return err
	}
	if sr == nil {
		return ErrRequestNotFound
	}
	if err := s.Repo.UpdateResponse(requestID, response); err != nil {
		return err
	}
	if s.Emails != nil {
		if err := s.Emails.SendResponseEmail(sr.ContactEmail, sr.Reference, response); err != nil {
			log.Printf("[request][respond] failed to send email to %s: %v", sr.ContactEmail, err)
		}
	}
	return nil
}
