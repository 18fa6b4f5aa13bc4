package services

import (
	"fmt"
	"strings"

	"profix/internal/models"
)

type ServiceStore interface {
	Create(s *models.Service) error
	Update(s *models.Service) error
	Delete(id int) error
	GetByID(id int) (*models.Service, error)
	GetBySlug(slug string) (*models.Service, error)
	ListActive() ([]*models.Service, error)
	ListAll() ([]*models.Service, error)
}

type CatalogService struct {
	Repo ServiceStore
}

func NewCatalogService(repo ServiceStore) *CatalogService {
	return &CatalogService{Repo: repo}
}

func (s *CatalogService) ListActive() ([]*models.Service, error) {
	return s.Repo.ListActive()
}

func (s *CatalogService) ListAll() ([]*models.Service, error) {
	return s.Repo.ListAll()
}

func (s *CatalogService) GetBySlug(slug string) (*models.Service, error) {
	return s.Repo.GetBySlug(slug)
}

func (s *CatalogService) GetByID(id int) (*models.Service, error) {
	return s.Repo.GetByID(id)
}

func (s *CatalogService) Create(svc *models.Service) error {
	if svc.Name == "" {
		return fmt.Errorf("service name is required")
	}
	if svc.Slug == "" {
		svc.Slug = Slugify(svc.Name)
	}
	return s.Repo.Create(svc)
}

func (s *CatalogService) Update(svc *models.Service) error {
	if svc.Slug == "" {
		svc.Slug = Slugify(svc.Name)
	}
	return s.Repo.Update(svc)
}

func (s *CatalogService) Delete(id int) error {
	return s.Repo.Delete(id)
}

// Slugify — "Deep Cleaning" -> "deep-cleaning". Только [a-z0-9-].
func Slugify(name string) string {
	var b strings.Builder
	prevDash := true // не начинаем с дефиса
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
