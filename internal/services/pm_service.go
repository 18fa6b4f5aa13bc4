package services

import (
	"fmt"
	"strings"

	"profix/internal/models"
	"profix/internal/repositories"
)

// PMService — провижининг менеджеров (админка) и их собственный кабинет.
type PMService struct {
	Repo repositories.ProjectManagerRepository
}

func NewPMService(repo repositories.ProjectManagerRepository) *PMService {
	return &PMService{Repo: repo}
}

func (s *PMService) Create(pm *models.ProjectManager) error {
	pm.Email = strings.TrimSpace(strings.ToLower(pm.Email))
	if pm.Email == "" || pm.Name == "" {
		return fmt.Errorf("name and email are required")
	}
	existing, err := s.Repo.GetByEmail(pm.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("pm with email %s already exists", pm.Email)
	}
	return s.Repo.Create(pm)
}

func (s *PMService) Update(pm *models.ProjectManager) error {
	pm.Email = strings.TrimSpace(strings.ToLower(pm.Email))
	return s.Repo.Update(pm)
}

func (s *PMService) GetByID(id int) (*models.ProjectManager, error) {
	return s.Repo.GetByID(id)
}

func (s *PMService) List(limit, offset int) ([]*models.ProjectManager, error) {
	return s.Repo.List(limit, offset)
}

func (s *PMService) SetAvailability(id int, available bool) error {
	return s.Repo.SetAvailability(id, available)
}
