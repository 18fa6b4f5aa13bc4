package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"profix/internal/models"
	"profix/internal/services"
)

type fakeServiceStore struct {
	bySlug map[string]*models.Service
	err    error
}

func (s *fakeServiceStore) Create(svc *models.Service) error { return s.err }
func (s *fakeServiceStore) Update(svc *models.Service) error { return s.err }
func (s *fakeServiceStore) Delete(id int) error              { return s.err }

func (s *fakeServiceStore) GetByID(id int) (*models.Service, error) {
	return nil, s.err
}

func (s *fakeServiceStore) GetBySlug(slug string) (*models.Service, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bySlug[slug], nil
}

func (s *fakeServiceStore) ListActive() ([]*models.Service, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.Service
	for _, svc := range s.bySlug {
		if svc.IsActive {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *fakeServiceStore) ListAll() ([]*models.Service, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*models.Service
	for _, svc := range s.bySlug {
		out = append(out, svc)
	}
	return out, nil
}

func newCatalogRouter(store *fakeServiceStore) *gin.Engine {
	h := NewCatalogHandler(services.NewCatalogService(store))
	r := gin.New()
	r.GET("/services", h.List)
	r.GET("/services/:slug", h.GetBySlug)
	return r
}

func getPath(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCatalogGetBySlug(t *testing.T) {
	store := &fakeServiceStore{bySlug: map[string]*models.Service{
		"deep-cleaning": {ID: 1, Name: "Deep Cleaning", Slug: "deep-cleaning", IsActive: true},
		"old-offer":     {ID: 2, Name: "Old Offer", Slug: "old-offer", IsActive: false},
	}}
	r := newCatalogRouter(store)

	tests := []struct {
		name     string
		slug     string
		wantCode int
	}{
		{"active service", "deep-cleaning", http.StatusOK},
		{"unknown slug", "nope", http.StatusNotFound},
		{"disabled service is hidden", "old-offer", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getPath(r, "/services/"+tt.slug)
			if w.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}

// Ошибка хранилища — это 500, а не "не найдено".
func TestCatalogGetBySlugStoreError(t *testing.T) {
	r := newCatalogRouter(&fakeServiceStore{err: errors.New("db down")})

	w := getPath(r, "/services/deep-cleaning")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] == "service not found" {
		t.Error("a store failure must not masquerade as a missing service")
	}
}

func TestCatalogListEmptyIsArray(t *testing.T) {
	r := newCatalogRouter(&fakeServiceStore{bySlug: map[string]*models.Service{}})

	w := getPath(r, "/services")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "[]" {
		t.Errorf("empty catalog must serialize as [], got %s", got)
	}
}
