package repositories

import (
	"database/sql"
	"fmt"

	"profix/internal/models"
)

type ServiceRepository struct {
	DB *sql.DB
}

func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{DB: db}
}

func (r *ServiceRepository) Create(s *models.Service) error {
	const q = `
		INSERT INTO services (name, slug, description, category, base_price, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		s.Name, s.Slug, s.Description, s.Category, s.BasePrice, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("service create: %w", err)
	}
	return nil
}

func (r *ServiceRepository) Update(s *models.Service) error {
	const q = `
		UPDATE services
		SET name=$1, slug=$2, description=$3, category=$4, base_price=$5, is_active=$6
		WHERE id=$7
	`
	if _, err := r.DB.Exec(q,
		s.Name, s.Slug, s.Description, s.Category, s.BasePrice, s.IsActive, s.ID,
	); err != nil {
		return fmt.Errorf("service update: %w", err)
	}
	return nil
}

func (r *ServiceRepository) Delete(id int) error {
	if _, err := r.DB.Exec(`DELETE FROM services WHERE id=$1`, id); err != nil {
		return fmt.Errorf("service delete: %w", err)
	}
	return nil
}

func (r *ServiceRepository) GetByID(id int) (*models.Service, error) {
	return r.getOne(`SELECT id, name, slug, description, category, base_price, is_active, created_at FROM services WHERE id=$1`, id)
}

func (r *ServiceRepository) GetBySlug(slug string) (*models.Service, error) {
	return r.getOne(`SELECT id, name, slug, description, category, base_price, is_active, created_at FROM services WHERE slug=$1`, slug)
}

func (r *ServiceRepository) getOne(q string, arg any) (*models.Service, error) {
	row := r.DB.QueryRow(q, arg)
	var s models.Service
	if err := row.Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.Category, &s.BasePrice, &s.IsActive, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("service get: %w", err)
	}
	return &s, nil
}

// ListActive — публичный каталог.
func (r *ServiceRepository) ListActive() ([]*models.Service, error) {
	return r.list(`SELECT id, name, slug, description, category, base_price, is_active, created_at FROM services WHERE is_active = TRUE ORDER BY category, name`)
}

// ListAll — для админки, включая выключенные.
func (r *ServiceRepository) ListAll() ([]*models.Service, error) {
	return r.list(`SELECT id, name, slug, description, category, base_price, is_active, created_at FROM services ORDER BY category, name`)
}

func (r *ServiceRepository) list(q string, args ...any) ([]*models.Service, error) {
	rows, err := r.DB.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("service list: %w", err)
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		var s models.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.Category, &s.BasePrice, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("service scan: %w", err)
		}
		services = append(services, &s)
	}
	return services, rows.Err()
}
