package repositories

import (
	"database/sql"
	"fmt"

	"profix/internal/models"
)

type ProjectManagerRepository interface {
	Create(pm *models.ProjectManager) error
	GetByID(id int) (*models.ProjectManager, error)
	GetByEmail(email string) (*models.ProjectManager, error)
	List(limit, offset int) ([]*models.ProjectManager, error)
	ListAll() ([]*models.ProjectManager, error)
	Update(pm *models.ProjectManager) error
	SetAvailability(id int, available bool) error
}

type projectManagerRepository struct {
	DB *sql.DB
}

func NewProjectManagerRepository(db *sql.DB) ProjectManagerRepository {
	return &projectManagerRepository{DB: db}
}

const pmColumns = `id, name, email, phone, specialization, is_available, created_at`

func scanPM(row *sql.Row) (*models.ProjectManager, error) {
	var pm models.ProjectManager
	if err := row.Scan(
		&pm.ID, &pm.Name, &pm.Email, &pm.Phone, &pm.Specialization, &pm.IsAvailable, &pm.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &pm, nil
}

func (r *projectManagerRepository) Create(pm *models.ProjectManager) error {
	const q = `
		INSERT INTO project_managers (name, email, phone, specialization, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q,
		pm.Name, pm.Email, pm.Phone, pm.Specialization, pm.IsAvailable,
	).Scan(&pm.ID, &pm.CreatedAt); err != nil {
		return fmt.Errorf("project_manager create: %w", err)
	}
	return nil
}

func (r *projectManagerRepository) GetByID(id int) (*models.ProjectManager, error) {
	pm, err := scanPM(r.DB.QueryRow(`SELECT `+pmColumns+` FROM project_managers WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("project_manager get by id: %w", err)
	}
	return pm, nil
}

// GetByEmail — email однозначно идентифицирует PM для входа.
func (r *projectManagerRepository) GetByEmail(email string) (*models.ProjectManager, error) {
	pm, err := scanPM(r.DB.QueryRow(`SELECT `+pmColumns+` FROM project_managers WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("project_manager get by email: %w", err)
	}
	return pm, nil
}

func (r *projectManagerRepository) List(limit, offset int) ([]*models.ProjectManager, error) {
	const q = `
		SELECT id, name, email, phone, specialization, is_available, created_at
		FROM project_managers
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("project_manager list: %w", err)
	}
	defer rows.Close()

	var pms []*models.ProjectManager
	for rows.Next() {
		var pm models.ProjectManager
		if err := rows.Scan(
			&pm.ID, &pm.Name, &pm.Email, &pm.Phone, &pm.Specialization, &pm.IsAvailable, &pm.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("project_manager scan: %w", err)
		}
		pms = append(pms, &pm)
	}
	return pms, rows.Err()
}

// ListAll — без пагинации, для аналитики (PM мало).
func (r *projectManagerRepository) ListAll() ([]*models.ProjectManager, error) {
	return r.List(1000, 0)
}

func (r *projectManagerRepository) Update(pm *models.ProjectManager) error {
	const q = `
		UPDATE project_managers
		SET name=$1, email=$2, phone=$3, specialization=$4, is_available=$5
		WHERE id=$6
	`
	if _, err := r.DB.Exec(q,
		pm.Name, pm.Email, pm.Phone, pm.Specialization, pm.IsAvailable, pm.ID,
	); err != nil {
		return fmt.Errorf("project_manager update: %w", err)
	}
	return nil
}

func (r *projectManagerRepository) SetAvailability(id int, available bool) error {
	if _, err := r.DB.Exec(`UPDATE project_managers SET is_available=$1 WHERE id=$2`, available, id); err != nil {
		return fmt.Errorf("project_manager set availability: %w", err)
	}
	return nil
}
