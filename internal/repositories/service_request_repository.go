package repositories

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	"profix/internal/models"
)

type ServiceRequestRepository struct {
	db *sql.DB
}

func NewServiceRequestRepository(db *sql.DB) *ServiceRequestRepository {
	if db == nil {
		log.Fatalf("received nil database connection")
	}
	return &ServiceRequestRepository{db: db}
}

const requestColumns = `
	id, reference, user_id, service_type, title, description,
	status, priority, assigned_pm_id, admin_response,
	contact_name, contact_email, contact_phone, created_at, updated_at`

func scanRequest(s interface{ Scan(...any) error }) (*models.ServiceRequest, error) {
	var sr models.ServiceRequest
	err := s.Scan(
		&sr.ID, &sr.Reference, &sr.UserID, &sr.ServiceType, &sr.Title, &sr.Description,
		&sr.Status, &sr.Priority, &sr.AssignedPMID, &sr.AdminResponse,
		&sr.ContactName, &sr.ContactEmail, &sr.ContactPhone, &sr.CreatedAt, &sr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sr, nil
}

func (r *ServiceRequestRepository) Create(sr *models.ServiceRequest) error {
	const q = `
		INSERT INTO service_requests (
			reference, user_id, service_type, title, description,
			status, priority, contact_name, contact_email, contact_phone,
			created_at, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NOW(),NOW())
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRow(q,
		sr.Reference, sr.UserID, sr.ServiceType, sr.Title, sr.Description,
		sr.Status, sr.Priority, sr.ContactName, sr.ContactEmail, sr.ContactPhone,
	).Scan(&sr.ID, &sr.CreatedAt, &sr.UpdatedAt); err != nil {
		return fmt.Errorf("service_request create: %w", err)
	}
	return nil
}

func (r *ServiceRequestRepository) GetByID(id int) (*models.ServiceRequest, error) {
	row := r.db.QueryRow(`SELECT `+requestColumns+` FROM service_requests WHERE id=$1`, id)
	sr, err := scanRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("service_request get: %w", err)
	}
	return sr, nil
}

// GetByReference — публичный поиск статуса по opaque-ссылке.
func (r *ServiceRequestRepository) GetByReference(reference string) (*models.ServiceRequest, error) {
	row := r.db.QueryRow(`SELECT `+requestColumns+` FROM service_requests WHERE reference=$1`, reference)
	sr, err := scanRequest(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("service_request get by reference: %w", err)
	}
	return sr, nil
}

// ListByAssignedPM — все заявки PM, новые сверху. Без пагинации: кабинет PM
// каждый раз перечитывает весь набор.
func (r *ServiceRequestRepository) ListByAssignedPM(pmID int) ([]*models.ServiceRequest, error) {
	const q = `
		SELECT ` + requestColumns + `
		FROM service_requests
		WHERE assigned_pm_id = $1
		ORDER BY created_at DESC
	`
	return r.queryList(q, pmID)
}

// ListFiltered — админский список с фильтрами и пагинацией.
func (r *ServiceRequestRepository) ListFiltered(f models.RequestFilter, limit, offset int) ([]*models.ServiceRequest, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != nil {
		args = append(args, *f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Priority != nil {
		args = append(args, *f.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if f.AssignedPMID != nil {
		args = append(args, *f.AssignedPMID)
		conds = append(conds, fmt.Sprintf("assigned_pm_id = $%d", len(args)))
	}

	q := `SELECT ` + requestColumns + ` FROM service_requests`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, offset)
	q += fmt.Sprintf(" OFFSET $%d", len(args))

	return r.queryList(q, args...)
}

// ListAll — полный набор для аналитики.
func (r *ServiceRequestRepository) ListAll() ([]*models.ServiceRequest, error) {
	return r.queryList(`SELECT ` + requestColumns + ` FROM service_requests ORDER BY created_at`)
}

func (r *ServiceRequestRepository) queryList(q string, args ...any) ([]*models.ServiceRequest, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("service_request list: %w", err)
	}
	defer rows.Close()

	var result []*models.ServiceRequest
	for rows.Next() {
		sr, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("service_request scan: %w", err)
		}
		result = append(result, sr)
	}
	return result, rows.Err()
}

func (r *ServiceRequestRepository) UpdateStatus(id int, status models.RequestStatus) error {
	const q = `UPDATE service_requests SET status=$1, updated_at=NOW() WHERE id=$2`
	if _, err := r.db.Exec(q, status, id); err != nil {
		return fmt.Errorf("service_request update status: %w", err)
	}
	return nil
}

func (r *ServiceRequestRepository) UpdateAssignment(id int, pmID *int) error {
	const q = `UPDATE service_requests SET assigned_pm_id=$1, updated_at=NOW() WHERE id=$2`
	if _, err := r.db.Exec(q, pmID, id); err != nil {
		return fmt.Errorf("service_request update assignment: %w", err)
	}
	return nil
}

func (r *ServiceRequestRepository) UpdateResponse(id int, response string) error {
	const q = `UPDATE service_requests SET admin_response=$1, updated_at=NOW() WHERE id=$2`
	if _, err := r.db.Exec(q, response, id); err != nil {
		return fmt.Errorf("service_request update response: %w", err)
	}
	return nil
}
