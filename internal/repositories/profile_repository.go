package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"profix/internal/models"
)

type ProfileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) Create(p *models.Profile) error {
	const q = `
		INSERT INTO profiles (full_name, email, phone, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING user_id, created_at
	`
	if err := r.DB.QueryRow(q, p.FullName, p.Email, p.Phone).Scan(&p.UserID, &p.CreatedAt); err != nil {
		return fmt.Errorf("profile create: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByEmail(email string) (*models.Profile, error) {
	const q = `
		SELECT user_id, full_name, email, phone, created_at
		FROM profiles
		WHERE email = $1
	`
	row := r.DB.QueryRow(q, email)
	var p models.Profile
	if err := row.Scan(&p.UserID, &p.FullName, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get by email: %w", err)
	}
	return &p, nil
}

// GetByUserIDs — пакетная выборка для джойна в кабинете PM.
func (r *ProfileRepository) GetByUserIDs(userIDs []int) ([]*models.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	const q = `
		SELECT user_id, full_name, email, phone, created_at
		FROM profiles
		WHERE user_id = ANY($1)
	`
	rows, err := r.DB.Query(q, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("profile batch get: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.UserID, &p.FullName, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("profile scan: %w", err)
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}
