package repositories

import (
	"database/sql"
	"fmt"

	"profix/internal/models"
)

type AdminRepository interface {
	GetByEmail(email string) (*models.Admin, error)
}

type adminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) AdminRepository {
	return &adminRepository{DB: db}
}

func (r *adminRepository) GetByEmail(email string) (*models.Admin, error) {
	const q = `SELECT id, name, email, password_hash FROM admins WHERE email = $1`
	row := r.DB.QueryRow(q, email)
	var a models.Admin
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("admin get by email: %w", err)
	}
	return &a, nil
}
