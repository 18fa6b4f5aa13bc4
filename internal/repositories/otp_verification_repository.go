package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"profix/internal/models"
)

type OTPVerificationRepository struct {
	DB *sql.DB
}

func NewOTPVerificationRepository(db *sql.DB) *OTPVerificationRepository {
	return &OTPVerificationRepository{DB: db}
}

// Create — создаёт новую запись кода (каждая отправка — новая строка).
func (r *OTPVerificationRepository) Create(email, code string, expiresAt time.Time) (int64, error) {
	const q = `
		INSERT INTO otp_verifications (email, code, verified, expires_at, created_at)
		VALUES ($1, $2, FALSE, $3, NOW())
		RETURNING id
	`
	var id int64
	if err := r.DB.QueryRow(q, email, code, expiresAt).Scan(&id); err != nil {
		return 0, fmt.Errorf("otp_verification create: %w", err)
	}
	return id, nil
}

// GetActiveByEmailAndCode — последняя живая запись с этим кодом:
// не подтверждена и не протухла. Старые коды протухают при новой отправке,
// так что живым может быть максимум один.
func (r *OTPVerificationRepository) GetActiveByEmailAndCode(email, code string) (*models.OTPVerification, error) {
	const q = `
		SELECT id, email, code, verified, expires_at, created_at
		FROM otp_verifications
		WHERE email = $1 AND code = $2 AND verified = FALSE AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`
	row := r.DB.QueryRow(q, email, code)
	var v models.OTPVerification
	if err := row.Scan(&v.ID, &v.Email, &v.Code, &v.Verified, &v.ExpiresAt, &v.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("otp_verification active lookup: %w", err)
	}
	return &v, nil
}

// CountRecentSends — сколько кодов отправляли на адрес за окно (троттлинг).
func (r *OTPVerificationRepository) CountRecentSends(email string, since time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM otp_verifications
		WHERE email = $1 AND created_at >= $2
	`
	var c int
	if err := r.DB.QueryRow(q, email, since).Scan(&c); err != nil {
		return 0, fmt.Errorf("otp_verification count recent: %w", err)
	}
	return c, nil
}

// MarkVerified — гасим код. Необратимо.
func (r *OTPVerificationRepository) MarkVerified(id int64) error {
	if _, err := r.DB.Exec(`UPDATE otp_verifications SET verified = TRUE WHERE id = $1`, id); err != nil {
		return fmt.Errorf("otp_verification mark verified: %w", err)
	}
	return nil
}

// ExpireActiveByEmail — протухание всех живых кодов адреса.
// Вызывается перед выдачей нового, чтобы живым оставался один код.
func (r *OTPVerificationRepository) ExpireActiveByEmail(email string) error {
	const q = `
		UPDATE otp_verifications
		SET expires_at = NOW()
		WHERE email = $1 AND verified = FALSE AND expires_at > NOW()
	`
	if _, err := r.DB.Exec(q, email); err != nil {
		return fmt.Errorf("otp_verification expire active: %w", err)
	}
	return nil
}
