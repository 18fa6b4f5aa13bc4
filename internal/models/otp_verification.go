// models/otp_verification.go
package models

import "time"

// OTPVerification — отдельная запись на каждую отправку кода.
// При новой отправке предыдущие активные коды для email протухают
// (один живой код на адрес).
type OTPVerification struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	Verified  bool      `json:"verified"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
