package models

import "time"

// ProjectManager — учётная запись менеджера проектов.
// Вход в кабинет только по email-коду, пароля у PM нет.
type ProjectManager struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          *string   `json:"phone,omitempty"`
	Specialization *string   `json:"specialization,omitempty"`
	IsAvailable    bool      `json:"is_available"`
	CreatedAt      time.Time `json:"created_at"`
}
