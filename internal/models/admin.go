package models

type Admin struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // не отдаём наружу
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
