package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrLoginTaken = errors.New("login already registered")
)

type User struct {
	ID           int64     `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Nome         string    `json:"nome,omitempty"`
	CreatedAt    time.Time `json:"criado_em"`
	UpdatedAt    time.Time `json:"alterado_em"`
}

type RegisterRequest struct {
	Login string `json:"login" binding:"required"`
	Senha string `json:"senha" binding:"required,min=6"`
	Nome  string `json:"nome" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Login string `json:"login" binding:"required"`
	Senha string `json:"senha" binding:"required"`
}
