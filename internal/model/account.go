package model

import (
	"time"
)

// Account is a staff user of the system (table usuarios). The password is
// only ever stored as a bcrypt hash and never serialized back out.
type Account struct {
	Base
	Name         string    `json:"nome" db:"nome"`
	Surname      string    `json:"sobrenome" db:"sobrenome"`
	NationalID   string    `json:"cpf" db:"cpf"`
	Phone        string    `json:"telefone" db:"telefone"`
	Email        string    `json:"email" db:"email"`
	Login        string    `json:"login" db:"login"`
	PasswordHash string    `json:"-" db:"senha_hash"`
	ProfileID    int       `json:"perfil_id" db:"perfil_id"`
	BirthDate    time.Time `json:"data_nascimento" db:"data_nascimento"`
	Active       bool      `json:"ativo" db:"ativo"`
}

func (a *Account) IsAdministrator() bool {
	return a.ProfileID == ProfileAdministrator
}

type CreateAccountRequest struct {
	Name       string `json:"nome" binding:"required"`
	Surname    string `json:"sobrenome" binding:"required"`
	NationalID string `json:"cpf" binding:"required"`
	Phone      string `json:"telefone"`
	Email      string `json:"email" binding:"required,email"`
	Login      string `json:"login" binding:"required"`
	Password   string `json:"senha" binding:"required,min=8"`
	ProfileID  int    `json:"perfil_id" binding:"required"`
	BirthDate  string `json:"data_nascimento" binding:"required"`
}

type SetActiveRequest struct {
	Active *bool `json:"ativo" binding:"required"`
}
