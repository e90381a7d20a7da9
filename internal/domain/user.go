package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Roles dos operadores da API
const (
	RoleAdmin  = 1
	RoleViewer = 2
)

// User é um operador configurado que pode acessar a API
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	RoleID       int    `json:"role_id"`
}

type Claims struct {
	UserName   string
	UserRoleID int
	jwt.RegisteredClaims
}
