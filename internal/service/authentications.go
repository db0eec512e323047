package service

import (
	"database/sql"
	"fmt"
)

// AuthenticationService persists refresh tokens. A refresh token is valid only
// while its row exists; logout deletes it.
type AuthenticationService struct {
	db *sql.DB
}

func NewAuthenticationService(db *sql.DB) *AuthenticationService {
	return &AuthenticationService{db: db}
}

func (s *AuthenticationService) AddRefreshToken(token string) error {
	if _, err := s.db.Exec(`INSERT INTO authentications (token) VALUES ($1)`, token); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (s *AuthenticationService) VerifyRefreshToken(token string) error {
	var stored string
	err := s.db.QueryRow(`SELECT token FROM authentications WHERE token = $1`, token).Scan(&stored)
	if err == sql.ErrNoRows {
		return NewInvariantError("refresh token is not valid")
	}
	if err != nil {
		return fmt.Errorf("query refresh token: %w", err)
	}
	return nil
}

func (s *AuthenticationService) DeleteRefreshToken(token string) error {
	if _, err := s.db.Exec(`DELETE FROM authentications WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
