package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/RestuAlamBagaskara/OpenMusicAPI/internal/utils"
)

// UserService handles registration and credential verification.
type UserService struct {
	db *sql.DB
}

func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Add(username, password, fullname string) (string, error) {
	var existingID string
	err := s.db.QueryRow(`SELECT id FROM users WHERE username = $1`, username).Scan(&existingID)
	if err == nil {
		return "", NewInvariantError("failed to add user, username already taken")
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("check username: %w", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	id := newID("user")
	now := time.Now().UTC()

	var returnedID string
	err = s.db.QueryRow(
		`INSERT INTO users (id, username, password, fullname, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		id, username, hashed, fullname, now, now,
	).Scan(&returnedID)
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	if returnedID == "" {
		return "", NewInvariantError("failed to add user")
	}

	return returnedID, nil
}

// VerifyCredential checks a username/password pair and returns the user id.
// A wrong username and a wrong password both fail with the same message.
func (s *UserService) VerifyCredential(username, password string) (string, error) {
	var id, hashed string
	err := s.db.QueryRow(`SELECT id, password FROM users WHERE username = $1`, username).Scan(&id, &hashed)
	if err == sql.ErrNoRows {
		return "", NewAuthorizationError("invalid credentials")
	}
	if err != nil {
		return "", fmt.Errorf("query user by username: %w", err)
	}

	if !utils.CheckPasswordHash(password, hashed) {
		return "", NewAuthorizationError("invalid credentials")
	}

	return id, nil
}
