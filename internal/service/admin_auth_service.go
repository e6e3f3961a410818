package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lenslight/internal/auth"
	"lenslight/internal/repository"
)

const sessionTTL = time.Hour

type AdminAuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	CreateAdmin(ctx context.Context, email, password string) error
}

type adminAuthService struct {
	repo   repository.AdminAuthRepository
	issuer auth.TokenIssuer
}

func NewAdminAuthService(repo repository.AdminAuthRepository, issuer auth.TokenIssuer) AdminAuthService {
	return &adminAuthService{repo: repo, issuer: issuer}
}

// Login checks the password hash and issues a session token carrying the
// admin's subject id.
func (s *adminAuthService) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	return s.issuer.Issue(strconv.Itoa(admin.ID), admin.Email, sessionTTL)
}

func (s *adminAuthService) CreateAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errors.New("email and password cannot be empty")
	}
	return s.repo.CreateAdmin(ctx, email, password)
}
