// Package auth handles registration, OTP verification and login. It yields
// the trusted userId the wallet core runs on; nothing below this layer
// authenticates.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"kudi/internal/models"
	"kudi/internal/repositories"
	"kudi/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpLength = 6
	otpTTL    = 10 * time.Minute
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrNotVerified        = errors.New("account is not verified")
)

type Service interface {
	Register(ctx context.Context, email, password string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*models.User, string, string, error)
}

type service struct {
	users  repositories.UserRepository
	mailer Mailer
	logger *logrus.Logger
}

func NewService(users repositories.UserRepository, mailer Mailer, logger *logrus.Logger) Service {
	return &service{users: users, mailer: mailer, logger: logger}
}

func (s *service) Register(ctx context.Context, email, password string) error {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		// Do not reveal that the address is taken.
		return ErrInvalidCredentials
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:      email,
		Password:   string(hashed),
		IsVerified: false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}

	return s.issueOTP(ctx, user)
}

func (s *service) VerifyOTP(ctx context.Context, email, code string) error {
	otp, err := s.users.GetLatestOTP(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrOTPNotFound) {
			return ErrInvalidOTP
		}
		return err
	}
	if otp.Expired(time.Now()) || otp.Code != code {
		return ErrInvalidOTP
	}

	user, err := s.users.GetByID(ctx, otp.UserID)
	if err != nil {
		return err
	}
	user.IsVerified = true
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.users.MarkOTPUsed(ctx, otp.ID)
}

func (s *service) ResendOTP(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Same silence as Register.
			return nil
		}
		return err
	}
	if user.IsVerified {
		return nil
	}
	return s.issueOTP(ctx, user)
}

func (s *service) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, "", "", ErrNotVerified
	}

	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		s.logger.WithError(err).Error("token generation failed")
		return nil, "", "", errors.New("error generating tokens")
	}
	return user, access, refresh, nil
}

func (s *service) issueOTP(ctx context.Context, user *models.User) error {
	code, err := generateCode(otpLength)
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	otp := &models.OTP{
		UserID:    user.ID,
		Email:     user.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := s.users.CreateOTP(ctx, otp); err != nil {
		return err
	}

	if err := s.mailer.SendOTP(ctx, user.Email, code); err != nil {
		s.logger.WithError(err).WithField("email", user.Email).Error("otp delivery failed")
		return err
	}
	return nil
}

func generateCode(length int) (string, error) {
	code := make([]byte, length)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
