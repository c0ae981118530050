package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/GunarsK-portfolio/pos-service/internal/models"
	"github.com/GunarsK-portfolio/pos-service/internal/repository"
)

var (
	ErrOTPNotFound = errors.New("otp not found")
	ErrOTPExpired  = errors.New("otp expired")
	ErrOTPMismatch = errors.New("otp mismatch")
)

const (
	otpMin   = 100000
	otpRange = 900000
)

// OTPService issues and verifies one-time codes for password reset.
type OTPService interface {
	RequestOTP(ctx context.Context, username, email string) (*models.OTPEntry, error)
	VerifyOTP(ctx context.Context, username, code string) error
}

type otpService struct {
	userRepo repository.UserRepository
	otpRepo  repository.OTPRepository
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

// NewOTPService creates a new OTPService. Codes are valid for ttl after issue.
func NewOTPService(userRepo repository.UserRepository, otpRepo repository.OTPRepository, ttl time.Duration) OTPService {
	return &otpService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		ttl:      ttl,
		now:      time.Now,
		generate: generateCode,
	}
}

// RequestOTP stores a fresh code for the user matching both username and
// email, replacing any pending code.
func (s *otpService) RequestOTP(ctx context.Context, username, email string) (*models.OTPEntry, error) {
	user, err := s.userRepo.FindByUsernameAndEmail(ctx, username, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	code, err := s.generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}

	entry := models.OTPEntry{
		Username: user.Username,
		Code:     code,
		IssuedAt: s.now(),
	}
	if err := s.otpRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// VerifyOTP checks a submitted code. Expired entries are removed when seen;
// a matching code is consumed; a wrong code leaves the entry for retry.
func (s *otpService) VerifyOTP(ctx context.Context, username, code string) error {
	entry, err := s.otpRepo.Get(ctx, username)
	if errors.Is(err, repository.ErrOTPNotFound) {
		return ErrOTPNotFound
	}
	if err != nil {
		return err
	}

	if s.now().Sub(entry.IssuedAt) > s.ttl {
		if _, err := s.otpRepo.Delete(ctx, username); err != nil {
			return err
		}
		return ErrOTPExpired
	}

	if entry.Code != code {
		return ErrOTPMismatch
	}

	// Only the caller that actually removes the entry gets to use it.
	deleted, err := s.otpRepo.Delete(ctx, username)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrOTPNotFound
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpRange))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}
