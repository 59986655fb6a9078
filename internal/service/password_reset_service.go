package service

import (
	"context"
	"fmt"
	"time"

	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
	"github.com/sumitroy01/Donate-v2/internal/pkg/otp"
	"github.com/sumitroy01/Donate-v2/internal/pkg/password"
)

const minPasswordLength = 6

// PasswordResetService drives the reset code flow. It is independent of the
// verification state machine: verified or not, any account may reset its
// password, and completing a reset touches neither verification state nor
// live sessions.
type PasswordResetService struct {
	users  UserStore
	sender EmailSender
	ttl    time.Duration
	now    func() time.Time
}

func NewPasswordResetService(users UserStore, sender EmailSender, ttl time.Duration) *PasswordResetService {
	return &PasswordResetService{users: users, sender: sender, ttl: ttl, now: time.Now}
}

func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	code, err := otp.Generate()
	if err != nil {
		return err
	}
	now := s.now()
	if err := s.users.SetResetCode(ctx, user.ID, otp.Hash(code),
		otp.ExpiresAt(now, s.ttl), now.Unix()); err != nil {
		return err
	}
	body := fmt.Sprintf("Your password reset code is %s. It expires in %d minutes.",
		code, int(s.ttl/time.Minute))
	sendAsync(s.sender, user.Email, "Password reset code", body)
	return nil
}

// CompleteReset stores a new credential if the reset code checks out.
// Missing, wrong and expired codes collapse into one error on purpose: this
// path gives an attacker no oracle for which failure occurred.
func (s *PasswordResetService) CompleteReset(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)
	if email == "" || code == "" || newPassword == "" {
		return appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	now := s.now()
	if user.ResetOTPHash == "" || user.ResetOTPExpiresAt == 0 ||
		now.Unix() > user.ResetOTPExpiresAt || !otp.Matches(code, user.ResetOTPHash) {
		return appErr.ErrCodeInvalidOrExpired
	}
	if len(newPassword) < minPasswordLength {
		return appErr.ErrWeakPassword
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	return s.users.ResetPassword(ctx, user.ID, hash, now.Unix())
}
