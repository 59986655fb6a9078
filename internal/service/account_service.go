package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sumitroy01/Donate-v2/internal/model"
	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
	"github.com/sumitroy01/Donate-v2/internal/pkg/jwt"
	"github.com/sumitroy01/Donate-v2/internal/pkg/otp"
	"github.com/sumitroy01/Donate-v2/internal/pkg/password"
)

// CodeConfig carries the code lifetimes, injected at construction so no
// business logic reads ambient state.
type CodeConfig struct {
	OTPTTL         time.Duration
	ResetTTL       time.Duration
	ResendCooldown time.Duration
}

type AccountService struct {
	users     UserStore
	sender    EmailSender
	codes     CodeConfig
	jwtSecret []byte
	jwtTTL    time.Duration
	now       func() time.Time
}

func NewAccountService(users UserStore, sender EmailSender, codes CodeConfig, jwtSecret []byte, jwtTTL time.Duration) *AccountService {
	return &AccountService{
		users:     users,
		sender:    sender,
		codes:     codes,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		now:       time.Now,
	}
}

type SignupResult struct {
	UserID               string `json:"user_id"`
	Email                string `json:"email"`
	RequiresVerification bool   `json:"requires_verification"`
}

// Signup creates an unverified account and emails it a verification code.
// A verified account with the same email is a conflict; an unverified one
// just gets a fresh code with a fresh TTL. Exactly one message goes out per
// successful call. The resend cooldown clock only starts on an explicit
// resend, so a user may ask for another code right after signing up.
func (s *AccountService) Signup(ctx context.Context, name, email, plainPassword string) (*SignupResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || plainPassword == "" {
		return nil, appErr.ErrInvalid
	}

	now := s.now()
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil && existing.IsVerified:
		return nil, appErr.ErrConflict
	case err == nil:
		code, err := otp.Generate()
		if err != nil {
			return nil, err
		}
		if err := s.users.SetVerificationCode(ctx, existing.ID, otp.Hash(code),
			otp.ExpiresAt(now, s.codes.OTPTTL), existing.LastOTPSentAt, now.Unix()); err != nil {
			return nil, err
		}
		s.sendCode(email, code)
		return &SignupResult{UserID: existing.ID, Email: email, RequiresVerification: true}, nil
	case !appErr.IsNotFound(err):
		return nil, err
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	code, err := otp.Generate()
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsVerified:   false,
		OTPHash:      otp.Hash(code),
		OTPExpiresAt: otp.ExpiresAt(now, s.codes.OTPTTL),
		Ctime:        now.Unix(),
		Mtime:        now.Unix(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.sendCode(email, code)
	return &SignupResult{UserID: user.ID, Email: email, RequiresVerification: true}, nil
}

// VerifyCode moves an account to verified and issues a session token.
// Verification happens at most once: a second valid attempt reports
// ErrAlreadyVerified, not an invalid code.
func (s *AccountService) VerifyCode(ctx context.Context, userID, email, code string) (*model.User, string, error) {
	if code == "" || (userID == "" && email == "") {
		return nil, "", appErr.ErrInvalid
	}
	user, err := s.resolve(ctx, userID, email)
	if err != nil {
		return nil, "", err
	}
	if user.IsVerified {
		return nil, "", appErr.ErrAlreadyVerified
	}
	now := s.now()
	if user.OTPHash == "" || user.OTPExpiresAt == 0 || now.Unix() > user.OTPExpiresAt {
		return nil, "", appErr.ErrCodeExpired
	}
	if !otp.Matches(code, user.OTPHash) {
		return nil, "", appErr.ErrCodeInvalid
	}
	if err := s.users.MarkVerified(ctx, user.ID, now.Unix()); err != nil {
		return nil, "", err
	}
	user.IsVerified = true
	user.OTPHash = ""
	user.OTPExpiresAt = 0
	user.LastOTPSentAt = 0
	user.Mtime = now.Unix()
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ResendCode reissues a verification code, subject to the resend cooldown.
// A call inside the cooldown window mutates nothing and sends nothing.
func (s *AccountService) ResendCode(ctx context.Context, userID, email string) error {
	if userID == "" && email == "" {
		return appErr.ErrInvalid
	}
	user, err := s.resolve(ctx, userID, email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return appErr.ErrAlreadyVerified
	}
	now := s.now()
	if user.LastOTPSentAt != 0 && now.Unix()-user.LastOTPSentAt < int64(s.codes.ResendCooldown/time.Second) {
		return appErr.ErrTooMany
	}
	code, err := otp.Generate()
	if err != nil {
		return err
	}
	if err := s.users.SetVerificationCode(ctx, user.ID, otp.Hash(code),
		otp.ExpiresAt(now, s.codes.OTPTTL), now.Unix(), now.Unix()); err != nil {
		return err
	}
	s.sendCode(user.Email, code)
	return nil
}

func (s *AccountService) Login(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	email = normalizeEmail(email)
	if email == "" || plainPassword == "" {
		return nil, "", appErr.ErrInvalid
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	if !user.IsVerified {
		return nil, "", appErr.ErrForbidden
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, "", appErr.ErrUnauthorized
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AccountService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// resolve looks up by id first and falls back to email. A dangling id is not
// an error; it degrades to the email lookup.
func (s *AccountService) resolve(ctx context.Context, userID, email string) (*model.User, error) {
	if userID != "" {
		if user, err := s.users.GetByID(ctx, userID); err == nil {
			return user, nil
		}
	}
	if email = normalizeEmail(email); email != "" {
		if user, err := s.users.GetByEmail(ctx, email); err == nil {
			return user, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (s *AccountService) sendCode(email, code string) {
	body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
		code, int(s.codes.OTPTTL/time.Minute))
	sendAsync(s.sender, email, "Your verification code", body)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
