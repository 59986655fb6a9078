package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
	"github.com/sumitroy01/Donate-v2/internal/pkg/otp"
	"github.com/sumitroy01/Donate-v2/internal/pkg/password"
)

func seedResetUser(t *testing.T, users *fakeUserStore) string {
	t.Helper()
	svc := newTestAccountService(users, &fakeSender{})
	result, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "original6")
	require.NoError(t, err)
	return result.UserID
}

func TestRequestReset_UnknownAccount(t *testing.T) {
	svc := NewPasswordResetService(newFakeUserStore(), &fakeSender{}, 5*time.Minute)
	err := svc.RequestReset(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestRequestReset_IssuesCode(t *testing.T) {
	users := newFakeUserStore()
	userID := seedResetUser(t, users)
	sender := &fakeSender{}
	svc := NewPasswordResetService(users, sender, 5*time.Minute)

	require.NoError(t, svc.RequestReset(context.Background(), "alice@example.com"))
	waitForEmails(t, sender, 1)

	user, err := users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NotEmpty(t, user.ResetOTPHash)
	require.Greater(t, user.ResetOTPExpiresAt, time.Now().Unix())
}

func TestCompleteReset_InvalidAndExpiredCollapse(t *testing.T) {
	users := newFakeUserStore()
	userID := seedResetUser(t, users)
	svc := NewPasswordResetService(users, &fakeSender{}, 5*time.Minute)

	// No code stored at all.
	err := svc.CompleteReset(context.Background(), "alice@example.com", "123456", "newpass6")
	require.ErrorIs(t, err, appErr.ErrCodeInvalidOrExpired)

	// Wrong code.
	require.NoError(t, users.SetResetCode(context.Background(), userID, otp.Hash("111111"), time.Now().Add(5*time.Minute).Unix(), time.Now().Unix()))
	err = svc.CompleteReset(context.Background(), "alice@example.com", "222222", "newpass6")
	require.ErrorIs(t, err, appErr.ErrCodeInvalidOrExpired)

	// Correct code, expired.
	require.NoError(t, users.SetResetCode(context.Background(), userID, otp.Hash("111111"), time.Now().Add(-time.Second).Unix(), time.Now().Unix()))
	err = svc.CompleteReset(context.Background(), "alice@example.com", "111111", "newpass6")
	require.ErrorIs(t, err, appErr.ErrCodeInvalidOrExpired)
}

func TestCompleteReset_WeakPassword(t *testing.T) {
	users := newFakeUserStore()
	userID := seedResetUser(t, users)
	svc := NewPasswordResetService(users, &fakeSender{}, 5*time.Minute)

	require.NoError(t, users.SetResetCode(context.Background(), userID, otp.Hash("111111"), time.Now().Add(5*time.Minute).Unix(), time.Now().Unix()))
	err := svc.CompleteReset(context.Background(), "alice@example.com", "111111", "abc12")
	require.ErrorIs(t, err, appErr.ErrWeakPassword)
}

func TestCompleteReset_DoesNotTouchVerificationState(t *testing.T) {
	users := newFakeUserStore()
	userID := seedResetUser(t, users)
	svc := NewPasswordResetService(users, &fakeSender{}, 5*time.Minute)

	before, err := users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NoError(t, users.SetResetCode(context.Background(), userID, otp.Hash("111111"), time.Now().Add(5*time.Minute).Unix(), time.Now().Unix()))

	require.NoError(t, svc.CompleteReset(context.Background(), "alice@example.com", "111111", "newpass6"))

	after, err := users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.NoError(t, password.Compare(after.PasswordHash, "newpass6"))
	require.Empty(t, after.ResetOTPHash)
	require.Zero(t, after.ResetOTPExpiresAt)
	// Verification state untouched: still unverified, same live code.
	require.Equal(t, before.IsVerified, after.IsVerified)
	require.Equal(t, before.OTPHash, after.OTPHash)
	require.Equal(t, before.OTPExpiresAt, after.OTPExpiresAt)
}

func TestCompleteReset_AllowedForUnverifiedAccounts(t *testing.T) {
	users := newFakeUserStore()
	userID := seedResetUser(t, users)
	svc := NewPasswordResetService(users, &fakeSender{}, 5*time.Minute)

	user, err := users.GetByID(context.Background(), userID)
	require.NoError(t, err)
	require.False(t, user.IsVerified)

	require.NoError(t, users.SetResetCode(context.Background(), userID, otp.Hash("111111"), time.Now().Add(5*time.Minute).Unix(), time.Now().Unix()))
	require.NoError(t, svc.CompleteReset(context.Background(), "alice@example.com", "111111", "newpass6"))
}
