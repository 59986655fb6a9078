package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/sumitroy01/Donate-v2/internal/model"
	"github.com/sumitroy01/Donate-v2/internal/pkg/dbutil"
	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
)

var userColumns = []string{
	"id", "name", "email", "password_hash", "is_verified",
	"otp_hash", "otp_expires_at", "last_otp_sent_at",
	"reset_otp_hash", "reset_otp_expires_at", "ctime", "mtime",
}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"id":                   user.ID,
		"name":                 user.Name,
		"email":                user.Email,
		"password_hash":        user.PasswordHash,
		"is_verified":          user.IsVerified,
		"otp_hash":             nullStr(user.OTPHash),
		"otp_expires_at":       nullInt(user.OTPExpiresAt),
		"last_otp_sent_at":     nullInt(user.LastOTPSentAt),
		"reset_otp_hash":       nullStr(user.ResetOTPHash),
		"reset_otp_expires_at": nullInt(user.ResetOTPExpiresAt),
		"ctime":                user.Ctime,
		"mtime":                user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanUser(rows)
}

// SetVerificationCode stores a fresh code digest with its expiry and
// last-sent timestamp, replacing any live code.
func (r *UserRepo) SetVerificationCode(ctx context.Context, userID, codeHash string, expiresAt, sentAt, mtime int64) error {
	return r.update(ctx, userID, map[string]interface{}{
		"otp_hash":         codeHash,
		"otp_expires_at":   expiresAt,
		"last_otp_sent_at": sentAt,
		"mtime":            mtime,
	})
}

// MarkVerified flips is_verified and clears all verification code state.
func (r *UserRepo) MarkVerified(ctx context.Context, userID string, mtime int64) error {
	return r.update(ctx, userID, map[string]interface{}{
		"is_verified":      true,
		"otp_hash":         nil,
		"otp_expires_at":   nil,
		"last_otp_sent_at": nil,
		"mtime":            mtime,
	})
}

func (r *UserRepo) SetResetCode(ctx context.Context, userID, codeHash string, expiresAt, mtime int64) error {
	return r.update(ctx, userID, map[string]interface{}{
		"reset_otp_hash":       codeHash,
		"reset_otp_expires_at": expiresAt,
		"mtime":                mtime,
	})
}

// ResetPassword stores the new credential and clears reset code state in the
// same statement.
func (r *UserRepo) ResetPassword(ctx context.Context, userID, passwordHash string, mtime int64) error {
	return r.update(ctx, userID, map[string]interface{}{
		"password_hash":        passwordHash,
		"reset_otp_hash":       nil,
		"reset_otp_expires_at": nil,
		"mtime":                mtime,
	})
}

// ClearExpiredCodes drops code state whose expiry has passed. Expiry is
// always enforced at check time; this is hygiene, not correctness.
func (r *UserRepo) ClearExpiredCodes(ctx context.Context, now int64) (int64, error) {
	var total int64
	n, err := r.updateWhere(ctx,
		map[string]interface{}{"otp_expires_at <": now},
		map[string]interface{}{"otp_hash": nil, "otp_expires_at": nil, "last_otp_sent_at": nil})
	if err != nil {
		return total, err
	}
	total += n
	n, err = r.updateWhere(ctx,
		map[string]interface{}{"reset_otp_expires_at <": now},
		map[string]interface{}{"reset_otp_hash": nil, "reset_otp_expires_at": nil})
	if err != nil {
		return total, err
	}
	total += n
	return total, nil
}

func (r *UserRepo) update(ctx context.Context, userID string, set map[string]interface{}) error {
	n, err := r.updateWhere(ctx, map[string]interface{}{"id": userID}, set)
	if err != nil {
		return err
	}
	if n == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *UserRepo) updateWhere(ctx context.Context, where, set map[string]interface{}) (int64, error) {
	sqlStr, args, err := builder.BuildUpdate("users", where, set)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func scanUser(rows *sql.Rows) (*model.User, error) {
	var user model.User
	var otpHash, resetHash sql.NullString
	var otpExp, lastSent, resetExp sql.NullInt64
	if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.IsVerified,
		&otpHash, &otpExp, &lastSent, &resetHash, &resetExp, &user.Ctime, &user.Mtime); err != nil {
		return nil, err
	}
	user.OTPHash = otpHash.String
	user.OTPExpiresAt = otpExp.Int64
	user.LastOTPSentAt = lastSent.Int64
	user.ResetOTPHash = resetHash.String
	user.ResetOTPExpiresAt = resetExp.Int64
	return &user, nil
}

func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v int64) interface{} {
	if v == 0 {
		return nil
	}
	return v
}
