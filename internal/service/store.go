package service

import (
	"context"

	"github.com/sumitroy01/Donate-v2/internal/model"
)

// UserStore is the persistence surface the account flows need. *repo.UserRepo
// implements it; tests use an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
	SetVerificationCode(ctx context.Context, userID, codeHash string, expiresAt, sentAt, mtime int64) error
	MarkVerified(ctx context.Context, userID string, mtime int64) error
	SetResetCode(ctx context.Context, userID, codeHash string, expiresAt, mtime int64) error
	ResetPassword(ctx context.Context, userID, passwordHash string, mtime int64) error
}

// ProfileStore is the persistence surface for fundraising profiles.
// IncrementDonated must be atomic at the store: add and fetch in one
// operation, serialized per row.
type ProfileStore interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, profileID string) (*model.Profile, error)
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)
	List(ctx context.Context, limit uint) ([]*model.Profile, error)
	Update(ctx context.Context, profileID, userID string, set map[string]interface{}) error
	IncrementDonated(ctx context.Context, profileID string, amount float64) (*model.Profile, error)
	MarkGoalMet(ctx context.Context, profileID string, at int64) (bool, error)
}
