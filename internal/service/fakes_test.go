package service

import (
	"context"
	"sync"

	"github.com/sumitroy01/Donate-v2/internal/model"
	"github.com/sumitroy01/Donate-v2/internal/payment"
	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return appErr.ErrConflict
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, userID string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeUserStore) SetVerificationCode(_ context.Context, userID, codeHash string, expiresAt, sentAt, mtime int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return appErr.ErrNotFound
	}
	u.OTPHash = codeHash
	u.OTPExpiresAt = expiresAt
	u.LastOTPSentAt = sentAt
	u.Mtime = mtime
	return nil
}

func (f *fakeUserStore) MarkVerified(_ context.Context, userID string, mtime int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return appErr.ErrNotFound
	}
	u.IsVerified = true
	u.OTPHash = ""
	u.OTPExpiresAt = 0
	u.LastOTPSentAt = 0
	u.Mtime = mtime
	return nil
}

func (f *fakeUserStore) SetResetCode(_ context.Context, userID, codeHash string, expiresAt, mtime int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return appErr.ErrNotFound
	}
	u.ResetOTPHash = codeHash
	u.ResetOTPExpiresAt = expiresAt
	u.Mtime = mtime
	return nil
}

func (f *fakeUserStore) ResetPassword(_ context.Context, userID, passwordHash string, mtime int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return appErr.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetOTPHash = ""
	u.ResetOTPExpiresAt = 0
	u.Mtime = mtime
	return nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*model.Profile)}
}

func (f *fakeProfileStore) Create(_ context.Context, profile *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == profile.UserID {
			return appErr.ErrConflict
		}
	}
	clone := *profile
	f.profiles[profile.ID] = &clone
	return nil
}

func (f *fakeProfileStore) GetByID(_ context.Context, profileID string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[profileID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, appErr.ErrNotFound
}

func (f *fakeProfileStore) List(_ context.Context, limit uint) ([]*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Profile
	for _, p := range f.profiles {
		clone := *p
		out = append(out, &clone)
		if limit > 0 && uint(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProfileStore) Update(_ context.Context, profileID, userID string, set map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[profileID]
	if !ok || p.UserID != userID {
		return appErr.ErrNotFound
	}
	if v, ok := set["title"]; ok {
		p.Title = v.(string)
	}
	if v, ok := set["story"]; ok {
		p.Story = v.(string)
	}
	if v, ok := set["donation_goal"]; ok {
		p.DonationGoal = v.(float64)
	}
	if v, ok := set["mtime"]; ok {
		p.Mtime = v.(int64)
	}
	return nil
}

func (f *fakeProfileStore) IncrementDonated(_ context.Context, profileID string, amount float64) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[profileID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	p.DonatedAmount += amount
	clone := *p
	return &clone, nil
}

func (f *fakeProfileStore) MarkGoalMet(_ context.Context, profileID string, at int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[profileID]
	if !ok {
		return false, appErr.ErrNotFound
	}
	if p.GoalMet {
		return false, nil
	}
	p.GoalMet = true
	p.GoalMetAt = at
	return true, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeGateway struct {
	mu        sync.Mutex
	secret    string
	orders    []payment.OrderRequest
	createErr error
}

func (f *fakeGateway) CreateOrder(_ context.Context, req payment.OrderRequest) (*payment.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.orders = append(f.orders, req)
	return &payment.Order{ID: "order_fake", Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt, Status: "created"}, nil
}

func (f *fakeGateway) KeyID() string {
	return "key_fake"
}

func (f *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return payment.Sign(f.secret, orderID, paymentID) == signature
}

func (f *fakeGateway) lastOrder() payment.OrderRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[len(f.orders)-1]
}
