package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sumitroy01/Donate-v2/internal/model"
	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
)

type ProfileService struct {
	profiles ProfileStore
	now      func() time.Time
}

func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles, now: time.Now}
}

type ProfileCreateInput struct {
	Title        string
	Story        string
	DonationGoal float64
}

type ProfileUpdateInput struct {
	Title        *string
	Story        *string
	DonationGoal *float64
}

// Create opens a fundraising profile for the account. One profile per
// account; a second create is a conflict.
func (s *ProfileService) Create(ctx context.Context, userID string, input ProfileCreateInput) (*model.Profile, error) {
	input.Title = strings.TrimSpace(input.Title)
	if userID == "" || input.Title == "" || !validGoal(input.DonationGoal) {
		return nil, appErr.ErrInvalid
	}
	now := s.now().Unix()
	profile := &model.Profile{
		ID:           newID(),
		UserID:       userID,
		Title:        input.Title,
		Story:        input.Story,
		DonationGoal: input.DonationGoal,
		Ctime:        now,
		Mtime:        now,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) Get(ctx context.Context, profileID string) (*model.Profile, error) {
	return s.profiles.GetByID(ctx, profileID)
}

func (s *ProfileService) GetOwn(ctx context.Context, userID string) (*model.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *ProfileService) List(ctx context.Context, limit uint) ([]*model.Profile, error) {
	return s.profiles.List(ctx, limit)
}

func (s *ProfileService) Update(ctx context.Context, profileID, userID string, input ProfileUpdateInput) (*model.Profile, error) {
	if profileID == "" || userID == "" {
		return nil, appErr.ErrInvalid
	}
	set := map[string]interface{}{"mtime": s.now().Unix()}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, appErr.ErrInvalid
		}
		set["title"] = title
	}
	if input.Story != nil {
		set["story"] = *input.Story
	}
	if input.DonationGoal != nil {
		if !validGoal(*input.DonationGoal) {
			return nil, appErr.ErrInvalid
		}
		set["donation_goal"] = *input.DonationGoal
	}
	if err := s.profiles.Update(ctx, profileID, userID, set); err != nil {
		return nil, err
	}
	return s.profiles.GetByID(ctx, profileID)
}

func validGoal(goal float64) bool {
	return goal > 0 && !math.IsNaN(goal) && !math.IsInf(goal, 0)
}
