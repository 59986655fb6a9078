package repo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sumitroy01/Donate-v2/internal/model"
	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
)

func seedProfile(t *testing.T, r *ProfileRepo, id, userID string, goal float64) *model.Profile {
	t.Helper()
	profile := &model.Profile{
		ID:           id,
		UserID:       userID,
		Title:        "Help the shelter",
		Story:        "Every bit counts.",
		DonationGoal: goal,
		Ctime:        1000,
		Mtime:        1000,
	}
	require.NoError(t, r.Create(context.Background(), profile))
	return profile
}

func TestProfileRepoOnePerUser(t *testing.T) {
	conn := openTestDB(t)
	users := NewUserRepo(conn)
	r := NewProfileRepo(conn)
	ctx := context.Background()

	seedUser(t, users, "u1", "sumit@example.com")
	seedProfile(t, r, "p1", "u1", 100)

	err := r.Create(ctx, &model.Profile{ID: "p2", UserID: "u1", Title: "Second", DonationGoal: 50})
	require.ErrorIs(t, err, appErr.ErrConflict)

	got, err := r.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "p1", got.ID)
}

func TestProfileRepoIncrementDonated(t *testing.T) {
	conn := openTestDB(t)
	users := NewUserRepo(conn)
	r := NewProfileRepo(conn)
	ctx := context.Background()

	seedUser(t, users, "u1", "sumit@example.com")
	seedProfile(t, r, "p1", "u1", 100)

	got, err := r.IncrementDonated(ctx, "p1", 19.5)
	require.NoError(t, err)
	require.InDelta(t, 19.5, got.DonatedAmount, 1e-9)

	got, err = r.IncrementDonated(ctx, "p1", 0.5)
	require.NoError(t, err)
	require.InDelta(t, 20, got.DonatedAmount, 1e-9)

	_, err = r.IncrementDonated(ctx, "missing", 5)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestProfileRepoIncrementDonatedConcurrent(t *testing.T) {
	conn := openTestDB(t)
	users := NewUserRepo(conn)
	r := NewProfileRepo(conn)
	ctx := context.Background()

	seedUser(t, users, "u1", "sumit@example.com")
	seedProfile(t, r, "p1", "u1", 10000)

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.IncrementDonated(ctx, "p1", 2.5)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.InDelta(t, workers*2.5, got.DonatedAmount, 1e-9)
}

func TestProfileRepoMarkGoalMetLatches(t *testing.T) {
	conn := openTestDB(t)
	users := NewUserRepo(conn)
	r := NewProfileRepo(conn)
	ctx := context.Background()

	seedUser(t, users, "u1", "sumit@example.com")
	seedProfile(t, r, "p1", "u1", 100)

	latched, err := r.MarkGoalMet(ctx, "p1", 5000)
	require.NoError(t, err)
	require.True(t, latched)

	latched, err = r.MarkGoalMet(ctx, "p1", 6000)
	require.NoError(t, err)
	require.False(t, latched)

	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.True(t, got.GoalMet)
	require.EqualValues(t, 5000, got.GoalMetAt)
}

func TestProfileRepoUpdateScopedToOwner(t *testing.T) {
	conn := openTestDB(t)
	users := NewUserRepo(conn)
	r := NewProfileRepo(conn)
	ctx := context.Background()

	seedUser(t, users, "u1", "sumit@example.com")
	seedProfile(t, r, "p1", "u1", 100)

	err := r.Update(ctx, "p1", "someone-else", map[string]interface{}{"title": "Hijacked"})
	require.ErrorIs(t, err, appErr.ErrNotFound)

	require.NoError(t, r.Update(ctx, "p1", "u1", map[string]interface{}{"title": "Renamed", "mtime": 2000}))
	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Renamed", got.Title)
}
