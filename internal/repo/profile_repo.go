package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/sumitroy01/Donate-v2/internal/model"
	"github.com/sumitroy01/Donate-v2/internal/pkg/dbutil"
	appErr "github.com/sumitroy01/Donate-v2/internal/pkg/errors"
)

var profileColumns = []string{
	"id", "user_id", "title", "story", "donation_goal", "donated_amount",
	"goal_met", "goal_met_at", "ctime", "mtime",
}

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Create(ctx context.Context, profile *model.Profile) error {
	data := map[string]interface{}{
		"id":             profile.ID,
		"user_id":        profile.UserID,
		"title":          profile.Title,
		"story":          profile.Story,
		"donation_goal":  profile.DonationGoal,
		"donated_amount": profile.DonatedAmount,
		"goal_met":       profile.GoalMet,
		"goal_met_at":    nullInt(profile.GoalMetAt),
		"ctime":          profile.Ctime,
		"mtime":          profile.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("profiles", []map[string]interface{}{data})
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

func (r *ProfileRepo) GetByID(ctx context.Context, profileID string) (*model.Profile, error) {
	return r.getOne(ctx, map[string]interface{}{"id": profileID})
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	return r.getOne(ctx, map[string]interface{}{"user_id": userID})
}

func (r *ProfileRepo) List(ctx context.Context, limit uint) ([]*model.Profile, error) {
	if limit == 0 || limit > 100 {
		limit = 100
	}
	where := map[string]interface{}{"_orderby": "ctime desc", "_limit": []uint{0, limit}}
	sqlStr, args, err := builder.BuildSelect("profiles", where, profileColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var profiles []*model.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

func (r *ProfileRepo) Update(ctx context.Context, profileID, userID string, set map[string]interface{}) error {
	where := map[string]interface{}{"id": profileID, "user_id": userID}
	sqlStr, args, err := builder.BuildUpdate("profiles", where, set)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

// IncrementDonated adds amount to donated_amount and returns the updated row
// in a single statement. Concurrent donations to the same profile serialize
// on this row at the database, so no increment is lost.
func (r *ProfileRepo) IncrementDonated(ctx context.Context, profileID string, amount float64) (*model.Profile, error) {
	const query = `UPDATE profiles SET donated_amount = donated_amount + $1
		WHERE id = $2
		RETURNING id, user_id, title, story, donation_goal, donated_amount, goal_met, goal_met_at, ctime, mtime`
	rows, err := r.db.QueryContext(ctx, query, amount, profileID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanProfile(rows)
}

// MarkGoalMet latches goal_met and records the timestamp. The goal_met guard
// in the predicate makes the latch one-way: once set, later calls report
// false and leave goal_met_at untouched.
func (r *ProfileRepo) MarkGoalMet(ctx context.Context, profileID string, at int64) (bool, error) {
	const query = `UPDATE profiles SET goal_met = TRUE, goal_met_at = $1 WHERE id = $2 AND goal_met = FALSE`
	result, err := r.db.ExecContext(ctx, query, at, profileID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *ProfileRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.Profile, error) {
	sqlStr, args, err := builder.BuildSelect("profiles", where, profileColumns)
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
	return scanProfile(rows)
}

func scanProfile(rows *sql.Rows) (*model.Profile, error) {
	var profile model.Profile
	var goalMetAt sql.NullInt64
	if err := rows.Scan(&profile.ID, &profile.UserID, &profile.Title, &profile.Story,
		&profile.DonationGoal, &profile.DonatedAmount, &profile.GoalMet, &goalMetAt,
		&profile.Ctime, &profile.Mtime); err != nil {
		return nil, err
	}
	profile.GoalMetAt = goalMetAt.Int64
	return &profile, nil
}
