package model

type Profile struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	Title        string  `json:"title"`
	Story        string  `json:"story"`
	DonationGoal float64 `json:"donation_goal"`
	// DonatedAmount only ever grows, and only through the payment callback's
	// atomic increment.
	DonatedAmount float64 `json:"donated_amount"`
	GoalMet       bool    `json:"goal_met"`
	GoalMetAt     int64   `json:"goal_met_at,omitempty"`
	Ctime         int64   `json:"ctime"`
	Mtime         int64   `json:"mtime"`
}
