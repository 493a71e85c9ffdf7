package models

import "time"

// UserProgress is the durable ledger row, one per user. All mutation goes
// through the progress store.
type UserProgress struct {
	UserID           int64     `json:"user_id"`
	Track            *string   `json:"track,omitempty"`
	Experience       int64     `json:"experience"`
	QuizzesCompleted int       `json:"quizzes_completed"`
	CorrectAnswers   int       `json:"correct_answers"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     int64  `json:"user_id"`
	Track      string `json:"track"`
	Experience int64  `json:"experience"`
}

type ProfileResponse struct {
	UserID           int64   `json:"user_id"`
	Track            string  `json:"track"`
	Tier             string  `json:"tier"`
	Experience       int64   `json:"experience"`
	QuizzesCompleted int     `json:"quizzes_completed"`
	CorrectAnswers   int     `json:"correct_answers"`
	Accuracy         float64 `json:"accuracy"`
}

// AdminStats are the aggregate counters behind the protected stats endpoint.
type AdminStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalQuizzes    int64 `json:"total_quizzes"`
	TotalExperience int64 `json:"total_experience"`
	QuizzesToday    int64 `json:"quizzes_today"`
}
