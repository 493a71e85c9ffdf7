package progress

import (
	"database/sql"
	"fmt"

	"github.com/mudarris/backend/internal/models"
)

// Store owns the user_progress ledger. Commits are single-statement
// increments, so concurrent commits for different users never block each
// other and a user's three counters always move together.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the user's ledger row, or nil if the user has never selected
// a track.
func (s *Store) Get(userID int64) (*models.UserProgress, error) {
	var p models.UserProgress
	err := s.db.QueryRow(
		`SELECT user_id, track, experience, quizzes_completed, correct_answers, created_at, updated_at
		 FROM user_progress WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Track, &p.Experience, &p.QuizzesCompleted, &p.CorrectAnswers, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &p, nil
}

// SelectTrack upserts the user's track. Counters are initialized to zero
// for new users and left untouched on reselection.
func (s *Store) SelectTrack(userID int64, track string) error {
	_, err := s.db.Exec(
		`INSERT INTO user_progress (user_id, track) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET track = $2, updated_at = NOW()`,
		userID, track,
	)
	if err != nil {
		return fmt.Errorf("select track: %w", err)
	}
	return nil
}

// CommitQuizResult folds a completed quiz into the ledger as one atomic
// update, and records the completion in the quiz_events audit log.
func (s *Store) CommitQuizResult(userID int64, track string, score, award int) error {
	result, err := s.db.Exec(
		`UPDATE user_progress SET
		    experience = experience + $2,
		    quizzes_completed = quizzes_completed + 1,
		    correct_answers = correct_answers + $3,
		    updated_at = NOW()
		 WHERE user_id = $1`,
		userID, award, score,
	)
	if err != nil {
		return fmt.Errorf("commit quiz result: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("commit quiz result: no ledger row for user %d", userID)
	}

	_, err = s.db.Exec(
		`INSERT INTO quiz_events (user_id, track, score, experience) VALUES ($1, $2, $3, $4)`,
		userID, track, score, award,
	)
	if err != nil {
		return fmt.Errorf("log quiz event: %w", err)
	}
	return nil
}

// TopN returns the leaderboard ordered by cumulative experience.
func (s *Store) TopN(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT user_id, COALESCE(track, ''), experience,
		        ROW_NUMBER() OVER (ORDER BY experience DESC) as rank
		 FROM user_progress
		 WHERE experience > 0
		 ORDER BY experience DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Track, &e.Experience, &e.Rank); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return entries, rows.Err()
}

// Stats aggregates the counters served on the admin endpoint.
func (s *Store) Stats() (*models.AdminStats, error) {
	var stats models.AdminStats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(quizzes_completed), 0), COALESCE(SUM(experience), 0)
		 FROM user_progress`,
	).Scan(&stats.TotalUsers, &stats.TotalQuizzes, &stats.TotalExperience)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM quiz_events WHERE created_at >= CURRENT_DATE`,
	).Scan(&stats.QuizzesToday)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &stats, nil
}
