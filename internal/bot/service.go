package bot

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mudarris/backend/internal/bank"
	"github.com/mudarris/backend/internal/models"
	"github.com/mudarris/backend/internal/progress"
	"github.com/mudarris/backend/internal/quiz"
	"github.com/mudarris/backend/internal/ratelimit"
)

// ProgressStore is the slice of the durable ledger the dispatcher needs.
type ProgressStore interface {
	Get(userID int64) (*models.UserProgress, error)
	SelectTrack(userID int64, track string) error
	CommitQuizResult(userID int64, track string, score, award int) error
	TopN(limit int) ([]models.LeaderboardEntry, error)
}

// Tutor answers free-form study questions.
type Tutor interface {
	Answer(ctx context.Context, userText, track string) (string, error)
}

// Service is the single entry point for inbound messages. Transport
// adapters (Telegram poller, HTTP inject endpoint) call OnMessage and
// deliver whatever it returns.
type Service struct {
	bank     *bank.Bank
	quiz     *quiz.Service
	progress ProgressStore
	tutor    Tutor
	limiter  *ratelimit.Limiter
	bonus    progress.BonusTable
}

func NewService(b *bank.Bank, q *quiz.Service, p ProgressStore, t Tutor, l *ratelimit.Limiter) *Service {
	return &Service{
		bank:     b,
		quiz:     q,
		progress: p,
		tutor:    t,
		limiter:  l,
		bonus:    progress.DefaultBonus,
	}
}

// OnMessage processes one inbound text message and returns the replies to
// send, in order. Every message passes the admission filter first; throttled
// messages are dropped without a reply so the throttle cannot be used to
// generate traffic.
func (s *Service) OnMessage(ctx context.Context, userID int64, text string, now time.Time) []string {
	if !s.limiter.Admit(userID, now) {
		log.Printf("[bot] throttled user %d", userID)
		return nil
	}

	cmd := ParseCommand(text, s.bank.Tracks())

	switch cmd.Kind {
	case CmdSelectTrack:
		return s.handleSelectTrack(userID, cmd.Track)
	case CmdStartQuiz:
		return s.handleStartQuiz(userID)
	case CmdProfile:
		return s.handleProfile(userID)
	case CmdLeaderboard:
		return s.handleLeaderboard()
	case CmdHelp:
		return []string{formatHelp(s.bank.Tracks())}
	default:
		if s.quiz.Active(userID) {
			return s.handleAnswer(userID, cmd.Text)
		}
		return s.handleTutorQuery(ctx, userID, cmd.Text)
	}
}

func (s *Service) handleSelectTrack(userID int64, track string) []string {
	if err := s.progress.SelectTrack(userID, track); err != nil {
		log.Printf("[bot] select track for user %d: %v", userID, err)
		return []string{msgServiceUnavailable}
	}
	// Reselecting a track invalidates any quiz in progress; a session
	// sampled from the old track must not outlive it.
	s.quiz.Invalidate(userID)
	return []string{formatTrackSelected(track)}
}

func (s *Service) handleStartQuiz(userID int64) []string {
	p, err := s.progress.Get(userID)
	if err != nil {
		log.Printf("[bot] get progress for user %d: %v", userID, err)
		return []string{msgServiceUnavailable}
	}
	if p == nil || p.Track == nil {
		return []string{msgChooseTrackFirst}
	}

	session, err := s.quiz.Start(userID, *p.Track)
	if err != nil {
		log.Printf("[bot] start quiz for user %d: %v", userID, err)
		return []string{msgServiceUnavailable}
	}
	return []string{formatQuestion(0, session.Current())}
}

func (s *Service) handleAnswer(userID int64, text string) []string {
	result, err := s.quiz.Answer(userID, text)
	if errors.Is(err, quiz.ErrNoSession) {
		// Dispatch checked Active just above; losing the session here means
		// a broken caller ordering. Log and drop.
		log.Printf("[bot] answer with no session for user %d", userID)
		return nil
	}
	if err != nil {
		log.Printf("[bot] advance quiz for user %d: %v", userID, err)
		return nil
	}

	feedback := msgIncorrect
	if result.Correct {
		feedback = msgCorrect
	}

	if !result.Done {
		return []string{feedback, formatQuestion(result.Index, *result.Next)}
	}

	award := progress.Award(result.Score, s.bonus)
	if err := s.progress.CommitQuizResult(userID, result.Track, result.Score, award); err != nil {
		log.Printf("[bot] commit quiz result for user %d: %v", userID, err)
	}
	return []string{feedback, formatSummary(result.Score, award)}
}

func (s *Service) handleProfile(userID int64) []string {
	p, err := s.progress.Get(userID)
	if err != nil {
		log.Printf("[bot] get progress for user %d: %v", userID, err)
		return []string{msgServiceUnavailable}
	}
	if p == nil {
		return []string{msgChooseTrackFirst}
	}
	return []string{formatProfile(p)}
}

func (s *Service) handleLeaderboard() []string {
	entries, err := s.progress.TopN(10)
	if err != nil {
		log.Printf("[bot] get leaderboard: %v", err)
		return []string{msgServiceUnavailable}
	}
	return []string{formatLeaderboard(entries)}
}

func (s *Service) handleTutorQuery(ctx context.Context, userID int64, text string) []string {
	track := ""
	if p, err := s.progress.Get(userID); err == nil && p != nil && p.Track != nil {
		track = *p.Track
	}

	answer, err := s.tutor.Answer(ctx, text, track)
	if err != nil {
		log.Printf("[bot] tutor query for user %d: %v", userID, err)
		return []string{msgServiceUnavailable}
	}
	return []string{answer}
}
