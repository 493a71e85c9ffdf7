package quiz

import (
	"fmt"
	"sync"

	"github.com/mudarris/backend/internal/bank"
)

// QuestionsPerSession is the fixed length of a quiz attempt.
const QuestionsPerSession = 5

// Session is one user's quiz attempt in progress. At most one exists per
// user; it lives only in memory and is gone after the fifth answer.
type Session struct {
	UserID    int64
	Track     string
	Questions []bank.Question
	Index     int
	Score     int
}

// Current returns the question awaiting an answer.
func (s *Session) Current() bank.Question {
	return s.Questions[s.Index]
}

// ErrNoSession reports an answer submitted with no quiz in progress.
// Callers are expected to check Active first; hitting this is a bug in the
// dispatch order, not a user error.
var ErrNoSession = fmt.Errorf("no active quiz session")

// AnswerResult is the outcome of grading one answer.
type AnswerResult struct {
	Correct bool
	Done    bool
	// Next is the question to ask when the session continues; nil once Done.
	Next *bank.Question
	// Index and Score reflect the session after grading.
	Index int
	Score int
	Track string
}

// Service owns the in-memory session store. All mutation happens under one
// lock so a user's read-modify-write is never interleaved.
type Service struct {
	bank *bank.Bank

	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewService(b *bank.Bank) *Service {
	return &Service{
		bank:     b,
		sessions: make(map[int64]*Session),
	}
}

// Start creates a fresh session for the user, sampling five distinct
// questions from their track. An existing session is discarded (restart).
func (s *Service) Start(userID int64, track string) (*Session, error) {
	questions, err := s.bank.Sample(track, QuestionsPerSession)
	if err != nil {
		return nil, fmt.Errorf("start quiz: %w", err)
	}

	session := &Session{
		UserID:    userID,
		Track:     track,
		Questions: questions,
	}

	s.mu.Lock()
	s.sessions[userID] = session
	s.mu.Unlock()

	return session, nil
}

// Active reports whether the user has a quiz in progress.
func (s *Service) Active(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	return ok
}

// Invalidate drops the user's session, if any. Called when a track is
// reselected mid-quiz.
func (s *Service) Invalidate(userID int64) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()
}

// Answer grades the submitted text against the session's current question
// and advances the state machine. On the fifth answer the session is
// removed and the result marked Done; the caller commits it to the ledger.
func (s *Service) Answer(userID int64, text string) (*AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}

	correct := Matches(text, session.Current().Answer)
	if correct {
		session.Score++
	}
	session.Index++

	result := &AnswerResult{
		Correct: correct,
		Index:   session.Index,
		Score:   session.Score,
		Track:   session.Track,
	}

	if session.Index < len(session.Questions) {
		next := session.Questions[session.Index]
		result.Next = &next
		return result, nil
	}

	result.Done = true
	delete(s.sessions, userID)
	return result, nil
}
