package quiz

import (
	"errors"
	"testing"

	"github.com/mudarris/backend/internal/bank"
)

func testBank(t *testing.T) *bank.Bank {
	t.Helper()
	b, err := bank.New(map[string][]bank.Question{
		"رياضيات": {
			{Prompt: "Q1", Answer: "a1"},
			{Prompt: "Q2", Answer: "a2"},
			{Prompt: "Q3", Answer: "a3"},
			{Prompt: "Q4", Answer: "a4"},
			{Prompt: "Q5", Answer: "a5"},
		},
	}, QuestionsPerSession)
	if err != nil {
		t.Fatalf("build test bank: %v", err)
	}
	return b
}

func TestStartCreatesFiveQuestionSession(t *testing.T) {
	s := NewService(testBank(t))

	session, err := s.Start(1, "رياضيات")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(session.Questions) != QuestionsPerSession {
		t.Fatalf("got %d questions, want %d", len(session.Questions), QuestionsPerSession)
	}

	seen := make(map[string]bool)
	for _, q := range session.Questions {
		if seen[q.Prompt] {
			t.Errorf("question %q sampled twice in one session", q.Prompt)
		}
		seen[q.Prompt] = true
	}
	if !s.Active(1) {
		t.Error("session should be active after Start")
	}
}

func TestStartUnknownTrack(t *testing.T) {
	s := NewService(testBank(t))
	if _, err := s.Start(1, "تاريخ"); err == nil {
		t.Fatal("Start with unknown track should fail")
	}
	if s.Active(1) {
		t.Error("failed Start must not leave a session behind")
	}
}

func TestAnswerAdvancesAndCompletes(t *testing.T) {
	s := NewService(testBank(t))
	session, err := s.Start(7, "رياضيات")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	// Answer correctly for even indices, wrong otherwise → score 3.
	for i := 0; i < QuestionsPerSession; i++ {
		answer := session.Questions[i].Answer
		if i%2 == 1 {
			answer = "wrong"
		}

		result, err := s.Answer(7, answer)
		if err != nil {
			t.Fatalf("Answer %d: %v", i, err)
		}

		if i < QuestionsPerSession-1 {
			if result.Done {
				t.Fatalf("Answer %d: session done early", i)
			}
			if result.Next == nil {
				t.Fatalf("Answer %d: missing next question", i)
			}
			if result.Next.Prompt != session.Questions[i+1].Prompt {
				t.Errorf("Answer %d: next = %q, want %q", i, result.Next.Prompt, session.Questions[i+1].Prompt)
			}
		} else {
			if !result.Done {
				t.Fatal("session should complete on fifth answer")
			}
			if result.Next != nil {
				t.Error("completed session must not emit a next question")
			}
			if result.Score != 3 {
				t.Errorf("final score = %d, want 3", result.Score)
			}
			if result.Track != "رياضيات" {
				t.Errorf("result track = %q, want رياضيات", result.Track)
			}
		}
	}

	if s.Active(7) {
		t.Error("session must be removed the moment the fifth answer is graded")
	}
}

func TestAnswerScoreBounds(t *testing.T) {
	s := NewService(testBank(t))
	session, _ := s.Start(2, "رياضيات")

	var last *AnswerResult
	for i := 0; i < QuestionsPerSession; i++ {
		last, _ = s.Answer(2, session.Questions[i].Answer)
	}
	if last.Score != QuestionsPerSession {
		t.Errorf("all-correct score = %d, want %d", last.Score, QuestionsPerSession)
	}

	session, _ = s.Start(2, "رياضيات")
	for i := 0; i < QuestionsPerSession; i++ {
		last, _ = s.Answer(2, "definitely wrong")
	}
	if last.Score != 0 {
		t.Errorf("all-wrong score = %d, want 0", last.Score)
	}
}

func TestAnswerWithoutSession(t *testing.T) {
	s := NewService(testBank(t))
	if _, err := s.Answer(99, "whatever"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Answer without session: err = %v, want ErrNoSession", err)
	}
}

func TestStartReplacesExistingSession(t *testing.T) {
	s := NewService(testBank(t))
	s.Start(3, "رياضيات")
	session, _ := s.Start(3, "رياضيات")

	// Restart discards prior state entirely.
	result, err := s.Answer(3, session.Questions[0].Answer)
	if err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if result.Index != 1 || result.Score != 1 {
		t.Errorf("after restart: index=%d score=%d, want 1/1", result.Index, result.Score)
	}
}

func TestInvalidate(t *testing.T) {
	s := NewService(testBank(t))
	s.Start(4, "رياضيات")
	s.Invalidate(4)
	if s.Active(4) {
		t.Error("Invalidate must remove the session")
	}
}
