package tutor

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"
)

const maxAttempts = 2

// Service answers free-form study questions through the completion
// collaborator, scoped to the user's track, with a best-effort guard that
// keeps the output in Arabic script.
type Service struct {
	llm Client
}

func NewService(llm Client) *Service {
	return &Service{llm: llm}
}

// Answer asks the collaborator for a response scoped to the given track
// (empty when the user has not selected one). If the response mixes in a
// foreign alphabet, the offending characters are stripped and the question
// re-asked once; the purer of the two results wins. Errors are transient
// collaborator failures — the caller surfaces a fixed apology, never the
// error text.
func (s *Service) Answer(ctx context.Context, userText, track string) (string, error) {
	systemPrompt := buildSystemPrompt(track)

	text, err := s.completeWithRetry(ctx, systemPrompt, userText)
	if err != nil {
		return "", err
	}

	if !hasForeignScript(text) {
		return text, nil
	}

	log.Printf("[tutor] response contains foreign script, re-asking")
	retryPrompt := systemPrompt + "\nأجب باللغة العربية فقط دون استخدام أي حروف أجنبية."
	retried, err := s.completeWithRetry(ctx, retryPrompt, userText)
	if err == nil && !hasForeignScript(retried) {
		return retried, nil
	}

	// Best effort: return the stripped first answer.
	return stripForeignScript(text), nil
}

func (s *Service) completeWithRetry(ctx context.Context, systemPrompt, userText string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			sleep := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("[tutor] retrying completion in %v (attempt %d)", sleep, attempt+1)
			time.Sleep(sleep)
		}

		text, err := s.llm.Complete(ctx, systemPrompt, userText)
		if err == nil {
			return text, nil
		}
		lastErr = err
		log.Printf("[tutor] completion attempt %d failed: %v", attempt+1, err)
	}
	return "", fmt.Errorf("completion failed after retries: %w", lastErr)
}

func buildSystemPrompt(track string) string {
	var b strings.Builder
	b.WriteString("أنت مدرس مساعد يجيب على أسئلة الطلاب باللغة العربية الفصحى فقط. ")
	if track != "" {
		fmt.Fprintf(&b, "تخصصك هو مادة %s ولا تجب إلا على الأسئلة المتعلقة بها. ", track)
	}
	b.WriteString("لا تجب على أي سؤال خارج المجال الدراسي، واعتذر بأدب عند الخروج عنه.")
	return b.String()
}

// hasForeignScript reports whether the text contains letters from a
// non-Arabic alphabet. Digits, punctuation and math symbols are fine.
func hasForeignScript(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Arabic, r) {
			return true
		}
	}
	return false
}

func stripForeignScript(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.Is(unicode.Arabic, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
