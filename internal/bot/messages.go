package bot

import (
	"fmt"
	"strings"

	"github.com/mudarris/backend/internal/bank"
	"github.com/mudarris/backend/internal/models"
	"github.com/mudarris/backend/internal/progress"
	"github.com/mudarris/backend/internal/quiz"
)

// All user-visible text lives here. Internal errors are never echoed to
// the user; failures map to the fixed strings below.
const (
	msgServiceUnavailable = "عذرًا، الخدمة غير متوفرة حاليًا. حاول مرة أخرى لاحقًا 🙏"
	msgChooseTrackFirst   = "الرجاء اختيار الشعبة أولًا بإرسال اسمها."
	msgCorrect            = "إجابة صحيحة ✅"
	msgIncorrect          = "إجابة خاطئة ❌"
	msgLeaderboardEmpty   = "لا توجد نتائج بعد. كن أول المتصدرين! 🎯"
)

func formatTrackSelected(track string) string {
	return fmt.Sprintf("تم اختيار شعبة %s بنجاح ✅\nأرسل \"%s\" لبدء اختبار جديد.", track, KeywordStartQuiz)
}

func formatQuestion(index int, q bank.Question) string {
	return fmt.Sprintf("السؤال %d/%d:\n%s", index+1, quiz.QuestionsPerSession, q.Prompt)
}

func formatSummary(score, award int) string {
	return fmt.Sprintf("انتهى الاختبار! 🏁\nنتيجتك: %d/%d\nالخبرة المكتسبة: %d ⭐", score, quiz.QuestionsPerSession, award)
}

func formatProfile(p *models.UserProgress) string {
	track := ""
	if p.Track != nil {
		track = *p.Track
	}
	return fmt.Sprintf(
		"📊 ملفك الدراسي\nالشعبة: %s\nالمستوى: %s\nالخبرة: %d ⭐\nالاختبارات المكتملة: %d\nنسبة الإجابات الصحيحة: %.0f%%",
		track,
		progress.Tier(p.Experience),
		p.Experience,
		p.QuizzesCompleted,
		progress.Accuracy(p.CorrectAnswers, p.QuizzesCompleted),
	)
}

func formatLeaderboard(entries []models.LeaderboardEntry) string {
	if len(entries) == 0 {
		return msgLeaderboardEmpty
	}

	var b strings.Builder
	b.WriteString("🏆 ترتيب الطلاب\n")
	for _, e := range entries {
		medal := "🔸"
		switch e.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		fmt.Fprintf(&b, "%s %d. طالب %d — %d ⭐ (%s)\n", medal, e.Rank, e.UserID, e.Experience, e.Track)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatHelp(tracks []string) string {
	var b strings.Builder
	b.WriteString("🤖 أهلًا بك! أنا مدرسك المساعد.\n\n")
	b.WriteString("اختر شعبتك بإرسال اسمها:\n")
	for _, t := range tracks {
		fmt.Fprintf(&b, "• %s\n", t)
	}
	fmt.Fprintf(&b, "\nالأوامر:\n• %s — بدء اختبار من خمسة أسئلة\n• %s — عرض مستواك\n• %s — ترتيب الطلاب\n\nأو أرسل أي سؤال دراسي وسأجيبك.", KeywordStartQuiz, KeywordProfile, KeywordLeaderboard)
	return b.String()
}
