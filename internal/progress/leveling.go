package progress

// BonusTable maps a final score to the extra experience awarded on top of
// the base. One historical deployment ran without bonuses; passing an empty
// table reproduces that policy.
type BonusTable map[int]int

// DefaultBonus rewards near-perfect and perfect quizzes.
var DefaultBonus = BonusTable{
	5: 20,
	4: 10,
}

// Award returns the experience earned for completing a quiz with the given
// score out of five: ten points per correct answer plus the bonus.
func Award(score int, bonus BonusTable) int {
	return score*10 + bonus[score]
}

// Tier names the proficiency bracket for a cumulative experience total.
func Tier(experience int64) string {
	switch {
	case experience < 50:
		return "مبتدئ"
	case experience < 150:
		return "متوسط"
	case experience < 300:
		return "متقدم"
	case experience < 600:
		return "محترف"
	default:
		return "خبير"
	}
}

// Accuracy is the share of correct answers across all completed quizzes,
// as a percentage. Zero quizzes means zero, not a division by zero.
func Accuracy(correctAnswers, quizzesCompleted int) float64 {
	if quizzesCompleted == 0 {
		return 0
	}
	return float64(correctAnswers) / float64(quizzesCompleted*5) * 100
}
