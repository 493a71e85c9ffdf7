package bot

// CommandKind tags the interpretation of an inbound message, resolved once
// before routing.
type CommandKind int

const (
	// CmdText is free text: a quiz answer when a session is active,
	// otherwise a question for the tutor.
	CmdText CommandKind = iota
	CmdSelectTrack
	CmdStartQuiz
	CmdProfile
	CmdLeaderboard
	CmdHelp
)

// Fixed Arabic command keywords, compared verbatim against the trimmed
// message text.
const (
	KeywordStartQuiz   = "اختبار"
	KeywordProfile     = "مستواي"
	KeywordLeaderboard = "الترتيب"
	KeywordHelp        = "مساعدة"
)

type Command struct {
	Kind  CommandKind
	Track string
	Text  string
}

// ParseCommand classifies a message. Track labels are selection keywords;
// everything unrecognized stays free text.
func ParseCommand(text string, tracks []string) Command {
	switch text {
	case KeywordStartQuiz:
		return Command{Kind: CmdStartQuiz}
	case KeywordProfile:
		return Command{Kind: CmdProfile}
	case KeywordLeaderboard:
		return Command{Kind: CmdLeaderboard}
	case KeywordHelp, "/start", "/help":
		return Command{Kind: CmdHelp}
	}

	for _, track := range tracks {
		if text == track {
			return Command{Kind: CmdSelectTrack, Track: track}
		}
	}

	return Command{Kind: CmdText, Text: text}
}
