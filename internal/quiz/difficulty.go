package quiz

// StartingDifficulty maps a knowledge level to the session's first
// difficulty band.
func StartingDifficulty(level KnowledgeLevel) Difficulty {
	switch level {
	case LevelBeginner:
		return DifficultyEasy
	case LevelAdvanced:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// NextDifficulty computes the advisory difficulty hint shown to the
// learner before the next question arrives. A correct answer escalates
// one band, a wrong answer de-escalates one band, clamped at the ends.
//
// The hint is display-only. The payload sent to the backend carries the
// full history instead, leaving actual difficulty selection to the
// server.
func NextDifficulty(level KnowledgeLevel, history []HistoryTurn) Difficulty {
	if len(history) == 0 {
		return StartingDifficulty(level)
	}

	last := history[len(history)-1]
	if last.WasCorrect {
		switch last.Difficulty {
		case DifficultyEasy:
			return DifficultyMedium
		default:
			return DifficultyHard
		}
	}
	switch last.Difficulty {
	case DifficultyHard:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}
