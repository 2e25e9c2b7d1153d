package learner

import "strings"

// initialMessagePhrases mark a session-opening message (topic statement)
// rather than an answer or a next-question request.
var initialMessagePhrases = []string{
	"i want to learn",
	"teach me",
}

// IsInitialMessage reports whether the learner's message opens a session
// (states a topic) rather than answering or requesting the next question.
// Very short messages are treated as session openers too.
func IsInitialMessage(message string) bool {
	lower := strings.ToLower(message)
	for _, phrase := range initialMessagePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return len(message) < 10
}

// ApplyTurn folds a turn into the profile. It mutates p in place.
//
// Initial messages only set the active topic; streaks and confidence are
// untouched. Any other message counts one question served: the correct
// streak doubles as a progression counter because the dashboard grades
// answers locally against the returned correct answer and does not report
// the verdict back. Correctness-aware updates go through ApplyEvaluation.
func ApplyTurn(p *Profile, message, topic string) {
	if topic != "" {
		p.LastTopic = topic
	}

	if IsInitialMessage(message) {
		return
	}

	p.markCorrect()
}
