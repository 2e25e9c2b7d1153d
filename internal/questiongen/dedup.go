package questiongen

import "strings"

// maxRecentQuestions bounds the per-learner duplicate-guard log.
const maxRecentQuestions = 20

// RecentQuestion is one logged question/answer pair.
type RecentQuestion struct {
	Question string
	Answer   string
}

// RecentLog is a bounded FIFO of recently served questions used for
// duplicate detection and prompt continuity. The zero value is ready to
// use. Not safe for concurrent use; the session registry serializes
// access.
type RecentLog struct {
	entries []RecentQuestion
}

// Add appends a question/answer pair, evicting the oldest entry past
// the bound.
func (l *RecentLog) Add(question, answer string) {
	l.entries = append(l.entries, RecentQuestion{Question: question, Answer: answer})
	if len(l.entries) > maxRecentQuestions {
		l.entries = l.entries[len(l.entries)-maxRecentQuestions:]
	}
}

// Len returns the number of retained entries.
func (l *RecentLog) Len() int {
	return len(l.entries)
}

// Last returns the most recent entry, if any.
func (l *RecentLog) Last() (RecentQuestion, bool) {
	if len(l.entries) == 0 {
		return RecentQuestion{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Recent returns the last n entries, oldest first.
func (l *RecentLog) Recent(n int) []RecentQuestion {
	if n > len(l.entries) {
		n = len(l.entries)
	}
	return l.entries[len(l.entries)-n:]
}

// IsDuplicate reports whether question or answer matches a logged entry.
// A repeated answer means the same concept is being retested even when
// the wording differs, so either match counts. Comparison is trimmed and
// case-insensitive.
func (l *RecentLog) IsDuplicate(question, answer string) bool {
	q := normalize(question)
	a := normalize(answer)
	for _, e := range l.entries {
		if normalize(e.Question) == q {
			return true
		}
		if a != "" && normalize(e.Answer) == a {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
