package learner

import (
	"strings"
	"time"
)

// Evaluation is the outcome of scoring a free-text answer.
type Evaluation struct {
	// Understanding estimates how well the answer demonstrates grasp of
	// the material, in [0, 1].
	Understanding float64

	// Depth estimates analytical depth, in [0, 1].
	Depth float64

	// HasEvidence is true when the answer cites evidence or examples.
	HasEvidence bool

	// HasMisconceptions is true when the answer contains absolute claims
	// that suggest overgeneralization.
	HasMisconceptions bool

	KeyInsights []string
	WeakAreas   []string
}

// Passed reports whether the answer clears the understanding gate.
func (e Evaluation) Passed() bool {
	return e.Understanding > understandingPass
}

// Evaluator scores a learner's free-text answer. It is a pluggable
// strategy so the lexical heuristics can be swapped for a model-backed
// scorer without touching the profile state machine.
type Evaluator interface {
	Evaluate(question, answer string, reportedConfidence float64) Evaluation
}

// LexicalEvaluator scores answers with keyword and length heuristics.
// It needs no external calls and is deterministic.
type LexicalEvaluator struct{}

var shallowIndicators = []string{
	"i think", "maybe", "not sure", "i guess", "probably",
	"i dont know", "i don't know", "no idea", "idk",
}

var depthIndicators = []string{
	"because", "therefore", "however", "although", "specifically",
	"for example", "such as", "this means", "in other words",
	"relationship", "connection", "impact", "consequence", "trade-off",
}

var evidenceIndicators = []string{
	"data shows", "research", "study", "experiment", "example",
	"case", "demonstrated", "proven", "observed", "measured",
}

var misconceptionIndicators = []string{
	"always", "never", "impossible", "definitely", "absolutely",
	"must be", "has to", "only way",
}

func (LexicalEvaluator) Evaluate(question, answer string, reportedConfidence float64) Evaluation {
	lower := strings.ToLower(answer)
	wordCount := len(strings.Fields(strings.TrimSpace(answer)))

	hasShallow := containsAny(lower, shallowIndicators)
	depthScore := countMatches(lower, depthIndicators)
	hasEvidence := containsAny(lower, evidenceIndicators)
	hasMisconceptions := containsAny(lower, misconceptionIndicators)

	// Length buckets set the base understanding; depth words nudge it up.
	var understanding float64
	switch {
	case wordCount < 10:
		understanding = 0.2
	case wordCount < 30:
		understanding = 0.4 + float64(depthScore)*0.1
	case wordCount < 60:
		understanding = 0.6 + float64(depthScore)*0.1
	default:
		understanding = 0.8 + float64(depthScore)*0.05
	}

	if hasShallow {
		understanding *= 0.6
	}
	if hasEvidence {
		understanding += 0.15
	}
	understanding = clampConfidence(understanding)

	depth := float64(depthScore)/3 + float64(wordCount)/200
	if depth > 1 {
		depth = 1
	}

	var insights []string
	if depthScore > 2 {
		insights = append(insights, "Shows analytical thinking")
	}
	if hasEvidence {
		insights = append(insights, "Provides evidence")
	}
	if wordCount > 50 {
		insights = append(insights, "Detailed response")
	}

	var weak []string
	if wordCount < 15 {
		weak = append(weak, "Brief responses")
	}
	if hasShallow {
		weak = append(weak, "Lacks confidence")
	}
	if depthScore == 0 {
		weak = append(weak, "Surface-level thinking")
	}

	return Evaluation{
		Understanding:     understanding,
		Depth:             depth,
		HasEvidence:       hasEvidence,
		HasMisconceptions: hasMisconceptions,
		KeyInsights:       insights,
		WeakAreas:         weak,
	}
}

// Promotion and demotion gates for the evaluation path.
const (
	promoteStreak         = 5
	promoteConfidence     = 0.7
	promoteToAdvancedConf = 0.8
	demoteStreak          = 4
	demoteConfidence      = 0.4
	understandingPass     = 0.6
	weakTopicAddBelow     = 0.5
	weakTopicClearAbove   = 0.7
)

// ApplyEvaluation folds a scored answer into the profile: confidence blend,
// streak update, misconception log, weak-topic set, and level transitions.
// reportedConfidence is the learner's self-assessment in [0, 1]. The level
// moves at most one band per call and streak counters reset on a
// transition. Mutates p in place.
func ApplyEvaluation(p *Profile, ev Evaluation, reportedConfidence float64, now time.Time) {
	// Blend confidence. A large gap between self-report and measured
	// understanding means the learner is miscalibrated; weight the
	// self-report down to zero in that case.
	gap := reportedConfidence - ev.Understanding
	if gap < 0 {
		gap = -gap
	}
	if gap > 0.3 {
		p.Confidence = p.Confidence*0.7 + ev.Understanding*0.3
	} else {
		p.Confidence = p.Confidence*0.5 + ev.Understanding*0.3 + reportedConfidence*0.2
	}
	p.Confidence = clampConfidence(p.Confidence)

	if ev.Passed() {
		p.markCorrect()
	} else {
		p.markIncorrect()
	}

	if ev.HasMisconceptions {
		p.Misconceptions = append(p.Misconceptions, Misconception{
			Topic:     topicOrGeneral(p.LastTopic),
			Pattern:   "Overgeneralization detected",
			Timestamp: now,
		})
	}

	if p.LastTopic != "" {
		if ev.Understanding < weakTopicAddBelow {
			p.addWeakTopic(p.LastTopic)
		} else if ev.Understanding > weakTopicClearAbove {
			p.removeWeakTopic(p.LastTopic)
		}
	}

	// Promotion: sustained correct streak with solid confidence.
	// Reaching Advanced demands a higher confidence bar.
	if p.Streak.Correct >= promoteStreak && p.Confidence > promoteConfidence {
		switch p.Level {
		case LevelBeginner:
			p.Level = LevelIntermediate
			p.Streak.Correct = 0
		case LevelIntermediate:
			if p.Confidence > promoteToAdvancedConf {
				p.Level = LevelAdvanced
				p.Streak.Correct = 0
			}
		}
	}

	// Demotion: sustained incorrect streak with low confidence.
	if p.Streak.Incorrect >= demoteStreak && p.Confidence < demoteConfidence {
		if p.Level != LevelBeginner {
			p.Level = p.Level.Demote()
			p.Streak.Incorrect = 0
		}
	}
}

func topicOrGeneral(topic string) string {
	if topic == "" {
		return "general"
	}
	return topic
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func countMatches(s string, subs []string) int {
	n := 0
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			n++
		}
	}
	return n
}
