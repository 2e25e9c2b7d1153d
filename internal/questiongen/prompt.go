package questiongen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vidyayathra/tutor/internal/selector"
)

// Topic category detection. A topic like "circle" must be treated as a
// shape with formulas, not as a technology the model free-associates on.
var (
	geometryPattern    = regexp.MustCompile(`(?i)circle|square|rectangle|triangle|polygon|sphere|cube|cone|cylinder|pyramid`)
	mathPattern        = regexp.MustCompile(`(?i)algebra|calculus|geometry|trigonometry|statistics|probability|equation|function|derivative|integral`)
	programmingPattern = regexp.MustCompile(`(?i)python|java|javascript|c\+\+|typescript|react|node|programming|code|algorithm|data structure`)
)

const (
	// maxAvoidList is how many recent question/answer pairs go into the
	// anti-duplicate prompt section.
	maxAvoidList = 5

	// continuitySnippet bounds how much of the previous question is
	// quoted for continuity.
	continuitySnippet = 100

	// avoidSnippet bounds how much of each avoided question is quoted.
	avoidSnippet = 60
)

// multipleBlanksFormat is the JSON grammar for MultipleBlanksFill
// questions: per-blank option lists with the correct option first.
const multipleBlanksFormat = `For MultipleBlanksFill questions, use this format:
{
  "questionType": "MultipleBlanksFill",
  "difficulty": "%s",
  "question": "Complete the following code:\n#include _____1_____\nusing _____2_____;\nint main() {\n    _____3_____\n}",
  "blanks": [
    {"id": 1, "options": ["<iostream>", "<stdio.h>", "<string>", "<vector>"], "correctAnswer": "<iostream>"},
    {"id": 2, "options": ["namespace std;", "namespace std::cout;", "std;", "namespace;"], "correctAnswer": "namespace std;"},
    {"id": 3, "options": ["return 0;", "return 1;", "exit(0);", "break;"], "correctAnswer": "return 0;"}
  ],
  "expectsConfidence": false
}

RULES for MultipleBlanksFill:
- Use _____1_____, _____2_____, etc. for blanks in the question
- Each blank MUST have 4 options
- First option in each blank's options array is the CORRECT answer
- Include "correctAnswer" field for each blank
- Suited to code completion, formula filling, syntax completion`

// standardFormat is the JSON grammar for every other question type.
const standardFormat = `For standard questions, use this format:
{
  "questionType": "%s",
  "difficulty": "%s",
  "question": "Your question text here",
  "options": ["CORRECT ANSWER (MUST BE FIRST)", "Wrong option 2", "Wrong option 3", "Wrong option 4"],
  "correctAnswer": "CORRECT ANSWER (MUST BE FIRST)",
  "expectsConfidence": true
}

CRITICAL: The "correctAnswer" field MUST contain the EXACT text of the correct option, and that correct option MUST be listed FIRST in the options array.`

// programmingRules is the dashboard's code-rendering contract: code
// lives in fenced markdown blocks inside the question text, never in
// the options.
const programmingRules = "\nPROGRAMMING QUESTIONS:\n" +
	"- For programming topics (Python, Java, C++, JavaScript, etc.), include code using markdown code blocks\n" +
	"- Format: ```language\\ncode\\n```\n" +
	"- Example: ```python\\ndef hello():\\n    print(\"Hello\")\\n```\n" +
	"- Place code blocks in the question text, not in options\n" +
	"- Ask about code behavior, debugging, or concepts\n" +
	"- NEVER use phrases like \"code snippet\" or \"following code\" - just show the code directly\n" +
	"- Example good question: \"What will be the output?\n```python\nx = 10\nprint(x)\n```\"\n"

// mathGeometryRules is the diagram contract for math topics: inline SVG
// with labeled measurements the dashboard renders as-is.
const mathGeometryRules = "\nMATHEMATICAL/GEOMETRY QUESTIONS:\n" +
	"- For math topics (geometry, algebra, calculus), include SVG diagrams with measurements\n" +
	"- For GEOMETRY SHAPES (circle, square, triangle, etc.), ask about:\n" +
	"  * Properties (radius, diameter, area, perimeter, volume, angles)\n" +
	"  * Formulas (area = πr², circumference = 2πr, etc.)\n" +
	"  * Calculations with specific numerical values\n" +
	"  * Real-world applications\n" +
	"- Use SVG format: <svg width=\"600\" height=\"600\" viewBox=\"0 0 600 600\">...</svg>\n" +
	"- Label measurements clearly with large, bold text (font-size=\"28\" font-weight=\"bold\")\n" +
	"- Use high contrast colors (black/white, or colored shapes with dark borders)\n" +
	"- Example circle: <svg width=\"600\" height=\"600\"><circle cx=\"300\" cy=\"300\" r=\"150\" fill=\"lightblue\" stroke=\"black\" stroke-width=\"5\"/><text x=\"300\" y=\"315\" text-anchor=\"middle\" font-size=\"28\" font-weight=\"bold\">r = 5cm</text></svg>\n" +
	"- Include practical calculations with specific numerical values\n" +
	"- NEVER ask about geometric shapes as if they were technologies or solutions\n"

// BuildSystemPrompt assembles the generation system prompt: output
// grammar, formatting rules, topic context, continuity hint, and the
// anti-duplicate avoid list drawn from log.
func BuildSystemPrompt(in GenerateInput, log *RecentLog) string {
	topic := topicOrDefault(in.Topic)

	var b strings.Builder
	b.WriteString("You are generating educational questions. Output ONLY valid JSON.\n\n")

	if in.Type == selector.TypeMultipleBlanksFill {
		fmt.Fprintf(&b, multipleBlanksFormat, in.Difficulty)
	} else {
		fmt.Fprintf(&b, standardFormat, in.Type, in.Difficulty)
	}

	b.WriteString("\n\nCRITICAL Rules:\n")
	b.WriteString("- THE CORRECT ANSWER MUST ALWAYS BE THE FIRST OPTION IN THE OPTIONS ARRAY\n")
	b.WriteString("- The \"correctAnswer\" field must match the first option exactly\n")
	b.WriteString("- ALWAYS provide exactly 4 options for MCQ, MultipleAnswers, Puzzle, ConfidenceBased, EvidenceBased, and CriticalThinking questions\n")
	b.WriteString("- For FillInBlank and Clarification questions, do NOT include options field - learners type their answer\n")
	b.WriteString("- For MultipleAnswers questions, provide exactly 4 options (first 2-3 should be correct answers)\n")
	b.WriteString("- Question must be clear, educational, and UNIQUE\n")
	b.WriteString("- DO NOT embed options in the question text like \"A) option B) option\"\n")
	b.WriteString("- Keep question text separate from options\n")
	fmt.Fprintf(&b, "- Focus DIRECTLY on the topic: %s\n", topic)
	b.WriteString(topicContext(topic))
	b.WriteString(programmingRules)
	b.WriteString(mathGeometryRules)
	b.WriteString(typeGuidance(in.Type))

	if len(in.RAGSignals) > 0 {
		b.WriteString("\nREFERENCE MATERIAL (ground the question in these signals):\n")
		for _, sig := range in.RAGSignals {
			fmt.Fprintf(&b, "- [%s, %s] %s\n", sig.Topic, sig.Difficulty, sig.Snippet)
		}
	}

	b.WriteString("\n- Generate a DIFFERENT question each time - vary the angle, concept, or focus\n")
	b.WriteString("- Output ONLY the JSON, no other text, no markdown code blocks\n")
	b.WriteString("- Make sure the JSON is properly formatted and parseable")

	b.WriteString(continuityContext(log))
	b.WriteString(avoidList(log))

	return b.String()
}

// BuildUserPrompt assembles the per-turn user message.
func BuildUserPrompt(in GenerateInput, log *RecentLog) string {
	topic := topicOrDefault(in.Topic)

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a %s level %s question about %q.\n", in.Difficulty, in.Type, topic)

	if geometryPattern.MatchString(topic) {
		b.WriteString("\nRemember: This is a GEOMETRIC SHAPE. Ask about its mathematical properties, formulas, and calculations. Include an SVG diagram if appropriate.\n")
	}
	if programmingPattern.MatchString(topic) {
		b.WriteString("\nRemember: This is a PROGRAMMING topic. Include code examples if appropriate.\n")
	}

	b.WriteString("\nLEARNING PROGRESSION GUIDELINES:\n")
	if _, ok := log.Last(); ok {
		b.WriteString("- Build naturally on the previous question concept\n")
		b.WriteString("- Progress to the next logical step or related subtopic\n")
		b.WriteString("- Maintain coherent learning flow - do not jump randomly\n")
		b.WriteString("- Either deepen understanding OR move to closely related concepts\n")
	} else {
		b.WriteString("- Start with fundamental concepts\n")
		b.WriteString("- Lay groundwork for progressive learning\n")
	}

	b.WriteString("\nVARIETY REQUIREMENTS:\n")
	b.WriteString("- Use different examples, scenarios, or code snippets than previous questions\n")
	b.WriteString("- Vary the specific angle or aspect being tested\n")
	b.WriteString("- Keep content fresh while maintaining topic continuity\n")

	fmt.Fprintf(&b, "\nThe question should be educational, clear, appropriate for %s level learners.\n", in.Difficulty)
	fmt.Fprintf(&b, "\nCurrent question number: %d.", log.Len()+1)

	return b.String()
}

func topicOrDefault(topic string) string {
	if topic == "" {
		return "general knowledge"
	}
	return topic
}

// topicContext classifies the topic so the model frames it correctly.
// Geometry wins over the broader math match ("geometry" itself matches
// both patterns).
func topicContext(topic string) string {
	switch {
	case geometryPattern.MatchString(topic):
		return fmt.Sprintf("\nTOPIC CONTEXT: %q is a GEOMETRIC SHAPE. Ask about its properties, calculations, formulas, and applications in geometry. DO NOT treat it as a technology or solution.\n", topic)
	case mathPattern.MatchString(topic):
		return fmt.Sprintf("\nTOPIC CONTEXT: %q is a MATHEMATICAL CONCEPT. Ask about mathematical principles, calculations, and problem-solving related to this topic.\n", topic)
	case programmingPattern.MatchString(topic):
		return fmt.Sprintf("\nTOPIC CONTEXT: %q is a PROGRAMMING TOPIC. Ask about code, syntax, best practices, and implementation concepts.\n", topic)
	default:
		return fmt.Sprintf("\nTOPIC CONTEXT: %q is the learning subject. Ask educational questions that help learners understand and master this specific topic.\n", topic)
	}
}

func typeGuidance(t selector.QuestionType) string {
	switch t {
	case selector.TypePuzzle:
		return "\nQUESTION TYPE: Create thought-provoking scenarios requiring logical reasoning.\n"
	case selector.TypeConfidenceBased:
		return "\nQUESTION TYPE: Ask learners to rate their confidence and explain their reasoning.\n"
	case selector.TypeEvidenceBased:
		return "\nQUESTION TYPE: Require learners to cite evidence or examples to support their answer.\n"
	case selector.TypeCriticalThinking:
		return "\nQUESTION TYPE: Challenge assumptions and require deep analysis.\n"
	case selector.TypeClarification:
		return "\nQUESTION TYPE: Ask open-ended questions requiring detailed explanations.\n"
	}
	return ""
}

// continuityContext quotes the previous question so the model builds on
// it instead of jumping topics.
func continuityContext(log *RecentLog) string {
	last, ok := log.Last()
	if !ok {
		return "\n\nThis is the first question - start with foundational concepts."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n\nPREVIOUS QUESTION CONTEXT: The last question was about: %q\n", truncateText(last.Question, continuitySnippet))
	fmt.Fprintf(&b, "The previous answer was: %q\n\n", last.Answer)
	b.WriteString("Build on this naturally - your next question should either:\n")
	b.WriteString("1. Go deeper into the same concept (if it is foundational)\n")
	b.WriteString("2. Progress to a closely related or next logical topic\n")
	b.WriteString("3. Apply the previous concept in a different context\n\n")
	b.WriteString("DO NOT jump to completely unrelated topics. Maintain learning continuity and natural progression.")
	return b.String()
}

// avoidList formats the last few question/answer pairs the model must
// not repeat. Answers matter as much as wording: a repeated answer means
// the same concept retested.
func avoidList(log *RecentLog) string {
	recent := log.Recent(maxAvoidList)
	if len(recent) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n\nDo NOT repeat these recent questions OR test the same concepts with different wording:\n")
	for i, q := range recent {
		fmt.Fprintf(&b, "%d. Q: %q Answer: %q\n", i+1, truncateText(q.Question, avoidSnippet), q.Answer)
	}
	b.WriteString("\nThese answers are ALREADY TESTED - do not ask questions with the same answer again!")
	return b.String()
}

// truncateText cuts at a rune boundary so multibyte question text never
// turns into invalid UTF-8 inside a prompt.
func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
