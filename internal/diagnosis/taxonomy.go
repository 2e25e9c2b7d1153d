package diagnosis

import "regexp"

// Category groups misconceptions by subject area. Topics are mapped onto
// categories with the same keyword patterns the question generator uses,
// so a topic that generates geometry questions also diagnoses against
// geometry misconceptions.
type Category string

const (
	CategoryGeometry    Category = "geometry"
	CategoryMath        Category = "math"
	CategoryProgramming Category = "programming"
	CategoryGeneral     Category = "general"
)

var (
	geometryTopics    = regexp.MustCompile(`(?i)circle|square|rectangle|triangle|polygon|sphere|cube|cone|cylinder|pyramid`)
	mathTopics        = regexp.MustCompile(`(?i)algebra|calculus|geometry|trigonometry|statistics|probability|equation|function|derivative|integral`)
	programmingTopics = regexp.MustCompile(`(?i)python|java|javascript|c\+\+|typescript|react|node|programming|code|algorithm|data structure`)
)

// CategoryFor maps a free-text topic onto a misconception category.
func CategoryFor(topic string) Category {
	switch {
	case geometryTopics.MatchString(topic):
		return CategoryGeometry
	case mathTopics.MatchString(topic):
		return CategoryMath
	case programmingTopics.MatchString(topic):
		return CategoryProgramming
	default:
		return CategoryGeneral
	}
}

// Misconception defines a known misconception pattern.
type Misconception struct {
	ID          string
	Category    Category
	Label       string
	Description string
	Examples    []string
}

// registry is the package-level misconception registry, keyed by ID.
var registry map[string]*Misconception

// byCategory indexes misconceptions by category.
var byCategory map[Category][]*Misconception

func init() {
	registry = make(map[string]*Misconception, len(seedMisconceptions))
	byCategory = make(map[Category][]*Misconception)
	for i := range seedMisconceptions {
		m := &seedMisconceptions[i]
		registry[m.ID] = m
		byCategory[m.Category] = append(byCategory[m.Category], m)
	}
}

// GetMisconception returns a misconception by ID, or nil if not found.
func GetMisconception(id string) *Misconception {
	return registry[id]
}

// MisconceptionsByCategory returns the candidates for a category. General
// misconceptions apply to every category, so they are always included.
func MisconceptionsByCategory(cat Category) []*Misconception {
	if cat == CategoryGeneral {
		return byCategory[CategoryGeneral]
	}
	out := make([]*Misconception, 0, len(byCategory[cat])+len(byCategory[CategoryGeneral]))
	out = append(out, byCategory[cat]...)
	out = append(out, byCategory[CategoryGeneral]...)
	return out
}

// AllMisconceptions returns every misconception in the taxonomy.
func AllMisconceptions() []*Misconception {
	result := make([]*Misconception, 0, len(registry))
	for _, m := range registry {
		result = append(result, m)
	}
	return result
}
