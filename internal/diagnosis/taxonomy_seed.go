package diagnosis

// seedMisconceptions is the built-in taxonomy. IDs are stable and stored
// in learner profiles, so entries may be added but not renamed.
var seedMisconceptions = []Misconception{
	// Geometry
	{
		ID:          "geo-area-perimeter-swap",
		Category:    CategoryGeometry,
		Label:       "Area/perimeter confusion",
		Description: "Treats area and perimeter as interchangeable, applying the formula for one when asked about the other.",
		Examples:    []string{"Answers 4*side when asked for the area of a square."},
	},
	{
		ID:          "geo-angle-sum-fixed",
		Category:    CategoryGeometry,
		Label:       "Universal angle sum",
		Description: "Assumes every polygon's interior angles sum to 180 degrees, generalizing the triangle rule.",
		Examples:    []string{"States a quadrilateral's angles sum to 180."},
	},
	{
		ID:          "geo-scale-area-linear",
		Category:    CategoryGeometry,
		Label:       "Linear scaling of area",
		Description: "Believes doubling a shape's side lengths doubles its area rather than quadrupling it.",
		Examples:    []string{"A square with doubled sides has double the area."},
	},

	// Math
	{
		ID:          "math-bigger-denominator",
		Category:    CategoryMath,
		Label:       "Bigger denominator, bigger fraction",
		Description: "Ranks fractions by denominator size, concluding 1/8 is larger than 1/4.",
		Examples:    []string{"Orders 1/8 > 1/4 because 8 > 4."},
	},
	{
		ID:          "math-multiply-makes-bigger",
		Category:    CategoryMath,
		Label:       "Multiplication always increases",
		Description: "Expects multiplication to always produce a larger result, which fails for factors below one.",
		Examples:    []string{"Claims 10 * 0.5 must be greater than 10."},
	},
	{
		ID:          "math-equals-means-compute",
		Category:    CategoryMath,
		Label:       "Equals sign as 'do it'",
		Description: "Reads the equals sign as an instruction to compute rather than a statement of balance.",
		Examples:    []string{"Fills 5 + 3 = _ + 2 with 8."},
	},

	// Programming
	{
		ID:          "prog-assignment-equality",
		Category:    CategoryProgramming,
		Label:       "Assignment as equality",
		Description: "Treats assignment as a symmetric mathematical equation rather than a directed store operation.",
		Examples:    []string{"Expects x = x + 1 to be unsolvable."},
	},
	{
		ID:          "prog-off-by-one",
		Category:    CategoryProgramming,
		Label:       "Off-by-one boundaries",
		Description: "Miscounts loop iterations or index ranges by one, usually at an inclusive/exclusive boundary.",
		Examples:    []string{"Says a loop from 0 to n runs n+1 times when the bound is exclusive."},
	},
	{
		ID:          "prog-reference-copy",
		Category:    CategoryProgramming,
		Label:       "Reference vs. copy",
		Description: "Assumes assigning a collection to a new variable copies its contents rather than aliasing them.",
		Examples:    []string{"Surprised that mutating b changes a after b = a."},
	},

	// General reasoning
	{
		ID:          "gen-overgeneralization",
		Category:    CategoryGeneral,
		Label:       "Overgeneralization",
		Description: "Extends a rule that holds in familiar cases to all cases, stated with absolutes like always or never.",
		Examples:    []string{"All metals are magnetic."},
	},
	{
		ID:          "gen-correlation-causation",
		Category:    CategoryGeneral,
		Label:       "Correlation as causation",
		Description: "Concludes that one of two associated phenomena must cause the other.",
		Examples:    []string{"Ice cream sales cause drowning because both rise in summer."},
	},
	{
		ID:          "gen-surface-match",
		Category:    CategoryGeneral,
		Label:       "Surface-feature matching",
		Description: "Answers from superficial resemblance to a known example instead of the underlying principle.",
		Examples:    []string{"Applies the formula from a similar-looking worked example regardless of fit."},
	},
}
