package chart

// divergingRedBlue is the 9-stop blue-to-red ramp used for margin and shift
// maps. It is symmetric around the midpoint so a tie renders as the neutral
// center color, and it is always paired with a symmetric z-range so zero sits
// exactly at the middle stop.
var divergingRedBlue = ColorScale{
	{0.000, "#00429d"},
	{0.125, "#4771b2"},
	{0.250, "#73a2c6"},
	{0.375, "#a5d5d8"},
	{0.500, "#ffffe0"},
	{0.625, "#ffbcaf"},
	{0.750, "#f4777f"},
	{0.875, "#cf3759"},
	{1.000, "#93003a"},
}

// sequentialTeal is the ramp for absolute-magnitude metrics such as
// electricity output, anchored at zero.
var sequentialTeal = ColorScale{
	{0.00, "#f7fcf5"},
	{0.25, "#a8ddb5"},
	{0.50, "#4eb3d3"},
	{0.75, "#0868ac"},
	{1.00, "#084081"},
}

// DivergingRedBlue returns the diverging margin scale.
func DivergingRedBlue() ColorScale { return divergingRedBlue }

// SequentialTeal returns the sequential magnitude scale.
func SequentialTeal() ColorScale { return sequentialTeal }

// winnerColors maps winner labels to their categorical point colors.
var winnerColors = map[string]string{
	"Republican": "red",
	"Democratic": "blue",
	"Tie":        "gray",
}

// fuelColors maps generation sources to their fixed colors, shared by the
// mix area chart and the top-producers bars. Unknown sources fall back to
// fuelFallbackColor.
var fuelColors = map[string]string{
	"coal":            "#A0522D",
	"oil":             "#36454F",
	"gas":             "#6B9BD1",
	"hydro":           "#0077BE",
	"solar":           "#FFA500",
	"wind":            "#A8D5E2",
	"biofuel":         "#556B2F",
	"other_renewable": "#20B2AA",
	"nuclear":         "#E91E63",
}

const fuelFallbackColor = "#CCCCCC"

func fuelColor(source string) string {
	if c, ok := fuelColors[source]; ok {
		return c
	}
	return fuelFallbackColor
}
