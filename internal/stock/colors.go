package stock

import "strings"

// Colors is the style token bundle a UI renders a status badge with
type Colors struct {
	BG     string `json:"bg"`
	Text   string `json:"text"`
	Border string `json:"border"`
	Hover  string `json:"hover"`
}

var (
	lowColors = Colors{
		BG:     "bg-red-100",
		Text:   "text-red-800",
		Border: "border-red-200",
		Hover:  "hover:bg-red-200",
	}
	moderateColors = Colors{
		BG:     "bg-yellow-100",
		Text:   "text-yellow-800",
		Border: "border-yellow-200",
		Hover:  "hover:bg-yellow-200",
	}
	highColors = Colors{
		BG:     "bg-green-100",
		Text:   "text-green-800",
		Border: "border-green-200",
		Hover:  "hover:bg-green-200",
	}
	fallbackColors = Colors{
		BG:     "bg-gray-100",
		Text:   "text-gray-800",
		Border: "border-gray-200",
		Hover:  "hover:bg-gray-200",
	}
)

// StatusColors looks up the badge colors for a status name, matched
// case-insensitively. Unrecognized names get a neutral gray bundle.
func StatusColors(status string) Colors {
	switch strings.ToLower(status) {
	case "low":
		return lowColors
	case "moderate":
		return moderateColors
	case "high":
		return highColors
	default:
		return fallbackColors
	}
}

// Colors returns the badge colors for s
func (s Status) Colors() Colors {
	return StatusColors(string(s))
}
