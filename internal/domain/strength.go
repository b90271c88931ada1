package domain

import "unicode/utf8"

// MaxStrengthScore is the highest score Score can return.
const MaxStrengthScore = 5

// Strength pairs a score with its display label and color.
type Strength struct {
	Score int
	Label string
	Color string
}

// Display colors, as hex RGB.
const (
	ColorRed    = "#ff4444"
	ColorOrange = "#ffaa00"
	ColorYellow = "#ffff00"
	ColorGreen  = "#00ff00"
)

// strengthLevels is indexed by score-1. Score 0 falls back to the first row,
// the same as score 1.
var strengthLevels = []Strength{
	{Score: 1, Label: "weak", Color: ColorRed},
	{Score: 2, Label: "normal", Color: ColorOrange},
	{Score: 3, Label: "strong", Color: ColorYellow},
	{Score: 4, Label: "very strong", Color: ColorGreen},
	{Score: 5, Label: "strongest", Color: ColorGreen},
}

// Score awards one point each for: at least 8 characters, a lowercase
// letter, an uppercase letter, a digit, and a character outside [A-Za-z0-9].
func Score(password string) int {
	score := 0
	if utf8.RuneCountInString(password) >= MinPasswordLength {
		score++
	}
	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	for _, hit := range []bool{lower, upper, digit, other} {
		if hit {
			score++
		}
	}
	return score
}

// StrengthFor maps a score to its label and color.
func StrengthFor(score int) Strength {
	idx := score - 1
	if idx < 0 || idx >= len(strengthLevels) {
		level := strengthLevels[0]
		level.Score = score
		return level
	}
	return strengthLevels[idx]
}

// Evaluate scores a password and looks up its label.
func Evaluate(password string) Strength {
	return StrengthFor(Score(password))
}
