package cricket

import (
	"regexp"
	"strconv"
	"strings"
)

var ballDigitsRe = regexp.MustCompile(`^\d+`)

// normalizeOvers canonicalizes the "overs.balls" convention, where the
// fractional part counts balls and may exceed 5 in raw feeds ("12.8" means
// 12 overs and 8 balls, i.e. "13.2"). Non-numeric input passes through
// untouched and empty input stays empty.
func normalizeOvers(value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, ".") {
		return raw
	}

	overPart, ballPart, _ := strings.Cut(raw, ".")
	overs, overErr := strconv.Atoi(overPart)
	ballDigits := ballDigitsRe.FindString(ballPart)
	balls, ballErr := strconv.Atoi(ballDigits)
	if overErr != nil || ballErr != nil {
		return raw
	}

	adjusted := overs + balls/6
	remainder := balls % 6
	if remainder == 0 {
		return strconv.Itoa(adjusted)
	}
	return strconv.Itoa(adjusted) + "." + strconv.Itoa(remainder)
}

// oversLabel renders "12.3 Overs", or "-" when overs are unknown.
func oversLabel(value string) string {
	normalized := normalizeOvers(value)
	if normalized == "" {
		return "-"
	}
	return normalized + " Overs"
}

// oversToDecimal converts normalized overs to a fractional over count
// (overs + balls/6) for rate arithmetic.
func oversToDecimal(value string) (float64, bool) {
	normalized := normalizeOvers(value)
	if normalized == "" {
		return 0, false
	}

	overPart, ballPart, _ := strings.Cut(normalized, ".")
	overs, err := strconv.Atoi(overPart)
	if err != nil {
		return 0, false
	}
	balls := 0
	if ballPart != "" {
		balls, err = strconv.Atoi(ballPart)
		if err != nil {
			return 0, false
		}
	}

	return float64(overs) + float64(balls)/6, true
}

// runRate derives runs per over as a two-decimal string, "-" when either
// side is unknown or no over has been bowled.
func runRate(runsValue, oversValue string) string {
	runs, err := strconv.ParseFloat(strings.TrimSpace(runsValue), 64)
	if err != nil {
		return "-"
	}
	overs, ok := oversToDecimal(oversValue)
	if !ok || overs <= 0 {
		return "-"
	}
	return strconv.FormatFloat(runs/overs, 'f', 2, 64)
}
