package cricket

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

// ballOutcome is a classified delivery before labeling. Extras (wides,
// no-balls) do not consume a legal delivery slot.
type ballOutcome struct {
	value   string
	kind    string
	isLegal bool
}

var (
	ballTokenEdgeRe = regexp.MustCompile(`(?i)^[^a-z0-9]+|[^a-z0-9+.\-]+$`)
	firstNumberRe   = regexp.MustCompile(`\d+`)
	allDigitsRe     = regexp.MustCompile(`^\d+$`)
	overWordRe      = regexp.MustCompile(`(?i)^(ov|over)$`)

	wideRe    = regexp.MustCompile(`wide|\bwd\b`)
	noBallRe  = regexp.MustCompile(`no[\s-]*ball|\bnb\b`)
	wicketRe  = regexp.MustCompile(`wicket|out`)
	fourRe    = regexp.MustCompile(`four|boundary`)
	sixRe     = regexp.MustCompile(`six`)
	dotWordRe = regexp.MustCompile(`dot`)
	legByeRe  = regexp.MustCompile(`leg[\s-]*bye|\blb\b`)
	byeRe     = regexp.MustCompile(`\bbye\b`)

	overContextRe = regexp.MustCompile(`^(\d+)(?:\.(\d+))?$`)
)

// normalizeBallToken strips leading punctuation and trailing junk from a
// raw feed token, keeping run-suffix characters like "+" and ".".
func normalizeBallToken(token string) string {
	return strings.TrimSpace(ballTokenEdgeRe.ReplaceAllString(token, ""))
}

// classifyBall maps a raw token to a typed outcome. Priority order is a
// deliberate tie-break: commentary text like "W 1 run" matches both a
// wicket and a digit, and the wicket wins. Never fails; unknown tokens
// come back as kind "other" with the cleaned token echoed.
func classifyBall(rawToken string) ballOutcome {
	normalized := normalizeBallToken(rawToken)
	token := strings.ToLower(normalized)

	if token == "" {
		// A bare dot is a dot ball; the edge-strip removes it entirely.
		if strings.TrimSpace(rawToken) == "." {
			return ballOutcome{value: "0", kind: match.BallDot, isLegal: true}
		}
		return ballOutcome{value: "-", kind: match.BallOther, isLegal: true}
	}

	runValue := firstNumberRe.FindString(token)

	switch {
	case wideRe.MatchString(token):
		value := "Wd"
		if runValue != "" {
			value = "Wd+" + runValue
		}
		return ballOutcome{value: value, kind: match.BallExtra, isLegal: false}
	case noBallRe.MatchString(token):
		value := "Nb"
		if runValue != "" {
			value = "Nb+" + runValue
		}
		return ballOutcome{value: value, kind: match.BallExtra, isLegal: false}
	case token == "w" || wicketRe.MatchString(token):
		return ballOutcome{value: "W", kind: match.BallWicket, isLegal: true}
	case token == "4" || fourRe.MatchString(token):
		return ballOutcome{value: "4", kind: match.BallFour, isLegal: true}
	case token == "6" || sixRe.MatchString(token):
		return ballOutcome{value: "6", kind: match.BallSix, isLegal: true}
	case token == "." || token == "0" || dotWordRe.MatchString(token):
		return ballOutcome{value: "0", kind: match.BallDot, isLegal: true}
	case legByeRe.MatchString(token):
		value := "Lb"
		if runValue != "" {
			value = "Lb" + runValue
		}
		return ballOutcome{value: value, kind: match.BallRun, isLegal: true}
	case byeRe.MatchString(token):
		value := "B"
		if runValue != "" {
			value = "B" + runValue
		}
		return ballOutcome{value: value, kind: match.BallRun, isLegal: true}
	case allDigitsRe.MatchString(token):
		kind := match.BallRun
		if token == "0" {
			kind = match.BallDot
		}
		return ballOutcome{value: token, kind: kind, isLegal: true}
	}

	value := normalized
	if value == "" {
		value = rawToken
	}
	return ballOutcome{value: value, kind: match.BallOther, isLegal: true}
}

// parseOverTokensFromString splits a feed string like
// "Ovr 12: 1 4 W | Ovr 13: 0 2" into ball tokens. Only the last "|"
// segment is read unless allSegments is set; a leading "label:" prefix is
// dropped, as are bare over words. The tail is capped at limit.
func parseOverTokensFromString(value string, limit int, allSegments bool) []string {
	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(value, " "))
	if text == "" {
		return nil
	}

	var segments []string
	for _, part := range strings.Split(text, "|") {
		if part = strings.TrimSpace(part); part != "" {
			segments = append(segments, part)
		}
	}

	source := segments
	if !allSegments {
		if len(segments) > 0 {
			source = segments[len(segments)-1:]
		} else {
			source = []string{text}
		}
	}

	var tokens []string
	for _, segment := range source {
		afterLabel := segment
		if idx := strings.LastIndex(segment, ":"); idx >= 0 {
			afterLabel = strings.TrimSpace(segment[idx+1:])
		}

		for _, part := range strings.Fields(afterLabel) {
			token := normalizeBallToken(part)
			if token == "" || overWordRe.MatchString(token) {
				continue
			}
			tokens = append(tokens, token)
		}
	}

	if len(tokens) > limit {
		tokens = tokens[len(tokens)-limit:]
	}
	return tokens
}

// parseOverTokensFromArray reads ball tokens from a raw array whose
// entries may be scalars or records with several value spellings.
func parseOverTokensFromArray(values []any, limit int) []string {
	var tokens []string

	for _, entry := range values {
		var token string
		switch typed := entry.(type) {
		case string:
			token = normalizeBallToken(typed)
		case float64:
			token = normalizeBallToken(stringify(typed))
		case map[string]any:
			token = normalizeBallToken(getText(typed,
				"value", "result", "ballResult", "event", "eventType", "runs", "runsScored"))
		}
		if token != "" {
			tokens = append(tokens, token)
		}
	}

	if len(tokens) > limit {
		tokens = tokens[len(tokens)-limit:]
	}
	return tokens
}

// parseOverContext reads an "overs.balls" string into the current over
// number (1-based, in progress) and legal balls completed within it.
// overNumber 0 means the context is unknown.
func parseOverContext(oversRaw string) (overNumber, completedBalls int) {
	m := overContextRe.FindStringSubmatch(oversRaw)
	if m == nil {
		return 0, 0
	}

	baseOvers, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0
	}
	balls := 0
	if m[2] != "" {
		balls, err = strconv.Atoi(m[2])
		if err != nil {
			return 0, 0
		}
	}

	carry := balls / 6
	completedBalls = balls % 6
	overNumber = baseOvers + carry
	if completedBalls > 0 {
		overNumber++
	}
	return overNumber, completedBalls
}

// toLabeledBalls assigns "over.ball" labels to a tail window of outcomes
// by walking back from the completed-legal-balls count. Ball positions are
// clamped to 1..6 so a miscounted window cannot produce impossible labels.
func toLabeledBalls(overNumber, completedLegalBalls int, outcomes []ballOutcome) []match.OverBall {
	legalDeliveries := 0
	for _, outcome := range outcomes {
		if outcome.isLegal {
			legalDeliveries++
		}
	}

	startBall := 1
	if completedLegalBalls > 0 && legalDeliveries > 0 {
		if start := completedLegalBalls - legalDeliveries + 1; start > 1 {
			startBall = start
		}
	}

	balls := make([]match.OverBall, 0, len(outcomes))
	currentLegalBall := startBall
	for _, outcome := range outcomes {
		ballInOver := currentLegalBall
		if ballInOver < 1 {
			ballInOver = 1
		}
		if ballInOver > 6 {
			ballInOver = 6
		}

		balls = append(balls, match.OverBall{
			Label: strconv.Itoa(overNumber) + "." + strconv.Itoa(ballInOver),
			Value: outcome.value,
			Kind:  outcome.kind,
		})

		if outcome.isLegal {
			currentLegalBall++
		}
	}
	return balls
}

// toCurrentOverBalls classifies and labels the current-over token window.
// Without a usable over context, or with more tokens than one over can
// hold, it degrades to anonymous "Ball N" labels instead of guessing.
func toCurrentOverBalls(tokens []string, oversRaw string) []match.OverBall {
	if len(tokens) == 0 {
		return nil
	}

	overNumber, completedBalls := parseOverContext(oversRaw)
	outcomes := make([]ballOutcome, len(tokens))
	for i, token := range tokens {
		outcomes[i] = classifyBall(token)
	}

	if overNumber == 0 || len(tokens) > 10 {
		balls := make([]match.OverBall, len(outcomes))
		for i, outcome := range outcomes {
			balls[i] = match.OverBall{
				Label: "Ball " + strconv.Itoa(i+1),
				Value: outcome.value,
				Kind:  outcome.kind,
			}
		}
		return balls
	}

	return toLabeledBalls(overNumber, completedBalls, outcomes)
}

// toRecentBalls labels a recent-balls token window anonymously, capped at
// the last 10.
func toRecentBalls(tokens []string) []match.OverBall {
	if len(tokens) > 10 {
		tokens = tokens[len(tokens)-10:]
	}

	balls := make([]match.OverBall, len(tokens))
	for i, token := range tokens {
		outcome := classifyBall(token)
		balls[i] = match.OverBall{
			Label: "Ball " + strconv.Itoa(i+1),
			Value: outcome.value,
			Kind:  outcome.kind,
		}
	}
	return balls
}

// formatRecentBallsLabel names the recent-balls window for display.
func formatRecentBallsLabel(ballsCount int) string {
	switch {
	case ballsCount >= 10:
		return "Last 10 balls"
	case ballsCount > 0:
		return "Last " + strconv.Itoa(ballsCount) + " balls"
	default:
		return "Current over"
	}
}
