package cricket

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

// commentaryBall is one positioned delivery recovered from a commentary
// line. index preserves source order as the final sort tie-break, since
// upstream reposts revised lines with the same (over, ball).
type commentaryBall struct {
	over    int
	rawBall int
	outcome ballOutcome
	index   int
}

// parseOverBall reads a line's position, trying direct integer fields
// first, then splitting a "12.3"-style overValue. Lines that yield
// neither are dropped, never estimated.
func parseOverBall(line map[string]any) (over, ball int, ok bool) {
	overValue := getText(line, "overNumber", "overNum", "o_no")
	ballValue := getText(line, "ballNbr", "ballNumber", "ball")

	directOver, overOK := parseLeadingInt(overValue)
	directBall, ballOK := parseLeadingInt(ballValue)
	if overOK && ballOK {
		return directOver, directBall, true
	}

	if !strings.Contains(overValue, ".") {
		return 0, 0, false
	}

	overPart, ballPart, _ := strings.Cut(overValue, ".")
	parsedOver, err := strconv.Atoi(overPart)
	if err != nil {
		return 0, 0, false
	}
	parsedBall, err := strconv.Atoi(ballPart)
	if err != nil {
		return 0, 0, false
	}

	return parsedOver, parsedBall, true
}

// parseLeadingInt mimics lenient integer parsing of feed values: leading
// digits count, trailing junk is ignored.
func parseLeadingInt(value string) (int, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	sign := 1
	if value[0] == '-' || value[0] == '+' {
		if value[0] == '-' {
			sign = -1
		}
		value = value[1:]
	}

	digits := ballDigitsRe.FindString(value)
	if digits == "" {
		return 0, false
	}
	parsed, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return sign * parsed, true
}

// deriveCommentaryOutcome classifies a line from its event/commentary text
// plus the explicit runs field, in the same priority order as the token
// classifier, falling through to it for anything unrecognized.
func deriveCommentaryOutcome(line map[string]any) ballOutcome {
	text := getText(line, "eventType", "event", "commText", "comm", "commentary")
	lower := strings.ToLower(text)
	runs, hasRuns := parseLeadingInt(getText(line, "runsScored", "runs"))

	switch {
	case wideRe.MatchString(lower):
		value := "Wd"
		if hasRuns {
			value = "Wd+" + strconv.Itoa(runs)
		}
		return ballOutcome{value: value, kind: match.BallExtra, isLegal: false}
	case noBallRe.MatchString(lower):
		value := "Nb"
		if hasRuns {
			value = "Nb+" + strconv.Itoa(runs)
		}
		return ballOutcome{value: value, kind: match.BallExtra, isLegal: false}
	case wicketRe.MatchString(lower):
		return ballOutcome{value: "W", kind: match.BallWicket, isLegal: true}
	case sixRe.MatchString(lower):
		return ballOutcome{value: "6", kind: match.BallSix, isLegal: true}
	case fourRe.MatchString(lower):
		return ballOutcome{value: "4", kind: match.BallFour, isLegal: true}
	case hasRuns:
		if runs == 0 {
			return ballOutcome{value: "0", kind: match.BallDot, isLegal: true}
		}
		return ballOutcome{value: strconv.Itoa(runs), kind: match.BallRun, isLegal: true}
	}

	if text == "" {
		text = "-"
	}
	return classifyBall(text)
}

// parseCommentaryList picks the raw line list from a payload, preferring
// commentaryList (array or numeric-keyed map) over comm_lines when it is
// at least as long.
func parseCommentaryList(payload map[string]any) []map[string]any {
	var fromList []any
	switch typed := payload["commentaryList"].(type) {
	case []any:
		fromList = typed
	case map[string]any:
		// Numeric-keyed map variant; keys order the lines.
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Slice(keys, func(i, j int) bool {
			left, leftErr := strconv.Atoi(keys[i])
			right, rightErr := strconv.Atoi(keys[j])
			if leftErr == nil && rightErr == nil {
				return left < right
			}
			return keys[i] < keys[j]
		})
		for _, key := range keys {
			fromList = append(fromList, typed[key])
		}
	}

	fromCommLines := getSlice(payload, "comm_lines")

	preferred := fromList
	if len(fromCommLines) > len(fromList) {
		preferred = fromCommLines
	}

	lines := make([]map[string]any, 0, len(preferred))
	for _, entry := range preferred {
		if line := asMap(entry); line != nil {
			lines = append(lines, line)
		}
	}
	return lines
}

func parseCommentaryBalls(lines []map[string]any) []commentaryBall {
	var parsed []commentaryBall
	for index, line := range lines {
		over, ball, ok := parseOverBall(line)
		if !ok {
			continue
		}
		parsed = append(parsed, commentaryBall{
			over:    over,
			rawBall: ball,
			outcome: deriveCommentaryOutcome(line),
			index:   index,
		})
	}
	return parsed
}

func sortCommentaryBalls(balls []commentaryBall) {
	sort.SliceStable(balls, func(i, j int) bool {
		if balls[i].over != balls[j].over {
			return balls[i].over < balls[j].over
		}
		if balls[i].rawBall != balls[j].rawBall {
			return balls[i].rawBall < balls[j].rawBall
		}
		return balls[i].index < balls[j].index
	})
}

// currentOverFromCommentary keeps only the maximum over present and
// relabels it against the live over context when the two agree.
func currentOverFromCommentary(balls []commentaryBall, oversRaw string) []match.OverBall {
	if len(balls) == 0 {
		return nil
	}

	latestOver := balls[0].over
	for _, entry := range balls {
		if entry.over > latestOver {
			latestOver = entry.over
		}
	}

	var inOver []commentaryBall
	for _, entry := range balls {
		if entry.over == latestOver {
			inOver = append(inOver, entry)
		}
	}
	sortCommentaryBalls(inOver)

	overNumber, completedBalls := parseOverContext(strings.TrimSpace(oversRaw))
	completedLegalBalls := 0
	if overNumber == latestOver {
		completedLegalBalls = completedBalls
	}

	outcomes := make([]ballOutcome, len(inOver))
	for i, entry := range inOver {
		outcomes[i] = entry.outcome
	}
	return toLabeledBalls(latestOver, completedLegalBalls, outcomes)
}

// recentBallsFromCommentary returns the chronologically last 10 balls
// across all overs, labeled with their raw "over.ball" positions.
func recentBallsFromCommentary(balls []commentaryBall) []match.OverBall {
	if len(balls) == 0 {
		return nil
	}

	ordered := make([]commentaryBall, len(balls))
	copy(ordered, balls)
	sortCommentaryBalls(ordered)
	if len(ordered) > 10 {
		ordered = ordered[len(ordered)-10:]
	}

	result := make([]match.OverBall, len(ordered))
	for i, entry := range ordered {
		result[i] = match.OverBall{
			Label: strconv.Itoa(entry.over) + "." + strconv.Itoa(entry.rawBall),
			Value: entry.outcome.value,
			Kind:  entry.outcome.kind,
		}
	}
	return result
}

// candidatesFromPayload lists the mini-score shaped objects inside a
// commentary payload, innings lists newest first.
func candidatesFromPayload(payload map[string]any) []map[string]any {
	var candidates []map[string]any

	push := func(value any) {
		if m := asMap(value); m != nil {
			candidates = append(candidates, m)
		}
	}

	push(payload["miniScore"])
	push(payload["miniscore"])
	candidates = append(candidates, payload)

	details := getSlice(getMap(payload, "matchScoreDetails"), "inningsScoreList")
	for i := len(details) - 1; i >= 0; i-- {
		push(details[i])
	}

	flat := getSlice(payload, "inningsScoreList")
	for i := len(flat) - 1; i >= 0; i-- {
		push(flat[i])
	}

	return candidates
}

// parseLiveStateFromCommentary decodes a commentary endpoint payload and
// produces the best live state it supports, merging ball sequences parsed
// from the commentary lines into the winning candidate. The commentary
// sequences only back-fill: a candidate's own current-over balls are
// never overwritten, and recent balls are replaced only when the
// commentary knows strictly more.
func parseLiveStateFromCommentary(payloadJSON []byte) *match.LiveState {
	var payload map[string]any
	if err := sonic.Unmarshal(payloadJSON, &payload); err != nil || payload == nil {
		return nil
	}

	lines := parseCommentaryList(payload)
	balls := parseCommentaryBalls(lines)
	commentaryCurrentOver := currentOverFromCommentary(balls, "")
	commentaryRecent := recentBallsFromCommentary(balls)

	var best *match.LiveState
	for _, candidate := range candidatesFromPayload(payload) {
		fallbackCurrent := currentOverFromCommentary(balls, getText(candidate, "overs"))
		best = pickPreferredLiveState(best, parseCandidateState(candidate, fallbackCurrent))
	}

	if best != nil {
		merged := *best

		if len(merged.CurrentOverBalls) == 0 {
			merged.CurrentOverBalls = commentaryCurrentOver
		}
		if len(commentaryRecent) > len(merged.RecentBalls) {
			merged.RecentBalls = commentaryRecent
		}
		if len(merged.RecentBalls) == 0 {
			merged.RecentBalls = merged.CurrentOverBalls
		}

		switch {
		case len(commentaryRecent) > 0:
			merged.RecentBallsLabel = formatRecentBallsLabel(len(commentaryRecent))
		case len(merged.RecentBalls) > 0:
			merged.RecentBallsLabel = best.RecentBallsLabel
		default:
			merged.RecentBallsLabel = "Current over"
		}

		return &merged
	}

	if len(commentaryCurrentOver) == 0 && len(commentaryRecent) == 0 {
		return nil
	}

	overLabel := "-"
	if len(commentaryCurrentOver) > 0 {
		overLabel, _, _ = strings.Cut(commentaryCurrentOver[0].Label, ".")
	}

	recentBalls := commentaryRecent
	if len(recentBalls) == 0 {
		recentBalls = commentaryCurrentOver
	}

	recentLabel := "Current over"
	if len(commentaryRecent) > 0 {
		recentLabel = formatRecentBallsLabel(len(commentaryRecent))
	}

	return &match.LiveState{
		CurrentOverBalls: commentaryCurrentOver,
		RecentBalls:      recentBalls,
		RecentBallsLabel: recentLabel,
		CurrentOverLabel: overLabel,
		CurrentRunRate:   "-",
		RequiredRunRate:  "-",
	}
}
