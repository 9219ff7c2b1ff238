package cricket

import (
	"regexp"
	"strings"

	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

var (
	fallbackIDRe   = regexp.MustCompile(`[^a-z0-9]+`)
	likelyActiveRe = regexp.MustCompile(`(?i)(batting|not out|retired hurt)`)
)

func fallbackIDFromName(name string) string {
	return fallbackIDRe.ReplaceAllString(strings.ToLower(name), "-")
}

// statText renders the first present stat field, "-" when none is known.
func statText(src map[string]any, keys ...string) string {
	if value := getText(src, keys...); value != "" {
		return value
	}
	return "-"
}

func toLiveBatter(raw map[string]any, defaultStrike bool) *match.LiveBatter {
	if raw == nil {
		return nil
	}

	name := getText(raw, "batName", "name")
	if name == "" {
		return nil
	}

	id := getText(raw, "id", "batId")
	if id == "" {
		id = fallbackIDFromName(name)
	}

	onStrike := defaultStrike
	if value, present := raw["isOnStrike"]; present && value != nil {
		onStrike = getBool(raw, "isOnStrike")
	} else if value, present := raw["isStriker"]; present && value != nil {
		onStrike = getBool(raw, "isStriker")
	}

	return &match.LiveBatter{
		ID:         id,
		Name:       name,
		Runs:       statText(raw, "runs", "batRuns"),
		Balls:      statText(raw, "balls", "batBalls"),
		Fours:      statText(raw, "fours", "batFours"),
		Sixes:      statText(raw, "sixes", "batSixes"),
		StrikeRate: statText(raw, "strikeRate", "batStrikeRate"),
		OnStrike:   onStrike,
	}
}

// toLiveBatters extracts at most two active batters from a candidate. The
// probe order reflects field reliability: explicit striker/non-striker
// pairs, then generic slots, then inference from the full batting list
// filtered to entries whose dismissal text implies they are still in.
func toLiveBatters(candidate map[string]any) []match.LiveBatter {
	var result []match.LiveBatter
	seen := make(map[string]bool)

	addOne := func(player *match.LiveBatter) {
		if player == nil {
			return
		}
		key := strings.ToLower(player.Name)
		if seen[key] {
			return
		}
		seen[key] = true
		result = append(result, *player)
	}

	addOne(toLiveBatter(getMap(candidate, "batsmanStriker"), true))
	addOne(toLiveBatter(getMap(candidate, "batsmanNonStriker"), false))
	addOne(toLiveBatter(getMap(candidate, "striker"), true))
	addOne(toLiveBatter(getMap(candidate, "nonStriker"), false))
	addOne(toLiveBatter(getMap(candidate, "batsman1"), len(result) == 0))
	addOne(toLiveBatter(getMap(candidate, "batsman2"), len(result) == 1))
	addOne(toLiveBatter(getMap(candidate, "currentBatter"), len(result) == 0))

	for _, entry := range getSlice(candidate, "currentBatters") {
		addOne(toLiveBatter(asMap(entry), len(result) == 0))
	}

	if len(result) > 0 {
		return result
	}

	for _, entry := range getSlice(getMap(candidate, "batTeam"), "batsmen") {
		raw := asMap(entry)
		if raw == nil {
			continue
		}

		outDesc := strings.ToLower(getText(raw, "outDesc"))
		if outDesc != "" && !likelyActiveRe.MatchString(outDesc) {
			continue
		}

		addOne(toLiveBatter(raw, len(result) == 0))
		if len(result) == 2 {
			break
		}
	}

	return result
}

func toLiveBowler(raw map[string]any) *match.LiveBowler {
	if raw == nil {
		return nil
	}

	name := getText(raw, "bowlName", "name")
	if name == "" {
		return nil
	}

	id := getText(raw, "id", "bowlId")
	if id == "" {
		id = fallbackIDFromName(name)
	}

	overs := normalizeOvers(getText(raw, "overs", "bowlOvs"))
	if overs == "" {
		overs = "-"
	}

	return &match.LiveBowler{
		ID:      id,
		Name:    name,
		Overs:   overs,
		Maidens: statText(raw, "maidens", "bowlMaidens"),
		Runs:    statText(raw, "runs", "bowlRuns"),
		Wickets: statText(raw, "wickets", "bowlWkts"),
		Economy: statText(raw, "economy", "bowlEcon"),
	}
}

func bowlerKey(bowler match.LiveBowler) string {
	return bowler.ID + ":" + strings.ToLower(bowler.Name)
}

func hasBowlerStats(bowler match.LiveBowler) bool {
	for _, value := range []string{bowler.Overs, bowler.Maidens, bowler.Runs, bowler.Wickets} {
		if value != "-" && value != "" {
			return true
		}
	}
	return false
}

// toBowlingState extracts the current bowler plus previous bowlers,
// deduplicated by (id, lowercased name). Bowlers beyond the first are
// kept only when they show actual stats, so placeholder rows from the
// full bowling list do not pollute the previous-bowlers section.
func toBowlingState(candidate map[string]any) (*match.LiveBowler, []match.LiveBowler) {
	var result []match.LiveBowler
	seen := make(map[string]bool)

	addBowler := func(raw map[string]any) {
		parsed := toLiveBowler(raw)
		if parsed == nil {
			return
		}
		key := bowlerKey(*parsed)
		if seen[key] {
			return
		}
		seen[key] = true
		result = append(result, *parsed)
	}

	addBowler(getMap(candidate, "currentBowler"))
	addBowler(getMap(candidate, "bowlerStriker"))
	addBowler(getMap(candidate, "bowler"))

	bowlTeam := getMap(candidate, "bowlTeam")
	for _, sourceKey := range []string{"bowlers", "previousBowlers"} {
		for _, entry := range getSlice(bowlTeam, sourceKey) {
			if raw := asMap(entry); raw != nil {
				addBowler(raw)
			}
		}
	}

	if len(result) == 0 {
		return nil, nil
	}

	bowler := result[0]
	var previous []match.LiveBowler
	for _, item := range result[1:] {
		if hasBowlerStats(item) {
			previous = append(previous, item)
		}
	}

	return &bowler, previous
}

// extractOverTokens reads the current-over token window from a candidate,
// preferring array-shaped sources over delimited strings.
func extractOverTokens(candidate map[string]any) []string {
	arrayKeys := []string{
		"currentOver", "thisOver", "overSummary", "overSummaryList",
		"currOver", "thisOverStats", "recentOvsStatsArr",
	}
	for _, key := range arrayKeys {
		if source := getSlice(candidate, key); source != nil {
			if parsed := parseOverTokensFromArray(source, 8); len(parsed) > 0 {
				return parsed
			}
		}
	}

	stringKeys := []string{
		"currentOver", "thisOver", "overSummary", "recentOvsStats",
		"currOver", "thisOverStats",
	}
	for _, key := range stringKeys {
		source, ok := candidate[key].(string)
		if !ok {
			continue
		}
		if parsed := parseOverTokensFromString(source, 8, false); len(parsed) > 0 {
			return parsed
		}
	}

	return nil
}

// extractRecentBallTokens reads the recent-balls window, capped at 10.
// String sources keep all "|" segments since the window spans overs.
func extractRecentBallTokens(candidate map[string]any) []string {
	arrayKeys := []string{
		"recentBalls", "latestBalls", "lastTenBalls", "last10Balls", "recentOvsStatsArr",
	}
	for _, key := range arrayKeys {
		if source := getSlice(candidate, key); source != nil {
			if parsed := parseOverTokensFromArray(source, 10); len(parsed) > 0 {
				return parsed
			}
		}
	}

	stringKeys := []string{
		"recentBalls", "latestBalls", "lastTenBalls", "last10Balls", "recentOvsStats",
	}
	for _, key := range stringKeys {
		source, ok := candidate[key].(string)
		if !ok || source == "" {
			continue
		}
		if parsed := parseOverTokensFromString(source, 10, true); len(parsed) > 0 {
			return parsed
		}
	}

	return nil
}

func hasContent(state *match.LiveState) bool {
	return len(state.Batters) > 0 ||
		state.Bowler != nil ||
		len(state.PreviousBowlers) > 0 ||
		len(state.CurrentOverBalls) > 0 ||
		len(state.RecentBalls) > 0
}

// scoreLiveState rates candidate completeness. Caps keep any one noisy
// field from drowning out the presence of real batter/bowler records.
func scoreLiveState(state *match.LiveState) int {
	score := 0

	score += len(state.Batters) * 4
	if state.Bowler != nil {
		score += 4
	}
	previous := len(state.PreviousBowlers)
	if previous > 4 {
		previous = 4
	}
	score += previous * 2

	currentOver := len(state.CurrentOverBalls)
	if currentOver > 8 {
		currentOver = 8
	}
	score += currentOver

	recent := len(state.RecentBalls)
	if recent > 10 {
		recent = 10
	}
	score += recent

	if state.CurrentRunRate != "-" {
		score++
	}
	if state.RequiredRunRate != "-" {
		score++
	}

	return score
}

// parseCandidateState normalizes one raw mini-score candidate, or returns
// nil when the candidate carries nothing usable.
func parseCandidateState(candidate map[string]any, fallbackCurrentOver []match.OverBall) *match.LiveState {
	batters := toLiveBatters(candidate)
	bowler, previousBowlers := toBowlingState(candidate)
	oversRaw := getText(candidate, "overs")

	overTokens := extractOverTokens(candidate)
	recentTokens := extractRecentBallTokens(candidate)

	currentOverBalls := fallbackCurrentOver
	if len(overTokens) > 0 {
		overContext := oversRaw
		if overContext == "" {
			overContext = "0"
		}
		currentOverBalls = toCurrentOverBalls(overTokens, overContext)
	}

	recentBalls := currentOverBalls
	recentBallsLabel := "Current over"
	if len(recentTokens) > 0 {
		recentBalls = toRecentBalls(recentTokens)
		recentBallsLabel = formatRecentBallsLabel(len(recentTokens))
	}

	currentOverLabel := normalizeOvers(oversRaw)
	if currentOverLabel == "" {
		currentOverLabel = "-"
	}

	state := &match.LiveState{
		Batters:          batters,
		Bowler:           bowler,
		PreviousBowlers:  previousBowlers,
		CurrentOverBalls: currentOverBalls,
		RecentBalls:      recentBalls,
		RecentBallsLabel: recentBallsLabel,
		CurrentOverLabel: currentOverLabel,
		CurrentRunRate:   statText(candidate, "crr", "currentRunRate"),
		RequiredRunRate:  statText(candidate, "reqRate", "requiredRunRate"),
	}

	if !hasContent(state) {
		return nil
	}
	return state
}

// pickPreferredLiveState keeps whichever whole candidate scores higher.
// Never merges field by field: partial states come from snapshots taken
// at different moments and stitching them produces impossible scorelines.
func pickPreferredLiveState(current, incoming *match.LiveState) *match.LiveState {
	if current == nil {
		return incoming
	}
	if incoming == nil {
		return current
	}
	if scoreLiveState(incoming) > scoreLiveState(current) {
		return incoming
	}
	return current
}

// parseLiveStateFromHTML recovers the best live state embedded in a
// scorecard page. Key variants cover the casings the site has shipped.
func parseLiveStateFromHTML(scorecardHTML string) *match.LiveState {
	var candidates []map[string]any

	for _, key := range []string{"miniScore", "miniscore", "miniScoreCard", "miniScorecard"} {
		if obj := pickObjectByKey(scorecardHTML, key); obj != nil {
			candidates = append(candidates, obj)
		}
	}

	if details := pickObjectByKey(scorecardHTML, "matchScoreDetails"); details != nil {
		list := getSlice(details, "inningsScoreList")
		for i := len(list) - 1; i >= 0; i-- {
			if entry := asMap(list[i]); entry != nil {
				candidates = append(candidates, entry)
			}
		}
	}

	flat := pickArrayByKey(scorecardHTML, "inningsScoreList")
	for i := len(flat) - 1; i >= 0; i-- {
		if entry := asMap(flat[i]); entry != nil {
			candidates = append(candidates, entry)
		}
	}

	var best *match.LiveState
	for _, candidate := range candidates {
		best = pickPreferredLiveState(best, parseCandidateState(candidate, nil))
	}
	return best
}
