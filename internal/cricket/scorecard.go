package cricket

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

var didNotBatRe = regexp.MustCompile(`(did not bat|dnb|yet to bat|to bat)`)

// shouldIncludeBatter filters scorecard rows down to batters who actually
// took part: anyone with a stat on the board, or with real dismissal text.
func shouldIncludeBatter(player map[string]any) bool {
	dismissal := strings.ToLower(getText(player, "outDesc"))
	if didNotBatRe.MatchString(dismissal) {
		return false
	}

	for _, key := range []string{"runs", "balls", "fours", "sixes"} {
		if value, ok := getFloat(player, key); ok && value > 0 {
			return true
		}
	}

	return dismissal != ""
}

// teamNamesLikelyMatch is the fuzzy team comparison used everywhere score
// attribution needs it. The length guards are load-bearing: without them
// short abbreviations ("SA") would match by containment against almost
// anything.
func teamNamesLikelyMatch(inningsTeamName, teamName, teamShortName string) bool {
	inningsKey := normalizeKey(inningsTeamName)
	teamKey := normalizeKey(teamName)
	shortKey := normalizeKey(teamShortName)

	if inningsKey == "" {
		return false
	}

	if inningsKey == teamKey || inningsKey == shortKey {
		return true
	}
	if len(teamKey) > 3 && (strings.Contains(inningsKey, teamKey) || strings.Contains(teamKey, inningsKey)) {
		return true
	}
	if len(shortKey) > 1 && (strings.Contains(inningsKey, shortKey) || strings.Contains(shortKey, inningsKey)) {
		return true
	}
	return false
}

func scoreLineFromDetails(scoreDetails map[string]any) string {
	runs := "-"
	if value, present := scoreDetails["runs"]; present && value != nil {
		runs = stringify(value)
	}
	wickets := "-"
	if value, present := scoreDetails["wickets"]; present && value != nil {
		wickets = stringify(value)
	}
	return runs + "/" + wickets + " (" + oversLabel(getText(scoreDetails, "overs")) + ")"
}

// formatTeamScoresFromScorecard folds per-innings score lines into a map
// keyed by normalized team name, innings joined with " & ".
func formatTeamScoresFromScorecard(scoreCard []map[string]any) map[string]string {
	runsByTeam := make(map[string][]string)
	var order []string

	addScore := func(teamName, score string) {
		key := normalizeKey(teamName)
		if key == "" {
			return
		}
		if _, found := runsByTeam[key]; !found {
			order = append(order, key)
		}
		runsByTeam[key] = append(runsByTeam[key], score)
	}

	for _, innings := range scoreCard {
		batDetails := getMap(innings, "batTeamDetails")
		teamName := getText(batDetails, "batTeamName")
		teamShortName := getText(batDetails, "batTeamShortName")
		score := scoreLineFromDetails(getMap(innings, "scoreDetails"))

		if teamName != "" {
			addScore(teamName, score)
		}
		if teamShortName != "" && teamShortName != teamName {
			addScore(teamShortName, score)
		}
	}

	result := make(map[string]string, len(order))
	for _, key := range order {
		result[key] = strings.Join(runsByTeam[key], " & ")
	}
	return result
}

// getScoreForTeam looks a team's score up by its direct normalized keys
// first, then by guarded containment. Keys shorter than 3 never match by
// containment, and only keys longer than 4 may contain a candidate.
func getScoreForTeam(teamScoreMap map[string]string, teamName, teamShortName string) string {
	var directKeys []string
	for _, name := range []string{teamName, teamShortName} {
		if key := normalizeKey(name); key != "" {
			directKeys = append(directKeys, key)
		}
	}

	for _, key := range directKeys {
		if direct, found := teamScoreMap[key]; found && direct != "" {
			return direct
		}
	}

	candidates := make([]string, 0, len(teamScoreMap))
	for candidate := range teamScoreMap {
		candidates = append(candidates, candidate)
	}
	sort.Strings(candidates)

	for _, key := range directKeys {
		if len(key) < 3 {
			continue
		}
		for _, candidate := range candidates {
			if strings.Contains(candidate, key) || (len(key) > 4 && strings.Contains(key, candidate)) {
				if score := teamScoreMap[candidate]; score != "" {
					return score
				}
			}
		}
	}

	return ""
}

// inferYetToBatScore applies only in the single-innings case: when the
// one batting team is not this team, this team has yet to bat.
func inferYetToBatScore(scoreCard []map[string]any, teamName, teamShortName string) string {
	if len(scoreCard) != 1 {
		return ""
	}

	batDetails := getMap(scoreCard[0], "batTeamDetails")
	battingTeamName := getText(batDetails, "batTeamName", "batTeamShortName")
	if battingTeamName == "" {
		return ""
	}

	if teamNamesLikelyMatch(battingTeamName, teamName, teamShortName) {
		return ""
	}
	return "Yet to bat"
}

// scorecardTeamMatchScore rates how well a scorecard candidate block
// matches the expected team names: base length plus 2 for every team key
// in every innings that overlaps a target, so a candidate naming both
// sides outweighs one that only matches a single name.
func scorecardTeamMatchScore(scoreCard []map[string]any, teamNames []string) int {
	var targets []string
	for _, team := range teamNames {
		if key := normalizeKey(team); len(key) > 1 {
			targets = append(targets, key)
		}
	}

	score := len(scoreCard)
	if len(targets) == 0 {
		return score
	}

	for _, innings := range scoreCard {
		batDetails := getMap(innings, "batTeamDetails")
		bowlDetails := getMap(innings, "bowlTeamDetails")

		var keys []string
		for _, name := range []string{
			getText(batDetails, "batTeamName"),
			getText(batDetails, "batTeamShortName"),
			getText(bowlDetails, "bowlTeamName"),
			getText(bowlDetails, "bowlTeamShortName"),
		} {
			if key := normalizeKey(name); key != "" {
				keys = append(keys, key)
			}
		}

		for _, candidate := range keys {
			for _, target := range targets {
				if candidate == target ||
					(len(target) > 3 && strings.Contains(candidate, target)) ||
					(len(candidate) > 3 && strings.Contains(target, candidate)) {
					score += 2
					break
				}
			}
		}
	}

	return score
}

// pickBestScoreCard selects among several extracted scorecard blocks the
// one whose teams best match the expected names.
func pickBestScoreCard(candidates [][]map[string]any, teamNames []string) []map[string]any {
	var best []map[string]any
	bestScore := -1

	for _, candidate := range candidates {
		if len(candidate) == 0 {
			continue
		}
		if score := scorecardTeamMatchScore(candidate, teamNames); score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	return best
}

func toTeamSnapshot(name, shortName, score string) match.TeamSnapshot {
	return match.TeamSnapshot{
		Name:      name,
		ShortName: shortName,
		Score:     score,
		FlagURL:   teamFlagURL(name, shortName, 48),
	}
}

func toDisplayBatsmen(batsmenData map[string]any) []match.Batter {
	var batsmen []match.Batter

	for _, entry := range valuesByNumericSuffix(batsmenData) {
		player := asMap(entry)
		if player == nil || !shouldIncludeBatter(player) {
			continue
		}

		name := getText(player, "batName")
		if name == "" {
			name = "Unknown"
		}
		var tags []string
		if getBool(player, "isCaptain") {
			tags = append(tags, "c")
		}
		if getBool(player, "isKeeper") {
			tags = append(tags, "wk")
		}
		if len(tags) > 0 {
			name += " (" + strings.Join(tags, ", ") + ")"
		}

		batsmen = append(batsmen, match.Batter{
			Name:       name,
			Runs:       statText(player, "runs"),
			Balls:      statText(player, "balls"),
			Fours:      statText(player, "fours"),
			Sixes:      statText(player, "sixes"),
			StrikeRate: statText(player, "strikeRate"),
			Dismissal:  statText(player, "outDesc"),
		})
	}

	return batsmen
}

func toDisplayBowlers(bowlersData map[string]any) []match.Bowler {
	var bowlers []match.Bowler

	for _, entry := range valuesByNumericSuffix(bowlersData) {
		player := asMap(entry)
		if player == nil {
			continue
		}

		name := getText(player, "bowlName")
		if name == "" {
			name = "Unknown"
		}
		overs := normalizeOvers(getText(player, "overs"))
		if overs == "" {
			overs = "-"
		}

		bowlers = append(bowlers, match.Bowler{
			Name:    name,
			Overs:   overs,
			Maidens: statText(player, "maidens"),
			Runs:    statText(player, "runs"),
			Wickets: statText(player, "wickets"),
			Economy: statText(player, "economy"),
			Wides:   statText(player, "wides"),
			NoBalls: statText(player, "no_balls"),
		})
	}

	return bowlers
}

func toFallOfWickets(wicketsData map[string]any) []string {
	var lines []string

	for _, entry := range valuesByNumericSuffix(wicketsData) {
		wicket := asMap(entry)
		if wicket == nil {
			continue
		}

		batter := getText(wicket, "batName")
		if batter == "" {
			batter = "Unknown batter"
		}
		over := normalizeOvers(getText(wicket, "wktOver"))
		if over == "" {
			over = "-"
		}

		lines = append(lines,
			getText(wicket, "wktNbr")+". "+batter+" - "+statText(wicket, "wktRuns")+" ("+over+")")
	}

	return lines
}

func extrasLine(extras map[string]any) string {
	if extras == nil {
		return "-"
	}

	part := func(key string) string {
		if value, ok := getFloat(extras, key); ok {
			return stringify(value)
		}
		return "0"
	}

	return "Total " + part("total") +
		" (b " + part("byes") +
		", lb " + part("legByes") +
		", w " + part("wides") +
		", nb " + part("noBalls") +
		", p " + part("penalty") + ")"
}

func toDisplayInnings(scoreCard []map[string]any) []match.Innings {
	innings := make([]match.Innings, 0, len(scoreCard))

	for _, entry := range scoreCard {
		batDetails := getMap(entry, "batTeamDetails")
		bowlDetails := getMap(entry, "bowlTeamDetails")
		scoreDetails := getMap(entry, "scoreDetails")

		battingTeam := getText(batDetails, "batTeamName", "batTeamShortName")
		if battingTeam == "" {
			battingTeam = "Batting Team"
		}
		bowlingTeam := getText(bowlDetails, "bowlTeamName", "bowlTeamShortName")
		if bowlingTeam == "" {
			bowlingTeam = "Bowling Team"
		}

		innings = append(innings, match.Innings{
			InningsID:     statText(entry, "inningsId"),
			BattingTeam:   battingTeam,
			BowlingTeam:   bowlingTeam,
			ScoreLine:     scoreLineFromDetails(scoreDetails),
			RunRate:       runRate(getText(scoreDetails, "runs"), getText(scoreDetails, "overs")),
			ExtrasLine:    extrasLine(getMap(entry, "extrasData")),
			Batsmen:       toDisplayBatsmen(getMap(batDetails, "batsmenData")),
			Bowlers:       toDisplayBowlers(getMap(bowlDetails, "bowlersData")),
			FallOfWickets: toFallOfWickets(getMap(entry, "wicketsData")),
			YetToBat:      nil,
		})
	}

	return innings
}

// parseScorecardDetails assembles the full detail view from a scorecard
// page, with an optional lower-confidence summary and link title filling
// the gaps. Live state and win prediction are attached by the caller.
func parseScorecardDetails(id, scorecardHTML string, fallbackSummary *matchSummary, fallbackTitle string) match.DetailData {
	headerCandidates := pickAllObjectsByKey(scorecardHTML, "matchHeader")
	var matchHeader map[string]any
	for _, entry := range headerCandidates {
		if headerID, ok := getInt(entry, "matchId"); ok && strconv.Itoa(headerID) == id {
			matchHeader = entry
			break
		}
	}
	if matchHeader == nil && len(headerCandidates) > 0 {
		matchHeader = headerCandidates[0]
	}

	var matchInfo map[string]any
	if infos := pickAllObjectsByKey(scorecardHTML, "matchInfo"); len(infos) > 0 {
		matchInfo = infos[0]
	}

	var scoreCardCandidates [][]map[string]any
	for _, arr := range pickAllArraysByKey(scorecardHTML, "scoreCard") {
		var candidate []map[string]any
		for _, entry := range arr {
			if innings := asMap(entry); innings != nil {
				candidate = append(candidate, innings)
			}
		}
		scoreCardCandidates = append(scoreCardCandidates, candidate)
	}

	summary := fallbackSummary
	if summary == nil {
		summary = &matchSummary{}
	}

	headerTeam1 := getMap(matchHeader, "team1")
	headerTeam2 := getMap(matchHeader, "team2")

	var expectedTeamNames []string
	for _, name := range []string{
		getText(headerTeam1, "name"), getText(headerTeam2, "name"),
		summary.team1, summary.team2,
	} {
		if name != "" {
			expectedTeamNames = append(expectedTeamNames, name)
		}
	}

	scoreCard := pickBestScoreCard(scoreCardCandidates, expectedTeamNames)

	team1Name := firstNonEmpty(getText(headerTeam1, "name"), summary.team1, "Team 1")
	team2Name := firstNonEmpty(getText(headerTeam2, "name"), summary.team2, "Team 2")
	team1Short := firstNonEmpty(getText(headerTeam1, "shortName"), summary.team1Short, getShortName(team1Name))
	team2Short := firstNonEmpty(getText(headerTeam2, "shortName"), summary.team2Short, getShortName(team2Name))

	headerVenue := getMap(matchHeader, "venue")
	var venueParts []string
	for _, key := range []string{"name", "city", "country"} {
		if part := getText(headerVenue, key); part != "" {
			venueParts = append(venueParts, part)
		}
	}
	venue := firstNonEmpty(strings.Join(venueParts, ", "), summary.venue, "-")

	startDate := summary.startDate
	if value, present := getFloat(matchHeader, "matchStartTimestamp"); present {
		startDate = int64(value)
	}

	toss := "-"
	tossResults := getMap(matchHeader, "tossResults")
	if winner, decision := getText(tossResults, "tossWinnerName"), getText(tossResults, "decision"); winner != "" && decision != "" {
		toss = winner + " opted to " + decision
	}

	teamScoreMap := formatTeamScoresFromScorecard(scoreCard)
	team1Score := firstNonEmpty(
		getScoreForTeam(teamScoreMap, team1Name, team1Short),
		summary.team1Score,
		inferYetToBatScore(scoreCard, team1Name, team1Short),
	)
	team2Score := firstNonEmpty(
		getScoreForTeam(teamScoreMap, team2Name, team2Short),
		summary.team2Score,
		inferYetToBatScore(scoreCard, team2Name, team2Short),
	)

	// One innings but both sides showing the same score means attribution
	// failed; the side that is not batting shows "Yet to bat" instead.
	if len(scoreCard) == 1 && team1Score != "" && team1Score == team2Score {
		battingTeamName := getText(getMap(scoreCard[0], "batTeamDetails"), "batTeamName", "batTeamShortName")
		if teamNamesLikelyMatch(battingTeamName, team1Name, team1Short) {
			team2Score = inferYetToBatScore(scoreCard, team2Name, team2Short)
		} else if teamNamesLikelyMatch(battingTeamName, team2Name, team2Short) {
			team1Score = inferYetToBatScore(scoreCard, team1Name, team1Short)
		}
	}

	if team1Score == "" {
		team1Score = "-"
	}
	if team2Score == "" {
		team2Score = "-"
	}

	meta := parseTitleMeta(fallbackTitle)
	title := fallbackTitle
	if title == "" {
		title = team1Name + " vs " + team2Name
		if desc := getText(matchHeader, "matchDescription"); desc != "" {
			title += ", " + desc
		}
	}

	team1Players := mergeTeamPlayers(
		mergeTeamPlayers(
			toTeamPlayers(headerTeam1["playerDetails"]),
			toTeamPlayers(getMap(matchInfo, "team1")["playerDetails"]),
		),
		fallbackPlayersFromInnings(scoreCard, team1Name),
	)
	team2Players := mergeTeamPlayers(
		mergeTeamPlayers(
			toTeamPlayers(headerTeam2["playerDetails"]),
			toTeamPlayers(getMap(matchInfo, "team2")["playerDetails"]),
		),
		fallbackPlayersFromInnings(scoreCard, team2Name),
	)

	return match.DetailData{
		ID:        id,
		Title:     title,
		Series:    firstNonEmpty(getText(matchHeader, "seriesDesc"), summary.seriesName, "-"),
		MatchDesc: firstNonEmpty(getText(matchHeader, "matchDescription"), summary.matchDesc, meta.matchDesc, "-"),
		Format:    firstNonEmpty(getText(matchHeader, "matchFormat"), summary.format, "-"),
		Venue:     venue,
		StartTime: formatStartDate(startDate),
		Status: pickBestStatus(
			getText(matchHeader, "status"),
			summary.status,
			meta.status,
			getText(matchHeader, "state"),
			summary.state,
		),
		State:        firstNonEmpty(getText(matchHeader, "state"), summary.state, "-"),
		Toss:         toss,
		Team1:        toTeamSnapshot(team1Name, team1Short, team1Score),
		Team2:        toTeamSnapshot(team2Name, team2Short, team2Score),
		Innings:      toDisplayInnings(scoreCard),
		Team1Players: team1Players,
		Team2Players: team2Players,
	}
}
