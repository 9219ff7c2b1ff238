package cricket

import (
	"regexp"
	"strconv"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

var scoreLineOversRe = regexp.MustCompile(`\(([^)]+)\)`)

var oversSuffixRe = regexp.MustCompile(`(?i)\s*overs?`)

// DetailContext resolves, from the two list pages, everything the detail
// fetch needs for one match: the link and embedded summary for the id and
// the candidate URLs to try.
type DetailContext struct {
	id             int
	link           *matchLink
	summary        *matchSummary
	syntheticTitle string
	syntheticURL   string
}

// NewDetailContext scans both list pages for the given match id. Either
// page may be empty.
func NewDetailContext(id int, liveHTML, upcomingHTML string) DetailContext {
	ctx := DetailContext{id: id}

	var links []matchLink
	if liveHTML != "" {
		links = append(links, parseMatchLinks(liveHTML)...)
	}
	if upcomingHTML != "" {
		links = append(links, parseMatchLinks(upcomingHTML)...)
	}
	for i := range links {
		if ExtractMatchIDFromURL(links[i].url) == id {
			ctx.link = &links[i]
			break
		}
	}

	liveSummaries := map[int]matchSummary{}
	if liveHTML != "" {
		liveSummaries = parseEmbeddedSummaries(liveHTML)
	}
	upcomingSummaries := map[int]matchSummary{}
	if upcomingHTML != "" {
		upcomingSummaries = parseEmbeddedSummaries(upcomingHTML)
	}
	ctx.summary = summaryForID(id, liveSummaries, upcomingSummaries)

	if ctx.summary != nil {
		item := buildMatchItemFromSummary(*ctx.summary)
		ctx.syntheticTitle = item.Title
		ctx.syntheticURL = BuildLiveURL(
			ctx.summary.matchID,
			firstNonEmpty(ctx.summary.team1, "team-1"),
			firstNonEmpty(ctx.summary.team2, "team-2"),
			ctx.summary.matchDesc,
		)
	}

	return ctx
}

// ScorecardURLs lists scorecard pages to try, best candidate first.
func (c DetailContext) ScorecardURLs() []string {
	var urls []string
	if c.link != nil {
		urls = append(urls, ToScorecardURL(c.link.url))
	}
	if c.syntheticURL != "" {
		urls = append(urls, ToScorecardURL(c.syntheticURL))
	}
	return append(urls, BaseURL+"/live-cricket-scorecard/"+strconv.Itoa(c.id))
}

// LivePageURLs lists live match pages to try, best candidate first.
func (c DetailContext) LivePageURLs() []string {
	var urls []string
	if c.link != nil {
		urls = append(urls, c.link.url)
	}
	if c.syntheticURL != "" {
		urls = append(urls, c.syntheticURL)
	}
	return append(urls, BaseURL+"/live-cricket-scores/"+strconv.Itoa(c.id))
}

func (c DetailContext) fallbackTitle() string {
	if c.link != nil {
		return c.link.title
	}
	return c.syntheticTitle
}

func parseOversFromScoreLine(scoreLine string) string {
	matched := scoreLineOversRe.FindStringSubmatch(scoreLine)
	if matched == nil {
		return "-"
	}

	overs := cleanText(oversSuffixRe.ReplaceAllString(matched[1], ""))
	if overs == "" {
		return "-"
	}
	return overs
}

// deriveLiveStateFromInnings is the last-resort live state: the most
// recent innings with any batting or bowling rows, read as if it were in
// play.
func deriveLiveStateFromInnings(innings []match.Innings) *match.LiveState {
	var active *match.Innings
	for i := len(innings) - 1; i >= 0; i-- {
		if len(innings[i].Batsmen) > 0 || len(innings[i].Bowlers) > 0 {
			active = &innings[i]
			break
		}
	}
	if active == nil {
		return nil
	}

	var battersSource []match.Batter
	for _, batter := range active.Batsmen {
		if likelyActiveRe.MatchString(batter.Dismissal) {
			battersSource = append(battersSource, batter)
		}
	}
	if len(battersSource) == 0 {
		battersSource = active.Batsmen
	}
	if len(battersSource) > 2 {
		battersSource = battersSource[:2]
	}

	batters := make([]match.LiveBatter, 0, len(battersSource))
	for i, batter := range battersSource {
		batters = append(batters, match.LiveBatter{
			ID:         normalizePlayerKey(batter.Name) + "-" + strconv.Itoa(i+1),
			Name:       batter.Name,
			Runs:       batter.Runs,
			Balls:      batter.Balls,
			Fours:      batter.Fours,
			Sixes:      batter.Sixes,
			StrikeRate: batter.StrikeRate,
			OnStrike:   i == 0,
		})
	}

	bowlingState := make([]match.LiveBowler, 0, len(active.Bowlers))
	for i, source := range active.Bowlers {
		bowlingState = append(bowlingState, match.LiveBowler{
			ID:      normalizePlayerKey(source.Name) + "-" + strconv.Itoa(i+1),
			Name:    source.Name,
			Overs:   source.Overs,
			Maidens: source.Maidens,
			Runs:    source.Runs,
			Wickets: source.Wickets,
			Economy: source.Economy,
		})
	}
	var bowler *match.LiveBowler
	var previousBowlers []match.LiveBowler
	if len(bowlingState) > 0 {
		bowler = &bowlingState[0]
		previousBowlers = bowlingState[1:]
	}

	if len(batters) == 0 && bowler == nil {
		return nil
	}

	return &match.LiveState{
		Batters:          batters,
		Bowler:           bowler,
		PreviousBowlers:  previousBowlers,
		CurrentOverBalls: []match.OverBall{},
		RecentBalls:      []match.OverBall{},
		RecentBallsLabel: "Current over",
		CurrentOverLabel: parseOversFromScoreLine(active.ScoreLine),
		CurrentRunRate:   firstNonEmpty(active.RunRate, "-"),
		RequiredRunRate:  "-",
	}
}

func battingSquadForInnings(innings match.Innings, team1Name, team2Name string, team1Players, team2Players []match.TeamPlayer) []match.TeamPlayer {
	if teamNamesLikelyMatch(innings.BattingTeam, team1Name, "") {
		return team1Players
	}
	if teamNamesLikelyMatch(innings.BattingTeam, team2Name, "") {
		return team2Players
	}
	return nil
}

// addYetToBat fills each innings' yet-to-bat list from the batting side's
// squad, minus everyone already on the card and substitutes.
func addYetToBat(innings []match.Innings, team1Name, team2Name string, team1Players, team2Players []match.TeamPlayer) []match.Innings {
	result := make([]match.Innings, len(innings))

	for i, entry := range innings {
		result[i] = entry

		squad := battingSquadForInnings(entry, team1Name, team2Name, team1Players, team2Players)
		if len(squad) == 0 {
			continue
		}

		batted := make(map[string]bool, len(entry.Batsmen))
		for _, batter := range entry.Batsmen {
			batted[normalizePlayerKey(batter.Name)] = true
		}

		seen := make(map[string]bool)
		var yetToBat []string
		for _, player := range squad {
			if player.Substitute {
				continue
			}
			key := normalizePlayerKey(player.Name)
			if key == "" || batted[key] || seen[key] {
				continue
			}
			seen[key] = true
			yetToBat = append(yetToBat, player.Name)
		}

		result[i].YetToBat = yetToBat
	}

	return result
}

// AssembleMatchDetail builds the full detail view from the fetched pages.
// livePageHTML and the commentary payloads are optional; each adds a live
// state candidate and another squad source.
func AssembleMatchDetail(ctx DetailContext, scorecardHTML, livePageHTML string, commentaryPayloads [][]byte) match.DetailData {
	detail := parseScorecardDetails(strconv.Itoa(ctx.id), scorecardHTML, ctx.summary, ctx.fallbackTitle())

	liveState := parseLiveStateFromHTML(scorecardHTML)
	team1Players := detail.Team1Players
	team2Players := detail.Team2Players

	if livePageHTML != "" {
		liveState = pickPreferredLiveState(liveState, parseLiveStateFromHTML(livePageHTML))

		pageTeam1, pageTeam2 := extractTeamPlayersFromHTML(livePageHTML)
		team1Players = mergeTeamPlayers(team1Players, pageTeam1)
		team2Players = mergeTeamPlayers(team2Players, pageTeam2)

		if detail.WinPrediction == nil {
			detail.WinPrediction = parseWinPredictionFromHTML(livePageHTML, detail.Team1, detail.Team2)
		}
	}

	hasScore := (detail.Team1.Score != "" && detail.Team1.Score != "-") ||
		(detail.Team2.Score != "" && detail.Team2.Score != "-")
	isLiveMatch := deriveStatusType(detail.Status, detail.State, detail.Title, hasScore) == match.StatusLive

	for _, payload := range commentaryPayloads {
		if len(payload) == 0 {
			continue
		}

		if isLiveMatch {
			liveState = pickPreferredLiveState(liveState, parseLiveStateFromCommentary(payload))
		}

		var decoded map[string]any
		if err := sonic.Unmarshal(payload, &decoded); err == nil {
			extracted1, extracted2 := extractTeamPlayersFromCommentary(decoded)
			team1Players = mergeTeamPlayers(team1Players, extracted1)
			team2Players = mergeTeamPlayers(team2Players, extracted2)
		}
	}

	if isLiveMatch {
		liveState = pickPreferredLiveState(liveState, deriveLiveStateFromInnings(detail.Innings))
	}

	if detail.WinPrediction == nil {
		detail.WinPrediction = parseWinPredictionFromHTML(scorecardHTML, detail.Team1, detail.Team2)
	}

	detail.Innings = addYetToBat(detail.Innings, detail.Team1.Name, detail.Team2.Name, team1Players, team2Players)
	detail.Team1Players = team1Players
	detail.Team2Players = team2Players
	detail.LiveState = liveState

	return detail
}
