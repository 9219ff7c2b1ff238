package cricket

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

func toListTeamSnapshot(name, shortName, score string) match.TeamSnapshot {
	return match.TeamSnapshot{
		Name:      name,
		ShortName: shortName,
		Score:     score,
		FlagURL:   teamFlagURL(name, shortName, 40),
	}
}

// buildMatchItem combines an anchor link with the embedded summary payload
// for the same id, when one exists. The summary is higher confidence for
// every field it carries.
func buildMatchItem(link matchLink, summary *matchSummary) (match.ListItem, bool) {
	id := ExtractMatchIDFromURL(link.url)
	if id == 0 {
		return match.ListItem{}, false
	}

	meta := parseTitleMeta(link.title)
	if summary == nil {
		summary = &matchSummary{}
	}

	team1 := firstNonEmpty(summary.team1, meta.team1)
	team2 := firstNonEmpty(summary.team2, meta.team2)
	team1Short := firstNonEmpty(summary.team1Short, getShortName(team1))
	team2Short := firstNonEmpty(summary.team2Short, getShortName(team2))

	status := pickBestStatus(summary.status, meta.status, summary.state)
	matchDesc := firstNonEmpty(summary.matchDesc, meta.matchDesc)
	hasScore := summary.team1Score != "" || summary.team2Score != ""

	return match.ListItem{
		ID:         strconv.Itoa(id),
		Title:      normalizeTitle(link.title, matchDesc),
		MatchDesc:  matchDesc,
		Series:     summary.seriesName,
		Venue:      summary.venue,
		Team1:      toListTeamSnapshot(firstNonEmpty(team1, "Team 1"), team1Short, summary.team1Score),
		Team2:      toListTeamSnapshot(firstNonEmpty(team2, "Team 2"), team2Short, summary.team2Score),
		Status:     status,
		State:      summary.state,
		StatusType: deriveStatusType(status, summary.state, link.title, hasScore),
		MatchURL:   link.url,
	}, true
}

// buildMatchItemFromSummary builds a row for an embedded summary that no
// visible anchor points at. The match URL is reconstructed from the team
// names and description.
func buildMatchItemFromSummary(summary matchSummary) match.ListItem {
	team1 := firstNonEmpty(summary.team1, "Team 1")
	team2 := firstNonEmpty(summary.team2, "Team 2")
	team1Short := firstNonEmpty(summary.team1Short, getShortName(team1))
	team2Short := firstNonEmpty(summary.team2Short, getShortName(team2))

	status := pickBestStatus(summary.status, summary.state)
	title := team1 + " vs " + team2
	if summary.matchDesc != "" {
		title += ", " + summary.matchDesc
	}
	hasScore := summary.team1Score != "" || summary.team2Score != ""

	return match.ListItem{
		ID:         strconv.Itoa(summary.matchID),
		Title:      title,
		MatchDesc:  summary.matchDesc,
		Series:     summary.seriesName,
		Venue:      summary.venue,
		Team1:      toListTeamSnapshot(team1, team1Short, summary.team1Score),
		Team2:      toListTeamSnapshot(team2, team2Short, summary.team2Score),
		Status:     status,
		State:      summary.state,
		StatusType: deriveStatusType(status, summary.state, title, hasScore),
		MatchURL:   BuildLiveURL(summary.matchID, team1, team2, summary.matchDesc),
	}
}

func countFilledFields(item match.ListItem) int {
	fields := []string{
		item.MatchDesc,
		item.Series,
		item.Venue,
		item.Team1.Name,
		item.Team2.Name,
		item.Team1.Score,
		item.Team2.Score,
		item.Status,
		item.State,
	}

	count := 0
	for _, value := range fields {
		if strings.TrimSpace(value) != "" {
			count++
		}
	}
	return count
}

func isLiveLike(item match.ListItem) bool {
	return item.StatusType == match.StatusLive || item.Team1.Score != "" || item.Team2.Score != ""
}

// pickBetterMatch resolves duplicate rows for one id. A live-looking row
// beats a flat one; otherwise the row with more filled fields wins, with
// the existing row kept on ties.
func pickBetterMatch(current, incoming match.ListItem) match.ListItem {
	if isLiveLike(incoming) && !isLiveLike(current) {
		return incoming
	}
	if !isLiveLike(incoming) && isLiveLike(current) {
		return current
	}
	if countFilledFields(incoming) > countFilledFields(current) {
		return incoming
	}
	return current
}

func upsertMatch(all map[string]match.ListItem, item match.ListItem) {
	existing, found := all[item.ID]
	if !found {
		all[item.ID] = item
		return
	}
	all[item.ID] = pickBetterMatch(existing, item)
}

func summaryForID(id int, primary, secondary map[int]matchSummary) *matchSummary {
	if summary, found := primary[id]; found {
		return &summary
	}
	if summary, found := secondary[id]; found {
		return &summary
	}
	return nil
}

// BuildMatchesData parses both list pages into partitioned match lists.
// Either page may be empty when its fetch failed; only both failing is an
// error.
func BuildMatchesData(liveHTML, upcomingHTML string) (match.ListData, error) {
	if liveHTML == "" && upcomingHTML == "" {
		return match.ListData{}, errors.New("cricket: no list page available")
	}

	var allLinks []matchLink
	if liveHTML != "" {
		allLinks = append(allLinks, parseMatchLinks(liveHTML)...)
	}
	if upcomingHTML != "" {
		allLinks = append(allLinks, parseMatchLinks(upcomingHTML)...)
	}

	liveSummaries := map[int]matchSummary{}
	if liveHTML != "" {
		liveSummaries = parseEmbeddedSummaries(liveHTML)
	}
	upcomingSummaries := map[int]matchSummary{}
	if upcomingHTML != "" {
		upcomingSummaries = parseEmbeddedSummaries(upcomingHTML)
	}

	allMatches := make(map[string]match.ListItem)

	for _, link := range allLinks {
		id := ExtractMatchIDFromURL(link.url)
		if id == 0 {
			continue
		}

		item, ok := buildMatchItem(link, summaryForID(id, liveSummaries, upcomingSummaries))
		if !ok {
			continue
		}
		upsertMatch(allMatches, item)
	}

	for _, summary := range liveSummaries {
		upsertMatch(allMatches, buildMatchItemFromSummary(summary))
	}
	for _, summary := range upcomingSummaries {
		upsertMatch(allMatches, buildMatchItemFromSummary(summary))
	}

	all := make([]match.ListItem, 0, len(allMatches))
	for _, item := range allMatches {
		if hasUsableStatus(item.Status) {
			all = append(all, item)
		}
	}

	sort.Slice(all, func(i, j int) bool {
		left, _ := strconv.Atoi(all[i].ID)
		right, _ := strconv.Atoi(all[j].ID)
		return left > right
	})

	data := match.ListData{}
	for _, item := range all {
		switch item.StatusType {
		case match.StatusLive:
			data.Live = append(data.Live, item)
		case match.StatusUpcoming:
			data.Upcoming = append(data.Upcoming, item)
		case match.StatusComplete:
			data.Recent = append(data.Recent, item)
		}
	}

	return data, nil
}
