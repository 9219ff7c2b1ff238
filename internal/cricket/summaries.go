package cricket

import (
	"strings"
	"time"
)

// matchSummary is one embedded match payload from a list page: the
// matchInfo block plus the matchScore block that follows it, when one
// does.
type matchSummary struct {
	matchID    int
	team1      string
	team2      string
	team1Short string
	team2Short string
	team1Score string
	team2Score string
	seriesName string
	matchDesc  string
	format     string
	state      string
	status     string
	venue      string
	startDate  int64
}

func findMatchInfoToken(source string, fromIndex int) int {
	escaped := strings.Index(source[fromIndex:], `\"matchInfo\":{`)
	plain := strings.Index(source[fromIndex:], `"matchInfo":{`)

	switch {
	case escaped < 0 && plain < 0:
		return -1
	case escaped < 0:
		return fromIndex + plain
	case plain < 0:
		return fromIndex + escaped
	case escaped < plain:
		return fromIndex + escaped
	default:
		return fromIndex + plain
	}
}

func findMatchScoreToken(window string) (offset, tokenLen int) {
	for _, token := range []string{`\"matchScore\":{`, `"matchScore":{`} {
		if idx := strings.Index(window, token); idx >= 0 {
			return idx, len(token)
		}
	}
	return -1, 0
}

// formatTeamScore renders a per-innings score map ("inngs1", "inngs2") as
// a display string, innings joined with " & ".
func formatTeamScore(teamScore map[string]any) string {
	if len(teamScore) == 0 {
		return ""
	}

	var parts []string
	for _, entry := range valuesByNumericSuffix(teamScore) {
		innings := asMap(entry)
		if innings == nil {
			continue
		}

		runs := "-"
		if value, present := innings["runs"]; present && value != nil {
			runs = stringify(value)
		}
		wickets := "-"
		if value, present := innings["wickets"]; present && value != nil {
			wickets = stringify(value)
		}

		parts = append(parts, runs+"/"+wickets+" ("+oversLabel(getText(innings, "overs"))+")")
	}

	return strings.Join(parts, " & ")
}

// parseEmbeddedSummaries walks every matchInfo block embedded in a list
// page and builds summaries by match id. The matchScore block for a match
// sits between its matchInfo and the next one, so the scan window closes
// at the next matchInfo token (or a fixed distance when none follows).
// When the same id appears twice, the variant that resolved a score wins.
func parseEmbeddedSummaries(html string) map[int]matchSummary {
	summaries := make(map[int]matchSummary)

	searchFrom := 0
	for {
		tokenIndex := findMatchInfoToken(html, searchFrom)
		if tokenIndex < 0 {
			break
		}

		infoStart := strings.IndexByte(html[tokenIndex:], '{')
		if infoStart < 0 {
			break
		}
		infoStart += tokenIndex

		infoChunk, infoEnd, ok := extractBalanced(html, infoStart)
		if !ok {
			searchFrom = tokenIndex + 1
			continue
		}
		searchFrom = infoEnd

		var info map[string]any
		if !decodeEscapedJSON(infoChunk, &info) || info == nil {
			continue
		}

		matchID, ok := getInt(info, "matchId")
		if !ok || matchID == 0 {
			continue
		}

		windowEnd := findMatchInfoToken(html, infoEnd)
		if windowEnd < 0 {
			windowEnd = infoEnd + 4000
			if windowEnd > len(html) {
				windowEnd = len(html)
			}
		}

		var score map[string]any
		if offset, tokenLen := findMatchScoreToken(html[infoEnd:windowEnd]); offset >= 0 {
			scoreStart := infoEnd + offset + tokenLen - 1
			if scoreChunk, _, balanced := extractBalanced(html, scoreStart); balanced {
				decodeEscapedJSON(scoreChunk, &score)
			}
		}

		team1 := getMap(info, "team1")
		team2 := getMap(info, "team2")
		venueInfo := getMap(info, "venueInfo")

		var venueParts []string
		for _, key := range []string{"ground", "city", "country"} {
			if part := getText(venueInfo, key); part != "" {
				venueParts = append(venueParts, part)
			}
		}

		startDate := int64(0)
		if value, present := getFloat(info, "startDate"); present {
			startDate = int64(value)
		}

		summary := matchSummary{
			matchID:    matchID,
			team1:      getText(team1, "teamName", "teamSName"),
			team2:      getText(team2, "teamName", "teamSName"),
			team1Short: getText(team1, "teamSName"),
			team2Short: getText(team2, "teamSName"),
			team1Score: formatTeamScore(getMap(score, "team1Score")),
			team2Score: formatTeamScore(getMap(score, "team2Score")),
			seriesName: getText(info, "seriesName"),
			matchDesc:  getText(info, "matchDesc"),
			format:     getText(info, "matchFormat"),
			state:      getText(info, "state"),
			status:     getText(info, "status"),
			venue:      strings.Join(venueParts, ", "),
			startDate:  startDate,
		}

		existing, found := summaries[matchID]
		if !found || (existing.team1Score == "" && summary.team1Score != "") {
			summaries[matchID] = summary
		}
	}

	return summaries
}

// formatStartDate renders an epoch-millisecond start date for display.
func formatStartDate(epochMs int64) string {
	if epochMs <= 0 {
		return "-"
	}
	return time.UnixMilli(epochMs).UTC().Format("Jan 02, 2006, 03:04 PM")
}
