package cricket

import (
	"regexp"
	"strconv"
	"strings"
)

// BaseURL is the source site root. Page paths below are relative to it.
const (
	BaseURL          = "https://www.cricbuzz.com"
	LiveListPath     = "/cricket-match/live-scores"
	UpcomingListPath = "/cricket-schedule/upcoming-series/international"
)

var matchIDFromURLRe = regexp.MustCompile(`/live-cricket-scores/(\d+)/`)

// ExtractMatchIDFromURL pulls the numeric match id out of a live-scores
// URL, 0 when the URL does not carry one.
func ExtractMatchIDFromURL(url string) int {
	m := matchIDFromURLRe.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return id
}

// ToScorecardURL maps a live-scores URL to its scorecard twin.
func ToScorecardURL(liveURL string) string {
	return strings.Replace(liveURL, "/live-cricket-scores/", "/live-cricket-scorecard/", 1)
}

// BuildLiveURL constructs a live-scores URL for a match id with a slug
// derived from the team names and description.
func BuildLiveURL(matchID int, team1, team2, matchDesc string) string {
	var parts []string
	for _, part := range []string{team1, "vs", team2, matchDesc} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return BaseURL + "/live-cricket-scores/" + strconv.Itoa(matchID) + "/" + slugify(strings.Join(parts, " "))
}

// CommentaryPath returns the ball-by-ball endpoint for a match; full
// selects the long-form variant.
func CommentaryPath(matchID string, full bool) string {
	if full {
		return "/match-api/" + matchID + "/commentary-full.json"
	}
	return "/match-api/" + matchID + "/commentary.json"
}
