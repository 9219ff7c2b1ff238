package cricket

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

var (
	htmlTagRe         = regexp.MustCompile(`<[^>]+>`)
	percentValueRe    = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)
	predictionContext = regexp.MustCompile(`(?i)(win[^.]{0,160}prediction[^.]{0,160}|win[^.]{0,160}probability[^.]{0,160}|prediction[^.]{0,120}win[^.]{0,120})`)
)

func normalizePercent(value string) string {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 || parsed > 100 {
		return ""
	}

	if parsed == float64(int64(parsed)) {
		return strconv.FormatInt(int64(parsed), 10) + "%"
	}
	rounded := strconv.FormatFloat(parsed, 'f', 1, 64)
	rounded = strings.TrimSuffix(rounded, ".0")
	return rounded + "%"
}

// readPercentNearLabel looks for a percentage within a short span before
// or after a team label.
func readPercentNearLabel(text, label string) string {
	if label == "" {
		return ""
	}

	escaped := regexp.QuoteMeta(label)
	patterns := []string{
		`(?i)` + escaped + `[^\d%]{0,24}(\d{1,3}(?:\.\d+)?)\s*%`,
		`(?i)(\d{1,3}(?:\.\d+)?)\s*%[^a-z0-9]{0,24}` + escaped,
	}

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		matched := re.FindStringSubmatch(text)
		if matched == nil {
			continue
		}
		if percent := normalizePercent(matched[1]); percent != "" {
			return percent
		}
	}

	return ""
}

func readPercentByTeam(text string, team match.TeamSnapshot) string {
	var candidates []string
	for _, value := range []string{team.ShortName, team.Name} {
		if cleaned := cleanText(value); cleaned != "" {
			candidates = append(candidates, cleaned)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	for _, candidate := range candidates {
		if found := readPercentNearLabel(text, candidate); found != "" {
			return found
		}
	}
	return ""
}

func extractTwoPercentsFromSnippet(snippet string) []string {
	seen := make(map[string]bool)
	var values []string

	for _, entry := range percentValueRe.FindAllStringSubmatch(snippet, -1) {
		percent := normalizePercent(entry[1])
		if percent == "" || seen[percent] {
			continue
		}
		seen[percent] = true
		values = append(values, percent)
		if len(values) == 2 {
			break
		}
	}

	return values
}

// isLikelyPair accepts two percentages whose sum is near 100. Rounded
// display values rarely sum exactly.
func isLikelyPair(team1, team2 string) bool {
	first, err1 := strconv.ParseFloat(strings.TrimSuffix(team1, "%"), 64)
	second, err2 := strconv.ParseFloat(strings.TrimSuffix(team2, "%"), 64)
	if err1 != nil || err2 != nil {
		return false
	}

	sum := first + second
	return sum >= 90 && sum <= 110
}

// parseWinPredictionFromHTML scrapes a win-probability pair from a match
// page. Team-label proximity is tried first, then any prediction-flavored
// sentence carrying two percentages that sum near 100.
func parseWinPredictionFromHTML(html string, team1, team2 match.TeamSnapshot) *match.WinPrediction {
	plainText := cleanText(htmlTagRe.ReplaceAllString(html, " "))
	if plainText == "" {
		return nil
	}

	team1Percent := readPercentByTeam(plainText, team1)
	team2Percent := readPercentByTeam(plainText, team2)

	if team1Percent != "" && team2Percent != "" && isLikelyPair(team1Percent, team2Percent) {
		return &match.WinPrediction{Team1Percent: team1Percent, Team2Percent: team2Percent}
	}

	for _, snippet := range predictionContext.FindAllString(plainText, -1) {
		values := extractTwoPercentsFromSnippet(snippet)
		if len(values) == 2 && isLikelyPair(values[0], values[1]) {
			return &match.WinPrediction{Team1Percent: values[0], Team2Percent: values[1]}
		}
	}

	return nil
}
