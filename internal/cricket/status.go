package cricket

import (
	"regexp"
	"strings"

	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

var (
	genericStatusRe  = regexp.MustCompile(`(?i)status unavailable`)
	tieBreakerRe     = regexp.MustCompile(`super over|bowl out|eliminator`)
	resultRe         = regexp.MustCompile(`(won by|won|beats|beat|defeat|defeated|match over|result|by\s+\d+\s+runs|by\s+\d+\s+wickets)`)
	tiedRe           = regexp.MustCompile(`(match tied|tied|tie)`)
	inProgressRe     = regexp.MustCompile(`(stumps|day\s*\d|innings|need|trail|lead|lunch|tea)`)
	completeTextRe   = regexp.MustCompile(`(won|drawn|tied|abandoned|abandon|no result|match over|complete|completed)`)
	upcomingTextRe   = regexp.MustCompile(`(preview|upcoming|yet to begin|scheduled|schedule|starts at|start at)`)
	liveKeywordsRe   = regexp.MustCompile(`(stumps|day\s*\d|innings|need|trail|lead|lunch|tea|live)`)
)

func normalizeStatus(value string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(value, " "))
}

// statusPriority scores how informative a status string is. Longer is
// better as a baseline; decisive phrases outrank in-progress detail, and
// tie-breaker phases outrank everything since the site keeps the stale
// "match tied" line alongside them.
func statusPriority(status string) int {
	normalized := strings.ToLower(status)
	if normalized == "" || normalized == "-" {
		return -1
	}

	score := len(normalized)
	if tieBreakerRe.MatchString(normalized) {
		score += 120
	}
	if resultRe.MatchString(normalized) {
		score += 60
	}
	if tiedRe.MatchString(normalized) {
		score += 8
	}
	if inProgressRe.MatchString(normalized) {
		score += 20
	}

	return score
}

// pickBestStatus selects the most informative candidate, deduplicating
// case-insensitively. Returns "-" when nothing usable is present.
func pickBestStatus(candidates ...string) string {
	seen := make(map[string]bool, len(candidates))
	best := ""
	bestScore := -1

	for _, value := range candidates {
		normalized := normalizeStatus(value)
		if normalized == "" {
			continue
		}
		lower := strings.ToLower(normalized)
		if seen[lower] {
			continue
		}
		seen[lower] = true

		if score := statusPriority(normalized); score > bestScore {
			best = normalized
			bestScore = score
		}
	}

	if best == "" {
		return "-"
	}
	return best
}

// hasUsableStatus reports whether a status carries any signal. Placeholder
// rows ("-", "Status unavailable") are filtered out of the lists.
func hasUsableStatus(status string) bool {
	normalized := normalizeStatus(status)
	return normalized != "" && normalized != "-" && !genericStatusRe.MatchString(normalized)
}

// deriveStatusType classifies a match from its free-text status, state and
// title. Completion phrases win over everything, explicit scheduling
// phrases come next, then any score at all implies live.
func deriveStatusType(status, state, title string, hasScore bool) match.StatusType {
	text := strings.ToLower(status + " " + state + " " + title)

	if completeTextRe.MatchString(text) {
		return match.StatusComplete
	}
	if upcomingTextRe.MatchString(text) {
		return match.StatusUpcoming
	}
	if hasScore {
		return match.StatusLive
	}
	if liveKeywordsRe.MatchString(text) {
		return match.StatusLive
	}

	return match.StatusUpcoming
}
