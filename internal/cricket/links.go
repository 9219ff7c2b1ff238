package cricket

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// matchLink is a (title, url) pair harvested from a list page.
type matchLink struct {
	title string
	url   string
}

// titleMeta is the structured reading of a link title like
// "India vs Australia, 3rd ODI - India won by 5 wickets".
type titleMeta struct {
	team1     string
	team2     string
	matchDesc string
	status    string
}

var (
	liveScoresPathRe = regexp.MustCompile(`^/live-cricket-scores/\d+/`)
	anchorHrefRes    = []*regexp.Regexp{
		regexp.MustCompile(`<a\b[^>]*href="(/live-cricket-scores/\d+/[^"]+)"[^>]*>`),
		regexp.MustCompile(`<a\b[^>]*href='(/live-cricket-scores/\d+/[^']+)'[^>]*>`),
	}
	anchorTitleRes = []*regexp.Regexp{
		regexp.MustCompile(`\btitle="([^"]+)"`),
		regexp.MustCompile(`\btitle='([^']+)'`),
	}
	pairedTitleHrefRe = regexp.MustCompile(`title="([^"]+)"\s+href="(/live-cricket-scores/\d+/[^"]+)"`)
	pairedHrefTitleRe = regexp.MustCompile(`href="(/live-cricket-scores/\d+/[^"]+)"\s+title="([^"]+)"`)
	teamsVsRe         = regexp.MustCompile(`(?i)^(.+?)\s+vs\s+(.+)$`)
)

// parseMatchLinks collects live-scores anchors from a list page. Anchors
// are read through the DOM first, then raw regex passes catch links that
// sit inside escaped script fragments the DOM parse does not surface.
// Bare "live score" titles are dropped; per URL the longest title wins.
func parseMatchLinks(html string) []matchLink {
	byURL := make(map[string]matchLink)
	var order []string

	addLink := func(path, rawTitle string) {
		path = strings.TrimSpace(path)
		if !strings.Contains(path, "/live-cricket-scores/") {
			return
		}

		url := BaseURL + path
		title := rawTitle
		if title == "" {
			fallback := liveScoresPathRe.ReplaceAllString(path, "")
			fallback = strings.TrimSuffix(fallback, "/")
			title = strings.ReplaceAll(fallback, "-", " ")
		}
		title = cleanText(title)

		if title == "" || strings.EqualFold(title, "live score") {
			return
		}

		existing, found := byURL[url]
		if !found {
			byURL[url] = matchLink{title: title, url: url}
			order = append(order, url)
			return
		}
		if len(title) > len(existing.title) {
			byURL[url] = matchLink{title: title, url: url}
		}
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find(`a[href*="/live-cricket-scores/"]`).Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			title, hasTitle := sel.Attr("title")
			if !hasTitle {
				title = sel.Text()
			}
			addLink(href, title)
		})
	}

	for _, pattern := range anchorHrefRes {
		for _, m := range pattern.FindAllStringSubmatch(html, -1) {
			tag, path := m[0], m[1]
			title := ""
			for _, titleRe := range anchorTitleRes {
				if tm := titleRe.FindStringSubmatch(tag); tm != nil {
					title = tm[1]
					break
				}
			}
			addLink(path, title)
		}
	}

	for _, m := range pairedTitleHrefRe.FindAllStringSubmatch(html, -1) {
		addLink(m[2], m[1])
	}
	for _, m := range pairedHrefTitleRe.FindAllStringSubmatch(html, -1) {
		addLink(m[1], m[2])
	}

	links := make([]matchLink, 0, len(order))
	for _, url := range order {
		links = append(links, byURL[url])
	}
	return links
}

// parseTitleMeta splits a link title into teams, description and status.
// " - " separates the status tail, the first "," separates teams from the
// description.
func parseTitleMeta(title string) titleMeta {
	beforeStatus, statusPart, _ := strings.Cut(title, " - ")
	status := strings.TrimSpace(statusPart)

	teamsText, descPart, _ := strings.Cut(beforeStatus, ",")
	matchDesc := strings.TrimSpace(descPart)

	meta := titleMeta{matchDesc: matchDesc, status: status}

	if vs := teamsVsRe.FindStringSubmatch(teamsText); vs != nil {
		meta.team1 = cleanText(vs[1])
		meta.team2 = cleanText(vs[2])
	}

	return meta
}

// normalizeTitle rewrites a title's description part with a better one
// when available.
func normalizeTitle(title, matchDesc string) string {
	if matchDesc == "" {
		return title
	}
	teamsPart, _, _ := strings.Cut(title, ",")
	return strings.TrimSpace(teamsPart) + ", " + matchDesc
}

// getShortName derives a short display name: first three letters for a
// single word, up to three initials otherwise.
func getShortName(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}

	if len(words) == 1 {
		runes := []rune(words[0])
		if len(runes) > 3 {
			runes = runes[:3]
		}
		return strings.ToUpper(string(runes))
	}

	var initials []rune
	for _, word := range words {
		first, _ := utf8.DecodeRuneInString(word)
		if first == utf8.RuneError {
			continue
		}
		initials = append(initials, first)
		if len(initials) == 3 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}
