package cricket

import (
	"testing"

	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

func TestBuildMatchItem(t *testing.T) {
	link := matchLink{
		title: "India vs Australia, 3rd ODI - India won by 5 wickets",
		url:   BaseURL + "/live-cricket-scores/118928/ind-vs-aus-3rd-odi",
	}

	item, ok := buildMatchItem(link, nil)
	if !ok {
		t.Fatalf("expected item for a valid url")
	}

	if item.ID != "118928" {
		t.Fatalf("unexpected id: %q", item.ID)
	}
	if item.Title != "India vs Australia, 3rd ODI" {
		t.Fatalf("unexpected title: %q", item.Title)
	}
	if item.Team1.Name != "India" || item.Team1.ShortName != "IND" {
		t.Fatalf("unexpected team1: %+v", item.Team1)
	}
	if item.Team2.Name != "Australia" || item.Team2.ShortName != "AUS" {
		t.Fatalf("unexpected team2: %+v", item.Team2)
	}
	if item.Status != "India won by 5 wickets" {
		t.Fatalf("unexpected status: %q", item.Status)
	}
	if item.StatusType != match.StatusComplete {
		t.Fatalf("expected complete status type, got %q", item.StatusType)
	}
	if item.MatchURL != link.url {
		t.Fatalf("unexpected match url: %q", item.MatchURL)
	}
}

func TestBuildMatchItemSummaryWins(t *testing.T) {
	link := matchLink{
		title: "Ind vs Aus",
		url:   BaseURL + "/live-cricket-scores/118928/ind-vs-aus",
	}
	summary := &matchSummary{
		matchID:    118928,
		team1:      "India",
		team2:      "Australia",
		team1Short: "IND",
		team2Short: "AUS",
		team1Score: "250/5 (50 Overs)",
		seriesName: "Australia tour of India",
		matchDesc:  "3rd ODI",
		state:      "inprogress",
		status:     "Australia need 54 runs",
		venue:      "Wankhede, Mumbai",
	}

	item, ok := buildMatchItem(link, summary)
	if !ok {
		t.Fatalf("expected item")
	}

	if item.Team1.Name != "India" || item.Team1.Score != "250/5 (50 Overs)" {
		t.Fatalf("summary fields should win: %+v", item.Team1)
	}
	if item.Series != "Australia tour of India" || item.Venue != "Wankhede, Mumbai" {
		t.Fatalf("unexpected series or venue: %+v", item)
	}
	if item.Status != "Australia need 54 runs" {
		t.Fatalf("unexpected status: %q", item.Status)
	}
	if item.StatusType != match.StatusLive {
		t.Fatalf("a score on the board should classify live, got %q", item.StatusType)
	}
}

func TestBuildMatchItemRejectsURLWithoutID(t *testing.T) {
	link := matchLink{title: "India vs Australia", url: BaseURL + "/cricket-match/live-scores"}
	if _, ok := buildMatchItem(link, nil); ok {
		t.Fatalf("expected no item for a url without a match id")
	}
}

func TestPickBetterMatch(t *testing.T) {
	flat := match.ListItem{ID: "1", Status: "Match starts at 10 AM"}
	live := match.ListItem{ID: "1", StatusType: match.StatusLive, Status: "Day 1"}

	if got := pickBetterMatch(flat, live); got.StatusType != match.StatusLive {
		t.Fatalf("live row should beat a flat one")
	}
	if got := pickBetterMatch(live, flat); got.StatusType != match.StatusLive {
		t.Fatalf("live row should be kept against a flat one")
	}

	sparse := match.ListItem{ID: "2", Status: "preview"}
	rich := match.ListItem{ID: "2", Status: "preview", Series: "The Ashes", Venue: "Lord's"}
	if got := pickBetterMatch(sparse, rich); got.Series != "The Ashes" {
		t.Fatalf("row with more filled fields should win")
	}
	if got := pickBetterMatch(rich, sparse); got.Series != "The Ashes" {
		t.Fatalf("existing row should be kept on ties or worse")
	}
}

func TestCountFilledFields(t *testing.T) {
	item := match.ListItem{
		Series: "The Ashes",
		Venue:  "Lord's",
		Team1:  match.TeamSnapshot{Name: "England", Score: "120/2 (30 Overs)"},
		Status: "Day 1",
	}
	if got := countFilledFields(item); got != 5 {
		t.Fatalf("countFilledFields=%d want=5", got)
	}
	if got := countFilledFields(match.ListItem{}); got != 0 {
		t.Fatalf("expected zero for an empty item, got %d", got)
	}
}

func TestUpsertMatch(t *testing.T) {
	all := make(map[string]match.ListItem)

	first := match.ListItem{ID: "10", Status: "preview"}
	upsertMatch(all, first)
	if len(all) != 1 {
		t.Fatalf("expected one entry")
	}

	richer := match.ListItem{ID: "10", Status: "preview", Series: "Asia Cup"}
	upsertMatch(all, richer)
	if all["10"].Series != "Asia Cup" {
		t.Fatalf("expected the richer row to replace the sparse one")
	}
}

const liveListPage = `<html><body>
<a href="/live-cricket-scores/118928/ind-vs-aus-3rd-odi" title="India vs Australia, 3rd ODI">match</a>
<a href="/live-cricket-scores/118920/ind-vs-aus-2nd-odi" title="India vs Australia, 2nd ODI - India won by 5 wickets">match</a>
<script>window.__state = {"matchInfo":{"matchId":118928,"seriesName":"Australia tour of India","matchDesc":"3rd ODI","matchFormat":"ODI","state":"inprogress","status":"Australia need 54 runs","team1":{"teamName":"India","teamSName":"IND"},"team2":{"teamName":"Australia","teamSName":"AUS"},"venueInfo":{"ground":"Wankhede","city":"Mumbai"}},"matchScore":{"team1Score":{"inngs1":{"runs":250,"wickets":5,"overs":"50"}},"team2Score":{"inngs1":{"runs":197,"wickets":4,"overs":"42.3"}}}};</script>
</body></html>`

const upcomingListPage = `<html><body>
<script>window.__state = {"matchInfo":{"matchId":119000,"seriesName":"Pakistan tour of England","matchDesc":"1st Test","matchFormat":"TEST","state":"preview","status":"Match starts at 10:00 AM","team1":{"teamName":"England","teamSName":"ENG"},"team2":{"teamName":"Pakistan","teamSName":"PAK"},"venueInfo":{"ground":"Lord's","city":"London"}}};</script>
</body></html>`

func TestBuildMatchesData(t *testing.T) {
	data, err := BuildMatchesData(liveListPage, upcomingListPage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data.Live) != 1 || len(data.Upcoming) != 1 || len(data.Recent) != 1 {
		t.Fatalf("unexpected partition sizes: live=%d upcoming=%d recent=%d",
			len(data.Live), len(data.Upcoming), len(data.Recent))
	}

	live := data.Live[0]
	if live.ID != "118928" {
		t.Fatalf("unexpected live id: %q", live.ID)
	}
	if live.Team1.Score != "250/5 (50 Overs)" || live.Team2.Score != "197/4 (42.3 Overs)" {
		t.Fatalf("unexpected live scores: %q / %q", live.Team1.Score, live.Team2.Score)
	}
	if live.Status != "Australia need 54 runs" {
		t.Fatalf("unexpected live status: %q", live.Status)
	}
	if live.MatchURL != BaseURL+"/live-cricket-scores/118928/ind-vs-aus-3rd-odi" {
		t.Fatalf("anchor url should be kept for linked matches: %q", live.MatchURL)
	}

	upcoming := data.Upcoming[0]
	if upcoming.ID != "119000" {
		t.Fatalf("unexpected upcoming id: %q", upcoming.ID)
	}
	if upcoming.Venue != "Lord's, London" {
		t.Fatalf("unexpected venue: %q", upcoming.Venue)
	}
	if upcoming.MatchURL != BaseURL+"/live-cricket-scores/119000/england-vs-pakistan-1st-test" {
		t.Fatalf("expected reconstructed url for unlinked matches: %q", upcoming.MatchURL)
	}

	if data.Recent[0].ID != "118920" {
		t.Fatalf("unexpected recent id: %q", data.Recent[0].ID)
	}
}

func TestBuildMatchesDataSingleSource(t *testing.T) {
	data, err := BuildMatchesData("", upcomingListPage)
	if err != nil {
		t.Fatalf("one page is enough: %v", err)
	}
	if len(data.Upcoming) != 1 {
		t.Fatalf("expected the upcoming match, got %d", len(data.Upcoming))
	}
}

func TestBuildMatchesDataNoSources(t *testing.T) {
	if _, err := BuildMatchesData("", ""); err == nil {
		t.Fatalf("expected an error when both pages are missing")
	}
}
