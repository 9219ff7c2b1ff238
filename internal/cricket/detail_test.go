package cricket

import (
	"strings"
	"testing"

	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

func TestParseOversFromScoreLine(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "187/4 (19.4 Overs)", want: "19.4"},
		{in: "250/5 (50 Overs)", want: "50"},
		{in: "-/- (-)", want: "-"},
		{in: "no parentheses", want: "-"},
	}

	for _, tt := range tests {
		if got := parseOversFromScoreLine(tt.in); got != tt.want {
			t.Fatalf("parseOversFromScoreLine(%q)=%q want=%q", tt.in, got, tt.want)
		}
	}
}

func TestNewDetailContext(t *testing.T) {
	ctx := NewDetailContext(118928, liveListPage, "")

	if ctx.link == nil {
		t.Fatalf("expected the anchor link resolved")
	}
	if ctx.summary == nil || ctx.summary.team1 != "India" {
		t.Fatalf("expected the embedded summary resolved: %+v", ctx.summary)
	}

	scorecardURLs := ctx.ScorecardURLs()
	if len(scorecardURLs) != 3 {
		t.Fatalf("expected anchor, synthetic and id-only candidates, got %v", scorecardURLs)
	}
	if scorecardURLs[0] != BaseURL+"/live-cricket-scorecard/118928/ind-vs-aus-3rd-odi" {
		t.Fatalf("unexpected best candidate: %q", scorecardURLs[0])
	}
	if scorecardURLs[2] != BaseURL+"/live-cricket-scorecard/118928" {
		t.Fatalf("unexpected last-resort candidate: %q", scorecardURLs[2])
	}

	liveURLs := ctx.LivePageURLs()
	if liveURLs[0] != BaseURL+"/live-cricket-scores/118928/ind-vs-aus-3rd-odi" {
		t.Fatalf("unexpected live page candidate: %q", liveURLs[0])
	}
}

func TestNewDetailContextUnknownID(t *testing.T) {
	ctx := NewDetailContext(424242, liveListPage, "")

	if ctx.link != nil || ctx.summary != nil {
		t.Fatalf("expected nothing resolved for an unknown id")
	}

	urls := ctx.ScorecardURLs()
	if len(urls) != 1 || !strings.HasSuffix(urls[0], "/live-cricket-scorecard/424242") {
		t.Fatalf("expected only the id-only fallback, got %v", urls)
	}
}

func TestDeriveLiveStateFromInnings(t *testing.T) {
	innings := []match.Innings{{
		ScoreLine: "120/4 (15 Overs)",
		RunRate:   "8.00",
		Batsmen: []match.Batter{
			{Name: "Virat Kohli", Runs: "54", Balls: "39", Dismissal: "batting"},
			{Name: "KL Rahul", Runs: "12", Dismissal: "c Smith b Starc"},
		},
		Bowlers: []match.Bowler{
			{Name: "Mitchell Starc", Overs: "8", Runs: "40", Wickets: "2"},
			{Name: "Pat Cummins", Overs: "7", Runs: "35", Wickets: "1"},
		},
	}}

	state := deriveLiveStateFromInnings(innings)
	if state == nil {
		t.Fatalf("expected a state")
	}

	if len(state.Batters) != 1 || state.Batters[0].Name != "Virat Kohli" {
		t.Fatalf("only active batters should be kept: %+v", state.Batters)
	}
	if !state.Batters[0].OnStrike {
		t.Fatalf("the first batter takes strike")
	}

	if state.Bowler == nil || state.Bowler.Name != "Mitchell Starc" {
		t.Fatalf("unexpected bowler: %+v", state.Bowler)
	}
	if len(state.PreviousBowlers) != 1 || state.PreviousBowlers[0].Name != "Pat Cummins" {
		t.Fatalf("unexpected previous bowlers: %+v", state.PreviousBowlers)
	}

	if state.CurrentOverLabel != "15" || state.CurrentRunRate != "8.00" {
		t.Fatalf("unexpected over context: %+v", state)
	}

	if got := deriveLiveStateFromInnings(nil); got != nil {
		t.Fatalf("expected nil without innings")
	}
}

func TestAddYetToBat(t *testing.T) {
	innings := []match.Innings{{
		BattingTeam: "India",
		Batsmen:     []match.Batter{{Name: "Rohit Sharma"}},
	}}
	team1Players := []match.TeamPlayer{
		{Name: "Rohit Sharma"},
		{Name: "Virat Kohli"},
		{Name: "Net Bowler", Substitute: true},
	}

	result := addYetToBat(innings, "India", "Australia", team1Players, nil)
	if len(result) != 1 {
		t.Fatalf("expected one innings")
	}

	if len(result[0].YetToBat) != 1 || result[0].YetToBat[0] != "Virat Kohli" {
		t.Fatalf("unexpected yet to bat: %v", result[0].YetToBat)
	}
}

const scorecardPage = `<script>var s = {"matchHeader":{"matchId":118928,"state":"In Progress","status":"Australia need 54 runs","matchFormat":"ODI","seriesDesc":"Australia tour of India","matchDescription":"3rd ODI","team1":{"name":"India","shortName":"IND"},"team2":{"name":"Australia","shortName":"AUS"},"tossResults":{"tossWinnerName":"India","decision":"bat"},"venue":{"name":"Wankhede","city":"Mumbai"}},"scoreCard":[{"inningsId":1,"batTeamDetails":{"batTeamName":"India","batTeamShortName":"IND","batsmenData":{"bat_1":{"batName":"Virat Kohli","runs":54,"balls":39,"outDesc":"batting"}}},"bowlTeamDetails":{"bowlTeamName":"Australia","bowlTeamShortName":"AUS","bowlersData":{"bowl_1":{"bowlName":"Mitchell Starc","overs":"8","runs":40,"wickets":2}}},"scoreDetails":{"runs":250,"wickets":5,"overs":"50"}}]};</script>`

func TestAssembleMatchDetail(t *testing.T) {
	ctx := NewDetailContext(118928, liveListPage, "")

	detail := AssembleMatchDetail(ctx, scorecardPage, "", nil)

	if detail.ID != "118928" {
		t.Fatalf("unexpected id: %q", detail.ID)
	}
	if detail.Title != "India vs Australia, 3rd ODI" {
		t.Fatalf("unexpected title: %q", detail.Title)
	}
	if detail.Series != "Australia tour of India" || detail.Format != "ODI" {
		t.Fatalf("unexpected header fields: %+v", detail)
	}
	if detail.Venue != "Wankhede, Mumbai" {
		t.Fatalf("unexpected venue: %q", detail.Venue)
	}
	if detail.Toss != "India opted to bat" {
		t.Fatalf("unexpected toss: %q", detail.Toss)
	}
	if detail.Status != "Australia need 54 runs" {
		t.Fatalf("unexpected status: %q", detail.Status)
	}

	if detail.Team1.Score != "250/5 (50 Overs)" {
		t.Fatalf("unexpected team1 score: %q", detail.Team1.Score)
	}
	// The scorecard has no second innings, so the list summary fills it.
	if detail.Team2.Score != "197/4 (42.3 Overs)" {
		t.Fatalf("unexpected team2 score: %q", detail.Team2.Score)
	}

	if len(detail.Innings) != 1 || detail.Innings[0].BattingTeam != "India" {
		t.Fatalf("unexpected innings: %+v", detail.Innings)
	}

	if detail.LiveState == nil {
		t.Fatalf("a live match with batting rows must carry a live state")
	}
	if len(detail.LiveState.Batters) != 1 || detail.LiveState.Batters[0].Name != "Virat Kohli" {
		t.Fatalf("unexpected live batters: %+v", detail.LiveState.Batters)
	}
	if detail.LiveState.Bowler == nil || detail.LiveState.Bowler.Name != "Mitchell Starc" {
		t.Fatalf("unexpected live bowler: %+v", detail.LiveState.Bowler)
	}
	if detail.LiveState.CurrentRunRate != "5.00" {
		t.Fatalf("unexpected run rate: %q", detail.LiveState.CurrentRunRate)
	}
}
