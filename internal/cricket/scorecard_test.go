package cricket

import (
	"reflect"
	"testing"
)

func TestShouldIncludeBatter(t *testing.T) {
	tests := []struct {
		name   string
		player map[string]any
		want   bool
	}{
		{name: "dismissed batter", player: map[string]any{"outDesc": "c Smith b Starc"}, want: true},
		{name: "did not bat filtered", player: map[string]any{"outDesc": "Did Not Bat"}, want: false},
		{name: "yet to bat filtered", player: map[string]any{"outDesc": "yet to bat"}, want: false},
		{name: "has runs", player: map[string]any{"runs": 4.0}, want: true},
		{name: "zero stats no dismissal", player: map[string]any{"runs": 0.0, "balls": 0.0}, want: false},
		{name: "empty row", player: map[string]any{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldIncludeBatter(tt.player); got != tt.want {
				t.Fatalf("shouldIncludeBatter=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestTeamNamesLikelyMatch(t *testing.T) {
	tests := []struct {
		name    string
		innings string
		team    string
		short   string
		want    bool
	}{
		{name: "exact full name", innings: "India", team: "India", short: "IND", want: true},
		{name: "exact short name", innings: "IND", team: "India", short: "IND", want: true},
		{name: "full name containment", innings: "India Women", team: "India", short: "IND", want: true},
		{name: "short name containment", innings: "South Africa", team: "South Africa XI", short: "SA", want: true},
		{name: "empty innings team", innings: "", team: "India", short: "IND", want: false},
		{name: "unrelated teams", innings: "Australia", team: "India", short: "IND", want: false},
		{name: "single letter short never matches by containment", innings: "Afghanistan", team: "A", short: "A", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := teamNamesLikelyMatch(tt.innings, tt.team, tt.short); got != tt.want {
				t.Fatalf("teamNamesLikelyMatch(%q, %q, %q)=%v want=%v", tt.innings, tt.team, tt.short, got, tt.want)
			}
		})
	}
}

func TestScoreLineFromDetails(t *testing.T) {
	full := map[string]any{"runs": 187.0, "wickets": 4.0, "overs": "19.4"}
	if got := scoreLineFromDetails(full); got != "187/4 (19.4 Overs)" {
		t.Fatalf("unexpected score line: %q", got)
	}

	if got := scoreLineFromDetails(map[string]any{}); got != "-/- (-)" {
		t.Fatalf("unexpected empty score line: %q", got)
	}
}

func TestGetScoreForTeam(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]string
		team   string
		short  string
		want   string
	}{
		{
			name:   "direct full name key",
			scores: map[string]string{"india": "250/5 (50 Overs)"},
			team:   "India", short: "IND",
			want: "250/5 (50 Overs)",
		},
		{
			name:   "direct short name key",
			scores: map[string]string{"ind": "250/5 (50 Overs)"},
			team:   "India", short: "IND",
			want: "250/5 (50 Overs)",
		},
		{
			name:   "containment fallback",
			scores: map[string]string{"indiawomen": "200/3 (40 Overs)"},
			team:   "India", short: "IND",
			want: "200/3 (40 Overs)",
		},
		{
			name:   "short keys never match by containment",
			scores: map[string]string{"southafrica": "180/6 (20 Overs)"},
			team:   "SA", short: "SA",
			want: "",
		},
		{
			name:   "no match",
			scores: map[string]string{"australia": "300/7 (50 Overs)"},
			team:   "India", short: "IND",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getScoreForTeam(tt.scores, tt.team, tt.short); got != tt.want {
				t.Fatalf("getScoreForTeam=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestFormatTeamScoresFromScorecard(t *testing.T) {
	scoreCard := []map[string]any{
		{
			"batTeamDetails": map[string]any{"batTeamName": "India", "batTeamShortName": "IND"},
			"scoreDetails":   map[string]any{"runs": 250.0, "wickets": 5.0, "overs": "50"},
		},
		{
			"batTeamDetails": map[string]any{"batTeamName": "India", "batTeamShortName": "IND"},
			"scoreDetails":   map[string]any{"runs": 80.0, "wickets": 2.0, "overs": "20"},
		},
	}

	scores := formatTeamScoresFromScorecard(scoreCard)
	if got := scores["india"]; got != "250/5 (50 Overs) & 80/2 (20 Overs)" {
		t.Fatalf("unexpected joined innings: %q", got)
	}
	if got := scores["ind"]; got != "250/5 (50 Overs) & 80/2 (20 Overs)" {
		t.Fatalf("expected short name keyed too, got %q", got)
	}
}

func TestInferYetToBatScore(t *testing.T) {
	singleInnings := []map[string]any{
		{"batTeamDetails": map[string]any{"batTeamName": "Australia"}},
	}

	if got := inferYetToBatScore(singleInnings, "India", "IND"); got != "Yet to bat" {
		t.Fatalf("expected yet to bat, got %q", got)
	}
	if got := inferYetToBatScore(singleInnings, "Australia", "AUS"); got != "" {
		t.Fatalf("batting team should not be yet to bat, got %q", got)
	}

	twoInnings := append(singleInnings, map[string]any{
		"batTeamDetails": map[string]any{"batTeamName": "India"},
	})
	if got := inferYetToBatScore(twoInnings, "India", "IND"); got != "" {
		t.Fatalf("expected empty for multi innings, got %q", got)
	}

	if got := inferYetToBatScore([]map[string]any{{}}, "India", "IND"); got != "" {
		t.Fatalf("expected empty for unknown batting team, got %q", got)
	}
}

func TestPickBestScoreCard(t *testing.T) {
	matching := []map[string]any{
		{"batTeamDetails": map[string]any{"batTeamName": "India"}},
		{"batTeamDetails": map[string]any{"batTeamName": "Australia"}},
	}
	unrelated := []map[string]any{
		{"batTeamDetails": map[string]any{"batTeamName": "Kent"}},
		{"batTeamDetails": map[string]any{"batTeamName": "Surrey"}},
	}

	best := pickBestScoreCard([][]map[string]any{unrelated, matching}, []string{"India", "Australia"})
	if !reflect.DeepEqual(best, matching) {
		t.Fatalf("expected the scorecard matching the expected teams")
	}

	if got := pickBestScoreCard(nil, []string{"India"}); got != nil {
		t.Fatalf("expected nil for no candidates")
	}
}

func TestPickBestScoreCardWeighsEveryTeamKey(t *testing.T) {
	// One innings naming both sides must outweigh a longer candidate that
	// only matches a single team.
	bothSides := []map[string]any{
		{
			"batTeamDetails":  map[string]any{"batTeamName": "India"},
			"bowlTeamDetails": map[string]any{"bowlTeamName": "Australia"},
		},
	}
	oneSide := []map[string]any{
		{"batTeamDetails": map[string]any{"batTeamName": "India"}},
		{"batTeamDetails": map[string]any{"batTeamName": "Kent"}},
	}

	best := pickBestScoreCard([][]map[string]any{oneSide, bothSides}, []string{"India", "Australia"})
	if !reflect.DeepEqual(best, bothSides) {
		t.Fatalf("expected the candidate matching both teams to win")
	}
}

func TestExtrasLine(t *testing.T) {
	if got := extrasLine(nil); got != "-" {
		t.Fatalf("expected dash for missing extras, got %q", got)
	}

	extras := map[string]any{
		"total": 12.0, "byes": 1.0, "legByes": 2.0, "wides": 8.0, "noBalls": 1.0,
	}
	want := "Total 12 (b 1, lb 2, w 8, nb 1, p 0)"
	if got := extrasLine(extras); got != want {
		t.Fatalf("extrasLine=%q want=%q", got, want)
	}
}

func TestToFallOfWickets(t *testing.T) {
	wicketsData := map[string]any{
		"wkt_2": map[string]any{"wktNbr": 2.0, "batName": "Kohli", "wktRuns": 74.0, "wktOver": "18.8"},
		"wkt_1": map[string]any{"wktNbr": 1.0, "batName": "Rohit", "wktRuns": 23.0, "wktOver": "4.3"},
	}

	lines := toFallOfWickets(wicketsData)
	want := []string{
		"1. Rohit - 23 (4.3)",
		"2. Kohli - 74 (19.2)",
	}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("toFallOfWickets=%v want=%v", lines, want)
	}
}

func TestToDisplayInnings(t *testing.T) {
	scoreCard := []map[string]any{{
		"inningsId": 1.0,
		"batTeamDetails": map[string]any{
			"batTeamName":      "India",
			"batTeamShortName": "IND",
			"batsmenData": map[string]any{
				"bat_1": map[string]any{
					"batName": "Rohit", "runs": 45.0, "balls": 30.0,
					"fours": 5.0, "sixes": 2.0, "strikeRate": 150.0,
					"outDesc": "c Smith b Starc", "isCaptain": true,
				},
				"bat_2": map[string]any{"batName": "Gill", "outDesc": "did not bat"},
			},
		},
		"bowlTeamDetails": map[string]any{
			"bowlTeamName":      "Australia",
			"bowlTeamShortName": "AUS",
			"bowlersData": map[string]any{
				"bowl_1": map[string]any{
					"bowlName": "Starc", "overs": "3.8", "maidens": 0.0,
					"runs": 32.0, "wickets": 2.0, "economy": 8.0,
				},
			},
		},
		"scoreDetails": map[string]any{"runs": 120.0, "wickets": 4.0, "overs": "15"},
		"extrasData":   map[string]any{"total": 7.0, "wides": 5.0},
		"wicketsData": map[string]any{
			"wkt_1": map[string]any{"wktNbr": 1.0, "batName": "Kohli", "wktRuns": 30.0, "wktOver": "6.2"},
		},
	}}

	innings := toDisplayInnings(scoreCard)
	if len(innings) != 1 {
		t.Fatalf("expected one innings, got %d", len(innings))
	}

	got := innings[0]
	if got.InningsID != "1" || got.BattingTeam != "India" || got.BowlingTeam != "Australia" {
		t.Fatalf("unexpected innings header: %+v", got)
	}
	if got.ScoreLine != "120/4 (15 Overs)" {
		t.Fatalf("unexpected score line: %q", got.ScoreLine)
	}
	if got.RunRate != "8.00" {
		t.Fatalf("unexpected run rate: %q", got.RunRate)
	}
	if got.ExtrasLine != "Total 7 (b 0, lb 0, w 5, nb 0, p 0)" {
		t.Fatalf("unexpected extras line: %q", got.ExtrasLine)
	}

	if len(got.Batsmen) != 1 {
		t.Fatalf("expected did-not-bat row filtered, got %d batsmen", len(got.Batsmen))
	}
	batter := got.Batsmen[0]
	if batter.Name != "Rohit (c)" {
		t.Fatalf("expected captain tag on name, got %q", batter.Name)
	}
	if batter.Runs != "45" || batter.Balls != "30" || batter.StrikeRate != "150" {
		t.Fatalf("unexpected batter stats: %+v", batter)
	}

	if len(got.Bowlers) != 1 {
		t.Fatalf("expected one bowler, got %d", len(got.Bowlers))
	}
	bowler := got.Bowlers[0]
	if bowler.Overs != "4.2" {
		t.Fatalf("expected overflowed overs normalized, got %q", bowler.Overs)
	}
	if bowler.Wickets != "2" || bowler.Wides != "-" {
		t.Fatalf("unexpected bowler stats: %+v", bowler)
	}

	if len(got.FallOfWickets) != 1 || got.FallOfWickets[0] != "1. Kohli - 30 (6.2)" {
		t.Fatalf("unexpected fall of wickets: %v", got.FallOfWickets)
	}
}
