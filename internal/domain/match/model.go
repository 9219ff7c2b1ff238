package match

// StatusType buckets a match for list partitioning.
type StatusType string

const (
	StatusLive     StatusType = "live"
	StatusComplete StatusType = "complete"
	StatusUpcoming StatusType = "upcoming"
)

// TeamSnapshot is one side of a match as shown in lists and headers.
// Score is free text ("187/4 (32.1)" or "Yet to bat"); FlagURL is empty
// when no country mapping exists for the team.
type TeamSnapshot struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Score     string `json:"score"`
	FlagURL   string `json:"flagUrl"`
}

// ListItem is one row of the live/upcoming/recent lists. ID is the numeric
// match identifier extracted from the source URL and is the identity key
// when reconciling duplicate rows.
type ListItem struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	MatchDesc  string       `json:"matchDesc"`
	Series     string       `json:"series"`
	Venue      string       `json:"venue"`
	Team1      TeamSnapshot `json:"team1"`
	Team2      TeamSnapshot `json:"team2"`
	Status     string       `json:"status"`
	State      string       `json:"state"`
	StatusType StatusType   `json:"statusType"`
	MatchURL   string       `json:"matchUrl"`
}

// ListData partitions matches by status type. Each list is sorted by id
// descending, which tracks recency on the source site.
type ListData struct {
	Live     []ListItem `json:"live"`
	Upcoming []ListItem `json:"upcoming"`
	Recent   []ListItem `json:"recent"`
}

// Batter is one scorecard row. Every stat is a display string with "-"
// meaning unknown, never empty or null.
type Batter struct {
	Name       string `json:"name"`
	Runs       string `json:"runs"`
	Balls      string `json:"balls"`
	Fours      string `json:"fours"`
	Sixes      string `json:"sixes"`
	StrikeRate string `json:"strikeRate"`
	Dismissal  string `json:"dismissal"`
}

// Bowler is one scorecard bowling row.
type Bowler struct {
	Name    string `json:"name"`
	Overs   string `json:"overs"`
	Maidens string `json:"maidens"`
	Runs    string `json:"runs"`
	Wickets string `json:"wickets"`
	Economy string `json:"economy"`
	Wides   string `json:"wides"`
	NoBalls string `json:"noBalls"`
}

// Innings is one completed or in-progress innings, in source order.
type Innings struct {
	InningsID     string   `json:"inningsId"`
	BattingTeam   string   `json:"battingTeam"`
	BowlingTeam   string   `json:"bowlingTeam"`
	ScoreLine     string   `json:"scoreLine"`
	RunRate       string   `json:"runRate"`
	ExtrasLine    string   `json:"extrasLine"`
	Batsmen       []Batter `json:"batsmen"`
	Bowlers       []Bowler `json:"bowlers"`
	FallOfWickets []string `json:"fallOfWickets"`
	YetToBat      []string `json:"yetToBat"`
}

// LiveBatter is an in-play batter. ID is fabricated from the name when the
// source carries no id, so it is only stable within one snapshot.
type LiveBatter struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Runs       string `json:"runs"`
	Balls      string `json:"balls"`
	Fours      string `json:"fours"`
	Sixes      string `json:"sixes"`
	StrikeRate string `json:"strikeRate"`
	OnStrike   bool   `json:"onStrike"`
}

// LiveBowler is an in-play bowler.
type LiveBowler struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Overs   string `json:"overs"`
	Maidens string `json:"maidens"`
	Runs    string `json:"runs"`
	Wickets string `json:"wickets"`
	Economy string `json:"economy"`
}

// Ball outcome kinds. Closed set; callers rely on it for display and for
// candidate scoring.
const (
	BallWicket = "wicket"
	BallFour   = "four"
	BallSix    = "six"
	BallExtra  = "extra"
	BallDot    = "dot"
	BallRun    = "run"
	BallOther  = "other"
)

// OverBall is a single classified delivery.
type OverBall struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

// LiveState is the volatile in-play snapshot. It is always optional and is
// replaced as a whole when a better candidate is found, never merged
// field by field.
type LiveState struct {
	Batters          []LiveBatter `json:"batters"`
	Bowler           *LiveBowler  `json:"bowler"`
	PreviousBowlers  []LiveBowler `json:"previousBowlers"`
	CurrentOverBalls []OverBall   `json:"currentOverBalls"`
	RecentBalls      []OverBall   `json:"recentBalls"`
	RecentBallsLabel string       `json:"recentBallsLabel"`
	CurrentOverLabel string       `json:"currentOverLabel"`
	CurrentRunRate   string       `json:"currentRunRate"`
	RequiredRunRate  string       `json:"requiredRunRate"`
}

// TeamPlayer is one squad member after reconciliation across sources.
type TeamPlayer struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BattingStyle string `json:"battingStyle"`
	BowlingStyle string `json:"bowlingStyle"`
	Captain      bool   `json:"captain"`
	Keeper       bool   `json:"keeper"`
	Substitute   bool   `json:"substitute"`
	ImageURL     string `json:"imageUrl"`
}

// WinPrediction is a percentage pair scraped from the match page, when the
// page carries one.
type WinPrediction struct {
	Team1Percent string `json:"team1Percent"`
	Team2Percent string `json:"team2Percent"`
}

// DetailData is the full match view.
type DetailData struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Series        string         `json:"series"`
	MatchDesc     string         `json:"matchDesc"`
	Format        string         `json:"format"`
	Venue         string         `json:"venue"`
	StartTime     string         `json:"startTime"`
	Status        string         `json:"status"`
	State         string         `json:"state"`
	Toss          string         `json:"toss"`
	Team1         TeamSnapshot   `json:"team1"`
	Team2         TeamSnapshot   `json:"team2"`
	Innings       []Innings      `json:"innings"`
	Team1Players  []TeamPlayer   `json:"team1Players"`
	Team2Players  []TeamPlayer   `json:"team2Players"`
	LiveState     *LiveState     `json:"liveState"`
	WinPrediction *WinPrediction `json:"winPrediction"`
}
