package cricket

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/cricket-widget/internal/domain/match"
)

var captainKeeperSuffixRe = regexp.MustCompile(`(?i)\s*\((?:c|wk|c,\s*wk|wk,\s*c)\)\s*$`)

// normalizePlayerName strips the "(c)" / "(wk)" suffixes the site appends
// to names in scorecard rows.
func normalizePlayerName(value string) string {
	return strings.TrimSpace(captainKeeperSuffixRe.ReplaceAllString(value, ""))
}

// normalizePlayerKey is the merge identity for players. Ids are frequently
// missing from one of the overlapping sources, so the normalized name is
// the key, not the id.
func normalizePlayerKey(value string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(normalizePlayerName(value)), " ")
}

func toURLCandidate(value any) string {
	candidate, ok := value.(string)
	if !ok {
		return ""
	}
	candidate = strings.TrimSpace(candidate)

	switch {
	case candidate == "":
		return ""
	case strings.HasPrefix(candidate, "http://"), strings.HasPrefix(candidate, "https://"):
		return candidate
	case strings.HasPrefix(candidate, "//"):
		return "https:" + candidate
	case strings.HasPrefix(candidate, "/"):
		return BaseURL + candidate
	default:
		return ""
	}
}

func buildImageFromID(value any) string {
	parsed, err := strconv.ParseFloat(stringify(value), 64)
	if err != nil || parsed <= 0 {
		return ""
	}
	return BaseURL + "/a/img/v1/72x72/i1/c" + strconv.FormatInt(int64(parsed), 10) + "/i.jpg"
}

func playerImageURL(player map[string]any) string {
	for _, key := range []string{"imageUrl", "imgUrl", "image", "headshot"} {
		if direct := toURLCandidate(player[key]); direct != "" {
			return direct
		}
	}
	for _, key := range []string{"faceImageId", "face_image_id", "imageId", "image_id", "imageID", "id"} {
		if built := buildImageFromID(player[key]); built != "" {
			return built
		}
	}
	return ""
}

// normalizeRawPlayers accepts both the array and id-keyed map encodings of
// a player catalog.
func normalizeRawPlayers(value any) []map[string]any {
	var players []map[string]any

	switch typed := value.(type) {
	case []any:
		for _, entry := range typed {
			if player := asMap(entry); player != nil {
				players = append(players, player)
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if player := asMap(typed[key]); player != nil {
				players = append(players, player)
			}
		}
	}

	return players
}

// toTeamPlayers normalizes raw player records into the canonical shape.
// Field probes are ordered by observed reliability across page variants.
func toTeamPlayers(value any) []match.TeamPlayer {
	raw := normalizeRawPlayers(value)
	players := make([]match.TeamPlayer, 0, len(raw))

	for _, player := range raw {
		id := getText(player, "id")
		if id == "" {
			id = "-"
		}
		name := getText(player, "fullName", "name", "f_name", "shortName", "nickName")
		if name == "" {
			name = "Unknown"
		}

		players = append(players, match.TeamPlayer{
			ID:           id,
			Name:         name,
			Role:         statText(player, "role", "specialist", "roleDesc"),
			BattingStyle: statText(player, "battingStyle", "batStyle", "bat_style"),
			BowlingStyle: statText(player, "bowlingStyle", "bowlStyle", "bowl_style"),
			Captain:      getBool(player, "isCaptain", "captain"),
			Keeper:       getBool(player, "isKeeper", "keeper"),
			Substitute:   getBool(player, "substitute"),
			ImageURL:     playerImageURL(player),
		})
	}

	return players
}

// scorePlayerQuality rates record completeness for merge conflicts.
func scorePlayerQuality(player match.TeamPlayer) int {
	score := 0
	if player.ID != "" && player.ID != "-" {
		score += 2
	}
	if player.Role != "" && player.Role != "-" {
		score += 2
	}
	if player.BattingStyle != "" && player.BattingStyle != "-" {
		score++
	}
	if player.BowlingStyle != "" && player.BowlingStyle != "-" {
		score++
	}
	if player.ImageURL != "" {
		score += 2
	}
	if player.Captain {
		score++
	}
	if player.Keeper {
		score++
	}
	return score
}

// mergeOnePlayer resolves two records for the same player. The richer
// record wins per field with the other side backfilling, and boolean
// flags union: a flag once observed true is never lost.
func mergeOnePlayer(existing, incoming match.TeamPlayer) match.TeamPlayer {
	better, other := existing, incoming
	if scorePlayerQuality(incoming) > scorePlayerQuality(existing) {
		better, other = incoming, existing
	}

	pick := func(preferred, fallback string) string {
		if preferred != "-" && preferred != "" {
			return preferred
		}
		return fallback
	}

	name := better.Name
	if name == "" {
		name = other.Name
	}
	if name == "" {
		name = "Unknown"
	}

	imageURL := better.ImageURL
	if imageURL == "" {
		imageURL = other.ImageURL
	}

	return match.TeamPlayer{
		ID:           pick(better.ID, other.ID),
		Name:         name,
		Role:         pick(better.Role, other.Role),
		BattingStyle: pick(better.BattingStyle, other.BattingStyle),
		BowlingStyle: pick(better.BowlingStyle, other.BowlingStyle),
		Captain:      existing.Captain || incoming.Captain,
		Keeper:       existing.Keeper || incoming.Keeper,
		Substitute:   existing.Substitute || incoming.Substitute,
		ImageURL:     imageURL,
	}
}

// mergeTeamPlayers merges two rosters keyed by normalized name. Fallback
// goes in first so primary wins on conflict, flags excepted.
func mergeTeamPlayers(primary, fallback []match.TeamPlayer) []match.TeamPlayer {
	merged := make(map[string]match.TeamPlayer)
	var order []string

	mergeOne := func(player match.TeamPlayer) {
		key := normalizePlayerKey(player.Name)
		existing, found := merged[key]
		if !found {
			merged[key] = player
			order = append(order, key)
			return
		}
		merged[key] = mergeOnePlayer(existing, player)
	}

	for _, player := range fallback {
		mergeOne(player)
	}
	for _, player := range primary {
		mergeOne(player)
	}

	result := make([]match.TeamPlayer, 0, len(order))
	for _, key := range order {
		result = append(result, merged[key])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

type playerAccumulator struct {
	name     string
	captain  bool
	keeper   bool
	batted   bool
	bowled   bool
	imageURL string
}

func roleFromAccumulator(player playerAccumulator) string {
	switch {
	case player.batted && player.bowled:
		return "All-rounder"
	case player.bowled:
		return "Bowler"
	case player.batted:
		return "Batter"
	default:
		return "-"
	}
}

// fallbackPlayersFromInnings reconstructs a squad purely from scorecard
// blocks, attributing roles from which datasets a name appears in. Lower
// confidence than an explicit roster; used only to fill gaps. Ids are
// fabricated per team and are not stable across polls.
func fallbackPlayersFromInnings(scoreCard []map[string]any, teamName string) []match.TeamPlayer {
	teamKey := normalizeKey(teamName)
	accumulators := make(map[string]*playerAccumulator)
	var order []string

	upsert := func(playerName string, captain, keeper, batted, bowled bool, imageURL string) {
		cleaned := normalizePlayerName(playerName)
		if cleaned == "" {
			return
		}
		key := normalizePlayerKey(cleaned)

		existing, found := accumulators[key]
		if !found {
			existing = &playerAccumulator{name: cleaned}
			accumulators[key] = existing
			order = append(order, key)
		}
		existing.captain = existing.captain || captain
		existing.keeper = existing.keeper || keeper
		existing.batted = existing.batted || batted
		existing.bowled = existing.bowled || bowled
		if existing.imageURL == "" {
			existing.imageURL = imageURL
		}
	}

	for _, innings := range scoreCard {
		batDetails := getMap(innings, "batTeamDetails")
		bowlDetails := getMap(innings, "bowlTeamDetails")

		isBattingTeam := normalizeKey(getText(batDetails, "batTeamName", "batTeamShortName")) == teamKey
		isBowlingTeam := normalizeKey(getText(bowlDetails, "bowlTeamName", "bowlTeamShortName")) == teamKey

		if isBattingTeam {
			for _, entry := range valuesByNumericSuffix(getMap(batDetails, "batsmenData")) {
				batter := asMap(entry)
				if batter == nil {
					continue
				}
				imageURL := buildImageFromID(batter["id"])
				if imageURL == "" {
					imageURL = buildImageFromID(batter["batId"])
				}
				upsert(getText(batter, "batName"),
					getBool(batter, "isCaptain"), getBool(batter, "isKeeper"), true, false, imageURL)
			}
		}

		if isBowlingTeam {
			for _, entry := range valuesByNumericSuffix(getMap(bowlDetails, "bowlersData")) {
				bowler := asMap(entry)
				if bowler == nil {
					continue
				}
				imageURL := buildImageFromID(bowler["id"])
				if imageURL == "" {
					imageURL = buildImageFromID(bowler["bowlId"])
				}
				upsert(getText(bowler, "bowlName"), false, false, false, true, imageURL)
			}
		}

		if isBattingTeam {
			for _, entry := range valuesByNumericSuffix(getMap(innings, "wicketsData")) {
				wicket := asMap(entry)
				if wicket == nil {
					continue
				}
				upsert(getText(wicket, "batName"), false, false, true, false, "")
			}
		}
	}

	players := make([]playerAccumulator, 0, len(order))
	for _, key := range order {
		players = append(players, *accumulators[key])
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].name < players[j].name
	})

	result := make([]match.TeamPlayer, 0, len(players))
	for index, player := range players {
		result = append(result, match.TeamPlayer{
			ID:           teamKey + "-" + strconv.Itoa(index+1),
			Name:         player.name,
			Role:         roleFromAccumulator(player),
			BattingStyle: "-",
			BowlingStyle: "-",
			Captain:      player.captain,
			Keeper:       player.keeper,
			ImageURL:     player.imageURL,
		})
	}
	return result
}

// collectPlayersFromTeamNode gathers a roster from the several shapes a
// team node may carry: inline player records, id references into the page
// catalog, or both mixed in one list.
func collectPlayersFromTeamNode(teamNode map[string]any, playersByID map[string]match.TeamPlayer) []match.TeamPlayer {
	if teamNode == nil {
		return nil
	}

	var teamPlayers []match.TeamPlayer
	candidateKeys := []string{"playerDetails", "players", "squad", "playingXI", "playingXi", "playing11", "xi"}

	for _, key := range candidateKeys {
		candidate := teamNode[key]
		teamPlayers = mergeTeamPlayers(teamPlayers, toTeamPlayers(candidate))

		// The same list may mix inline records with bare id references.
		if entries, ok := candidate.([]any); ok {
			var direct []any
			var byID []match.TeamPlayer
			for _, entry := range entries {
				if asMap(entry) != nil {
					direct = append(direct, entry)
					continue
				}
				if id := stringify(entry); id != "" {
					if mapped, found := playersByID[id]; found {
						byID = append(byID, mapped)
					}
				}
			}
			teamPlayers = mergeTeamPlayers(teamPlayers, mergeTeamPlayers(toTeamPlayers(direct), byID))
		}
	}

	return teamPlayers
}

func catalogByID(catalogPlayers []match.TeamPlayer) map[string]match.TeamPlayer {
	playersByID := make(map[string]match.TeamPlayer, len(catalogPlayers))
	for _, player := range catalogPlayers {
		if player.ID != "" && player.ID != "-" {
			playersByID[player.ID] = player
		}
	}
	return playersByID
}

func filterCatalogByTeamID(rawCatalog []map[string]any, teamID string) []match.TeamPlayer {
	if teamID == "" {
		return nil
	}
	var mapped []any
	for _, player := range rawCatalog {
		if playerTeamID := getText(player, "teamId", "team_id"); playerTeamID == teamID {
			mapped = append(mapped, any(player))
		}
	}
	return toTeamPlayers(mapped)
}

// extractTeamPlayersFromHTML recovers both rosters from a squads or
// scorecard page: team nodes under matchHeader/matchInfo plus every
// "players" catalog on the page, cross-referenced by team id.
func extractTeamPlayersFromHTML(html string) (team1Players, team2Players []match.TeamPlayer) {
	var matchHeader, matchInfo map[string]any
	if headers := pickAllObjectsByKey(html, "matchHeader"); len(headers) > 0 {
		matchHeader = headers[0]
	}
	if infos := pickAllObjectsByKey(html, "matchInfo"); len(infos) > 0 {
		matchInfo = infos[0]
	}

	var rawCatalog []map[string]any
	for _, arr := range pickAllArraysByKey(html, "players") {
		for _, entry := range arr {
			if player := asMap(entry); player != nil {
				rawCatalog = append(rawCatalog, player)
			}
		}
	}
	for _, obj := range pickAllObjectsByKey(html, "players") {
		rawCatalog = append(rawCatalog, normalizeRawPlayers(obj)...)
	}

	rawAny := make([]any, len(rawCatalog))
	for i, player := range rawCatalog {
		rawAny[i] = player
	}
	playersByID := catalogByID(toTeamPlayers(rawAny))

	team1Nodes := []map[string]any{getMap(matchHeader, "team1"), getMap(matchInfo, "team1")}
	team2Nodes := []map[string]any{getMap(matchHeader, "team2"), getMap(matchInfo, "team2")}

	for _, node := range team1Nodes {
		team1Players = mergeTeamPlayers(team1Players, collectPlayersFromTeamNode(node, playersByID))
	}
	for _, node := range team2Nodes {
		team2Players = mergeTeamPlayers(team2Players, collectPlayersFromTeamNode(node, playersByID))
	}

	team1ID := firstNonEmpty(getText(getMap(matchHeader, "team1"), "id"), getText(getMap(matchInfo, "team1"), "id"))
	team2ID := firstNonEmpty(getText(getMap(matchHeader, "team2"), "id"), getText(getMap(matchInfo, "team2"), "id"))

	team1Players = mergeTeamPlayers(team1Players, filterCatalogByTeamID(rawCatalog, team1ID))
	team2Players = mergeTeamPlayers(team2Players, filterCatalogByTeamID(rawCatalog, team2ID))

	return team1Players, team2Players
}

// extractTeamPlayersFromCommentary is the same reconciliation over a
// decoded commentary payload, where team nodes may sit at the root.
func extractTeamPlayersFromCommentary(payload map[string]any) (team1Players, team2Players []match.TeamPlayer) {
	if payload == nil {
		return nil, nil
	}

	matchHeader := getMap(payload, "matchHeader")
	matchInfo := getMap(payload, "matchInfo")

	rawCatalog := normalizeRawPlayers(payload["players"])
	rawAny := make([]any, len(rawCatalog))
	for i, player := range rawCatalog {
		rawAny[i] = player
	}
	playersByID := catalogByID(toTeamPlayers(rawAny))

	team1Nodes := []map[string]any{
		getMap(matchHeader, "team1"), getMap(matchInfo, "team1"), getMap(payload, "team1"),
	}
	team2Nodes := []map[string]any{
		getMap(matchHeader, "team2"), getMap(matchInfo, "team2"), getMap(payload, "team2"),
	}

	for _, node := range team1Nodes {
		team1Players = mergeTeamPlayers(team1Players, collectPlayersFromTeamNode(node, playersByID))
	}
	for _, node := range team2Nodes {
		team2Players = mergeTeamPlayers(team2Players, collectPlayersFromTeamNode(node, playersByID))
	}

	team1ID := firstNonEmpty(
		getText(getMap(matchHeader, "team1"), "id"),
		getText(getMap(matchInfo, "team1"), "id"),
		getText(getMap(payload, "team1"), "id"),
	)
	team2ID := firstNonEmpty(
		getText(getMap(matchHeader, "team2"), "id"),
		getText(getMap(matchInfo, "team2"), "id"),
		getText(getMap(payload, "team2"), "id"),
	)

	team1Players = mergeTeamPlayers(team1Players, filterCatalogByTeamID(rawCatalog, team1ID))
	team2Players = mergeTeamPlayers(team2Players, filterCatalogByTeamID(rawCatalog, team2ID))

	return team1Players, team2Players
}

// valuesByNumericSuffix orders an id-keyed sub-map ("bat_1", "bat_2", …)
// by the numeric suffix of its keys, falling back to lexical order.
func valuesByNumericSuffix(data map[string]any) []any {
	if len(data) == 0 {
		return nil
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}

	numericSuffix := func(key string) (int, bool) {
		idx := len(key)
		for idx > 0 && key[idx-1] >= '0' && key[idx-1] <= '9' {
			idx--
		}
		if idx == len(key) {
			return 0, false
		}
		value, err := strconv.Atoi(key[idx:])
		if err != nil {
			return 0, false
		}
		return value, true
	}

	sort.Slice(keys, func(i, j int) bool {
		left, leftOK := numericSuffix(keys[i])
		right, rightOK := numericSuffix(keys[j])
		if leftOK && rightOK {
			return left < right
		}
		return keys[i] < keys[j]
	})

	values := make([]any, 0, len(keys))
	for _, key := range keys {
		values = append(values, data[key])
	}
	return values
}
