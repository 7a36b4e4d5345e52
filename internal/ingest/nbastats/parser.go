package nbastats

import (
	"fmt"
)

// Column names as they appear in the upstream headers
const (
	colGameID     = "GAME_ID"
	colGameDate   = "GAME_DATE"
	colMatchup    = "MATCHUP"
	colTeamID     = "TEAM_ID"
	colTeamAbbr   = "TEAM_ABBREVIATION"
	colTeamName   = "TEAM_NAME"
	colPlayerID   = "PLAYER_ID"
	colPlayerName = "PLAYER_NAME"
	colPersonID   = "PERSON_ID"
	colPoints     = "PTS"
	colAssists    = "AST"
	colRebounds   = "REB"
	colSteals     = "STL"
	colBlocks     = "BLK"
	colTurnovers  = "TO"
)

// The player index has shipped jersey and position under different names
// over time; candidates are probed in order.
var (
	JerseyColumns   = []string{"JERSEY_NUMBER", "JERSEY"}
	PositionColumns = []string{"POSITION", "POS"}
)

// Box score result set positions
const (
	boxScorePlayerTable = 0
	boxScoreTeamTable   = 1
)

// ParseGameLog extracts game log rows in table order.
func ParseGameLog(resp *Response) ([]GameLogEntry, error) {
	table, err := resp.Table(0)
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return []GameLogEntry{}, nil
	}
	if err := table.Require(colGameID, colGameDate, colMatchup); err != nil {
		return nil, fmt.Errorf("parsing game log: %w", err)
	}

	entries := make([]GameLogEntry, 0, table.Len())
	for _, row := range table.Rows() {
		entries = append(entries, GameLogEntry{
			GameID:           row.String(colGameID),
			GameDate:         row.String(colGameDate),
			Matchup:          row.String(colMatchup),
			TeamID:           row.Int(colTeamID),
			TeamAbbreviation: row.String(colTeamAbbr),
			TeamName:         row.String(colTeamName),
			Points:           row.Int(colPoints),
		})
	}
	return entries, nil
}

// ParseBoxScore extracts the player and team tables of a traditional box score.
func ParseBoxScore(gameID string, resp *Response) (*BoxScore, error) {
	box := &BoxScore{GameID: gameID}

	players, err := resp.Table(boxScorePlayerTable)
	if err != nil {
		return nil, fmt.Errorf("parsing player box score: %w", err)
	}
	if players.Len() > 0 {
		if err := players.Require(colPlayerID, colPlayerName, colTeamID); err != nil {
			return nil, fmt.Errorf("parsing player box score: %w", err)
		}
	}
	box.Players = make([]PlayerLine, 0, players.Len())
	for _, row := range players.Rows() {
		line := PlayerLine{
			PlayerID:   row.Int(colPlayerID),
			PlayerName: row.String(colPlayerName),
			TeamID:     row.Int(colTeamID),
		}
		line.Points, _ = row.IntPtr(colPoints)
		line.Assists, _ = row.IntPtr(colAssists)
		line.Rebounds, _ = row.IntPtr(colRebounds)
		line.Steals, _ = row.IntPtr(colSteals)
		line.Blocks, _ = row.IntPtr(colBlocks)
		line.Turnovers, _ = row.IntPtr(colTurnovers)
		box.Players = append(box.Players, line)
	}

	teams, err := resp.Table(boxScoreTeamTable)
	if err != nil {
		return nil, fmt.Errorf("parsing team box score: %w", err)
	}
	if teams.Len() > 0 {
		if err := teams.Require(colTeamName, colPoints); err != nil {
			return nil, fmt.Errorf("parsing team box score: %w", err)
		}
	}
	box.Teams = make([]TeamLine, 0, teams.Len())
	for _, row := range teams.Rows() {
		box.Teams = append(box.Teams, TeamLine{
			TeamID:   row.Int(colTeamID),
			TeamName: row.String(colTeamName),
			Points:   row.Int(colPoints),
		})
	}

	return box, nil
}

// ParsePlayerDirectory indexes the player index by person id.
func ParsePlayerDirectory(resp *Response) (map[int]DirectoryEntry, error) {
	table, err := resp.Table(0)
	if err != nil {
		return nil, err
	}
	if table.Len() > 0 {
		if err := table.Require(colPersonID); err != nil {
			return nil, fmt.Errorf("parsing player directory: %w", err)
		}
	}

	directory := make(map[int]DirectoryEntry, table.Len())
	for _, row := range table.Rows() {
		id := row.Int(colPersonID)
		if _, seen := directory[id]; seen {
			continue
		}
		directory[id] = DirectoryEntry{
			PersonID: id,
			Jersey:   lookupString(row, JerseyColumns...),
			Position: lookupString(row, PositionColumns...),
		}
	}
	return directory, nil
}

func lookupString(row Row, candidates ...string) *string {
	v, ok := row.Lookup(candidates...)
	if !ok {
		return nil
	}
	s, ok := asString(v)
	if !ok {
		return nil
	}
	return &s
}
