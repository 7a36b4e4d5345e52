package nbastats

// GameLogEntry is one team's line in the season game log. Every game
// appears twice, once per side.
type GameLogEntry struct {
	GameID           string
	GameDate         string // YYYY-MM-DD
	Matchup          string // "BOS @ LAL" or "LAL vs. BOS"
	TeamID           int
	TeamAbbreviation string
	TeamName         string
	Points           int
}

// PlayerLine is a single player's traditional box score row. Nil counting
// stats mean the upstream value was null (e.g. DNP).
type PlayerLine struct {
	PlayerID   int
	PlayerName string
	TeamID     int
	Points     *int
	Assists    *int
	Rebounds   *int
	Steals     *int
	Blocks     *int
	Turnovers  *int
}

// TeamLine is a team's traditional box score row.
type TeamLine struct {
	TeamID   int
	TeamName string
	Points   int
}

// BoxScore bundles the two logical tables of boxscoretraditionalv2.
type BoxScore struct {
	GameID  string
	Players []PlayerLine
	Teams   []TeamLine
}

// DirectoryEntry carries the roster attributes the player index exposes.
// Either field is nil when the column is absent or the value is null.
type DirectoryEntry struct {
	PersonID int
	Jersey   *string
	Position *string
}
