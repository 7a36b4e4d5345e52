package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fortuna/standout/internal/ingest/nbastats"
	"github.com/fortuna/standout/internal/teams"
)

// significanceThresholds is the minimum line a player needs to be included.
// The steal, block and turnover floors of zero always pass; they are kept
// so the comparison covers every stat in the line.
var significanceThresholds = StatLine{
	Points:    6,
	Assists:   1,
	Rebounds:  3,
	Steals:    0,
	Blocks:    0,
	Turnovers: 0,
}

// PlayerPublisher receives every qualifying player as it is assembled.
type PlayerPublisher interface {
	PublishStandout(ctx context.Context, playerID string, record any) error
}

// PlayerService assembles the standout players of a random recent game
type PlayerService struct {
	source    StatsSource
	selector  *GameSelector
	season    SeasonFunc
	publisher PlayerPublisher
	logger    zerolog.Logger
}

// NewPlayerService creates a new player service. picker and publisher may be nil.
func NewPlayerService(source StatsSource, picker Picker, season SeasonFunc, publisher PlayerPublisher) *PlayerService {
	return &PlayerService{
		source:    source,
		selector:  NewGameSelector(source, picker, season),
		season:    season,
		publisher: publisher,
		logger:    log.With().Str("component", "players").Logger(),
	}
}

// UsedPlayers runs the full pipeline: select a game, join its player box
// score with the player directory, enrich each row and keep the players
// passing the significance filter. Keys are player ids.
func (s *PlayerService) UsedPlayers(ctx context.Context) (map[string]*PlayerRecord, error) {
	gameID, gameLog, err := s.selector.SelectRecentGame(ctx)
	if err != nil {
		return nil, err
	}

	box, err := s.source.BoxScore(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching box score: %w", err)
	}

	directory, err := s.source.PlayerDirectory(ctx, s.season())
	if err != nil {
		return nil, fmt.Errorf("fetching player directory: %w", err)
	}

	game, err := s.buildGameContext(gameID, gameLog, box)
	if err != nil {
		return nil, err
	}

	used := make(map[string]*PlayerRecord)
	for _, line := range box.Players {
		record := buildRecord(line, directory, game)
		if !IsSignificant(record.PlayerData) {
			continue
		}

		id := strconv.Itoa(line.PlayerID)
		used[id] = record

		s.logger.Info().
			Str("game_id", gameID).
			Str("player_id", id).
			Str("player", record.PlayerName).
			Int("pts", record.PlayerData.Points).
			Int("ast", record.PlayerData.Assists).
			Int("reb", record.PlayerData.Rebounds).
			Msg("standout player")

		if s.publisher != nil {
			if err := s.publisher.PublishStandout(ctx, id, record); err != nil {
				s.logger.Warn().Err(err).Str("player_id", id).Msg("failed to publish standout player")
			}
		}
	}

	s.logger.Debug().
		Str("game_id", gameID).
		Int("box_rows", len(box.Players)).
		Int("used", len(used)).
		Msg("pipeline complete")

	return used, nil
}

// gameContext is the per-game data shared by every player record
type gameContext struct {
	id         string
	matchup    string
	date       string
	team1Logo  string
	team2Logo  string
	teamPoints map[string]int
}

func (s *PlayerService) buildGameContext(gameID string, gameLog []nbastats.GameLogEntry, box *nbastats.BoxScore) (*gameContext, error) {
	entry, err := findGame(gameLog, gameID)
	if err != nil {
		return nil, err
	}

	matchup, err := FormatMatchup(entry.Matchup)
	if err != nil {
		return nil, err
	}

	date, err := FormatGameDate(entry.GameDate)
	if err != nil {
		return nil, err
	}

	team1, team2, err := ResolveLogos(matchup)
	if err != nil {
		return nil, err
	}

	return &gameContext{
		id:         gameID,
		matchup:    matchup,
		date:       date,
		team1Logo:  team1,
		team2Logo:  team2,
		teamPoints: teamPointsFromLines(box.Teams),
	}, nil
}

func buildRecord(line nbastats.PlayerLine, directory map[int]nbastats.DirectoryEntry, game *gameContext) *PlayerRecord {
	record := &PlayerRecord{
		PlayerName: line.PlayerName,
		PlayerData: statLineFrom(line),
		TeamLogo:   LogoURL(line.TeamID),
		Team1Logo:  game.team1Logo,
		Team2Logo:  game.team2Logo,
		PlayerImg:  HeadshotURL(line.PlayerID),
		Matchup:    game.matchup,
		GameDate:   game.date,
		TeamPoints: game.teamPoints,
		GameID:     game.id,
	}

	if entry, ok := directory[line.PlayerID]; ok {
		record.JerseyNumber = entry.Jersey
		record.Position = entry.Position
	}

	var teamName string
	if name, ok := teams.NameByID(line.TeamID); ok {
		teamName = name
		record.TeamName = &name
	}
	record.TeamColors = teams.ColorsFor(teamName).Slice()

	return record
}

func statLineFrom(line nbastats.PlayerLine) StatLine {
	return StatLine{
		Points:    orZero(line.Points),
		Assists:   orZero(line.Assists),
		Rebounds:  orZero(line.Rebounds),
		Steals:    orZero(line.Steals),
		Blocks:    orZero(line.Blocks),
		Turnovers: orZero(line.Turnovers),
	}
}

func orZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// IsSignificant reports whether every stat meets its threshold.
func IsSignificant(stats StatLine) bool {
	values := stats.values()
	floors := significanceThresholds.values()
	for i := range values {
		if values[i] < floors[i] {
			return false
		}
	}
	return true
}

// StatLine is the six counting stats carried per player
type StatLine struct {
	Points    int `json:"PTS"`
	Assists   int `json:"AST"`
	Rebounds  int `json:"REB"`
	Steals    int `json:"STL"`
	Blocks    int `json:"BLK"`
	Turnovers int `json:"TO"`
}

func (s StatLine) values() [6]int {
	return [6]int{s.Points, s.Assists, s.Rebounds, s.Steals, s.Blocks, s.Turnovers}
}

// PlayerRecord is one entry of the usedPlayers payload
type PlayerRecord struct {
	PlayerName   string         `json:"player_name"`
	PlayerData   StatLine       `json:"player_data"`
	TeamLogo     string         `json:"team_logo"`
	Team1Logo    string         `json:"team1_logo"`
	Team2Logo    string         `json:"team2_logo"`
	PlayerImg    string         `json:"player_img"`
	TeamName     *string        `json:"team_name"`
	TeamColors   []string       `json:"team_colors"`
	JerseyNumber *string        `json:"jersey_number"`
	Position     *string        `json:"position"`
	Matchup      string         `json:"matchup"`
	GameDate     string         `json:"game_date"`
	TeamPoints   map[string]int `json:"team_points"`
	GameID       string         `json:"game_id"`
}
