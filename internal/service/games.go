package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fortuna/standout/internal/ingest/nbastats"
)

// recentGameWindow is how many trailing game log rows are considered
// "recent". Each game contributes two rows, so this covers roughly five games.
const recentGameWindow = 10

var (
	// ErrNoRecentGames is returned when the season game log is empty.
	ErrNoRecentGames = errors.New("no games played this season")
	// ErrGameNotFound is returned when a game id is absent from the game log.
	ErrGameNotFound = errors.New("game not found")
)

// GameSelector picks a recent game at random
type GameSelector struct {
	source StatsSource
	picker Picker
	season SeasonFunc
}

// NewGameSelector creates a new game selector. A nil picker uses the
// global random source.
func NewGameSelector(source StatsSource, picker Picker, season SeasonFunc) *GameSelector {
	if picker == nil {
		picker = NewRandomPicker()
	}
	return &GameSelector{source: source, picker: picker, season: season}
}

// SelectRecentGame returns a random game id among the last rows of the
// season game log, plus the full unfiltered log.
func (s *GameSelector) SelectRecentGame(ctx context.Context) (string, []nbastats.GameLogEntry, error) {
	log, err := s.source.GameLog(ctx, s.season())
	if err != nil {
		return "", nil, fmt.Errorf("fetching season game log: %w", err)
	}

	ids := RecentGameIDs(log, recentGameWindow)
	if len(ids) == 0 {
		return "", nil, ErrNoRecentGames
	}

	return ids[s.picker.IntN(len(ids))], log, nil
}

// RecentGameIDs takes the last window rows of the log and returns their
// distinct game ids in first-seen order.
func RecentGameIDs(log []nbastats.GameLogEntry, window int) []string {
	start := len(log) - window
	if start < 0 {
		start = 0
	}

	seen := make(map[string]struct{}, window)
	ids := make([]string, 0, window)
	for _, entry := range log[start:] {
		if _, dup := seen[entry.GameID]; dup {
			continue
		}
		seen[entry.GameID] = struct{}{}
		ids = append(ids, entry.GameID)
	}
	return ids
}

// findGame returns the first game log row for gameID.
func findGame(log []nbastats.GameLogEntry, gameID string) (nbastats.GameLogEntry, error) {
	for _, entry := range log {
		if entry.GameID == gameID {
			return entry, nil
		}
	}
	return nbastats.GameLogEntry{}, fmt.Errorf("game %s: %w", gameID, ErrGameNotFound)
}

// GameService handles game-level lookups
type GameService struct {
	source StatsSource
	season SeasonFunc
}

// NewGameService creates a new game service
func NewGameService(source StatsSource, season SeasonFunc) *GameService {
	return &GameService{source: source, season: season}
}

// TeamPoints fetches a game's team box score and maps team name to final points.
func (s *GameService) TeamPoints(ctx context.Context, gameID string) (map[string]int, error) {
	box, err := s.source.BoxScore(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching team box score: %w", err)
	}
	return teamPointsFromLines(box.Teams), nil
}

func teamPointsFromLines(lines []nbastats.TeamLine) map[string]int {
	points := make(map[string]int, len(lines))
	for _, line := range lines {
		points[line.TeamName] = line.Points
	}
	return points
}

// GameLogos resolves the formatted matchup and both team logos for a game
// in the current season's log.
func (s *GameService) GameLogos(ctx context.Context, gameID string) (*GameLogos, error) {
	log, err := s.source.GameLog(ctx, s.season())
	if err != nil {
		return nil, fmt.Errorf("fetching season game log: %w", err)
	}

	entry, err := findGame(log, gameID)
	if err != nil {
		return nil, err
	}

	matchup, err := FormatMatchup(entry.Matchup)
	if err != nil {
		return nil, err
	}

	team1, team2, err := ResolveLogos(matchup)
	if err != nil {
		return nil, err
	}

	return &GameLogos{
		GameID:    gameID,
		Matchup:   matchup,
		Team1Logo: team1,
		Team2Logo: team2,
	}, nil
}

// GameLogos pairs a formatted matchup with both team logos
type GameLogos struct {
	GameID    string `json:"game_id"`
	Matchup   string `json:"matchup"`
	Team1Logo string `json:"team1_logo"`
	Team2Logo string `json:"team2_logo"`
}
