package service

import (
	"context"
	"sync"

	"github.com/fortuna/standout/internal/ingest/nbastats"
)

type fakeSource struct {
	mu sync.Mutex

	gameLog   []nbastats.GameLogEntry
	boxScores map[string]*nbastats.BoxScore
	directory map[int]nbastats.DirectoryEntry

	gameLogErr   error
	boxScoreErr  error
	directoryErr error

	seasons []string
	calls   []string
}

func (f *fakeSource) GameLog(ctx context.Context, season string) ([]nbastats.GameLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "GameLog")
	f.seasons = append(f.seasons, season)
	if f.gameLogErr != nil {
		return nil, f.gameLogErr
	}
	return f.gameLog, nil
}

func (f *fakeSource) BoxScore(ctx context.Context, gameID string) (*nbastats.BoxScore, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "BoxScore:"+gameID)
	if f.boxScoreErr != nil {
		return nil, f.boxScoreErr
	}
	box, ok := f.boxScores[gameID]
	if !ok {
		return &nbastats.BoxScore{GameID: gameID}, nil
	}
	return box, nil
}

func (f *fakeSource) PlayerDirectory(ctx context.Context, season string) (map[int]nbastats.DirectoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "PlayerDirectory")
	if f.directoryErr != nil {
		return nil, f.directoryErr
	}
	return f.directory, nil
}

// fixedPicker always returns the same index.
type fixedPicker int

func (p fixedPicker) IntN(n int) int {
	if int(p) >= n {
		return n - 1
	}
	return int(p)
}

// cyclingPicker walks through indexes in order.
type cyclingPicker struct {
	mu   sync.Mutex
	next int
}

func (p *cyclingPicker) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.next % n
	p.next++
	return i
}

type publishedPlayer struct {
	id     string
	record any
}

type fakePublisher struct {
	mu        sync.Mutex
	published []publishedPlayer
	err       error
}

func (p *fakePublisher) PublishStandout(ctx context.Context, playerID string, record any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, publishedPlayer{id: playerID, record: record})
	return p.err
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }

func line(id int, name string, teamID int, pts, ast, reb, stl, blk, to *int) nbastats.PlayerLine {
	return nbastats.PlayerLine{
		PlayerID:   id,
		PlayerName: name,
		TeamID:     teamID,
		Points:     pts,
		Assists:    ast,
		Rebounds:   reb,
		Steals:     stl,
		Blocks:     blk,
		Turnovers:  to,
	}
}

func gameRows(gameID, date, homeAbbr, awayAbbr string, homeID, awayID int) []nbastats.GameLogEntry {
	return []nbastats.GameLogEntry{
		{GameID: gameID, GameDate: date, Matchup: homeAbbr + " vs. " + awayAbbr, TeamID: homeID, TeamAbbreviation: homeAbbr},
		{GameID: gameID, GameDate: date, Matchup: awayAbbr + " @ " + homeAbbr, TeamID: awayID, TeamAbbreviation: awayAbbr},
	}
}
