package service

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"testing"

	"github.com/fortuna/standout/internal/ingest/nbastats"
	"github.com/fortuna/standout/internal/teams"
)

const (
	lakersID  = 1610612747
	celticsID = 1610612738
)

func pipelineSource() *fakeSource {
	return &fakeSource{
		gameLog: append(
			gameRows("0022400001", "2024-10-22", "LAL", "BOS", lakersID, celticsID),
			gameRows("0022400002", "2024-10-23", "BOS", "LAL", celticsID, lakersID)...,
		),
		boxScores: map[string]*nbastats.BoxScore{
			"0022400001": {
				GameID: "0022400001",
				Players: []nbastats.PlayerLine{
					line(2544, "LeBron James", lakersID, intPtr(28), intPtr(9), intPtr(7), intPtr(1), intPtr(1), intPtr(4)),
					line(1629029, "Luka Doncic", lakersID, intPtr(6), intPtr(1), intPtr(3), nil, nil, nil),
					line(1628369, "Jayson Tatum", celticsID, intPtr(5), intPtr(1), intPtr(3), intPtr(0), intPtr(0), intPtr(0)),
					line(1630559, "Austin Reaves", lakersID, nil, nil, nil, nil, nil, nil),
					line(1627759, "Jaylen Brown", celticsID, intPtr(22), intPtr(0), intPtr(8), intPtr(2), intPtr(0), intPtr(2)),
					line(9999999, "Two-Way Guy", 1610610000, intPtr(10), intPtr(2), intPtr(4), intPtr(0), intPtr(0), intPtr(1)),
				},
				Teams: []nbastats.TeamLine{
					{TeamID: celticsID, TeamName: "Celtics", Points: 118},
					{TeamID: lakersID, TeamName: "Lakers", Points: 121},
				},
			},
			"0022400002": {
				GameID: "0022400002",
				Players: []nbastats.PlayerLine{
					line(1628369, "Jayson Tatum", celticsID, intPtr(30), intPtr(5), intPtr(10), intPtr(1), intPtr(1), intPtr(2)),
				},
				Teams: []nbastats.TeamLine{
					{TeamID: celticsID, TeamName: "Celtics", Points: 110},
					{TeamID: lakersID, TeamName: "Lakers", Points: 100},
				},
			},
		},
		directory: map[int]nbastats.DirectoryEntry{
			2544:    {PersonID: 2544, Jersey: strPtr("23"), Position: strPtr("F")},
			1629029: {PersonID: 1629029, Jersey: strPtr("77"), Position: nil},
		},
	}
}

func TestIsSignificant(t *testing.T) {
	tests := []struct {
		name  string
		stats StatLine
		want  bool
	}{
		{"exact thresholds", StatLine{Points: 6, Assists: 1, Rebounds: 3}, true},
		{"one point short", StatLine{Points: 5, Assists: 1, Rebounds: 3}, false},
		{"no assists", StatLine{Points: 30, Assists: 0, Rebounds: 10}, false},
		{"two rebounds", StatLine{Points: 30, Assists: 5, Rebounds: 2}, false},
		{"all zero", StatLine{}, false},
		{"big line", StatLine{Points: 40, Assists: 10, Rebounds: 12, Steals: 3, Blocks: 2, Turnovers: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSignificant(tt.stats); got != tt.want {
				t.Errorf("IsSignificant(%+v) = %v, want %v", tt.stats, got, tt.want)
			}
		})
	}
}

func TestStatLineFrom_MissingIsZero(t *testing.T) {
	got := statLineFrom(line(1, "x", lakersID, intPtr(6), nil, intPtr(3), nil, nil, nil))
	want := StatLine{Points: 6, Rebounds: 3}
	if got != want {
		t.Errorf("statLineFrom = %+v, want %+v", got, want)
	}
	if IsSignificant(got) {
		t.Error("missing assists count as zero and must fail the filter")
	}
}

func TestUsedPlayers(t *testing.T) {
	source := pipelineSource()
	publisher := &fakePublisher{}
	svc := NewPlayerService(source, fixedPicker(0), FixedSeason("2024-25"), publisher)

	used, err := svc.UsedPlayers(context.Background())
	if err != nil {
		t.Fatalf("UsedPlayers: %v", err)
	}

	var ids []string
	for id := range used {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	wantIDs := []string{"1629029", "2544", "9999999"}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Fatalf("used player ids = %v, want %v", ids, wantIDs)
	}

	lebron := used["2544"]
	if lebron.PlayerName != "LeBron James" {
		t.Errorf("player_name = %q", lebron.PlayerName)
	}
	if lebron.PlayerData != (StatLine{28, 9, 7, 1, 1, 4}) {
		t.Errorf("player_data = %+v", lebron.PlayerData)
	}
	if lebron.Matchup != "LAL VS BOS" {
		t.Errorf("matchup = %q", lebron.Matchup)
	}
	if lebron.GameDate != "October 22, 2024" {
		t.Errorf("game_date = %q", lebron.GameDate)
	}
	if lebron.GameID != "0022400001" {
		t.Errorf("game_id = %q", lebron.GameID)
	}
	if lebron.Team1Logo != LogoURL(lakersID) || lebron.Team2Logo != LogoURL(celticsID) {
		t.Errorf("matchup logos = %s, %s", lebron.Team1Logo, lebron.Team2Logo)
	}
	if lebron.TeamLogo != LogoURL(lakersID) {
		t.Errorf("team_logo = %s", lebron.TeamLogo)
	}
	if lebron.PlayerImg != HeadshotURL(2544) {
		t.Errorf("player_img = %s", lebron.PlayerImg)
	}
	if lebron.TeamName == nil || *lebron.TeamName != "Los Angeles Lakers" {
		t.Errorf("team_name = %v", lebron.TeamName)
	}
	if !reflect.DeepEqual(lebron.TeamColors, []string{"#552583", "#FDB927", "#000000"}) {
		t.Errorf("team_colors = %v", lebron.TeamColors)
	}
	if lebron.JerseyNumber == nil || *lebron.JerseyNumber != "23" || lebron.Position == nil || *lebron.Position != "F" {
		t.Errorf("jersey/position = %v/%v", lebron.JerseyNumber, lebron.Position)
	}
	if !reflect.DeepEqual(lebron.TeamPoints, map[string]int{"Celtics": 118, "Lakers": 121}) {
		t.Errorf("team_points = %v", lebron.TeamPoints)
	}

	luka := used["1629029"]
	if luka.PlayerData != (StatLine{Points: 6, Assists: 1, Rebounds: 3}) {
		t.Errorf("missing stats should be zero, got %+v", luka.PlayerData)
	}
	if luka.Position != nil {
		t.Errorf("expected nil position, got %v", *luka.Position)
	}

	unknown := used["9999999"]
	if unknown.TeamName != nil {
		t.Errorf("expected null team name for unknown team id, got %q", *unknown.TeamName)
	}
	if !reflect.DeepEqual(unknown.TeamColors, teams.DefaultColors.Slice()) {
		t.Errorf("expected default colors, got %v", unknown.TeamColors)
	}
	if unknown.JerseyNumber != nil || unknown.Position != nil {
		t.Error("players missing from the directory get null jersey and position")
	}
	if unknown.TeamLogo != LogoURL(1610610000) {
		t.Errorf("team_logo should follow the player's own team id, got %s", unknown.TeamLogo)
	}

	if len(publisher.published) != 3 {
		t.Errorf("expected 3 published players, got %d", len(publisher.published))
	}
}

func TestUsedPlayers_AwayGameOrdering(t *testing.T) {
	source := pipelineSource()
	svc := NewPlayerService(source, fixedPicker(1), FixedSeason("2024-25"), nil)

	used, err := svc.UsedPlayers(context.Background())
	if err != nil {
		t.Fatalf("UsedPlayers: %v", err)
	}
	tatum, ok := used["1628369"]
	if !ok {
		t.Fatal("expected Tatum in second game")
	}
	if tatum.Matchup != "BOS VS LAL" {
		t.Errorf("matchup = %q", tatum.Matchup)
	}
	if tatum.GameDate != "October 23, 2024" {
		t.Errorf("game_date = %q", tatum.GameDate)
	}
}

func TestUsedPlayers_CompleteFieldSet(t *testing.T) {
	svc := NewPlayerService(pipelineSource(), fixedPicker(0), FixedSeason("2024-25"), nil)

	used, err := svc.UsedPlayers(context.Background())
	if err != nil {
		t.Fatalf("UsedPlayers: %v", err)
	}

	data, err := json.Marshal(used)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	fields := []string{
		"player_name", "player_data", "team_logo", "team1_logo", "team2_logo",
		"player_img", "team_name", "team_colors", "jersey_number", "position",
		"matchup", "game_date", "team_points", "game_id",
	}
	for id, record := range decoded {
		if len(record) != len(fields) {
			t.Errorf("player %s has %d fields, want %d", id, len(record), len(fields))
		}
		for _, f := range fields {
			if _, ok := record[f]; !ok {
				t.Errorf("player %s missing field %s", id, f)
			}
		}
		stats, _ := record["player_data"].(map[string]any)
		for _, k := range []string{"PTS", "AST", "REB", "STL", "BLK", "TO"} {
			if _, ok := stats[k]; !ok {
				t.Errorf("player %s missing stat %s", id, k)
			}
		}
	}
}

func TestUsedPlayers_Variability(t *testing.T) {
	svc := NewPlayerService(pipelineSource(), &cyclingPicker{}, FixedSeason("2024-25"), nil)

	games := make(map[string]bool)
	for i := 0; i < 2; i++ {
		used, err := svc.UsedPlayers(context.Background())
		if err != nil {
			t.Fatalf("UsedPlayers: %v", err)
		}
		for _, record := range used {
			games[record.GameID] = true
		}
	}
	if len(games) != 2 {
		t.Errorf("expected repeated calls to cover different games, got %v", games)
	}
}

func TestUsedPlayers_Failures(t *testing.T) {
	upstream := errors.New("upstream unavailable")

	tests := []struct {
		name   string
		mutate func(*fakeSource)
		want   error
	}{
		{"game log", func(f *fakeSource) { f.gameLogErr = upstream }, upstream},
		{"box score", func(f *fakeSource) { f.boxScoreErr = upstream }, upstream},
		{"directory", func(f *fakeSource) { f.directoryErr = upstream }, upstream},
		{"unknown abbreviation", func(f *fakeSource) {
			f.gameLog = gameRows("0022400001", "2024-10-22", "LAL", "SEA", lakersID, 1)
		}, teams.ErrUnknownTeam},
		{"malformed matchup", func(f *fakeSource) {
			f.gameLog = []nbastats.GameLogEntry{{GameID: "0022400001", GameDate: "2024-10-22", Matchup: "LAL-BOS"}}
		}, ErrMalformedMatchup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := pipelineSource()
			tt.mutate(source)
			svc := NewPlayerService(source, fixedPicker(0), FixedSeason("2024-25"), nil)
			if _, err := svc.UsedPlayers(context.Background()); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUsedPlayers_PublishErrorIsNotFatal(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("redis down")}
	svc := NewPlayerService(pipelineSource(), fixedPicker(0), FixedSeason("2024-25"), publisher)

	used, err := svc.UsedPlayers(context.Background())
	if err != nil {
		t.Fatalf("publish failures must not fail the request: %v", err)
	}
	if len(used) != 3 {
		t.Errorf("expected 3 players, got %d", len(used))
	}
}

func TestUsedPlayers_CallSequence(t *testing.T) {
	source := pipelineSource()
	svc := NewPlayerService(source, fixedPicker(0), FixedSeason("2024-25"), nil)

	if _, err := svc.UsedPlayers(context.Background()); err != nil {
		t.Fatalf("UsedPlayers: %v", err)
	}
	want := []string{"GameLog", "BoxScore:0022400001", "PlayerDirectory"}
	if !reflect.DeepEqual(source.calls, want) {
		t.Errorf("calls = %v, want %v", source.calls, want)
	}
}
