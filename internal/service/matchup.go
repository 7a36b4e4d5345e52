package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fortuna/standout/internal/teams"
)

const (
	logoURLTemplate     = "https://cdn.nba.com/logos/nba/%d/primary/L/logo.svg"
	headshotURLTemplate = "https://cdn.nba.com/headshots/nba/latest/1040x760/%d.png"

	matchupSeparator = " VS "
	awaySeparator    = "@"

	upstreamDateLayout = "2006-01-02"
	displayDateLayout  = "January 02, 2006"
)

// ErrMalformedMatchup is returned for matchup strings that are not exactly
// three space-separated tokens.
var ErrMalformedMatchup = errors.New("malformed matchup")

// FormatMatchup canonicalizes "AWAY @ HOME" and "HOME vs. AWAY" into
// "HOME VS AWAY".
func FormatMatchup(raw string) (string, error) {
	parts := strings.Split(raw, " ")
	if len(parts) != 3 {
		return "", fmt.Errorf("%q: %w", raw, ErrMalformedMatchup)
	}

	first, sep, second := parts[0], parts[1], parts[2]
	if sep == awaySeparator {
		return second + matchupSeparator + first, nil
	}
	return first + matchupSeparator + second, nil
}

// ResolveLogos returns the logo URLs for both sides of a formatted matchup.
func ResolveLogos(matchup string) (string, string, error) {
	left, right, ok := strings.Cut(matchup, matchupSeparator)
	if !ok {
		return "", "", fmt.Errorf("%q: %w", matchup, ErrMalformedMatchup)
	}

	leftID, err := teams.IDByAbbreviation(left)
	if err != nil {
		return "", "", fmt.Errorf("resolving logo: %w", err)
	}
	rightID, err := teams.IDByAbbreviation(right)
	if err != nil {
		return "", "", fmt.Errorf("resolving logo: %w", err)
	}

	return LogoURL(leftID), LogoURL(rightID), nil
}

// LogoURL formats the CDN logo for a team id.
func LogoURL(teamID int) string {
	return fmt.Sprintf(logoURLTemplate, teamID)
}

// HeadshotURL formats the CDN headshot for a player id.
func HeadshotURL(playerID int) string {
	return fmt.Sprintf(headshotURLTemplate, playerID)
}

// FormatGameDate renders an upstream "2024-10-22" as "October 22, 2024".
func FormatGameDate(raw string) (string, error) {
	d, err := time.Parse(upstreamDateLayout, raw)
	if err != nil {
		return "", fmt.Errorf("parsing game date %q: %w", raw, err)
	}
	return d.Format(displayDateLayout), nil
}
