package nbastats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	BaseURL           = "https://stats.nba.com/stats"
	LeagueID          = "00"
	SeasonTypeRegular = "Regular Season"

	DefaultTimeout = 30 * time.Second

	// UserAgent mimics a browser; stats.nba.com stalls requests without one
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client handles stats.nba.com requests
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a client against baseURL. Zero values fall back to defaults.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := log.With().Str("component", "nbastats").Logger()
	logger.Debug().Str("base_url", baseURL).Msg("client created")

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// NewClient creates a client with default settings
func NewClient() *Client {
	return New(BaseURL, DefaultTimeout)
}

// FetchLeagueGameLog fetches the team game log for a season ("2024-25"),
// oldest game first.
func (c *Client) FetchLeagueGameLog(ctx context.Context, season string) (*Response, error) {
	params := url.Values{}
	params.Set("LeagueID", LeagueID)
	params.Set("Season", season)
	params.Set("SeasonType", SeasonTypeRegular)
	params.Set("PlayerOrTeam", "T")
	params.Set("Counter", "0")
	params.Set("Sorter", "DATE")
	params.Set("Direction", "ASC")
	params.Set("DateFrom", "")
	params.Set("DateTo", "")
	return c.fetch(ctx, "leaguegamelog", params)
}

// FetchBoxScoreTraditional fetches the full-game traditional box score
func (c *Client) FetchBoxScoreTraditional(ctx context.Context, gameID string) (*Response, error) {
	params := url.Values{}
	params.Set("GameID", gameID)
	params.Set("StartPeriod", "0")
	params.Set("EndPeriod", "10")
	params.Set("StartRange", "0")
	params.Set("EndRange", "28800")
	params.Set("RangeType", "0")
	return c.fetch(ctx, "boxscoretraditionalv2", params)
}

// FetchPlayerIndex fetches the player directory for a season
func (c *Client) FetchPlayerIndex(ctx context.Context, season string) (*Response, error) {
	params := url.Values{}
	params.Set("LeagueID", LeagueID)
	params.Set("Season", season)
	params.Set("Historical", "0")
	return c.fetch(ctx, "playerindex", params)
}

// GameLog fetches and parses the season game log
func (c *Client) GameLog(ctx context.Context, season string) ([]GameLogEntry, error) {
	resp, err := c.FetchLeagueGameLog(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("fetching game log: %w", err)
	}
	return ParseGameLog(resp)
}

// BoxScore fetches and parses a game's box score
func (c *Client) BoxScore(ctx context.Context, gameID string) (*BoxScore, error) {
	resp, err := c.FetchBoxScoreTraditional(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetching box score %s: %w", gameID, err)
	}
	return ParseBoxScore(gameID, resp)
}

// PlayerDirectory fetches and indexes the player index
func (c *Client) PlayerDirectory(ctx context.Context, season string) (map[int]DirectoryEntry, error) {
	resp, err := c.FetchPlayerIndex(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("fetching player index: %w", err)
	}
	return ParsePlayerDirectory(resp)
}

func (c *Client) fetch(ctx context.Context, endpoint string, params url.Values) (*Response, error) {
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Origin", "https://www.nba.com")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("x-nba-stats-origin", "stats")
	req.Header.Set("x-nba-stats-token", "true")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("request failed")
		return nil, fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", endpoint, err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(body)).
		Msg("response received")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, truncate(body, 200))
	}

	// HTML error pages come back with 200 from the edge cache
	if len(body) > 0 && body[0] == '<' {
		return nil, fmt.Errorf("%s returned HTML error page: %s", endpoint, truncate(body, 200))
	}

	var result Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding %s response: %w (body: %s)", endpoint, err, truncate(body, 200))
	}
	if result.Resource == "" {
		result.Resource = endpoint
	}

	return &result, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
