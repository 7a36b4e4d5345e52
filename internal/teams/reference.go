package teams

import (
	"errors"
	"fmt"
)

// ErrUnknownTeam is returned when an abbreviation or display name has no
// entry in the reference tables.
var ErrUnknownTeam = errors.New("unknown team")

// Colors holds a franchise's brand colors as RGB hex strings
type Colors struct {
	Primary   string `json:"primary" yaml:"primary"`
	Secondary string `json:"secondary" yaml:"secondary"`
	Tertiary  string `json:"tertiary" yaml:"tertiary"`
}

// Slice returns the colors in primary, secondary, tertiary order.
func (c Colors) Slice() []string {
	return []string{c.Primary, c.Secondary, c.Tertiary}
}

// DefaultColors is used for any team missing from the color table.
var DefaultColors = Colors{Primary: "#000000", Secondary: "#FFFFFF", Tertiary: "#A1A1A4"}

// Team ties together the three keys upstream data uses for one franchise.
type Team struct {
	ID           int
	Abbreviation string
	Name         string
}

// franchises is the single ordered source for the id and abbreviation tables.
// Order matters: reverse lookups by name return the first match.
var franchises = []Team{
	{1610612738, "BOS", "Boston Celtics"},
	{1610612751, "BKN", "Brooklyn Nets"},
	{1610612752, "NYK", "New York Knicks"},
	{1610612755, "PHI", "Philadelphia 76ers"},
	{1610612761, "TOR", "Toronto Raptors"},
	{1610612741, "CHI", "Chicago Bulls"},
	{1610612739, "CLE", "Cleveland Cavaliers"},
	{1610612765, "DET", "Detroit Pistons"},
	{1610612754, "IND", "Indiana Pacers"},
	{1610612749, "MIL", "Milwaukee Bucks"},
	{1610612737, "ATL", "Atlanta Hawks"},
	{1610612766, "CHA", "Charlotte Hornets"},
	{1610612748, "MIA", "Miami Heat"},
	{1610612753, "ORL", "Orlando Magic"},
	{1610612764, "WAS", "Washington Wizards"},
	{1610612743, "DEN", "Denver Nuggets"},
	{1610612750, "MIN", "Minnesota Timberwolves"},
	{1610612760, "OKC", "Oklahoma City Thunder"},
	{1610612757, "POR", "Portland Trail Blazers"},
	{1610612762, "UTA", "Utah Jazz"},
	{1610612744, "GSW", "Golden State Warriors"},
	{1610612746, "LAC", "Los Angeles Clippers"},
	{1610612747, "LAL", "Los Angeles Lakers"},
	{1610612756, "PHX", "Phoenix Suns"},
	{1610612758, "SAC", "Sacramento Kings"},
	{1610612742, "DAL", "Dallas Mavericks"},
	{1610612745, "HOU", "Houston Rockets"},
	{1610612763, "MEM", "Memphis Grizzlies"},
	{1610612740, "NOP", "New Orleans Pelicans"},
	{1610612759, "SAS", "San Antonio Spurs"},
}

var brandColors = map[string]Colors{
	"Boston Celtics":         {"#007A33", "#BA9653", "#FFFFFF"},
	"Brooklyn Nets":          {"#080808", "#FFFFFF", "#3D3D3D"},
	"New York Knicks":        {"#006BB6", "#F58426", "#BEC0C2"},
	"Philadelphia 76ers":     {"#006BB6", "#ED174C", "#FFFFFF"},
	"Toronto Raptors":        {"#CE1141", "#000000", "#A1A1A4"},
	"Chicago Bulls":          {"#CE1141", "#000000", "#FFFFFF"},
	"Cleveland Cavaliers":    {"#6F263D", "#FFB81C", "#041E42"},
	"Detroit Pistons":        {"#C8102E", "#1D42BA", "#BEC0C2"},
	"Indiana Pacers":         {"#002D62", "#FDBB30", "#BEC0C2"},
	"Milwaukee Bucks":        {"#00471B", "#EEE1C6", "#0077C0"},
	"Atlanta Hawks":          {"#E03A3E", "#C1D32F", "#26282A"},
	"Charlotte Hornets":      {"#1D1160", "#00788C", "#A1A1A4"},
	"Miami Heat":             {"#98002E", "#F9A01B", "#000000"},
	"Orlando Magic":          {"#0077C0", "#C4CED4", "#000000"},
	"Washington Wizards":     {"#002B5C", "#E31837", "#C4CED4"},
	"Denver Nuggets":         {"#0E2240", "#FEC524", "#8B2131"},
	"Minnesota Timberwolves": {"#0C2340", "#236192", "#9EA2A2"},
	"Oklahoma City Thunder":  {"#007AC1", "#EF3B24", "#002D62"},
	"Portland Trail Blazers": {"#E03A3E", "#000000", "#FFFFFF"},
	"Utah Jazz":              {"#002B5C", "#F9A01B", "#00471B"},
	"Golden State Warriors":  {"#1D428A", "#FFC72C", "#26282A"},
	"Los Angeles Clippers":   {"#C8102E", "#1D428A", "#BEC0C2"},
	"Los Angeles Lakers":     {"#552583", "#FDB927", "#000000"},
	"Phoenix Suns":           {"#1D1160", "#E56020", "#000000"},
	"Sacramento Kings":       {"#5A2D81", "#63727A", "#000000"},
	"Dallas Mavericks":       {"#0053BC", "#00285E", "#C4CED4"},
	"Houston Rockets":        {"#CE1141", "#C4CED4", "#000000"},
	"Memphis Grizzlies":      {"#12173F", "#5D76A9", "#707271"},
	"New Orleans Pelicans":   {"#0C2340", "#C8102E", "#85714D"},
	"San Antonio Spurs":      {"#C4CED4", "#000000", "#BAC3C9"},
}

var (
	nameByID   = make(map[int]string, len(franchises))
	nameByAbbr = make(map[string]string, len(franchises))
)

func init() {
	for _, t := range franchises {
		nameByID[t.ID] = t.Name
		nameByAbbr[t.Abbreviation] = t.Name
	}
}

// All returns a copy of every franchise in table order.
func All() []Team {
	out := make([]Team, len(franchises))
	copy(out, franchises)
	return out
}

// NameByID resolves a numeric team id to its display name.
func NameByID(id int) (string, bool) {
	name, ok := nameByID[id]
	return name, ok
}

// NameByAbbreviation resolves a three-letter abbreviation (e.g. "LAL") to its display name.
func NameByAbbreviation(abbr string) (string, error) {
	name, ok := nameByAbbr[abbr]
	if !ok {
		return "", fmt.Errorf("abbreviation %q: %w", abbr, ErrUnknownTeam)
	}
	return name, nil
}

// IDByName does a reverse lookup on the id table. When several ids share a
// display name the first one in table order wins.
func IDByName(name string) (int, error) {
	for _, t := range franchises {
		if t.Name == name {
			return t.ID, nil
		}
	}
	return 0, fmt.Errorf("display name %q: %w", name, ErrUnknownTeam)
}

// IDByAbbreviation chains NameByAbbreviation and IDByName.
func IDByAbbreviation(abbr string) (int, error) {
	name, err := NameByAbbreviation(abbr)
	if err != nil {
		return 0, err
	}
	return IDByName(name)
}

// ColorsFor returns the brand colors for a display name, or DefaultColors.
func ColorsFor(name string) Colors {
	if c, ok := brandColors[name]; ok {
		return c
	}
	return DefaultColors
}
