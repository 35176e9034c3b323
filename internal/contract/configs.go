package contract

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/gitshare/schema"
)

// Default values for configuration.
const (
	DefaultOutputDir   = "git_summary"
	DefaultEraBoundary = "2021-11-25"
	DefaultLegacyName  = "legacy"
	DefaultModernName  = "modern"
)

// Defaults matching the preset year ranges and source layout of the
// repository this tool was first written for. All of them are overridable
// from the config file.
var (
	DefaultPresets    = []string{"2014-2021", "2014-2025", "2017-2021", "2021-2022", "2022-2023", "2023-2024", "2024-2025", "2021-2025"}
	DefaultLegacyDirs = []string{"documentation", "tools", "model", "optimization"}
	DefaultModernDirs = []string{"src", "lib", "docs"}
	DefaultExtensions = []string{".jl", ".m"}
)

// EraConfig describes one code-organization era of the repository:
// which directories carry core source and what the era is called in
// the current-lines snapshot version tag.
type EraConfig struct {
	Name string
	Dirs []string
}

// Config holds the runtime configuration for a report.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath string
	Windows  []schema.Window

	Output     schema.OutputMode
	OutputFile string
	Charts     schema.ChartMode
	OutputDir  string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	SkipCurrentLines bool

	// Aliases maps a canonical author name to its known alternate names.
	Aliases map[string][]string

	// EraBoundary splits history into the legacy and modern eras; dates
	// strictly before the boundary use LegacyEra for blame analysis.
	EraBoundary time.Time
	LegacyEra   EraConfig
	ModernEra   EraConfig

	// Extensions selects which files are blame-eligible (with leading dot).
	Extensions []string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext
}

// EraRawInput holds the era definitions from the YAML config file.
type EraRawInput struct {
	Boundary   string   `mapstructure:"boundary"`
	LegacyName string   `mapstructure:"legacy-name"`
	ModernName string   `mapstructure:"modern-name"`
	LegacyDirs []string `mapstructure:"legacy-dirs"`
	ModernDirs []string `mapstructure:"modern-dirs"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from a flag/positional handling, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Charts         string `mapstructure:"charts"`
	OutputDir      string `mapstructure:"output-dir"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	SkipLOC        bool   `mapstructure:"skip-loc"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunsBackend    string `mapstructure:"runs-backend"`
	RunsDBConnect  string `mapstructure:"runs-db-connect"`

	// --- Fields from the config file only ---
	Aliases    map[string][]string `mapstructure:"aliases"`
	Presets    []string            `mapstructure:"presets"`
	Eras       EraRawInput         `mapstructure:"eras"`
	Extensions []string            `mapstructure:"extensions"`
}

// ResolveWindow turns a year pair into a concrete date window.
// The end date is clamped to today when the range ends in the current year,
// and both ends are clamped around the era boundary so a range never mixes
// the tail of the legacy era with the start of the modern one.
func ResolveWindow(startYear, endYear int, boundary time.Time, now time.Time) schema.Window {
	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	if endYear == now.Year() {
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	if !boundary.IsZero() {
		if startYear == boundary.Year() {
			start = boundary
		}
		if endYear == boundary.Year() && startYear != boundary.Year() {
			end = boundary.AddDate(0, 0, -1)
		}
	}
	return schema.Window{
		StartYear: startYear,
		EndYear:   endYear,
		StartDate: start,
		EndDate:   end,
	}
}

// ParseYearRange parses a "YYYY-YYYY" preset entry.
func ParseYearRange(s string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid year range %q (expected YYYY-YYYY)", s)
	}
	start, err := ParseYear(parts[0])
	if err != nil {
		return 0, 0, err
	}
	end, err := ParseYear(parts[1])
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// ParseYear parses and sanity-checks a single year argument.
func ParseYear(s string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid year %q: %w", s, err)
	}
	if year < 1970 || year > 9999 {
		return 0, fmt.Errorf("year %d out of range", year)
	}
	return year, nil
}

// ResolveWindows builds the window list for a run from positional year
// arguments; with no arguments every configured preset range is used.
func ResolveWindows(args []string, presets []string, boundary time.Time, now time.Time) ([]schema.Window, error) {
	var pairs [][2]int

	switch len(args) {
	case 0:
		for _, p := range presets {
			start, end, err := ParseYearRange(p)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, [2]int{start, end})
		}
	case 1:
		start, err := ParseYear(args[0])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]int{start, now.Year()})
	case 2:
		start, err := ParseYear(args[0])
		if err != nil {
			return nil, err
		}
		end, err := ParseYear(args[1])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, [2]int{start, end})
	default:
		return nil, fmt.Errorf("expected at most two year arguments, got %d", len(args))
	}

	windows := make([]schema.Window, 0, len(pairs))
	for _, p := range pairs {
		if p[0] > p[1] {
			return nil, fmt.Errorf("start year %d is after end year %d", p[0], p[1])
		}
		windows = append(windows, ResolveWindow(p[0], p[1], boundary, now))
	}
	return windows, nil
}

// ValidateDatabaseConnectionString checks that server-based backends carry
// a connection string. SQLite and none work without one.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("%s backend requires a connection string", backend)
		}
	case schema.SQLiteBackend, schema.NoneBackend:
		// No connection string required.
	default:
		return fmt.Errorf("unsupported database backend: %s", backend)
	}
	return nil
}

// ProcessAndValidate converts the raw input into the final validated Config.
// It resolves the repository root through the git client so later commands
// can assume RepoPath points at a real repository.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput, yearArgs []string, now time.Time) error {
	// 1. Repository path
	repoPath := input.RepoPathStr
	if repoPath == "" {
		repoPath = "."
	}
	root, err := client.GetRepoRoot(ctx, repoPath)
	if err != nil {
		return fmt.Errorf("cannot resolve repository at %q: %w", repoPath, err)
	}
	cfg.RepoPath = root

	// 2. Output modes
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode: %s. Must be text, json, or csv", input.Output)
	}
	cfg.OutputFile = input.OutputFile

	cfg.Charts = schema.ChartMode(strings.ToLower(input.Charts))
	if _, ok := schema.ValidChartModes[cfg.Charts]; !ok {
		return fmt.Errorf("invalid chart mode: %s. Must be png, html, both, or none", input.Charts)
	}

	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative: %d", input.Width)
	}
	cfg.Width = input.Width

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.UseColors = useColors
	cfg.SkipCurrentLines = input.SkipLOC

	// 3. Eras and blame-eligible extensions
	boundaryStr := input.Eras.Boundary
	if boundaryStr == "" {
		boundaryStr = DefaultEraBoundary
	}
	boundary, err := time.Parse(DateFormat, boundaryStr)
	if err != nil {
		return fmt.Errorf("invalid era boundary %q: %w", boundaryStr, err)
	}
	cfg.EraBoundary = boundary

	cfg.LegacyEra = EraConfig{Name: DefaultLegacyName, Dirs: DefaultLegacyDirs}
	cfg.ModernEra = EraConfig{Name: DefaultModernName, Dirs: DefaultModernDirs}
	if input.Eras.LegacyName != "" {
		cfg.LegacyEra.Name = input.Eras.LegacyName
	}
	if input.Eras.ModernName != "" {
		cfg.ModernEra.Name = input.Eras.ModernName
	}
	if len(input.Eras.LegacyDirs) > 0 {
		cfg.LegacyEra.Dirs = input.Eras.LegacyDirs
	}
	if len(input.Eras.ModernDirs) > 0 {
		cfg.ModernEra.Dirs = input.Eras.ModernDirs
	}

	cfg.Extensions = input.Extensions
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	// 4. Windows from positional years or presets
	presets := input.Presets
	if len(presets) == 0 {
		presets = DefaultPresets
	}
	windows, err := ResolveWindows(yearArgs, presets, boundary, now)
	if err != nil {
		return err
	}
	cfg.Windows = windows

	// 5. Aliases (report-time identity folding)
	cfg.Aliases = input.Aliases

	// 6. Persistence backends
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend: %s. Must be sqlite, mysql, postgresql, or none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	if input.RunsBackend == "" {
		cfg.RunsBackend = ""
	} else {
		cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(input.RunsBackend))
		if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
			return fmt.Errorf("invalid runs backend: %s. Must be sqlite, mysql, postgresql, or none", input.RunsBackend)
		}
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	if cfg.RunsBackend != "" {
		if err := ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
			return err
		}
	}

	return nil
}

// Clone returns a shallow copy of the config, safe for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// EraFor picks the blame era for a snapshot date.
func (c *Config) EraFor(date time.Time) EraConfig {
	if date.Before(c.EraBoundary) {
		return c.LegacyEra
	}
	return c.ModernEra
}
