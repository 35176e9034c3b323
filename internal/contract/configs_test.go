package contract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/gitshare/schema"
)

var testBoundary = time.Date(2021, time.November, 25, 0, 0, 0, 0, time.UTC)

func TestParseYear(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"2021", 2021, false},
		{" 2024 ", 2024, false},
		{"abc", 0, true},
		{"1969", 0, true},
		{"10000", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseYear(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseYearRange(t *testing.T) {
	start, end, err := ParseYearRange("2014-2021")
	require.NoError(t, err)
	assert.Equal(t, 2014, start)
	assert.Equal(t, 2021, end)

	_, _, err = ParseYearRange("2014")
	assert.Error(t, err)

	_, _, err = ParseYearRange("2014-abc")
	assert.Error(t, err)
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

	t.Run("plain range", func(t *testing.T) {
		w := ResolveWindow(2017, 2020, testBoundary, now)
		assert.Equal(t, time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC), w.StartDate)
		assert.Equal(t, time.Date(2020, time.December, 31, 0, 0, 0, 0, time.UTC), w.EndDate)
	})

	t.Run("current year clamps to today", func(t *testing.T) {
		w := ResolveWindow(2023, 2024, testBoundary, now)
		assert.Equal(t, time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), w.EndDate)
	})

	t.Run("start on boundary year begins at boundary", func(t *testing.T) {
		w := ResolveWindow(2021, 2022, testBoundary, now)
		assert.Equal(t, testBoundary, w.StartDate)
	})

	t.Run("end on boundary year stops day before boundary", func(t *testing.T) {
		w := ResolveWindow(2017, 2021, testBoundary, now)
		assert.Equal(t, time.Date(2021, time.November, 24, 0, 0, 0, 0, time.UTC), w.EndDate)
	})

	t.Run("single boundary year keeps boundary start and year end", func(t *testing.T) {
		w := ResolveWindow(2021, 2021, testBoundary, now)
		assert.Equal(t, testBoundary, w.StartDate)
		assert.Equal(t, time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC), w.EndDate)
	})
}

func TestResolveWindows(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	presets := []string{"2014-2021", "2021-2022"}

	t.Run("no args uses presets", func(t *testing.T) {
		windows, err := ResolveWindows(nil, presets, testBoundary, now)
		require.NoError(t, err)
		require.Len(t, windows, 2)
		assert.Equal(t, "2014-2021", windows[0].Label())
		assert.Equal(t, "2021-2022", windows[1].Label())
	})

	t.Run("one arg runs to current year", func(t *testing.T) {
		windows, err := ResolveWindows([]string{"2017"}, presets, testBoundary, now)
		require.NoError(t, err)
		require.Len(t, windows, 1)
		assert.Equal(t, "2017-2024", windows[0].Label())
	})

	t.Run("two args define one window", func(t *testing.T) {
		windows, err := ResolveWindows([]string{"2021", "2024"}, presets, testBoundary, now)
		require.NoError(t, err)
		require.Len(t, windows, 1)
		assert.Equal(t, "2021-2024", windows[0].Label())
	})

	t.Run("inverted range fails", func(t *testing.T) {
		_, err := ResolveWindows([]string{"2024", "2021"}, presets, testBoundary, now)
		assert.Error(t, err)
	})

	t.Run("bad preset fails", func(t *testing.T) {
		_, err := ResolveWindows(nil, []string{"nope"}, testBoundary, now)
		assert.Error(t, err)
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	assert.NoError(t, ValidateDatabaseConnectionString(schema.SQLiteBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.NoneBackend, ""))
	assert.NoError(t, ValidateDatabaseConnectionString(schema.MySQLBackend, "user:pass@tcp(localhost:3306)/db"))
	assert.Error(t, ValidateDatabaseConnectionString(schema.MySQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString(schema.PostgreSQLBackend, ""))
	assert.Error(t, ValidateDatabaseConnectionString("bogus", ""))
}

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		RepoPathStr:  ".",
		Output:       "text",
		Charts:       "png",
		OutputDir:    "git_summary",
		Color:        "yes",
		CacheBackend: "sqlite",
	}
}

func TestProcessAndValidate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	newClient := func() *MockGitClient {
		client := new(MockGitClient)
		client.On("GetRepoRoot", ctx, ".").Return("/repo", nil)
		return client
	}

	t.Run("happy path with defaults", func(t *testing.T) {
		cfg := &Config{}
		client := newClient()
		err := ProcessAndValidate(ctx, cfg, client, validRawInput(), []string{"2021", "2024"}, now)
		require.NoError(t, err)

		assert.Equal(t, "/repo", cfg.RepoPath)
		assert.Equal(t, schema.TextOut, cfg.Output)
		assert.Equal(t, schema.PNGCharts, cfg.Charts)
		assert.True(t, cfg.UseColors)
		assert.Equal(t, DefaultExtensions, cfg.Extensions)
		assert.Equal(t, DefaultLegacyDirs, cfg.LegacyEra.Dirs)
		assert.Equal(t, DefaultModernDirs, cfg.ModernEra.Dirs)
		assert.Equal(t, testBoundary, cfg.EraBoundary)
		require.Len(t, cfg.Windows, 1)
		assert.Equal(t, "2021-2024", cfg.Windows[0].Label())
		client.AssertExpectations(t)
	})

	t.Run("no year args resolves presets", func(t *testing.T) {
		cfg := &Config{}
		err := ProcessAndValidate(ctx, cfg, newClient(), validRawInput(), nil, now)
		require.NoError(t, err)
		assert.Len(t, cfg.Windows, len(DefaultPresets))
	})

	t.Run("era overrides from config file", func(t *testing.T) {
		cfg := &Config{}
		input := validRawInput()
		input.Eras = EraRawInput{
			Boundary:   "2020-01-01",
			LegacyName: "v1",
			ModernDirs: []string{"pkg"},
		}
		err := ProcessAndValidate(ctx, cfg, newClient(), input, []string{"2021", "2024"}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), cfg.EraBoundary)
		assert.Equal(t, "v1", cfg.LegacyEra.Name)
		assert.Equal(t, []string{"pkg"}, cfg.ModernEra.Dirs)
		assert.Equal(t, DefaultModernName, cfg.ModernEra.Name)
	})

	t.Run("invalid output mode", func(t *testing.T) {
		input := validRawInput()
		input.Output = "xml"
		err := ProcessAndValidate(ctx, &Config{}, newClient(), input, nil, now)
		assert.Error(t, err)
	})

	t.Run("invalid chart mode", func(t *testing.T) {
		input := validRawInput()
		input.Charts = "svg"
		err := ProcessAndValidate(ctx, &Config{}, newClient(), input, nil, now)
		assert.Error(t, err)
	})

	t.Run("invalid color", func(t *testing.T) {
		input := validRawInput()
		input.Color = "maybe"
		err := ProcessAndValidate(ctx, &Config{}, newClient(), input, nil, now)
		assert.Error(t, err)
	})

	t.Run("negative width", func(t *testing.T) {
		input := validRawInput()
		input.Width = -1
		err := ProcessAndValidate(ctx, &Config{}, newClient(), input, nil, now)
		assert.Error(t, err)
	})

	t.Run("extension without dot", func(t *testing.T) {
		input := validRawInput()
		input.Extensions = []string{"jl"}
		err := ProcessAndValidate(ctx, &Config{}, newClient(), input, nil, now)
		assert.Error(t, err)
	})

	t.Run("invalid cache backend", func(t *testing.T) {
		input := validRawInput()
		input.CacheBackend = "oracle"
		err := ProcessAndValidate(ctx, &Config{}, newClient(), input, nil, now)
		assert.Error(t, err)
	})

	t.Run("mysql runs backend requires connection string", func(t *testing.T) {
		input := validRawInput()
		input.RunsBackend = "mysql"
		err := ProcessAndValidate(ctx, &Config{}, newClient(), input, nil, now)
		assert.Error(t, err)
	})

	t.Run("unresolvable repository", func(t *testing.T) {
		client := new(MockGitClient)
		client.On("GetRepoRoot", ctx, ".").Return("", assert.AnError)
		err := ProcessAndValidate(ctx, &Config{}, client, validRawInput(), nil, now)
		assert.Error(t, err)
	})
}

func TestEraFor(t *testing.T) {
	cfg := &Config{
		EraBoundary: testBoundary,
		LegacyEra:   EraConfig{Name: "legacy"},
		ModernEra:   EraConfig{Name: "modern"},
	}
	assert.Equal(t, "legacy", cfg.EraFor(testBoundary.AddDate(0, 0, -1)).Name)
	assert.Equal(t, "modern", cfg.EraFor(testBoundary).Name)
	assert.Equal(t, "modern", cfg.EraFor(testBoundary.AddDate(1, 0, 0)).Name)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{RepoPath: "/repo", SkipCurrentLines: false}
	clone := cfg.Clone()
	clone.RepoPath = "/other"
	clone.SkipCurrentLines = true
	assert.Equal(t, "/repo", cfg.RepoPath)
	assert.False(t, cfg.SkipCurrentLines)
}
