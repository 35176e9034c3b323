package schema

// Custom string types for type safety.
type (
	// Metric identifies one contribution statistic.
	Metric string

	// OutputMode represents the format of the console output.
	OutputMode string

	// ChartMode represents which chart artifacts are rendered.
	ChartMode string

	// DatabaseBackend represents the database backend for persistence.
	DatabaseBackend string
)

// All metrics computed per author.
const (
	MetricCommits      Metric = "git_commits"
	MetricLinesAdded   Metric = "lines_added"
	MetricLinesDeleted Metric = "lines_deleted"
	MetricCurrentLines Metric = "core_code_lines_current"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All chart modes supported.
const (
	PNGCharts  ChartMode = "png" // default
	HTMLCharts ChartMode = "html"
	BothCharts ChartMode = "both"
	NoCharts   ChartMode = "none"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllMetrics lists the metrics in report order.
var AllMetrics = []Metric{
	MetricCommits,
	MetricLinesAdded,
	MetricLinesDeleted,
	MetricCurrentLines,
}

// MetricTitles maps each metric to its human-readable report title.
var MetricTitles = map[Metric]string{
	MetricCommits:      "Commits",
	MetricLinesAdded:   "Lines Added",
	MetricLinesDeleted: "Lines Deleted",
	MetricCurrentLines: "Current Core Code Lines",
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidChartModes lists all valid chart modes.
var ValidChartModes = map[ChartMode]struct{}{
	PNGCharts:  {},
	HTMLCharts: {},
	BothCharts: {},
	NoCharts:   {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
