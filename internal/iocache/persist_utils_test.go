package iocache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/huangsam/gitshare/schema"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"valid simple name", "summary_cache", false},
		{"valid name with numbers", "cache_v2", false},
		{"valid leading underscore", "_cache", false},
		{"empty name", "", true},
		{"leading digit", "2cache", true},
		{"sql injection attempt", "cache; DROP TABLE users", true},
		{"hyphenated", "summary-cache", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"summary_cache"`, quoteTableName("summary_cache", schema.SQLiteBackend))
	assert.Equal(t, `"summary_cache"`, quoteTableName("summary_cache", schema.PostgreSQLBackend))
	assert.Equal(t, "`summary_cache`", quoteTableName("summary_cache", schema.MySQLBackend))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, time.June, 15, 10, 30, 0, 123456789, time.UTC)

	sqliteVal := formatTime(ts, schema.SQLiteBackend)
	str, ok := sqliteVal.(string)
	assert.True(t, ok)
	parsed, err := time.Parse(time.RFC3339Nano, str)
	assert.NoError(t, err)
	assert.True(t, parsed.Equal(ts))

	mysqlVal := formatTime(ts, schema.MySQLBackend)
	assert.Equal(t, ts, mysqlVal)
}
