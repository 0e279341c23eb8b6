package businessflow

import (
	"testing"

	"github.com/scoutdesk/scoutdesk/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		entityType models.EntityType
		scopeKey   string
		number     int64
		expected   string
	}{
		{
			name:       "report first allocation",
			entityType: models.EntityTypeReport,
			scopeKey:   "2025",
			number:     1,
			expected:   "REP-2025-00001",
		},
		{
			name:       "report mid range",
			entityType: models.EntityTypeReport,
			scopeKey:   "2025",
			number:     4271,
			expected:   "REP-2025-04271",
		},
		{
			name:       "player global scope drops year segment",
			entityType: models.EntityTypePlayer,
			scopeKey:   models.GlobalScopeKey,
			number:     42,
			expected:   "PLY-00042",
		},
		{
			name:       "tournament",
			entityType: models.EntityTypeTournament,
			scopeKey:   "2026",
			number:     7,
			expected:   "TOR-2026-00007",
		},
		{
			name:       "number widens past five digits",
			entityType: models.EntityTypeReport,
			scopeKey:   "2025",
			number:     123456,
			expected:   "REP-2025-123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatIdentifier(tt.entityType, tt.scopeKey, tt.number))
		})
	}
}

func TestParseIdentifier(t *testing.T) {
	t.Run("round trips year scoped identifiers", func(t *testing.T) {
		entityType, scopeKey, number, err := ParseIdentifier("REP-2025-00042")
		require.NoError(t, err)
		assert.Equal(t, models.EntityTypeReport, entityType)
		assert.Equal(t, "2025", scopeKey)
		assert.Equal(t, int64(42), number)
	})

	t.Run("round trips global scoped identifiers", func(t *testing.T) {
		entityType, scopeKey, number, err := ParseIdentifier("PLY-00007")
		require.NoError(t, err)
		assert.Equal(t, models.EntityTypePlayer, entityType)
		assert.Equal(t, models.GlobalScopeKey, scopeKey)
		assert.Equal(t, int64(7), number)
	})

	t.Run("accepts widened numbers", func(t *testing.T) {
		entityType, scopeKey, number, err := ParseIdentifier("TOR-2026-123456")
		require.NoError(t, err)
		assert.Equal(t, models.EntityTypeTournament, entityType)
		assert.Equal(t, "2026", scopeKey)
		assert.Equal(t, int64(123456), number)
	})

	t.Run("rejects malformed identifiers", func(t *testing.T) {
		malformed := []string{
			"",
			"REP",
			"XXX-2025-00001",
			"REP-00001",          // missing year segment
			"PLY-2025-00001",     // players carry no year
			"REP-25-00001",       // year must be four digits
			"REP-2025-1",         // number must be at least five digits
			"REP-2025-00000",     // numbers start at one
			"REP-2025-abcde",     // number must be numeric
			"rep-2025-00001",     // prefix is upper case
			"REP-2025-00001-foo", // trailing segment
		}
		for _, id := range malformed {
			_, _, _, err := ParseIdentifier(id)
			assert.Error(t, err, "expected %q to be rejected", id)
			assert.True(t, IsInvalidIdentifier(err), "expected invalid identifier error for %q", id)
		}
	})

	t.Run("format and parse are inverse", func(t *testing.T) {
		id := FormatIdentifier(models.EntityTypeReport, "2025", 99999)
		entityType, scopeKey, number, err := ParseIdentifier(id)
		require.NoError(t, err)
		assert.Equal(t, models.EntityTypeReport, entityType)
		assert.Equal(t, "2025", scopeKey)
		assert.Equal(t, int64(99999), number)
	})
}
