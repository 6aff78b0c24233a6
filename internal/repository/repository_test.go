// Package repository_test provides unit tests for the repository layer.
// Tests use pgxmock v4 for database mocking and follow table-driven testing patterns.
package repository_test

import (
	"testing"
	"time"

	"github.com/avissapr/coursework/internal/database"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

// testTime is the fixed timestamp returned by mocked rows.
var testTime = time.Date(2025, 10, 25, 12, 0, 0, 0, time.UTC)

// newMockDB creates a pgxmock pool and injects it into the database package
// for the duration of the test. Expectations are checked on cleanup.
func newMockDB(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = mock

	t.Cleanup(func() {
		database.DB = oldDB
		require.NoError(t, mock.ExpectationsWereMet(), "All expectations should be met")
		mock.Close()
	})

	return mock
}

func intPtr(v int) *int { return &v }
