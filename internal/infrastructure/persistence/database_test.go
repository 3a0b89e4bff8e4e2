package persistence

import (
	"context"
	"fmt"
	"testing"

	"github.com/fiscalmanager/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabase_Stats(t *testing.T) {
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping(context.Background()))

	stats, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
	assert.Equal(t, 1, stats.OpenConnections)
	assert.Equal(t, 0, stats.InUse)
	assert.Equal(t, 1, stats.Idle)
	assert.Equal(t, config.DriverSQLite, db.Driver())
}
