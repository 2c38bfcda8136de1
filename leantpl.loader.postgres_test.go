package leantpl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := DefaultPostgresConfig()
		assert.Equal(t, PostgresDefaultMaxOpenConns, config.MaxOpenConns)
		assert.Equal(t, PostgresDefaultMaxIdleConns, config.MaxIdleConns)
		assert.Equal(t, 5*time.Minute, config.ConnMaxLifetime)
		assert.Equal(t, PostgresTablePrefix, config.TablePrefix)
		assert.Equal(t, 30*time.Second, config.QueryTimeout)
		assert.False(t, config.AutoMigrate)
	})

	t.Run("empty connection string is rejected", func(t *testing.T) {
		_, err := NewPostgresLoader(PostgresConfig{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgPostgresEmptyConnString)
	})
}
