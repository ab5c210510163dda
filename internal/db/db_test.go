package db

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestOpen_SQLiteMigrateAndReset(t *testing.T) {
	gormDB, err := Open(Options{Driver: DriverSQLite, DSN: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, Migrate(gormDB))
	for _, m := range Models() {
		assert.True(t, gormDB.Migrator().HasTable(m))
	}
	assert.NoError(t, Ping(context.Background(), gormDB))

	require.NoError(t, Reset(gormDB))
	for _, m := range Models() {
		assert.False(t, gormDB.Migrator().HasTable(m))
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(Options{Driver: "oracle"})
	assert.EqualError(t, err, `unsupported driver "oracle"`)
}

func TestLogger_SkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, logger.Warn)
	sql := func() (string, int64) { return "SELECT * FROM users WHERE email = 'x'", 0 }

	l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), sql, errors.New("connection reset"))
	assert.Contains(t, buf.String(), "connection reset")
}
