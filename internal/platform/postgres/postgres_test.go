package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestConnectRejectsEmptyDSN(t *testing.T) {
	_, err := Connect(context.Background(), "  ")
	require.EqualError(t, err, "postgres DSN is empty")
}

func TestOptions(t *testing.T) {
	o := options{maxOpen: 10, maxIdle: 5, pingTimeout: time.Second, logLevel: logger.Warn}
	WithMaxOpenConns(2)(&o)
	WithMaxOpenConns(0)(&o)
	WithPingTimeout(0)(&o)
	WithSQLLogging()(&o)

	assert.Equal(t, 2, o.maxOpen)
	assert.Equal(t, 2, o.maxIdle)
	assert.Equal(t, time.Second, o.pingTimeout)
	assert.Equal(t, logger.Info, o.logLevel)
}
