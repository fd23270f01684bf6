package configs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOpenConnectionStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	db, err := OpenConnection(ctx, ENV{DBDriver: "mysql", DBHost: "127.0.0.1", DBPort: "1", DBUser: "u", DBName: "gsk"})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenConnectionStopsRetryingAtDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	db, err := OpenConnection(ctx, ENV{DBDriver: "mysql", DBHost: "127.0.0.1", DBPort: "1", DBUser: "u", DBName: "gsk"})
	assert.Nil(t, db)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), retryDelay)
}

func TestOpenConnectionUnknownDriver(t *testing.T) {
	_, err := OpenConnection(context.Background(), ENV{DBDriver: "sqlite"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
