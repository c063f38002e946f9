package server

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/hospital-accounts/internal/server/config"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	return c
}

func TestNewApp_MemorySeeded(t *testing.T) {
	var out bytes.Buffer
	app, err := NewApp(context.Background(), memoryConfig(), &out)
	require.NoError(t, err)

	users, err := app.Accounts().Users(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 4)

	st, err := app.Accounts().SignIn(context.Background(), "admin@test.com", "password")
	require.NoError(t, err)
	assert.Equal(t, models.SignInSuccess, st)

	assert.Contains(t, out.String(), `"storage":"memory"`)
}

func TestNewApp_NoSeed(t *testing.T) {
	c := memoryConfig()
	c.SeedDemoUsers = false

	app, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.NoError(t, err)

	users, err := app.Accounts().Users(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestNewApp_BadLogLevel(t *testing.T) {
	c := memoryConfig()
	c.LogLevel = "shout"

	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewApp_UnknownStorage(t *testing.T) {
	c := memoryConfig()
	c.Storage = "tape"

	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewApp_PostgresOpenError(t *testing.T) {
	orig := openPostgres
	t.Cleanup(func() { openPostgres = orig })
	openPostgres = func(context.Context, string) (*sql.DB, error) {
		return nil, errors.New("connection refused")
	}

	c := memoryConfig()
	c.Storage = config.StoragePostgres
	c.DatabaseDSN = "postgres://nowhere"

	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error: connection refused")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig(), &bytes.Buffer{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}
