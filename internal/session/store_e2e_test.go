//go:build e2e
// +build e2e

package session_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/cbu-recon/payscraper/internal/session"
	"github.com/cbu-recon/payscraper/pkg/payment"
)

func startContainer(t *testing.T, image, port string, waitFor wait.Strategy) string {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{port + "/tcp"},
			WaitingFor:   waitFor,
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	mapped, err := c.MappedPort(ctx, port+"/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("%s:%s", host, mapped.Port())
}

func exerciseStore(t *testing.T, store session.Store) {
	ctx := context.Background()
	records := []payment.Record{
		{payment.ColReceiptNo: "OR-1", payment.ColPrincipal: "100", payment.ColPrincipalPassBook: ""},
	}
	s := session.New("https://coop.example/ledger", records)

	require.NoError(t, store.Save(ctx, s, time.Hour))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.URL, got.URL)
	assert.Equal(t, records, got.Records)
	assert.Equal(t, s.Columns, got.Columns)

	got.Records[0][payment.ColPrincipalPassBook] = "100"
	require.NoError(t, store.Save(ctx, got, time.Hour))
	got, err = store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", got.Records[0][payment.ColPrincipalPassBook])

	short := session.New("short", records)
	require.NoError(t, store.Save(ctx, short, time.Second))
	time.Sleep(1500 * time.Millisecond)
	_, err = store.Get(ctx, short.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestRedisStore_E2E(t *testing.T) {
	addr := startContainer(t, "redis:7-alpine", "6379", wait.ForLog("Ready to accept connections"))

	store, err := session.NewRedisStore("redis://" + addr + "/0")
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}

func TestMongoStore_E2E(t *testing.T) {
	addr := startContainer(t, "mongo:7", "27017", wait.ForLog("Waiting for connections"))

	store, err := session.NewMongoStore("mongodb://"+addr, "payscraper_test")
	require.NoError(t, err)
	defer store.Close()

	exerciseStore(t, store)
}
