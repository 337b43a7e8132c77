package pgblobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPGBlobs_GetSet(t *testing.T) {
	if testing.Short() {
		t.Skip("needs docker")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "admin",
			"POSTGRES_PASSWORD": "admin",
			"POSTGRES_DB":       "cargobox_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := "postgres://admin:admin@" + host + ":" + port.Port() + "/cargobox_test?sslmode=disable"
	st, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	_, ok, err := st.Get(ctx, "orders")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, st.Set(ctx, "orders", []byte(`[{"id":"1"}]`)))
	require.NoError(t, st.Set(ctx, "orders", []byte(`[{"id":"1"},{"id":"2"}]`)))

	b, ok, err := st.Get(ctx, "orders")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `[{"id":"1"},{"id":"2"}]`, string(b))

	// повторная инициализация схемы идемпотентна
	st2, err := New(dsn)
	require.NoError(t, err)
	st2.Close()
}
