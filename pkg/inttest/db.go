// Package inttest contains shared fixtures for integration tests. These tests
// need a Docker daemon to run the throwaway Postgres container.
package inttest

import (
	"log/slog"
	"os"
	"testing"

	_ "github.com/lib/pq" // postgres driver
	"github.com/orlangure/gnomock"
	"github.com/orlangure/gnomock/preset/postgres"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/weddinghub/guest-manager/pkg/config"
	"github.com/weddinghub/guest-manager/pkg/storage"
)

// SetupDB creates a PostgreSQL container. Gorm is connected to the DB and runs the migrations.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	container, err := gnomock.Start(
		postgres.Preset(
			postgres.WithUser("wedding", "wedding"),
			postgres.WithDatabase("test_wedding"),
		),
	)
	require.NoError(t, err, "failed to start DB")
	t.Cleanup(func() { require.NoError(t, gnomock.Stop(container), "failed to stop DB") })

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, err := storage.NewDatabase(logger, config.Postgresql{
		Host:         container.Host,
		Port:         container.DefaultPort(),
		Username:     "wedding",
		Password:     "wedding",
		DatabaseName: "test_wedding",
	})
	require.NoError(t, err, "failed to setup DB")
	return db
}
