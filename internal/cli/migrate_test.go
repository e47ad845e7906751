package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/migrations"
)

func TestMigrateCommand_ParseFlags(t *testing.T) {
	defaults := config.Database{Driver: config.DriverSQLite, Path: config.DefaultDatabasePath}

	tests := []struct {
		name    string
		args    []string
		action  string
		steps   int
		wantErr bool
	}{
		{name: "up", args: []string{"up"}, action: ActionUp},
		{name: "down all", args: []string{"down"}, action: ActionDown},
		{name: "down two", args: []string{"down", "2"}, action: ActionDown, steps: 2},
		{name: "version", args: []string{"version"}, action: ActionVersion},
		{name: "missing action", args: nil, wantErr: true},
		{name: "unknown action", args: []string{"sideways"}, wantErr: true},
		{name: "bad steps", args: []string{"down", "zero"}, wantErr: true},
		{name: "negative steps", args: []string{"down", "-1"}, wantErr: true},
		{name: "extra argument", args: []string{"up", "now"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewMigrateCommand(defaults)
			err := cmd.ParseFlags(tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.action, cmd.Action)
			assert.Equal(t, tt.steps, cmd.Steps)
		})
	}
}

func TestMigrateCommand_FlagsOverrideConfig(t *testing.T) {
	cmd := NewMigrateCommand(config.Database{Driver: config.DriverSQLite, Path: "a.db"})

	require.NoError(t, cmd.ParseFlags([]string{"-db", "b.db", "up"}))

	assert.Equal(t, "b.db", cmd.Database.Path)
	assert.Equal(t, config.DriverSQLite, cmd.Database.Driver)
}

func TestMigrateCommand_Run(t *testing.T) {
	cfg := config.Database{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "migrate.db"),
	}

	run := func(args ...string) {
		t.Helper()
		cmd := NewMigrateCommand(cfg)
		require.NoError(t, cmd.ParseFlags(args))
		require.NoError(t, cmd.Run())
	}

	version := func() (uint, bool) {
		t.Helper()
		dsn, err := database.DSN(cfg)
		require.NoError(t, err)
		m, err := migrations.New(cfg.Driver, dsn)
		require.NoError(t, err)
		defer m.Close()
		v, _, ok, err := m.Version()
		require.NoError(t, err)
		return v, ok
	}

	run("up")
	v, ok := version()
	require.True(t, ok)
	assert.Equal(t, uint(3), v)

	run("down", "1")
	v, _ = version()
	assert.Equal(t, uint(2), v)

	run("down")
	_, ok = version()
	assert.False(t, ok)

	run("version")
}
