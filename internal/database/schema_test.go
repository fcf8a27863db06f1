package database

import (
	"testing"

	"deckvault/internal/config"
	"deckvault/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name        string
		mode        string
		env         string
		destructive bool
		wantSQL     bool
		wantAuto    bool
		wantErr     bool
	}{
		{name: "default hybrid in development", mode: "", env: "development", wantSQL: true, wantAuto: true},
		{name: "hybrid in production runs sql only", mode: "hybrid", env: "production", wantSQL: true, wantAuto: false},
		{name: "sql mode", mode: "sql", env: "development", wantSQL: true, wantAuto: false},
		{name: "auto mode in development", mode: "auto", env: "development", wantSQL: false, wantAuto: true},
		{name: "auto mode refused in production", mode: "auto", env: "production", wantErr: true},
		{name: "auto mode allowed in production with override", mode: "auto", env: "production", destructive: true, wantSQL: false, wantAuto: true},
		{name: "unknown mode", mode: "bogus", env: "development", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{
				DBSchemaMode:                  tt.mode,
				Env:                           tt.env,
				DBAutoMigrateAllowDestructive: tt.destructive,
			}
			runSQL, runAuto, err := schemaPolicy(cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, runSQL)
			assert.Equal(t, tt.wantAuto, runAuto)
		})
	}
}

func TestRegisteredMigrationsAreOrdered(t *testing.T) {
	ms := GetMigrations()
	require.NotEmpty(t, ms)
	for i := 1; i < len(ms); i++ {
		assert.Less(t, ms[i-1].Version, ms[i].Version)
	}
	for _, m := range ms {
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
	}
}

func TestPersistentModels_CoversEngagementTables(t *testing.T) {
	var haveLike, haveView bool
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *models.DeckLike:
			haveLike = true
		case *models.DeckView:
			haveView = true
		}
	}
	require.True(t, haveLike, "PersistentModels should include DeckLike")
	require.True(t, haveView, "PersistentModels should include DeckView")
}
