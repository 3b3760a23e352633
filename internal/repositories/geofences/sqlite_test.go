package geofences

import (
	"context"
	"database/sql"
	"testing"

	"github.com/chris-shaw-2011/geo-time-tracker/internal/common"
	"github.com/chris-shaw-2011/geo-time-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE geofence (
  name TEXT PRIMARY KEY,
  latitude REAL NOT NULL,
  longitude REAL NOT NULL,
  radius REAL NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestUpsert_InsertAndUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.Geofence{Name: "office", Latitude: 40.1, Longitude: -75.2, Radius: 30}))
	require.NoError(t, r.Upsert(ctx, &models.Geofence{Name: "office", Latitude: 40.1, Longitude: -75.2, Radius: 50}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 50.0, got[0].Radius)
}

func TestGetAll_OrderedByName(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for _, name := range []string{"warehouse", "office", "site-b"} {
		require.NoError(t, r.Upsert(ctx, &models.Geofence{Name: name, Latitude: 1, Longitude: 2, Radius: 10}))
	}

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "office", got[0].Name)
	assert.Equal(t, "site-b", got[1].Name)
	assert.Equal(t, "warehouse", got[2].Name)
}

func TestDeleteByName_SuccessAndNotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.Geofence{Name: "office", Latitude: 1, Longitude: 2, Radius: 10}))
	require.NoError(t, r.DeleteByName(ctx, "office"))

	err := r.DeleteByName(ctx, "office")
	require.ErrorIs(t, err, common.ErrNotFound)
}
