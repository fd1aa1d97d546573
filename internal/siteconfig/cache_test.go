package siteconfig

import (
	"testing"
	"time"

	"mediabibli/internal/database"
	"mediabibli/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	database.DB = db

	// Le cache est global au processus : chaque test repart à vide.
	Invalidate()
	t.Cleanup(Invalidate)

	return db
}

func TestGetCreatesAndCaches(t *testing.T) {
	db := newTestDB(t)

	cfg, ok := Get()
	require.True(t, ok)
	assert.Equal(t, "MediaBibli", cfg.SiteName)

	// Écriture en base sans invalidation : l'instantané reste servi.
	require.NoError(t, db.Model(&models.SiteConfig{}).Where("id = ?", 1).
		Update("site_name", "Modifié").Error)

	stale, ok := Get()
	require.True(t, ok)
	assert.Equal(t, "MediaBibli", stale.SiteName,
		"une écriture qui n'invalide pas le cache laisse l'ancien instantané visible")
}

func TestInvalidateForcesReload(t *testing.T) {
	db := newTestDB(t)

	_, ok := Get()
	require.True(t, ok)

	require.NoError(t, db.Model(&models.SiteConfig{}).Where("id = ?", 1).
		Update("site_name", "Après invalidation").Error)

	Invalidate()

	fresh, ok := Get()
	require.True(t, ok)
	assert.Equal(t, "Après invalidation", fresh.SiteName)
}

func TestExpiryForcesReload(t *testing.T) {
	db := newTestDB(t)

	oldTTL := ttl
	ttl = 10 * time.Millisecond
	t.Cleanup(func() { ttl = oldTTL })

	_, ok := Get()
	require.True(t, ok)

	require.NoError(t, db.Model(&models.SiteConfig{}).Where("id = ?", 1).
		Update("site_name", "Après expiration").Error)

	time.Sleep(20 * time.Millisecond)

	fresh, ok := Get()
	require.True(t, ok)
	assert.Equal(t, "Après expiration", fresh.SiteName)
}

func TestGetSwallowsDatabaseFailure(t *testing.T) {
	db := newTestDB(t)

	// Connexion fermée : la lecture échoue, Get répond (zéro, false)
	// au lieu de propager l'erreur.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	cfg, ok := Get()
	assert.False(t, ok)
	assert.Equal(t, models.SiteConfig{}, cfg)
}
