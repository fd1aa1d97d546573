package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteConfigForcedPrimaryKey(t *testing.T) {
	db := newTestDB(t)

	cfg := SiteConfig{SiteName: "Réseau Nord", ID: 42}
	require.NoError(t, db.Create(&cfg).Error)
	assert.Equal(t, uint(1), cfg.ID)

	var count int64
	require.NoError(t, db.Model(&SiteConfig{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSiteConfigSaveRewritesSameRow(t *testing.T) {
	db := newTestDB(t)

	cfg := SiteConfig{SiteName: "Avant"}
	require.NoError(t, db.Create(&cfg).Error)

	// Un Save avec un ID initial différent doit quand même réécrire la ligne 1.
	other := SiteConfig{ID: 7, SiteName: "Après"}
	require.NoError(t, db.Save(&other).Error)

	var count int64
	require.NoError(t, db.Model(&SiteConfig{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored SiteConfig
	require.NoError(t, db.First(&stored, 1).Error)
	assert.Equal(t, "Après", stored.SiteName)
}
