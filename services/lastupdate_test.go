package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacciprofile/models"
)

func TestStampLastUpdateUpsert(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, StampLastUpdate(db, models.KindVaccine))
	var first models.LastUpdate
	require.NoError(t, db.Where("model_name = ?", models.KindVaccine).First(&first).Error)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, StampLastUpdate(db, models.KindVaccine))

	// Still one row per kind, timestamp moved forward.
	var count int64
	db.Model(&models.LastUpdate{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var second models.LastUpdate
	require.NoError(t, db.Where("model_name = ?", models.KindVaccine).First(&second).Error)
	assert.True(t, second.LastUpdatedAt.After(first.LastUpdatedAt))
}

func TestLatestUpdate(t *testing.T) {
	db := newTestDB(t)

	row, err := LatestUpdate(db)
	require.NoError(t, err)
	assert.Nil(t, row)

	require.NoError(t, StampLastUpdate(db, models.KindPathogen))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, StampLastUpdate(db, models.KindVaccine))

	row, err = LatestUpdate(db)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, models.KindVaccine, row.ModelName)
}
