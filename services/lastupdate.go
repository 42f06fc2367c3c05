package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vacciprofile/models"
)

// StampLastUpdate upserts the last_updates row for the given entity kind.
// Failures are reported to the caller for logging but must not fail the
// mutation that triggered the stamp.
func StampLastUpdate(db *gorm.DB, kind string) error {
	row := models.LastUpdate{
		ModelName:     kind,
		LastUpdatedAt: time.Now().UTC(),
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "model_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_updated_at", "updated_at"}),
	}).Create(&row).Error
}

// LatestUpdate returns the most recently stamped row across all kinds, or
// nil when nothing has been recorded yet.
func LatestUpdate(db *gorm.DB) (*models.LastUpdate, error) {
	var row models.LastUpdate
	err := db.Order("last_updated_at desc").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
