package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vacciprofile/services"
)

// respondError maps the service error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an infrastructure error: logged, not echoed.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var ve *services.ValidationError
	var ce *services.ConflictError
	switch {
	case errors.As(err, &ve), errors.As(err, &ce):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "record not found"})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "server error"})
	}
}

// parseID parses the :id route parameter.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, &services.ValidationError{Field: "id", Message: "invalid id"}
	}
	return uint(id), nil
}

// findByID loads one record by primary key, translating gorm's not-found.
func findByID[T any](db *gorm.DB, id uint) (*T, error) {
	var rec T
	if err := db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// applyIfSet replaces dst with the trimmed incoming value when non-blank.
// Blank means "not provided" on the update path.
func applyIfSet(dst *string, incoming string) {
	if v := services.NormalizeText(incoming); v != "" {
		*dst = v
	}
}

// stamp records the mutation in the last_updates table. A failed stamp is
// logged and swallowed so it never fails the mutation itself.
func stamp(db *gorm.DB, log *zap.Logger, kind string) {
	if err := services.StampLastUpdate(db, kind); err != nil {
		log.Warn("last-update stamp failed", zap.String("kind", kind), zap.Error(err))
	}
}

// keyTaken reports whether another record (excluding excludeID) already uses
// the natural key value in the given column.
func keyTaken[T any](db *gorm.DB, column, value string, excludeID uint) (bool, error) {
	var count int64
	q := db.Model(new(T)).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
