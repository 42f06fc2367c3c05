package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vacciprofile/services"
)

func setupCSVRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/csv", admin)
	importer := services.NewImporter(db, log)

	rg.POST("/import/:kind", func(c *gin.Context) {
		kind := c.Param("kind")
		if !services.KnownCSVKind(kind) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": fmt.Sprintf("unknown CSV kind %q", kind)})
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "CSV file is required"})
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, log, err)
			return
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			respondError(c, log, err)
			return
		}

		result, err := importer.Import(kind, data)
		if err != nil {
			respondError(c, log, err)
			return
		}

		csvRowsImported.WithLabelValues(kind).Add(float64(len(result.Success)))
		csvRowsMerged.WithLabelValues(kind).Add(float64(len(result.Updated)))
		csvRowsRejected.WithLabelValues(kind).Add(float64(len(result.Errors)))
		log.Info("CSV import finished",
			zap.String("kind", kind),
			zap.Int("imported", len(result.Success)),
			zap.Int("merged", len(result.Updated)),
			zap.Int("rejected", len(result.Errors)))

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  fmt.Sprintf("Imported %d %s successfully", result.Imported(), kind),
			"imported": result.Imported(),
			"errors":   len(result.Errors),
			"details":  result,
		})
	})

	rg.GET("/export/:kind", func(c *gin.Context) {
		kind := c.Param("kind")
		if !services.KnownCSVKind(kind) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": fmt.Sprintf("unknown CSV kind %q", kind)})
			return
		}

		data, err := services.ExportCSV(db, kind)
		if err != nil {
			respondError(c, log, err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename="+services.ExportFilename(kind))
		c.Data(http.StatusOK, "text/csv", data)
	})
}
