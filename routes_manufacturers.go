package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vacciprofile/models"
	"vacciprofile/services"
)

func setupManufacturerRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/manufacturers")
	populator := services.NewPopulator(db)

	rg.GET("", func(c *gin.Context) {
		var manufacturers []models.Manufacturer
		if err := db.Order("name").Find(&manufacturers).Error; err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(manufacturers), "manufacturers": manufacturers})
	})

	rg.GET("/populated", func(c *gin.Context) {
		var manufacturers []models.Manufacturer
		if err := db.Order("name").Find(&manufacturers).Error; err != nil {
			respondError(c, log, err)
			return
		}
		populated, err := populator.PopulateManufacturers(manufacturers)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(populated), "manufacturers": populated})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		manufacturer, err := findByID[models.Manufacturer](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "manufacturer": manufacturer})
	})

	rg.GET("/:id/populated", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		manufacturer, err := findByID[models.Manufacturer](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		populated, err := populator.PopulateManufacturers([]models.Manufacturer{*manufacturer})
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "manufacturer": populated[0]})
	})

	rg.POST("", admin, func(c *gin.Context) {
		var in models.Manufacturer
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		in.Name = services.NormalizeText(in.Name)
		if in.Name == "" {
			respondError(c, log, &services.ValidationError{Field: "name"})
			return
		}
		taken, err := keyTaken[models.Manufacturer](db, "name", in.Name, 0)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if taken {
			respondError(c, log, &services.ConflictError{Key: in.Name})
			return
		}
		if err := db.Create(&in).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturer)
		c.JSON(http.StatusCreated, gin.H{"success": true, "manufacturer": in})
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		manufacturer, err := findByID[models.Manufacturer](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		var in models.Manufacturer
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}

		if name := services.NormalizeText(in.Name); name != "" && name != manufacturer.Name {
			taken, err := keyTaken[models.Manufacturer](db, "name", name, manufacturer.ID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			if taken {
				respondError(c, log, &services.ConflictError{Key: name})
				return
			}
			manufacturer.Name = name
		}
		applyIfSet(&manufacturer.Description, in.Description)
		applyIfSet(&manufacturer.History, in.History)
		applyIfSet(&manufacturer.LastUpdated, in.LastUpdated)
		applyIfSet(&manufacturer.DetailsWebsite, in.DetailsWebsite)
		applyIfSet(&manufacturer.DetailsFounded, in.DetailsFounded)
		applyIfSet(&manufacturer.DetailsHeadquarters, in.DetailsHeadquarters)
		applyIfSet(&manufacturer.DetailsCEO, in.DetailsCEO)
		applyIfSet(&manufacturer.DetailsRevenue, in.DetailsRevenue)
		applyIfSet(&manufacturer.DetailsOperatingIncome, in.DetailsOperatingIncome)
		applyIfSet(&manufacturer.DetailsNetIncome, in.DetailsNetIncome)
		applyIfSet(&manufacturer.DetailsTotalAssets, in.DetailsTotalAssets)
		applyIfSet(&manufacturer.DetailsTotalEquity, in.DetailsTotalEquity)
		applyIfSet(&manufacturer.DetailsNumberOfEmployees, in.DetailsNumberOfEmployees)
		applyIfSet(&manufacturer.DetailsProducts, in.DetailsProducts)
		applyIfSet(&manufacturer.LicensedVaccineNames, in.LicensedVaccineNames)
		applyIfSet(&manufacturer.CandidateVaccineNames, in.CandidateVaccineNames)

		if err := db.Save(manufacturer).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturer)
		c.JSON(http.StatusOK, gin.H{"success": true, "manufacturer": manufacturer})
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		manufacturer, err := findByID[models.Manufacturer](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}

		products := db.Where("manufacturer_name = ?", manufacturer.Name).Delete(&models.ManufacturerProduct{})
		if products.Error != nil {
			respondError(c, log, products.Error)
			return
		}
		sources := db.Where("manufacturer_name = ?", manufacturer.Name).Delete(&models.ManufacturerSource{})
		if sources.Error != nil {
			respondError(c, log, sources.Error)
			return
		}
		if err := db.Delete(manufacturer).Error; err != nil {
			respondError(c, log, err)
			return
		}

		stamp(db, log, models.KindManufacturer)
		if products.RowsAffected > 0 {
			stamp(db, log, models.KindManufacturerProduct)
		}
		if sources.RowsAffected > 0 {
			stamp(db, log, models.KindManufacturerSource)
		}
		c.JSON(http.StatusOK, gin.H{
			"success":         true,
			"message":         "manufacturer deleted",
			"deletedProducts": products.RowsAffected,
			"deletedSources":  sources.RowsAffected,
		})
	})
}
