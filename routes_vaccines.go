package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vacciprofile/models"
	"vacciprofile/services"
)

func setupVaccineRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/vaccines")
	populator := services.NewPopulator(db)

	rg.GET("", func(c *gin.Context) {
		var vaccines []models.Vaccine
		if err := db.Order("name").Find(&vaccines).Error; err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(vaccines), "vaccines": vaccines})
	})

	rg.GET("/populated", func(c *gin.Context) {
		var vaccines []models.Vaccine
		if err := db.Order("name").Find(&vaccines).Error; err != nil {
			respondError(c, log, err)
			return
		}
		populated, err := populator.PopulateVaccines(vaccines)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(populated), "vaccines": populated})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		vaccine, err := findByID[models.Vaccine](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "vaccine": vaccine})
	})

	rg.GET("/:id/populated", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		vaccine, err := findByID[models.Vaccine](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		populated, err := populator.PopulateVaccines([]models.Vaccine{*vaccine})
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "vaccine": populated[0]})
	})

	rg.POST("", admin, func(c *gin.Context) {
		var in models.Vaccine
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if err := validateVaccine(&in); err != nil {
			respondError(c, log, err)
			return
		}
		taken, err := keyTaken[models.Vaccine](db, "name", in.Name, 0)
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
		stamp(db, log, models.KindVaccine)
		c.JSON(http.StatusCreated, gin.H{"success": true, "vaccine": in})
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		vaccine, err := findByID[models.Vaccine](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		var in models.Vaccine
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}

		if name := services.NormalizeText(in.Name); name != "" && name != vaccine.Name {
			taken, err := keyTaken[models.Vaccine](db, "name", name, vaccine.ID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			if taken {
				respondError(c, log, &services.ConflictError{Key: name})
				return
			}
			vaccine.Name = name
		}
		if t := services.NormalizeText(in.VaccineType); t != "" {
			if t != models.VaccineTypeSingle && t != models.VaccineTypeCombination {
				respondError(c, log, &services.ValidationError{Field: "vaccineType", Message: "vaccineType must be 'single' or 'combination'"})
				return
			}
			vaccine.VaccineType = t
		}
		if v := services.NormalizeText(in.PathogenNames); v != "" {
			vaccine.PathogenNames = v
		}
		if v := services.NormalizeText(in.ManufacturerNames); v != "" {
			vaccine.ManufacturerNames = v
		}

		if err := db.Save(vaccine).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindVaccine)
		c.JSON(http.StatusOK, gin.H{"success": true, "vaccine": vaccine})
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		vaccine, err := findByID[models.Vaccine](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}

		// Children reference the vaccine by name, so the cascade is
		// name-based too.
		dates := db.Where("vaccine_name = ?", vaccine.Name).Delete(&models.LicensingDate{})
		if dates.Error != nil {
			respondError(c, log, dates.Error)
			return
		}
		profiles := db.Where("vaccine_name = ?", vaccine.Name).Delete(&models.ProductProfile{})
		if profiles.Error != nil {
			respondError(c, log, profiles.Error)
			return
		}
		if err := db.Delete(vaccine).Error; err != nil {
			respondError(c, log, err)
			return
		}

		stamp(db, log, models.KindVaccine)
		if dates.RowsAffected > 0 {
			stamp(db, log, models.KindLicensingDate)
		}
		if profiles.RowsAffected > 0 {
			stamp(db, log, models.KindProductProfile)
		}
		c.JSON(http.StatusOK, gin.H{
			"success":                true,
			"message":                "vaccine deleted",
			"deletedLicensingDates":  dates.RowsAffected,
			"deletedProductProfiles": profiles.RowsAffected,
		})
	})
}

func validateVaccine(v *models.Vaccine) error {
	v.Name = services.NormalizeText(v.Name)
	v.VaccineType = services.Defaulted(v.VaccineType, models.VaccineTypeSingle)
	v.PathogenNames = services.NormalizeText(v.PathogenNames)
	v.ManufacturerNames = services.NormalizeText(v.ManufacturerNames)

	switch {
	case v.Name == "":
		return &services.ValidationError{Field: "name"}
	case v.VaccineType != models.VaccineTypeSingle && v.VaccineType != models.VaccineTypeCombination:
		return &services.ValidationError{Field: "vaccineType", Message: "vaccineType must be 'single' or 'combination'"}
	case v.PathogenNames == "":
		return &services.ValidationError{Field: "pathogenNames"}
	case v.ManufacturerNames == "":
		return &services.ValidationError{Field: "manufacturerNames"}
	}
	return nil
}
