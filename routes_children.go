package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vacciprofile/models"
	"vacciprofile/services"
)

// Routes for the child kinds that reference a parent by name. They share the
// shape: filterable list, get by id, admin create/update/delete.

func setupLicensingDateRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/licensing-dates")

	rg.GET("", func(c *gin.Context) {
		q := db.Order("vaccine_name, approval_date")
		if v := services.NormalizeText(c.Query("vaccineName")); v != "" {
			q = q.Where("vaccine_name = ?", v)
		}
		if v := services.NormalizeText(c.Query("name")); v != "" {
			q = q.Where("name = ?", v)
		}
		var dates []models.LicensingDate
		if err := q.Find(&dates).Error; err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(dates), "licensingDates": dates})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		date, err := findByID[models.LicensingDate](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "licensingDate": date})
	})

	rg.POST("", admin, func(c *gin.Context) {
		var in models.LicensingDate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if err := services.ValidateLicensingDate(&in); err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Create(&in).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindLicensingDate)
		c.JSON(http.StatusCreated, gin.H{"success": true, "licensingDate": in})
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		date, err := findByID[models.LicensingDate](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		var in models.LicensingDate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		applyIfSet(&date.VaccineName, in.VaccineName)
		applyIfSet(&date.Name, in.Name)
		applyIfSet(&date.Type, in.Type)
		applyIfSet(&date.ApprovalDate, in.ApprovalDate)
		applyIfSet(&date.Source, in.Source)
		applyIfSet(&date.LastUpdateOnVaccine, in.LastUpdateOnVaccine)
		if err := db.Save(date).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindLicensingDate)
		c.JSON(http.StatusOK, gin.H{"success": true, "licensingDate": date})
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		date, err := findByID[models.LicensingDate](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Delete(date).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindLicensingDate)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "licensing date deleted"})
	})
}

func setupProductProfileRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/product-profiles")

	rg.GET("", func(c *gin.Context) {
		q := db.Order("vaccine_name, type")
		if v := services.NormalizeText(c.Query("vaccineName")); v != "" {
			q = q.Where("vaccine_name = ?", v)
		}
		if v := services.NormalizeText(c.Query("type")); v != "" {
			q = q.Where("type = ?", v)
		}
		var profiles []models.ProductProfile
		if err := q.Find(&profiles).Error; err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(profiles), "productProfiles": profiles})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		profile, err := findByID[models.ProductProfile](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "productProfile": profile})
	})

	rg.POST("", admin, func(c *gin.Context) {
		var in models.ProductProfile
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if err := services.ValidateProductProfile(&in); err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Create(&in).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindProductProfile)
		c.JSON(http.StatusCreated, gin.H{"success": true, "productProfile": in})
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		profile, err := findByID[models.ProductProfile](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		var in models.ProductProfile
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		applyIfSet(&profile.VaccineName, in.VaccineName)
		applyIfSet(&profile.Type, in.Type)
		applyIfSet(&profile.Name, in.Name)
		applyIfSet(&profile.Composition, in.Composition)
		applyIfSet(&profile.StrainCoverage, in.StrainCoverage)
		applyIfSet(&profile.Indication, in.Indication)
		applyIfSet(&profile.Contraindication, in.Contraindication)
		applyIfSet(&profile.Dosing, in.Dosing)
		applyIfSet(&profile.Immunogenicity, in.Immunogenicity)
		applyIfSet(&profile.Efficacy, in.Efficacy)
		applyIfSet(&profile.DurationOfProtection, in.DurationOfProtection)
		applyIfSet(&profile.CoAdministration, in.CoAdministration)
		applyIfSet(&profile.Reactogenicity, in.Reactogenicity)
		applyIfSet(&profile.Safety, in.Safety)
		applyIfSet(&profile.VaccinationGoal, in.VaccinationGoal)
		applyIfSet(&profile.Others, in.Others)
		if err := db.Save(profile).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindProductProfile)
		c.JSON(http.StatusOK, gin.H{"success": true, "productProfile": profile})
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		profile, err := findByID[models.ProductProfile](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Delete(profile).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindProductProfile)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "product profile deleted"})
	})
}

func setupManufacturerProductRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/manufacturer-products")

	rg.GET("", func(c *gin.Context) {
		q := db.Order("manufacturer_name, product_name")
		if v := services.NormalizeText(c.Query("manufacturerName")); v != "" {
			q = q.Where("manufacturer_name = ?", v)
		}
		var products []models.ManufacturerProduct
		if err := q.Find(&products).Error; err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "manufacturerProducts": products})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		product, err := findByID[models.ManufacturerProduct](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "manufacturerProduct": product})
	})

	rg.POST("", admin, func(c *gin.Context) {
		var in models.ManufacturerProduct
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if err := services.ValidateManufacturerProduct(&in); err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Create(&in).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturerProduct)
		c.JSON(http.StatusCreated, gin.H{"success": true, "manufacturerProduct": in})
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		product, err := findByID[models.ManufacturerProduct](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		var in models.ManufacturerProduct
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		applyIfSet(&product.ManufacturerName, in.ManufacturerName)
		applyIfSet(&product.ProductName, in.ProductName)
		applyIfSet(&product.ProductDescription, in.ProductDescription)
		if err := db.Save(product).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturerProduct)
		c.JSON(http.StatusOK, gin.H{"success": true, "manufacturerProduct": product})
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		product, err := findByID[models.ManufacturerProduct](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Delete(product).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturerProduct)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "manufacturer product deleted"})
	})
}

func setupManufacturerSourceRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/manufacturer-sources")

	rg.GET("", func(c *gin.Context) {
		q := db.Order("manufacturer_name, title")
		if v := services.NormalizeText(c.Query("manufacturerName")); v != "" {
			q = q.Where("manufacturer_name = ?", v)
		}
		var sources []models.ManufacturerSource
		if err := q.Find(&sources).Error; err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(sources), "manufacturerSources": sources})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		source, err := findByID[models.ManufacturerSource](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "manufacturerSource": source})
	})

	rg.POST("", admin, func(c *gin.Context) {
		var in models.ManufacturerSource
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if err := services.ValidateManufacturerSource(&in); err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Create(&in).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturerSource)
		c.JSON(http.StatusCreated, gin.H{"success": true, "manufacturerSource": in})
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		source, err := findByID[models.ManufacturerSource](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		var in models.ManufacturerSource
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		applyIfSet(&source.ManufacturerName, in.ManufacturerName)
		applyIfSet(&source.LastUpdated, in.LastUpdated)
		applyIfSet(&source.Title, in.Title)
		applyIfSet(&source.Link, in.Link)
		if err := db.Save(source).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturerSource)
		c.JSON(http.StatusOK, gin.H{"success": true, "manufacturerSource": source})
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		source, err := findByID[models.ManufacturerSource](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Delete(source).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturerSource)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "manufacturer source deleted"})
	})
}

func setupManufacturerCandidateRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/manufacturer-candidates")

	rg.GET("", func(c *gin.Context) {
		q := db.Order("pathogen_name, name")
		if v := services.NormalizeText(c.Query("pathogenName")); v != "" {
			q = q.Where("pathogen_name = ?", v)
		}
		if v := services.NormalizeText(c.Query("manufacturer")); v != "" {
			q = q.Where("manufacturer = ?", v)
		}
		var candidates []models.ManufacturerCandidate
		if err := q.Find(&candidates).Error; err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(candidates), "manufacturerCandidates": candidates})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		candidate, err := findByID[models.ManufacturerCandidate](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "manufacturerCandidate": candidate})
	})

	rg.POST("", admin, func(c *gin.Context) {
		var in models.ManufacturerCandidate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if err := services.ValidateManufacturerCandidate(&in); err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Create(&in).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturerCandidate)
		c.JSON(http.StatusCreated, gin.H{"success": true, "manufacturerCandidate": in})
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		candidate, err := findByID[models.ManufacturerCandidate](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		var in models.ManufacturerCandidate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		applyIfSet(&candidate.PathogenName, in.PathogenName)
		applyIfSet(&candidate.Name, in.Name)
		applyIfSet(&candidate.Manufacturer, in.Manufacturer)
		applyIfSet(&candidate.Platform, in.Platform)
		applyIfSet(&candidate.ClinicalPhase, in.ClinicalPhase)
		applyIfSet(&candidate.CompanyURL, in.CompanyURL)
		applyIfSet(&candidate.Other, in.Other)
		if err := db.Save(candidate).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturerCandidate)
		c.JSON(http.StatusOK, gin.H{"success": true, "manufacturerCandidate": candidate})
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		candidate, err := findByID[models.ManufacturerCandidate](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Delete(candidate).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindManufacturerCandidate)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "manufacturer candidate deleted"})
	})
}
