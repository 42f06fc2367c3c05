package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vacciprofile/models"
	"vacciprofile/services"
)

// NITAGs and licensing authorities are flat reference tables without
// populated views.

func setupNITAGRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/nitags")

	rg.GET("", func(c *gin.Context) {
		var nitags []models.NITAG
		if err := db.Order("country").Find(&nitags).Error; err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(nitags), "nitags": nitags})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		nitag, err := findByID[models.NITAG](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "nitag": nitag})
	})

	rg.POST("", admin, func(c *gin.Context) {
		var in models.NITAG
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		in.Country = services.NormalizeText(in.Country)
		if in.Country == "" {
			respondError(c, log, &services.ValidationError{Field: "country"})
			return
		}
		taken, err := keyTaken[models.NITAG](db, "country", in.Country, 0)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if taken {
			respondError(c, log, &services.ConflictError{Key: in.Country})
			return
		}
		if err := db.Create(&in).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindNITAG)
		c.JSON(http.StatusCreated, gin.H{"success": true, "nitag": in})
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		nitag, err := findByID[models.NITAG](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		var in models.NITAG
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if country := services.NormalizeText(in.Country); country != "" && country != nitag.Country {
			taken, err := keyTaken[models.NITAG](db, "country", country, nitag.ID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			if taken {
				respondError(c, log, &services.ConflictError{Key: country})
				return
			}
			nitag.Country = country
		}
		applyIfSet(&nitag.AvailableNitag, in.AvailableNitag)
		applyIfSet(&nitag.AvailableWebsite, in.AvailableWebsite)
		applyIfSet(&nitag.WebsiteURL, in.WebsiteURL)
		applyIfSet(&nitag.NationalNitagName, in.NationalNitagName)
		applyIfSet(&nitag.YearEstablished, in.YearEstablished)
		if err := db.Save(nitag).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindNITAG)
		c.JSON(http.StatusOK, gin.H{"success": true, "nitag": nitag})
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		nitag, err := findByID[models.NITAG](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Delete(nitag).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindNITAG)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "nitag deleted"})
	})
}

func setupLicenserRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/licensers")

	rg.GET("", func(c *gin.Context) {
		var licensers []models.Licenser
		if err := db.Order("acronym").Find(&licensers).Error; err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(licensers), "licensers": licensers})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		licenser, err := findByID[models.Licenser](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "licenser": licenser})
	})

	rg.POST("", admin, func(c *gin.Context) {
		var in models.Licenser
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		in.Acronym = services.NormalizeText(in.Acronym)
		in.FullName = services.NormalizeText(in.FullName)
		if in.Acronym == "" {
			respondError(c, log, &services.ValidationError{Field: "acronym"})
			return
		}
		if in.FullName == "" {
			respondError(c, log, &services.ValidationError{Field: "fullName"})
			return
		}
		taken, err := keyTaken[models.Licenser](db, "acronym", in.Acronym, 0)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if taken {
			respondError(c, log, &services.ConflictError{Key: in.Acronym})
			return
		}
		if err := db.Create(&in).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindLicenser)
		c.JSON(http.StatusCreated, gin.H{"success": true, "licenser": in})
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		licenser, err := findByID[models.Licenser](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		var in models.Licenser
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if acronym := services.NormalizeText(in.Acronym); acronym != "" && acronym != licenser.Acronym {
			taken, err := keyTaken[models.Licenser](db, "acronym", acronym, licenser.ID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			if taken {
				respondError(c, log, &services.ConflictError{Key: acronym})
				return
			}
			licenser.Acronym = acronym
		}
		applyIfSet(&licenser.Region, in.Region)
		applyIfSet(&licenser.Country, in.Country)
		applyIfSet(&licenser.FullName, in.FullName)
		applyIfSet(&licenser.Description, in.Description)
		applyIfSet(&licenser.Website, in.Website)
		if err := db.Save(licenser).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindLicenser)
		c.JSON(http.StatusOK, gin.H{"success": true, "licenser": licenser})
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		licenser, err := findByID[models.Licenser](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Delete(licenser).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindLicenser)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "licenser deleted"})
	})
}
