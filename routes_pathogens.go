package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vacciprofile/models"
	"vacciprofile/services"
)

func setupPathogenRoutes(api *gin.RouterGroup, db *gorm.DB, log *zap.Logger, admin gin.HandlerFunc) {
	rg := api.Group("/pathogens")
	populator := services.NewPopulator(db)

	rg.GET("", func(c *gin.Context) {
		var pathogens []models.Pathogen
		if err := db.Order("name").Find(&pathogens).Error; err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(pathogens), "pathogens": pathogens})
	})

	rg.GET("/populated", func(c *gin.Context) {
		var pathogens []models.Pathogen
		if err := db.Order("name").Find(&pathogens).Error; err != nil {
			respondError(c, log, err)
			return
		}
		populated, err := populator.PopulatePathogens(pathogens)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(populated), "pathogens": populated})
	})

	rg.GET("/:id", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		pathogen, err := findByID[models.Pathogen](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "pathogen": pathogen})
	})

	rg.GET("/:id/populated", func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		pathogen, err := findByID[models.Pathogen](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		populated, err := populator.PopulatePathogens([]models.Pathogen{*pathogen})
		if err != nil {
			respondError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "pathogen": populated[0]})
	})

	rg.POST("", admin, func(c *gin.Context) {
		var in models.Pathogen
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		in.Name = services.NormalizeText(in.Name)
		if in.Name == "" {
			respondError(c, log, &services.ValidationError{Field: "name"})
			return
		}
		taken, err := keyTaken[models.Pathogen](db, "name", in.Name, 0)
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
		stamp(db, log, models.KindPathogen)
		c.JSON(http.StatusCreated, gin.H{"success": true, "pathogen": in})
	})

	rg.PUT("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		pathogen, err := findByID[models.Pathogen](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		var in models.Pathogen
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}

		if name := services.NormalizeText(in.Name); name != "" && name != pathogen.Name {
			taken, err := keyTaken[models.Pathogen](db, "name", name, pathogen.ID)
			if err != nil {
				respondError(c, log, err)
				return
			}
			if taken {
				respondError(c, log, &services.ConflictError{Key: name})
				return
			}
			pathogen.Name = name
		}
		applyIfSet(&pathogen.Description, in.Description)
		applyIfSet(&pathogen.Image, in.Image)
		applyIfSet(&pathogen.Bulletpoints, in.Bulletpoints)
		applyIfSet(&pathogen.Link, in.Link)
		applyIfSet(&pathogen.VaccineNames, in.VaccineNames)
		applyIfSet(&pathogen.CandidateVaccineNames, in.CandidateVaccineNames)

		if err := db.Save(pathogen).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindPathogen)
		c.JSON(http.StatusOK, gin.H{"success": true, "pathogen": pathogen})
	})

	rg.DELETE("/:id", admin, func(c *gin.Context) {
		id, err := parseID(c)
		if err != nil {
			respondError(c, log, err)
			return
		}
		pathogen, err := findByID[models.Pathogen](db, id)
		if err != nil {
			respondError(c, log, err)
			return
		}
		if err := db.Delete(pathogen).Error; err != nil {
			respondError(c, log, err)
			return
		}
		stamp(db, log, models.KindPathogen)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "pathogen deleted"})
	})
}
