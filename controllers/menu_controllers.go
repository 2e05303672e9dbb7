package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenus
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	var menus []models.Menu
	if err := mc.DB.Preload("Category").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenuByCategory -> ?category_id=N
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	catID, err := strconv.Atoi(c.Query("category_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
		return
	}

	var menus []models.Menu
	if err := mc.DB.Preload("Category").Where("category_id = ?", catID).Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menus by category", menus)
}

// GetMenuByID -> detail of one menu item
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.Preload("Category").First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

type menuRequest struct {
	CategoryID  uint     `json:"category_id" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Price       float64  `json:"price" binding:"min=0"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Allergens   []string `json:"allergens"`
	Vegetarian  bool     `json:"vegetarian"`
	Available   *bool    `json:"available"`
}

// CreateMenu (admin)
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var body menuRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mc.DB.First(&category, body.CategoryID).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown category"))
		return
	}

	menu := models.Menu{
		CategoryID:  body.CategoryID,
		Name:        body.Name,
		Price:       body.Price,
		Description: body.Description,
		ImageURL:    body.ImageURL,
		Allergens:   body.Allergens,
		Vegetarian:  body.Vegetarian,
		Available:   true,
	}
	if body.Available != nil {
		menu.Available = *body.Available
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu (admin)
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		CategoryID  *uint     `json:"category_id"`
		Name        *string   `json:"name"`
		Price       *float64  `json:"price"`
		Description *string   `json:"description"`
		ImageURL    *string   `json:"image_url"`
		Allergens   *[]string `json:"allergens"`
		Vegetarian  *bool     `json:"vegetarian"`
		Available   *bool     `json:"available"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.CategoryID != nil {
		menu.CategoryID = *body.CategoryID
	}
	if body.Name != nil {
		menu.Name = *body.Name
	}
	if body.Price != nil {
		if *body.Price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must not be negative"))
			return
		}
		menu.Price = *body.Price
	}
	if body.Description != nil {
		menu.Description = *body.Description
	}
	if body.ImageURL != nil {
		menu.ImageURL = *body.ImageURL
	}
	if body.Allergens != nil {
		menu.Allergens = *body.Allergens
	}
	if body.Vegetarian != nil {
		menu.Vegetarian = *body.Vegetarian
	}
	if body.Available != nil {
		menu.Available = *body.Available
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu (admin)
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	if err := mc.DB.Delete(&models.Menu{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}
