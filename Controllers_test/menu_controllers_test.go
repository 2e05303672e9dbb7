package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/controllers"
	"github.com/maelcorre/bistrot-app/models"
	"github.com/maelcorre/bistrot-app/utils"
)

func setupMenuTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:menu_ctrl_test?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	if err := db.AutoMigrate(&models.MenuCategory{}, &models.Menu{}); err != nil {
		panic(err)
	}
	db.Exec("DELETE FROM menus")
	db.Exec("DELETE FROM menu_categories")

	db.Create(&models.MenuCategory{Name: "Entrées"})
	db.Create(&models.MenuCategory{Name: "Desserts"})
	return db
}

func setupMenuRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	menuCtrl := controllers.NewMenuController(db)
	router.GET("/menus", menuCtrl.GetAllMenus)
	router.GET("/menus/by-category", menuCtrl.GetMenuByCategory)
	router.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	router.POST("/menus", menuCtrl.CreateMenu)
	router.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
	router.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)
	return router
}

func TestMenuCRUD(t *testing.T) {
	utils.InitLogger()
	db := setupMenuTestDB()
	router := setupMenuRouter(db)

	var cat models.MenuCategory
	db.Where("name = ?", "Entrées").First(&cat)

	w := doJSON(t, router, "POST", "/menus", "", gin.H{
		"category_id": cat.ID,
		"name":        "Escargots de Bourgogne",
		"price":       12.00,
		"description": "Six escargots au beurre persillé",
		"allergens":   []string{"mollusques", "lait"},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	created := dataOf(t, w)
	assert.Equal(t, "Escargots de Bourgogne", created["name"])
	assert.Equal(t, true, created["available"])
	menuID := uint(created["id"].(float64))

	// detail includes the category
	w = doJSON(t, router, "GET", fmt.Sprintf("/menus/%d", menuID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	detail := dataOf(t, w)
	category := detail["category"].(map[string]interface{})
	assert.Equal(t, "Entrées", category["name"])

	// partial update keeps untouched fields
	w = doJSON(t, router, "PATCH", fmt.Sprintf("/menus/%d", menuID), "", gin.H{"price": 13.50})
	assert.Equal(t, http.StatusOK, w.Code)
	updated := dataOf(t, w)
	assert.InDelta(t, 13.50, updated["price"].(float64), 0.001)
	assert.Equal(t, "Escargots de Bourgogne", updated["name"])

	w = doJSON(t, router, "PATCH", fmt.Sprintf("/menus/%d", menuID), "", gin.H{"price": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "DELETE", fmt.Sprintf("/menus/%d", menuID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", fmt.Sprintf("/menus/%d", menuID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateMenuUnknownCategory(t *testing.T) {
	utils.InitLogger()
	db := setupMenuTestDB()
	router := setupMenuRouter(db)

	w := doJSON(t, router, "POST", "/menus", "", gin.H{
		"category_id": 9999,
		"name":        "Plat fantôme",
		"price":       10.00,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMenusByCategory(t *testing.T) {
	utils.InitLogger()
	db := setupMenuTestDB()
	router := setupMenuRouter(db)

	var entrees, desserts models.MenuCategory
	db.Where("name = ?", "Entrées").First(&entrees)
	db.Where("name = ?", "Desserts").First(&desserts)

	db.Create(&models.Menu{CategoryID: entrees.ID, Name: "Soupe à l'Oignon", Price: 8.50, Available: true})
	db.Create(&models.Menu{CategoryID: desserts.ID, Name: "Crème Brûlée", Price: 7.50, Available: true})

	w := doJSON(t, router, "GET", fmt.Sprintf("/menus/by-category?category_id=%d", desserts.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Menu `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Crème Brûlée", resp.Data[0].Name)

	w = doJSON(t, router, "GET", "/menus/by-category?category_id=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
