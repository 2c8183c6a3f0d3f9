package controllers

import (
	"net/http"

	"nutrakids/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Foods     *services.FoodService
	Household *services.HouseholdFoodService
}

func NewFoodController(foods *services.FoodService, household *services.HouseholdFoodService) *FoodController {
	return &FoodController{Foods: foods, Household: household}
}

// POST /foods/suggest {"foodName": "stroberry"}
func (fc *FoodController) Suggest(c *gin.Context) {
	var req struct {
		FoodName string `json:"foodName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	s, err := fc.Foods.Suggest(c.Request.Context(), req.FoodName)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "suggestion": s})
}

// POST /foods/recognize {"imageBase64": "data:…"}
func (fc *FoodController) Recognize(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"imageBase64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "imageBase64 required")
		return
	}
	s, err := fc.Foods.Recognize(c.Request.Context(), req.ImageBase64)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "suggestion": s})
}

// GET /foods
func (fc *FoodController) ListHousehold(c *gin.Context) {
	foods, err := fc.Household.List(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "foods": foods})
}

// POST /foods {"foodName", "emoji", "category"}
func (fc *FoodController) AddHousehold(c *gin.Context) {
	var req struct {
		FoodName string `json:"foodName"`
		Emoji    string `json:"emoji"`
		Category string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	food, err := fc.Household.Add(c.Request.Context(), c.GetUint("userID"), req.FoodName, req.Emoji, req.Category)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "food": food})
}

// DELETE /foods/:id
func (fc *FoodController) DeleteHousehold(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := fc.Household.Delete(c.Request.Context(), c.GetUint("userID"), id); err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "food deleted"})
}

// GET /foods/categories
func (fc *FoodController) Categories(c *gin.Context) {
	cats, err := fc.Foods.Categories(c.Request.Context())
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": cats})
}

// GET /foods/dictionary?category=Fruits
func (fc *FoodController) Dictionary(c *gin.Context) {
	foods, err := fc.Foods.DictionaryByCategory(c.Request.Context(), c.Query("category"))
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "foods": foods})
}

// POST /foods/dictionary {"foodName", "emoji", "category", "alternateNames"}
func (fc *FoodController) AddDictionary(c *gin.Context) {
	var req struct {
		FoodName       string   `json:"foodName"`
		Emoji          string   `json:"emoji"`
		Category       string   `json:"category"`
		AlternateNames []string `json:"alternateNames"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	food, err := fc.Foods.AddDictionaryFood(c.Request.Context(), req.FoodName, req.Emoji, req.Category, req.AlternateNames)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "food": food})
}
