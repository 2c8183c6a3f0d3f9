package controllers

import (
	"net/http"

	"nutrakids/services"

	"github.com/gin-gonic/gin"
)

// ChildController serves everything under /children.
type ChildController struct {
	Children     *services.ChildService
	Preferences  *services.PreferenceService
	Tracking     *services.TrackingService
	Achievements *services.AchievementService
	MealPlans    *services.MealPlanService
}

// POST /children
func (cc *ChildController) Create(c *gin.Context) {
	var req services.CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	child, err := cc.Children.Create(c.Request.Context(), c.GetUint("userID"), req)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "child": child})
}

// GET /children
func (cc *ChildController) List(c *gin.Context) {
	children, err := cc.Children.List(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "children": children})
}

// PUT /children/:id/preferences {"preferences": {"12": 5, "13": 1}}
func (cc *ChildController) SavePreferences(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Preferences map[uint]int `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	n, err := cc.Preferences.Replace(c.Request.Context(), c.GetUint("userID"), childID, req.Preferences)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "preferences saved", "count": n})
}

// GET /children/:id/preferences
func (cc *ChildController) GetPreferences(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	prefs, err := cc.Preferences.List(c.Request.Context(), c.GetUint("userID"), childID)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": prefs})
}

// POST /children/:id/meals {"mealType", "foodName", "mealRating"}
func (cc *ChildController) LogFood(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.LogFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := cc.Tracking.LogFood(c.Request.Context(), c.GetUint("userID"), childID, req)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "result": res})
}

// GET /children/:id/meals
func (cc *ChildController) Meals(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	meals, err := cc.Tracking.ListMeals(c.Request.Context(), c.GetUint("userID"), childID)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "meals": meals})
}

// POST /children/:id/water {"cups": 1}
func (cc *ChildController) LogWater(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Cups int `json:"cups"`
	}
	// an empty body means one cup
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	res, err := cc.Tracking.LogWater(c.Request.Context(), c.GetUint("userID"), childID, req.Cups)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": res})
}

// GET /children/:id/points
func (cc *ChildController) Points(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	pts, err := cc.Tracking.DailyPoints(c.Request.Context(), c.GetUint("userID"), childID)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "points": pts})
}

// GET /children/:id/achievements
func (cc *ChildController) GetAchievements(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := cc.Achievements.List(c.Request.Context(), c.GetUint("userID"), childID)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "achievements": list})
}

// POST /children/:id/meal-plan
func (cc *ChildController) MealPlan(c *gin.Context) {
	childID, ok := paramID(c, "id")
	if !ok {
		return
	}
	plan, err := cc.MealPlans.Generate(c.Request.Context(), c.GetUint("userID"), childID)
	if err != nil {
		failWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "plan": plan})
}
