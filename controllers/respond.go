package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"nutrakids/services"
	"nutrakids/utils"

	"github.com/gin-gonic/gin"
)

var logger = utils.NewLogger("http")

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// failWith maps service errors onto status codes.
func failWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		fail(c, http.StatusBadRequest, "please enter a longer food name")
	case errors.Is(err, services.ErrBadRequest):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		fail(c, http.StatusBadRequest, "email already registered")
	case errors.Is(err, services.ErrBadCredential):
		fail(c, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, "access denied")
	case errors.Is(err, services.ErrNotFound):
		fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrDuplicateFood):
		fail(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotConfigured):
		fail(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, services.ErrRecognitionUnavailable):
		logger.Error("image recognition failed", "path", c.FullPath(), "err", err)
		fail(c, http.StatusServiceUnavailable, "image recognition is unavailable, please try again later")
	case errors.Is(err, services.ErrMealPlanUnavailable):
		logger.Error("meal plan generation failed", "path", c.FullPath(), "err", err)
		fail(c, http.StatusServiceUnavailable, "could not generate a meal plan, please try again later")
	case errors.Is(err, services.ErrClassifierParse):
		logger.Warn("classifier returned an unusable answer", "path", c.FullPath(), "err", err)
		fail(c, http.StatusInternalServerError, "could not classify this food, try rephrasing")
	case errors.Is(err, services.ErrClassifierUnavailable):
		logger.Error("classifier unavailable", "path", c.FullPath(), "err", err)
		fail(c, http.StatusInternalServerError, "food classifier is unavailable, please try again later")
	default:
		logger.Error("request failed", "path", c.FullPath(), "err", err)
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
