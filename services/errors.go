package services

import "errors"

var (
	// ErrInvalidInput means the food name is too short to match or classify.
	ErrInvalidInput = errors.New("food name must be at least 2 characters")
	// ErrClassifierUnavailable covers transport errors, timeouts and non-2xx replies.
	ErrClassifierUnavailable = errors.New("food classifier unavailable")
	// ErrClassifierParse means the classifier answered with an unusable shape.
	ErrClassifierParse = errors.New("food classifier response could not be parsed")
	// ErrDuplicateFood is returned by inserts that collide on a case-insensitive name.
	ErrDuplicateFood = errors.New("food already exists")

	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("not authorized")
	ErrBadRequest    = errors.New("bad request")
	ErrEmailTaken    = errors.New("email already registered")
	ErrBadCredential = errors.New("invalid email or password")
	ErrNotConfigured = errors.New("service not configured")

	// ErrRecognitionUnavailable wraps image recognition provider failures.
	ErrRecognitionUnavailable = errors.New("image recognition unavailable")
	// ErrMealPlanUnavailable wraps any failed meal plan completion.
	ErrMealPlanUnavailable = errors.New("meal plan generation unavailable")
)
