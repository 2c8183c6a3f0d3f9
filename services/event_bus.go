package services

import "time"

const (
	EventPointsEarned      = "points.earned"
	EventAchievementEarned = "achievement.earned"
)

// HouseholdEvent is the JSON envelope pushed to household subscribers.
type HouseholdEvent struct {
	Kind    string    `json:"kind"`
	ChildID uint      `json:"childId"`
	At      time.Time `json:"at"`
	Data    any       `json:"data"`
}

// emit is a no-op when n is nil.
func emit(n HouseholdNotifier, householdID, childID uint, kind string, data any) {
	if n == nil {
		return
	}
	n.BroadcastHousehold(householdID, HouseholdEvent{
		Kind:    kind,
		ChildID: childID,
		At:      time.Now(),
		Data:    data,
	})
}
