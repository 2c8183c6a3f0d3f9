package controllers

import (
	"net/http"
	"time"

	"nutrakids/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const pingInterval = 25 * time.Second

type RealtimeController struct {
	RT       *services.RealtimeHub
	Children *services.ChildService
}

func NewRealtimeController(rt *services.RealtimeHub, children *services.ChildService) *RealtimeController {
	return &RealtimeController{RT: rt, Children: children}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws/events streams points and achievement events for the caller's household.
func (rc *RealtimeController) EventsWS(c *gin.Context) {
	householdID, err := rc.Children.HouseholdOf(c.Request.Context(), c.GetUint("userID"))
	if err != nil {
		failWith(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{HouseholdID: householdID, Conn: conn}
	rc.RT.Register(cl)

	done := make(chan struct{})
	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				if err := cl.Ping(); err != nil {
					return
				}
			}
		}
	}()

	// read loop ends on client close/error → unregister
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			close(done)
			rc.RT.Unregister(cl)
			return
		}
	}
}
