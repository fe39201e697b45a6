package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/food-ordering/kds"
	"github.com/yeremiapane/food-ordering/models"
	"github.com/yeremiapane/food-ordering/utils"
)

const (
	kdsReadLimit = 512
	kdsForbidden = "Only admins can open the kitchen feed"
)

type KDSController struct {
	hub      *kds.Hub
	upgrader websocket.Upgrader
}

// NewKDSController accepts upgrades from same-origin pages and from the
// comma separated allowedOrigins ("*" allows any).
func NewKDSController(hub *kds.Hub, allowedOrigins string) *KDSController {
	origins := make(map[string]bool)
	for _, o := range strings.Split(allowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = true
		}
	}

	return &KDSController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || origins["*"] || origins[origin] {
					return true
				}
				return strings.EqualFold(strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://"), r.Host)
			},
		},
	}
}

// KDSHandler streams order and menu events to the kitchen display.
func (kc *KDSController) KDSHandler(c *gin.Context) {
	id, ok := utils.RequireRole(c, models.RoleAdmin, kdsForbidden)
	if !ok {
		return
	}

	ws, err := kc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.WithError(err).Warn("kds upgrade failed")
		return
	}

	kc.hub.RegisterClient(ws, id.UserID)
	defer kc.hub.UnregisterClient(ws)

	ws.SetReadLimit(kdsReadLimit)

	// the feed is one-way; reading only detects disconnects
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}
