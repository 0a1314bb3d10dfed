package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jokerdeck/internal/game"
	runSvc "jokerdeck/internal/service/run"
	pkgAuth "jokerdeck/pkg/auth"
	appErr "jokerdeck/pkg/errors"
	"jokerdeck/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	runSvc *runSvc.Service
}

func NewHandler(runSvc *runSvc.Service) *Handler {
	return &Handler{runSvc: runSvc}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

func (h *Handler) HandleRunWS(c *gin.Context) {
	runID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || runID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	token, err := getTokenFromRequest(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	claims, err := pkgAuth.ParsePlayerToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	playerID := claims.PlayerID

	rt, err := h.runSvc.GetRuntime(c.Request.Context(), playerID, runID)
	if err != nil {
		switch {
		case errors.Is(err, appErr.ErrRunNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		case errors.Is(err, appErr.ErrRunAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "run access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load run"})
		}
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	logger.Log.Info("New WebSocket connection",
		zap.Int64("runID", runID),
		zap.Int64("playerID", playerID),
	)

	client := newClient(conn, playerID, runID, rt)
	client.run()
}

func getTokenFromRequest(c *gin.Context) (string, error) {
	token := strings.TrimSpace(c.Query("token"))
	if token != "" {
		return token, nil
	}
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = strings.TrimSpace(parts[1])
			if token != "" {
				return token, nil
			}
		}
	}
	return "", errors.New("missing token")
}

type client struct {
	conn      *websocket.Conn
	playerID  int64
	runID     int64
	rt        *runSvc.Runtime
	subID     int64
	outbound  <-chan runSvc.OutgoingMessage
	done      chan struct{}
	pingEvery time.Duration
}

func newClient(conn *websocket.Conn, playerID, runID int64, rt *runSvc.Runtime) *client {
	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	subID, outbound := rt.Subscribe()
	return &client{
		conn:      conn,
		playerID:  playerID,
		runID:     runID,
		rt:        rt,
		subID:     subID,
		outbound:  outbound,
		done:      make(chan struct{}),
		pingEvery: 25 * time.Second,
	}
}

func (c *client) run() {
	go c.writePump()
	c.readPump()
}

func (c *client) readPump() {
	defer func() {
		close(c.done)
		c.rt.Unsubscribe(c.subID)
		c.conn.Close()
	}()

	for {
		mt, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Log.Info("WS read error", zap.Error(err), zap.Int64("playerID", c.playerID), zap.Int64("runID", c.runID))
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		var incoming struct {
			Type   string          `json:"type"`
			Action json.RawMessage `json:"action"`
		}
		if err := json.Unmarshal(message, &incoming); err != nil {
			c.safeWrite(runSvc.OutgoingMessage{
				Type: "error",
				Seq:  0,
				Data: gin.H{"message": "invalid payload"},
			})
			continue
		}

		switch incoming.Type {
		case "action":
			var action game.Action
			if err := json.Unmarshal(incoming.Action, &action); err != nil {
				c.safeWrite(runSvc.OutgoingMessage{
					Type: "error",
					Seq:  0,
					Data: gin.H{"message": "invalid action payload"},
				})
				continue
			}
			if _, err := c.rt.HandleAction(action); err != nil {
				c.safeWrite(runSvc.OutgoingMessage{
					Type: "error",
					Seq:  0,
					Data: gin.H{"message": fmt.Sprintf("action failed: %v", err)},
				})
			}
		case "state":
			c.safeWrite(runSvc.OutgoingMessage{Type: "state", Seq: 0, Data: c.rt.State()})
		case "ping":
			c.safeWrite(runSvc.OutgoingMessage{Type: "pong", Seq: 0, Data: gin.H{"message": "pong"}})
		case "":
			continue
		default:
			c.safeWrite(runSvc.OutgoingMessage{
				Type: "error",
				Seq:  0,
				Data: gin.H{"message": "unsupported message type"},
			})
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.outbound:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Log.Info("WS write error", zap.Error(err), zap.Int64("playerID", c.playerID), zap.Int64("runID", c.runID))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) safeWrite(msg runSvc.OutgoingMessage) {
	if err := c.conn.WriteJSON(msg); err != nil {
		logger.Log.Info("WS write error", zap.Error(err), zap.Int64("playerID", c.playerID), zap.Int64("runID", c.runID))
	}
}
