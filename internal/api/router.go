package api

import (
	"errors"
	"net/http"
	"strconv"

	"jokerdeck/internal/game"
	"jokerdeck/internal/middleware"
	"jokerdeck/internal/service"
	runSvc "jokerdeck/internal/service/run"
	"jokerdeck/internal/ws"
	appErr "jokerdeck/pkg/errors"
	"jokerdeck/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Container
}

func RegisterRoutes(r *gin.Engine, services *service.Container) {
	handler := &Handler{services: services}
	wsHandler := ws.NewHandler(services.Run)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	v1 := r.Group("/jokerdeck/v1")
	{
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/guest", handler.GuestLogin)
		}

		playerGroup := v1.Group("/player")
		playerGroup.Use(middleware.AuthRequired())
		{
			playerGroup.GET("/profile", handler.GetProfile)
		}

		runGroup := v1.Group("/runs")
		runGroup.Use(middleware.AuthRequired())
		{
			runGroup.POST("", handler.CreateRun)
			runGroup.GET("", handler.ListRuns)
			runGroup.GET("/:id", handler.GetRun)
			runGroup.GET("/:id/actions", handler.GetLegalActions)
			runGroup.POST("/:id/actions", handler.ApplyAction)
		}
	}

	r.GET("/ws/runs/:id", wsHandler.HandleRunWS)
}

type guestLoginBody struct {
	GuestKey string `json:"guestKey"`
	Nickname string `json:"nickname"`
}

type createRunBody struct {
	DeckKind string `json:"deckKind"`
	Seed     *int64 `json:"seed"`
}

type actionBody struct {
	Kind         string   `json:"kind" binding:"required"`
	CardID       uint64   `json:"cardId"`
	Direction    string   `json:"direction"`
	Blind        string   `json:"blind"`
	JokerID      uint64   `json:"jokerId"`
	ConsumableID uint64   `json:"consumableId"`
	Targets      []uint64 `json:"targets"`
	PackIndex    int      `json:"packIndex"`
}

func (b actionBody) toAction() (game.Action, error) {
	action := game.Action{
		Kind:         game.ActionKind(b.Kind),
		CardID:       b.CardID,
		Direction:    game.MoveDirection(b.Direction),
		JokerID:      b.JokerID,
		ConsumableID: b.ConsumableID,
		Targets:      b.Targets,
		PackIndex:    b.PackIndex,
	}
	if b.Blind != "" {
		blind, ok := game.ParseBlind(b.Blind)
		if !ok {
			return game.Action{}, errors.New("unknown blind")
		}
		action.Blind = &blind
	}
	return action, nil
}

func (h *Handler) GuestLogin(c *gin.Context) {
	var body guestLoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.services.Auth.GuestLogin(c.Request.Context(), body.GuestKey, body.Nickname)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, appErr.ErrPlayerNotFound):
			status = http.StatusNotFound
		case errors.Is(err, appErr.ErrUnauthorized):
			status = http.StatusForbidden
		}
		response.Error(c, status, err.Error())
		return
	}
	response.Success(c, resp)
}

func (h *Handler) GetProfile(c *gin.Context) {
	player, err := h.services.Auth.GetPlayer(c.Request.Context(), middleware.PlayerID(c))
	if err != nil {
		if errors.Is(err, appErr.ErrPlayerNotFound) {
			response.Error(c, http.StatusNotFound, "player not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	response.Success(c, player)
}

func (h *Handler) CreateRun(c *gin.Context) {
	var body createRunBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.services.Run.Create(c.Request.Context(), middleware.PlayerID(c), runSvc.CreateParams{
		DeckKind: body.DeckKind,
		Seed:     body.Seed,
	})
	if err != nil {
		if errors.Is(err, appErr.ErrInvalidAction) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create run")
		return
	}
	response.Success(c, state)
}

func (h *Handler) ListRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.services.Run.List(c.Request.Context(), middleware.PlayerID(c), page, pageSize)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list runs")
		return
	}
	response.Success(c, result)
}

func (h *Handler) GetRun(c *gin.Context) {
	runID, err := parseRunID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid run id")
		return
	}

	state, err := h.services.Run.Get(c.Request.Context(), middleware.PlayerID(c), runID)
	if err != nil {
		h.runError(c, err)
		return
	}
	response.Success(c, state)
}

func (h *Handler) GetLegalActions(c *gin.Context) {
	runID, err := parseRunID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid run id")
		return
	}

	actions, err := h.services.Run.LegalActions(c.Request.Context(), middleware.PlayerID(c), runID)
	if err != nil {
		h.runError(c, err)
		return
	}
	response.Success(c, gin.H{"actions": actions})
}

func (h *Handler) ApplyAction(c *gin.Context) {
	runID, err := parseRunID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid run id")
		return
	}

	var body actionBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	action, err := body.toAction()
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.services.Run.Act(c.Request.Context(), middleware.PlayerID(c), runID, action)
	if err != nil {
		h.runError(c, err)
		return
	}
	response.Success(c, state)
}

// runError maps the engine and service sentinels onto HTTP statuses. Rule
// violations are client errors, not server faults.
func (h *Handler) runError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, appErr.ErrRunNotFound):
		status = http.StatusNotFound
	case errors.Is(err, appErr.ErrRunAccessDenied):
		status = http.StatusForbidden
	case errors.Is(err, appErr.ErrInvalidStage),
		errors.Is(err, appErr.ErrInvalidAction),
		errors.Is(err, appErr.ErrInvalidBlind),
		errors.Is(err, appErr.ErrInvalidSelectCard),
		errors.Is(err, appErr.ErrNoRemainingPlays),
		errors.Is(err, appErr.ErrNoRemainingDiscards),
		errors.Is(err, appErr.ErrNoAvailableSlot),
		errors.Is(err, appErr.ErrInvalidBalance),
		errors.Is(err, appErr.ErrNoJokerMatch),
		errors.Is(err, appErr.ErrNoCardMatch),
		errors.Is(err, appErr.ErrNoCards),
		errors.Is(err, appErr.ErrTooManyCards):
		status = http.StatusBadRequest
	}
	response.Error(c, status, err.Error())
}

func parseRunID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid run id")
	}
	return id, nil
}
