package run

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"jokerdeck/internal/game"
	"jokerdeck/internal/model"
	appErr "jokerdeck/pkg/errors"
	"jokerdeck/pkg/logger"
	"jokerdeck/pkg/utils/random"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	runStateKeyPrefix = "run:state:"
	runStateTTL       = 24 * time.Hour
)

// Service owns the run lifecycle: engine construction, the in-memory runtime
// registry, the durable journal, and the redis read cache. The journal is the
// source of truth; a runtime lost to a restart is rebuilt by replaying it.
type Service struct {
	db  *gorm.DB
	rdb *redis.Client
	cfg game.Config

	mu       sync.Mutex
	runtimes map[int64]*Runtime
}

func NewService(db *gorm.DB, rdb *redis.Client, cfg game.Config) *Service {
	return &Service{
		db:       db,
		rdb:      rdb,
		cfg:      cfg,
		runtimes: make(map[int64]*Runtime),
	}
}

type CreateParams struct {
	DeckKind string
	Seed     *int64
}

type ListResult struct {
	Total int64             `json:"total"`
	Items []model.RunRecord `json:"items"`
}

func (s *Service) Create(ctx context.Context, playerID int64, params CreateParams) (*RunState, error) {
	kind, ok := game.ParseDeckKind(params.DeckKind)
	if !ok {
		return nil, fmt.Errorf("%w: unknown deck kind %q", appErr.ErrInvalidAction, params.DeckKind)
	}
	seed := random.Seed()
	if params.Seed != nil {
		seed = *params.Seed
	}

	record := model.RunRecord{
		PlayerID: playerID,
		Seed:     seed,
		DeckKind: kind.String(),
		Status:   "active",
		Ante:     s.cfg.AnteStart,
		Money:    s.cfg.StartingMoney,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}

	g := game.NewGame(s.cfg, seed, kind)
	rt := newRuntime(record.ID, playerID, g, s.persistChange)

	s.mu.Lock()
	s.runtimes[record.ID] = rt
	s.mu.Unlock()

	state := rt.State()
	s.writeSnapshot(ctx, record.ID, state)
	return state, nil
}

func (s *Service) Get(ctx context.Context, playerID, runID int64) (*RunState, error) {
	rt, err := s.getRuntime(ctx, playerID, runID)
	if err != nil {
		return nil, err
	}
	return rt.State(), nil
}

func (s *Service) List(ctx context.Context, playerID int64, page, pageSize int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	query := s.db.WithContext(ctx).Model(&model.RunRecord{}).Where("player_id = ?", playerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []model.RunRecord
	err := query.Order("id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return &ListResult{Total: total, Items: items}, nil
}

func (s *Service) Act(ctx context.Context, playerID, runID int64, action game.Action) (*RunState, error) {
	rt, err := s.getRuntime(ctx, playerID, runID)
	if err != nil {
		return nil, err
	}
	return rt.HandleAction(action)
}

func (s *Service) LegalActions(ctx context.Context, playerID, runID int64) ([]game.ActionKind, error) {
	rt, err := s.getRuntime(ctx, playerID, runID)
	if err != nil {
		return nil, err
	}
	return rt.LegalActions(), nil
}

// GetRuntime hands the live runtime to the websocket layer after an
// ownership check.
func (s *Service) GetRuntime(ctx context.Context, playerID, runID int64) (*Runtime, error) {
	return s.getRuntime(ctx, playerID, runID)
}

func (s *Service) getRuntime(ctx context.Context, playerID, runID int64) (*Runtime, error) {
	s.mu.Lock()
	rt, ok := s.runtimes[runID]
	s.mu.Unlock()
	if ok {
		if rt.PlayerID() != playerID {
			return nil, appErr.ErrRunAccessDenied
		}
		return rt, nil
	}
	return s.restoreRuntime(ctx, playerID, runID)
}

// restoreRuntime rebuilds a runtime by replaying the journal against the
// recorded seed. Registration is double-checked so two concurrent restores
// of the same run converge on one runtime.
func (s *Service) restoreRuntime(ctx context.Context, playerID, runID int64) (*Runtime, error) {
	var record model.RunRecord
	err := s.db.WithContext(ctx).First(&record, runID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, appErr.ErrRunNotFound
		}
		return nil, err
	}
	if record.PlayerID != playerID {
		return nil, appErr.ErrRunAccessDenied
	}

	kind, ok := game.ParseDeckKind(record.DeckKind)
	if !ok {
		return nil, fmt.Errorf("run %d has unknown deck kind %q", runID, record.DeckKind)
	}

	var logs []model.RunActionLog
	err = s.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("seq ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	g := game.NewGame(s.cfg, record.Seed, kind)
	for _, entry := range logs {
		var action game.Action
		if err := json.Unmarshal(entry.ActionJSON, &action); err != nil {
			return nil, fmt.Errorf("run %d journal entry %d is corrupt: %w", runID, entry.Seq, err)
		}
		if err := g.HandleAction(action); err != nil {
			return nil, fmt.Errorf("run %d replay diverged at seq %d: %w", runID, entry.Seq, err)
		}
	}

	rt := newRuntime(runID, playerID, g, s.persistChange)

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.runtimes[runID]; ok {
		return existing, nil
	}
	s.runtimes[runID] = rt
	return rt, nil
}

// persistChange runs inside the runtime lock after every successful action:
// journal append, denormalized record update, snapshot cache, and terminal
// player-stat bookkeeping.
func (s *Service) persistChange(rt *Runtime, action game.Action, state *RunState) {
	ctx := context.Background()

	payload, err := json.Marshal(action)
	if err != nil {
		logger.Log.Error("failed to marshal action", zap.Int64("runID", rt.runID), zap.Error(err))
		return
	}
	entry := model.RunActionLog{
		RunID:      rt.runID,
		Seq:        len(rt.g.History),
		ActionJSON: payload,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		logger.Log.Error("failed to append action journal",
			zap.Int64("runID", rt.runID), zap.Int("seq", entry.Seq), zap.Error(err))
	}

	s.writeSnapshot(ctx, rt.runID, state)

	if state.Result != "" {
		s.finishRun(ctx, rt, state)
	}
}

func (s *Service) writeSnapshot(ctx context.Context, runID int64, state *RunState) {
	snapshot, err := json.Marshal(state)
	if err != nil {
		logger.Log.Error("failed to marshal run state", zap.Int64("runID", runID), zap.Error(err))
		return
	}

	updates := map[string]interface{}{
		"ante":       state.Ante,
		"round":      state.Round,
		"money":      state.Money,
		"state_json": snapshot,
	}
	if state.Score > 0 {
		updates["best_score"] = gorm.Expr("CASE WHEN best_score > ? THEN best_score ELSE ? END", state.Score, state.Score)
	}
	err = s.db.WithContext(ctx).Model(&model.RunRecord{}).
		Where("id = ?", runID).
		Updates(updates).Error
	if err != nil {
		logger.Log.Error("failed to update run record", zap.Int64("runID", runID), zap.Error(err))
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, runStateKey(runID), snapshot, runStateTTL).Err(); err != nil {
			logger.Log.Warn("failed to cache run state", zap.Int64("runID", runID), zap.Error(err))
		}
	}
}

func (s *Service) finishRun(ctx context.Context, rt *Runtime, state *RunState) {
	now := time.Now()
	status := "lost"
	if state.Result == "win" {
		status = "won"
	}
	err := s.db.WithContext(ctx).Model(&model.RunRecord{}).
		Where("id = ?", rt.runID).
		Updates(map[string]interface{}{
			"status":      status,
			"finished_at": now,
		}).Error
	if err != nil {
		logger.Log.Error("failed to finish run record", zap.Int64("runID", rt.runID), zap.Error(err))
	}

	statColumn := "runs_lost"
	if status == "won" {
		statColumn = "runs_won"
	}
	err = s.db.WithContext(ctx).Model(&model.Player{}).
		Where("id = ?", rt.playerID).
		Updates(map[string]interface{}{
			statColumn:  gorm.Expr(statColumn + " + 1"),
			"best_ante": gorm.Expr("CASE WHEN best_ante > ? THEN best_ante ELSE ? END", state.Ante, state.Ante),
		}).Error
	if err != nil {
		logger.Log.Error("failed to update player stats", zap.Int64("playerID", rt.playerID), zap.Error(err))
	}

	s.mu.Lock()
	delete(s.runtimes, rt.runID)
	s.mu.Unlock()

	logger.Log.Info("run finished",
		zap.Int64("runID", rt.runID),
		zap.Int64("playerID", rt.playerID),
		zap.String("status", status),
		zap.Int("ante", state.Ante),
	)
}

func runStateKey(runID int64) string {
	return fmt.Sprintf("%s%d", runStateKeyPrefix, runID)
}

// CachedState serves read-only state without waking a runtime, falling back
// to the database snapshot when the cache is cold.
func (s *Service) CachedState(ctx context.Context, playerID, runID int64) (json.RawMessage, error) {
	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, runStateKey(runID)).Bytes()
		if err == nil {
			return raw, nil
		}
		if err != redis.Nil {
			logger.Log.Warn("run state cache read failed", zap.Int64("runID", runID), zap.Error(err))
		}
	}

	var record model.RunRecord
	err := s.db.WithContext(ctx).First(&record, runID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, appErr.ErrRunNotFound
		}
		return nil, err
	}
	if record.PlayerID != playerID {
		return nil, appErr.ErrRunAccessDenied
	}
	return json.RawMessage(record.StateJSON), nil
}
