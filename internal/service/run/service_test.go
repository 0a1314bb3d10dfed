package run_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"

	"jokerdeck/internal/game"
	"jokerdeck/internal/model"
	"jokerdeck/internal/service/run"
	appErr "jokerdeck/pkg/errors"
	"jokerdeck/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func newRunService(t *testing.T) (*gorm.DB, *run.Service, *model.Player) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.Player{}, &model.RunRecord{}, &model.RunActionLog{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	player := &model.Player{GuestKey: "guest-" + t.Name(), Nickname: "Tester"}
	if err := db.Create(player).Error; err != nil {
		t.Fatalf("seed player failed: %v", err)
	}

	return db, run.NewService(db, nil, game.DefaultConfig()), player
}

func int64Ptr(v int64) *int64 { return &v }

func selectBlindAction(b game.Blind) game.Action {
	return game.Action{Kind: game.ActionSelectBlind, Blind: &b}
}

func TestCreateRun(t *testing.T) {
	ctx := context.Background()
	db, svc, player := newRunService(t)

	state, err := svc.Create(ctx, player.ID, run.CreateParams{DeckKind: "standard", Seed: int64Ptr(7)})
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}
	if state.Stage != "pre_blind" {
		t.Fatalf("expected stage pre_blind, got %s", state.Stage)
	}
	if state.Ante != 1 || state.Money != 4 || state.DeckLeft != 52 {
		t.Fatalf("unexpected initial state: ante=%d money=%d deck=%d", state.Ante, state.Money, state.DeckLeft)
	}
	if state.NextBlind != "small" {
		t.Fatalf("expected next blind small, got %s", state.NextBlind)
	}

	var record model.RunRecord
	if err := db.First(&record, state.RunID).Error; err != nil {
		t.Fatalf("run record missing: %v", err)
	}
	if record.PlayerID != player.ID || record.Seed != 7 || record.Status != "active" {
		t.Fatalf("unexpected run record: %+v", record)
	}
	if len(record.StateJSON) == 0 {
		t.Fatalf("expected state snapshot to be written")
	}

	var logs int64
	if err := db.Model(&model.RunActionLog{}).Where("run_id = ?", record.ID).Count(&logs).Error; err != nil {
		t.Fatalf("count journal failed: %v", err)
	}
	if logs != 0 {
		t.Fatalf("expected empty journal on create, got %d entries", logs)
	}
}

func TestCreateRunUnknownDeck(t *testing.T) {
	ctx := context.Background()
	_, svc, player := newRunService(t)

	_, err := svc.Create(ctx, player.ID, run.CreateParams{DeckKind: "pinochle"})
	if !errors.Is(err, appErr.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestActAppendsJournal(t *testing.T) {
	ctx := context.Background()
	db, svc, player := newRunService(t)

	created, err := svc.Create(ctx, player.ID, run.CreateParams{DeckKind: "standard", Seed: int64Ptr(11)})
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}

	state, err := svc.Act(ctx, player.ID, created.RunID, selectBlindAction(game.BlindSmall))
	if err != nil {
		t.Fatalf("select blind failed: %v", err)
	}
	if state.Stage != "blind(small)" {
		t.Fatalf("expected blind stage, got %s", state.Stage)
	}
	if len(state.Hand) != 8 {
		t.Fatalf("expected 8 cards dealt, got %d", len(state.Hand))
	}
	if state.RequiredScore != 300 {
		t.Fatalf("expected required score 300, got %d", state.RequiredScore)
	}

	state, err = svc.Act(ctx, player.ID, created.RunID, game.Action{
		Kind:   game.ActionSelectCard,
		CardID: state.Hand[0].ID,
	})
	if err != nil {
		t.Fatalf("select card failed: %v", err)
	}
	if len(state.Selected) != 1 {
		t.Fatalf("expected 1 selected card, got %d", len(state.Selected))
	}

	var logs []model.RunActionLog
	err = db.Where("run_id = ?", created.RunID).Order("seq ASC").Find(&logs).Error
	if err != nil {
		t.Fatalf("load journal failed: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(logs))
	}
	for i, entry := range logs {
		if entry.Seq != i+1 {
			t.Fatalf("expected dense seq, entry %d has seq %d", i, entry.Seq)
		}
	}
	var replayed game.Action
	if err := json.Unmarshal(logs[0].ActionJSON, &replayed); err != nil {
		t.Fatalf("journal entry not parseable: %v", err)
	}
	if replayed.Kind != game.ActionSelectBlind {
		t.Fatalf("expected select_blind in journal, got %s", replayed.Kind)
	}

	var record model.RunRecord
	if err := db.First(&record, created.RunID).Error; err != nil {
		t.Fatalf("run record missing: %v", err)
	}
	var snapshot run.RunState
	if err := json.Unmarshal(record.StateJSON, &snapshot); err != nil {
		t.Fatalf("snapshot not parseable: %v", err)
	}
	if snapshot.Stage != "blind(small)" {
		t.Fatalf("expected snapshot to track latest state, got stage %s", snapshot.Stage)
	}
}

func TestActRejectsWrongPlayer(t *testing.T) {
	ctx := context.Background()
	db, svc, player := newRunService(t)

	other := &model.Player{GuestKey: "other-" + t.Name(), Nickname: "Other"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("seed player failed: %v", err)
	}

	created, err := svc.Create(ctx, player.ID, run.CreateParams{DeckKind: "standard", Seed: int64Ptr(3)})
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}

	_, err = svc.Act(ctx, other.ID, created.RunID, selectBlindAction(game.BlindSmall))
	if !errors.Is(err, appErr.ErrRunAccessDenied) {
		t.Fatalf("expected ErrRunAccessDenied, got %v", err)
	}

	_, err = svc.Get(ctx, player.ID, created.RunID+999)
	if !errors.Is(err, appErr.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRestoreReplaysJournal(t *testing.T) {
	ctx := context.Background()
	db, svc, player := newRunService(t)

	created, err := svc.Create(ctx, player.ID, run.CreateParams{DeckKind: "standard", Seed: int64Ptr(99)})
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}

	state, err := svc.Act(ctx, player.ID, created.RunID, selectBlindAction(game.BlindSmall))
	if err != nil {
		t.Fatalf("select blind failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		state, err = svc.Act(ctx, player.ID, created.RunID, game.Action{
			Kind:   game.ActionSelectCard,
			CardID: state.Hand[i].ID,
		})
		if err != nil {
			t.Fatalf("select card failed: %v", err)
		}
	}
	state, err = svc.Act(ctx, player.ID, created.RunID, game.Action{Kind: game.ActionDiscard})
	if err != nil {
		t.Fatalf("discard failed: %v", err)
	}

	// A fresh service has an empty registry and must rebuild the run from
	// the journal and the recorded seed.
	restored := run.NewService(db, nil, game.DefaultConfig())
	replayed, err := restored.Get(ctx, player.ID, created.RunID)
	if err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	want, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal state failed: %v", err)
	}
	got, err := json.Marshal(replayed)
	if err != nil {
		t.Fatalf("marshal replayed state failed: %v", err)
	}
	if string(want) != string(got) {
		t.Fatalf("replayed state diverged\nwant: %s\ngot:  %s", want, got)
	}
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()
	_, svc, player := newRunService(t)

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, player.ID, run.CreateParams{DeckKind: "standard", Seed: int64Ptr(int64(i + 1))}); err != nil {
			t.Fatalf("create run %d failed: %v", i, err)
		}
	}

	result, err := svc.List(ctx, player.ID, 1, 2)
	if err != nil {
		t.Fatalf("list runs failed: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("expected total=3, got %d", result.Total)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected page size 2, got %d", len(result.Items))
	}
	if result.Items[0].ID < result.Items[1].ID {
		t.Fatalf("expected newest-first ordering, got %d before %d", result.Items[0].ID, result.Items[1].ID)
	}
}

func TestLegalActionsGate(t *testing.T) {
	ctx := context.Background()
	_, svc, player := newRunService(t)

	created, err := svc.Create(ctx, player.ID, run.CreateParams{DeckKind: "standard", Seed: int64Ptr(5)})
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}

	actions, err := svc.LegalActions(ctx, player.ID, created.RunID)
	if err != nil {
		t.Fatalf("legal actions failed: %v", err)
	}
	has := func(kind game.ActionKind) bool {
		for _, a := range actions {
			if a == kind {
				return true
			}
		}
		return false
	}
	if !has(game.ActionSelectBlind) || !has(game.ActionSkipBlind) {
		t.Fatalf("expected blind selection actions, got %v", actions)
	}
	if has(game.ActionPlay) {
		t.Fatalf("play should not be legal before a blind is selected, got %v", actions)
	}
}

func TestLostRunFinishes(t *testing.T) {
	ctx := context.Background()
	db, svc, player := newRunService(t)

	created, err := svc.Create(ctx, player.ID, run.CreateParams{DeckKind: "standard", Seed: int64Ptr(21)})
	if err != nil {
		t.Fatalf("create run failed: %v", err)
	}

	state, err := svc.Act(ctx, player.ID, created.RunID, selectBlindAction(game.BlindSmall))
	if err != nil {
		t.Fatalf("select blind failed: %v", err)
	}

	// Burn all four plays on single cards; no lone card can reach the
	// 300-point requirement, so the run ends in a loss.
	for state.Result == "" {
		state, err = svc.Act(ctx, player.ID, created.RunID, game.Action{
			Kind:   game.ActionSelectCard,
			CardID: state.Hand[0].ID,
		})
		if err != nil {
			t.Fatalf("select card failed: %v", err)
		}
		state, err = svc.Act(ctx, player.ID, created.RunID, game.Action{Kind: game.ActionPlay})
		if err != nil {
			t.Fatalf("play failed: %v", err)
		}
	}
	if state.Result != "lose" {
		t.Fatalf("expected loss, got result %q", state.Result)
	}

	var record model.RunRecord
	if err := db.First(&record, created.RunID).Error; err != nil {
		t.Fatalf("run record missing: %v", err)
	}
	if record.Status != "lost" {
		t.Fatalf("expected status lost, got %s", record.Status)
	}
	if record.FinishedAt == nil {
		t.Fatalf("expected finished_at to be set")
	}

	var stats model.Player
	if err := db.First(&stats, player.ID).Error; err != nil {
		t.Fatalf("player missing: %v", err)
	}
	if stats.RunsLost != 1 || stats.RunsWon != 0 {
		t.Fatalf("expected 1 lost run, got won=%d lost=%d", stats.RunsWon, stats.RunsLost)
	}

	_, err = svc.Act(ctx, player.ID, created.RunID, game.Action{Kind: game.ActionPlay})
	if !errors.Is(err, appErr.ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage after run end, got %v", err)
	}
}
