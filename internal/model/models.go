package model

import (
	"time"

	"gorm.io/datatypes"
)

// Player is a guest identity. No credentials: a player is minted on first
// contact and addressed by token afterwards.
type Player struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id,string"`
	GuestKey  string    `gorm:"unique;not null" json:"-"`
	Nickname  string    `json:"nickname"`
	RunsWon   int       `gorm:"default:0" json:"runsWon"`
	RunsLost  int       `gorm:"default:0" json:"runsLost"`
	BestAnte  int       `gorm:"default:0" json:"bestAnte"`
	Status    string    `gorm:"default:normal;not null" json:"-"` // normal/banned
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// RunRecord is the durable row for one run. StateJSON holds the full engine
// snapshot; the scalar columns are denormalized for listing without
// deserializing the state.
type RunRecord struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id,string"`
	PlayerID   int64          `gorm:"index;not null" json:"playerId,string"`
	Seed       int64          `json:"seed"`
	DeckKind   string         `json:"deckKind"`
	Status     string         `gorm:"default:active;index" json:"status"` // active/won/lost
	Ante       int            `json:"ante"`
	Round      int            `json:"round"`
	Money      int            `json:"money"`
	BestScore  int            `json:"bestScore"`
	StateJSON  datatypes.JSON `gorm:"type:jsonb" json:"-"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	FinishedAt *time.Time     `json:"finishedAt,omitempty"`
}

// RunActionLog is the append-only action journal. (RunID, Seq) is dense from
// 1; replaying the journal against the run's seed reproduces StateJSON.
type RunActionLog struct {
	ID         int64          `gorm:"primaryKey;autoIncrement"`
	RunID      int64          `gorm:"index:idx_run_seq,unique,priority:1;not null"`
	Seq        int            `gorm:"index:idx_run_seq,unique,priority:2;not null"`
	ActionJSON datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt  time.Time
}
