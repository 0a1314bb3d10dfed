package service

import (
	"jokerdeck/internal/config"
	"jokerdeck/internal/game"
	"jokerdeck/internal/service/auth"
	"jokerdeck/internal/service/run"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Auth *auth.Service
	Run  *run.Service
}

func NewContainer(db *gorm.DB, rdb *redis.Client) *Container {
	return &Container{
		Auth: auth.NewService(db),
		Run:  run.NewService(db, rdb, engineConfig()),
	}
}

// engineConfig translates the optional yaml overrides onto the engine
// defaults. Zero means "not set".
func engineConfig() game.Config {
	cfg := game.DefaultConfig()
	if config.GlobalConfig == nil {
		return cfg
	}
	overrides := config.GlobalConfig.Game
	if overrides.HandSize > 0 {
		cfg.HandSize = overrides.HandSize
	}
	if overrides.Plays > 0 {
		cfg.Plays = overrides.Plays
	}
	if overrides.Discards > 0 {
		cfg.Discards = overrides.Discards
	}
	if overrides.StartingMoney > 0 {
		cfg.StartingMoney = overrides.StartingMoney
	}
	if overrides.JokerSlots > 0 {
		cfg.JokerSlots = overrides.JokerSlots
	}
	if overrides.ConsumableSlots > 0 {
		cfg.ConsumableSlots = overrides.ConsumableSlots
	}
	if overrides.AnteEnd > 0 {
		cfg.AnteEnd = overrides.AnteEnd
	}
	return cfg
}
