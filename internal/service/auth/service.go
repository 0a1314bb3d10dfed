package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jokerdeck/internal/config"
	"jokerdeck/internal/model"
	pkgAuth "jokerdeck/pkg/auth"
	appErr "jokerdeck/pkg/errors"
	"jokerdeck/pkg/logger"
	"jokerdeck/pkg/utils/random"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service issues guest identities. A client holding a guest key gets the
// same player back on every login; a client without one gets a fresh player
// and a key to keep.
type Service struct {
	db *gorm.DB
}

type GuestResult struct {
	Token    string       `json:"token"`
	ExpireAt time.Time    `json:"expireAt"`
	GuestKey string       `json:"guestKey"`
	Player   model.Player `json:"player"`
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) GuestLogin(ctx context.Context, guestKey, nickname string) (*GuestResult, error) {
	guestKey = strings.TrimSpace(guestKey)

	var player model.Player
	if guestKey != "" {
		err := s.db.WithContext(ctx).Where("guest_key = ?", guestKey).First(&player).Error
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if err == gorm.ErrRecordNotFound {
			return nil, appErr.ErrPlayerNotFound
		}
	} else {
		guestKey = uuid.NewString()
		player = model.Player{
			GuestKey: guestKey,
			Nickname: pickNickname(nickname),
			Status:   "normal",
		}
		if err := s.db.WithContext(ctx).Create(&player).Error; err != nil {
			return nil, err
		}
		logger.Log.Info("guest player created", zap.Int64("playerID", player.ID))
	}

	if strings.EqualFold(player.Status, "banned") {
		return nil, appErr.ErrUnauthorized
	}

	if nickname = strings.TrimSpace(nickname); nickname != "" && nickname != player.Nickname {
		if err := s.db.WithContext(ctx).Model(&player).Update("nickname", nickname).Error; err != nil {
			return nil, err
		}
		player.Nickname = nickname
	}

	token, err := pkgAuth.GeneratePlayerToken(player.ID)
	if err != nil {
		return nil, err
	}

	expireAt := time.Now().Add(time.Duration(config.GlobalConfig.JWT.Expire) * time.Hour)
	return &GuestResult{
		Token:    token,
		ExpireAt: expireAt,
		GuestKey: guestKey,
		Player:   player,
	}, nil
}

func (s *Service) GetPlayer(ctx context.Context, playerID int64) (*model.Player, error) {
	var player model.Player
	err := s.db.WithContext(ctx).First(&player, playerID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, appErr.ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func pickNickname(requested string) string {
	requested = strings.TrimSpace(requested)
	if requested != "" {
		return requested
	}
	return fmt.Sprintf("Guest-%s", random.Code(6))
}
