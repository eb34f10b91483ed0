// Package storage looks up the recently played heroes of a player on
// PostgreSQL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
)

var ErrNotConfigured = errors.New("storage is not configured")

// PlayerBattleTag links an in-game player name to one of its BattleTags.
type PlayerBattleTag struct {
	PlayerName string `gorm:"primaryKey;size:64"`
	BattleTag  string `gorm:"primaryKey;size:64"`
}

type HeroPick struct {
	BattleTag string `gorm:"primaryKey;size:64"`
	Hero      string `gorm:"primaryKey;size:64"`
	PickCount int    `gorm:"not null;default:0"`
}

// Store serves recent picks. Results are cached per player name for the life
// of the process.
type Store struct {
	db  *gorm.DB
	log *zap.Logger

	mu    sync.Mutex
	cache map[string]draft.RecentPicks
}

// Open connects to PostgreSQL and creates the tables when missing.
func Open(dsn string, log *zap.Logger) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrNotConfigured
	}
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	connCfg.RuntimeParams["application_name"] = "hots-draft-tracker"

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: stdlib.OpenDB(*connCfg)}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&PlayerBattleTag{}, &HeroPick{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return New(db, log), nil
}

func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log.Named("storage"), cache: map[string]draft.RecentPicks{}}
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RecentPicks returns the pick counts of every BattleTag known for the player,
// most played first. Unknown players yield nil.
func (s *Store) RecentPicks(ctx context.Context, playerName string) (draft.RecentPicks, error) {
	if s == nil || s.db == nil {
		return nil, ErrNotConfigured
	}
	s.mu.Lock()
	cached, ok := s.cache[playerName]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	var tags []string
	err := s.db.WithContext(ctx).
		Model(&PlayerBattleTag{}).
		Where("player_name = ?", playerName).
		Pluck("battle_tag", &tags).Error
	if err != nil {
		return nil, fmt.Errorf("battle tags of %q: %w", playerName, err)
	}
	if len(tags) == 0 {
		return nil, nil
	}

	var rows []HeroPick
	err = s.db.WithContext(ctx).
		Where("battle_tag IN ?", tags).
		Order("pick_count DESC").
		Order("hero").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("hero picks of %q: %w", playerName, err)
	}

	picks := groupPicks(tags, rows)
	s.log.Debug("recent picks loaded", zap.String("player", playerName), zap.Int("battle_tags", len(tags)))

	s.mu.Lock()
	s.cache[playerName] = picks
	s.mu.Unlock()
	return picks, nil
}

// groupPicks keeps row order within each tag. Tags without picks map to an
// empty list.
func groupPicks(tags []string, rows []HeroPick) draft.RecentPicks {
	picks := make(draft.RecentPicks, len(tags))
	for _, tag := range tags {
		picks[tag] = []draft.HeroPick{}
	}
	for _, row := range rows {
		picks[row.BattleTag] = append(picks[row.BattleTag], draft.HeroPick{Hero: row.Hero, Count: row.PickCount})
	}
	return picks
}
