package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DoyleJ11/hots-draft-tracker/internal/draft"
)

func TestGroupPicks(t *testing.T) {
	rows := []HeroPick{
		{BattleTag: "Player#1234", Hero: "Valla", PickCount: 12},
		{BattleTag: "Player#9999", Hero: "Nova", PickCount: 7},
		{BattleTag: "Player#1234", Hero: "Tyrael", PickCount: 3},
	}

	got := groupPicks([]string{"Player#1234", "Player#9999", "Player#0001"}, rows)

	assert.Equal(t, draft.RecentPicks{
		"Player#1234": {{Hero: "Valla", Count: 12}, {Hero: "Tyrael", Count: 3}},
		"Player#9999": {{Hero: "Nova", Count: 7}},
		"Player#0001": {},
	}, got)
}

func TestStore_NotConfigured(t *testing.T) {
	_, err := Open("  ", zap.NewNop())
	assert.ErrorIs(t, err, ErrNotConfigured)

	var s *Store
	_, err = s.RecentPicks(context.Background(), "Player")
	assert.ErrorIs(t, err, ErrNotConfigured)
	require.NoError(t, s.Close())
}
