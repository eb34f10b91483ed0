package draft

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetBan_EmitsOnlyOnChange(t *testing.T) {
	team := NewTeam(TeamBlue)

	events, err := team.SetBan(0, "tyrael")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EvtBanChanged, events[0].Type)
	assert.Equal(t, TeamBlue, events[0].Team)
	assert.Equal(t, "tyrael", events[0].Ban.Hero)
	assert.False(t, events[0].Ban.Locked)

	events, err = team.SetBan(0, "tyrael")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestSetBan_RejectsLockedSlots(t *testing.T) {
	cases := []struct {
		name    string
		locked  int
		index   int
		wantErr error
	}{
		{name: "below watermark", locked: 1, index: 0, wantErr: ErrBanLocked},
		{name: "at watermark", locked: 1, index: 1, wantErr: nil},
		{name: "all locked", locked: 3, index: 2, wantErr: ErrBanLocked},
		{name: "negative index", locked: 0, index: -1, wantErr: ErrSlotOutOfRange},
		{name: "past last slot", locked: 0, index: BanSlots, wantErr: ErrSlotOutOfRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			team := NewTeam(TeamRed)
			team.LockBans(tc.locked)
			_, err := team.SetBan(tc.index, "murky")
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestLockBans_IsMonotonic(t *testing.T) {
	team := NewTeam(TeamBlue)

	events := team.LockBans(2)
	assert.Equal(t, 2, team.BansLocked())
	require.Len(t, events, 2)
	assert.Equal(t, 0, events[0].Index)
	assert.Equal(t, 1, events[1].Index)
	assert.True(t, events[1].Ban.Locked)

	assert.Empty(t, team.LockBans(1))
	assert.Equal(t, 2, team.BansLocked())

	assert.Len(t, team.LockBans(10), 1)
	assert.Equal(t, BanSlots, team.BansLocked())
}

func TestUnknownBanKeepsImageUntilResolved(t *testing.T) {
	team := NewTeam(TeamBlue)
	png := []byte{0x89, 'P', 'N', 'G'}

	_, err := team.SetBan(1, UnknownHero)
	require.NoError(t, err)
	events, err := team.SetBanImage(1, png)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, png, events[0].Ban.Image)
	assert.Equal(t, 0, team.BansLocked())

	events, err = team.SetBanImage(1, []byte{0x89, 'P', 'N', 'G'})
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = team.SetBan(1, "zeratul")
	require.NoError(t, err)
	assert.Nil(t, team.BanImage(1))
}

func TestTeamSnapshot(t *testing.T) {
	team := NewTeam(TeamRed)
	_, _ = team.SetBan(0, "abathur")
	team.LockBans(1)
	p, err := team.Player(3)
	require.NoError(t, err)
	_, _ = p.SetName("Falstad Main", true)

	snap := team.Snapshot()
	assert.Equal(t, TeamRed, snap.Color)
	assert.Equal(t, 1, snap.BansLocked)
	assert.Equal(t, BanSnapshot{Hero: "abathur", Locked: true}, snap.Bans[0])
	assert.Equal(t, "Falstad Main", snap.Players[3].Name)
	assert.Equal(t, TeamRed, snap.Players[3].Team)

	_, err = team.Player(PlayerSlots)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
}
