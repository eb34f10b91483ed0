package gamedata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDictionary() *Dictionary {
	return New(
		map[string]string{"tyrael": "Tyrael", "lucio": "Lúcio", "li-ming": "Li-Ming"},
		map[string]string{"infernal-shrines": "Infernal Shrines", "sky-temple": "Sky Temple"},
	)
}

func TestFixMapName(t *testing.T) {
	d := testDictionary()
	cases := []struct {
		raw    string
		want   string
		exists bool
	}{
		{raw: "  Infernal   Shrines \n", want: "INFERNAL SHRINES", exists: true},
		{raw: "sky temple", want: "SKY TEMPLE", exists: true},
		{raw: "sky-temple", want: "SKY TEMPLE", exists: true},
		{raw: "Sky Tmple", want: "SKY TMPLE", exists: false},
		{raw: "", want: "", exists: false},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			got := d.FixMapName(tc.raw)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.exists, d.MapExists(got))
		})
	}
}

func TestCorrectHeroName(t *testing.T) {
	d := testDictionary()

	assert.Equal(t, "TYRAEL", d.CorrectHeroName(" tyrael "))
	assert.Equal(t, "LÚCIO", d.CorrectHeroName("LUCIO"), "diacritics are folded for lookup")
	assert.True(t, d.HeroExists("LÚCIO"))

	assert.Equal(t, "TYRAF1", d.CorrectHeroName("tyraf1"))
	assert.False(t, d.HeroExists("TYRAF1"))
	assert.False(t, d.HeroExists(""))

	id, ok := d.HeroID("Li-Ming")
	assert.True(t, ok)
	assert.Equal(t, "li-ming", id)
	assert.Equal(t, "LI-MING", d.HeroName("li-ming"))
}

func TestAddHeroCorrection_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gamedata.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"heroes": {"tyrael": "Tyrael"},
		"maps": {"braxis-holdout": "Braxis Holdout"},
		"corrections": {"tyrel": "TYRAEL"}
	}`), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "TYRAEL", d.CorrectHeroName("Tyrel"))

	require.NoError(t, d.AddHeroCorrection("TYRAF1", "tyrael"))
	assert.Equal(t, "TYRAEL", d.CorrectHeroName("tyraf1"))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "TYRAEL", reloaded.CorrectHeroName("TYRAF1"))
	assert.True(t, reloaded.MapExists("BRAXIS HOLDOUT"))

	assert.ErrorIs(t, d.AddHeroCorrection("x", "nobody"), ErrUnknownHero)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestShippedGameData(t *testing.T) {
	d, err := Load("../../data/gamedata.json")
	require.NoError(t, err)

	assert.True(t, d.MapExists(d.FixMapName("infernal shrines")))
	assert.True(t, d.MapExists("BLACKHEART'S BAY"))
	assert.True(t, d.HeroExists(d.CorrectHeroName("lucio")))
	assert.True(t, d.HeroExists("KEL'THUZAD"))
	assert.Equal(t, "E.T.C.", d.HeroName("e-t-c"))
}
