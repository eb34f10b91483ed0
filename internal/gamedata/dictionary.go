// Package gamedata holds the hero and map dictionary used to turn OCR output
// into known names.
package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var ErrUnknownHero = errors.New("unknown hero")

type file struct {
	Heroes      map[string]string `json:"heroes"`
	Maps        map[string]string `json:"maps"`
	Corrections map[string]string `json:"corrections"`
}

// Dictionary maps hero and map ids to their display names and remembers
// manual corrections of misread hero names.
type Dictionary struct {
	path string

	mu          sync.RWMutex
	heroes      map[string]string // id -> display name
	maps        map[string]string
	corrections map[string]string // fixed raw text -> display name
	heroKeys    map[string]string // key -> id
	mapKeys     map[string]string
}

func New(heroes, maps map[string]string) *Dictionary {
	d := &Dictionary{corrections: map[string]string{}}
	d.setHeroes(heroes)
	d.setMaps(maps)
	return d
}

// Load reads a dictionary file. Corrections added later are written back to
// the same path.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game data: %w", err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode game data: %w", err)
	}
	d := New(f.Heroes, f.Maps)
	d.path = path
	for raw, name := range f.Corrections {
		d.corrections[FixName(raw)] = name
	}
	return d, nil
}

func (d *Dictionary) setHeroes(heroes map[string]string) {
	d.heroes = make(map[string]string, len(heroes))
	d.heroKeys = make(map[string]string, 2*len(heroes))
	for id, name := range heroes {
		name = FixName(name)
		d.heroes[id] = name
		d.heroKeys[key(name)] = id
		d.heroKeys[key(id)] = id
	}
}

func (d *Dictionary) setMaps(maps map[string]string) {
	d.maps = make(map[string]string, len(maps))
	d.mapKeys = make(map[string]string, 2*len(maps))
	for id, name := range maps {
		name = FixName(name)
		d.maps[id] = name
		d.mapKeys[key(name)] = id
		d.mapKeys[key(id)] = id
	}
}

// FixName upper-cases, trims and collapses inner whitespace.
func FixName(s string) string {
	return strings.Join(strings.Fields(cases.Upper(language.Und).String(s)), " ")
}

var foldDiacritics = runes.Remove(runes.In(unicode.Mn))

func key(s string) string {
	t := transform.Chain(norm.NFD, foldDiacritics, norm.NFC)
	folded, _, err := transform.String(t, FixName(s))
	if err != nil {
		return FixName(s)
	}
	return folded
}

// FixMapName returns the display name of the map read in raw, or the fixed
// raw text when no map matches.
func (d *Dictionary) FixMapName(raw string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if id, ok := d.mapKeys[key(raw)]; ok {
		return d.maps[id]
	}
	return FixName(raw)
}

func (d *Dictionary) MapExists(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.mapKeys[key(name)]
	return ok
}

// CorrectHeroName applies a learned correction first, then dictionary lookup.
func (d *Dictionary) CorrectHeroName(raw string) string {
	fixed := FixName(raw)
	d.mu.RLock()
	defer d.mu.RUnlock()
	if name, ok := d.corrections[fixed]; ok {
		return name
	}
	if id, ok := d.heroKeys[key(fixed)]; ok {
		return d.heroes[id]
	}
	return fixed
}

func (d *Dictionary) HeroExists(name string) bool {
	_, ok := d.HeroID(name)
	return ok
}

func (d *Dictionary) HeroID(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.heroKeys[key(name)]
	return id, ok
}

func (d *Dictionary) HeroName(id string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.heroes[id]
}

// AddHeroCorrection maps a misread text to a known hero and persists the
// dictionary when it was loaded from a file.
func (d *Dictionary) AddHeroCorrection(raw, heroID string) error {
	d.mu.Lock()
	name, ok := d.heroes[heroID]
	if !ok {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownHero, heroID)
	}
	d.corrections[FixName(raw)] = name
	d.mu.Unlock()
	return d.Save()
}

func (d *Dictionary) Save() error {
	if d.path == "" {
		return nil
	}
	d.mu.RLock()
	data, err := json.MarshalIndent(file{Heroes: d.heroes, Maps: d.maps, Corrections: d.corrections}, "", "  ")
	d.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode game data: %w", err)
	}
	if err := os.WriteFile(d.path, data, 0o644); err != nil {
		return fmt.Errorf("write game data: %w", err)
	}
	return nil
}
