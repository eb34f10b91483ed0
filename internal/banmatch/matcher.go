// Package banmatch classifies ban icons against a perceptual hash index of
// known hero icons.
package banmatch

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/corona10/goimagehash"
	"github.com/nfnt/resize"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// DefaultThreshold is the highest normalised distance (exclusive) accepted as
// a match.
const DefaultThreshold = 0.15

const hashBits = 64

var (
	ErrInvalidHeroID = errors.New("invalid hero id")
	ErrHeroKnown     = errors.New("hero icon already known")
)

type Match struct {
	Hero     string
	Distance float64
}

type Options struct {
	// Dirs are scanned in order when the index is first loaded. An id found
	// in an earlier directory is never replaced by a later one.
	Dirs []string
	// LearnDir receives icons labelled at runtime.
	LearnDir  string
	Width     uint
	Height    uint
	Threshold float64
}

type Matcher struct {
	opts Options
	log  *zap.Logger

	once sync.Once

	mu    sync.RWMutex
	index map[string]*goimagehash.ImageHash
	order []string
}

func New(opts Options, log *zap.Logger) *Matcher {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	return &Matcher{
		opts:  opts,
		log:   log.Named("banmatch"),
		index: make(map[string]*goimagehash.ImageHash),
	}
}

// Load builds the index from disk. Only the first call does any work and only
// that call reports an error; entries read before a failure stay indexed.
func (m *Matcher) Load() error {
	var err error
	m.once.Do(func() {
		err = m.load()
		m.log.Info("ban index loaded", zap.Int("heroes", m.Len()), zap.Error(err))
	})
	return err
}

func (m *Matcher) load() error {
	var errs error
	for _, dir := range m.opts.Dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return multierr.Append(errs, fmt.Errorf("create %s: %w", dir, err))
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return multierr.Append(errs, fmt.Errorf("scan %s: %w", dir, err))
		}
		for _, entry := range entries {
			heroID, ok := strings.CutSuffix(entry.Name(), ".png")
			if !ok || heroID == "" || entry.IsDir() {
				continue
			}
			if m.has(heroID) {
				continue
			}
			if err := m.loadFile(heroID, filepath.Join(dir, entry.Name())); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}
	return errs
}

func (m *Matcher) loadFile(heroID, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	hash, err := m.hashBytes(data)
	if err != nil {
		return fmt.Errorf("hash %s: %w", path, err)
	}
	m.insert(heroID, hash)
	return nil
}

// Classify returns the closest indexed hero when its distance is below the
// threshold. Equal distances resolve to the hero indexed first.
func (m *Matcher) Classify(img image.Image) (Match, bool, error) {
	hash, err := m.hash(img)
	if err != nil {
		return Match{}, false, err
	}
	return m.classifyHash(hash)
}

func (m *Matcher) classifyHash(hash *goimagehash.ImageHash) (Match, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best := Match{Distance: m.opts.Threshold}
	found := false
	for _, heroID := range m.order {
		d, err := Distance(hash, m.index[heroID])
		if err != nil {
			return Match{}, false, err
		}
		if d < best.Distance {
			best = Match{Hero: heroID, Distance: d}
			found = true
		}
	}
	if !found {
		return Match{}, false, nil
	}
	return best, true, nil
}

// Learn stores a manually labelled icon as <LearnDir>/<heroID>.png and indexes
// it. Known ids are left untouched and yield ErrHeroKnown.
func (m *Matcher) Learn(heroID string, data []byte) error {
	if heroID == "" || filepath.Base(heroID) != heroID || strings.HasPrefix(heroID, ".") {
		return ErrInvalidHeroID
	}
	if m.has(heroID) {
		return fmt.Errorf("%w: %s", ErrHeroKnown, heroID)
	}
	hash, err := m.hashBytes(data)
	if err != nil {
		return fmt.Errorf("hash learned icon: %w", err)
	}
	if err := os.MkdirAll(m.opts.LearnDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", m.opts.LearnDir, err)
	}
	path := filepath.Join(m.opts.LearnDir, heroID+".png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if !m.insert(heroID, hash) {
		return fmt.Errorf("%w: %s", ErrHeroKnown, heroID)
	}
	m.log.Info("ban icon learned", zap.String("hero", heroID), zap.String("path", path))
	return nil
}

func (m *Matcher) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

func (m *Matcher) has(heroID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.index[heroID]
	return ok
}

func (m *Matcher) insert(heroID string, hash *goimagehash.ImageHash) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.index[heroID]; ok {
		return false
	}
	m.index[heroID] = hash
	m.order = append(m.order, heroID)
	return true
}

func (m *Matcher) hashBytes(data []byte) (*goimagehash.ImageHash, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return m.hash(img)
}

func (m *Matcher) hash(img image.Image) (*goimagehash.ImageHash, error) {
	if m.opts.Width > 0 && m.opts.Height > 0 {
		img = resize.Resize(m.opts.Width, m.opts.Height, img, resize.Bilinear)
	}
	return goimagehash.PerceptionHash(img)
}

// Distance is the Hamming distance of two hashes normalised to 0..1.
func Distance(a, b *goimagehash.ImageHash) (float64, error) {
	d, err := a.Distance(b)
	if err != nil {
		return 0, err
	}
	return float64(d) / hashBits, nil
}
