// apps/go-server/internal/words/words.go
//
// Provides the two syllable groups the game is built around.
//
// Responsibilities:
//   - Load the "p" and "q" syllable lists from environment-provided files or
//     fall back to the lists embedded in the assets package.
//   - Validate them: non-empty, lowercase a–z, correct initial, no syllable in both.
//   - Supply the loaded lists (Get) and simple counts (Stats).
//
// Initialization behavior (Init):
//   1. If WORDS_P_FILE is set, the p group is read from that file; otherwise
//      the embedded words_p.txt is used. WORDS_Q_FILE works the same way.
//   2. Lists keep file order; blank lines and "#" comments are skipped.
//
// Initialization is run once (sync.Once).

package words

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/pinyin-pop/apps/go-server/assets"
)

// Lists holds the two ordered syllable groups.
type Lists struct {
	P []string
	Q []string
}

// Group returns the list for initial letter "p" or "q" (nil otherwise).
func (l Lists) Group(initial string) []string {
	switch initial {
	case "p":
		return l.P
	case "q":
		return l.Q
	}
	return nil
}

var (
	initOnce   sync.Once
	loaded     Lists
	initialErr error
)

// Init loads and validates the word lists exactly once.
func Init() error {
	initOnce.Do(func() {
		p, err := loadGroup(os.Getenv("WORDS_P_FILE"), assets.PList)
		if err != nil {
			initialErr = fmt.Errorf("words: p list: %w", err)
			return
		}
		q, err := loadGroup(os.Getenv("WORDS_Q_FILE"), assets.QList)
		if err != nil {
			initialErr = fmt.Errorf("words: q list: %w", err)
			return
		}
		l := Lists{P: p, Q: q}
		if err := Validate(l); err != nil {
			initialErr = err
			return
		}
		loaded = l
	})
	return initialErr
}

// Get returns the loaded lists. Init must have succeeded first.
func Get() Lists {
	return loaded
}

// Stats returns counts of loaded syllables: (p, q).
func Stats() (pCount int, qCount int) {
	return len(loaded.P), len(loaded.Q)
}

// Validate checks that both groups are non-empty, well-formed and disjoint.
func Validate(l Lists) error {
	if len(l.P) == 0 || len(l.Q) == 0 {
		return errors.New("words: both groups must be non-empty")
	}
	seen := make(map[string]string, len(l.P)+len(l.Q))
	for _, g := range []struct {
		initial string
		list    []string
	}{{"p", l.P}, {"q", l.Q}} {
		for _, w := range g.list {
			if !isAlpha(w) || !strings.HasPrefix(w, g.initial) {
				return fmt.Errorf("words: %q is not a %s syllable", w, g.initial)
			}
			if other, ok := seen[w]; ok && other != g.initial {
				return fmt.Errorf("words: %q appears in both groups", w)
			}
			seen[w] = g.initial
		}
	}
	return nil
}

// loadGroup reads path when set, otherwise calls the embedded fallback.
func loadGroup(path string, embedded func() ([]string, error)) ([]string, error) {
	if path == "" {
		return embedded()
	}
	return readWordFile(path)
}

// readWordFile loads one syllable per line from a file,
// lowercases and trims, skipping blanks and "#" comments.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// isAlpha reports whether s is non-empty and all lowercase ASCII letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
