// Package ledger tracks which issues have already received an automated
// response, so repeated polling cycles never respond to the same issue twice.
package ledger

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"
)

// Ledger is a persisted mapping of issue number -> processed timestamp.
// Entries are never evicted: a processed issue stays processed across
// restarts. The file is a flat JSON object {"<number>": "<RFC3339>"}.
type Ledger struct {
	mu   sync.Mutex
	path string
	seen map[string]time.Time
}

// Load reads the ledger file at path. A missing, empty, or corrupt file is
// not an error: it is logged and treated as an empty ledger, trading
// possible duplicate responses for availability.
func Load(path string) *Ledger {
	l := &Ledger{path: path, seen: make(map[string]time.Time)}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("ledger read error, starting empty: %v", err)
		}
		return l
	}
	if len(data) == 0 {
		return l
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Printf("ledger corrupt at %s, starting empty: %v", path, err)
		return l
	}
	for id, stamp := range raw {
		ts, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			log.Printf("ledger entry %s has bad timestamp '%s', skipping", id, stamp)
			continue
		}
		l.seen[id] = ts
	}
	return l
}

// Has reports whether the issue was already processed.
func (l *Ledger) Has(number int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[key(number)]
	return ok
}

// MarkProcessed records the issue and rewrites the ledger file. Marking an
// already-processed issue is a no-op: the original timestamp is kept and
// the file is not rewritten.
func (l *Ledger) MarkProcessed(number int64, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(number)
	if _, ok := l.seen[k]; ok {
		return nil
	}
	l.seen[k] = at
	return l.persistLocked()
}

// Len returns the number of processed issues.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}

func (l *Ledger) persistLocked() error {
	raw := make(map[string]string, len(l.seen))
	for id, ts := range l.seen {
		raw[id] = ts.UTC().Format(time.RFC3339)
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

func key(number int64) string {
	return strconv.FormatInt(number, 10)
}
