package engine

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/procflow/procflow/internal/ingest"
	"github.com/procflow/procflow/internal/model"
)

// resultCache memoizes the last recomputation pass. The key fingerprints
// input identity plus the configuration snapshot, so any change to the
// tables, mappings, settings or lookup table misses and recomputes.
type resultCache struct {
	result Result
	key    string
	mu     sync.RWMutex
}

func newResultCache() *resultCache {
	return &resultCache{}
}

func (c *resultCache) get(key string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.key == "" || c.key != key {
		return Result{}, false
	}
	return c.result, true
}

func (c *resultCache) put(key string, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	c.result = result
}

// configFingerprint hashes the settings and category lookup an engine was
// built over.
func configFingerprint(settings model.Settings, lookup model.CategoryLookup) string {
	h := sha256.New()
	fmt.Fprintf(h, "df:%s\n", settings.DateFormat)
	for _, s := range settings.PROpenStatuses {
		fmt.Fprintf(h, "pr:%s\n", s)
	}
	for _, s := range settings.POOpenDeliveryStatuses {
		fmt.Fprintf(h, "po:%s\n", s)
	}

	keys := make([]string, 0, len(lookup))
	for k := range lookup {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "lk:%s=%s\n", k, lookup[k])
	}

	return fmt.Sprintf("%x", h.Sum(nil))
}

// inputFingerprint extends a configuration fingerprint with the raw tables
// and field mappings of one pass.
func inputFingerprint(base string, prTable, poTable *ingest.Table, prMap, poMap model.FieldMapping) string {
	h := sha256.New()
	fmt.Fprintf(h, "base:%s\n", base)
	hashMapping(h, "prmap", prMap)
	hashMapping(h, "pomap", poMap)
	hashTable(h, "prs", prTable)
	hashTable(h, "pos", poTable)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func hashMapping(h io.Writer, label string, m model.FieldMapping) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "%s:%s=%s\n", label, k, m[k])
	}
}

func hashTable(h io.Writer, label string, t *ingest.Table) {
	if t == nil {
		fmt.Fprintf(h, "%s:nil\n", label)
		return
	}
	for _, col := range t.Columns {
		fmt.Fprintf(h, "%s:col:%s\n", label, col)
	}
	for i, row := range t.Rows {
		for _, col := range t.Columns {
			fmt.Fprintf(h, "%s:%d:%s=%s\n", label, i, col, row[col])
		}
	}
}
