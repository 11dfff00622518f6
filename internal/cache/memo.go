package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto"
)

// Memo keeps inputs already read in this process so that a puzzle asking
// for its input once per part doesn't go back to disk. It may drop
// entries; callers fall through to the Store.
type Memo struct {
	c *ristretto.Cache
}

// NewMemo returns a memo bounded to roughly maxBytes of input text.
func NewMemo(maxBytes int64) (*Memo, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1000,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create memo: %w", err)
	}
	return &Memo{c: c}, nil
}

func memoKey(year, day uint16) string {
	return fmt.Sprintf("%d/%d", year, day)
}

// Get returns the memoized input for (year, day), if any.
func (m *Memo) Get(year, day uint16) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.c.Get(memoKey(year, day))
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Set records content for (year, day) and waits until it's visible.
func (m *Memo) Set(year, day uint16, content string) {
	if m == nil {
		return
	}
	m.c.Set(memoKey(year, day), content, int64(len(content))+1)
	m.c.Wait()
}

func (m *Memo) Close() {
	if m == nil {
		return
	}
	m.c.Close()
}
