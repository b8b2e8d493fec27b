// Package theme keeps the site's color, image and text overrides. A Store
// loads the flat site_config table once, serves a cached snapshot and
// reconciles against the table after every write.
package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"maps"
	"sort"
	"sync"
)

// ErrUnknownField is returned by Update for a field outside the theme.
var ErrUnknownField = errors.New("unknown theme field")

// ErrPartialWrite is joined to an Update error when some rows were already
// stored before the failure.
var ErrPartialWrite = errors.New("theme partially written")

// Source is the backing key/value table.
type Source interface {
	All(ctx context.Context) (map[string]string, error)
	UpsertMany(ctx context.Context, values map[string]string) error
}

// Patch carries the fields to change, by camelCase name. JSON fields of
// TextContent accept either a JSON string or a value to encode.
type Patch struct {
	Colors      map[string]string
	Images      map[string]string
	TextContent map[string]any
}

type Store struct {
	src Source

	mu     sync.RWMutex
	raw    map[string]string
	snap   Snapshot
	css    string
	stale  bool
	subs   map[int]func(Snapshot)
	nextID int

	// seq numbers every Load and merge; applied is the newest one installed.
	seq     uint64
	applied uint64
}

// NewStore returns a store serving defaults until the first Load.
func NewStore(src Source) *Store {
	s := &Store{src: src, raw: map[string]string{}, stale: true, subs: map[int]func(Snapshot){}}
	s.snap = reduce(s.raw)
	s.css = renderCSS(s.snap)
	return s
}

func (s *Store) ticket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Load fetches every row and replaces the snapshot. On error the previous
// snapshot stays in place. A read that started before the snapshot last
// installed is dropped.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	t := s.ticket()
	raw, err := s.src.All(ctx)
	if err != nil {
		return s.Current(), fmt.Errorf("load theme: %w", err)
	}
	snap := reduce(raw)
	css := renderCSS(snap)

	s.mu.Lock()
	if t < s.applied {
		s.mu.Unlock()
		return s.Current(), nil
	}
	s.applied = t
	s.raw = raw
	s.snap = snap
	s.css = css
	s.stale = false
	s.mu.Unlock()

	s.notify(snap)
	return snap.clone(), nil
}

// Update writes each group of p in its own transaction, merges the written
// values into the cache and then reloads from the table.
func (s *Store) Update(ctx context.Context, p Patch) error {
	groups, err := p.encode()
	if err != nil {
		return err
	}
	written := false
	for _, g := range groupOrder {
		values := groups[g]
		if len(values) == 0 {
			continue
		}
		if err := s.src.UpsertMany(ctx, values); err != nil {
			s.Invalidate()
			err = fmt.Errorf("save %s: %w", g, err)
			if written {
				return errors.Join(ErrPartialWrite, err)
			}
			return err
		}
		written = true
		s.merge(values)
	}
	if _, err := s.Load(ctx); err != nil {
		s.Invalidate()
		return errors.Join(ErrPartialWrite, err)
	}
	return nil
}

func (s *Store) merge(values map[string]string) {
	s.mu.Lock()
	s.seq++
	s.applied = s.seq
	raw := maps.Clone(s.raw)
	maps.Copy(raw, values)
	snap := reduce(raw)
	s.raw = raw
	s.snap = snap
	s.css = renderCSS(snap)
	s.mu.Unlock()
	s.notify(snap)
}

// Current returns a copy of the cached snapshot.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// CSS returns the :root variable block for the cached snapshot.
func (s *Store) CSS() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.css
}

// Values returns the raw rows last loaded, with defaults for missing keys.
func (s *Store) Values() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := Defaults()
	maps.Copy(out, s.raw)
	return out
}

// Invalidate marks the cache out of date. It does not fetch.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

func (s *Store) Stale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stale
}

// Subscribe registers fn for every new snapshot. Call the returned func to
// stop receiving them.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) notify(snap Snapshot) {
	s.mu.RLock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Snapshot), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(snap.clone())
	}
}

// encode validates every field of p and converts it to storage keys. Nothing
// is written when any field is unknown.
func (p Patch) encode() (map[Group]map[string]string, error) {
	out := map[Group]map[string]string{}
	put := func(g Group, name, value string) error {
		f, ok := byGroupName[g][name]
		if !ok {
			return fmt.Errorf("%w: %s.%s", ErrUnknownField, g, name)
		}
		if out[g] == nil {
			out[g] = map[string]string{}
		}
		out[g][f.key()] = value
		return nil
	}
	for name, v := range p.Colors {
		if err := put(GroupColors, name, v); err != nil {
			return nil, err
		}
	}
	for name, v := range p.Images {
		if err := put(GroupImages, name, v); err != nil {
			return nil, err
		}
	}
	for name, v := range p.TextContent {
		f, ok := byGroupName[GroupText][name]
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, GroupText, name)
		}
		value, err := encodeText(f, v)
		if err != nil {
			return nil, err
		}
		if err := put(GroupText, name, value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func encodeText(f field, v any) (string, error) {
	if !f.json {
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("textContent.%s must be a string", f.name)
		}
		return s, nil
	}
	if s, ok := v.(string); ok {
		if !json.Valid([]byte(s)) {
			return "", fmt.Errorf("textContent.%s is not valid JSON", f.name)
		}
		return s, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("textContent.%s: %w", f.name, err)
	}
	return string(b), nil
}

// Reload is Invalidate followed by Load. It logs instead of returning the
// error so it can run from background callbacks.
func (s *Store) Reload(ctx context.Context, reason string) {
	s.Invalidate()
	if _, err := s.Load(ctx); err != nil {
		log.Printf("[theme] reload after %s failed: %v", reason, err)
	}
}
