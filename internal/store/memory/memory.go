package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"portfolio/internal/store"
)

// collection keeps records addressable by id while remembering insertion order.
type collection struct {
	order []string
	docs  map[string]store.Document
}

func newCollection() *collection {
	return &collection{docs: make(map[string]store.Document)}
}

// Store is the process-local fallback backend. Nothing it holds survives a restart.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
}

func New() *Store {
	cols := make(map[string]*collection, len(store.Collections))
	for _, name := range store.Collections {
		cols[name] = newCollection()
	}
	return &Store{collections: cols}
}

func (s *Store) Backend() string { return "memory" }

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close(context.Context) error { return nil }

func (s *Store) NativeTTL() bool { return false }

func (s *Store) get(name string) (*collection, error) {
	c, ok := s.collections[name]
	if !ok {
		return nil, store.CheckCollection(name)
	}
	return c, nil
}

// scan walks matching records in insertion order until fn returns false.
func (c *collection) scan(q store.Query, fn func(id string, doc store.Document) bool) {
	if id, ok := idOnly(q); ok {
		if doc, found := c.docs[id]; found {
			fn(id, doc)
		}
		return
	}
	for _, id := range c.order {
		doc := c.docs[id]
		if matches(doc, q) && !fn(id, doc) {
			return
		}
	}
}

func (c *collection) remove(id string) {
	delete(c.docs, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

func (c *collection) insert(doc store.Document) (string, error) {
	id := doc.ID()
	if id == "" {
		id = store.NewID()
	}
	if _, exists := c.docs[id]; exists {
		return "", fmt.Errorf("%w: %s", store.ErrDuplicateID, id)
	}
	doc[store.IDField] = id
	c.order = append(c.order, id)
	c.docs[id] = doc
	return id, nil
}

func (s *Store) FindOne(_ context.Context, name string, q store.Query) (store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.get(name)
	if err != nil {
		return nil, err
	}
	var out store.Document
	c.scan(q, func(_ string, doc store.Document) bool {
		out = doc.Clone()
		return false
	})
	if out == nil {
		return nil, store.ErrNotFound
	}
	return out, nil
}

func (s *Store) FindMany(_ context.Context, name string, q store.Query, opts store.FindOptions) ([]store.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.get(name)
	if err != nil {
		return nil, err
	}
	out := make([]store.Document, 0)
	c.scan(q, func(_ string, doc store.Document) bool {
		out = append(out, doc.Clone())
		return true
	})

	if opts.SortField != "" {
		// Ties keep insertion order in the sort direction, matching the
		// id tiebreak of the durable backends.
		if opts.SortDescending {
			slices.Reverse(out)
		}
		slices.SortStableFunc(out, func(a, b store.Document) int {
			cmp := compareValues(a[opts.SortField], b[opts.SortField])
			if opts.SortDescending {
				return -cmp
			}
			return cmp
		})
	}
	if opts.Limit > 0 && int64(len(out)) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *Store) InsertOne(_ context.Context, name string, doc store.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.get(name)
	if err != nil {
		return "", err
	}
	return c.insert(doc.Clone())
}

func (s *Store) UpdateOne(_ context.Context, name string, q store.Query, set store.Document, upsert bool) (store.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.get(name)
	if err != nil {
		return store.UpdateResult{}, err
	}

	matched := false
	c.scan(q, func(_ string, doc store.Document) bool {
		for k, v := range set {
			if k != store.IDField {
				doc[k] = v
			}
		}
		matched = true
		return false
	})
	if matched {
		return store.UpdateResult{Matched: true}, nil
	}
	if !upsert {
		return store.UpdateResult{}, nil
	}

	doc := make(store.Document, len(q)+len(set))
	for k, v := range q {
		doc[k] = v
	}
	for k, v := range set {
		doc[k] = v
	}
	id, err := c.insert(doc)
	if err != nil {
		return store.UpdateResult{}, err
	}
	return store.UpdateResult{UpsertedID: id}, nil
}

func (s *Store) DeleteOne(_ context.Context, name string, q store.Query) (int64, error) {
	return s.delete(name, q, 1)
}

func (s *Store) DeleteMany(_ context.Context, name string, q store.Query) (int64, error) {
	return s.delete(name, q, 0)
}

func (s *Store) delete(name string, q store.Query, limit int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.get(name)
	if err != nil {
		return 0, err
	}
	var ids []string
	c.scan(q, func(id string, _ store.Document) bool {
		ids = append(ids, id)
		return limit == 0 || len(ids) < limit
	})
	for _, id := range ids {
		c.remove(id)
	}
	return int64(len(ids)), nil
}

func (s *Store) Count(_ context.Context, name string, q store.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.get(name)
	if err != nil {
		return 0, err
	}
	var n int64
	c.scan(q, func(string, store.Document) bool {
		n++
		return true
	})
	return n, nil
}

// Sizes reports the record count of every collection.
func (s *Store) Sizes() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.collections))
	for name, c := range s.collections {
		out[name] = len(c.order)
	}
	return out
}
