package docstore

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"custody/pkg/domain"
	"custody/pkg/platform/sentinel"
)

// MemoryDatabase keeps collections in process. Documents are stored BSON-encoded,
// so precision and typing match what MongoDB would return.
type MemoryDatabase struct {
	mu          sync.Mutex
	collections map[string]*Memory
}

// NewMemoryDatabase creates an empty in-memory database.
func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{collections: make(map[string]*Memory)}
}

// Collection returns the named collection, creating it on first use.
func (d *MemoryDatabase) Collection(name string) Collection {
	d.mu.Lock()
	defer d.mu.Unlock()
	c, ok := d.collections[name]
	if !ok {
		c = NewMemory(name)
		d.collections[name] = c
	}
	return c
}

func (d *MemoryDatabase) Ping(context.Context) error {
	return nil
}

// Memory is an in-memory Collection. Natural order is insertion order.
type Memory struct {
	name    string
	mu      sync.RWMutex
	docs    []bson.Raw
	indexes map[string]struct{}
}

// NewMemory creates an empty collection.
func NewMemory(name string) *Memory {
	return &Memory{name: name, indexes: make(map[string]struct{})}
}

func (m *Memory) Name() string {
	return m.name
}

func (m *Memory) InsertOne(_ context.Context, doc any) (domain.EntityID, error) {
	raw, id, err := withID(doc)
	if err != nil {
		return domain.NilEntityID, fmt.Errorf("encode %s document: %w", m.name, err)
	}
	match, err := compile(ByID(id))
	if err != nil {
		return domain.NilEntityID, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(match) >= 0 {
		return domain.NilEntityID, fmt.Errorf("%s %s: %w", m.name, id, sentinel.ErrAlreadyUsed)
	}
	m.docs = append(m.docs, raw)
	return id, nil
}

func (m *Memory) FindOne(_ context.Context, filter Filter) (bson.Raw, error) {
	match, err := compile(filter)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(match)
	if i < 0 {
		return nil, sentinel.ErrNotFound
	}
	return clone(m.docs[i]), nil
}

func (m *Memory) Find(_ context.Context, filter Filter, limit int64) ([]bson.Raw, error) {
	match, err := compile(filter)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]bson.Raw, 0)
	for _, doc := range m.docs {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if match(doc) {
			out = append(out, clone(doc))
		}
	}
	return out, nil
}

func (m *Memory) FindOneAndSet(ctx context.Context, filter Filter, set bson.D) (bson.Raw, error) {
	if len(set) == 0 {
		return m.FindOne(ctx, filter)
	}
	match, err := compile(filter)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(match)
	if i < 0 {
		return nil, sentinel.ErrNotFound
	}

	var current bson.D
	if err := bson.Unmarshal(m.docs[i], &current); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", m.name, err)
	}
	for _, field := range set {
		if field.Key == IDField {
			continue
		}
		current = setField(current, field)
	}
	updated, err := bson.Marshal(current)
	if err != nil {
		return nil, fmt.Errorf("encode %s document: %w", m.name, err)
	}
	m.docs[i] = updated
	return clone(updated), nil
}

func (m *Memory) DeleteOne(_ context.Context, filter Filter) error {
	match, err := compile(filter)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(match)
	if i < 0 {
		return sentinel.ErrNotFound
	}
	m.docs = append(m.docs[:i], m.docs[i+1:]...)
	return nil
}

// EnsureIndex only records the field; lookups are linear scans.
func (m *Memory) EnsureIndex(_ context.Context, field string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.indexes[field] = struct{}{}
	return nil
}

// Indexed reports whether EnsureIndex was called for field.
func (m *Memory) Indexed(field string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.indexes[field]
	return ok
}

// indexOf must be called with the lock held.
func (m *Memory) indexOf(match func(bson.Raw) bool) int {
	for i, doc := range m.docs {
		if match(doc) {
			return i
		}
	}
	return -1
}

type encodedValue struct {
	t    bsontype.Type
	data []byte
}

// compile encodes each filter value once so matching is a byte comparison.
func compile(filter Filter) (func(bson.Raw) bool, error) {
	want := make(map[string]encodedValue, len(filter))
	for field, v := range filter {
		t, data, err := bson.MarshalValue(v)
		if err != nil {
			return nil, fmt.Errorf("encode filter %s: %w", field, err)
		}
		want[field] = encodedValue{t: t, data: data}
	}
	return func(doc bson.Raw) bool {
		for field, ev := range want {
			got, err := doc.LookupErr(field)
			if err != nil || got.Type != ev.t || !bytes.Equal(got.Value, ev.data) {
				return false
			}
		}
		return true
	}, nil
}

func setField(doc bson.D, field bson.E) bson.D {
	for i := range doc {
		if doc[i].Key == field.Key {
			doc[i].Value = field.Value
			return doc
		}
	}
	return append(doc, field)
}

func clone(raw bson.Raw) bson.Raw {
	return append(bson.Raw(nil), raw...)
}
