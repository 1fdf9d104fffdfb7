package docstore

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"

	"custody/pkg/domain"
	"custody/pkg/hktime"
	"custody/pkg/platform/sentinel"
)

type widget struct {
	ID        domain.EntityID `bson:"_id,omitempty"`
	Name      string          `bson:"name"`
	BoxID     domain.EntityID `bson:"box_id"`
	Items     []string        `bson:"items"`
	UpdatedAt time.Time       `bson:"updated_at"`
}

type widgetPatch struct {
	Name  *string    `bson:"name,omitempty"`
	Items *[]string  `bson:"items,omitempty"`
	When  *time.Time `bson:"updated_at,omitempty"`
}

// CollectionSuite runs the Collection contract against a backend.
// The memory backend runs it here; the MongoDB backend runs it under the
// integration build tag.
type CollectionSuite struct {
	suite.Suite
	newCollection func(name string) Collection
	coll          Collection
	ctx           context.Context
}

func TestMemoryCollectionSuite(t *testing.T) {
	db := NewMemoryDatabase()
	n := 0
	suite.Run(t, &CollectionSuite{newCollection: func(name string) Collection {
		n++
		return Instrument(db, NewMetrics(prometheus.NewRegistry())).Collection(fmt.Sprintf("%s_%d", name, n))
	}})
}

func (s *CollectionSuite) SetupTest() {
	s.ctx = context.Background()
	s.coll = s.newCollection("widgets")
}

func (s *CollectionSuite) insert(w widget) domain.EntityID {
	id, err := s.coll.InsertOne(s.ctx, w)
	s.Require().NoError(err)
	return id
}

func (s *CollectionSuite) decode(raw bson.Raw) widget {
	var w widget
	s.Require().NoError(Decode(raw, &w))
	return w
}

func (s *CollectionSuite) TestInsertOne() {
	s.Run("assigns an id when none is set", func() {
		id := s.insert(widget{Name: "a"})
		s.False(id.IsZero())

		raw, err := s.coll.FindOne(s.ctx, ByID(id))
		s.Require().NoError(err)
		s.Equal("a", s.decode(raw).Name)
	})

	s.Run("keeps a preset id", func() {
		preset, err := domain.DeriveID("12345678")
		s.Require().NoError(err)

		id := s.insert(widget{ID: preset, Name: "bag"})
		s.Equal(preset, id)
	})

	s.Run("duplicate id is already used", func() {
		preset, err := domain.DeriveID("dup")
		s.Require().NoError(err)
		s.insert(widget{ID: preset})

		_, err = s.coll.InsertOne(s.ctx, widget{ID: preset})
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})
}

func (s *CollectionSuite) TestFind() {
	boxA := domain.NewEntityID()
	boxB := domain.NewEntityID()
	s.insert(widget{Name: "1", BoxID: boxA})
	s.insert(widget{Name: "2", BoxID: boxB})
	s.insert(widget{Name: "3", BoxID: boxA})

	s.Run("filters by field equality in natural order", func() {
		docs, err := s.coll.Find(s.ctx, Filter{"box_id": boxA}, 0)
		s.Require().NoError(err)
		s.Require().Len(docs, 2)
		s.Equal("1", s.decode(docs[0]).Name)
		s.Equal("3", s.decode(docs[1]).Name)
	})

	s.Run("applies the limit", func() {
		docs, err := s.coll.Find(s.ctx, nil, 2)
		s.Require().NoError(err)
		s.Len(docs, 2)
	})

	s.Run("no match is an empty list", func() {
		docs, err := s.coll.Find(s.ctx, Filter{"box_id": domain.NewEntityID()}, 0)
		s.Require().NoError(err)
		s.NotNil(docs)
		s.Empty(docs)
	})

	s.Run("find one misses with not found", func() {
		_, err := s.coll.FindOne(s.ctx, Filter{"name": "missing"})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *CollectionSuite) TestFindOneAndSet() {
	id := s.insert(widget{Name: "before", Items: []string{"watch"}})

	s.Run("sets only supplied fields", func() {
		name := "after"
		set, err := Fields(widgetPatch{Name: &name})
		s.Require().NoError(err)

		raw, err := s.coll.FindOneAndSet(s.ctx, ByID(id), set)
		s.Require().NoError(err)
		got := s.decode(raw)
		s.Equal("after", got.Name)
		s.Equal([]string{"watch"}, got.Items)
		s.Equal(id, got.ID)
	})

	s.Run("empty set reads the current document", func() {
		raw, err := s.coll.FindOneAndSet(s.ctx, ByID(id), nil)
		s.Require().NoError(err)
		s.Equal("after", s.decode(raw).Name)
	})

	s.Run("missing target is not found", func() {
		name := "x"
		set, err := Fields(widgetPatch{Name: &name})
		s.Require().NoError(err)
		_, err = s.coll.FindOneAndSet(s.ctx, ByID(domain.NewEntityID()), set)
		s.ErrorIs(err, sentinel.ErrNotFound)

		_, err = s.coll.FindOneAndSet(s.ctx, ByID(domain.NewEntityID()), nil)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *CollectionSuite) TestDeleteOne() {
	id := s.insert(widget{Name: "gone"})

	s.Require().NoError(s.coll.DeleteOne(s.ctx, ByID(id)))

	_, err := s.coll.FindOne(s.ctx, ByID(id))
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.coll.DeleteOne(s.ctx, ByID(id)), sentinel.ErrNotFound)
}

func (s *CollectionSuite) TestTimestampsRoundTripInStorageZone() {
	stamp := time.Date(2024, 4, 23, 10, 0, 0, 123456789, time.UTC)
	id := s.insert(widget{Name: "t", UpdatedAt: hktime.Normalize(stamp)})

	raw, err := s.coll.FindOne(s.ctx, ByID(id))
	s.Require().NoError(err)
	got := s.decode(raw).UpdatedAt

	s.True(got.Equal(stamp.Truncate(time.Millisecond)))
	_, offset := got.Zone()
	s.Equal(8*60*60, offset)
}

func TestFields(t *testing.T) {
	t.Run("omits nil fields", func(t *testing.T) {
		fields, err := Fields(widgetPatch{})
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("keeps explicit empty list", func(t *testing.T) {
		items := []string{}
		fields, err := Fields(widgetPatch{Items: &items})
		require.NoError(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, "items", fields[0].Key)
	})
}

func TestEnsureIndexes(t *testing.T) {
	db := NewMemoryDatabase()

	err := EnsureIndexes(context.Background(), db, map[string][]string{
		"bags":  {"box_id", "prisoner_id"},
		"boxes": {"shelf_id"},
	})
	require.NoError(t, err)

	assert.True(t, db.Collection("bags").(*Memory).Indexed("prisoner_id"))
	assert.True(t, db.Collection("boxes").(*Memory).Indexed("shelf_id"))
	assert.False(t, db.Collection("boxes").(*Memory).Indexed("box_id"))
}
