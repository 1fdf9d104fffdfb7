package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"custody/internal/custody/models"
	"custody/internal/docstore"
	"custody/pkg/domain"
	"custody/pkg/hktime"
	"custody/pkg/platform/sentinel"
)

type RepositorySuite struct {
	suite.Suite
	ctx     context.Context
	db      *docstore.MemoryDatabase
	bags    *Repository[models.Bag]
	shelves *Repository[models.Shelf]
	now     time.Time
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = docstore.NewMemoryDatabase()
	s.bags = New[models.Bag](s.db.Collection(Bags))
	s.shelves = New[models.Shelf](s.db.Collection(Shelves))
	s.now = hktime.Now()
}

func (s *RepositorySuite) newBag(epc string, box domain.EntityID) models.Bag {
	id, err := domain.DeriveID(epc)
	s.Require().NoError(err)
	return models.Bag{
		RFIDEPC:       epc,
		BoxID:         box,
		Items:         []string{"2 pens", "1 notebook"},
		OfficerID:     "johndoe",
		PrisonerID:    domain.NewEntityID(),
		LastUpdatedBy: "johndoe",
	}.Prepare(id, s.now)
}

func (s *RepositorySuite) TestCreate() {
	s.Run("round trips a derived-id record", func() {
		bag := s.newBag("12345678", domain.NewEntityID())

		created, err := s.bags.Create(s.ctx, bag)
		s.Require().NoError(err)
		s.Equal("000000003132333435363738", created.ID.Hex())
		s.Equal(bag.Items, created.Items)
		s.True(created.DateRegistered.Equal(s.now))

		found, err := s.bags.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal(created.RFIDEPC, found.RFIDEPC)
	})

	s.Run("store assigns ids for shelves", func() {
		created, err := s.shelves.Create(s.ctx, models.Shelf{
			Capacity: 5, ShelfName: "A", LastUpdatedBy: domain.NewEntityID(),
		}.Prepare(domain.NilEntityID, s.now))
		s.Require().NoError(err)
		s.False(created.ID.IsZero())
	})

	s.Run("duplicate derived id is already used", func() {
		bag := s.newBag("dup-epc", domain.NewEntityID())
		_, err := s.bags.Create(s.ctx, bag)
		s.Require().NoError(err)

		_, err = s.bags.Create(s.ctx, bag)
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})
}

func (s *RepositorySuite) TestListBy() {
	boxA := domain.NewEntityID()
	boxB := domain.NewEntityID()
	for _, epc := range []string{"a1", "b1", "a2"} {
		box := boxA
		if epc[0] == 'b' {
			box = boxB
		}
		_, err := s.bags.Create(s.ctx, s.newBag(epc, box))
		s.Require().NoError(err)
	}

	got, err := s.bags.ListBy(s.ctx, docstore.Filter{"box_id": boxA}, 0)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("a1", got[0].RFIDEPC)
	s.Equal("a2", got[1].RFIDEPC)

	all, err := s.bags.List(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(all, 2)

	none, err := s.bags.ListBy(s.ctx, docstore.Filter{"box_id": domain.NewEntityID()}, 0)
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}

func (s *RepositorySuite) TestUpdate() {
	created, err := s.bags.Create(s.ctx, s.newBag("upd", domain.NewEntityID()))
	s.Require().NoError(err)

	s.Run("changes only supplied fields", func() {
		items := []string{"wallet"}
		updated, err := s.bags.Update(s.ctx, created.ID, models.BagUpdate{Items: &items})
		s.Require().NoError(err)
		s.Equal([]string{"wallet"}, updated.Items)
		s.Equal(created.BoxID, updated.BoxID)
		s.Equal(created.OfficerID, updated.OfficerID)
		s.True(updated.LastUpdated.Equal(created.LastUpdated))
	})

	s.Run("new rfid keeps the original id", func() {
		epc := "rewritten"
		updated, err := s.bags.Update(s.ctx, created.ID, models.BagUpdate{RFIDEPC: &epc})
		s.Require().NoError(err)
		s.Equal(created.ID, updated.ID)
		s.Equal("rewritten", updated.RFIDEPC)
	})

	s.Run("empty patch returns current record", func() {
		current, err := s.bags.Update(s.ctx, created.ID, models.BagUpdate{})
		s.Require().NoError(err)
		s.Equal("rewritten", current.RFIDEPC)
	})

	s.Run("missing id is not found", func() {
		_, err := s.bags.Update(s.ctx, domain.NewEntityID(), models.BagUpdate{})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *RepositorySuite) TestDelete() {
	created, err := s.bags.Create(s.ctx, s.newBag("del", domain.NewEntityID()))
	s.Require().NoError(err)

	s.Require().NoError(s.bags.Delete(s.ctx, created.ID))
	_, err = s.bags.FindByID(s.ctx, created.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	s.ErrorIs(s.bags.Delete(s.ctx, created.ID), sentinel.ErrNotFound)
}

func (s *RepositorySuite) TestListIsCapped() {
	officer := domain.NewEntityID()
	for i := range models.ListLimit + 5 {
		_, err := s.shelves.Create(s.ctx, models.Shelf{
			Capacity: i + 1, ShelfName: "S", LastUpdatedBy: officer,
		}.Prepare(domain.NilEntityID, s.now))
		s.Require().NoError(err)
	}

	s.Run("default limit returns the first 1000 in insertion order", func() {
		got, err := s.shelves.List(s.ctx, 0)
		s.Require().NoError(err)
		s.Require().Len(got, models.ListLimit)
		s.Equal(1, got[0].Capacity)
		s.Equal(models.ListLimit, got[len(got)-1].Capacity)
	})

	s.Run("larger limits are clamped", func() {
		got, err := s.shelves.List(s.ctx, 5000)
		s.Require().NoError(err)
		s.Len(got, models.ListLimit)
	})

	s.Run("filtered lists are clamped too", func() {
		got, err := s.shelves.ListBy(s.ctx, docstore.Filter{"last_updated_by": officer}, 0)
		s.Require().NoError(err)
		s.Len(got, models.ListLimit)
	})
}

func (s *RepositorySuite) TestClampLimit() {
	s.Equal(models.ListLimit, clampLimit(0))
	s.Equal(models.ListLimit, clampLimit(-5))
	s.Equal(models.ListLimit, clampLimit(5000))
	s.Equal(10, clampLimit(10))
}
