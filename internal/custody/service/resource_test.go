package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"custody/internal/custody/metrics"
	"custody/internal/custody/models"
	"custody/internal/custody/store"
	"custody/internal/docstore"
	"custody/pkg/domain"
	dErrors "custody/pkg/domain-errors"
	"custody/pkg/platform/audit"
	"custody/pkg/requestcontext"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []audit.Event
}

func (p *recordingPublisher) Emit(_ context.Context, event audit.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) actions() []audit.Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]audit.Action, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

type ResourceSuite struct {
	suite.Suite
	db        *docstore.MemoryDatabase
	publisher *recordingPublisher
	metrics   *metrics.Metrics
	shelves   *Resource[models.Shelf, models.ShelfUpdate]
	bags      *Resource[models.Bag, models.BagUpdate]
	prisoners *Resource[models.Prisoner, models.PrisonerUpdate]
	officer   domain.EntityID
	now       time.Time
}

func TestResourceSuite(t *testing.T) {
	suite.Run(t, new(ResourceSuite))
}

func (s *ResourceSuite) SetupTest() {
	s.db = docstore.NewMemoryDatabase()
	s.publisher = &recordingPublisher{}
	s.metrics = metrics.New(prometheus.NewRegistry())
	opts := []Option{WithAuditPublisher(s.publisher), WithMetrics(s.metrics)}

	s.shelves = NewResource[models.Shelf, models.ShelfUpdate](domain.ResourceShelves,
		store.New[models.Shelf](s.db.Collection(store.Shelves)), opts...)
	s.bags = NewResource[models.Bag, models.BagUpdate](domain.ResourceBags,
		store.New[models.Bag](s.db.Collection(store.Bags)), opts...)
	s.prisoners = NewResource[models.Prisoner, models.PrisonerUpdate](domain.ResourcePrisoners,
		store.New[models.Prisoner](s.db.Collection(store.Prisoners)), opts...)

	s.officer = domain.NewEntityID()
	s.now = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
}

func (s *ResourceSuite) ctxAt(offset time.Duration) context.Context {
	return requestcontext.WithTime(context.Background(), s.now.Add(offset))
}

func (s *ResourceSuite) shelf() models.Shelf {
	return models.Shelf{Capacity: 10, ShelfName: "Shelf A", LastUpdatedBy: s.officer}
}

func (s *ResourceSuite) bag(epc string, box domain.EntityID) models.Bag {
	return models.Bag{
		RFIDEPC:       epc,
		BoxID:         box,
		Items:         []string{"wallet", "keys"},
		OfficerID:     "12345",
		PrisonerID:    domain.NewEntityID(),
		LastUpdatedBy: "12345",
	}
}

func (s *ResourceSuite) TestCreate() {
	s.Run("store assigns ids and request time fills defaults", func() {
		ctx := s.ctxAt(0)
		created, err := s.shelves.Create(ctx, s.shelf())
		s.Require().NoError(err)
		s.False(created.ID.IsZero())
		s.True(created.LastUpdated.Equal(s.now))

		got, err := s.shelves.Get(ctx, created.ID)
		s.Require().NoError(err)
		s.Equal(created.ShelfName, got.ShelfName)
		s.Equal(created.Capacity, got.Capacity)
		s.Equal(created.LastUpdatedBy, got.LastUpdatedBy)
		s.True(created.LastUpdated.Equal(got.LastUpdated))
	})

	s.Run("derives bag id from rfid_epc and ignores a supplied id", func() {
		b := s.bag("12345678", domain.NewEntityID())
		b.ID = domain.NewEntityID()

		created, err := s.bags.Create(s.ctxAt(0), b)
		s.Require().NoError(err)
		s.Equal("000000003132333435363738", created.ID.Hex())
		s.Equal([]string{"wallet", "keys"}, created.Items)
		s.True(created.DateRegistered.Equal(s.now))
	})

	s.Run("duplicate business key is a conflict", func() {
		_, err := s.bags.Create(s.ctxAt(0), s.bag("12345678", domain.NewEntityID()))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("Bag 000000003132333435363738 already exists", dErrors.MessageOf(err))
	})

	s.Run("overlong business key is rejected", func() {
		_, err := s.bags.Create(s.ctxAt(0), s.bag("E200341201234567", domain.NewEntityID()))
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("invalid record is rejected before the store", func() {
		shelf := s.shelf()
		shelf.Capacity = 0
		_, err := s.shelves.Create(s.ctxAt(0), shelf)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		list, err := s.shelves.List(s.ctxAt(0))
		s.Require().NoError(err)
		s.Len(list, 1)
	})

	s.Equal(2.0, testutil.ToFloat64(s.metrics.RecordsCreated.WithLabelValues("shelves"))+
		testutil.ToFloat64(s.metrics.RecordsCreated.WithLabelValues("bags")))
}

func (s *ResourceSuite) TestGetBy() {
	ctx := s.ctxAt(0)
	_, err := s.prisoners.Create(ctx, models.Prisoner{
		IDNumber:      "A1234567",
		FirstName:     "Chan",
		LastName:      "Tai Man",
		Gender:        "M",
		LastUpdatedBy: s.officer,
		OfficerID:     s.officer,
	})
	s.Require().NoError(err)

	s.Run("finds by business key", func() {
		got, err := s.prisoners.GetBy(ctx, "id_number", "A1234567")
		s.Require().NoError(err)
		s.Equal("Chan", got.FirstName)
		want, err := domain.DeriveID("A1234567")
		s.Require().NoError(err)
		s.Equal(want, got.ID)
	})

	s.Run("unknown key is not found", func() {
		_, err := s.prisoners.GetBy(ctx, "id_number", "Z0000000")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("Prisoner Z0000000 not found", dErrors.MessageOf(err))
	})
}

func (s *ResourceSuite) TestListBy() {
	ctx := s.ctxAt(0)
	boxA, boxB := domain.NewEntityID(), domain.NewEntityID()
	for _, epc := range []string{"E1", "E2"} {
		_, err := s.bags.Create(ctx, s.bag(epc, boxA))
		s.Require().NoError(err)
	}
	_, err := s.bags.Create(ctx, s.bag("E3", boxB))
	s.Require().NoError(err)

	inA, err := s.bags.ListBy(ctx, "box_id", boxA)
	s.Require().NoError(err)
	s.Len(inA, 2)
	for _, b := range inA {
		s.Equal(boxA, b.BoxID)
	}

	none, err := s.bags.ListBy(ctx, "box_id", domain.NewEntityID())
	s.Require().NoError(err)
	s.Empty(none)

	all, err := s.bags.List(ctx)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *ResourceSuite) TestUpdate() {
	created, err := s.shelves.Create(s.ctxAt(0), s.shelf())
	s.Require().NoError(err)

	s.Run("changes only supplied fields and stamps last_updated", func() {
		name := "Shelf B"
		updated, err := s.shelves.Update(s.ctxAt(time.Hour), created.ID, models.ShelfUpdate{ShelfName: &name})
		s.Require().NoError(err)
		s.Equal("Shelf B", updated.ShelfName)
		s.Equal(created.Capacity, updated.Capacity)
		s.Equal(created.LastUpdatedBy, updated.LastUpdatedBy)
		s.True(updated.LastUpdated.Equal(s.now.Add(time.Hour)))
	})

	s.Run("explicit last_updated wins", func() {
		at := s.now.Add(-24 * time.Hour)
		updated, err := s.shelves.Update(s.ctxAt(2*time.Hour), created.ID, models.ShelfUpdate{LastUpdated: &at})
		s.Require().NoError(err)
		s.True(updated.LastUpdated.Equal(at))
	})

	s.Run("empty patch returns the record unchanged", func() {
		before, err := s.shelves.Get(s.ctxAt(0), created.ID)
		s.Require().NoError(err)
		after, err := s.shelves.Update(s.ctxAt(3*time.Hour), created.ID, models.ShelfUpdate{})
		s.Require().NoError(err)
		s.Equal(before.ShelfName, after.ShelfName)
		s.True(before.LastUpdated.Equal(after.LastUpdated))
	})

	s.Run("invalid patch is rejected", func() {
		zero := 0
		_, err := s.shelves.Update(s.ctxAt(0), created.ID, models.ShelfUpdate{Capacity: &zero})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown id is not found", func() {
		missing := domain.NewEntityID()
		name := "x"
		_, err := s.shelves.Update(s.ctxAt(0), missing, models.ShelfUpdate{ShelfName: &name})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("Shelf "+missing.Hex()+" not found", dErrors.MessageOf(err))

		_, err = s.shelves.Update(s.ctxAt(0), missing, models.ShelfUpdate{})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Equal(2.0, testutil.ToFloat64(s.metrics.RecordsUpdated.WithLabelValues("shelves")))
}

func (s *ResourceSuite) TestDelete() {
	ctx := s.ctxAt(0)
	created, err := s.shelves.Create(ctx, s.shelf())
	s.Require().NoError(err)

	s.Require().NoError(s.shelves.Delete(ctx, created.ID))

	_, err = s.shelves.Get(ctx, created.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	err = s.shelves.Delete(ctx, created.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

	s.Equal([]audit.Action{audit.ActionRecordCreated, audit.ActionRecordDeleted}, s.publisher.actions())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.RecordsDeleted.WithLabelValues("shelves")))
}

func (s *ResourceSuite) TestAuditEvents() {
	ctx := s.ctxAt(0)
	created, err := s.bags.Create(ctx, s.bag("12345678", domain.NewEntityID()))
	s.Require().NoError(err)
	items := []string{"watch"}
	_, err = s.bags.Update(ctx, created.ID, models.BagUpdate{Items: &items})
	s.Require().NoError(err)

	s.Require().Len(s.publisher.events, 2)
	for _, e := range s.publisher.events {
		s.Equal("bags", e.Resource)
		s.Equal(created.ID.Hex(), e.EntityID)
	}
	s.Equal(audit.ActionRecordUpdated, s.publisher.events[1].Action)
}

type failingRepository[T any] struct {
	Repository[T]
	err error
}

func (r failingRepository[T]) FindByID(context.Context, domain.EntityID) (*T, error) {
	return nil, r.err
}

func (r failingRepository[T]) List(context.Context, int) ([]T, error) {
	return nil, r.err
}

func TestResourceInternalErrors(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewResource[models.Shelf, models.ShelfUpdate](domain.ResourceShelves,
		failingRepository[models.Shelf]{err: boom})

	_, err := svc.Get(context.Background(), domain.NewEntityID())
	if !dErrors.HasCode(err, dErrors.CodeInternal) || !errors.Is(err, boom) {
		t.Fatalf("expected internal error wrapping the cause, got %v", err)
	}

	_, err = svc.List(context.Background())
	if !dErrors.HasCode(err, dErrors.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}
