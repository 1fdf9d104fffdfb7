// Package custody wires the custody record services and their HTTP handlers
// onto a document database.
package custody

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"custody/internal/custody/handler"
	"custody/internal/custody/models"
	"custody/internal/custody/service"
	"custody/internal/custody/store"
	"custody/internal/docstore"
	"custody/pkg/domain"
)

// Module holds one service per collection.
type Module struct {
	Shelves   *service.Resource[models.Shelf, models.ShelfUpdate]
	Boxes     *service.Resource[models.Box, models.BoxUpdate]
	Bags      *service.Resource[models.Bag, models.BagUpdate]
	Prisoners *service.Resource[models.Prisoner, models.PrisonerUpdate]
	Officers  *service.Officers

	logger *slog.Logger
}

// New builds the services over db. opts apply to every service.
func New(db docstore.Database, logger *slog.Logger, opts ...service.Option) *Module {
	opts = append([]service.Option{service.WithLogger(logger)}, opts...)
	return &Module{
		Shelves: service.NewResource[models.Shelf, models.ShelfUpdate](domain.ResourceShelves,
			store.New[models.Shelf](db.Collection(store.Shelves)), opts...),
		Boxes: service.NewResource[models.Box, models.BoxUpdate](domain.ResourceBoxes,
			store.New[models.Box](db.Collection(store.Boxes)), opts...),
		Bags: service.NewResource[models.Bag, models.BagUpdate](domain.ResourceBags,
			store.New[models.Bag](db.Collection(store.Bags)), opts...),
		Prisoners: service.NewResource[models.Prisoner, models.PrisonerUpdate](domain.ResourcePrisoners,
			store.New[models.Prisoner](db.Collection(store.Prisoners)), opts...),
		Officers: service.NewOfficers(store.New[models.Officer](db.Collection(store.Officers)), opts...),
		logger:   logger,
	}
}

// Register mounts every resource under r.
func (m *Module) Register(r chi.Router) {
	handler.New[models.Shelf, models.ShelfUpdate](domain.ResourceShelves, m.Shelves, m.logger,
		func(recs []models.Shelf) any { return models.ShelfCollection{Shelves: recs} },
	).Register(r)

	handler.New[models.Box, models.BoxUpdate](domain.ResourceBoxes, m.Boxes, m.logger,
		func(recs []models.Box) any { return models.BoxCollection{Boxes: recs} },
		handler.WithListBy[models.Box, models.BoxUpdate]("shelf", "shelf_id"),
	).Register(r)

	handler.New[models.Bag, models.BagUpdate](domain.ResourceBags, m.Bags, m.logger,
		func(recs []models.Bag) any { return models.BagCollection{Bags: recs} },
		handler.WithListBy[models.Bag, models.BagUpdate]("box", "box_id"),
		handler.WithListBy[models.Bag, models.BagUpdate]("prisoner", "prisoner_id"),
	).Register(r)

	handler.New[models.Prisoner, models.PrisonerUpdate](domain.ResourcePrisoners, m.Prisoners, m.logger,
		func(recs []models.Prisoner) any { return models.PrisonerCollection{Prisoners: recs} },
		handler.WithListBy[models.Prisoner, models.PrisonerUpdate]("officer", "officer_id"),
		handler.WithLookup[models.Prisoner, models.PrisonerUpdate]("id-number", "id_number"),
	).Register(r)

	handler.NewOfficers(m.Officers, m.logger).Register(r)
}
