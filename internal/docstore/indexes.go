package docstore

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// EnsureIndexes creates the indexes for each collection concurrently.
// The map is collection name to indexed fields.
func EnsureIndexes(ctx context.Context, db Database, indexes map[string][]string) error {
	g, ctx := errgroup.WithContext(ctx)
	for name, fields := range indexes {
		coll := db.Collection(name)
		g.Go(func() error {
			for _, field := range fields {
				if err := coll.EnsureIndex(ctx, field); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
