package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"custody/pkg/domain"
	"custody/pkg/platform/sentinel"
)

// MongoDatabase adapts a *mongo.Database.
type MongoDatabase struct {
	db *mongo.Database
}

// NewMongoDatabase wraps db. The client's lifecycle stays with the caller.
func NewMongoDatabase(db *mongo.Database) *MongoDatabase {
	return &MongoDatabase{db: db}
}

func (d *MongoDatabase) Collection(name string) Collection {
	return &Mongo{coll: d.db.Collection(name)}
}

func (d *MongoDatabase) Ping(ctx context.Context) error {
	if err := d.db.Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping mongodb: %w: %w", sentinel.ErrUnavailable, err)
	}
	return nil
}

// Mongo is a Collection backed by MongoDB.
type Mongo struct {
	coll *mongo.Collection
}

func (m *Mongo) Name() string {
	return m.coll.Name()
}

func (m *Mongo) InsertOne(ctx context.Context, doc any) (domain.EntityID, error) {
	raw, id, err := withID(doc)
	if err != nil {
		return domain.NilEntityID, fmt.Errorf("encode %s document: %w", m.Name(), err)
	}
	if _, err := m.coll.InsertOne(ctx, raw); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.NilEntityID, fmt.Errorf("%s %s: %w", m.Name(), id, sentinel.ErrAlreadyUsed)
		}
		return domain.NilEntityID, fmt.Errorf("insert into %s: %w", m.Name(), err)
	}
	return id, nil
}

func (m *Mongo) FindOne(ctx context.Context, filter Filter) (bson.Raw, error) {
	raw, err := m.coll.FindOne(ctx, filter.document()).Raw()
	if err != nil {
		return nil, m.translate("find in", err)
	}
	return raw, nil
}

func (m *Mongo) Find(ctx context.Context, filter Filter, limit int64) ([]bson.Raw, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := m.coll.Find(ctx, filter.document(), opts)
	if err != nil {
		return nil, m.translate("find in", err)
	}
	defer cur.Close(ctx)

	out := make([]bson.Raw, 0)
	for cur.Next(ctx) {
		out = append(out, append(bson.Raw(nil), cur.Current...))
	}
	if err := cur.Err(); err != nil {
		return nil, m.translate("iterate", err)
	}
	return out, nil
}

func (m *Mongo) FindOneAndSet(ctx context.Context, filter Filter, set bson.D) (bson.Raw, error) {
	if len(set) == 0 {
		return m.FindOne(ctx, filter)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	raw, err := m.coll.FindOneAndUpdate(ctx, filter.document(), bson.D{{Key: "$set", Value: set}}, opts).Raw()
	if err != nil {
		return nil, m.translate("update", err)
	}
	return raw, nil
}

func (m *Mongo) DeleteOne(ctx context.Context, filter Filter) error {
	res, err := m.coll.DeleteOne(ctx, filter.document())
	if err != nil {
		return m.translate("delete from", err)
	}
	if res.DeletedCount == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (m *Mongo) EnsureIndex(ctx context.Context, field string) error {
	_, err := m.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetName(field + "_1"),
	})
	if err != nil {
		return fmt.Errorf("create index %s.%s: %w", m.Name(), field, err)
	}
	return nil
}

func (m *Mongo) translate(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sentinel.ErrNotFound
	}
	return fmt.Errorf("%s %s: %w", op, m.Name(), err)
}

func (f Filter) document() bson.M {
	if f == nil {
		return bson.M{}
	}
	return bson.M(f)
}
