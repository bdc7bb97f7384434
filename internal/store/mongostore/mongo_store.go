package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"gayo/internal/store"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func New(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		db:     client.Database(database),
	}
}

func (s *Store) Name() string {
	return "mongodb"
}

func (s *Store) Database() string {
	return s.db.Name()
}

func (s *Store) Insert(ctx context.Context, collection string, doc store.Document) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}
	return idString(res.InsertedID), nil
}

func (s *Store) InsertIfAbsent(ctx context.Context, collection, id string, doc store.Document) (bool, error) {
	fields := bson.M{}
	for k, v := range doc {
		if k != store.IDField {
			fields[k] = v
		}
	}

	res, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.M{store.IDField: id},
		bson.M{"$setOnInsert": fields},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, fmt.Errorf("upserting document %q: %w", id, err)
	}
	return res.UpsertedCount > 0, nil
}

func (s *Store) Find(ctx context.Context, collection string, filter store.Filter, projection store.Projection) ([]store.Document, error) {
	opts := options.Find()
	if projection != nil {
		proj := bson.D{}
		for _, field := range projection {
			proj = append(proj, bson.E{Key: field, Value: 1})
		}
		opts.SetProjection(proj)
	}

	cur, err := s.db.Collection(collection).Find(ctx, bson.M(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer cur.Close(ctx)

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decoding documents: %w", err)
	}

	docs := make([]store.Document, 0, len(raw))
	for _, m := range raw {
		doc := store.Document(m)
		if id, ok := doc[store.IDField]; ok {
			doc[store.IDField] = idString(id)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *Store) Count(ctx context.Context, collection string, filter store.Filter) (int64, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M(filter))
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return n, nil
}

func (s *Store) CollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return names, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func idString(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
