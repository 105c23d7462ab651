package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Mongo is the production Store over a MongoDB database. Every successful
// write re-reads the collection and pushes the fresh snapshot to
// subscribers, giving websocket clients the same full-array-on-change
// behavior a hosted document store's realtime feed provides.
type Mongo struct {
	db   *mongo.Database
	log  *zap.Logger
	feed *feed
	pub  *publisher
}

// NewMongo wraps an open database handle.
func NewMongo(db *mongo.Database, log *zap.Logger) *Mongo {
	f := newFeed()
	return &Mongo{db: db, log: log, feed: f, pub: newPublisher(f)}
}

func (s *Mongo) List(ctx context.Context, collection string, out interface{}) error {
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func (s *Mongo) Snapshot(ctx context.Context, collection string) ([]bson.M, error) {
	var docs []bson.M
	if err := s.List(ctx, collection, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []bson.M{}
	}
	return docs, nil
}

func (s *Mongo) Get(ctx context.Context, collection, id string, out interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}

func (s *Mongo) Create(ctx context.Context, collection string, doc interface{}) (string, error) {
	m, err := toDocument(doc)
	if err != nil {
		return "", err
	}
	// ids are ObjectID hex strings so the rest of the system can treat
	// them as opaque
	id := primitive.NewObjectID().Hex()
	m["_id"] = id
	if _, err := s.db.Collection(collection).InsertOne(ctx, m); err != nil {
		return "", err
	}
	s.publish(collection)
	return id, nil
}

func (s *Mongo) Update(ctx context.Context, collection, id string, patch bson.M) error {
	result, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": patch})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	s.publish(collection)
	return nil
}

func (s *Mongo) Delete(ctx context.Context, collection, id string) error {
	result, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	s.publish(collection)
	return nil
}

func (s *Mongo) Count(ctx context.Context, collection string) (int64, error) {
	return s.db.Collection(collection).CountDocuments(ctx, bson.M{})
}

func (s *Mongo) Subscribe(collection string) *Subscription {
	return s.feed.subscribe(collection)
}

func (s *Mongo) publish(collection string) {
	s.pub.publish(collection, func() ([]bson.M, error) {
		return s.Snapshot(context.Background(), collection)
	}, func(err error) {
		s.log.Warn("snapshot publish failed",
			zap.String("collection", collection), zap.Error(err))
	})
}
