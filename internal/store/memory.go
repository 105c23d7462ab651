package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-memory Store with the same snapshot-feed behavior as
// the Mongo implementation. Used by tests and as a development fallback.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]bson.M
	feed *feed
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]bson.M), feed: newFeed()}
}

func (s *Memory) List(ctx context.Context, collection string, out interface{}) error {
	docs, err := s.Snapshot(ctx, collection)
	if err != nil {
		return err
	}
	return decodeAll(docs, out)
}

func (s *Memory) Snapshot(_ context.Context, collection string) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyDocs(s.data[collection]), nil
}

func (s *Memory) Get(_ context.Context, collection, id string, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, doc := range s.data[collection] {
		if doc["_id"] == id {
			raw, err := bson.Marshal(doc)
			if err != nil {
				return err
			}
			return bson.Unmarshal(raw, out)
		}
	}
	return ErrNotFound
}

func (s *Memory) Create(_ context.Context, collection string, doc interface{}) (string, error) {
	m, err := toDocument(doc)
	if err != nil {
		return "", err
	}
	id := primitive.NewObjectID().Hex()
	m["_id"] = id

	s.mu.Lock()
	s.data[collection] = append(s.data[collection], m)
	s.mu.Unlock()

	s.publish(collection)
	return id, nil
}

func (s *Memory) Update(_ context.Context, collection, id string, patch bson.M) error {
	s.mu.Lock()
	found := false
	for _, doc := range s.data[collection] {
		if doc["_id"] == id {
			for k, v := range patch {
				doc[k] = v
			}
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	s.publish(collection)
	return nil
}

func (s *Memory) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	docs := s.data[collection]
	found := false
	for i, doc := range docs {
		if doc["_id"] == id {
			s.data[collection] = append(docs[:i:i], docs[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return ErrNotFound
	}
	s.publish(collection)
	return nil
}

func (s *Memory) Count(_ context.Context, collection string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.data[collection])), nil
}

func (s *Memory) Subscribe(collection string) *Subscription {
	return s.feed.subscribe(collection)
}

func (s *Memory) publish(collection string) {
	docs, _ := s.Snapshot(context.Background(), collection)
	s.feed.broadcast(collection, docs)
}

func copyDocs(docs []bson.M) []bson.M {
	out := make([]bson.M, len(docs))
	for i, doc := range docs {
		clone := make(bson.M, len(doc))
		for k, v := range doc {
			clone[k] = v
		}
		out[i] = clone
	}
	return out
}
