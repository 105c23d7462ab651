package store

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrNotFound is returned when no document matches the given id.
var ErrNotFound = errors.New("document not found")

// Store is the injected data-feed collaborator: named document
// collections with CRUD by opaque id, plus push-based snapshot
// subscriptions that deliver the full current array of a collection on
// every change. The Mongo implementation backs the server; the in-memory
// one backs tests.
type Store interface {
	// List decodes every document in the collection into out, which must
	// be a pointer to a slice.
	List(ctx context.Context, collection string, out interface{}) error
	// Snapshot returns the raw current contents of a collection.
	Snapshot(ctx context.Context, collection string) ([]bson.M, error)
	// Get decodes the document with the given id into out.
	Get(ctx context.Context, collection, id string, out interface{}) error
	// Create inserts a document and returns the id the store assigned.
	Create(ctx context.Context, collection string, doc interface{}) (string, error)
	// Update applies a partial field map ($set semantics) to one document.
	Update(ctx context.Context, collection, id string, patch bson.M) error
	// Delete removes one document.
	Delete(ctx context.Context, collection, id string) error
	// Count returns the number of documents in a collection.
	Count(ctx context.Context, collection string) (int64, error)
	// Subscribe registers for snapshot pushes on a collection. The first
	// snapshot arrives after the next change; callers wanting the current
	// state immediately should also call Snapshot.
	Subscribe(collection string) *Subscription
}

// Subscription receives full collection snapshots. The channel holds only
// the latest snapshot: if the consumer lags, intermediate snapshots are
// replaced, never queued (last write wins, matching the feed contract).
type Subscription struct {
	C          <-chan []bson.M
	collection string
	ch         chan []bson.M
	feed       *feed
	once       sync.Once
}

// Close unregisters the subscription.
func (s *Subscription) Close() {
	s.once.Do(func() { s.feed.unsubscribe(s) })
}

// feed fans collection snapshots out to subscribers. Shared by the Mongo
// and memory stores.
type feed struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func newFeed() *feed {
	return &feed{subs: make(map[string]map[*Subscription]struct{})}
}

func (f *feed) subscribe(collection string) *Subscription {
	ch := make(chan []bson.M, 1)
	sub := &Subscription{C: ch, collection: collection, ch: ch, feed: f}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs[collection] == nil {
		f.subs[collection] = make(map[*Subscription]struct{})
	}
	f.subs[collection][sub] = struct{}{}
	return sub
}

func (f *feed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs[sub.collection], sub)
}

// broadcast delivers a snapshot to every subscriber of a collection,
// coalescing onto the single-slot channel.
func (f *feed) broadcast(collection string, docs []bson.M) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs[collection] {
		select {
		case sub.ch <- docs:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- docs:
			default:
			}
		}
	}
}

// publisher runs the background snapshot-then-broadcast publishes the
// Mongo store issues after each write. A per-collection lock is held
// across the snapshot read and the broadcast, so however the publish
// goroutines get scheduled, every broadcast carries a snapshot at least
// as fresh as the write that triggered it and the last one a subscriber
// sees reflects the latest write.
type publisher struct {
	feed  *feed
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPublisher(f *feed) *publisher {
	return &publisher{feed: f, locks: make(map[string]*sync.Mutex)}
}

func (p *publisher) lockFor(collection string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		p.locks[collection] = l
	}
	return l
}

// publish reads a fresh snapshot and broadcasts it in the background.
// snapshot is called under the collection lock so it observes the store
// after the triggering write.
func (p *publisher) publish(collection string, snapshot func() ([]bson.M, error), onError func(error)) {
	go func() {
		l := p.lockFor(collection)
		l.Lock()
		defer l.Unlock()
		docs, err := snapshot()
		if err != nil {
			onError(err)
			return
		}
		p.feed.broadcast(collection, docs)
	}()
}

// decodeAll converts raw documents into a typed slice via bson
// round-tripping. out must be a pointer to a slice.
func decodeAll(docs []bson.M, out interface{}) error {
	outValue := reflect.ValueOf(out)
	if outValue.Kind() != reflect.Ptr || outValue.Elem().Kind() != reflect.Slice {
		return errors.New("store: out must be a pointer to a slice")
	}
	sliceValue := outValue.Elem()
	result := reflect.MakeSlice(sliceValue.Type(), 0, len(docs))
	elemType := sliceValue.Type().Elem()
	for _, doc := range docs {
		raw, err := bson.Marshal(doc)
		if err != nil {
			return err
		}
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	sliceValue.Set(result)
	return nil
}

// toDocument converts a model struct (or map) into a raw document.
func toDocument(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
