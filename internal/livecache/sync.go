package livecache

import (
	"encoding/json"
	"log/slog"

	"github.com/abhisoniabhi/rp-jewellers-sub000/internal/domain"
)

// EventSource is the subscription surface the syncer needs. Satisfied by
// subscriber.Subscriber.
type EventSource interface {
	Subscribe(topic domain.Topic, handler func(payload json.RawMessage)) func()
}

// Syncer wires the full set of catalog topics into live collections. UI code
// reads the collections; the syncer patches them as envelopes arrive.
type Syncer struct {
	Rates       *Collection[domain.Rate]
	Products    *Collection[domain.Product]
	Collections *Collection[domain.Collection]

	unsubscribes []func()
}

func NewSyncer() *Syncer {
	return &Syncer{
		Rates:       NewCollection[domain.Rate](),
		Products:    NewCollection[domain.Product](),
		Collections: NewCollection[domain.Collection](),
	}
}

// Bind registers handlers for every catalog topic on the given source.
func (s *Syncer) Bind(source EventSource) {
	s.unsubscribes = append(s.unsubscribes,
		source.Subscribe(domain.TopicRateUpdated, updateHandler(s.Rates, domain.TopicRateUpdated)),

		source.Subscribe(domain.TopicProductCreated, createHandler(s.Products, domain.TopicProductCreated)),
		source.Subscribe(domain.TopicProductUpdated, updateHandler(s.Products, domain.TopicProductUpdated)),
		source.Subscribe(domain.TopicProductDeleted, deleteHandler(s.Products, domain.TopicProductDeleted)),

		source.Subscribe(domain.TopicCollectionCreated, createHandler(s.Collections, domain.TopicCollectionCreated)),
		source.Subscribe(domain.TopicCollectionUpdated, updateHandler(s.Collections, domain.TopicCollectionUpdated)),
		source.Subscribe(domain.TopicCollectionDeleted, deleteHandler(s.Collections, domain.TopicCollectionDeleted)),
	)
}

// Unbind removes all handlers registered by Bind. It does not touch the
// underlying connection.
func (s *Syncer) Unbind() {
	for _, unsubscribe := range s.unsubscribes {
		unsubscribe()
	}
	s.unsubscribes = nil
}

func updateHandler[E Keyed](coll *Collection[E], topic domain.Topic) func(json.RawMessage) {
	return func(payload json.RawMessage) {
		var entity E
		if err := json.Unmarshal(payload, &entity); err != nil {
			slog.Warn("Dropping undecodable payload", "topic", string(topic), "error", err)
			return
		}
		coll.Update(entity)
	}
}

func createHandler[E Keyed](coll *Collection[E], topic domain.Topic) func(json.RawMessage) {
	return func(payload json.RawMessage) {
		var entity E
		if err := json.Unmarshal(payload, &entity); err != nil {
			slog.Warn("Dropping undecodable payload", "topic", string(topic), "error", err)
			return
		}
		coll.Create(entity)
	}
}

func deleteHandler[E Keyed](coll *Collection[E], topic domain.Topic) func(json.RawMessage) {
	return func(payload json.RawMessage) {
		var deletion domain.Deletion
		if err := json.Unmarshal(payload, &deletion); err != nil {
			slog.Warn("Dropping undecodable payload", "topic", string(topic), "error", err)
			return
		}
		coll.Delete(deletion.ID)
	}
}
