package domain

import (
	"encoding/json"
	"fmt"
)

// Topic names a class of live-update event. The set is a closed contract
// shared between server and clients; it never grows at runtime.
type Topic string

const (
	TopicRateUpdated Topic = "RATE_UPDATED"

	TopicProductCreated Topic = "PRODUCT_CREATED"
	TopicProductUpdated Topic = "PRODUCT_UPDATED"
	TopicProductDeleted Topic = "PRODUCT_DELETED"

	TopicCollectionCreated Topic = "COLLECTION_CREATED"
	TopicCollectionUpdated Topic = "COLLECTION_UPDATED"
	TopicCollectionDeleted Topic = "COLLECTION_DELETED"
)

// Event is the tagged union of everything that can go over the live wire.
// The payload shape is fully determined by the topic: update/create events
// always carry the complete post-commit record (never a partial diff), delete
// events carry only the id. The unexported payload method keeps the union
// closed to this package.
type Event interface {
	EventTopic() Topic
	payload() any
}

// RateUpdated is published after a rate mutation commits.
type RateUpdated struct{ Rate Rate }

func (RateUpdated) EventTopic() Topic { return TopicRateUpdated }
func (e RateUpdated) payload() any    { return e.Rate }

// ProductCreated is published after a product insert commits.
type ProductCreated struct{ Product Product }

func (ProductCreated) EventTopic() Topic { return TopicProductCreated }
func (e ProductCreated) payload() any    { return e.Product }

// ProductUpdated is published after a product update commits.
type ProductUpdated struct{ Product Product }

func (ProductUpdated) EventTopic() Topic { return TopicProductUpdated }
func (e ProductUpdated) payload() any    { return e.Product }

// ProductDeleted is published after a product delete commits.
type ProductDeleted struct{ ID int64 }

func (ProductDeleted) EventTopic() Topic { return TopicProductDeleted }
func (e ProductDeleted) payload() any    { return Deletion{ID: e.ID} }

// CollectionCreated is published after a collection insert commits.
type CollectionCreated struct{ Collection Collection }

func (CollectionCreated) EventTopic() Topic { return TopicCollectionCreated }
func (e CollectionCreated) payload() any    { return e.Collection }

// CollectionUpdated is published after a collection update commits.
type CollectionUpdated struct{ Collection Collection }

func (CollectionUpdated) EventTopic() Topic { return TopicCollectionUpdated }
func (e CollectionUpdated) payload() any    { return e.Collection }

// CollectionDeleted is published after a collection delete commits.
type CollectionDeleted struct{ ID int64 }

func (CollectionDeleted) EventTopic() Topic { return TopicCollectionDeleted }
func (e CollectionDeleted) payload() any    { return Deletion{ID: e.ID} }

// Deletion is the wire payload for *_DELETED topics.
type Deletion struct {
	ID int64 `json:"id"`
}

// envelope is the wire frame: one textual frame per logical event.
type envelope struct {
	Event Topic           `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// EncodeEnvelope serializes an event into its wire frame.
func EncodeEnvelope(e Event) ([]byte, error) {
	data, err := json.Marshal(e.payload())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", e.EventTopic(), err)
	}
	frame, err := json.Marshal(envelope{Event: e.EventTopic(), Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s envelope: %w", e.EventTopic(), err)
	}
	return frame, nil
}

// DecodeEnvelope splits a wire frame into topic and raw payload. Unknown
// topics are not an error here; subscribers simply have no handlers for them.
func DecodeEnvelope(frame []byte) (Topic, json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return "", nil, fmt.Errorf("failed to unmarshal envelope: %w", err)
	}
	if env.Event == "" {
		return "", nil, fmt.Errorf("envelope has no event field")
	}
	return env.Event, env.Data, nil
}

// Publisher fans a committed change out to connected storefront clients.
// Delivery is strictly best-effort and advisory: implementations log and
// swallow failures, and a publish can never fail the mutation that caused it.
type Publisher interface {
	Publish(event Event)
}
