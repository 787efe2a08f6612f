package pubsub

import (
	"errors"
	"sync"

	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	// ErrDuplicateClientID is returned when a client tries to subscribe
	// with an existing client ID.
	ErrDuplicateClientID = errors.New("clientID is exist")

	// ErrAlreadySubscribed is returned when a client tries to subscribe twice or
	// more using the same topic.
	ErrAlreadySubscribed = errors.New("already subscribed")

	// ErrSubscriptionNotFound is returned when a client tries to unsubscribe
	// from not existing subscription.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	ErrNilHandler = errors.New("handler is nil")

	ErrPublisherStopped = errors.New("publisher is stopped")
)

// Publisher fans committed events out to subscribers. Publish only queues:
// every subscriber drains its own queue on its own goroutine, in publish
// order, so a slow handler delays nobody but its subscriber.
type Publisher struct {
	common.BaseService
	name string

	mtx         sync.RWMutex
	subscribers map[ClientID]*Subscriber
	topics      map[Topic]map[ClientID]*Subscriber
}

func NewPublisher(name string, logger log.Logger) *Publisher {
	publisher := &Publisher{
		name:        name,
		subscribers: make(map[ClientID]*Subscriber),
		topics:      make(map[Topic]map[ClientID]*Subscriber),
	}
	publisher.BaseService = *common.NewBaseService(logger, name, publisher)
	return publisher
}

func (publisher *Publisher) OnStart() error {
	return nil
}

// OnStop drops every subscription. Events already queued are still handled.
func (publisher *Publisher) OnStop() {
	publisher.mtx.Lock()
	subscribers := publisher.subscribers
	publisher.subscribers = make(map[ClientID]*Subscriber)
	publisher.topics = make(map[Topic]map[ClientID]*Subscriber)
	publisher.mtx.Unlock()

	for _, s := range subscribers {
		s.close()
	}
}

// NewSubscriber registers a client. Its client ID stays taken until it
// unsubscribes from everything.
func (publisher *Publisher) NewSubscriber(clientID ClientID) (*Subscriber, error) {
	if !publisher.IsRunning() {
		return nil, ErrPublisherStopped
	}
	publisher.mtx.Lock()
	defer publisher.mtx.Unlock()
	if _, ok := publisher.subscribers[clientID]; ok {
		return nil, ErrDuplicateClientID
	}
	s := newSubscriber(clientID, publisher)
	publisher.subscribers[clientID] = s
	go s.run()
	return s, nil
}

// HasSubscribed reports whether the client listens to topic, or to
// anything at all when topic is empty.
func (publisher *Publisher) HasSubscribed(clientID ClientID, topic Topic) bool {
	publisher.mtx.RLock()
	defer publisher.mtx.RUnlock()
	s, ok := publisher.subscribers[clientID]
	if !ok {
		return false
	}
	if len(topic) == 0 {
		return true
	}
	_, ok = s.handlers[topic]
	return ok
}

// Publish queues e for every subscriber of its topic. It never blocks on
// handlers, and does nothing once the publisher is stopped.
func (publisher *Publisher) Publish(e Event) {
	if !publisher.IsRunning() {
		return
	}
	publisher.mtx.RLock()
	defer publisher.mtx.RUnlock()
	for _, s := range publisher.topics[e.GetTopic()] {
		s.enqueue(e)
	}
}

// caller holds publisher.mtx
func (publisher *Publisher) addTopic(s *Subscriber, topic Topic, handler Handler) {
	s.handlers[topic] = handler
	if _, ok := publisher.topics[topic]; !ok {
		publisher.topics[topic] = make(map[ClientID]*Subscriber)
	}
	publisher.topics[topic][s.clientID] = s
}

// caller holds publisher.mtx
func (publisher *Publisher) removeTopic(s *Subscriber, topic Topic) {
	delete(s.handlers, topic)
	delete(publisher.topics[topic], s.clientID)
	if len(publisher.topics[topic]) == 0 {
		delete(publisher.topics, topic)
	}
}
