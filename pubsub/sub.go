package pubsub

import "sync"

type ClientID string

// Subscriber is one client of a Publisher, holding a handler per topic
// and the queue of events waiting for them.
type Subscriber struct {
	clientID ClientID
	pub      *Publisher
	handlers map[Topic]Handler // guarded by pub.mtx

	mtx    sync.Mutex
	cond   *sync.Cond
	queue  []Event
	closed bool

	pending sync.WaitGroup
}

func newSubscriber(clientID ClientID, pub *Publisher) *Subscriber {
	s := &Subscriber{
		clientID: clientID,
		pub:      pub,
		handlers: make(map[Topic]Handler),
	}
	s.cond = sync.NewCond(&s.mtx)
	return s
}

func (s *Subscriber) Subscribe(topic Topic, handler Handler) error {
	if handler == nil {
		return ErrNilHandler
	}
	s.pub.mtx.Lock()
	defer s.pub.mtx.Unlock()
	if s.pub.subscribers[s.clientID] != s {
		return ErrPublisherStopped
	}
	if _, ok := s.handlers[topic]; ok {
		return ErrAlreadySubscribed
	}
	s.pub.addTopic(s, topic, handler)
	return nil
}

// Unsubscribe stops delivery of topic. Queued events of the topic are dropped.
func (s *Subscriber) Unsubscribe(topic Topic) error {
	s.pub.mtx.Lock()
	defer s.pub.mtx.Unlock()
	if _, ok := s.handlers[topic]; !ok {
		return ErrSubscriptionNotFound
	}
	s.pub.removeTopic(s, topic)
	return nil
}

// UnsubscribeAll removes the client and frees its client ID.
func (s *Subscriber) UnsubscribeAll() error {
	s.pub.mtx.Lock()
	if s.pub.subscribers[s.clientID] != s {
		s.pub.mtx.Unlock()
		return ErrSubscriptionNotFound
	}
	for topic := range s.handlers {
		s.pub.removeTopic(s, topic)
	}
	delete(s.pub.subscribers, s.clientID)
	s.pub.mtx.Unlock()

	s.close()
	return nil
}

// Wait blocks until every event queued so far has been handled.
func (s *Subscriber) Wait() {
	s.pending.Wait()
}

func (s *Subscriber) enqueue(e Event) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.closed {
		return
	}
	s.pending.Add(1)
	s.queue = append(s.queue, e)
	s.cond.Signal()
}

func (s *Subscriber) close() {
	s.mtx.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mtx.Unlock()
}

// run delivers queued events in order until the subscriber is closed and
// its queue is empty.
func (s *Subscriber) run() {
	for {
		s.mtx.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mtx.Unlock()
			return
		}
		e := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mtx.Unlock()

		s.pub.mtx.RLock()
		handler := s.handlers[e.GetTopic()]
		s.pub.mtx.RUnlock()
		if handler != nil {
			handler(e)
		}
		s.pending.Done()
	}
}
