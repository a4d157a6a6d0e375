package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ashureev/matter/internal/domain"
	"github.com/ashureev/matter/internal/notify"
	"github.com/ashureev/matter/internal/responder"
	"github.com/ashureev/matter/internal/store"
)

var errDiskGone = errors.New("disk I/O error")

type memRepo struct {
	mu      sync.Mutex
	docs    map[string][]byte
	getErr  error
	putErr  error
	putHits int
}

func newMemRepo() *memRepo {
	return &memRepo{docs: map[string][]byte{}}
}

func (m *memRepo) GetUser(context.Context, string) (*domain.User, error)   { return nil, nil }
func (m *memRepo) UpsertUser(context.Context, *domain.User) error          { return nil }
func (m *memRepo) UpdateLastSeen(context.Context, string, time.Time) error { return nil }
func (m *memRepo) Ping(context.Context) error                              { return nil }
func (m *memRepo) Close() error                                            { return nil }

func (m *memRepo) GetDocument(_ context.Context, userID, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.docs[userID+"/"+key], nil
}

func (m *memRepo) PutDocument(_ context.Context, userID, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putHits++
	if m.putErr != nil {
		return m.putErr
	}
	m.docs[userID+"/"+key] = append([]byte(nil), body...)
	return nil
}

func (m *memRepo) seed(userID string, state domain.AppState) {
	body, err := store.EncodeState(state)
	if err != nil {
		panic(err)
	}
	m.docs[userID+"/"+store.DocumentKey] = body
}

type stubResponder struct {
	text    string
	entered chan struct{}
	release chan struct{}
	calls   int
	mu      sync.Mutex
}

func (r *stubResponder) Respond(ctx context.Context, req responder.Request) string {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.release != nil {
		<-r.release
	}
	return r.text
}

type published struct {
	userID string
	delay  time.Duration
	ev     notify.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(userID string, ev notify.Event) {
	p.PublishAfter(0, userID, ev)
}

func (p *recordingPublisher) PublishAfter(delay time.Duration, userID string, ev notify.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{userID: userID, delay: delay, ev: ev})
}

func (p *recordingPublisher) Broadcast(ev notify.Event) {
	p.PublishAfter(0, "*", ev)
}

func (p *recordingPublisher) types() []notify.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notify.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.ev.Type)
	}
	return out
}

type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(int) int     { return r.n }

type sequentialIDs struct {
	mu sync.Mutex
	n  int
}

func (s *sequentialIDs) next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%d", s.n)
}
