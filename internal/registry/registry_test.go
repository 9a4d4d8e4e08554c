package registry

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wordduel/go-server/internal/game"
)

func fixedAnswer() string { return "crane" }

func TestCreateAndGet(t *testing.T) {
	r := New(fixedAnswer, nil)
	s, p1 := r.Create()
	if s.ID() == "" || p1 == "" {
		t.Fatal("create must allocate session and player ids")
	}
	got, err := r.Get(s.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Error("get returned a different session")
	}
	if _, err := r.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown id: got %v, want ErrSessionNotFound", err)
	}
}

func TestJoinErrors(t *testing.T) {
	r := New(fixedAnswer, nil)
	s, _ := r.Create()

	if _, err := r.Join(s.ID()); err != nil {
		t.Fatalf("second player join: %v", err)
	}
	if _, err := r.Join(s.ID()); !errors.Is(err, game.ErrSessionFull) {
		t.Errorf("third join: got %v, want ErrSessionFull", err)
	}
	if _, err := r.Join("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("join unknown: got %v, want ErrSessionNotFound", err)
	}
}

func TestConcurrentCreateUniqueIDs(t *testing.T) {
	r := New(fixedAnswer, nil)

	const n = 100
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, _ := r.Create()
			ids <- s.ID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate session id %s", id)
		}
		seen[id] = true
	}
	if r.Len() != n {
		t.Errorf("registry holds %d sessions, want %d", r.Len(), n)
	}
}

func TestEvict(t *testing.T) {
	clock := time.Unix(1000, 0)
	r := New(fixedAnswer, func() time.Time { return clock })

	stale, _ := r.Create()   // waiting, never joined
	playing, _ := r.Create() // will be in progress
	if _, err := r.Join(playing.ID()); err != nil {
		t.Fatal(err)
	}

	clock = clock.Add(3 * time.Hour)
	fresh, _ := r.Create()

	if n := r.Evict(time.Hour); n != 1 {
		t.Fatalf("evicted %d sessions, want 1", n)
	}
	if _, err := r.Get(stale.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Error("stale waiting session should be evicted")
	}
	if _, err := r.Get(playing.ID()); err != nil {
		t.Error("in-progress session must survive eviction regardless of age")
	}
	if _, err := r.Get(fresh.ID()); err != nil {
		t.Error("fresh session must survive eviction")
	}
}
