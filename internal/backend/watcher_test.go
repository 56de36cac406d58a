package backend

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/keyring-tui/internal/keyring"
)

type fakeSource struct {
	mu   sync.Mutex
	keys map[keyring.Category][]keyring.Key
	err  error
}

func (f *fakeSource) ListAll() (map[keyring.Category][]keyring.Key, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.keys, f.err
}

func (f *fakeSource) set(keys map[keyring.Category][]keyring.Key, err error) {
	f.mu.Lock()
	f.keys = keys
	f.err = err
	f.mu.Unlock()
}

func keySet(ids ...string) map[keyring.Category][]keyring.Key {
	keys := make([]keyring.Key, len(ids))
	for i, id := range ids {
		keys[i] = keyring.Key{Subkeys: []keyring.Subkey{{KeyID: id, Fingerprint: "FPR" + id}}}
	}
	return map[keyring.Category][]keyring.Key{keyring.Public: keys}
}

func nextEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case evt := <-w.Events():
		return evt
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
	return Event{}
}

func TestWatcherEmitsOnChange(t *testing.T) {
	src := &fakeSource{keys: keySet("A")}
	w := NewWatcher(src, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	first := nextEvent(t, w)
	if first.Err != nil || first.Signature != Signature(keySet("A")) {
		t.Fatalf("unexpected first event %+v", first)
	}

	src.set(keySet("A", "B"), nil)
	second := nextEvent(t, w)
	if second.Signature != Signature(keySet("A", "B")) {
		t.Fatalf("expected changed signature, got %+v", second)
	}

	src.set(nil, errors.New("gpg missing"))
	third := nextEvent(t, w)
	if third.Err == nil {
		t.Fatalf("expected error event, got %+v", third)
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w := NewWatcher(&fakeSource{keys: keySet("A")}, 10*time.Millisecond)
	nextEvent(t, w)
	w.Stop()
	w.Wait()
	for range w.Events() {
	}
}

func TestSignatureIgnoresOrderAndDetail(t *testing.T) {
	a := keySet("A", "B")
	b := keySet("B", "A")
	b[keyring.Public][0].Detail = keyring.DetailFull
	if Signature(a) != Signature(b) {
		t.Fatalf("expected equal signatures")
	}
	if Signature(a) == Signature(keySet("A")) {
		t.Fatalf("expected different signatures")
	}
}
