package backend

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/atomicstack/keyring-tui/internal/keyring"
	"github.com/atomicstack/keyring-tui/internal/logging/events"
)

// Source lists the keyring contents.
type Source interface {
	ListAll() (map[keyring.Category][]keyring.Key, error)
}

// Event carries the signature of the key set observed by a poll, or the error
// that prevented reading it.
type Event struct {
	Signature string
	Err       error
}

// Watcher polls a key source at a fixed interval and publishes an event when
// the signature of the key set changes.
type Watcher struct {
	source   Source
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher that polls source every interval.
func NewWatcher(source Source, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	throttle := newThrottle(interval / 2)
	w.wg.Add(1)
	go w.poll(func(ctx context.Context) (string, error) {
		throttle.wait()
		all, err := w.source.ListAll()
		if err != nil {
			return "", err
		}
		return Signature(all), nil
	})

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of watcher events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll(fetch func(context.Context) (string, error)) {
	defer w.wg.Done()

	last := ""
	emit := func() bool {
		sig, err := fetch(w.ctx)
		events.Watcher.Poll(sig, err)
		if err == nil && sig == last {
			return true
		}
		if err == nil {
			last = sig
		}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- Event{Signature: sig, Err: err}:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}

// Signature summarises a key set: which keys exist in which category and how
// many subkeys, user ids and certifications each carries. Detail levels are
// ignored.
func Signature(all map[keyring.Category][]keyring.Key) string {
	entries := make([]string, 0)
	for _, category := range keyring.Categories() {
		for _, key := range all[category] {
			sigs := 0
			revoked := 0
			for _, uid := range key.UserIDs {
				sigs += len(uid.Signatures)
				if uid.Revoked {
					revoked++
				}
			}
			for _, sub := range key.Subkeys {
				if sub.Revoked {
					revoked++
				}
			}
			entries = append(entries, fmt.Sprintf("%s/%s/%d/%d/%d/%d",
				category, key.Fingerprint(), len(key.Subkeys), len(key.UserIDs), sigs, revoked))
		}
	}
	sort.Strings(entries)
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.Join(entries, "\n")))
	return fmt.Sprintf("%d:%016x", len(entries), h.Sum64())
}
