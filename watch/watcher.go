// Copyright 2019 The go-ultiledger Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package watch follows the gateway's transaction and payment feeds
// over server-sent events, resuming from the last delivered cursor.
package watch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	mapset "github.com/deckarep/golang-set"
	"github.com/manucorporat/sse"

	ctypes "github.com/ultiledger/go-kin/client/types"
	"github.com/ultiledger/go-kin/log"
)

var ErrStreamEnded = errors.New("stream ended")

// Streamer opens a server-sent event stream on a feed.
type Streamer interface {
	Stream(ctx context.Context, path, cursor string) (io.ReadCloser, error)
}

// Event is a streamed resource positioned by its cursor.
type Event interface {
	Cursor() string
	Participants() []string
}

type State int32

const (
	Idle State = iota
	Connected
	Streaming
	Reconnecting
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connected:
		return "connected"
	case Streaming:
		return "streaming"
	case Reconnecting:
		return "reconnecting"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

type options struct {
	cursor    string
	account   string
	involving []string
	backoff   backoff.BackOff
	store     *CursorStore
	storeKey  string
}

type Option func(*options)

// Cursor resumes the stream after the given event id.
func Cursor(c string) Option {
	return func(o *options) { o.cursor = c }
}

// FromNow streams only events that happen from now on.
func FromNow() Option {
	return Cursor(Now)
}

// ForAccount follows the feed of a single account.
func ForAccount(id string) Option {
	return func(o *options) { o.account = id }
}

// Involving delivers only events one of the accounts takes part in.
func Involving(ids ...string) Option {
	return func(o *options) { o.involving = append(o.involving, ids...) }
}

// WithBackOff sets the reconnect policy. backoff.Stop ends the watcher.
func WithBackOff(b backoff.BackOff) Option {
	return func(o *options) { o.backoff = b }
}

// WithCursorStore saves each delivered cursor under key and resumes
// from the saved one unless Cursor is given.
func WithCursorStore(s *CursorStore, key string) Option {
	return func(o *options) {
		o.store = s
		o.storeKey = key
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 30 * time.Second
	// streams only end on Close
	b.MaxElapsedTime = 0
	return b
}

// Watcher delivers the events of one feed on a channel. It holds at
// most one connection and cannot be restarted once closed.
type Watcher[E Event] struct {
	streamer Streamer
	path     string
	backoff  backoff.BackOff
	store    *CursorStore
	storeKey string
	filter   mapset.Set

	state atomic.Int32

	mu      sync.Mutex
	cursor  string
	started bool
	closed  bool
	events  chan E
	cancel  context.CancelFunc
	done    chan struct{}
	err     error
}

// New creates a watcher of the feed at path.
func New[E Event](s Streamer, path string, opts ...Option) *Watcher[E] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backoff == nil {
		o.backoff = defaultBackOff()
	}
	if o.account != "" {
		path = "accounts/" + url.PathEscape(o.account) + "/" + strings.TrimLeft(path, "/")
	}

	w := &Watcher[E]{
		streamer: s,
		path:     path,
		backoff:  o.backoff,
		store:    o.store,
		storeKey: o.storeKey,
		cursor:   o.cursor,
		events:   make(chan E),
		done:     make(chan struct{}),
	}
	if len(o.involving) > 0 {
		w.filter = mapset.NewSet()
		for _, id := range o.involving {
			w.filter.Add(id)
		}
	}
	if w.cursor == "" && w.store != nil {
		saved, err := w.store.Load(w.storeKey)
		if err != nil {
			log.Warnw("load saved cursor failed", "key", w.storeKey, "err", err)
		}
		w.cursor = saved
	}
	return w
}

// Transactions watches the transaction feed.
func Transactions(s Streamer, opts ...Option) *Watcher[ctypes.TxEvent] {
	return New[ctypes.TxEvent](s, "transactions", opts...)
}

// Payments watches the payment feed.
func Payments(s Streamer, opts ...Option) *Watcher[ctypes.PaymentEvent] {
	return New[ctypes.PaymentEvent](s, "payments", opts...)
}

func (w *Watcher[E]) State() State {
	return State(w.state.Load())
}

func (w *Watcher[E]) setState(s State) {
	w.state.Store(int32(s))
}

// Cursor returns the id of the last delivered event, the position a
// new watcher can resume from.
func (w *Watcher[E]) Cursor() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursor
}

// Err returns the error that ended the watcher, nil when it was
// closed by the caller.
func (w *Watcher[E]) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Start opens the stream and returns the event channel. The channel
// is closed when the watcher ends. Later calls return the same channel.
func (w *Watcher[E]) Start(ctx context.Context) <-chan E {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.closed {
		return w.events
	}
	w.started = true

	ctx, w.cancel = context.WithCancel(ctx)
	go w.run(ctx)
	return w.events
}

// Close stops the stream and waits until no more events can be
// delivered.
func (w *Watcher[E]) Close() {
	w.mu.Lock()
	if !w.started {
		if !w.closed {
			w.closed = true
			close(w.events)
			close(w.done)
			w.setState(Closed)
		}
		w.mu.Unlock()
		return
	}
	w.closed = true
	cancel := w.cancel
	w.mu.Unlock()

	cancel()
	<-w.done
}

func (w *Watcher[E]) run(ctx context.Context) {
	defer func() {
		w.setState(Closed)
		close(w.events)
		close(w.done)
	}()

	w.backoff.Reset()
	for {
		err := w.stream(ctx)
		if ctx.Err() != nil {
			return
		}

		wait := w.backoff.NextBackOff()
		if wait == backoff.Stop {
			log.Warnw("stream stopped", "path", w.path, "cursor", w.Cursor(), "err", err)
			w.mu.Lock()
			w.err = err
			w.mu.Unlock()
			return
		}

		w.setState(Reconnecting)
		log.Debugw("stream reconnecting", "path", w.path, "cursor", w.Cursor(), "err", err, "wait", wait)
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// stream runs one connection until it fails or ctx is done.
func (w *Watcher[E]) stream(ctx context.Context) error {
	body, err := w.streamer.Stream(ctx, w.path, w.Cursor())
	if err != nil {
		return err
	}
	w.setState(Connected)

	// unblock the reader on cancel
	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
		case <-finished:
		}
		body.Close()
	}()

	r := bufio.NewReader(body)
	var frame bytes.Buffer
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			line = bytes.TrimRight(line, "\r\n")
			if len(line) > 0 {
				frame.Write(line)
				frame.WriteByte('\n')
			} else if frame.Len() > 0 {
				if err := w.dispatch(ctx, frame.Bytes()); err != nil {
					return err
				}
				frame.Reset()
			}
		}
		if err == io.EOF {
			return ErrStreamEnded
		}
		if err != nil {
			return err
		}
	}
}

// dispatch decodes one frame and delivers its events.
func (w *Watcher[E]) dispatch(ctx context.Context, frame []byte) error {
	// a blank line terminates the event
	events, err := sse.Decode(bytes.NewReader(append(frame, '\n')))
	if err != nil {
		log.Warnw("undecodable frame", "path", w.path, "err", err)
		return nil
	}
	for _, ev := range events {
		w.setState(Streaming)
		data := bytes.TrimSpace(eventData(ev.Data))
		if len(data) == 0 || data[0] != '{' {
			// hello and byebye frames
			continue
		}

		var e E
		if err := json.Unmarshal(data, &e); err != nil {
			log.Warnw("skip malformed event", "path", w.path, "id", ev.Id, "err", err)
			continue
		}
		id := e.Cursor()
		if id == "" {
			id = strings.TrimSpace(ev.Id)
		}
		if !after(id, w.Cursor()) {
			continue
		}

		if w.accepts(e) {
			select {
			case w.events <- e:
			case <-ctx.Done():
				return ctx.Err()
			}
			// healthy connection
			w.backoff.Reset()
		}
		w.advance(id)
	}
	return nil
}

func eventData(d interface{}) []byte {
	switch v := d.(type) {
	case string:
		return []byte(v)
	case []byte:
		return v
	case nil:
		return nil
	}
	return []byte(fmt.Sprint(d))
}

func (w *Watcher[E]) accepts(e E) bool {
	if w.filter == nil {
		return true
	}
	for _, p := range e.Participants() {
		if w.filter.Contains(p) {
			return true
		}
	}
	return false
}

func (w *Watcher[E]) advance(id string) {
	w.mu.Lock()
	w.cursor = id
	w.mu.Unlock()

	if w.store != nil {
		if err := w.store.Save(w.storeKey, id); err != nil {
			log.Warnw("save cursor failed", "key", w.storeKey, "cursor", id, "err", err)
		}
	}
}
