package urlstate

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultDebounce is the delay between a state change and the
// corresponding query-string write.
const DefaultDebounce = 300 * time.Millisecond

// Binding keeps a flat state map and a query string mutually
// consistent. The defaults map fixes both the key set and the type of
// each value. Keys holding their default value are omitted from the
// query string.
type Binding struct {
	history  History
	defaults map[string]any
	debounce time.Duration
	push     bool

	mu    sync.Mutex
	state map[string]any
	timer *time.Timer

	done chan struct{}
	wg   sync.WaitGroup
}

// option is a function that configures the Binding.
type option func(*Binding)

//goland:noinspection GoExportedFuncWithUnexportedType
func WithDebounce(d time.Duration) option {
	return func(b *Binding) {
		b.debounce = d
	}
}

// WithPush makes state changes add history entries instead of
// replacing the current one.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPush() option {
	return func(b *Binding) {
		b.push = true
	}
}

// NewBinding parses the current query string into the typed shape of
// defaults and starts adopting external history changes. Call Close
// when done.
func NewBinding(history History, defaults map[string]any, opts ...option) *Binding {
	b := &Binding{
		history:  history,
		defaults: defaults,
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.state = parseQuery(history.Query(), defaults)

	b.wg.Add(1)
	go b.watch()

	return b
}

// State returns a copy of the current state.
func (b *Binding) State() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	return cloneState(b.state)
}

// Set replaces the state and schedules a debounced query-string write.
// Unknown keys are ignored; a state deep-equal to the current one is a
// no-op.
func (b *Binding) Set(state map[string]any) {
	b.Update(func(map[string]any) map[string]any {
		return state
	})
}

// Update applies fn to a copy of the current state and adopts the
// result, like Set.
func (b *Binding) Update(fn func(current map[string]any) map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := makeState(fn(cloneState(b.state)), b.defaults)
	if reflect.DeepEqual(next, b.state) {
		return
	}

	b.state = next
	b.scheduleWriteLocked()
}

// Close stops the binding. A pending debounced write is discarded.
func (b *Binding) Close() {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()

	close(b.done)
	b.wg.Wait()
}

// watch adopts query strings changed behind the binding's back. An
// adopted change never echoes back into the history: any pending write
// is cancelled instead.
func (b *Binding) watch() {
	defer b.wg.Done()

	for {
		select {
		case <-b.done:
			return
		case query := <-b.history.Changes():
			next := parseQuery(query, b.defaults)

			b.mu.Lock()
			if !reflect.DeepEqual(next, b.state) {
				b.state = next
				if b.timer != nil {
					b.timer.Stop()
					b.timer = nil
				}
			}
			b.mu.Unlock()
		}
	}
}

func (b *Binding) scheduleWriteLocked() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.debounce, b.write)
}

func (b *Binding) write() {
	b.mu.Lock()
	query := encodeQuery(b.state, b.defaults)
	b.mu.Unlock()

	if b.push {
		b.history.Push(query)
	} else {
		b.history.Replace(query)
	}
}

// parseQuery interprets raw query values using the type of each
// default. Unparseable values keep the default.
func parseQuery(query url.Values, defaults map[string]any) map[string]any {
	state := make(map[string]any, len(defaults))
	for key, def := range defaults {
		state[key] = def

		if !query.Has(key) {
			continue
		}
		raw := query.Get(key)

		switch def.(type) {
		case int:
			if n, err := strconv.Atoi(raw); err == nil {
				state[key] = n
			}
		case int64:
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
				state[key] = n
			}
		case float64:
			if f, err := strconv.ParseFloat(raw, 64); err == nil {
				state[key] = f
			}
		case bool:
			if v, err := strconv.ParseBool(raw); err == nil {
				state[key] = v
			}
		case []string:
			if raw != "" {
				state[key] = strings.Split(raw, ",")
			}
		default:
			if raw != "" {
				state[key] = raw
			}
		}
	}

	return state
}

// encodeQuery serializes every key whose value differs from its
// default and is not empty. Slices join with commas.
func encodeQuery(state map[string]any, defaults map[string]any) url.Values {
	query := url.Values{}
	for key, def := range defaults {
		value := state[key]
		if reflect.DeepEqual(value, def) {
			continue
		}

		encoded := encodeValue(value)
		if encoded == "" {
			continue
		}
		query.Set(key, encoded)
	}

	return query
}

func encodeValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, ",")
	default:
		return ""
	}
}

// makeState restricts a candidate state to the keys of defaults,
// falling back per key to the default when absent.
func makeState(candidate map[string]any, defaults map[string]any) map[string]any {
	state := make(map[string]any, len(defaults))
	for key, def := range defaults {
		if value, ok := candidate[key]; ok {
			state[key] = value
		} else {
			state[key] = def
		}
	}

	return state
}

func cloneState(state map[string]any) map[string]any {
	clone := make(map[string]any, len(state))
	for key, value := range state {
		if vals, ok := value.([]string); ok {
			clone[key] = append([]string(nil), vals...)
			continue
		}
		clone[key] = value
	}

	return clone
}
