// Package telemetry collects anonymous usage counters for the
// generate flow.
//
// Counters are aggregated in memory during the run and flushed in one
// batch at the end. Reporting is strictly best-effort: every transport
// error is swallowed, and nothing in the flow ever blocks on it beyond
// the short flush timeout.
package telemetry

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"

	"github.com/teamsgen/teamsgen/pkg/fileutil"
)

// EnvOptOut disables all reporting when set to any non-empty value,
// regardless of flags or stored preferences.
const EnvOptOut = "TEAMSGEN_TELEMETRY_OPTOUT"

// FlushTimeout bounds how long the end of a run waits for the batch
// to go out.
const FlushTimeout = 2 * time.Second

// Event is one aggregated counter.
type Event struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Count    int    `json:"count"`
}

// Batch is the payload flushed at the end of a run.
type Batch struct {
	ClientID    string  `json:"clientId"`
	ToolVersion string  `json:"toolVersion"`
	Events      []Event `json:"events"`
}

// Config configures a Reporter.
type Config struct {
	// Enabled is the resolved user preference. The opt-out environment
	// variable overrides it unconditionally.
	Enabled bool

	ToolVersion string
	Sink        Sink
	Log         *slog.Logger
}

type counterKey struct {
	category string
	name     string
}

// Reporter aggregates counters for one run.
type Reporter struct {
	mu     sync.Mutex
	counts map[counterKey]int

	enabled     bool
	toolVersion string
	sink        Sink
	log         *slog.Logger
}

// New creates a Reporter. Reporting is active only when the preference
// is enabled and the opt-out environment variable is unset.
func New(cfg Config) *Reporter {
	sink := cfg.Sink
	if sink == nil {
		sink = NopSink{}
	}
	log := cfg.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Reporter{
		counts:      map[counterKey]int{},
		enabled:     cfg.Enabled && os.Getenv(EnvOptOut) == "",
		toolVersion: cfg.ToolVersion,
		sink:        sink,
		log:         log,
	}
}

// Enabled reports whether this run will emit anything.
func (r *Reporter) Enabled() bool {
	return r.enabled
}

// Count increments one counter. Calls on a disabled reporter are
// cheap no-ops.
func (r *Reporter) Count(category, name string) {
	if !r.enabled {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[counterKey{category: category, name: name}]++
}

// Flush sends the aggregated batch. Errors are logged at debug level
// and otherwise swallowed; the run's outcome never depends on them.
func (r *Reporter) Flush(ctx context.Context) {
	if !r.enabled {
		return
	}

	r.mu.Lock()
	events := make([]Event, 0, len(r.counts))
	for k, c := range r.counts {
		events = append(events, Event{Category: k.category, Name: k.name, Count: c})
	}
	r.counts = map[counterKey]int{}
	r.mu.Unlock()

	if len(events) == 0 {
		return
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Category != events[j].Category {
			return events[i].Category < events[j].Category
		}
		return events[i].Name < events[j].Name
	})

	ctx, cancel := context.WithTimeout(ctx, FlushTimeout)
	defer cancel()

	batch := Batch{
		ClientID:    ClientID(),
		ToolVersion: r.toolVersion,
		Events:      events,
	}
	if err := r.sink.Send(ctx, batch); err != nil {
		r.log.Debug("usage report not sent", slog.Any("error", err))
	}
}

// ClientID returns the stable anonymous client id, creating and
// caching one under the tool's config home on first use. Failures
// degrade to a per-run id.
func ClientID() string {
	path, err := xdg.ConfigFile(filepath.Join("teamsgen", "client-id"))
	if err != nil {
		return uuid.NewString()
	}
	return loadClientID(path)
}

func loadClientID(path string) string {
	data, err := fileutil.ReadFileWithLimit(path)
	if err == nil {
		if id, parseErr := uuid.ParseBytes(data); parseErr == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return id
	}
	if err := fileutil.AtomicWriteFile(path, []byte(id), 0o600); err != nil {
		return id
	}
	return id
}
