// Package telemetry gives selectors an injectable sink for structured
// events, the design note in spec.md §9 calls out ("Global logger -> an
// injectable observer receiving structured events"). It follows the same
// inhibit-by-flag idiom mrnes's TraceManager uses (trace.go: "testing this
// flag we can inhibit the activity of gathering a trace when we don't want
// it, while embedding calls to its methods everywhere we need them") but
// backs the active path with a *logrus.Logger instead of an in-memory trace
// buffer, since structured logging (not trace persistence) is this
// module's ambient concern.
package telemetry

import (
	"github.com/sirupsen/logrus"
)

// Event is one structured record a selector emits per iteration.
type Event struct {
	Selector string         // "choose_rand", "k_shortest", "sa", ...
	TC       int            // traffic class id; left at 0 if not TC-scoped
	Iter     int            // iteration counter; left at 0 if not iterative
	K        int            // current target path count; left at 0 if none
	Delta    float64        // objective delta, or 0 if not applicable
	Accepted bool           // SA acceptance outcome
	Fields   map[string]any // extra fields merged into the log entry
}

// Observer receives selection events. A nil *Observer is valid and a no-op,
// matching mrnes's InUse-gated TraceManager.
type Observer struct {
	log    *logrus.Logger
	active bool
}

// NewObserver wraps lg as an active Observer. A nil lg falls back to
// logrus.StandardLogger().
func NewObserver(lg *logrus.Logger) *Observer {
	if lg == nil {
		lg = logrus.StandardLogger()
	}
	return &Observer{log: lg, active: true}
}

// Discard returns an Observer that drops every event, for callers that want
// the Selector API without any logging side effect.
func Discard() *Observer {
	return &Observer{active: false}
}

// Active reports whether the Observer forwards events anywhere.
func (o *Observer) Active() bool {
	return o != nil && o.active
}

// Emit records ev if the Observer is active. Safe to call on a nil
// receiver.
func (o *Observer) Emit(ev Event) {
	if !o.Active() {
		return
	}
	entry := o.log.WithFields(logrus.Fields{
		"selector": ev.Selector,
		"tc":       ev.TC,
		"iter":     ev.Iter,
		"k":        ev.K,
		"delta":    ev.Delta,
		"accepted": ev.Accepted,
	})
	for k, v := range ev.Fields {
		entry = entry.WithField(k, v)
	}
	entry.Debug("selection event")
}
