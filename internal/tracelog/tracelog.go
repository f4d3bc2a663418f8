// Package tracelog gives the csp engine optional, structured step tracing
// via a *logrus.Logger the caller may or may not configure. Every method
// is nil-safe so engine code never has to branch on whether tracing is
// enabled.
package tracelog

import "github.com/sirupsen/logrus"

// Tracer emits leveled trace events for a single CSP search run.
type Tracer struct {
	log *logrus.Logger
}

// New wraps log in a Tracer. A nil log produces a Tracer whose methods are
// no-ops, so engine code can always call through it unconditionally.
func New(log *logrus.Logger) *Tracer {
	return &Tracer{log: log}
}

func (t *Tracer) enabled() bool {
	return t != nil && t.log != nil
}

// VariableSelected traces an MRV/degree variable selection.
func (t *Tracer) VariableSelected(name string, domainSize int) {
	if !t.enabled() {
		return
	}
	t.log.WithFields(logrus.Fields{
		"event":       "variable_selected",
		"variable":    name,
		"domain_size": domainSize,
	}).Debug("selected next variable")
}

// ValuePruned traces a forward-checking or AC-3 domain removal.
func (t *Tracer) ValuePruned(variable string, value any, cause string) {
	if !t.enabled() {
		return
	}
	t.log.WithFields(logrus.Fields{
		"event":    "value_pruned",
		"variable": variable,
		"value":    value,
		"cause":    cause,
	}).Debug("pruned domain value")
}

// Backtrack traces abandoning a candidate value and unwinding.
func (t *Tracer) Backtrack(variable string, value any) {
	if !t.enabled() {
		return
	}
	t.log.WithFields(logrus.Fields{
		"event":    "backtrack",
		"variable": variable,
		"value":    value,
	}).Debug("backtracked")
}
