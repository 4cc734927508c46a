package trace

import "time"

// Kind of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	}
	return "unknown"
}

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeRun     Scope = iota + 1 // a whole scan or watch session
	ScopeCycle                    // one scan-and-render cycle and its phases
	ScopeRule                     // one inspection rule
	ScopeElement                  // one element decision
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeCycle:
		return "cycle"
	case ScopeRule:
		return "rule"
	case ScopeElement:
		return "element"
	}
	return "unknown"
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // "cycle", "load", "rule:alt", ...
	Detail   string
	Elapsed  time.Duration // set on span end
	Extra    map[string]string
}

// Point emits an instant event when the tracer admits the scope.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
	})
}
