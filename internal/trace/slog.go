package trace

import (
	"context"
	"log/slog"
	"time"
)

// SlogHandler turns slog records into trace points, so libraries that log
// through slog show up in the same stream as the pipeline events.
// Warnings and errors are cycle-scope events; info and debug records are
// element-scope and only pass at LevelDebug.
type SlogHandler struct {
	tracer Tracer
	name   string
	attrs  []slog.Attr
	group  string
}

// NewSlogHandler returns a handler emitting "log:<name>" points to t.
func NewSlogHandler(t Tracer, name string) *SlogHandler {
	if t == nil {
		t = Nop
	}
	return &SlogHandler{tracer: t, name: "log:" + name}
}

func scopeOf(level slog.Level) Scope {
	if level >= slog.LevelWarn {
		return ScopeCycle
	}
	return ScopeElement
}

func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.tracer.Enabled() && h.tracer.Level().ShouldEmit(scopeOf(level))
}

func (h *SlogHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Enabled(ctx, r.Level) {
		return nil
	}
	extra := make(map[string]string, len(h.attrs)+r.NumAttrs()+1)
	extra["level"] = r.Level.String()
	for _, a := range h.attrs {
		extra[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		key := a.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		extra[key] = a.Value.String()
		return true
	})
	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	h.tracer.Emit(&Event{
		Time:     when,
		Seq:      NextSeq(),
		Kind:     KindPoint,
		Scope:    scopeOf(r.Level),
		ParentID: ParentSpan(ctx),
		Name:     h.name,
		Detail:   r.Message,
		Extra:    extra,
	})
	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		next.attrs = append(next.attrs, a)
	}
	return &next
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	if next.group != "" {
		next.group += "." + name
	} else {
		next.group = name
	}
	return &next
}
