package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// Handler writes one human readable line per record:
//
//	15:04:05 INFO  Message key=value key2="quoted value"
//
// The "data" and "context" groups produced by Logger are flattened into the line.
type Handler struct {
	opts  slog.HandlerOptions
	color bool
	attrs []slog.Attr

	mu *sync.Mutex
	w  io.Writer
}

// NewHandler creates a Handler writing to w
func NewHandler(w io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}
	return level >= threshold
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	buf.WriteString(h.paint(colorGray, r.Time.Format(time.TimeOnly)))
	buf.WriteByte(' ')
	buf.WriteString(h.level(r.Level))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, a)
		return true
	})

	if h.opts.AddSource && r.PC != 0 {
		src := r.Source()
		buf.WriteString(h.paint(colorGray, fmt.Sprintf(" (%s:%d)", filepath.Base(src.File), src.Line)))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

// WithGroup is a no-op; attributes are always rendered flat
func (h *Handler) WithGroup(_ string) slog.Handler {
	return h
}

func (h *Handler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if nested, ok := a.Value.Any().([]slog.Attr); ok {
		for _, n := range nested {
			h.writeAttr(buf, n)
		}
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, n := range a.Value.Group() {
			h.writeAttr(buf, n)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.paint(colorCyan, a.Key))
	buf.WriteByte('=')
	s := a.Value.String()
	if needsQuote(s) {
		s = strconv.Quote(s)
	}
	buf.WriteString(s)
}

func (h *Handler) level(l slog.Level) string {
	s := fmt.Sprintf("%-5s", l.String())
	switch {
	case l >= slog.LevelError:
		return h.paint(colorRed, s)
	case l >= slog.LevelWarn:
		return h.paint(colorYellow, s)
	case l < slog.LevelInfo:
		return h.paint(colorGray, s)
	}
	return s
}

func (h *Handler) paint(color, s string) string {
	if !h.color {
		return s
	}
	return color + s + colorReset
}

func needsQuote(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '"' || r == '=' {
			return true
		}
	}
	return false
}

// fanout sends every record to all handlers that accept it
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
