package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the pretty text handler.
var (
	styleKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleTime    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleMessage = lipgloss.NewStyle()
	styleString  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleNumber  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleSource  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)

	styleLevel = map[Level]lipgloss.Style{
		LevelTrace: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

// prettyHandler renders colorized single-line text records for terminals.
type prettyHandler struct {
	opts       slog.HandlerOptions
	mu         *sync.Mutex
	w          io.Writer
	timeLayout string
	attrs      []slog.Attr
}

func newPrettyHandler(w io.Writer, timeLayout string, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		mu:         &sync.Mutex{},
		w:          w,
		timeLayout: timeLayout,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() && h.timeLayout != "" {
		buf.WriteString(styleTime.Render(r.Time.Format(h.timeLayout)))
		buf.WriteByte(' ')
	}

	buf.WriteString(h.renderLevel(Level(r.Level)))
	buf.WriteByte(' ')

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			buf.WriteString(styleSource.Render(
				fmt.Sprintf("%s:%d", src.File, src.Line)))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(styleMessage.Render(r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...)

	return &clone
}

func (h *prettyHandler) WithGroup(string) slog.Handler {
	// Groups are flattened; the runner logs shallow records.
	return h
}

func (h *prettyHandler) renderLevel(level Level) string {
	style, ok := styleLevel[level]
	if !ok {
		style = styleMessage
	}

	return style.Render(fmt.Sprintf("%-5s", level.String()))
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	buf.WriteByte(' ')
	buf.WriteString(styleKey.Render(a.Key + "="))
	buf.WriteString(h.renderValue(a.Value))
}

func (h *prettyHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindInt64:
		return styleNumber.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return styleNumber.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return styleNumber.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindDuration:
		return styleNumber.Render(v.Duration().String())
	case slog.KindBool:
		return styleNumber.Render(strconv.FormatBool(v.Bool()))
	default:
		return styleString.Render(v.String())
	}
}
