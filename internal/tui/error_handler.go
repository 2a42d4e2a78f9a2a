package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/derailed/tview"
	"github.com/rs/zerolog"

	"github.com/ajramos/bucketui/internal/services"
)

// LogLevel represents the severity of a message
type LogLevel int

const (
	LogLevelInfo LogLevel = iota
	LogLevelWarning
	LogLevelError
	LogLevelSuccess
)

// levelStyle is how a level is shown and logged
type levelStyle struct {
	icon  string
	name  string
	color string // status color purpose
}

var levelStyles = map[LogLevel]levelStyle{
	LogLevelInfo:    {icon: "ℹ️", name: "INFO", color: "info"},
	LogLevelWarning: {icon: "⚠️", name: "WARN", color: "warning"},
	LogLevelError:   {icon: "❌", name: "ERROR", color: "error"},
	LogLevelSuccess: {icon: "✅", name: "SUCCESS", color: "success"},
}

func styleOf(level LogLevel) levelStyle {
	if s, ok := levelStyles[level]; ok {
		return s
	}
	return levelStyle{icon: "•", name: "UNKNOWN", color: "info"}
}

// statusClearDelay is how long a message stays over the progress line or baseline
const statusClearDelay = 5 * time.Second

const fallbackBaseline = "BucketUI • Press ? for help • q to quit"

// ErrorHandler owns the status bar. It shows, in order of precedence, the latest
// message, a running progress line, and the baseline of the current page.
type ErrorHandler struct {
	queue      func(func())
	appRef     *App
	statusView *tview.TextView
	logger     zerolog.Logger

	mu         sync.Mutex
	message    string
	progress   string
	clearTimer *time.Timer
}

// NewErrorHandler creates a new error handler. queue runs a function on the UI
// goroutine and may block until it has run; it may be nil when there is no UI.
func NewErrorHandler(queue func(func()), appRef *App, statusView *tview.TextView, logger zerolog.Logger) *ErrorHandler {
	return &ErrorHandler{
		queue:      queue,
		appRef:     appRef,
		statusView: statusView,
		logger:     logger,
	}
}

// post hands fn to the UI goroutine without waiting, so callers on the UI goroutine never block
func (eh *ErrorHandler) post(fn func()) {
	if eh.queue == nil {
		return
	}
	go eh.queue(fn)
}

// ShowInfo shows an info message
func (eh *ErrorHandler) ShowInfo(ctx context.Context, msg string) {
	eh.show(msg, LogLevelInfo)
}

// ShowWarning shows a warning message
func (eh *ErrorHandler) ShowWarning(ctx context.Context, msg string) {
	eh.show(msg, LogLevelWarning)
}

// ShowSuccess shows a success message
func (eh *ErrorHandler) ShowSuccess(ctx context.Context, msg string) {
	eh.show(msg, LogLevelSuccess)
}

// ShowStorageError reports a failed storage operation. When the failure may go
// away on its own and retryKey is set, the message says which key retries it.
func (eh *ErrorHandler) ShowStorageError(ctx context.Context, operation string, err error, retryKey string) {
	if err == nil {
		return
	}
	eh.logger.Error().Err(err).Str("operation", operation).Msg("storage operation failed")

	msg := fmt.Sprintf("Storage %s failed: %v", operation, err)
	if retryKey != "" && !services.IsPermanentError(err) {
		msg += fmt.Sprintf(" • press %s to retry", retryKey)
	}
	eh.show(msg, LogLevelError)
}

// ShowProgress shows msg until ClearProgress. The text is recorded immediately so
// a later clear always wins, whatever order the redraws run in.
func (eh *ErrorHandler) ShowProgress(ctx context.Context, msg string) {
	eh.mu.Lock()
	eh.progress = formatMessage(msg, LogLevelInfo)
	eh.mu.Unlock()

	eh.post(eh.RefreshBaseline)
}

// ClearProgress removes the progress line
func (eh *ErrorHandler) ClearProgress() {
	eh.mu.Lock()
	eh.progress = ""
	eh.mu.Unlock()

	eh.post(eh.RefreshBaseline)
}

// RefreshBaseline redraws the status bar, picking up a changed baseline
func (eh *ErrorHandler) RefreshBaseline() {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	eh.redraw()
}

func formatMessage(msg string, level LogLevel) string {
	return styleOf(level).icon + " " + tview.Escape(msg)
}

func (eh *ErrorHandler) show(msg string, level LogLevel) {
	if strings.TrimSpace(msg) == "" {
		return
	}
	style := styleOf(level)
	eh.logger.Debug().Str("level", style.name).Msg(msg)

	text := formatMessage(msg, level)
	eh.post(func() { eh.setMessage(text, style.color) })
}

// setMessage puts text on the bar and arms its expiry. UI goroutine only.
func (eh *ErrorHandler) setMessage(text, color string) {
	if eh.statusView == nil {
		return
	}

	eh.mu.Lock()
	defer eh.mu.Unlock()

	if eh.clearTimer != nil {
		eh.clearTimer.Stop()
	}
	eh.message = text
	eh.statusView.SetTextColor(eh.appRef.getStatusColor(color))
	eh.redraw()

	eh.clearTimer = time.AfterFunc(statusClearDelay, func() { eh.expire(text) })
}

// expire drops text unless a newer message replaced it
func (eh *ErrorHandler) expire(text string) {
	eh.post(func() {
		eh.mu.Lock()
		defer eh.mu.Unlock()

		if eh.message != text {
			return
		}
		eh.message = ""
		if eh.statusView != nil {
			eh.statusView.SetTextColor(eh.appRef.getStatusColor("info"))
		}
		eh.redraw()
	})
}

// redraw writes the highest-precedence text. Callers hold eh.mu.
func (eh *ErrorHandler) redraw() {
	if eh.statusView == nil {
		return
	}

	switch {
	case eh.message != "":
		eh.statusView.SetText(eh.message)
	case eh.progress != "":
		eh.statusView.SetText(eh.progress)
	default:
		eh.statusView.SetText(eh.baseline())
	}
}

func (eh *ErrorHandler) baseline() string {
	if eh.appRef != nil {
		return eh.appRef.statusBaseline()
	}
	return fallbackBaseline
}
