package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level entries
// to a charmbracelet logger. Failures are logged at warn level.
//
// `perfwall serve --trace` registers LogHooks for all categories.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// RegisterAll installs h for every hook category.
func (h *LogHooks) RegisterAll() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
	SetOrderHooks(h)
}

func (h *LogHooks) OnImageLoadStart(_ context.Context, source string) {
	h.Logger.Debug("loading image", "source", source)
}

func (h *LogHooks) OnImageLoadComplete(_ context.Context, source string, width, height int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("image load failed", "source", source, "error", err)
		return
	}
	h.Logger.Debug("image loaded", "source", source, "width", width, "height", height, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, panels int) {
	h.Logger.Debug("computing layout", "panels", panels)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, holes int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("layout failed", "error", err)
		return
	}
	h.Logger.Debug("layout computed", "holes", holes, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("rendering", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.Logger.Debug("rendered", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.Logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.Logger.Warn("http error", "method", method, "host", host, "path", path, "error", err)
}

func (h *LogHooks) OnOrderSubmitted(_ context.Context, orderID string, total float64) {
	h.Logger.Info("order submitted", "id", orderID, "total", total)
}

func (h *LogHooks) OnNotifyFailed(_ context.Context, orderID string, err error) {
	h.Logger.Warn("order notification failed", "id", orderID, "error", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
	_ OrderHooks    = (*LogHooks)(nil)
)
