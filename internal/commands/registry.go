package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"
	"github.com/user/bmark/internal/logging"
)

var log = logging.For("commands")

// Request is one named command invocation coming from the host shell.
type Request struct {
	ID      string          `json:"id,omitempty"`
	Command string          `json:"cmd"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response carries either a JSON result or an error message, never both.
type Response struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// OK reports whether the invocation succeeded.
func (r Response) OK() bool {
	return r.Error == ""
}

// HandlerFunc handles one command. The returned value is encoded as JSON.
type HandlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// ErrUnknownCommand is returned for a command name with no registered handler.
var ErrUnknownCommand = errors.New("unknown command")

// Registry dispatches named commands to their handlers.
// Register must not be called concurrently with Invoke.
type Registry struct {
	handlers map[string]HandlerFunc
	workers  int
}

type addBookmarkArgs struct {
	URL *string `json:"url"`
}

// errMissingURL is returned when add_bookmark has no url key, or a null one.
var errMissingURL = errors.New("invalid payload: missing url")

// NewRegistry returns a registry with add_bookmark and get_bookmarks wired to
// h. workers bounds the concurrency of InvokeAll.
func NewRegistry(h *Handlers, workers int) *Registry {
	if workers < 1 {
		workers = 1
	}
	r := &Registry{
		handlers: make(map[string]HandlerFunc),
		workers:  workers,
	}

	r.Register(AddBookmark, func(ctx context.Context, payload json.RawMessage) (any, error) {
		var args addBookmarkArgs
		if err := decodePayload(payload, &args); err != nil {
			return nil, err
		}
		if args.URL == nil {
			return nil, errMissingURL
		}
		return nil, h.AddBookmark(ctx, *args.URL)
	})
	r.Register(GetBookmarks, func(ctx context.Context, _ json.RawMessage) (any, error) {
		return h.GetBookmarks(ctx)
	})

	return r
}

func (r *Registry) Register(name string, fn HandlerFunc) {
	r.handlers[name] = fn
}

// Commands returns the registered command names.
func (r *Registry) Commands() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// Invoke runs req synchronously. Failures are reported in the response.
func (r *Registry) Invoke(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	logger := log.With(slog.String("request_id", req.ID), slog.String("cmd", req.Command))
	start := time.Now()

	resp := Response{ID: req.ID}
	result, err := r.call(ctx, req)
	if err == nil {
		resp.Result, err = json.Marshal(result)
	}
	if err != nil {
		resp.Result = nil
		resp.Error = err.Error()
		if resp.Error == "" {
			resp.Error = "command failed"
		}
		logger.Warn("command failed", slog.Any("error", err), slog.Duration("took", time.Since(start)))
		return resp
	}

	logger.Debug("command ok", slog.Duration("took", time.Since(start)))
	return resp
}

func (r *Registry) call(ctx context.Context, req Request) (any, error) {
	fn, ok := r.handlers[req.Command]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, req.Command)
	}
	return fn(ctx, req.Payload)
}

// InvokeAsync runs req on its own goroutine and delivers exactly one response.
func (r *Registry) InvokeAsync(ctx context.Context, req Request) <-chan Response {
	out := make(chan Response, 1)
	go func() {
		out <- r.Invoke(ctx, req)
	}()
	return out
}

// InvokeAll runs every request concurrently, at most workers at a time, and
// returns the responses in request order.
func (r *Registry) InvokeAll(ctx context.Context, reqs []Request) []Response {
	responses := make([]Response, len(reqs))
	p := pool.New().WithMaxGoroutines(r.workers)
	for i, req := range reqs {
		p.Go(func() {
			responses[i] = r.Invoke(ctx, req)
		})
	}
	p.Wait()
	return responses
}

func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return fmt.Errorf("invalid payload: empty")
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}

// NewAddBookmarkRequest builds an add_bookmark request for url.
func NewAddBookmarkRequest(url string) Request {
	payload, _ := json.Marshal(addBookmarkArgs{URL: &url})
	return Request{Command: AddBookmark, Payload: payload}
}

// NewGetBookmarksRequest builds a get_bookmarks request.
func NewGetBookmarksRequest() Request {
	return Request{Command: GetBookmarks}
}

// DecodeBookmarks decodes the result of a get_bookmarks response.
func DecodeBookmarks(resp Response) ([]string, error) {
	if !resp.OK() {
		return nil, errors.New(resp.Error)
	}
	var bookmarks []string
	if err := json.Unmarshal(resp.Result, &bookmarks); err != nil {
		return nil, fmt.Errorf("decode bookmarks: %w", err)
	}
	return bookmarks, nil
}
