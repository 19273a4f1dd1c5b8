package commands

import (
	"context"
	"errors"

	"github.com/user/bmark/internal/store"
)

// Command names as the host shell invokes them.
const (
	AddBookmark  = "add_bookmark"
	GetBookmarks = "get_bookmarks"
)

const lockFailureMessage = "Failed to lock state"

// CommandError is the caller-facing failure of a command. Error returns only
// the message meant for the end user; the cause stays reachable via
// errors.Is and errors.As.
type CommandError struct {
	Command string
	Message string
	Err     error
}

func (e *CommandError) Error() string {
	return e.Message
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// BookmarkStore is the storage the commands operate on.
type BookmarkStore interface {
	Append(item string) error
	Snapshot() ([]string, error)
}

// Handlers exposes the store as the two bookmark commands. One Handlers
// value is built at startup and shared by every caller.
type Handlers struct {
	store BookmarkStore
}

func NewHandlers(s BookmarkStore) *Handlers {
	return &Handlers{store: s}
}

// AddBookmark appends url to the bookmark list.
func (h *Handlers) AddBookmark(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := h.store.Append(url); err != nil {
		return toCommandError(AddBookmark, err)
	}
	return nil
}

// GetBookmarks returns a copy of all bookmarks, oldest first.
func (h *Handlers) GetBookmarks(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bookmarks, err := h.store.Snapshot()
	if err != nil {
		return nil, toCommandError(GetBookmarks, err)
	}
	return bookmarks, nil
}

func toCommandError(command string, err error) error {
	msg := err.Error()
	if errors.Is(err, store.ErrLockPoisoned) {
		msg = lockFailureMessage
	}
	return &CommandError{Command: command, Message: msg, Err: err}
}
