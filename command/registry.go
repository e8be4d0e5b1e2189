package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownCommand is returned when a payload names no
// registered command.
var ErrUnknownCommand = errors.New("unknown command")

// Pattern: Command -- each generator is addressed by its
// signature and receives the raw payload.

// Command is a unit of work reachable by signature.
type Command interface {
	// Signature is the callable name, e.g.
	// "make:middleware".
	Signature() string
	// Description is a one-line summary for listings.
	Description() string
	// Usage is an example invocation.
	Usage() string
	// Integrated marks commands shipped with the tool.
	Integrated() bool
	// Handle runs the command. Human readable output
	// goes to out.
	Handle(ctx context.Context, pl Payload, out io.Writer) error
}

// Registry maps signatures to commands. The zero value is
// ready to use.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
}

// Register adds cmd to the registry. It panics when the
// signature is already taken.
func (re *Registry) Register(cmd Command) {
	re.mu.Lock()
	defer re.mu.Unlock()

	if re.commands == nil {
		re.commands = make(map[string]Command)
	}

	sig := cmd.Signature()
	if _, exists := re.commands[sig]; exists {
		panic(fmt.Sprintf("command %q already registered", sig))
	}

	re.commands[sig] = cmd
}

// Get returns the command registered under sig.
func (re *Registry) Get(sig string) (Command, bool) {
	re.mu.RLock()
	defer re.mu.RUnlock()

	cmd, ok := re.commands[sig]

	return cmd, ok
}

// List returns all registered commands sorted by
// signature.
func (re *Registry) List() []Command {
	re.mu.RLock()
	defer re.mu.RUnlock()

	cmds := make([]Command, 0, len(re.commands))
	for _, cmd := range re.commands {
		cmds = append(cmds, cmd)
	}

	slices.SortFunc(cmds, func(a, b Command) int {
		return strings.Compare(a.Signature(), b.Signature())
	})

	return cmds
}

// Dispatch runs the command named by the payload's
// "command" field.
func (re *Registry) Dispatch(
	ctx context.Context,
	pl Payload,
	out io.Writer,
) error {
	const errCtx = "dispatching command"

	sig, ok := pl.String(Key)
	if !ok || sig == "" {
		return fmt.Errorf(
			"%s: missing %q field: %w",
			errCtx, Key, ErrUnknownCommand,
		)
	}

	cmd, ok := re.Get(sig)
	if !ok {
		return fmt.Errorf(
			"%s: %s: %w", errCtx, sig, ErrUnknownCommand,
		)
	}

	slog.Debug("dispatching", "command", sig)

	if err := cmd.Handle(ctx, pl, out); err != nil {
		return fmt.Errorf("%s: %s: %w", errCtx, sig, err)
	}

	return nil
}
