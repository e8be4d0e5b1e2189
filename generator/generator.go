package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/stubgen/command"
	"github.com/byte4ever/stubgen/stubfs"
	"github.com/byte4ever/stubgen/templating"
)

// Generator instantiates the stub of one Kind. It
// implements command.Command.
type Generator struct {
	// Kind selects stub, token, category and suffix.
	Kind Kind

	// Engine renders the stub.
	Engine templating.Engine

	// Store reads stubs and writes artifacts.
	Store stubfs.Store

	// Vars are extra replacements. The derived token
	// always takes precedence over them.
	Vars map[string]string

	// Force allows overwriting existing artifacts.
	Force bool

	// JSON makes Handle print the Result as JSON instead
	// of the confirmation message.
	JSON bool
}

// Result describes a generated artifact.
type Result struct {
	Signature   string `json:"signature"`
	Label       string `json:"label"`
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Bytes       int    `json:"bytes"`
	Overwritten bool   `json:"overwritten"`
}

// Message is the human readable confirmation.
func (re Result) Message() string {
	return fmt.Sprintf(
		"%s %s created successfully", re.Label, re.Identifier,
	)
}

// Signature implements command.Command.
func (ge *Generator) Signature() string { return ge.Kind.Signature }

// Description implements command.Command.
func (ge *Generator) Description() string { return ge.Kind.Description }

// Usage implements command.Command.
func (ge *Generator) Usage() string { return ge.Kind.usage() }

// Integrated implements command.Command.
func (ge *Generator) Integrated() bool { return ge.Kind.Integrated }

// Replacements returns the mapping used to render the
// stub for req.
func (ge *Generator) Replacements(req Request) map[string]string {
	repl := make(map[string]string, len(ge.Vars)+1)
	for key, val := range ge.Vars {
		repl[key] = val
	}

	repl[ge.Kind.Token] = req.Identifier

	return repl
}

// Generate reads the stub, renders it for req and writes
// the artifact to <category>/<name>.
func (ge *Generator) Generate(
	ctx context.Context,
	req Request,
) (Result, error) {
	const errCtx = "generating artifact"

	stub, err := ge.Store.ReadStub(ctx, ge.Kind.Stub)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	content := ge.Engine.Render(string(stub), ge.Replacements(req))

	rel := path.Join(ge.Kind.Category, req.Name)

	info, err := ge.Store.WriteArtifact(
		ctx, rel, []byte(content), ge.Force,
	)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info(
		"artifact generated",
		"command", ge.Kind.Signature,
		"identifier", req.Identifier,
		"path", info.Path,
	)

	return Result{
		Signature:   ge.Kind.Signature,
		Label:       ge.Kind.Label,
		Identifier:  req.Identifier,
		Name:        req.Name,
		Path:        info.Path,
		Bytes:       len(content),
		Overwritten: info.Overwritten,
	}, nil
}

// Handle parses the payload, generates the artifact and
// reports it on out.
func (ge *Generator) Handle(
	ctx context.Context,
	pl command.Payload,
	out io.Writer,
) error {
	req, err := ParseRequest(pl, ge.Kind)
	if err != nil {
		return err
	}

	res, err := ge.Generate(ctx, req)
	if err != nil {
		return err
	}

	if ge.JSON {
		if err := json.NewEncoder(out).Encode(res); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}

		return nil
	}

	if _, err := fmt.Fprintln(out, res.Message()); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	return nil
}

// Registry builds a command registry holding one
// generator per kind, all sharing the given settings.
func Registry(kinds []Kind, base Generator) *command.Registry {
	re := &command.Registry{}

	for _, kind := range kinds {
		ge := base
		ge.Kind = kind
		re.Register(&ge)
	}

	return re
}
