// Binary render_stub renders a single stub file with explicit
// replacements, without the generator's naming rules. It is handy for
// previewing a stub before wiring it into a generator kind.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/byte4ever/stubgen/templating"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func run() error {
	const errCtx = "render_stub"

	var (
		varFiles arrayFlags
		vars     arrayFlags
		output   string
		stub     string
		startTag string
		endTag   string
	)

	flag.Var(
		&varFiles,
		"var_file",
		"File of KEY VALUE replacement lines (repeatable)",
	)

	flag.Var(
		&vars,
		"var",
		"Replacement in NAME=VALUE format (repeatable)",
	)

	flag.StringVar(
		&output, "output", "",
		"Output file path (stdout if empty)",
	)

	flag.StringVar(
		&stub, "stub", "",
		"Input stub file path (stdin if empty)",
	)

	flag.StringVar(
		&startTag, "start_tag", "",
		"Start tag for placeholders (bare tokens if empty)",
	)

	flag.StringVar(
		&endTag, "end_tag", "",
		"End tag for placeholders (bare tokens if empty)",
	)

	flag.Parse()

	en := templating.Engine{
		StartTag: startTag,
		EndTag:   endTag,
	}

	if err := en.Validate(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	repl, err := templating.LoadVarFiles(varFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	fromFlags, err := templating.ParseVars(vars)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	for key, val := range fromFlags {
		repl[key] = val
	}

	content, err := readStub(stub)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	result := en.Render(string(content), repl)

	if output != "" {
		err = os.WriteFile( //nolint:gosec // path from CLI flag
			output, []byte(result), 0o666,
		)
		if err != nil {
			return fmt.Errorf(
				"%s: writing output: %w",
				errCtx, err,
			)
		}

		return nil
	}

	if _, err := os.Stdout.WriteString(result); err != nil {
		return fmt.Errorf(
			"%s: writing to stdout: %w",
			errCtx, err,
		)
	}

	return nil
}

// readStub reads the stub from a file path, or from stdin
// when the path is empty.
func readStub(pa string) ([]byte, error) {
	if pa == "" {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(pa) //nolint:gosec // path from CLI flag
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
