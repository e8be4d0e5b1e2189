package templating

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Engine renders stubs. With StartTag and EndTag both
// empty every mapping key is matched as a bare literal
// token; otherwise tokens must be wrapped in the tags.
type Engine struct {
	StartTag string
	EndTag   string
}

// Bare reports whether the engine matches bare tokens.
func (en *Engine) Bare() bool {
	return en.StartTag == "" && en.EndTag == ""
}

// Render replaces every occurrence of every mapped token
// in stub. Unmapped tokens pass through unchanged.
func (en *Engine) Render(
	stub string,
	repl map[string]string,
) string {
	if len(repl) == 0 {
		return stub
	}

	if en.Bare() {
		return bareReplacer(repl).Replace(stub)
	}

	ctx := make(map[string]interface{}, len(repl))
	for key, val := range repl {
		ctx[key] = val
	}

	return fasttemplate.ExecuteStringStd(
		stub, en.StartTag, en.EndTag, ctx,
	)
}

// Validate checks that tags are either both set or both
// empty.
func (en *Engine) Validate() error {
	const errCtx = "validating engine"

	if (en.StartTag == "") != (en.EndTag == "") {
		return fmt.Errorf(
			"%s: start and end tags must be set together",
			errCtx,
		)
	}

	return nil
}

// bareReplacer builds a replacer that tries longer
// tokens first, so a token that prefixes another one
// never shadows it. Empty keys are ignored.
func bareReplacer(repl map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(repl))
	for key := range repl {
		if key != "" {
			keys = append(keys, key)
		}
	}

	slices.SortFunc(keys, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}

		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, key, repl[key])
	}

	return strings.NewReplacer(pairs...)
}

// ParseVars processes NAME=VALUE entries into a mapping.
// Later entries override earlier ones.
func ParseVars(vars []string) (map[string]string, error) {
	const errCtx = "parsing variables"

	out := make(map[string]string, len(vars))

	for _, vr := range vars {
		parts := strings.SplitN(vr, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf(
				"%s: variable must be NAME=value, got %s",
				errCtx, vr,
			)
		}

		out[parts[0]] = parts[1]
	}

	return out, nil
}

// LoadVarFiles reads variable files and merges them into
// a single mapping. Each line is "KEY VALUE" with the
// first space as delimiter. Lines without a space are
// silently skipped.
func LoadVarFiles(files []string) (map[string]string, error) {
	const errCtx = "loading variable files"

	out := make(map[string]string)

	for _, vf := range files {
		content, err := os.ReadFile(vf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			line = strings.TrimSuffix(line, "\r")

			parts := strings.SplitN(line, " ", 2)
			if len(parts) == 2 && parts[0] != "" {
				out[parts[0]] = parts[1]
			}
		}
	}

	return out, nil
}
