package command

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
)

// Key is the payload field naming the command to run.
const Key = "command"

// Payload holds the arguments of one invocation.
type Payload map[string]any

// String returns the value of key when it is a string.
func (pl Payload) String(key string) (string, bool) {
	val, ok := pl[key].(string)

	return val, ok
}

// ParsePayload builds a Payload from key=value arguments.
// Later keys override earlier ones.
func ParsePayload(args []string) (Payload, error) {
	const errCtx = "parsing payload"

	pl := make(Payload, len(args))

	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf(
				"%s: argument must be key=value, got %s",
				errCtx, arg,
			)
		}

		pl[parts[0]] = parts[1]
	}

	return pl, nil
}

// ParsePayloadJSON builds a Payload from a JSON object.
func ParsePayloadJSON(raw []byte) (Payload, error) {
	const errCtx = "parsing json payload"

	var pl Payload

	if err := json.Unmarshal(raw, &pl); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if pl == nil {
		return nil, fmt.Errorf(
			"%s: payload must be a JSON object", errCtx,
		)
	}

	return pl, nil
}

// Merge returns a new payload with the entries of other
// applied over pl.
func (pl Payload) Merge(other Payload) Payload {
	out := make(Payload, len(pl)+len(other))

	for key, val := range pl {
		out[key] = val
	}

	for key, val := range other {
		out[key] = val
	}

	return out
}
