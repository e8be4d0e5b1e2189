package stubfs

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
)

//go:embed stubs/*.stub
var embedded embed.FS

var (
	// ErrExists is returned when an artifact already exists
	// and overwriting was not requested.
	ErrExists = errors.New("artifact already exists")

	// ErrUnsafePath is returned for paths that are absolute
	// or escape their base directory.
	ErrUnsafePath = errors.New("unsafe path")
)

// Store reads stubs and persists rendered artifacts.
type Store interface {
	ReadStub(ctx context.Context, name string) ([]byte, error)
	WriteArtifact(
		ctx context.Context,
		rel string,
		content []byte,
		force bool,
	) (WriteInfo, error)
}

// WriteInfo describes a persisted artifact.
type WriteInfo struct {
	// Path is the file location on disk.
	Path string
	// Overwritten is true when an existing file was
	// replaced.
	Overwritten bool
}

// Disk is a Store backed by the local filesystem.
type Disk struct {
	// StubDir holds the stub files. When empty the stubs
	// embedded in the binary are used.
	StubDir string

	// ProjectDir is the base for artifact paths.
	ProjectDir string
}

// ReadStub returns the content of the named stub.
func (di *Disk) ReadStub(
	ctx context.Context,
	name string,
) ([]byte, error) {
	const errCtx = "reading stub"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return nil, fmt.Errorf(
			"%s: %q: %w", errCtx, name, ErrUnsafePath,
		)
	}

	if di.StubDir == "" {
		content, err := fs.ReadFile(
			embedded, path.Join("stubs", name),
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: embedded %s: %w", errCtx, name, err,
			)
		}

		return content, nil
	}

	pa := filepath.Join(di.StubDir, filepath.FromSlash(name))

	slog.Debug("reading stub", "path", pa)

	content, err := os.ReadFile(pa) //nolint:gosec // stub root from config
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return content, nil
}

// WriteArtifact writes content to rel below ProjectDir,
// creating parent directories as needed. An existing file
// is only replaced when force is true.
func (di *Disk) WriteArtifact(
	ctx context.Context,
	rel string,
	content []byte,
	force bool,
) (WriteInfo, error) {
	const errCtx = "writing artifact"

	if err := ctx.Err(); err != nil {
		return WriteInfo{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	local := filepath.FromSlash(rel)
	if !filepath.IsLocal(local) {
		return WriteInfo{}, fmt.Errorf(
			"%s: %q: %w", errCtx, rel, ErrUnsafePath,
		)
	}

	target := filepath.Join(di.ProjectDir, local)

	exists, err := fileExists(target)
	if err != nil {
		return WriteInfo{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if exists && !force {
		return WriteInfo{}, fmt.Errorf(
			"%s: %s: %w", errCtx, target, ErrExists,
		)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil { //nolint:gosec // project layout
		return WriteInfo{}, fmt.Errorf(
			"%s: creating directories: %w", errCtx, err,
		)
	}

	if err := replaceFile(target, content); err != nil {
		return WriteInfo{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"artifact written",
		"path", target,
		"bytes", len(content),
		"overwritten", exists,
	)

	return WriteInfo{Path: target, Overwritten: exists}, nil
}

// fileExists reports whether pa exists. Directories count
// as existing so they are never clobbered by a rename.
func fileExists(pa string) (bool, error) {
	_, err := os.Lstat(pa)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// replaceFile writes content to a temporary file next to
// target and renames it into place.
func replaceFile(target string, content []byte) (retErr error) {
	const errCtx = "replacing file"

	tmp, err := os.CreateTemp(
		filepath.Dir(target), "."+filepath.Base(target)+".tmp-*",
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if retErr != nil {
			_ = os.Remove(tmp.Name()) //nolint:errcheck // best-effort cleanup
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close() //nolint:errcheck // already failing

		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // generated source file
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
