package generator_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/byte4ever/stubgen/command"
	"github.com/byte4ever/stubgen/generator"
	"github.com/byte4ever/stubgen/stubfs"
)

// goldenCase is one txtar archive from testdata.
//
// The comment holds "Args:" (the payload), optional
// "Force: true" and optional "Error:" (a substring of the
// expected error). Files are split by prefix: stubs/ seeds
// the stubs directory, project/ seeds the project, want/
// lists the full expected project tree and stdout is the
// expected output.
type goldenCase struct {
	args    []string
	force   bool
	wantErr string
	stubs   map[string][]byte
	project map[string][]byte
	want    map[string][]byte
	stdout  string
}

func parseGoldenCase(t *testing.T, ar *txtar.Archive) goldenCase {
	t.Helper()

	gc := goldenCase{
		stubs:   make(map[string][]byte),
		project: make(map[string][]byte),
		want:    make(map[string][]byte),
	}

	for _, line := range strings.Split(string(ar.Comment), "\n") {
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		val = strings.TrimSpace(val)

		switch key {
		case "Args":
			gc.args = strings.Fields(val)
		case "Force":
			gc.force = val == "true"
		case "Error":
			gc.wantErr = val
		}
	}

	for _, fi := range ar.Files {
		switch {
		case fi.Name == "stdout":
			gc.stdout = string(fi.Data)
		case strings.HasPrefix(fi.Name, "stubs/"):
			gc.stubs[strings.TrimPrefix(fi.Name, "stubs/")] = fi.Data
		case strings.HasPrefix(fi.Name, "project/"):
			gc.project[strings.TrimPrefix(fi.Name, "project/")] = fi.Data
		case strings.HasPrefix(fi.Name, "want/"):
			gc.want[strings.TrimPrefix(fi.Name, "want/")] = fi.Data
		default:
			t.Fatalf("unexpected file in archive: %q", fi.Name)
		}
	}

	require.NotEmpty(t, gc.args, "archive has no Args line")

	return gc
}

func seed(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()

	for name, data := range files {
		pa := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(pa), 0o750))
		require.NoError(t, os.WriteFile(pa, data, 0o600))
	}
}

// snapshot returns every regular file below dir keyed by
// its slash separated relative path.
func snapshot(t *testing.T, dir string) map[string][]byte {
	t.Helper()

	got := make(map[string][]byte)

	err := filepath.WalkDir(dir, func(pa string, de fs.DirEntry, err error) error {
		if err != nil || de.IsDir() {
			return err
		}

		rel, err := filepath.Rel(dir, pa)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(pa) //nolint:gosec // test file
		if err != nil {
			return err
		}

		got[filepath.ToSlash(rel)] = data

		return nil
	})
	require.NoError(t, err)

	return got
}

func TestGolden(t *testing.T) {
	t.Parallel()

	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		file := file

		name := strings.TrimSuffix(filepath.Base(file), ".txtar")

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ar, err := txtar.ParseFile(file)
			require.NoError(t, err)

			gc := parseGoldenCase(t, ar)

			stubDir := t.TempDir()
			projectDir := t.TempDir()

			seed(t, stubDir, gc.stubs)
			seed(t, projectDir, gc.project)

			re := generator.Registry(
				generator.Builtin(),
				generator.Generator{
					Store: &stubfs.Disk{
						StubDir:    stubDir,
						ProjectDir: projectDir,
					},
					Force: gc.force,
				},
			)

			pl, err := command.ParsePayload(gc.args)
			require.NoError(t, err)

			var out bytes.Buffer

			err = re.Dispatch(context.Background(), pl, &out)

			if gc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), gc.wantErr)
				assert.Empty(t, out.String())
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, gc.stdout, out.String())

			got := snapshot(t, projectDir)

			if diff := cmp.Diff(gc.want, got, cmp.Transformer(
				"string", func(b []byte) string { return string(b) },
			)); diff != "" {
				t.Errorf("project tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
