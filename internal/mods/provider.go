package mods

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// Provider describes the on-disk side of a file key: where the file lives
// and how its bytes map to the key's mod results.
type Provider[T any] struct {
	// Name is the layer name; it defaults to "base".
	Name string
	// Path resolves the file from the project root.
	Path func(projectRoot string) string
	// Parse decodes file content.
	Parse func(data []byte) (T, error)
	// Serialize encodes mod results for writing.
	Serialize func(results T) ([]byte, error)
}

// ProjectPath returns a Path func joining elem onto the project root.
func ProjectPath(elem ...string) func(string) string {
	return func(root string) string {
		return filepath.Join(append([]string{root}, elem...)...)
	}
}

// WithBaseMod registers the read/write boundary for key. Register it after
// every content mod so it wraps them: the file is read once, passed through
// the inner layers, and written once.
//
// A missing file is not an error; the inner layers start from key.Default.
// Registering a second base mod for the same key makes that chain fail at
// evaluation with ErrMultipleBaseMods.
func WithBaseMod[T any](cfg *Config, key Key[T], p Provider[T]) *Config {
	name := p.Name
	if name == "" {
		name = "base"
	}
	return register(cfg, key, name, LayerBase, p.mod(key))
}

func (p Provider[T]) mod(key Key[T]) Mod[T] {
	return func(ctx context.Context, req *Request[T], next Next[T]) (*Request[T], error) {
		path := p.Path(req.ProjectRoot)
		run := req.run
		run.enter(PhaseReading)
		run.setPath(path)

		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			results, err := p.Parse(data)
			if err != nil {
				return nil, &Error{Kind: KindFileRead, Layer: -1, Path: path, Err: fmt.Errorf("parsing: %w", err)}
			}
			req.Results = results
			run.markRead(digest(data))
		case errors.Is(err, fs.ErrNotExist):
			req.Results = key.seed()
		default:
			return nil, &Error{Kind: KindFileRead, Layer: -1, Path: path, Err: err}
		}

		out, err := next(ctx, req)
		if err != nil {
			return nil, err
		}

		run.enter(PhaseWriting)
		run.keep(out.Results)

		data, err = p.Serialize(out.Results)
		if err != nil {
			return nil, &Error{Kind: KindFileWrite, Layer: -1, Path: path, Err: fmt.Errorf("serializing: %w", err)}
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, &Error{Kind: KindFileWrite, Layer: -1, Path: path, Err: err}
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, &Error{Kind: KindFileWrite, Layer: -1, Path: path, Err: err}
		}
		run.markWritten(digest(data))

		return out, nil
	}
}

func digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
