package buildergen

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed pkg/option/option.go pkg/builder/builder.go
var embeddedRuntime embed.FS

// RuntimeFS exposes the sources of the packages generated builders import
// (option/option.go and builder/builder.go) so projects that cannot depend on
// this module can vendor them.
//
// Typical use:
//
//	buildergen -runtime-dir internal/gen -runtime-import example.com/app/internal/gen ...
func RuntimeFS() fs.FS {
	sub, err := fs.Sub(embeddedRuntime, "pkg")
	if err != nil {
		return embeddedRuntime
	}
	return sub
}

// WriteRuntime copies the runtime sources under dir, creating dir/option and
// dir/builder. Existing files are overwritten. The option package still
// imports goccy/go-json and yaml.v3.
func WriteRuntime(dir string) error {
	files := RuntimeFS()
	return fs.WalkDir(files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fs.ReadFile(files, path)
		if err != nil {
			return fmt.Errorf("buildergen: read runtime %s: %w", path, err)
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("buildergen: write runtime %s: %w", target, err)
		}
		return nil
	})
}
