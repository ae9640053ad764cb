package authz

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// Writer puts generated content at its destination.
// Content goes to a temporary sibling first and is renamed into place,
// so a crash never leaves a half written file behind.
type Writer struct {
	fs afero.Fs
}

// NewWriter returns a Writer on fs.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// Write stores content at path, creating missing directories.
func (w *Writer) Write(path string, content []byte) error {
	dir := filepath.Dir(path)

	if err := w.fs.MkdirAll(dir, dirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	tmp, err := afero.TempFile(w.fs, dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file in %s", dir)
	}

	name := tmp.Name()

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = w.fs.Remove(name)

		return errors.Wrapf(err, "failed to write %s", name)
	}

	if err = tmp.Close(); err != nil {
		_ = w.fs.Remove(name)

		return errors.Wrapf(err, "failed to close %s", name)
	}

	if err = w.fs.Chmod(name, fileMode); err != nil {
		_ = w.fs.Remove(name)

		return errors.Wrapf(err, "failed to chmod %s", name)
	}

	if err = w.fs.Rename(name, path); err != nil {
		_ = w.fs.Remove(name)

		return errors.Wrapf(err, "failed to move %s to %s", name, path)
	}

	return nil
}
