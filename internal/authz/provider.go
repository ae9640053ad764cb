package authz

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Provider list entries of config/app.php.
const (
	AuthServiceProviderEntry  = `App\Providers\AuthServiceProvider::class,`
	AuthyServiceProviderEntry = `App\Providers\AuthyServiceProvider::class`
)

// RegisterProvider appends the AuthyServiceProvider right after the
// AuthServiceProvider entry of the providers list in appConfig.
// It reports false without touching the file when the provider is already listed.
func RegisterProvider(fs afero.Fs, w *Writer, appConfig string) (bool, error) {
	content, err := afero.ReadFile(fs, appConfig)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", appConfig)
	}

	if bytes.Contains(content, []byte(AuthyServiceProviderEntry)) {
		return false, nil
	}

	patched, err := insertProvider(content)
	if err != nil {
		return false, errors.Wrap(err, appConfig)
	}

	if err = w.Write(appConfig, patched); err != nil {
		return false, err
	}

	return true, nil
}

// insertProvider puts the new entry on its own line below the anchor,
// indented like the anchor line.
func insertProvider(content []byte) ([]byte, error) {
	anchor := []byte(AuthServiceProviderEntry)

	i := bytes.Index(content, anchor)
	if i < 0 {
		return nil, ErrProviderAnchorMissing
	}

	lineStart := bytes.LastIndexByte(content[:i], '\n') + 1
	indent := content[lineStart:i]

	if len(bytes.TrimLeft(indent, " \t")) != 0 {
		indent = nil
	}

	end := i + len(anchor)

	var out bytes.Buffer

	out.Grow(len(content) + len(indent) + len(AuthyServiceProviderEntry) + 2) //nolint:mnd
	out.Write(content[:end])
	out.WriteByte('\n')
	out.Write(indent)
	out.WriteString(AuthyServiceProviderEntry + ",")
	out.Write(content[end:])

	return out.Bytes(), nil
}
