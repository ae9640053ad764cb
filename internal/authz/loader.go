package authz

import (
	"bytes"
	"context"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/artify-go/artify/internal/db/controller/role"
)

// Source yields the raw permission column value of every role.
type Source interface {
	RawPermissions(ctx context.Context) ([]string, error)
}

// DBSource reads permissions from a roles table through gorm.
type DBSource struct {
	DB     *gorm.DB
	Table  string
	Column string
}

// RawPermissions implements Source.
func (s DBSource) RawPermissions(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, role.ErrDBNil
	}

	values, err := role.PluckPermissions(s.DB.WithContext(ctx), s.Table, s.Column)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s.%s", s.Table, s.Column)
	}

	return values, nil
}

// Loader collapses the permissions of all roles into one list.
type Loader struct {
	source Source
}

// NewLoader returns a Loader reading from source.
func NewLoader(source Source) *Loader {
	return &Loader{source: source}
}

// Load returns every distinct permission string in first seen order.
func (l *Loader) Load(ctx context.Context) ([]string, error) {
	if l.source == nil {
		return nil, ErrSourceNil
	}

	values, err := l.source.RawPermissions(ctx)
	if err != nil {
		return nil, err
	}

	var (
		out  []string
		seen = make(map[string]struct{})
	)

	for _, v := range values {
		perms, err := decodePermissions([]byte(v))
		if err != nil {
			return nil, err
		}

		for _, p := range perms {
			if _, ok := seen[p]; ok {
				continue
			}

			seen[p] = struct{}{}
			out = append(out, p)
		}
	}

	if len(out) == 0 {
		return nil, ErrNoPermissions
	}

	return out, nil
}

// decodePermissions accepts {"create-posts": true, ...} or ["create-posts", ...].
// Object keys mapped to false are not granted. Key order is kept.
func decodePermissions(raw []byte) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(ErrNotListLike, err.Error())
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, errors.Wrapf(ErrNotListLike, "%s", raw)
	}

	var out []string

	switch delim {
	case '{':
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, errors.Wrap(ErrNotListLike, err.Error())
			}

			var value json.RawMessage
			if err = dec.Decode(&value); err != nil {
				return nil, errors.Wrap(ErrNotListLike, err.Error())
			}

			if bytes.Equal(bytes.TrimSpace(value), []byte("false")) {
				continue
			}

			out = append(out, keyTok.(string)) //nolint:forcetypeassert
		}
	case '[':
		for dec.More() {
			var p string
			if err = dec.Decode(&p); err != nil {
				return nil, errors.Wrap(ErrNotListLike, err.Error())
			}

			out = append(out, p)
		}
	default:
		return nil, errors.Wrapf(ErrNotListLike, "%s", raw)
	}

	if _, err = dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(ErrNotListLike, err.Error())
	}

	return out, nil
}
