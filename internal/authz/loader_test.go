package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artify-go/artify/internal/db/controller/role"
	"github.com/artify-go/artify/internal/db/models"
)

type staticSource []string

func (s staticSource) RawPermissions(context.Context) ([]string, error) {
	return s, nil
}

type failingSource struct{ err error }

func (s failingSource) RawPermissions(context.Context) ([]string, error) {
	return nil, s.err
}

func TestLoaderLoad(t *testing.T) {
	testCases := []struct {
		name    string
		values  []string
		want    []string
		wantErr error
	}{
		{
			name:   "object keys keep order",
			values: []string{`{"delete-posts": true, "create-posts": true}`},
			want:   []string{"delete-posts", "create-posts"},
		},
		{
			name:   "array",
			values: []string{`["view-posts", "update-posts"]`},
			want:   []string{"view-posts", "update-posts"},
		},
		{
			name:   "collapsed across roles without duplicates",
			values: []string{`{"create-posts": true}`, `["create-posts", "view-comments"]`},
			want:   []string{"create-posts", "view-comments"},
		},
		{
			name:   "false is not granted",
			values: []string{`{"create-posts": false, "view-posts": 1}`},
			want:   []string{"view-posts"},
		},
		{
			name:   "null and empty values are skipped",
			values: []string{"null", "", `{"view-posts": true}`},
			want:   []string{"view-posts"},
		},
		{
			name:    "no roles",
			values:  nil,
			wantErr: ErrNoPermissions,
		},
		{
			name:    "empty permission sets",
			values:  []string{`{}`, `[]`},
			wantErr: ErrNoPermissions,
		},
		{
			name:    "scalar",
			values:  []string{`"create-posts"`},
			wantErr: ErrNotListLike,
		},
		{
			name:    "array of objects",
			values:  []string{`[{"create-posts": true}]`},
			wantErr: ErrNotListLike,
		},
		{
			name:    "broken json",
			values:  []string{`{"create-posts":`},
			wantErr: ErrNotListLike,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewLoader(staticSource(tc.values)).Load(context.Background())
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoaderSourceErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewLoader(failingSource{err: boom}).Load(context.Background())
	require.ErrorIs(t, err, boom)

	_, err = NewLoader(nil).Load(context.Background())
	require.ErrorIs(t, err, ErrSourceNil)
}

func TestDBSource(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Role{}))

	_, err = role.Create(db, "editor", []string{"create-posts"})
	require.NoError(t, err)
	_, err = role.Create(db, "moderator", []string{"approve-posts"})
	require.NoError(t, err)

	perms, err := NewLoader(DBSource{DB: db, Table: "roles", Column: "permissions"}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"create-posts", "approve-posts"}, perms)

	_, err = DBSource{}.RawPermissions(context.Background())
	require.ErrorIs(t, err, role.ErrDBNil)
}
