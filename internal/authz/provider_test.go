package authz

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appConfig = `<?php

return [
    'providers' => [
        App\Providers\AppServiceProvider::class,
        App\Providers\AuthServiceProvider::class,
        App\Providers\EventServiceProvider::class,
    ],
];
`

func TestRegisterProviderIdempotent(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "config/app.php", []byte(appConfig), 0o644))

	w := NewWriter(fs)

	registered, err := RegisterProvider(fs, w, "config/app.php")
	require.NoError(t, err)
	assert.True(t, registered)

	registered, err = RegisterProvider(fs, w, "config/app.php")
	require.NoError(t, err)
	assert.False(t, registered)

	content, err := afero.ReadFile(fs, "config/app.php")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(string(content), AuthyServiceProviderEntry))
	assert.Contains(t, string(content),
		"        App\\Providers\\AuthServiceProvider::class,\n"+
			"        App\\Providers\\AuthyServiceProvider::class,\n"+
			"        App\\Providers\\EventServiceProvider::class,\n")
}

func TestRegisterProviderErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	_, err := RegisterProvider(fs, w, "config/app.php")
	require.Error(t, err)

	original := []byte("<?php return ['providers' => []];\n")
	require.NoError(t, afero.WriteFile(fs, "config/app.php", original, 0o644))

	_, err = RegisterProvider(fs, w, "config/app.php")
	require.ErrorIs(t, err, ErrProviderAnchorMissing)

	content, err := afero.ReadFile(fs, "config/app.php")
	require.NoError(t, err)
	assert.Equal(t, original, content)
}

func TestInsertProviderInlineAnchor(t *testing.T) {
	out, err := insertProvider([]byte(`'providers' => [App\Providers\AuthServiceProvider::class, Foo::class]`))
	require.NoError(t, err)

	assert.Equal(t,
		"'providers' => [App\\Providers\\AuthServiceProvider::class,\nApp\\Providers\\AuthyServiceProvider::class, Foo::class]",
		string(out))
}
