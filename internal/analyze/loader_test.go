package analyze

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/fixture"
)

const loaderTree = `
-- models/hero.ts --
export class Hero { name: string; }
-- models/power/index.ts --
export function describe(p: Power): string { return "" }
-- models/both.ts --
export const fromFile = (x: number) => x;
-- models/both/index.ts --
export const fromIndex = (x: number) => x;
-- models/broken.ts --
export class Broken {
-- models/bin/index.ts --
export const y = 1;
`

func TestLoader_ResolveModule(t *testing.T) {
	root := fixture.Extract(t, loaderTree)

	loader, err := NewLoader(NewParser(), 0)
	require.NoError(t, err)

	t.Run("file", func(t *testing.T) {
		f, ok, err := loader.ResolveModule(filepath.Join(root, "models", "hero"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(root, "models", "hero.ts"), f.Path)
		assert.True(t, f.Declares("Hero"))
	})

	t.Run("index", func(t *testing.T) {
		f, ok, err := loader.ResolveModule(filepath.Join(root, "models", "power"))
		require.NoError(t, err)
		require.True(t, ok)
		_, found := f.Function("describe")
		assert.True(t, found)
	})

	t.Run("file wins over index", func(t *testing.T) {
		f, ok, err := loader.ResolveModule(filepath.Join(root, "models", "both"))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []string{"fromFile"}, f.FunctionNames())
	})

	t.Run("missing", func(t *testing.T) {
		f, ok, err := loader.ResolveModule(filepath.Join(root, "models", "nope"))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, f)
	})

	t.Run("unparsable", func(t *testing.T) {
		_, ok, err := loader.ResolveModule(filepath.Join(root, "models", "broken"))
		require.Error(t, err)
		assert.False(t, ok)

		var perr *ParseError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestLoader_ParseFileCaches(t *testing.T) {
	root := fixture.Extract(t, loaderTree)

	loader, err := NewLoader(NewParser(), 4)
	require.NoError(t, err)

	path := filepath.Join(root, "models", "hero.ts")

	first, err := loader.ParseFile(path)
	require.NoError(t, err)

	second, err := loader.ParseFile(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, loader.Len())
}
