package analyze

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/fixture"
)

const discoverTree = `
-- src/models/b.ts --
export class B {}
-- src/models/a.ts --
export class A {}
-- src/models/types.d.ts --
declare const x: number;
-- src/models/readme.md --
not source
-- src/generated/view.ts --
export class View {}
-- src/node_modules/lib/index.ts --
export const lib = 1;
-- other/c.ts --
export class C {}
`

func TestDiscover(t *testing.T) {
	root := fixture.Extract(t, discoverTree)

	files, err := Discover(root, []string{"src"}, []string{"src/generated"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "src", "models", "a.ts"),
		filepath.Join(root, "src", "models", "b.ts"),
	}, files)
}

func TestDiscover_OverlappingIncludes(t *testing.T) {
	root := fixture.Extract(t, discoverTree)

	files, err := Discover(root, []string{"src/models", "src", "other"}, nil, []string{"ts"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "src", "models", "a.ts"),
		filepath.Join(root, "src", "models", "b.ts"),
		filepath.Join(root, "src", "generated", "view.ts"),
		filepath.Join(root, "other", "c.ts"),
	}, files)
}

func TestDiscover_MissingFolder(t *testing.T) {
	root := fixture.Extract(t, discoverTree)

	_, err := Discover(root, []string{"absent"}, nil, nil)
	require.Error(t, err)
}
