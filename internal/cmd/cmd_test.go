package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/config"
	"view-generator/internal/fixture"
)

const projectArchive = `
-- genconfig.json --
{"check": {"folders": ["src/models"]}}
-- src/models/hero.ts --
import { Power } from "./power";

@GenerateView({model: "hero", filePath: "src/views", mapperPath: "src/mappers"})
export class HeroModel {
    name: string;
    power: Power;
}
-- src/models/power.ts --
export class Power {
    label: string;
}
`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func global(root string) *config.Global {
	return &config.Global{Root: root, CacheSize: 16}
}

func TestGen_Run(t *testing.T) {
	root := fixture.Extract(t, projectArchive)

	var out bytes.Buffer
	require.NoError(t, (&Gen{}).Run(context.Background(), global(root), quietLogger(), &out))

	assert.True(t, fixture.Exists(root, "src/views/hero.ts"))
	assert.True(t, fixture.Exists(root, "src/mappers/heroMapper.ts"))
	assert.Contains(t, fixture.Read(t, root, "src/views/hero.ts"), `import { Power } from "../models/power";`)
	assert.Empty(t, out.String())
}

func TestGen_DryRunAndDump(t *testing.T) {
	root := fixture.Extract(t, projectArchive)

	var out bytes.Buffer
	require.NoError(t, (&Gen{DryRun: true, Dump: true}).Run(context.Background(), global(root), quietLogger(), &out))

	assert.False(t, fixture.Exists(root, "src/views/hero.ts"))
	assert.Contains(t, out.String(), filepath.Join(root, "src", "mappers", "heroMapper.ts")+"\n")
	assert.Contains(t, out.String(), filepath.Join(root, "src", "views", "hero.ts")+"\n")
	assert.Contains(t, out.String(), `BaseName: (string) (len=9) "HeroModel"`)
}

func TestCheck_Run(t *testing.T) {
	root := fixture.Extract(t, `
-- src/models/hero.ts --
@GenerateView({model: "hero", filePath: "src/views"})
export class HeroModel {
    enemy: Villain;
}
`)

	var out bytes.Buffer
	require.NoError(t, (&Check{}).Run(context.Background(), global(root), quietLogger(), &out))

	assert.Contains(t, out.String(), "warning: ")
	assert.Contains(t, out.String(), "[unresolved_import] type Villain is not imported")
	assert.Contains(t, out.String(), "1 files, 1 views, 1 warnings\n")
	assert.False(t, fixture.Exists(root, "src/views/hero.ts"))

	out.Reset()
	require.Error(t, (&Check{Strict: true}).Run(context.Background(), global(root), quietLogger(), &out))
	assert.Contains(t, out.String(), "error: ")
}

func TestConfigInit_Run(t *testing.T) {
	dir := t.TempDir()
	g := global(dir)

	for _, format := range []string{"json", "yaml", "toml"} {
		ci := &ConfigInit{Format: format, Folders: []string{"src"}}
		require.NoError(t, ci.Run(g), format)

		cfg, err := config.Load(filepath.Join(dir, "genconfig."+format))
		require.NoError(t, err, format)
		assert.Equal(t, []string{"src"}, cfg.Check.Folders, format)

		require.Error(t, ci.Run(g), format)

		ci.Force = true
		require.NoError(t, ci.Run(g), format)
	}
}

func TestCLI_Parse(t *testing.T) {
	var cli CLI

	parser, err := kong.New(&cli, kong.Name("view-generator"), kong.Exit(func(int) { t.Fatal("unexpected exit") }))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"--root", "/work", "--log-level", "debug", "gen", "--dry-run", "--strict"})
	require.NoError(t, err)
	assert.Equal(t, "gen", ctx.Command())
	assert.Equal(t, "/work", cli.Global.Root)
	assert.Equal(t, "debug", cli.Log.Level)
	assert.Equal(t, 256, cli.Global.CacheSize)
	assert.True(t, cli.Gen.DryRun)
	assert.True(t, cli.Gen.Strict)

	ctx, err = parser.Parse([]string{"config", "init", "--format", "toml"})
	require.NoError(t, err)
	assert.Equal(t, "config init", ctx.Command())
	assert.Equal(t, "toml", cli.Config.Init.Format)
	assert.Equal(t, []string{"."}, cli.Config.Init.Folders)

	_, err = parser.Parse([]string{"config", "init", "--format", "xml"})
	assert.Error(t, err)
}

func TestConfigCandidatePaths(t *testing.T) {
	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("/etc/viewgen.yml")
	require.NotEmpty(t, yamlPaths)
	assert.Equal(t, "/etc/viewgen.yml", yamlPaths[0])
	assert.NotContains(t, jsonPaths, "/etc/viewgen.yml")
	assert.NotEmpty(t, tomlPaths)

	assert.Equal(t, "a.toml", FindUserConfig([]string{"gen", "--config-file=a.toml"}))
	assert.Equal(t, "b.json", FindUserConfig([]string{"--config-file", "b.json", "check"}))
}
