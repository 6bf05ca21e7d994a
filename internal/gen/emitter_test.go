package gen_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/diagnostic"
	"view-generator/internal/fixture"
	"view-generator/internal/gen"
	"view-generator/internal/plan"
)

func generate(t *testing.T, root string, files ...string) (*gen.MemoryWriter, *plan.Plan) {
	t.Helper()

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, filepath.Join(root, filepath.FromSlash(f)))
	}

	p, err := plan.NewPipeline(plan.Options{Root: root}, nil).Run(context.Background(), paths)
	require.NoError(t, err)

	w := gen.NewMemoryWriter()
	_, err = gen.NewEmitter(gen.NewTemplateRenderer(p.Files), w, nil).Emit(p)
	require.NoError(t, err)

	return w, p
}

func output(t *testing.T, w *gen.MemoryWriter, root, name string) string {
	t.Helper()

	content, ok := w.Files[filepath.Join(root, filepath.FromSlash(name))]
	require.True(t, ok, "%s not written, have %v", name, w.Paths())

	return content
}

const heroDetailArchive = `
-- models/heroDetail.ts --
import { Hero } from "./hero";

@GenerateView({model: "heroDetailViewModel", filePath: "views", mapperPath: "mappers"})
export class HeroDetail {
    @IgnoreViewModel()
    id?: number;

    @ViewModelName("detail")
    data: string;

    hero: Hero;
    tags: string[];
}
-- models/hero.ts --
export class Hero {
    name: string;
}
`

func TestEmitter_HeroDetail(t *testing.T) {
	root := fixture.Extract(t, heroDetailArchive)

	w, _ := generate(t, root, "models/heroDetail.ts", "models/hero.ts")

	assert.Equal(t, []string{
		filepath.Join(root, "mappers", "heroDetailViewModelMapper.ts"),
		filepath.Join(root, "views", "heroDetailViewModel.ts"),
	}, w.Paths())

	assert.Equal(t, `/*Codegen*/
import { Hero } from "../models/hero";

export class HeroDetailViewModel {
  public detail: string;
  public hero: Hero;
  public tags: string[];

  constructor(model: any) {
    this.detail = model.data;
    if (model.hero != null) {
      this.hero = JSON.parse(JSON.stringify(model.hero));
    }
    if (model.tags) {
      this.tags = model.tags.map((item: any) => item);
    }
  }
}
`, output(t, w, root, "views/heroDetailViewModel.ts"))

	assert.Equal(t, `/*Codegen*/
import { HeroDetailViewModel } from "../views/heroDetailViewModel";
import { HeroDetail } from "../models/heroDetail";

export class HeroDetailViewModelMapper {
  public static toHeroDetailViewModel(model: HeroDetail): HeroDetailViewModel {
    const result = new HeroDetailViewModel(model);
    return result;
  }

  public static fromHeroDetailViewModel(viewModel: HeroDetailViewModel): HeroDetail {
    const result: any = {};
    result.data = viewModel.detail;
    result.hero = viewModel.hero;
    result.tags = viewModel.tags;
    return result;
  }
}
`, output(t, w, root, "mappers/heroDetailViewModelMapper.ts"))
}

func TestEmitter_Deterministic(t *testing.T) {
	root := fixture.Extract(t, heroDetailArchive)

	first, _ := generate(t, root, "models/heroDetail.ts", "models/hero.ts")
	second, _ := generate(t, root, "models/heroDetail.ts", "models/hero.ts")

	assert.Equal(t, first.Files, second.Files)
}

func TestEmitter_Converters(t *testing.T) {
	root := fixture.Extract(t, `
-- models/hero.ts --
import * as conv from "../converters/heroConverters";
import { formatPower } from "../converters/power";

@GenerateView({model: "hero", filePath: "views", mapperPath: "mappers"})
export class HeroModel {
    @ViewModelType({type: "string", transformer: {toView: conv.formatName, fromView: conv.parseName}})
    name: string;

    @ViewModelType({type: "string", transformer: {toView: formatPower}})
    power: number;

    plain: boolean;
}
-- converters/heroConverters.ts --
import { Locale } from "../shared/locale";

export async function formatName(value: string, ctx: Locale): Promise<string> {
    return value;
}

export const parseName = (value: string, ctx?: any) => value;
-- converters/power.ts --
export function formatPower(value: number, locale: any): string {
    return "" + value;
}
`)

	w, _ := generate(t, root, "models/hero.ts")

	view := output(t, w, root, "views/hero.ts")
	assert.Contains(t, view, "  public name: string;\n  public power: string;\n  public plain: boolean;\n")
	assert.Contains(t, view, "  constructor(model: any) {\n    this.plain = model.plain;\n  }\n")

	mapper := output(t, w, root, "mappers/heroMapper.ts")
	assert.Contains(t, mapper, `import * as conv from "../converters/heroConverters";
import { formatPower } from "../converters/power";
import { Locale } from "../shared/locale";
import { Hero } from "../views/hero";
import { HeroModel } from "../models/hero";
`)
	assert.Contains(t, mapper, `  public static async toHero(model: HeroModel, context: Locale): Promise<Hero> {
    const result = new Hero(model);
    result.name = await conv.formatName(model.name, context);
    result.power = formatPower(model.power, context);
    return result;
  }`)
	assert.Contains(t, mapper, `  public static fromHero(viewModel: Hero, context?: any): HeroModel {
    const result: any = {};
    result.name = conv.parseName(viewModel.name, context);
    result.power = viewModel.power;
    result.plain = viewModel.plain;
    return result;
  }`)
}

func TestEmitter_Literals(t *testing.T) {
	root := fixture.Extract(t, `
-- models/hero.ts --
@GenerateView({model: "hero", filePath: "views", mapperPath: "mappers"})
export class HeroModel {
    @ViewModelType({type: "string", transformer: {toView: "unknown hero", fromView: 42}})
    power: Power;

    @ViewModelType("string", null, null, {toView: null})
    rank?: number;

    @ViewModelType("string")
    level: number;

    @ViewModelType("string[]")
    ids: number[];
}
`)

	w, _ := generate(t, root, "models/hero.ts")

	view := output(t, w, root, "views/hero.ts")
	assert.Contains(t, view, "  public rank?: string;\n")
	assert.Contains(t, view, "    this.level = model.level != null ? String(model.level) : model.level;\n")
	assert.NotContains(t, view, "this.power")
	assert.Contains(t, view, "  public ids: string[];\n")
	assert.Contains(t, view, `    if (model.ids) {
      this.ids = model.ids.map((item: any) => item != null ? String(item) : item);
    }
`)

	mapper := output(t, w, root, "mappers/heroMapper.ts")
	assert.Contains(t, mapper, "    result.power = \"unknown hero\";\n    result.rank = null;\n")
	assert.Contains(t, mapper, "    result.power = 42;\n    result.rank = viewModel.rank;\n    result.level = viewModel.level;\n")
}

func TestEmitter_NestedAsyncMapper(t *testing.T) {
	root := fixture.Extract(t, `
-- models/hero.ts --
import { PowerModel } from "./power";

@GenerateView({model: "hero", filePath: "views", mapperPath: "mappers"})
export class HeroModel {
    @ViewModelType({type: "Power", filePath: "views"})
    power: PowerModel;

    @ViewModelType("Power[]", "views")
    powers: PowerModel[];
}
-- models/power.ts --
import { describe } from "./describe";

@GenerateView({model: "power", filePath: "views", mapperPath: "mappers"})
export class PowerModel {
    @ViewModelType({type: "string", transformer: {toView: describe}})
    label: number;
}
-- models/describe.ts --
export async function describe(v: number): Promise<string> {
    return "" + v;
}
`)

	w, _ := generate(t, root, "models/hero.ts", "models/power.ts")

	assert.Equal(t, `/*Codegen*/
import { Power } from "./power";

export class Hero {
  public power: Power;
  public powers: Power[];

  constructor(model: any) {
    if (model.power) {
      this.power = new Power(model.power);
    }
    if (model.powers) {
      this.powers = model.powers.map((item: any) => item ? new Power(item) : null);
    }
  }
}
`, output(t, w, root, "views/hero.ts"))

	mapper := output(t, w, root, "mappers/heroMapper.ts")
	assert.Contains(t, mapper, `import { PowerMapper } from "./powerMapper";`)
	assert.Contains(t, mapper, `  public static async toHero(model: HeroModel): Promise<Hero> {
    const result = new Hero(model);
    if (model.power) {
      result.power = await PowerMapper.toPower(model.power);
    }
    if (model.powers) {
      result.powers = await Promise.all(model.powers.map((item: any) => item ? PowerMapper.toPower(item) : item));
    }
    return result;
  }`)
	assert.Contains(t, mapper, `  public static fromHero(viewModel: Hero): HeroModel {
    const result: any = {};
    if (viewModel.power) {
      result.power = PowerMapper.fromPower(viewModel.power);
    }`)

	powerMapper := output(t, w, root, "mappers/powerMapper.ts")
	assert.Contains(t, powerMapper, `import { describe } from "../models/describe";`)
	assert.Contains(t, powerMapper, "    result.label = await describe(model.label);\n")
}

func TestEmitter_MapperOptOut(t *testing.T) {
	root := fixture.Extract(t, `
-- models/hero.ts --
@GenerateView({model: "hero", filePath: "views", mapperPath: "mappers"})
@NeedMapper(false)
export class HeroModel {
    name: string;
}
`)

	w, p := generate(t, root, "models/hero.ts")

	assert.Equal(t, []string{filepath.Join(root, "views", "hero.ts")}, w.Paths())
	require.Len(t, p.Diagnostics.Infos, 1)
	assert.Equal(t, diagnostic.CodeMapperSuppressed, p.Diagnostics.Infos[0].Code)
}

type recordingRenderer struct {
	mapperPaths map[string]string
}

func (r *recordingRenderer) RenderView(f *plan.FileMetadata) (string, error) {
	for _, c := range f.Classes {
		r.mapperPaths[c.Name] = c.MapperImportPath
	}

	return "view", nil
}

func (r *recordingRenderer) RenderMapper(*plan.FileMetadata) (string, error) { return "mapper", nil }

func TestEmitter_SetsMapperImportPathForNestedMappers(t *testing.T) {
	root := fixture.Extract(t, `
-- models/hero.ts --
@GenerateView({model: "hero", filePath: "views", mapperPath: "mappers"})
export class HeroModel {
    @ViewModelType("Power", "views")
    power: PowerModel;
}
-- models/power.ts --
@GenerateView({model: "power", filePath: "views", mapperPath: "mappers"})
export class PowerModel {
    label: string;
}
`)

	p, err := plan.NewPipeline(plan.Options{Root: root}, nil).Run(context.Background(), []string{
		filepath.Join(root, "models", "hero.ts"),
		filepath.Join(root, "models", "power.ts"),
	})
	require.NoError(t, err)

	r := &recordingRenderer{mapperPaths: map[string]string{}}
	_, err = gen.NewEmitter(r, gen.NewMemoryWriter(), nil).Emit(p)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"Hero":  "../mappers/heroMapper",
		"Power": "",
	}, r.mapperPaths)
}

type blankRenderer struct{}

func (blankRenderer) RenderView(*plan.FileMetadata) (string, error)   { return "  \n", nil }
func (blankRenderer) RenderMapper(*plan.FileMetadata) (string, error) { return "", nil }

func TestEmitter_BlankViewIsSkipped(t *testing.T) {
	p := &plan.Plan{Files: []*plan.FileMetadata{{
		Filename: "/out/views/hero.ts",
		Classes:  []*plan.ClassMetadata{plan.NewClassMetadata("Hero")},
	}}}

	w := gen.NewMemoryWriter()
	res, err := gen.NewEmitter(blankRenderer{}, w, nil).Emit(p)
	require.NoError(t, err)

	assert.Empty(t, res.Views)
	assert.Empty(t, w.Files)
	require.Len(t, p.Diagnostics.Infos, 1)
	assert.Equal(t, diagnostic.CodeEmptyView, p.Diagnostics.Infos[0].Code)
}

func TestFSWriter(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, gen.FSWriter{}.WriteFile(filepath.Join(dir, "a", "b", "hero.ts"), []byte("x")))
	assert.Equal(t, "x", fixture.Read(t, dir, "a/b/hero.ts"))
}
