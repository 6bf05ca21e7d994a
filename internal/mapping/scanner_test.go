package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"view-generator/internal/analyze"
	"view-generator/internal/mapping"
)

func scan(t *testing.T, src string) []mapping.ClassDirectives {
	t.Helper()

	f, err := analyze.NewParser().Parse("/src/models/model.ts", []byte(src))
	require.NoError(t, err)

	classes, err := mapping.NewScanner().Scan(f)
	require.NoError(t, err)

	return classes
}

func TestScanner_HeroDetail(t *testing.T) {
	classes := scan(t, `
@GenerateView({model: "heroDetailViewModel", filePath: "../viewModels", mapperPath: "../mappers"})
export class HeroDetail {
    @IgnoreViewModel()
    id?: number;
    @ViewModelName("detail")
    data: string;
    plain: boolean;
}

export class NotAView {
    @IgnoreViewModel() x: string;
}
`)

	require.Len(t, classes, 1)
	cd := classes[0]
	assert.Equal(t, "HeroDetail", cd.Class.Name)
	assert.Nil(t, cd.NeedMapper)
	require.Len(t, cd.Views, 1)
	assert.Equal(t, mapping.GenerateView{
		Model:      "heroDetailViewModel",
		FilePath:   "../viewModels",
		MapperPath: "../mappers",
	}, cd.Views[0])

	require.Len(t, cd.Fields, 3)
	assert.Equal(t, []mapping.Directive{mapping.Ignore{}}, cd.Fields[0].Directives)
	assert.Equal(t, []mapping.Directive{mapping.Rename{Name: "detail"}}, cd.Fields[1].Directives)
	assert.Empty(t, cd.Fields[2].Directives)
}

func TestScanner_MultipleViewsAndScopes(t *testing.T) {
	classes := scan(t, `
@GenerateView({model: "heroViewModel", filePath: "../views"})
@GenerateView({model: "heroSummary", filePath: "../views"})
@NeedMapper()
export class Hero {
    @IgnoreViewModel("heroSummary")
    @ViewModelName("title", "heroViewModel")
    name: string;
}
`)

	require.Len(t, classes, 1)
	cd := classes[0]
	require.Len(t, cd.Views, 2)
	assert.Equal(t, "heroSummary", cd.Views[1].Model)
	require.NotNil(t, cd.NeedMapper)
	assert.True(t, *cd.NeedMapper)

	field := cd.Fields[0]
	assert.Equal(t, []mapping.Directive{
		mapping.Ignore{Model: "heroSummary"},
		mapping.Rename{Name: "title", Model: "heroViewModel"},
	}, field.Directives)
	assert.Equal(t, []string{"heroSummary", "heroViewModel"}, field.Scopes())
}

func TestScanner_NeedMapperOptOut(t *testing.T) {
	classes := scan(t, `
@GenerateView({model: "a", filePath: "."})
@NeedMapper(false)
@NeedMapper()
class A {}
`)

	require.Len(t, classes, 1)
	require.NotNil(t, classes[0].NeedMapper)
	assert.False(t, *classes[0].NeedMapper)
}

func TestScanner_RetypeForms(t *testing.T) {
	classes := scan(t, `
import * as helpers from "../helpers";

@GenerateView({model: "heroViewModel", filePath: "../views", mapperPath: "../mappers"})
export class Hero {
    @ViewModelType({type: "string", transformer: {toView: helpers.format, fromView: {function: "helpers.parse"}}})
    power: number;

    @ViewModelType("PowerView", "../views", "heroViewModel")
    detail: Power;

    @ViewModelType("string", null, null, {toView: "unknown"})
    label: Label;

    @ViewModelType({type: "number", transformer: {toView: 0, fromView: undefined}})
    count: string;

    @ViewModelType({type: "number", transformer: {toView: null}})
    other: string;
}
`)

	require.Len(t, classes, 1)
	fields := classes[0].Fields
	require.Len(t, fields, 5)

	power := fields[0].Directives[0].(mapping.Retype)
	assert.Equal(t, "string", power.Type)
	require.NotNil(t, power.Transformer)
	assert.Equal(t, "helpers.format", power.Transformer.ToView.Text)
	assert.Equal(t, "helpers", power.Transformer.ToView.Root())
	assert.Equal(t, "format", power.Transformer.ToView.Name())
	assert.Equal(t, "helpers.parse", power.Transformer.FromView.Text)

	detail := fields[1].Directives[0].(mapping.Retype)
	assert.Equal(t, mapping.Retype{Type: "PowerView", FilePath: "../views", Model: "heroViewModel"}, detail)
	assert.Equal(t, "heroViewModel", detail.Scope())

	label := fields[2].Directives[0].(mapping.Retype)
	assert.Empty(t, label.FilePath)
	assert.Empty(t, label.Model)
	require.NotNil(t, label.Transformer)
	assert.Equal(t, "unknown", label.Transformer.ToView.Text)
	assert.Nil(t, label.Transformer.FromView)

	count := fields[3].Directives[0].(mapping.Retype)
	require.NotNil(t, count.Transformer)
	assert.Equal(t, "0", count.Transformer.ToView.Text)
	assert.Equal(t, "undefined", count.Transformer.FromView.Text)

	other := fields[4].Directives[0].(mapping.Retype)
	require.NotNil(t, other.Transformer)
	assert.Equal(t, "null", other.Transformer.ToView.Text)
}

func TestScanner_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "missing model",
			src:  `@GenerateView({filePath: "."}) class A {}`,
		},
		{
			name: "missing filePath",
			src:  `@GenerateView({model: "a"}) class A {}`,
		},
		{
			name: "rename without name",
			src:  "@GenerateView({model: \"a\", filePath: \".\"}) class A {\n @ViewModelName() x: string\n}",
		},
		{
			name: "retype without type",
			src:  "@GenerateView({model: \"a\", filePath: \".\"}) class A {\n @ViewModelType({filePath: \".\"}) x: string\n}",
		},
		{
			name: "too many ignore arguments",
			src:  "@GenerateView({model: \"a\", filePath: \".\"}) class A {\n @IgnoreViewModel(\"a\", \"b\") x: string\n}",
		},
		{
			name: "bad function reference",
			src:  "@GenerateView({model: \"a\", filePath: \".\"}) class A {\n @ViewModelType({type: \"string\", transformer: {toView: {fn: \"x\"}}}) x: string\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := analyze.NewParser().Parse("/src/a.ts", []byte(tt.src))
			require.NoError(t, err)

			_, err = mapping.NewScanner().Scan(f)
			require.Error(t, err)

			var derr *mapping.DirectiveError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, "/src/a.ts", derr.Path)
			assert.NotZero(t, derr.Line)
		})
	}
}
