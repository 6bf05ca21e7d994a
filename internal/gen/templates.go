package gen

import "text/template"

var viewTemplate = template.Must(template.New("view").Parse(`{{.Header}}
{{range .Imports}}import {{.Type}} from "{{.Path}}";
{{end}}{{range .Classes}}
export class {{.Name}} {
{{range .Fields}}  public {{.Name}}{{if .Optional}}?{{end}}: {{.Type}};
{{end}}
  constructor(model: any) {
{{range .Assignments}}    {{.}}
{{end}}  }
}
{{end}}`))

var mapperTemplate = template.Must(template.New("mapper").Parse(`{{.Header}}
{{range .Imports}}import {{.Type}} from "{{.Path}}";
{{end}}{{range .Classes}}
export class {{.Name}} {
{{range $i, $m := .Methods}}{{if $i}}
{{end}}  public static {{if .Async}}async {{end}}{{.Name}}({{.Param}}{{if .Context}}, {{.Context}}{{end}}): {{if .Async}}Promise<{{.Return}}>{{else}}{{.Return}}{{end}} {
    {{.Init}}
{{range .Statements}}    {{.}}
{{end}}    return result;
  }
{{end}}}
{{end}}`))
