// Package main provides the CLI entrypoint for view-generator.
//
// view-generator reads TypeScript model classes annotated with view
// decorators and generates:
//   - View classes with a copying constructor
//   - Mapper classes converting models to views and back
//   - Minimal imports for both
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/joho/godotenv"

	"view-generator/internal/cmd"
	"view-generator/internal/log"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	jsonPaths, yamlPaths, tomlPaths := cmd.ConfigCandidatePaths(cmd.FindUserConfig(os.Args[1:]))

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("view-generator"),
		kong.Description("Generate TypeScript view models and mappers from annotated model classes"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}

	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctx.Bind(logger, &cli.Global)
	ctx.BindTo(runCtx, (*context.Context)(nil))
	ctx.BindTo(os.Stdout, (*io.Writer)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
