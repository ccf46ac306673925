// Command catalyst translates scripts written in the supported Python
// subset into standalone C++ translation units.
//
//	catalyst build <source.py> <outdir>   translate one script
//	catalyst repl                         interactive session
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/pycatalyst/catalyst/internal/buildcache"
	"github.com/pycatalyst/catalyst/internal/config"
	"github.com/pycatalyst/catalyst/internal/diagnostics"
	"github.com/pycatalyst/catalyst/internal/lexer"
	"github.com/pycatalyst/catalyst/internal/parser"
	"github.com/pycatalyst/catalyst/internal/pipeline"
	"github.com/pycatalyst/catalyst/internal/repl"
	"github.com/pycatalyst/catalyst/internal/translator"
	"github.com/pycatalyst/catalyst/internal/utils"
)

const usageText = `usage: catalyst <command> [flags]

commands:
  build <source.py> <outdir>   translate a script into <outdir>/<output>.cpp
  repl                         start an interactive session

flags (both commands):
  -config <path>   project configuration file (default: catalyst.yaml if present)
  -no-color        disable colored diagnostics

flags (build):
  -cache <path>    sqlite translation cache (overrides the config file)
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}
	switch args[0] {
	case "build":
		return runBuild(args[1:])
	case "repl":
		return runRepl(args[1:])
	case "help", "-h", "--help":
		fmt.Print(usageText)
		return 0
	}
	fmt.Fprintf(os.Stderr, "catalyst: unknown command %q\n\n", args[0])
	fmt.Fprint(os.Stderr, usageText)
	return 2
}

// loadConfig resolves the effective configuration: an explicit -config
// path must exist; otherwise a catalyst.yaml in the working directory is
// picked up when present.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat("catalyst.yaml"); err == nil {
		return config.Load("catalyst.yaml")
	}
	return config.Default(), nil
}

func stderrColor(noColor bool) bool {
	return !noColor && isatty.IsTerminal(os.Stderr.Fd())
}

func runBuild(args []string) int {
	flags := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := flags.String("config", "", "project configuration file")
	cachePath := flags.String("cache", "", "sqlite translation cache")
	noColor := flags.Bool("no-color", false, "disable colored diagnostics")
	flags.Parse(args)

	if flags.NArg() != 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}
	srcPath, outDir := flags.Arg(0), flags.Arg(1)
	color := stderrColor(*noColor)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalyst: %v\n", err)
		return 1
	}
	if *cachePath != "" {
		cfg.Cache = *cachePath
	}

	if !config.IsSourceFile(srcPath) {
		fmt.Fprintf(os.Stderr, "catalyst: %s is not a %s file\n", srcPath, config.SourceFileExt)
		return 1
	}
	source, err := os.ReadFile(srcPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalyst: %v\n", err)
		return 1
	}

	var cache *buildcache.Cache
	if cfg.Cache != "" {
		cache, err = buildcache.Open(cfg.Cache)
		if err != nil {
			fmt.Fprintf(os.Stderr, "catalyst: opening cache: %v\n", err)
			return 1
		}
		defer cache.Close()
	}

	output, ok := translate(srcPath, string(source), cfg, cache, color)
	if !ok {
		return 1
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "catalyst: %v\n", err)
		return 1
	}
	outPath := utils.OutputPath(outDir, cfg.Output)
	if err := utils.WriteFileAtomic(outPath, []byte(output), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "catalyst: writing %s: %v\n", outPath, err)
		return 1
	}
	return 0
}

// translate runs the pipeline over source, consulting the cache first.
// Cache failures degrade to a plain translation; they never fail a build
// on their own.
func translate(srcPath, source string, cfg *config.Config, cache *buildcache.Cache, color bool) (string, bool) {
	var digest string
	if cache != nil {
		digest = buildcache.Digest(source, cfg)
		if output, hit, err := cache.Get(digest); err == nil && hit {
			return output, true
		}
	}

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&translator.TranslatorProcessor{},
		&translator.RenderProcessor{},
	)
	ctx := p.Run(&pipeline.Context{
		FilePath:   srcPath,
		SourceCode: source,
		Config:     cfg,
	})
	if ctx.Failed() {
		diagnostics.Format(os.Stderr, ctx.Errors, color)
		return "", false
	}

	if cache != nil {
		if err := cache.Put(digest, ctx.Output); err != nil {
			fmt.Fprintf(os.Stderr, "catalyst: warning: cache write failed: %v\n", err)
		}
	}
	return ctx.Output, true
}

func runRepl(args []string) int {
	flags := flag.NewFlagSet("repl", flag.ExitOnError)
	configPath := flags.String("config", "", "project configuration file")
	noColor := flags.Bool("no-color", false, "disable colored diagnostics")
	flags.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalyst: %v\n", err)
		return 1
	}

	session := repl.NewSession(cfg, os.Stdout, os.Stderr, stderrColor(*noColor))
	if err := session.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "catalyst: %v\n", err)
		return 1
	}
	return 0
}
