package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/PilPara/Assembler/assembler"
	"github.com/PilPara/Assembler/config"
	"github.com/PilPara/Assembler/output"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: platform config dir)")
		verbose     = flag.Bool("verbose", false, "Print a per-file OK/FAIL summary line to stderr")
	)
	flag.BoolVar(verbose, "v", false, "Shorthand for -verbose")

	flag.Parse()

	if *showVersion {
		fmt.Printf("passembler %s (%s)\n", Version, Commit)
		os.Exit(0)
	}
	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	bases := flag.Args()
	if len(bases) == 0 {
		printHelp()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("passembler: loading config: %v", err)
	}

	for _, base := range bases {
		ok := assembleOne(base, cfg)
		if *verbose {
			status := "OK"
			if !ok {
				status = "FAIL"
			}
			fmt.Fprintf(os.Stderr, "%s: %s\n", base, status)
		}
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// assembleOne runs the full pipeline for one base name and reports whether
// it produced output with no errors. Each file is independent: one file's
// failure never stops the others (spec.md §6's CLI contract).
func assembleOne(base string, cfg *config.Config) bool {
	srcPath := base + ".as"
	raw, err := os.ReadFile(srcPath) // #nosec G304 -- base is an operator-supplied CLI argument
	if err != nil {
		fmt.Fprintf(os.Stderr, "passembler: %s: %v\n", srcPath, err)
		return false
	}

	lines := strings.Split(strings.ReplaceAll(string(raw), "\r\n", "\n"), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	ctx := assembler.NewContext(srcPath, uint32(cfg.Limits.InitialIC), cfg.ParserLimits())
	ctx.Assemble(lines, uint32(cfg.Limits.InitialIC))

	if ctx.PreprocessOK {
		amPath := filepath.Join(cfg.Output.Directory, base+cfg.Output.IntermediateExt)
		if err := output.WriteIntermediate(amPath, ctx.Preprocessed); err != nil {
			fmt.Fprintf(os.Stderr, "passembler: %s: %v\n", amPath, err)
		}
	}

	if ctx.Errors.HasErrors() {
		var sb strings.Builder
		ctx.Errors.Report(&sb, srcPath)
		fmt.Fprint(os.Stderr, sb.String())
		return false
	}

	if err := writeOutputs(base, ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "passembler: %s: %v\n", base, err)
		return false
	}
	return true
}

func writeOutputs(base string, ctx *assembler.Context, cfg *config.Config) error {
	dir := cfg.Output.Directory
	objPath := filepath.Join(dir, base+cfg.Output.ObjectExt)
	if err := output.WriteObject(objPath, ctx.Code, ctx.Data, uint32(cfg.Limits.InitialIC)); err != nil {
		return err
	}

	if len(ctx.Entries) > 0 {
		entPath := filepath.Join(dir, base+cfg.Output.EntryExt)
		if err := output.WriteEntries(entPath, ctx.Entries); err != nil {
			return err
		}
	}
	if len(ctx.Externs) > 0 {
		extPath := filepath.Join(dir, base+cfg.Output.ExternExt)
		if err := output.WriteExterns(extPath, ctx.Externs); err != nil {
			return err
		}
	}
	return nil
}

func printHelp() {
	fmt.Println("passembler - two-pass assembler for the 24-bit core ISA")
	fmt.Println()
	fmt.Println("Usage: passembler [flags] <base1> [<base2> ...]")
	fmt.Println()
	fmt.Println("Each <base> names a <base>.as source file; on success it produces")
	fmt.Println("<base>.ob, and <base>.ent/<base>.ext when the file declares any")
	fmt.Println("entries or external references.")
	fmt.Println()
	flag.PrintDefaults()
}
