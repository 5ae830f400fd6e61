package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/suparena/projector"
	"github.com/suparena/projector/mapper"
	"github.com/suparena/projector/model"
	"github.com/suparena/projector/source/ddb"
)

type options struct {
	modelPath string
	typeName  string
	selection string
	input     string
	key       string
	useDDB    bool
	envFile   string
	naming    string
	format    string
	fallback  bool
	verbose   bool
	version   bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("projector", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.modelPath, "model", "", "Path to the YAML model document")
	fs.StringVar(&opts.typeName, "type", "", "Schema type to project")
	fs.StringVar(&opts.selection, "select", "", "Comma-separated properties to select; paths use '/' (e.g. Name,Home/City)")
	fs.StringVar(&opts.input, "input", "", "JSON file holding the instance ('-' for stdin)")
	fs.StringVar(&opts.key, "key", "", "Key of the instance to fetch from DynamoDB")
	fs.BoolVar(&opts.useDDB, "ddb", false, "Fetch the instance from DynamoDB (AWS_* environment variables)")
	fs.StringVar(&opts.envFile, "env", ".env", "Optional .env file with AWS settings")
	fs.StringVar(&opts.naming, "naming", "identity", "Output key naming: identity, lower, camel, snake")
	fs.StringVar(&opts.format, "format", "json", "Output format: json or yaml")
	fs.BoolVar(&opts.fallback, "fallback", false, "Fill unselected declared properties from the instance")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&opts.version, "version", false, "Show version information")
	fs.BoolVar(&opts.version, "v", false, "Show version information (short)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if opts.version {
		info := projector.GetVersionInfo()
		fmt.Fprintf(stdout, "Projector version %s\n", info.Version)
		fmt.Fprintf(stdout, "Git commit: %s\n", info.GitCommit)
		fmt.Fprintf(stdout, "Build date: %s\n", info.BuildDate)
		fmt.Fprintf(stdout, "Go version: %s\n", info.GoVersion)
		return 0
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := project(ctx, opts, stdout, logger); err != nil {
		logger.Error("projection failed", "error", err)
		return 1
	}
	return 0
}

func project(ctx context.Context, opts options, stdout io.Writer, logger *slog.Logger) error {
	if opts.modelPath == "" || opts.typeName == "" {
		return fmt.Errorf("-model and -type are required")
	}
	if opts.useDDB == (opts.input != "") {
		return fmt.Errorf("exactly one of -input or -ddb is required")
	}

	naming, ok := mapper.ByName(opts.naming)
	if !ok {
		return fmt.Errorf("unknown naming policy %q", opts.naming)
	}

	m, err := model.LoadFile(opts.modelPath)
	if err != nil {
		return err
	}
	logger.Debug("model loaded", "path", opts.modelPath, "types", len(m.Types()))

	projectorOpts := []projector.Option{
		projector.WithMapperProvider(mapper.Constant(naming)),
		projector.WithFallback(opts.fallback),
		projector.WithLogger(logger),
	}
	selection := splitSelection(opts.selection)

	var out map[string]any
	if opts.useDDB {
		src, err := newDynamoDBSource(ctx, opts.envFile, logger)
		if err != nil {
			return err
		}
		p, err := projector.New(m, src, projectorOpts...)
		if err != nil {
			return err
		}
		if out, err = p.Project(ctx, opts.typeName, opts.key, selection...); err != nil {
			return err
		}
	} else {
		instance, err := readInstance(opts.input)
		if err != nil {
			return err
		}
		p, err := projector.New(m, nil, projectorOpts...)
		if err != nil {
			return err
		}
		if out, err = p.ProjectInstance(opts.typeName, instance, selection...); err != nil {
			return err
		}
	}

	return write(stdout, opts.format, out)
}

func newDynamoDBSource(ctx context.Context, envFile string, logger *slog.Logger) (*ddb.Source, error) {
	if err := godotenv.Load(envFile); err != nil {
		logger.Debug("no .env file found, proceeding with environment variables", "path", envFile)
	}

	table := os.Getenv("AWS_DDB_TABLE")
	if table == "" {
		return nil, fmt.Errorf("AWS_DDB_TABLE is not set")
	}

	src, err := ddb.NewWithCredentials(ctx,
		os.Getenv("AWS_ACCESS_KEY"),
		os.Getenv("AWS_SECRET_KEY"),
		os.Getenv("AWS_REGION"),
		table,
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("DynamoDB source initialized", "table", table, "region", os.Getenv("AWS_REGION"))
	return src, nil
}

func readInstance(path string) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read instance %s: %w", path, err)
	}

	var instance map[string]any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("failed to parse instance JSON: %w", err)
	}
	return instance, nil
}

func splitSelection(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func write(w io.Writer, format string, out map[string]any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
