// Command enumcatalog loads the example enumeration module into a catalog and
// inspects the result.
//
// Usage:
//
//	enumcatalog [options] list
//	enumcatalog [options] describe TYPE
//	enumcatalog [options] parse "TYPE: VALUE"
//	enumcatalog [options] format TYPE INTEGER
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gburgyan/go-enumparam"
	"github.com/gburgyan/go-enumparam/catalogstore"
	"github.com/gburgyan/go-enumparam/examples/revit"
)

// ExitError carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type invocation struct {
	config  Config
	command string
	args    []string
}

// parseArgs resolves the configuration and splits off the subcommand. It
// reports true when the program should exit without doing anything.
func parseArgs(args []string, output io.Writer) (*invocation, bool, error) {
	flagSet := flag.NewFlagSet("enumcatalog", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
enumcatalog - inspect the enumeration parameter catalog.

Usage:
  enumcatalog [options] list
  enumcatalog [options] describe TYPE
  enumcatalog [options] parse "TYPE: VALUE"
  enumcatalog [options] format TYPE INTEGER

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "enumcatalog.yaml", "Path to the YAML config file.")
	driverFlag := flagSet.String("driver", "", "Catalog database driver: 'sqlite', 'postgres' or 'mysql'.")
	dsnFlag := flagSet.String("dsn", "", "Catalog database DSN. Empty with sqlite is in-memory.")
	queryLogFlag := flagSet.Bool("query-log", false, "Log catalog SQL queries.")
	logLevelFlag := flagSet.String("log-level", "", "Logging level: 'debug', 'info', 'warn', 'error'.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format: 'text' or 'json'.")
	inlineFlag := flagSet.Int("inline-limit", 0, "Value count below which describe shows an inline menu.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg, err := loadYAML(*configFlag, defaultConfig())
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	cfg = applyEnv(cfg)
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "driver":
			cfg.Catalog.Driver = strings.TrimSpace(*driverFlag)
		case "dsn":
			cfg.Catalog.DSN = strings.TrimSpace(*dsnFlag)
		case "query-log":
			cfg.Catalog.QueryLog = *queryLogFlag
		case "log-level":
			cfg.Log.Level = strings.ToLower(strings.TrimSpace(*logLevelFlag))
		case "log-format":
			cfg.Log.Format = strings.ToLower(strings.TrimSpace(*logFormatFlag))
		case "inline-limit":
			cfg.InlineLimit = *inlineFlag
		}
	})
	if err := cfg.validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	return &invocation{
		config:  cfg,
		command: flagSet.Arg(0),
		args:    flagSet.Args()[1:],
	}, false, nil
}

func newLogger(w io.Writer, cfg LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	inv, shouldExit, err := parseArgs(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := newLogger(errW, inv.config.Log)
	store, err := catalogstore.Open(ctx, inv.config.Catalog)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer func() { _ = store.Close() }()

	registry := enumparam.NewRegistry(store, enumparam.WithLogger(logger))
	if err := registry.Load(ctx, revit.Module()); err != nil {
		if !errors.Is(err, enumparam.ErrMissingMetadata) {
			return err
		}
		logger.Warn("Some parameter types were left out of the catalog.", "error", err)
	}

	switch inv.command {
	case "list":
		return listCatalog(ctx, outW, registry, store)
	case "describe":
		if len(inv.args) != 1 {
			return &ExitError{Code: 2, Message: "describe takes one type name"}
		}
		return describeType(outW, registry, inv.args[0], inv.config.InlineLimit)
	case "parse":
		if len(inv.args) != 1 {
			return &ExitError{Code: 2, Message: "parse takes one quoted value reference"}
		}
		return parseReference(outW, registry, inv.args[0])
	case "format":
		if len(inv.args) != 2 {
			return &ExitError{Code: 2, Message: "format takes a type name and an integer"}
		}
		return formatInteger(outW, registry, inv.args[0], inv.args[1])
	}
	return &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", inv.command)}
}

func listCatalog(ctx context.Context, outW io.Writer, registry *enumparam.Registry, store *catalogstore.Store) error {
	tw := tabwriter.NewWriter(outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tNATIVE\tPARAMETER\tSYNTHESIZED")
	for _, a := range registry.Associations() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", a.Wrapper.Name(), a.Wrapper.Native(), a.Param, a.Param.Synthesized())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	proxies, err := store.Proxies(ctx)
	if err != nil {
		return fmt.Errorf("listing catalog: %w", err)
	}
	fmt.Fprintln(outW)
	tw = tabwriter.NewWriter(outW, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tNICKNAME\tEXPOSURE\tRUN")
	for _, p := range proxies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.NickName, p.Exposure, p.RunID)
	}
	return tw.Flush()
}

func describeType(outW io.Writer, registry *enumparam.Registry, name string, inlineLimit int) error {
	t, ok := registry.TypeByName(name)
	if !ok {
		return &ExitError{Code: 1, Message: fmt.Sprintf("unknown type %q", name)}
	}
	entries := t.NamedValues().Entries()
	layout := "list"
	if len(entries) < inlineLimit {
		layout = "inline"
	}

	fmt.Fprintf(outW, "%s (%s)\n%s\npicker: %s\n", t.Name(), t.Native(), t.Description(), layout)
	for _, e := range entries {
		fmt.Fprintf(outW, "  %d\t%s\n", e.Value, e.Name)
	}
	return nil
}

func parseReference(outW io.Writer, registry *enumparam.Registry, ref string) error {
	v, err := registry.ParseQualified(ref)
	if err != nil {
		var eErr *enumparam.Error
		if errors.As(err, &eErr) {
			b, _ := json.Marshal(eErr)
			return &ExitError{Code: 1, Message: string(b)}
		}
		return err
	}
	if v == nil {
		fmt.Fprintln(outW, enumparam.NullText)
		return nil
	}
	fmt.Fprintf(outW, "%s = %d\n", enumparam.Describe(v), v.Int())
	return nil
}

func formatInteger(outW io.Writer, registry *enumparam.Registry, name, text string) error {
	t, ok := registry.TypeByName(name)
	if !ok {
		return &ExitError{Code: 1, Message: fmt.Sprintf("unknown type %q", name)}
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return &ExitError{Code: 2, Message: fmt.Sprintf("%q is not an integer", text)}
	}
	v, err := enumparam.Parse(t, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(outW, "%q\n", enumparam.Format(t, v))
	return nil
}
