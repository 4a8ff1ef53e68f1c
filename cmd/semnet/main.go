// Command semnet loads a relation of the UMLS Semantic Network and prints a
// summary of the resulting graph and of the semantic groups.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/sanjeeku/ddbiolib/graph"
	"github.com/sanjeeku/ddbiolib/umls"
)

// passwordEnv supplies the database password when the config file has none.
const passwordEnv = "UMLS_PASSWORD"

// ExitError carries the process exit code for a failed run.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

type flags struct {
	config     string
	relation   string
	groups     string
	undirected bool
	noRoot     bool
	logFormat  string
	logLevel   string
}

func parseFlags(args []string, output io.Writer) (*flags, bool, error) {
	fs := flag.NewFlagSet("semnet", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
semnet - load a UMLS Semantic Network relation as a graph.

Usage:
  semnet [options]

The database password may be given in the `+passwordEnv+` environment variable.

Options:
`)
		fs.PrintDefaults()
	}

	f := &flags{}
	fs.StringVar(&f.config, "config", "", "Path to a YAML config file. Defaults to a local MySQL database.")
	fs.StringVar(&f.relation, "relation", umls.DefaultRelation, "Relation label to load.")
	fs.StringVar(&f.groups, "groups", "", "Path to the semantic groups file. Overrides groups_path.")
	fs.BoolVar(&f.undirected, "undirected", false, "Build an undirected graph.")
	fs.BoolVar(&f.noRoot, "no-root", false, "Do not join multiple roots under "+umls.Root+".")
	fs.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.logLevel, "log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if fs.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected argument %q", fs.Arg(0))}
	}
	f.logFormat = strings.ToLower(f.logFormat)
	if f.logFormat != "text" && f.logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}
	f.logLevel = strings.ToLower(f.logLevel)
	switch f.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	if f.relation == "" {
		return nil, false, &ExitError{Code: 2, Message: "relation must not be empty"}
	}
	return f, false, nil
}

func newLogger(w io.Writer, format, level string) *slog.Logger {
	var lvl slog.Level
	// Values are validated by parseFlags.
	_ = lvl.UnmarshalText([]byte(level))
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func loadConfig(f *flags) (umls.Config, error) {
	cfg := umls.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = umls.LoadConfig(f.config); err != nil {
			return umls.Config{}, err
		}
	}
	if f.groups != "" {
		cfg.GroupsPath = f.groups
	}
	if cfg.Password == "" {
		cfg.Password = os.Getenv(passwordEnv)
	}
	return cfg, cfg.Validate()
}

// run parses args, loads the requested relation and writes the summary to
// out. Logs go to errW.
func run(ctx context.Context, out, errW io.Writer, args []string) error {
	f, exit, err := parseFlags(args, out)
	if err != nil || exit {
		return err
	}
	logger := newLogger(errW, f.logFormat, f.logLevel)

	cfg, err := loadConfig(f)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	logger.Debug("config loaded", "config", cfg.Redacted())

	sn, err := umls.New(ctx, cfg, umls.WithLogger(logger))
	if err != nil {
		return err
	}
	defer sn.Close()

	var opts []umls.GraphOption
	if f.undirected {
		opts = append(opts, umls.Undirected())
	}
	if f.noRoot {
		opts = append(opts, umls.WithoutRoot())
	}
	g, err := sn.Graph(ctx, f.relation, opts...)
	if err != nil {
		return err
	}
	printGraph(out, f.relation, g)
	printGroups(out, sn.Groups())
	return nil
}

func printGraph(w io.Writer, relation string, g *graph.Graph) {
	fmt.Fprintf(w, "relation: %s\n", relation)
	fmt.Fprintf(w, "directed: %t\n", g.Directed())
	fmt.Fprintf(w, "nodes: %d\n", g.Len())
	fmt.Fprintf(w, "edges: %d\n", g.Size())
	fmt.Fprintf(w, "roots: %s\n", strings.Join(g.Roots(), ", "))
	if g.HasNode(umls.Root) {
		fmt.Fprintf(w, "%s children: %s\n", umls.Root, strings.Join(g.Successors(umls.Root), ", "))
	}
}

func printGroups(w io.Writer, groups *umls.Groups) {
	fmt.Fprintf(w, "groups: %d\n", len(groups.Abbreviations))
	for _, abbrv := range slices.Sorted(maps.Keys(groups.Abbreviations)) {
		name := groups.Abbreviations[abbrv]
		fmt.Fprintf(w, "  %s\t%s (%d subgroups)\n", abbrv, name, len(groups.Subgroups[name]))
	}
}
