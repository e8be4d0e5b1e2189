// Binary stubgen runs the make:* generator commands. Arguments are a
// key=value payload naming the command and its fields:
//
//	stubgen command=make:middleware name=auth/Example.js
//	stubgen make:middleware name=auth/Example.js
//	stubgen list
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/byte4ever/stubgen/command"
	"github.com/byte4ever/stubgen/config"
	"github.com/byte4ever/stubgen/generator"
	"github.com/byte4ever/stubgen/templating"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// options holds the global flags.
type options struct {
	configPath  string
	root        string
	project     string
	force       bool
	vars        []string
	varFiles    []string
	payloadJSON string
	output      string
	verbose     bool
}

func main() {
	if err := newRootCmd().ExecuteContext(
		context.Background(),
	); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "stubgen [command=make:<kind>] name=<artifact>",
		Short: "Generate project files from stubs",
		Long: `stubgen renders a stub, replaces its placeholder token with the
name derived from the requested artifact and writes the result below the
generator's category directory.

Run "stubgen list" to see the available generators.`,
		Example:       "  stubgen command=make:middleware name=auth/Example.js",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return opts.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), opts, args, cmd.OutOrStdout())
		},
	}

	fl := root.PersistentFlags()
	fl.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fl.StringVar(&opts.root, "root", "", "framework root holding the stubs directory (default: embedded stubs)")
	fl.StringVar(&opts.project, "project", "", "project directory artifacts are written to")
	fl.BoolVar(&opts.force, "force", false, "overwrite existing artifacts")
	fl.StringArrayVar(&opts.vars, "var", nil, "extra replacement in NAME=VALUE format (repeatable)")
	fl.StringArrayVar(&opts.varFiles, "var-file", nil, "file of KEY VALUE replacement lines (repeatable)")
	fl.StringVar(&opts.payloadJSON, "payload-json", "", "payload as a JSON object; arguments override its fields")
	fl.StringVarP(&opts.output, "output", "o", outputText, "output format: text or json")
	fl.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(newListCmd(opts))

	return root
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available generators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(opts, cmd.OutOrStdout())
		},
	}
}

// setup validates flags and installs the logger.
func (opts *options) setup() error {
	if opts.output != outputText && opts.output != outputJSON {
		return fmt.Errorf(
			"unsupported output %q: want %s or %s",
			opts.output, outputText, outputJSON,
		)
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(
		os.Stderr, &slog.HandlerOptions{Level: level},
	)))

	return nil
}

// loadConfig reads the config file and applies flag
// overrides.
func (opts *options) loadConfig() (config.Config, error) {
	const errCtx = "configuring"

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if opts.root != "" {
		cfg.Root = opts.root
	}

	if opts.project != "" {
		cfg.ProjectDir = opts.project
	}

	if opts.force {
		cfg.Force = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	return cfg, nil
}

// replacements merges config vars, variable files and
// --var flags, in increasing precedence.
func (opts *options) replacements(
	cfg config.Config,
) (map[string]string, error) {
	fromFiles, err := templating.LoadVarFiles(opts.varFiles)
	if err != nil {
		return nil, err
	}

	fromFlags, err := templating.ParseVars(opts.vars)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string)

	for _, src := range []map[string]string{
		cfg.Vars, fromFiles, fromFlags,
	} {
		for key, val := range src {
			out[key] = val
		}
	}

	return out, nil
}

// payload builds the invocation payload. A leading
// argument without "=" is taken as the command signature.
func (opts *options) payload(args []string) (command.Payload, error) {
	pl := command.Payload{}

	if opts.payloadJSON != "" {
		fromJSON, err := command.ParsePayloadJSON(
			[]byte(opts.payloadJSON),
		)
		if err != nil {
			return nil, err
		}

		pl = fromJSON
	}

	if len(args) > 0 && !strings.Contains(args[0], "=") {
		args = append(
			[]string{command.Key + "=" + args[0]}, args[1:]...,
		)
	}

	fromArgs, err := command.ParsePayload(args)
	if err != nil {
		return nil, err
	}

	return pl.Merge(fromArgs), nil
}

// registry builds the command registry for cfg.
func (opts *options) registry(
	cfg config.Config,
) (*command.Registry, error) {
	vars, err := opts.replacements(cfg)
	if err != nil {
		return nil, err
	}

	return generator.Registry(cfg.Kinds(), generator.Generator{
		Engine: cfg.Engine(),
		Store:  cfg.Store(),
		Vars:   vars,
		Force:  cfg.Force,
		JSON:   opts.output == outputJSON,
	}), nil
}

func runGenerate(
	ctx context.Context,
	opts *options,
	args []string,
	out io.Writer,
) error {
	const errCtx = "stubgen"

	pl, err := opts.payload(args)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	re, err := opts.registry(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := re.Dispatch(ctx, pl, out); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// listEntry is the JSON shape of one listed command.
type listEntry struct {
	Signature   string `json:"signature"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Integrated  bool   `json:"integrated"`
}

func runList(opts *options, out io.Writer) error {
	const errCtx = "listing commands"

	cfg, err := opts.loadConfig()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	re, err := opts.registry(cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	cmds := re.List()

	if opts.output == outputJSON {
		entries := make([]listEntry, 0, len(cmds))
		for _, cmd := range cmds {
			entries = append(entries, listEntry{
				Signature:   cmd.Signature(),
				Description: cmd.Description(),
				Usage:       cmd.Usage(),
				Integrated:  cmd.Integrated(),
			})
		}

		if err := json.NewEncoder(out).Encode(entries); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, cmd := range cmds {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", //nolint:errcheck // flushed below
			cmd.Signature(), cmd.Description(), cmd.Usage(),
		)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
