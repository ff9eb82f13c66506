package main

import (
	"fmt"
	"log/slog"

	"github.com/aleksaelezovic/xml2rdf/internal/config"
	"github.com/aleksaelezovic/xml2rdf/pkg/sink"
	"github.com/aleksaelezovic/xml2rdf/pkg/store"
	"github.com/aleksaelezovic/xml2rdf/pkg/xml2rdf"
	"github.com/spf13/cobra"
)

type convertFlags struct {
	configFile string
	namespace  string
	inputs     []string
	outputFile string
	storeDir   string
	strict     bool
	verbose    bool
}

func newConvertCmd() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert [--xml] <file.xml>...",
		Short: "Convert XML files to N-Triples or into a graph store",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags, args)
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configFile, "config", "", "YAML configuration file")
	f.StringVarP(&flags.namespace, "namespace", "n", "", "namespace for minted node identifiers (default "+config.Default().Namespace+")")
	f.StringArrayVarP(&flags.inputs, "xml", "x", nil, "XML input file; repeat the flag or list further files as arguments")
	f.StringVarP(&flags.outputFile, "output-file", "o", "", "append N-Triples to this file instead of stdout")
	f.StringVar(&flags.storeDir, "store", "", "insert triples into the graph store in this directory")
	f.BoolVar(&flags.strict, "strict", false, "fail on malformed XML instead of skipping the rest of the document")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug output")

	return cmd
}

// resolveConfig layers defaults, the config file, the environment and the
// flags that were set explicitly. Positional arguments are further inputs.
func resolveConfig(cmd *cobra.Command, flags convertFlags, args []string) (config.Config, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.LoadFile(flags.configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if err := config.LoadDotEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}

	f := cmd.Flags()
	if f.Changed("namespace") {
		cfg.Namespace = flags.namespace
	}
	if f.Changed("xml") || len(args) > 0 {
		cfg.Inputs = append(append([]string(nil), flags.inputs...), args...)
	}
	if f.Changed("output-file") {
		cfg.OutputFile = flags.outputFile
	}
	if f.Changed("store") {
		cfg.StoreDir = flags.storeDir
	}
	if f.Changed("strict") {
		cfg.Strict = flags.strict
	}
	if flags.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runConvert(cmd *cobra.Command, cfg config.Config) (err error) {
	logger := newLogger(cmd.ErrOrStderr(), cfg.Level())

	var out sink.Sink
	var graph *store.TripleStore
	switch {
	case cfg.StoreDir != "":
		var openErr error
		graph, openErr = sink.OpenGraph(cfg.StoreDir)
		if openErr != nil {
			return fmt.Errorf("failed to open store: %w", openErr)
		}
		defer func() {
			if closeErr := graph.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		out = sink.NewGraphSink(graph)
	case cfg.OutputFile != "":
		text, openErr := sink.OpenFile(cfg.OutputFile)
		if openErr != nil {
			return openErr
		}
		defer func() {
			if closeErr := text.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		out = text
	default:
		text := sink.NewTextSink(cmd.OutOrStdout())
		defer func() {
			if closeErr := text.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()
		out = text
	}

	counting := sink.NewCounting(out)
	converter := xml2rdf.NewConverter(counting, xml2rdf.Options{
		Namespace: cfg.Namespace,
		Logger:    logger,
		Strict:    cfg.Strict,
	})

	stats, err := converter.ConvertFiles(cmd.Context(), cfg.Inputs)
	logger.Info("conversion finished",
		slog.Int("documents", stats.Documents),
		slog.Int("elements", stats.Elements),
		slog.Int("attributes", stats.Attributes),
		slog.Int("empty_attributes", stats.EmptyAttributes),
		slog.Int64("triples", counting.Count()))

	if err == nil && graph != nil {
		err = graph.Sync()
	}
	return err
}
