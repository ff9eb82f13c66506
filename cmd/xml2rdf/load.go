package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aleksaelezovic/xml2rdf/internal/ntriples"
	"github.com/aleksaelezovic/xml2rdf/pkg/sink"
	"github.com/spf13/cobra"
)

func newLoadCmd() *cobra.Command {
	var storeDir string

	cmd := &cobra.Command{
		Use:   "load <file.nt>...",
		Short: "Load N-Triples files into a graph store and print its triple count",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if storeDir == "" {
				return errors.New("--store is required")
			}

			graph, err := sink.OpenGraph(storeDir)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer func() {
				if closeErr := graph.Close(); closeErr != nil && err == nil {
					err = closeErr
				}
			}()

			for _, path := range args {
				data, err := os.ReadFile(path) // #nosec G304 - input paths are chosen by the user
				if err != nil {
					return err
				}
				triples, err := ntriples.NewParser(string(data)).Parse()
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				// one transaction per file
				if err := graph.InsertTriplesBatch(triples); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}

			if err := graph.Sync(); err != nil {
				return err
			}

			count, err := graph.Count()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), count)
			return nil
		},
	}

	cmd.Flags().StringVar(&storeDir, "store", "", "graph store directory")
	return cmd
}
