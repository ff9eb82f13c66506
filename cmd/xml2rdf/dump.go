package main

import (
	"errors"
	"fmt"

	"github.com/aleksaelezovic/xml2rdf/pkg/sink"
	"github.com/aleksaelezovic/xml2rdf/pkg/store"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	var storeDir, outputFile string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Export a graph store as N-Triples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if storeDir == "" {
				return errors.New("--store is required")
			}

			graph, err := sink.OpenGraph(storeDir)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer graph.Close()

			var out *sink.TextSink
			if outputFile != "" {
				if out, err = sink.OpenFile(outputFile); err != nil {
					return err
				}
			} else {
				out = sink.NewTextSink(cmd.OutOrStdout())
			}
			defer func() {
				if closeErr := out.Close(); closeErr != nil && err == nil {
					err = closeErr
				}
			}()

			return dump(graph, out)
		},
	}

	cmd.Flags().StringVar(&storeDir, "store", "", "graph store directory")
	cmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "append to this file instead of stdout")
	return cmd
}

func dump(graph *store.TripleStore, out *sink.TextSink) error {
	iter, err := graph.Match(&store.Pattern{})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.Next() {
		triple, err := iter.Triple()
		if err != nil {
			return err
		}
		if err := out.WriteTriple(triple); err != nil {
			return err
		}
	}
	return nil
}
