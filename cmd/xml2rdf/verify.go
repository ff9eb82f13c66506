package main

import (
	"fmt"
	"os"

	"github.com/aleksaelezovic/xml2rdf/internal/ntriples"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file.nt>",
		Short: "Parse an N-Triples file and print its triple count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			triples, err := ntriples.ParseReader(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), len(triples))
			return nil
		},
	}
}
