// Command xml2rdf converts XML documents into RDF triples describing their
// structure.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "xml2rdf",
		Short:         "Convert XML documents into RDF describing their structure",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newConvertCmd(), newVerifyCmd(), newDumpCmd(), newLoadCmd())
	return root
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
