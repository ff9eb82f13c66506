package xml2rdf

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aleksaelezovic/xml2rdf/internal/xmlevents"
	"github.com/aleksaelezovic/xml2rdf/pkg/sink"
)

// Converter converts XML documents, one after another, into a single sink
type Converter struct {
	walker *Walker
	logger *slog.Logger
}

// NewConverter creates a converter writing to s. The converter holds s for
// its whole lifetime; s must not be shared with another converter.
func NewConverter(s sink.Sink, opts Options) *Converter {
	opts = opts.withDefaults()
	return &Converter{
		walker: NewWalker(s, opts),
		logger: opts.Logger,
	}
}

// ConvertFiles converts each file in order. The first failure aborts the
// run; triples already written stay in the sink. The context is checked
// between documents.
func (c *Converter) ConvertFiles(ctx context.Context, paths []string) (Stats, error) {
	var total Stats

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		stats, err := c.convertFile(path)
		total.Add(stats)
		if err != nil {
			return total, fmt.Errorf("%s: %w", path, err)
		}

		c.logger.Debug("converted document",
			"path", path,
			"elements", stats.Elements,
			"attributes", stats.Attributes,
			"triples", stats.Triples)
	}

	return total, nil
}

func (c *Converter) convertFile(path string) (Stats, error) {
	f, err := os.Open(path) // #nosec G304 - input paths are chosen by the user
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %w", ErrInputOpen, err)
	}
	defer f.Close()

	return c.ConvertReader(bufio.NewReader(f))
}

// ConvertReader converts the single XML document read from r
func (c *Converter) ConvertReader(r io.Reader) (Stats, error) {
	return c.walker.Walk(xmlevents.NewSource(r))
}
