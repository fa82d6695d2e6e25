package aac

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/dataview"
	"shelter-dashboard/internal/platform/httpclient"
	"shelter-dashboard/internal/platform/logger"
)

const DefaultBatchSize = 500

// Importer carga el CSV de outcomes en un store a través del puerto Writer.
type Importer struct {
	writer    dataview.Writer
	http      *httpclient.Client
	log       logger.Logger
	batchSize int
}

func NewImporter(w dataview.Writer, hc *httpclient.Client, log logger.Logger) *Importer {
	if hc == nil {
		hc = httpclient.New(0)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{writer: w, http: hc, log: log, batchSize: DefaultBatchSize}
}

// Fetch lee y parsea source: URL http(s) o path local.
func (im *Importer) Fetch(ctx context.Context, source string) ([]animals.Record, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("%w: empty source", ErrInvalidRow)
	}

	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		raw, err = im.http.Get(ctx, source, map[string]string{"Accept": "text/csv"})
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}

	recs, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	return recs, nil
}

// Run importa source completo en lotes. Devuelve la cantidad de registros escritos;
// si un lote falla, los anteriores quedan escritos.
func (im *Importer) Run(ctx context.Context, source string) (int, error) {
	start := time.Now()

	recs, err := im.Fetch(ctx, source)
	if err != nil {
		return 0, err
	}

	written := 0
	for from := 0; from < len(recs); from += im.batchSize {
		to := min(from+im.batchSize, len(recs))
		n, err := im.writer.Create(ctx, recs[from:to])
		written += n
		if err != nil {
			return written, fmt.Errorf("write batch %d-%d: %w", from, to, err)
		}
	}

	im.log.Info("import finished", map[string]any{
		"source":      source,
		"records":     written,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return written, nil
}
