package events

import (
	"time"

	"github.com/ntustvocab/vocabterm/internal/logging"
)

type CatalogTracer struct{}

var Catalog = CatalogTracer{}

func (CatalogTracer) Request(method, url string) {
	logging.Trace("catalog.request", map[string]interface{}{"method": method, "url": url})
}

func (CatalogTracer) Response(url string, status int, elapsed time.Duration) {
	logging.Trace("catalog.response", map[string]interface{}{"url": url, "status": status, "elapsedMs": elapsed.Milliseconds()})
}

func (CatalogTracer) Error(url string, err error) {
	logging.Trace("catalog.error", map[string]interface{}{"url": url, "error": errString(err)})
}
