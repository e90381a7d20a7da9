package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/vfg2006/ga-importer/pkg/metrics"
)

// MetricsMiddleware registra contagem e duração das requisições. Segmentos
// numéricos do path viram ":id" e datas viram ":date" para limitar a cardinalidade.
func MetricsMiddleware(collector metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lrw := newLoggingResponseWriter(w)
			start := time.Now()

			next.ServeHTTP(lrw, r)

			collector.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), lrw.statusCode, time.Since(start))
		})
	}
}

func normalizePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		switch {
		case segment == "":
		case strings.Trim(segment, "0123456789") == "":
			segments[i] = ":id"
		case len(segment) == len(time.DateOnly) && isDate(segment):
			segments[i] = ":date"
		}
	}
	return strings.Join(segments, "/")
}

func isDate(segment string) bool {
	_, err := time.Parse(time.DateOnly, segment)
	return err == nil
}
