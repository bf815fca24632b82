package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsServer exposes Prometheus metrics over HTTP on its own address,
// grounded on the pack's explorer/indexer metrics server: a separate
// listener so scraping never shares a port with the query API.
type metricsServer struct {
	srv *http.Server
}

func newMetricsServer(addr string) *metricsServer {
	if addr == "" {
		return nil
	}
	return &metricsServer{srv: &http.Server{Addr: addr, Handler: promhttp.Handler()}}
}

func (s *metricsServer) start() error {
	if s == nil {
		return nil
	}
	return s.srv.ListenAndServe()
}

func (s *metricsServer) stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
