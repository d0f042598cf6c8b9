/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Server exposes Stats as JSON on / and as Prometheus gauges on /metrics
type Server struct {
	stats    *Stats
	registry *prometheus.Registry

	mux    sync.Mutex
	gauges map[string]prometheus.Gauge
}

// NewServer returns a new Server for given stats
func NewServer(s *Stats) *Server {
	return &Server{
		stats:    s,
		registry: prometheus.NewRegistry(),
		gauges:   map[string]prometheus.Gauge{},
	}
}

// Handler returns http handler serving both endpoints
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)
	prom := promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		s.updateGauges()
		prom.ServeHTTP(w, r)
	})
	return mux
}

// Start runs http server on given port. It only returns on error.
func (s *Server) Start(monitoringport int) error {
	addr := fmt.Sprintf(":%d", monitoringport)
	log.Infof("Starting http json/prometheus server on %s", addr)
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
	return server.ListenAndServe()
}

// handleRequest is a handler used for all http monitoring requests
func (s *Server) handleRequest(w http.ResponseWriter, _ *http.Request) {
	js, err := json.Marshal(s.stats.Get())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(js); err != nil {
		log.Errorf("Failed to reply: %v", err)
	}
}

func (s *Server) updateGauges() {
	s.mux.Lock()
	defer s.mux.Unlock()
	for key, val := range s.stats.Get() {
		g, ok := s.gauges[key]
		if !ok {
			g = prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "getclocks_" + flattenKey(key),
				Help: key,
			})
			if err := s.registry.Register(g); err != nil {
				are := &prometheus.AlreadyRegisteredError{}
				if !errors.As(err, are) {
					log.Errorf("failed to register metric %s %v", key, err)
					continue
				}
				g = are.ExistingCollector.(prometheus.Gauge)
			}
			s.gauges[key] = g
		}
		g.Set(float64(val))
	}
}

func flattenKey(key string) string {
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, ".", "_")
	key = strings.ReplaceAll(key, "-", "_")
	return key
}
