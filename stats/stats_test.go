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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	s := NewStats()
	s.UpdateCounterBy(Wakeups, 1)
	s.UpdateCounterBy(Wakeups, 2)
	s.SetCounter(PPSLastReal, 1075896000)
	require.Equal(t, map[string]int64{Wakeups: 3, PPSLastReal: 1075896000}, s.Get())

	// Get returns a copy
	s.Get()[Wakeups] = 100
	require.Equal(t, int64(3), s.Get()[Wakeups])
}

func TestDiscard(t *testing.T) {
	var c Counters = Discard{}
	c.SetCounter(Wakeups, 1)
	c.UpdateCounterBy(Wakeups, 1)
}

func TestFlattenKey(t *testing.T) {
	require.Equal(t, "errors_poll_eintr", flattenKey(PollInterrupts))
	require.Equal(t, "a_b_c", flattenKey("a b-c"))
}

func TestServerJSON(t *testing.T) {
	s := NewStats()
	s.UpdateCounterBy(StdinSamples, 5)
	srv := NewServer(s)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := map[string]int64{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, map[string]int64{StdinSamples: 5}, got)
}

func TestServerPrometheus(t *testing.T) {
	s := NewStats()
	s.UpdateCounterBy(PPSEvents, 2)
	srv := NewServer(s)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "getclocks_pps_events 2")

	// gauges are reused between scrapes
	s.UpdateCounterBy(PPSEvents, 1)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, rec.Body.String(), "getclocks_pps_events 3")
	require.Len(t, srv.gauges, 1)
}
