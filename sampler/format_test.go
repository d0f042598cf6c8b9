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

package sampler

import (
	"testing"

	"github.com/sensorgnome/getclocks/clock"

	"github.com/stretchr/testify/require"
)

func TestFormatterNoPPS(t *testing.T) {
	f := NewFormatter(false, false)
	got := f.Append(nil, clock.Sample{Real: 1075896000.5, Mono: 12.0000004}, nil)
	require.Equal(t, "{\"real\":1075896000.500000, \"mono\":12.000000}\n", string(got))

	// PPS sample is ignored without PPS device
	got = f.Append(nil, clock.Sample{Real: 1, Mono: 2}, &clock.Sample{Real: 3, Mono: 4})
	require.Equal(t, "{\"real\":1.000000, \"mono\":2.000000}\n", string(got))
}

func TestFormatterPPS(t *testing.T) {
	s := clock.Sample{Real: 1075896001.123456, Mono: 500.000001}
	pps := &clock.Sample{Real: 1075896000.000002, Mono: 498.876547}

	got := NewFormatter(true, false).Append(nil, s, pps)
	require.Equal(t, "{\"real\":1075896001.123456, \"mono\":500.000001, \"ppsreal:\":1075896000.000002, \"ppsmono\":498.876547}\n", string(got))

	got = NewFormatter(true, true).Append(nil, s, pps)
	require.Equal(t, "{\"real\":1075896001.123456, \"mono\":500.000001, \"ppsreal\":1075896000.000002, \"ppsmono\":498.876547}\n", string(got))
}

func TestFormatterPPSNotYetSeen(t *testing.T) {
	got := NewFormatter(true, false).Append(nil, clock.Sample{Real: 10, Mono: 20}, nil)
	require.Equal(t, "{\"real\":10.000000, \"mono\":20.000000, \"ppsreal:\":null, \"ppsmono\":null}\n", string(got))
}

func TestFormatterReusesBuffer(t *testing.T) {
	f := NewFormatter(false, false)
	buf := make([]byte, 0, 128)
	buf = f.Append(buf[:0], clock.Sample{Real: 1, Mono: 1}, nil)
	buf = f.Append(buf[:0], clock.Sample{Real: 2, Mono: 2}, nil)
	require.Equal(t, "{\"real\":2.000000, \"mono\":2.000000}\n", string(buf))
}
