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
	"strconv"

	"github.com/sensorgnome/getclocks/clock"
)

// Keys used in emitted JSON lines
const (
	RealKey    = "real"
	MonoKey    = "mono"
	PPSMonoKey = "ppsmono"
	// LegacyPPSRealKey has a stray colon inside, existing consumers depend on it
	LegacyPPSRealKey = "ppsreal:"
	PPSRealKey       = "ppsreal"
)

// decimals after the point, microsecond resolution
const precision = 6

// Formatter renders samples as one JSON object per line
type Formatter struct {
	withPPS    bool
	ppsRealKey string
}

// NewFormatter returns a Formatter. PPS fields are rendered iff withPPS is set.
func NewFormatter(withPPS bool, fixPPSKey bool) *Formatter {
	f := &Formatter{withPPS: withPPS, ppsRealKey: LegacyPPSRealKey}
	if fixPPSKey {
		f.ppsRealKey = PPSRealKey
	}
	return f
}

// Append appends the line for sample s to b. pps is the last known PPS
// sample, nil renders null values.
func (f *Formatter) Append(b []byte, s clock.Sample, pps *clock.Sample) []byte {
	b = append(b, '{')
	b = appendField(b, RealKey, s.Real)
	b = append(b, ", "...)
	b = appendField(b, MonoKey, s.Mono)
	if f.withPPS {
		if pps == nil {
			b = append(b, ", "...)
			b = appendNull(b, f.ppsRealKey)
			b = append(b, ", "...)
			b = appendNull(b, PPSMonoKey)
		} else {
			b = append(b, ", "...)
			b = appendField(b, f.ppsRealKey, pps.Real)
			b = append(b, ", "...)
			b = appendField(b, PPSMonoKey, pps.Mono)
		}
	}
	return append(b, '}', '\n')
}

func appendKey(b []byte, key string) []byte {
	b = strconv.AppendQuote(b, key)
	return append(b, ':')
}

func appendField(b []byte, key string, v float64) []byte {
	b = appendKey(b, key)
	return strconv.AppendFloat(b, v, 'f', precision, 64)
}

func appendNull(b []byte, key string) []byte {
	b = appendKey(b, key)
	return append(b, "null"...)
}
