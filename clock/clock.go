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

package clock

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Clock ids we sample, from usr/include/linux/time.h
const (
	// Realtime is wall-clock time anchored to the Unix epoch
	Realtime int32 = unix.CLOCK_REALTIME
	// Monotonic never decreases, its origin is unspecified
	Monotonic int32 = unix.CLOCK_MONOTONIC
)

// Sample is a pair of clock readings taken back to back
type Sample struct {
	Real float64 // seconds since the epoch
	Mono float64 // seconds since an arbitrary origin
}

// Sub returns the monotonic distance in seconds between two samples
func (s Sample) Sub(other Sample) float64 {
	return s.Mono - other.Mono
}

// Time returns the real-time part of the sample as time.Time
func (s Sample) Time() time.Time {
	sec := int64(s.Real)
	nsec := int64((s.Real - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// Reader is something that can sample both clocks
type Reader interface {
	Now() (Sample, error)
}

// SystemReader reads clocks via clock_gettime(2)
type SystemReader struct{}

// Now samples the monotonic clock first and the realtime clock right after it
func (SystemReader) Now() (Sample, error) {
	mono, err := Read(Monotonic)
	if err != nil {
		return Sample{}, err
	}
	rt, err := Read(Realtime)
	if err != nil {
		return Sample{}, err
	}
	return Sample{Real: rt, Mono: mono}, nil
}

// Read returns the value of given clock in seconds
func Read(clockid int32) (float64, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(clockid, &ts); err != nil {
		return 0, fmt.Errorf("clock_gettime on %s: %w", Name(clockid), err)
	}
	return Seconds(ts), nil
}

// Seconds converts timespec to floating seconds
func Seconds(ts unix.Timespec) float64 {
	sec, nsec := ts.Unix()
	return float64(sec) + float64(nsec)/1.0e9
}

// Name returns human readable name of the clock id
func Name(clockid int32) string {
	switch clockid {
	case Realtime:
		return "CLOCK_REALTIME"
	case Monotonic:
		return "CLOCK_MONOTONIC"
	default:
		return fmt.Sprintf("clock(%d)", clockid)
	}
}
