//go:build linux

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

package pps

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Device is a PPS signal line exposed as a file, such as a sysfs gpio value.
// The kernel reports an edge on it as POLLPRI readiness.
type Device struct {
	path string
	fd   int
}

// Open opens PPS device read-only. O_NONBLOCK makes sure we never hang on
// devices that only have data on hardware events.
func Open(path string) (*Device, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening PPS device %s: %w", path, err)
	}
	return &Device{path: path, fd: fd}, nil
}

// Fd returns file descriptor to watch for POLLPRI
func (d *Device) Fd() int {
	return d.fd
}

// Path returns path the device was opened from
func (d *Device) Path() string {
	return d.path
}

// Acknowledge rewinds the device and consumes one byte, which clears the
// pending priority event. Empty read is not an error, zero byte is returned.
func (d *Device) Acknowledge() (byte, error) {
	if _, err := unix.Seek(d.fd, 0, unix.SEEK_SET); err != nil {
		return 0, fmt.Errorf("rewinding PPS device %s: %w", d.path, err)
	}
	buf := make([]byte, 1)
	n, err := unix.Read(d.fd, buf)
	if err != nil && err != unix.EAGAIN {
		return 0, fmt.Errorf("reading PPS device %s: %w", d.path, err)
	}
	if n < 1 {
		return 0, nil
	}
	return buf[0], nil
}

// Close closes the device
func (d *Device) Close() error {
	return unix.Close(d.fd)
}
