//go:build !linux

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

import "fmt"

// Device is a PPS signal line exposed as a file
type Device struct {
	path string
}

// Open is not supported on this platform
func Open(path string) (*Device, error) {
	return nil, fmt.Errorf("opening PPS device %s: PPS input is not supported on this platform", path)
}

// Fd returns an invalid descriptor
func (d *Device) Fd() int {
	return -1
}

// Path returns path of the device
func (d *Device) Path() string {
	return d.path
}

// Acknowledge is not supported on this platform
func (d *Device) Acknowledge() (byte, error) {
	return 0, fmt.Errorf("PPS input is not supported on this platform")
}

// Close does nothing
func (d *Device) Close() error {
	return nil
}
