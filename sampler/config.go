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
	"fmt"
	"os"
)

// Config is what the sampler loop needs to know at startup
type Config struct {
	PPSPath   string // optional path to PPS device, empty means stdin only
	FixPPSKey bool   // emit "ppsreal" instead of the legacy "ppsreal:" key
}

// Validate makes sure config is usable
func (c *Config) Validate() error {
	if c.PPSPath == "" {
		return nil
	}
	if _, err := os.Stat(c.PPSPath); err != nil {
		return fmt.Errorf("bad config: PPS device: %w", err)
	}
	return nil
}
