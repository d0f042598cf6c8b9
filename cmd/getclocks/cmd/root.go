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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sensorgnome/getclocks/pps"
	"github.com/sensorgnome/getclocks/sampler"
	"github.com/sensorgnome/getclocks/stats"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd is a main entry point
var RootCmd = &cobra.Command{
	Use:   "getclocks [pps-device]",
	Short: "Print realtime and monotonic clocks as JSON for every byte read from stdin",
	Long: `getclocks samples CLOCK_REALTIME and CLOCK_MONOTONIC each time a byte arrives
on stdin and prints them as one JSON line, flushed immediately.
If a PPS device is given, clocks are also sampled on every PPS edge and the
last PPS reading is added to each line.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()
		if err := run(configFromArgs(args), os.Stdin, os.Stdout); err != nil {
			log.Fatal(err)
		}
	},
}

// flags
var (
	rootVerboseFlag        bool
	rootFixPPSKeyFlag      bool
	rootMonitoringPortFlag int
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&rootVerboseFlag, "verbose", "v", false, "verbose output")
	RootCmd.Flags().BoolVar(&rootFixPPSKeyFlag, "fix-pps-key", false, fmt.Sprintf("emit %q instead of legacy %q key. Consumers must be updated first", sampler.PPSRealKey, sampler.LegacyPPSRealKey))
	RootCmd.Flags().IntVar(&rootMonitoringPortFlag, "monitoringport", 0, "port to serve JSON counters on / and prometheus metrics on /metrics. 0 disables it")
}

// ConfigureVerbosity configures log verbosity based on parsed flags
func ConfigureVerbosity() {
	log.SetOutput(os.Stderr)
	log.SetLevel(log.InfoLevel)
	if rootVerboseFlag {
		log.SetLevel(log.DebugLevel)
	}
}

func configFromArgs(args []string) *sampler.Config {
	cfg := &sampler.Config{FixPPSKey: rootFixPPSKeyFlag}
	if len(args) == 1 {
		cfg.PPSPath = args[0]
	}
	return cfg
}

func run(cfg *sampler.Config, stdin *os.File, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	// keep PPSDevice nil unless we really have one
	var dev sampler.PPSDevice
	if cfg.PPSPath != "" {
		d, err := pps.Open(cfg.PPSPath)
		if err != nil {
			return err
		}
		defer d.Close()
		log.Debugf("Watching PPS device %s", d.Path())
		dev = d
	}

	var counters stats.Counters = stats.Discard{}
	if rootMonitoringPortFlag != 0 {
		st := stats.NewStats()
		counters = st
		go func() {
			log.Fatalf("Monitoring server error: %v", stats.NewServer(st).Start(rootMonitoringPortFlag))
		}()
	}

	loop := sampler.New(cfg, int(stdin.Fd()), stdout, dev, counters)
	if err := loop.Run(); err != nil {
		return err
	}
	log.Debug("stdin closed, exiting")
	return nil
}

// Execute is the main entry point for CLI interface
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
