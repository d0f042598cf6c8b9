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

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sensorgnome/getclocks/sampler"

	"github.com/stretchr/testify/require"
)

func TestRunWithPPSDevice(t *testing.T) {
	dev := filepath.Join(t.TempDir(), "value")
	require.NoError(t, os.WriteFile(dev, []byte("0\n"), 0644))

	out := &bytes.Buffer{}
	require.NoError(t, run(&sampler.Config{PPSPath: dev}, stdinWith(t, "\n"), out))
	require.Contains(t, out.String(), `"ppsreal:":null, "ppsmono":null}`)
}
