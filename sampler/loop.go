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
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/sensorgnome/getclocks/clock"
	"github.com/sensorgnome/getclocks/stats"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// positions in the watch set
const (
	stdinIdx = 0
	ppsIdx   = 1
)

// stdin conditions which end the loop right away
const stdinFailed = unix.POLLERR | unix.POLLNVAL

// PPSDevice is a PPS signal line we can wait on
type PPSDevice interface {
	Fd() int
	Acknowledge() (byte, error)
}

// WatchSet is the list of descriptors we poll: stdin always, PPS device if configured
type WatchSet struct {
	fds []unix.PollFd
}

// NewWatchSet builds a WatchSet. dev may be nil when there is no PPS device.
func NewWatchSet(stdinFd int, dev PPSDevice) *WatchSet {
	w := &WatchSet{fds: []unix.PollFd{{Fd: int32(stdinFd), Events: unix.POLLIN}}}
	if dev != nil {
		w.fds = append(w.fds, unix.PollFd{Fd: int32(dev.Fd()), Events: unix.POLLPRI})
	}
	return w
}

// HasPPS tells if PPS device is watched
func (w *WatchSet) HasPPS() bool {
	return len(w.fds) > ppsIdx
}

// prepare clears returned events before the next wait
func (w *WatchSet) prepare() []unix.PollFd {
	for i := range w.fds {
		w.fds[i].Revents = 0
	}
	return w.fds
}

// Loop waits for stdin bytes and PPS events and emits one JSON line per stdin byte
type Loop struct {
	stdin   int
	out     *bufio.Writer
	clock   clock.Reader
	pps     PPSDevice
	stats   stats.Counters
	watch   *WatchSet
	format  *Formatter
	poll    func(fds []unix.PollFd, timeout int) (int, error)
	lastPPS *clock.Sample
	line    []byte
	readBuf []byte
}

// New returns a Loop reading stdinFd and writing to out. dev may be nil.
func New(cfg *Config, stdinFd int, out io.Writer, dev PPSDevice, counters stats.Counters) *Loop {
	if counters == nil {
		counters = stats.Discard{}
	}
	watch := NewWatchSet(stdinFd, dev)
	return &Loop{
		stdin:   stdinFd,
		out:     bufio.NewWriter(out),
		clock:   clock.SystemReader{},
		pps:     dev,
		stats:   counters,
		watch:   watch,
		format:  NewFormatter(watch.HasPPS(), cfg.FixPPSKey),
		poll:    unix.Poll,
		readBuf: make([]byte, 1),
	}
}

// Run blocks forever processing events. It returns nil once stdin is closed.
func (l *Loop) Run() error {
	for {
		done, err := l.iterate()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// iterate does one wait and handles whatever woke us up
func (l *Loop) iterate() (bool, error) {
	fds := l.watch.prepare()
	n, err := l.poll(fds, -1)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			l.stats.UpdateCounterBy(stats.PollInterrupts, 1)
			return false, nil
		}
		return false, fmt.Errorf("waiting for input: %w", err)
	}
	l.stats.UpdateCounterBy(stats.Wakeups, 1)
	log.Infof("Poll returned %d", n)

	stdinEvents := fds[stdinIdx].Revents
	// pending data is still served after hang up, errors stop us at once
	if stdinEvents&stdinFailed != 0 || (stdinEvents&unix.POLLHUP != 0 && stdinEvents&unix.POLLIN == 0) {
		log.Debugf("stdin closed (revents %#x)", stdinEvents)
		return true, nil
	}
	if l.watch.HasPPS() && fds[ppsIdx].Revents&unix.POLLPRI != 0 {
		if err := l.handlePPS(); err != nil {
			return false, err
		}
	}
	if stdinEvents&unix.POLLIN == 0 {
		return false, nil
	}
	return l.handleStdin()
}

func (l *Loop) handlePPS() error {
	s, err := l.clock.Now()
	if err != nil {
		return fmt.Errorf("sampling clocks on PPS event: %w", err)
	}
	b, err := l.pps.Acknowledge()
	if err != nil {
		return err
	}
	if l.lastPPS != nil {
		log.Debugf("%.6fs since previous PPS", s.Sub(*l.lastPPS))
	}
	l.lastPPS = &s
	l.stats.UpdateCounterBy(stats.PPSEvents, 1)
	l.stats.SetCounter(stats.PPSLastReal, s.Time().Unix())
	log.Infof("Got PPS and read of %q", b)
	return nil
}

func (l *Loop) handleStdin() (bool, error) {
	// clocks are read before the byte is consumed
	s, err := l.clock.Now()
	if err != nil {
		return false, fmt.Errorf("sampling clocks on stdin event: %w", err)
	}
	n, err := unix.Read(l.stdin, l.readBuf)
	if err != nil {
		if errors.Is(err, unix.EINTR) || errors.Is(err, unix.EAGAIN) {
			return false, nil
		}
		return false, fmt.Errorf("reading stdin: %w", err)
	}
	if n == 0 {
		log.Debug("stdin reached EOF")
		return true, nil
	}
	l.stats.UpdateCounterBy(stats.StdinSamples, 1)
	return false, l.emit(s)
}

// emit writes one line and flushes it right away
func (l *Loop) emit(s clock.Sample) error {
	l.line = l.format.Append(l.line[:0], s, l.lastPPS)
	if _, err := l.out.Write(l.line); err != nil {
		return fmt.Errorf("writing sample: %w", err)
	}
	if err := l.out.Flush(); err != nil {
		return fmt.Errorf("flushing sample: %w", err)
	}
	return nil
}
