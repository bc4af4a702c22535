// Package fileio provides the file endpoint participants: a Source that
// feeds a file's bytes into the fabric one value per step, and a Sink that
// drains a port into a file. Both follow the same cooperative lifecycle as
// elves, so the scheduler needs no special cases for them.
package fileio

import (
	"fmt"
	"os"
	"strconv"

	"github.com/vk/workshopnet/internal/fabric"
	"github.com/vk/workshopnet/internal/scheduler"
	"github.com/vk/workshopnet/internal/tile"
)

// Endpoint port names sit outside the byte range so they can never collide
// with elf port characters.
const (
	sourcePortName = 1 << 9
	sinkPortName   = 1<<9 + 1
)

// Source pushes the bytes of a file onto its output port as character
// values, one per step, then sleeps. Sleeping closes the port, so
// downstream readers see end-of-input as closure.
type Source struct {
	id     int
	name   string
	data   []byte
	next   int
	status scheduler.Status
	fab    *fabric.Fabric
}

// NewSource reads the file at path eagerly so I/O errors surface during
// setup rather than mid-run.
func NewSource(path string, fab *fabric.Fabric) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	return &Source{name: "source:" + path, data: data, fab: fab}, nil
}

// Name implements scheduler.Participant.
func (s *Source) Name() string { return s.name }

// SetID implements scheduler.Participant.
func (s *Source) SetID(id int) { s.id = id }

// Status implements scheduler.Participant.
func (s *Source) Status() scheduler.Status { return s.status }

// Port returns the output port the source feeds.
func (s *Source) Port() fabric.Port { return fabric.Port{Owner: s.id, Name: sourcePortName} }

// Step implements scheduler.Participant.
func (s *Source) Step() (scheduler.Event, error) {
	if s.status.Terminal() {
		return scheduler.Event{Kind: scheduler.Sleep}, nil
	}
	if s.next >= len(s.data) {
		s.status = scheduler.Asleep
		s.fab.CloseOutputs(s.id)
		return scheduler.Event{Kind: scheduler.Sleep}, nil
	}
	if !s.fab.CanPush(s.Port()) {
		s.status = scheduler.BlockedOnWrite
		return scheduler.Event{Kind: scheduler.Yield}, nil
	}
	v := tile.Character(s.data[s.next])
	if err := s.fab.Push(s.Port(), v); err != nil {
		s.status = scheduler.Failed
		return scheduler.Event{Kind: scheduler.Sleep}, fmt.Errorf("source %s: %w", s.name, err)
	}
	s.next++
	s.status = scheduler.Running
	return scheduler.Event{Kind: scheduler.Write, Value: v}, nil
}

// Sink drains its input port into a file: character values as raw bytes,
// numbers as decimal text with a trailing newline. It sleeps once the port
// is closed and drained.
type Sink struct {
	id     int
	name   string
	file   *os.File
	status scheduler.Status
	fab    *fabric.Fabric
}

// NewSink creates (or truncates) the file at path.
func NewSink(path string, fab *fabric.Fabric) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create sink file: %w", err)
	}
	return &Sink{name: "sink:" + path, file: f, fab: fab}, nil
}

// Name implements scheduler.Participant.
func (s *Sink) Name() string { return s.name }

// SetID implements scheduler.Participant.
func (s *Sink) SetID(id int) { s.id = id }

// Status implements scheduler.Participant.
func (s *Sink) Status() scheduler.Status { return s.status }

// Port returns the input port the sink drains.
func (s *Sink) Port() fabric.Port { return fabric.Port{Owner: s.id, Name: sinkPortName} }

// Step implements scheduler.Participant.
func (s *Sink) Step() (scheduler.Event, error) {
	if s.status.Terminal() {
		return scheduler.Event{Kind: scheduler.Sleep}, nil
	}
	v, st := s.fab.Pull(s.Port())
	switch st {
	case fabric.Starved:
		s.status = scheduler.BlockedOnRead
		return scheduler.Event{Kind: scheduler.Yield}, nil
	case fabric.Closed:
		s.status = scheduler.Asleep
		err := s.file.Close()
		if err != nil {
			s.status = scheduler.Failed
			return scheduler.Event{Kind: scheduler.Sleep}, fmt.Errorf("sink %s: %w", s.name, err)
		}
		return scheduler.Event{Kind: scheduler.Sleep}, nil
	}

	var out []byte
	if v.Char {
		out = []byte{v.Byte()}
	} else {
		out = append(strconv.AppendInt(out, v.N, 10), '\n')
	}
	if _, err := s.file.Write(out); err != nil {
		s.status = scheduler.Failed
		s.file.Close()
		return scheduler.Event{Kind: scheduler.Sleep}, fmt.Errorf("sink %s: %w", s.name, err)
	}
	s.status = scheduler.Running
	return scheduler.Event{Kind: scheduler.Dequeue, Value: v}, nil
}
