/*
 * pqparse
 *
 * Copyright 2020 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the MIT
 * License, If a copy of the MIT License was not distributed with this
 * file, You can obtain one at https://opensource.org/licenses/MIT.
 */

package util

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/krotik/common/datautil"
	"github.com/krotik/pqparse/parser"
)

/*
traceEntry is one recorded Enter/Exit pair, once Exit has fired.
*/
type traceEntry struct {
	id       parser.CorrelationID
	parent   parser.CorrelationID
	category string
	name     string
	enter    map[string]interface{}
	exit     map[string]interface{}
}

func (e *traceEntry) String() string {
	if e.exit != nil {
		return fmt.Sprintf("%v %v/%v enter=%v exit=%v", e.id, e.category, e.name, e.enter, e.exit)
	}
	return fmt.Sprintf("%v %v/%v enter=%v", e.id, e.category, e.name, e.enter)
}

/*
counter mints fresh CorrelationIDs, shared by every sink below the way the
teacher's loggers share no state across instances but each instance tracks
its own sequence.
*/
type counter struct {
	mutex sync.Mutex
	next  int
}

func (c *counter) nextID() parser.CorrelationID {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.next++
	return parser.CorrelationID(c.next)
}

/*
MemoryTraceSink collects trace events in a RingBuffer in memory, grounded in
the teacher's MemoryLogger (util/logging.go), swapping a capped slice of
strings for a capped slice of structured *traceEntry records (Enter/Exit
pairs merge into one entry once Exit fires, so a bounded buffer reports
complete calls rather than truncating an open one's Enter half).
*/
type MemoryTraceSink struct {
	*datautil.RingBuffer
	counter
	mutex sync.Mutex
	open  map[parser.CorrelationID]*traceEntry
}

/*
NewMemoryTraceSink returns a trace sink that keeps the most recent size
completed entries.
*/
func NewMemoryTraceSink(size int) *MemoryTraceSink {
	return &MemoryTraceSink{
		RingBuffer: datautil.NewRingBuffer(size),
		open:       make(map[parser.CorrelationID]*traceEntry),
	}
}

/*
Enter implements parser.TraceSink.
*/
func (m *MemoryTraceSink) Enter(category, name string, parent parser.CorrelationID, details map[string]interface{}) parser.CorrelationID {
	id := m.nextID()

	m.mutex.Lock()
	m.open[id] = &traceEntry{id: id, parent: parent, category: category, name: name, enter: details}
	m.mutex.Unlock()

	return id
}

/*
Exit implements parser.TraceSink.
*/
func (m *MemoryTraceSink) Exit(id parser.CorrelationID, details map[string]interface{}) {
	m.mutex.Lock()
	entry, ok := m.open[id]
	if ok {
		delete(m.open, id)
	}
	m.mutex.Unlock()

	if !ok {
		return
	}

	entry.exit = details
	m.RingBuffer.Add(entry)
}

/*
Slice returns every completed entry currently retained, oldest first.
*/
func (m *MemoryTraceSink) Slice() []*traceEntry {
	raw := m.RingBuffer.Slice()
	out := make([]*traceEntry, len(raw))
	for i, v := range raw {
		out[i] = v.(*traceEntry)
	}
	return out
}

/*
StdOutTraceSink writes each completed Enter/Exit pair to stdout via log.Print,
grounded in the teacher's StdOutLogger.
*/
type StdOutTraceSink struct {
	counter
	mutex sync.Mutex
	open  map[parser.CorrelationID]*traceEntry
}

/*
NewStdOutTraceSink returns a trace sink that prints completed entries.
*/
func NewStdOutTraceSink() *StdOutTraceSink {
	return &StdOutTraceSink{open: make(map[parser.CorrelationID]*traceEntry)}
}

/*
Enter implements parser.TraceSink.
*/
func (s *StdOutTraceSink) Enter(category, name string, parent parser.CorrelationID, details map[string]interface{}) parser.CorrelationID {
	id := s.nextID()

	s.mutex.Lock()
	s.open[id] = &traceEntry{id: id, parent: parent, category: category, name: name, enter: details}
	s.mutex.Unlock()

	return id
}

/*
Exit implements parser.TraceSink.
*/
func (s *StdOutTraceSink) Exit(id parser.CorrelationID, details map[string]interface{}) {
	s.mutex.Lock()
	entry, ok := s.open[id]
	if ok {
		delete(s.open, id)
	}
	s.mutex.Unlock()

	if !ok {
		return
	}

	entry.exit = details
	log.Print(entry.String())
}

/*
BufferTraceSink writes completed entries to an arbitrary io.Writer, grounded
in the teacher's BufferLogger — used by the CLI's "parse" command to write
its -logfile trace without going through stdout.
*/
type BufferTraceSink struct {
	counter
	mutex sync.Mutex
	open  map[parser.CorrelationID]*traceEntry
	buf   io.Writer
}

/*
NewBufferTraceSink returns a trace sink that writes completed entries to buf.
*/
func NewBufferTraceSink(buf io.Writer) *BufferTraceSink {
	return &BufferTraceSink{open: make(map[parser.CorrelationID]*traceEntry), buf: buf}
}

/*
Enter implements parser.TraceSink.
*/
func (b *BufferTraceSink) Enter(category, name string, parent parser.CorrelationID, details map[string]interface{}) parser.CorrelationID {
	id := b.nextID()

	b.mutex.Lock()
	b.open[id] = &traceEntry{id: id, parent: parent, category: category, name: name, enter: details}
	b.mutex.Unlock()

	return id
}

/*
Exit implements parser.TraceSink.
*/
func (b *BufferTraceSink) Exit(id parser.CorrelationID, details map[string]interface{}) {
	b.mutex.Lock()
	entry, ok := b.open[id]
	if ok {
		delete(b.open, id)
	}
	b.mutex.Unlock()

	if !ok {
		return
	}

	entry.exit = details
	fmt.Fprintln(b.buf, entry.String())
}

/*
NullTraceSink discards every event, equivalent to parser.NopTraceSink but
exported from util so the CLI can use it alongside the other three (the
parse command uses it when no -logfile is given).
*/
type NullTraceSink struct{}

/*
NewNullTraceSink returns a trace sink that discards every event.
*/
func NewNullTraceSink() *NullTraceSink {
	return &NullTraceSink{}
}

/*
Enter implements parser.TraceSink.
*/
func (NullTraceSink) Enter(string, string, parser.CorrelationID, map[string]interface{}) parser.CorrelationID {
	return 0
}

/*
Exit implements parser.TraceSink.
*/
func (NullTraceSink) Exit(parser.CorrelationID, map[string]interface{}) {}
