package dbx

import (
	"github.com/quintans/faults"
)

// NotStarted is the remaining count reported by a slot whose transfer has not begun.
const NotStarted int64 = -1

// BookmarkSlot addresses the reserved staging slot of the bookmark column.
const BookmarkSlot = -1

// StagingBuffer holds the bytes of one value that is exchanged in pieces.
//
// The accumulation half collects a column value returned across several
// retrieval calls. The deferred half collects a parameter value supplied
// after the statement was submitted.
type StagingBuffer struct {
	acc     owned
	used    int
	started bool
	left    int64

	exec     owned
	execUsed int64

	LargeObjectID uint32
}

// Data returns the accumulated bytes.
func (b *StagingBuffer) Data() []byte {
	return b.acc.b[:b.used]
}

func (b *StagingBuffer) Used() int {
	return b.used
}

// Remaining returns what is still to be transferred, or NotStarted.
func (b *StagingBuffer) Remaining() int64 {
	if !b.started {
		return NotStarted
	}
	return b.left
}

func (b *StagingBuffer) Started() bool {
	return b.started
}

// Exec returns the deferred payload supplied so far.
func (b *StagingBuffer) Exec() []byte {
	return b.exec.b[:b.execUsed]
}

func (b *StagingBuffer) ExecUsed() int64 {
	return b.execUsed
}

func (b *StagingBuffer) HasExec() bool {
	return b.exec.allocated()
}

// StagingTable is the table of staging buffers of a statement.
// It is the only table that owns memory and it accounts for every buffer it releases.
type StagingTable struct {
	slots    *Shrinkable[StagingBuffer]
	bookmark StagingBuffer
	live     int
	released int
}

func NewStagingTable(name string, options ...TableOption) *StagingTable {
	s := new(StagingTable)
	s.slots = NewShrinkable(name, s.resetBuffer, options...)
	return s
}

func (s *StagingTable) Name() string {
	return s.slots.Name()
}

func (s *StagingTable) Allocated() int {
	return s.slots.Allocated()
}

// Live is the number of owned buffers currently held.
func (s *StagingTable) Live() int {
	return s.live
}

// Released is the number of owned buffers released so far.
func (s *StagingTable) Released() int {
	return s.released
}

// At returns slot i, the bookmark slot for BookmarkSlot, or nil.
func (s *StagingTable) At(i int) *StagingBuffer {
	if i == BookmarkSlot {
		return &s.bookmark
	}
	return s.slots.At(i)
}

func (s *StagingTable) EnsureCapacity(n int) error {
	return s.slots.EnsureCapacity(n)
}

func (s *StagingTable) ShrinkTo(n int) {
	s.slots.ShrinkTo(n)
}

func (s *StagingTable) ResetSlot(i int) {
	if b := s.At(i); b != nil {
		s.resetBuffer(b)
	}
}

// ResetAll resets the bookmark slot and every indexed slot, keeping the capacity.
func (s *StagingTable) ResetAll() {
	s.resetBuffer(&s.bookmark)
	for i := 0; i < s.slots.Allocated(); i++ {
		s.slots.ResetSlot(i)
	}
}

func (s *StagingTable) FreeAll() {
	s.resetBuffer(&s.bookmark)
	s.slots.FreeAll()
}

// Append adds a retrieved chunk to the accumulation buffer of slot i.
func (s *StagingTable) Append(i int, chunk []byte) error {
	b := s.At(i)
	if b == nil {
		return faults.Errorf("%s: slot %d is not allocated", s.Name(), i)
	}
	if !b.acc.allocated() {
		b.acc.b = make([]byte, 0, len(chunk))
		s.live++
	}
	b.acc.b = append(b.acc.b[:b.used], chunk...)
	b.used = len(b.acc.b)
	return nil
}

// SetRemaining records how much of the value of slot i is still to come.
func (s *StagingTable) SetRemaining(i int, left int64) error {
	b := s.At(i)
	if b == nil {
		return faults.Errorf("%s: slot %d is not allocated", s.Name(), i)
	}
	b.started = true
	b.left = left
	return nil
}

// Rewind restores the not started sentinel of slot i keeping its buffers.
func (s *StagingTable) Rewind(i int) {
	if b := s.At(i); b != nil {
		b.started = false
		b.left = 0
	}
}

// AppendExec adds a piece of a deferred parameter value to slot i.
func (s *StagingTable) AppendExec(i int, chunk []byte) error {
	b := s.At(i)
	if b == nil {
		return faults.Errorf("%s: slot %d is not allocated", s.Name(), i)
	}
	if !b.exec.allocated() {
		b.exec.b = make([]byte, 0, len(chunk))
		s.live++
	}
	b.exec.b = append(b.exec.b[:b.execUsed], chunk...)
	b.execUsed = int64(len(b.exec.b))
	return nil
}

// ReleaseExec releases the deferred payload of slot i, if any.
func (s *StagingTable) ReleaseExec(i int) {
	if b := s.At(i); b != nil {
		s.releaseExec(b)
	}
}

func (s *StagingTable) releaseExec(b *StagingBuffer) {
	if b.exec.release() {
		s.live--
		s.released++
	}
	b.execUsed = 0
}

func (s *StagingTable) resetBuffer(b *StagingBuffer) {
	if b.acc.release() {
		s.live--
		s.released++
	}
	s.releaseExec(b)
	b.used = 0
	b.started = false
	b.left = 0
	b.LargeObjectID = 0
}
