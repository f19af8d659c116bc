package dbx

// Borrowed is an application owned value buffer referenced by a descriptor.
// It exposes no release operation: the tables never free what they did not allocate.
type Borrowed struct {
	b []byte
}

func Borrow(b []byte) Borrowed {
	return Borrowed{b: b}
}

func (b Borrowed) IsNil() bool {
	return b.b == nil
}

func (b Borrowed) Bytes() []byte {
	return b.b
}

// LenRef is an application owned "used length" indicator array.
// The offset is applied when a bind offset is active (array binding).
type LenRef struct {
	ind []int64
	off int
}

func BorrowLen(ind []int64) LenRef {
	return LenRef{ind: ind}
}

func (l LenRef) IsNil() bool {
	return l.ind == nil
}

// Shift returns a reference moved n elements forward.
func (l LenRef) Shift(n int) LenRef {
	if l.ind == nil {
		return l
	}
	return LenRef{ind: l.ind, off: l.off + n}
}

func (l LenRef) Offset() int {
	return l.off
}

// Get returns the indicator value for the given row.
func (l LenRef) Get(row int) (int64, bool) {
	i := l.off + row
	if l.ind == nil || i < 0 || i >= len(l.ind) {
		return 0, false
	}
	return l.ind[i], true
}

// Set writes the indicator value for the given row.
func (l LenRef) Set(row int, v int64) bool {
	i := l.off + row
	if l.ind == nil || i < 0 || i >= len(l.ind) {
		return false
	}
	l.ind[i] = v
	return true
}

// owned is a buffer allocated, and therefore released, by a StagingTable.
type owned struct {
	b []byte
}

func (o *owned) allocated() bool {
	return o.b != nil
}

// release drops the buffer and reports whether there was one to drop.
func (o *owned) release() bool {
	if o.b == nil {
		return false
	}
	o.b = nil
	return true
}
