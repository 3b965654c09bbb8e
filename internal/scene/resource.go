package scene

import (
	"errors"
	"fmt"
)

// ErrAlreadyReleased is returned when a buffer is released twice.
var ErrAlreadyReleased = errors.New("scene: buffer already released")

// BufferKind distinguishes geometry from material resources.
type BufferKind string

const (
	KindGeometry BufferKind = "geometry"
	KindMaterial BufferKind = "material"
)

// Buffer is a disposable render resource.
type Buffer struct {
	ID       int
	Kind     BufferKind
	released bool
	tracker  *Tracker
}

// Released reports whether the buffer has been returned to its tracker.
func (b *Buffer) Released() bool { return b.released }

// Release returns the buffer to its tracker. Releasing twice is an error.
func (b *Buffer) Release() error {
	if b == nil {
		return nil
	}
	if b.released {
		return fmt.Errorf("%s buffer %d: %w", b.Kind, b.ID, ErrAlreadyReleased)
	}
	b.released = true
	if b.tracker != nil {
		b.tracker.live--
		b.tracker.released++
	}
	return nil
}

// Tracker hands out buffers and counts how many are still alive.
type Tracker struct {
	next     int
	live     int
	released int
}

func NewTracker() *Tracker { return &Tracker{} }

// Acquire allocates a new buffer of the given kind.
func (t *Tracker) Acquire(kind BufferKind) *Buffer {
	t.next++
	t.live++
	return &Buffer{ID: t.next, Kind: kind, tracker: t}
}

func (t *Tracker) Live() int     { return t.live }
func (t *Tracker) Released() int { return t.released }
func (t *Tracker) Acquired() int { return t.next }
