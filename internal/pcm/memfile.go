package pcm

import (
	"errors"
	"io"
)

// memFile is an in-memory io.WriteSeeker. Writing past the end grows it.
type memFile struct {
	buf []byte
	pos int
}

func newMemFile(capacity int) *memFile {
	return &memFile{buf: make([]byte, 0, capacity)}
}

func (m *memFile) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		if end <= cap(m.buf) {
			m.buf = m.buf[:end]
		} else {
			m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
		}
	}
	copy(m.buf[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(m.pos)
	case io.SeekEnd:
		base = int64(len(m.buf))
	default:
		return 0, errors.New("pcm: invalid whence")
	}
	next := base + offset
	if next < 0 {
		return 0, errors.New("pcm: negative position")
	}
	m.pos = int(next)
	return next, nil
}

func (m *memFile) Bytes() []byte {
	return m.buf
}
