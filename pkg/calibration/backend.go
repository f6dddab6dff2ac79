package calibration

import "sync"

// Bank layout.
const (
	BankSize = 32
	NumBanks = 16
	Erased   = 0xFF
)

// StorageBackend provides byte access to write-once storage. Programming
// a byte can only clear bits.
type StorageBackend interface {
	// Size returns the storage size in bytes.
	Size() int
	// ReadAt reads len(p) bytes at off.
	ReadAt(p []byte, off int64) (int, error)
	// Unlock enables programming.
	Unlock() error
	// Lock disables programming.
	Lock() error
	// WaitReady blocks until the storage accepts the next byte.
	WaitReady() error
	// ProgramByte programs one byte at off.
	ProgramByte(off int64, b byte) error
}

// MemoryOTP is an in-memory StorageBackend.
type MemoryOTP struct {
	data     []byte
	unlocked bool
	lock     sync.Mutex
}

// NewMemoryOTP creates an erased MemoryOTP with NumBanks banks.
func NewMemoryOTP() *MemoryOTP {
	data := make([]byte, NumBanks*BankSize)
	for i := range data {
		data[i] = Erased
	}
	return &MemoryOTP{data: data}
}

// Size implements StorageBackend.
func (m *MemoryOTP) Size() int {
	return len(m.data)
}

// ReadAt implements StorageBackend.
func (m *MemoryOTP) ReadAt(p []byte, off int64) (int, error) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, ErrOutOfRange
	}
	return copy(p, m.data[off:]), nil
}

// Unlock implements StorageBackend.
func (m *MemoryOTP) Unlock() error {
	m.lock.Lock()
	m.unlocked = true
	m.lock.Unlock()
	return nil
}

// Lock implements StorageBackend.
func (m *MemoryOTP) Lock() error {
	m.lock.Lock()
	m.unlocked = false
	m.lock.Unlock()
	return nil
}

// WaitReady implements StorageBackend.
func (m *MemoryOTP) WaitReady() error {
	return nil
}

// ProgramByte implements StorageBackend.
func (m *MemoryOTP) ProgramByte(off int64, b byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	if !m.unlocked {
		return ErrLocked
	}
	if off < 0 || off >= int64(len(m.data)) {
		return ErrOutOfRange
	}
	m.data[off] &= b
	return nil
}

// Bytes returns a copy of the storage content.
func (m *MemoryOTP) Bytes() []byte {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]byte(nil), m.data...)
}
