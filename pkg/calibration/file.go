package calibration

import (
	"fmt"
	"os"
	"sync"
)

// FileOTP is a StorageBackend over an image file. A missing or empty
// file is initialized erased.
type FileOTP struct {
	file     *os.File
	size     int
	unlocked bool
	lock     sync.Mutex
}

// OpenFileOTP opens or creates the image file at path.
func OpenFileOTP(path string) (*FileOTP, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := NumBanks * BankSize
	switch info.Size() {
	case 0:
		erased := make([]byte, size)
		for i := range erased {
			erased[i] = Erased
		}
		if _, err = f.WriteAt(erased, 0); err != nil {
			f.Close()
			return nil, err
		}
	case int64(size):
	default:
		f.Close()
		return nil, fmt.Errorf("calibration image %s: size %d, expect %d", path, info.Size(), size)
	}
	return &FileOTP{file: f, size: size}, nil
}

// Close closes the image file.
func (f *FileOTP) Close() error {
	return f.file.Close()
}

// Size implements StorageBackend.
func (f *FileOTP) Size() int {
	return f.size
}

// ReadAt implements StorageBackend.
func (f *FileOTP) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > int64(f.size) {
		return 0, ErrOutOfRange
	}
	return f.file.ReadAt(p, off)
}

// Unlock implements StorageBackend.
func (f *FileOTP) Unlock() error {
	f.lock.Lock()
	f.unlocked = true
	f.lock.Unlock()
	return nil
}

// Lock implements StorageBackend.
func (f *FileOTP) Lock() error {
	f.lock.Lock()
	f.unlocked = false
	f.lock.Unlock()
	return f.file.Sync()
}

// WaitReady implements StorageBackend.
func (f *FileOTP) WaitReady() error {
	return nil
}

// ProgramByte implements StorageBackend.
func (f *FileOTP) ProgramByte(off int64, b byte) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	if !f.unlocked {
		return ErrLocked
	}
	var cur [1]byte
	if _, err := f.ReadAt(cur[:], off); err != nil {
		return err
	}
	cur[0] &= b
	_, err := f.file.WriteAt(cur[:], off)
	return err
}
