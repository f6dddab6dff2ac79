package calibration

import (
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/golang/glog"
)

// Scan parameters. Joystick records live in even banks and servo records
// in odd banks.
const (
	scanStride      = 2
	joystickTopBank = 14
	servoTopBank    = 15
	servoScanDepth  = 8
	servoFirstBank  = 1
	resetServoShift = 50
)

// authToken gates destructive writes.
const authToken = "shazam"

// Store locates and writes calibration records on a StorageBackend.
type Store struct {
	Backend StorageBackend
}

// NewStore creates a Store.
func NewStore(backend StorageBackend) *Store {
	return &Store{Backend: backend}
}

func (s *Store) readBank(bank int, p []byte) error {
	off := int64(bank * BankSize)
	if _, err := s.Backend.ReadAt(p, off); err != nil {
		return fmt.Errorf("read bank %d: %w", bank, err)
	}
	return nil
}

func (s *Store) leadByte(bank int) (byte, error) {
	var b [1]byte
	err := s.readBank(bank, b[:])
	return b[0], err
}

// LoadJoystick returns the authoritative joystick record and its bank.
// Defaults, bank -1 and ErrNotFound are returned if no bank carries the
// magic byte.
func (s *Store) LoadJoystick() (JoystickCalibration, int, error) {
	for bank := joystickTopBank; bank >= 0; bank -= scanStride {
		lead, err := s.leadByte(bank)
		if err != nil {
			return DefaultJoystick(), -1, err
		}
		if lead != JoystickMagic {
			continue
		}
		var b [1 + joystickRecordSize]byte
		if err := s.readBank(bank, b[:]); err != nil {
			return DefaultJoystick(), -1, err
		}
		var cal JoystickCalibration
		cal.UnmarshalBinary(b[1:])
		glog.V(2).Infof("joystick calibration in bank %d", bank)
		return cal, bank, nil
	}
	return DefaultJoystick(), -1, ErrNotFound
}

// LoadServo returns the authoritative servo record and its bank.
// If no bank is occupied, defaults are returned with ErrNotFound. If the
// record has any value out of range, defaults are returned with a
// *CorruptError.
func (s *Store) LoadServo() (ServoCalibration, int, error) {
	bank := servoTopBank
	for i := 0; i < servoScanDepth; i, bank = i+1, bank-scanStride {
		lead, err := s.leadByte(bank)
		if err != nil {
			return DefaultServo(), -1, err
		}
		if lead == Erased {
			continue
		}
		var b [servoRecordSize]byte
		if err := s.readBank(bank, b[:]); err != nil {
			return DefaultServo(), -1, err
		}
		var cal ServoCalibration
		cal.UnmarshalBinary(b[:])
		if err := cal.check(bank); err != nil {
			return DefaultServo(), -1, err
		}
		glog.V(2).Infof("servo calibration in bank %d", bank)
		return cal, bank, nil
	}
	return DefaultServo(), -1, ErrNotFound
}

// ResetServo writes the factory servo record into the next erased servo
// bank. Servo 0 is shifted down by 50us on all three values.
func (s *Store) ResetServo(token string) (int, error) {
	cal := DefaultServo()
	cal[0].Min -= resetServoShift
	cal[0].Mid -= resetServoShift
	cal[0].Max -= resetServoShift
	return s.WriteServo(cal, token)
}

// WriteServo writes cal into the next erased servo bank and returns the
// bank. The write is refused without touching storage if token is wrong
// or cal is out of range.
func (s *Store) WriteServo(cal ServoCalibration, token string) (int, error) {
	if !authorized(token) {
		return -1, ErrUnauthorized
	}
	if err := cal.Validate(); err != nil {
		return -1, err
	}
	bank, err := s.findErased(servoFirstBank)
	if err != nil {
		return -1, err
	}
	data, _ := cal.MarshalBinary()
	return bank, s.program(bank, data)
}

// WriteJoystick writes cal with the magic byte into the next erased
// joystick bank and returns the bank.
func (s *Store) WriteJoystick(cal JoystickCalibration, token string) (int, error) {
	if !authorized(token) {
		return -1, ErrUnauthorized
	}
	bank, err := s.findErased(0)
	if err != nil {
		return -1, err
	}
	data, _ := cal.MarshalBinary()
	return bank, s.program(bank, append([]byte{JoystickMagic}, data...))
}

func authorized(token string) bool {
	return subtle.ConstantTimeCompare([]byte(token), []byte(authToken)) == 1
}

// findErased scans upward from first for a bank with an erased lead byte.
func (s *Store) findErased(first int) (int, error) {
	bank := first
	for i := 0; i < servoScanDepth && bank < NumBanks; i, bank = i+1, bank+scanStride {
		lead, err := s.leadByte(bank)
		if err != nil {
			return -1, err
		}
		if lead == Erased {
			return bank, nil
		}
	}
	return -1, ErrNoFreeBank
}

func (s *Store) program(bank int, data []byte) (err error) {
	if err = s.Backend.Unlock(); err != nil {
		return fmt.Errorf("unlock: %w", err)
	}
	defer func() {
		if lockErr := s.Backend.Lock(); err == nil && lockErr != nil {
			err = fmt.Errorf("lock: %w", lockErr)
		}
	}()
	off := int64(bank * BankSize)
	for i, b := range data {
		if err = s.Backend.WaitReady(); err != nil {
			return fmt.Errorf("bank %d byte %d: %w", bank, i, err)
		}
		if err = s.Backend.ProgramByte(off+int64(i), b); err != nil {
			return fmt.Errorf("bank %d byte %d: %w", bank, i, err)
		}
	}
	glog.Infof("calibration written to bank %d", bank)
	return nil
}

// Dump writes a hex dump of all banks.
func (s *Store) Dump(w io.Writer) error {
	var b [BankSize]byte
	for bank := 0; bank*BankSize < s.Backend.Size(); bank++ {
		if err := s.readBank(bank, b[:]); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "bank %2d: % x\n", bank, b[:]); err != nil {
			return err
		}
	}
	return nil
}
