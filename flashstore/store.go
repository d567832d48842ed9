package flashstore

import "errors"

// Sector is the raw flash-sector primitive a board provides: ReadSector
// returns the sector's current bytes, WriteSector erases and programs the
// whole sector atomically (the hardware/vendor primitive, assumed correct).
// Logically singleton.
type Sector interface {
	ReadSector() ([]byte, error)
	WriteSector(data []byte) error
}

// Lockout parks the other core for the duration of fn, the chip vendor's
// flash-write-safety primitive.
// A Store used only in host-side tests passes a Lockout that just calls fn.
type Lockout func(fn func())

// Store is the flash-resident settings store (component C1).
type Store struct {
	sector Sector
	lock   Lockout
}

// New builds a Store over sector, using lock to guard writes.
func New(sector Sector, lock Lockout) *Store {
	if lock == nil {
		lock = func(fn func()) { fn() }
	}
	return &Store{sector: sector, lock: lock}
}

// Load reads and validates the persisted record. ok is false on magic/CRC
// mismatch.
func (s *Store) Load() (rec Record, ok bool) {
	raw, err := s.sector.ReadSector()
	if err != nil {
		return Record{}, false
	}
	return Unmarshal(raw)
}

// SaveNow synchronously writes rec as a whole sector, parked against Core 1
// for the erase/program interval. Errors surface to the caller; the mode-change path
// aborts without resetting so the previous mode keeps working.
func (s *Store) SaveNow(rec Record) error {
	buf := rec.Marshal()
	var writeErr error
	s.lock(func() {
		writeErr = s.sector.WriteSector(buf[:])
	})
	if writeErr != nil {
		return writeErr
	}

	// Verify by re-reading (used directly by the mode-change protocol,
	// but cheap enough to always perform here too).
	got, ok := s.Load()
	if !ok || got != rec {
		return errors.New("flashstore: verification read after write did not match")
	}
	return nil
}
