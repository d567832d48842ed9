// Package flashstore implements the flash-resident settings store: an
// append-only-in-spirit, actually-whole-sector record framed by a magic
// number and CRC, safe to write while the other core is executing from
// flash. Flash writes are a single blocking primitive invoked synchronously
// rather than queued, matching how this module treats other board-level
// blocking operations. The on-disk layout uses a CRC32 rather than this
// module's usual CRC16 transport checksum, since the record is a flat
// byte blob rather than a framed stream (see DESIGN.md).
package flashstore

import (
	"encoding/binary"
	"hash/crc32"
)

// RecordMagic identifies a valid record; anything else on disk is treated
// as absent.
const RecordMagic uint32 = 0x50414430 // "PAD0"

// RecordVersion is bumped whenever the on-disk layout changes shape.
const RecordVersion uint16 = 1

// MaxProfileSlots bounds the number of custom-profile slots carried in the
// record.
const MaxProfileSlots = 4

// ProfileSlotSize is the fixed serialized size of one custom profile slot.
const ProfileSlotSize = 32

// headerSize covers magic, version, reserved, usb_output_mode and
// active_profile_index.
const headerSize = 4 + 2 + 2 + 1 + 1

// RecordSize is the fixed, byte-exact size of the whole record.
const RecordSize = headerSize + MaxProfileSlots*ProfileSlotSize + 4 // + crc32

// ProfileSlot is one custom profile's serialized form. The fields mirror
// profile.Profile's custom-profile contents only in part: a slot is a
// compact calibration record — sensitivity/flags/combo count — and the
// record carries no remap table or combo rule list, so it stays a
// fixed-size, single whole-sector write.
type ProfileSlot struct {
	Sensitivity [4]uint8
	Flags       uint8
	ComboCount  uint8
}

// Record is the in-memory form of the flash-resident settings.
type Record struct {
	USBOutputMode      uint8
	ActiveProfileIndex uint8
	Slots              [MaxProfileSlots]ProfileSlot
}

// Marshal serializes r into the fixed-size on-disk layout.
func (r Record) Marshal() [RecordSize]byte {
	var buf [RecordSize]byte
	binary.LittleEndian.PutUint32(buf[0:4], RecordMagic)
	binary.LittleEndian.PutUint16(buf[4:6], RecordVersion)
	binary.LittleEndian.PutUint16(buf[6:8], 0) // reserved
	buf[8] = r.USBOutputMode
	buf[9] = r.ActiveProfileIndex

	off := headerSize
	for _, s := range r.Slots {
		buf[off+0] = s.Sensitivity[0]
		buf[off+1] = s.Sensitivity[1]
		buf[off+2] = s.Sensitivity[2]
		buf[off+3] = s.Sensitivity[3]
		buf[off+4] = s.Flags
		buf[off+5] = s.ComboCount
		off += ProfileSlotSize
	}

	crc := crc32.ChecksumIEEE(buf[:RecordSize-4])
	binary.LittleEndian.PutUint32(buf[RecordSize-4:RecordSize], crc)
	return buf
}

// Unmarshal parses buf into a Record. ok is false if the magic or CRC does
// not match, in which case the caller must fall back to defaults.
func Unmarshal(buf []byte) (rec Record, ok bool) {
	if len(buf) < RecordSize {
		return Record{}, false
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != RecordMagic {
		return Record{}, false
	}
	wantCRC := binary.LittleEndian.Uint32(buf[RecordSize-4 : RecordSize])
	gotCRC := crc32.ChecksumIEEE(buf[:RecordSize-4])
	if wantCRC != gotCRC {
		return Record{}, false
	}

	rec.USBOutputMode = buf[8]
	rec.ActiveProfileIndex = buf[9]
	off := headerSize
	for i := range rec.Slots {
		rec.Slots[i] = ProfileSlot{
			Sensitivity: [4]uint8{buf[off+0], buf[off+1], buf[off+2], buf[off+3]},
			Flags:       buf[off+4],
			ComboCount:  buf[off+5],
		}
		off += ProfileSlotSize
	}
	return rec, true
}

// DefaultRecord is used whenever Load fails or the persisted mode is
// unsupported.
func DefaultRecord() Record {
	return Record{USBOutputMode: 0, ActiveProfileIndex: 0}
}
