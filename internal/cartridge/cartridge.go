// Package cartridge parses a Game Boy ROM image and exposes its
// banked contents. A Cartridge is immutable once constructed; all
// bank-switching state (which bank is currently visible, whether
// external RAM is enabled, ...) lives in the memory map that reads
// from it, not here.
package cartridge

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
	"github.com/cespare/xxhash"

	"github.com/WDDnguyen/gomatcha/internal/types"
)

// MaxROMSize is the largest cartridge image this core will accept.
const MaxROMSize = 2 * 1024 * 1024

// Cartridge is a parsed, read-only ROM image.
type Cartridge struct {
	header Header
	rom    []byte

	// MD5 is a hex-encoded digest of the raw ROM bytes. Filename does
	// not use it; that name is derived from the title instead.
	MD5 string
	// Fingerprint is a cheap 64-bit content hash, useful as an
	// in-memory identity key for test fixtures or trace logging where
	// computing a full MD5 every frame would be wasteful.
	Fingerprint uint64
}

// Header returns the cartridge's parsed header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the cartridge's game title.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Family reports which memory bank controller this cartridge expects.
func (c *Cartridge) Family() Family {
	return c.header.Family
}

// ROMBanks reports the number of 16 KiB banks backing this cartridge.
func (c *Cartridge) ROMBanks() int {
	return romBankCount(c.rom)
}

// RAMSize reports the number of bytes of external RAM this cartridge
// declares (0 if none).
func (c *Cartridge) RAMSize() int {
	return c.header.RAMSize
}

// ReadBank returns the byte at offset (0..0x3FFF) within ROM bank
// index. index is taken modulo the cartridge's actual bank count, so a
// stale or out-of-range bank selection from a buggy MBC write can
// never read out of bounds.
func (c *Cartridge) ReadBank(index int, offset uint16) uint8 {
	if offset > 0x3FFF {
		return 0xFF
	}
	base := romBankOffset(c.rom, index)
	return c.rom[base+int(offset)]
}

// Filename returns a stable name derived from the cartridge title,
// suitable for a host to use as a save-file name.
func (c *Cartridge) Filename() string {
	hash := md5.Sum([]byte(c.Title()))
	return hex.EncodeToString(hash[:])
}

// romBankCount returns how many 16 KiB banks are available, derived
// from the length of the raw image rather than trusted header
// metadata, so a malformed header can't cause an out-of-bounds bank
// read - every bank index is reduced modulo this count.
func romBankCount(rom []byte) int {
	banks := len(rom) / 0x4000
	if banks == 0 {
		return 1
	}
	return banks
}

func romBankOffset(rom []byte, bank int) int {
	banks := romBankCount(rom)
	bank %= banks
	if bank < 0 {
		bank += banks
	}
	return bank * 0x4000
}

// New parses rom (already decompressed) into a Cartridge.
func New(rom []byte) (*Cartridge, error) {
	if len(rom) < 0x150 {
		return nil, &types.BadRomFileError{Err: fmt.Errorf("rom too small: %d bytes", len(rom))}
	}
	if len(rom) > MaxROMSize {
		rom = rom[:MaxROMSize]
	}

	header, err := parseHeader(rom)
	if err != nil {
		return nil, &types.UnsupportedCartridgeError{CartridgeType: rom[0x147]}
	}

	sum := md5.Sum(rom)
	return &Cartridge{
		header:      header,
		rom:         rom,
		MD5:         hex.EncodeToString(sum[:]),
		Fingerprint: xxhash.Sum64(rom),
	}, nil
}

// NewEmptyCartridge returns a blank, all-0xFF 32 KiB cartridge with no
// banking hardware. It gives a host or test a valid *Cartridge before a
// ROM file has been chosen, mirroring the teacher's constructor of the
// same name.
func NewEmptyCartridge() *Cartridge {
	rom := make([]byte, 0x8000)
	for i := range rom {
		rom[i] = 0xFF
	}
	sum := md5.Sum(rom)
	return &Cartridge{
		header: Header{
			Title:    "EMPTY",
			Family:   FamilyNone,
			ROMBanks: 2,
			RAMSize:  0,
		},
		rom:         rom,
		MD5:         hex.EncodeToString(sum[:]),
		Fingerprint: xxhash.Sum64(rom),
	}
}

// Load reads the ROM image at path, transparently decompressing
// .zip/.gz/.7z archives (the first entry of an archive is assumed to
// be the ROM), and parses it into a Cartridge.
func Load(path string) (*Cartridge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &types.BadRomFileError{Path: path, Err: err}
	}

	decompressed, err := decompress(path, data)
	if err != nil {
		return nil, &types.BadRomFileError{Path: path, Err: err}
	}

	return New(decompressed)
}

// decompress inspects path's extension and, for recognised archive
// formats, returns the bytes of the first file inside. Anything else -
// including plain .gb/.gbc/.bin images and unrecognised extensions -
// is returned unchanged.
func decompress(path string, data []byte) ([]byte, error) {
	switch filepath.Ext(path) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("zip archive is empty")
		}
		f, err := r.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		if len(r.File) == 0 {
			return nil, fmt.Errorf("7z archive is empty")
		}
		f, err := r.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	default:
		return data, nil
	}
}
