package cartridge

import "fmt"

// Family identifies the memory bank controller a cartridge uses. Real
// hardware supports many more variants (MBC3 with RTC, MBC5 with
// rumble, MMM01, ...); this core only implements the three families
// named in spec.md section 3.
type Family uint8

const (
	// FamilyNone is a cartridge with no banking hardware at all - the
	// ROM is small enough to fit directly in 0x0000-0x7FFF.
	FamilyNone Family = iota
	// FamilyMBC1 switches ROM banks via writes into 0x2000-0x3FFF and
	// optionally RAM banks via 0x4000-0x5FFF.
	FamilyMBC1
	// FamilyMBC2 has a simpler banking scheme and 512x4-bit RAM built
	// into the cartridge itself.
	FamilyMBC2
)

func (f Family) String() string {
	switch f {
	case FamilyNone:
		return "none"
	case FamilyMBC1:
		return "MBC1"
	case FamilyMBC2:
		return "MBC2"
	default:
		return "unknown"
	}
}

// typeToFamily classifies the raw cartridge-type byte at 0x0147 into
// the MBC family this core knows how to drive.
func typeToFamily(t uint8) (Family, bool) {
	switch {
	case t == 0x00:
		return FamilyNone, true
	case t >= 0x01 && t <= 0x03:
		return FamilyMBC1, true
	case t == 0x05 || t == 0x06:
		return FamilyMBC2, true
	default:
		return 0, false
	}
}

// ramSizeFromCode maps the RAM-size code at header offset 0x0149 to a
// byte count. Only the codes spec.md describes are modelled: 0 means
// no external RAM, 1 and 2 both mean one 8 KiB bank (code 1 produces a
// 2 KiB bank on real hardware, but no cartridge in either supported
// family ships it, so this core rounds it up to the single 8 KiB bank
// its MBC1/MBC2 implementations allocate).
func ramSizeFromCode(code uint8) int {
	switch code {
	case 0x00:
		return 0
	case 0x01, 0x02:
		return 8 * 1024
	default:
		return 0
	}
}

// romBanksFromCode maps the ROM-size code at header offset 0x0148 to a
// bank count, per spec.md's "0 -> 2 banks, 1 -> 4, 2 -> 8, ..." table.
func romBanksFromCode(code uint8) int {
	return 2 << code
}

// Header is the parsed 0x0100-0x014F region of a cartridge image.
type Header struct {
	// Title is the game title, null-padded to 14 bytes in the source
	// image and trimmed of trailing NUL bytes here.
	Title string
	// CartridgeType is the raw header byte that Family was derived
	// from, kept around for diagnostics.
	CartridgeType uint8
	Family        Family
	// ROMBanks is the number of 16 KiB ROM banks the cartridge
	// declares.
	ROMBanks int
	// RAMSize is the number of bytes of external RAM the cartridge
	// declares (0 if none).
	RAMSize int
}

// parseHeader parses the header embedded in a full ROM image. raw must
// be at least 0x150 bytes long - the caller is responsible for that
// bounds check, since it also determines whether the image is even
// large enough to be a cartridge at all.
func parseHeader(raw []byte) (Header, error) {
	h := Header{}

	title := raw[0x134:0x142]
	end := len(title)
	for i, b := range title {
		if b == 0 {
			end = i
			break
		}
	}
	h.Title = string(title[:end])

	h.CartridgeType = raw[0x147]
	family, ok := typeToFamily(h.CartridgeType)
	if !ok {
		return h, fmt.Errorf("unsupported")
	}
	h.Family = family
	h.ROMBanks = romBanksFromCode(raw[0x148])
	h.RAMSize = ramSizeFromCode(raw[0x149])

	return h, nil
}

func (h Header) String() string {
	return fmt.Sprintf("%s (type %#02x, %d ROM bank(s), %d bytes RAM)", h.Title, h.CartridgeType, h.ROMBanks, h.RAMSize)
}
