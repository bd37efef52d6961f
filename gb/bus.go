package gb

// Bus dispatches byte/word reads and writes to whichever registered Region
// covers a given address. Mappings are registered in order and never
// removed; the first entry whose range covers the address wins, per
// spec.md §4.2.
//
// Grounded on the teacher's Bus.CpuRead/CpuWrite address-range dispatch
// (nes/bus.go), generalized from a handful of hardcoded ranges to an
// ordered slice of mappings so arbitrary test fixtures can be composed.
type Bus struct {
	mappings []mapping
}

type mapping struct {
	start  uint16
	length int
	region Region
}

// NewBus returns an empty bus with no registered regions.
func NewBus() *Bus {
	return &Bus{}
}

// Register appends a new (start, len(region), region) mapping.
func (b *Bus) Register(region Region, start uint16) {
	b.mappings = append(b.mappings, mapping{start: start, length: region.Len(), region: region})
}

func (b *Bus) find(addr uint16) (mapping, bool) {
	for _, m := range b.mappings {
		end := uint32(m.start) + uint32(m.length)
		if uint32(addr) >= uint32(m.start) && uint32(addr) < end {
			return m, true
		}
	}
	return mapping{}, false
}

// ReadByte returns the byte at addr, or ErrUnmappedAddress if no region
// covers it.
func (b *Bus) ReadByte(addr uint16) (byte, error) {
	m, ok := b.find(addr)
	if !ok {
		return 0, addrError(addr)
	}
	return m.region.ReadByte(int(addr - m.start)), nil
}

// WriteByte writes val to addr. Note the argument order: value, then
// address, matching spec.md §4.2.
func (b *Bus) WriteByte(val byte, addr uint16) error {
	m, ok := b.find(addr)
	if !ok {
		return addrError(addr)
	}
	m.region.WriteByte(int(addr-m.start), val)
	return nil
}

// ReadWord returns the little-endian word at addr: low byte at addr, high
// byte at addr+1. The two bytes may be served by different regions.
func (b *Bus) ReadWord(addr uint16) (uint16, error) {
	lo, err := b.ReadByte(addr)
	if err != nil {
		return 0, err
	}
	hi, err := b.ReadByte(addr + 1)
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// WriteWord writes val as a little-endian word: low byte at addr, high
// byte at addr+1.
func (b *Bus) WriteWord(val uint16, addr uint16) error {
	if err := b.WriteByte(byte(val), addr); err != nil {
		return err
	}
	return b.WriteByte(byte(val>>8), addr+1)
}
