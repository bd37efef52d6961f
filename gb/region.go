package gb

// Region is a fixed-length, byte-addressable store. The Bus passes
// addr-start as the local index, per spec.md's memory-region contract.
//
// Grounded on the teacher's Cartridge/Mapper split (nes/cartridge.go,
// nes/mapper000.go), generalized from "ROM with bank remap" to a plain
// capability any fixed-length byte store can satisfy.
type Region interface {
	Len() int
	ReadByte(idx int) byte
	WriteByte(idx int, v byte)
}

// RAM is a read/write region backed by a plain byte slice. Stands in for
// WRAM/HRAM/VRAM-shaped fixtures; it carries no peripheral semantics.
type RAM struct {
	data []byte
}

// NewRAM allocates a zeroed RAM region of the given length.
func NewRAM(length int) *RAM {
	return &RAM{data: make([]byte, length)}
}

func (r *RAM) Len() int { return len(r.data) }

func (r *RAM) ReadByte(idx int) byte { return r.data[idx] }

func (r *RAM) WriteByte(idx int, v byte) { r.data[idx] = v }

// ROM is a fixed-length region that accepts writes at the bus layer (per
// spec.md §4.2: "writes to a ROM-backed region are permitted at this
// layer; banking/mirroring is delegated to the region itself"). This is a
// non-banked pass-through — bank switching is out of scope per spec.md §1.
type ROM struct {
	data []byte
}

// NewROM copies image into a fixed-length ROM region.
func NewROM(image []byte) *ROM {
	data := make([]byte, len(image))
	copy(data, image)
	return &ROM{data: data}
}

func (r *ROM) Len() int { return len(r.data) }

func (r *ROM) ReadByte(idx int) byte { return r.data[idx] }

func (r *ROM) WriteByte(idx int, v byte) { r.data[idx] = v }

// MirrorRegion wraps another region and folds the incoming local index
// back into inner's range every len(inner) bytes, the way the teacher's
// Bus mirrors NES RAM/PPU registers (nes/bus.go's ramMirror/ppuMirror
// masks) without hardcoding any DMG peripheral map. The window it occupies
// on the bus (windowLen) is independent of and must exceed inner's length
// for the fold to ever trigger; inner's length must be a power of two.
type MirrorRegion struct {
	inner     Region
	foldMask  int
	windowLen int
}

// NewMirrorRegion mirrors inner every len(inner) bytes across a windowLen
// byte span.
func NewMirrorRegion(inner Region, windowLen int) *MirrorRegion {
	return &MirrorRegion{inner: inner, foldMask: inner.Len() - 1, windowLen: windowLen}
}

func (m *MirrorRegion) Len() int { return m.windowLen }

func (m *MirrorRegion) ReadByte(idx int) byte { return m.inner.ReadByte(idx & m.foldMask) }

func (m *MirrorRegion) WriteByte(idx int, v byte) { m.inner.WriteByte(idx&m.foldMask, v) }
