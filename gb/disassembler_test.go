package gb

import "testing"

func TestDisassembleFixedWidth(t *testing.T) {
	bus := NewBus()
	bus.Register(NewRAM(0x100), 0x0000)
	bus.WriteByte(0x00, 0x00)       // NOP
	bus.WriteByte(0x04, 0x01)       // INC B
	bus.WriteByte(0x3E, 0x02)       // LD A,d8
	bus.WriteByte(0x99, 0x03)       //   operand
	bus.WriteByte(0xC3, 0x04)       // JP a16
	bus.WriteByte(0x34, 0x05)       //   lo
	bus.WriteByte(0x12, 0x06)       //   hi

	lines := Disassemble(bus, 0, 6)
	if lines[0] != "$0000: NOP" {
		t.Errorf("lines[0] = %q, want \"$0000: NOP\"", lines[0])
	}
	if lines[1] != "$0001: INC B" {
		t.Errorf("lines[1] = %q, want \"$0001: INC B\"", lines[1])
	}
	if lines[2] != "$0002: LD A,d8 ; $99" {
		t.Errorf("lines[2] = %q", lines[2])
	}
	if lines[4] != "$0004: JP a16 ; $1234" {
		t.Errorf("lines[4] = %q", lines[4])
	}
}

func TestDisassembleCBPrefixed(t *testing.T) {
	bus := NewBus()
	bus.Register(NewRAM(0x10), 0x0000)
	bus.WriteByte(0xCB, 0x00)
	bus.WriteByte(0x00, 0x01) // RLC B

	lines := Disassemble(bus, 0, 1)
	if lines[0] != "$0000: RLC B" {
		t.Errorf("lines[0] = %q, want \"$0000: RLC B\"", lines[0])
	}
}
