package gb

import "testing"

func newTestCPU() *CPU {
	bus := NewBus()
	bus.Register(NewRAM(0x10000), 0x0000)
	return NewCPU(bus)
}

func (cpu *CPU) loadProgram(addr uint16, bytes ...byte) {
	for i, b := range bytes {
		cpu.mustWrite(addr+uint16(i), b)
	}
}

func TestBootAndNOP(t *testing.T) {
	cpu := newTestCPU()
	cpu.loadProgram(0, 0x00)

	type snapshot struct {
		A, B, C, D, E, F, H, L byte
		SP                     uint16
	}
	before := snapshot{cpu.A, cpu.B, cpu.C, cpu.D, cpu.E, cpu.F, cpu.H, cpu.L, cpu.SP}

	cycles := cpu.Dispatch()

	if cycles != 4 {
		t.Errorf("NOP cycles = %d, want 4", cycles)
	}
	if cpu.PC != 1 {
		t.Errorf("PC = %d, want 1", cpu.PC)
	}
	after := snapshot{cpu.A, cpu.B, cpu.C, cpu.D, cpu.E, cpu.F, cpu.H, cpu.L, cpu.SP}
	if after != before {
		t.Errorf("NOP mutated registers: got %+v, want %+v", after, before)
	}
}

func TestIncB(t *testing.T) {
	cpu := newTestCPU()
	cpu.loadProgram(0, 0x04)
	cpu.B = 0

	cycles := cpu.Dispatch()

	if cycles != 4 || cpu.B != 1 || cpu.PC != 1 {
		t.Errorf("INC B = cycles=%d B=%#x PC=%#x, want 4,1,1", cycles, cpu.B, cpu.PC)
	}
	if cpu.GetZ() || cpu.GetN() || cpu.GetH() {
		t.Errorf("INC B flags = Z=%v N=%v H=%v, want all false", cpu.GetZ(), cpu.GetN(), cpu.GetH())
	}
}

func TestJRNZ(t *testing.T) {
	cpu := newTestCPU()
	cpu.loadProgram(0, 0x20, 0x04)
	cpu.SetZ(false)

	cycles := cpu.Dispatch()
	if cycles != 12 || cpu.PC != 6 {
		t.Errorf("JR NZ taken = cycles=%d PC=%#x, want 12,6", cycles, cpu.PC)
	}

	cpu.SetZ(true)
	cpu.loadProgram(cpu.PC, 0x20, 0x00)
	cycles = cpu.Dispatch()
	if cycles != 8 || cpu.PC != 8 {
		t.Errorf("JR NZ untaken = cycles=%d PC=%#x, want 8,8", cycles, cpu.PC)
	}
}

func TestRETcc(t *testing.T) {
	cpu := newTestCPU()
	cpu.loadProgram(0, 0xC0)
	cpu.SP = 8
	cpu.loadProgram(8, 0x55, 0xAA)
	cpu.SetZ(false)

	cycles := cpu.Dispatch()
	if cycles != 20 || cpu.SP != 10 || cpu.PC != 0xAA55 {
		t.Errorf("RET NZ = cycles=%d SP=%#x PC=%#x, want 20,10,0xAA55", cycles, cpu.SP, cpu.PC)
	}
}

func TestPushPop(t *testing.T) {
	cpu := newTestCPU()
	cpu.SP = 8

	cpu.Push(0xAA55)
	if cpu.SP != 6 {
		t.Errorf("SP after push = %#x, want 6", cpu.SP)
	}
	if v := cpu.mustReadWord(6); v != 0xAA55 {
		t.Errorf("word at SP after push = %#x, want 0xAA55", v)
	}

	v := cpu.Pop()
	if v != 0xAA55 || cpu.SP != 8 {
		t.Errorf("Pop() = %#x SP=%#x, want 0xAA55,8", v, cpu.SP)
	}
}

func TestCBRLCB(t *testing.T) {
	cpu := newTestCPU()
	cpu.loadProgram(0, 0xCB, 0x00)
	cpu.B = 0x08

	cycles := cpu.Dispatch()
	if cycles != 8 || cpu.PC != 2 || cpu.B != 0x10 {
		t.Errorf("CB RLC B = cycles=%d PC=%#x B=%#x, want 8,2,0x10", cycles, cpu.PC, cpu.B)
	}
	if cpu.F != 0 {
		t.Errorf("CB RLC B flags = %#x, want 0", cpu.F)
	}
}

func TestDAA(t *testing.T) {
	cpu := newTestCPU()
	cpu.loadProgram(0, 0x27)
	cpu.A = 0x3C
	cpu.SetN(false)
	cpu.SetH(false)
	cpu.SetC(false)

	cpu.Dispatch()
	if cpu.A != 0x42 {
		t.Errorf("DAA A = %#x, want 0x42", cpu.A)
	}
}

func TestCBRegisterIndexingTargetsHL(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetHL(0x100)
	cpu.mustWrite(0x100, 0x01)
	cpu.loadProgram(0, 0xCB, 0x06) // RLC (HL)

	cycles := cpu.Dispatch()
	if cycles != 16 {
		t.Errorf("CB targeting (HL) cycles = %d, want 16", cycles)
	}
	if v := cpu.mustRead(0x100); v != 0x02 {
		t.Errorf("(HL) after RLC = %#x, want 0x02", v)
	}
}

func TestJPHLSetsPCDirectly(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetHL(0x1234)
	cpu.loadProgram(0, 0xE9)

	cycles := cpu.Dispatch()
	if cycles != 4 || cpu.PC != 0x1234 {
		t.Errorf("JP (HL) = cycles=%d PC=%#x, want 4,0x1234", cycles, cpu.PC)
	}
}

func TestDispatchErrUnmappedOpcodeFetch(t *testing.T) {
	// Force an unmapped read by pointing PC outside every region.
	bus := NewBus()
	bus.Register(NewRAM(0x10), 0x0000)
	cpu2 := NewCPU(bus)
	cpu2.PC = 0x20

	_, err := cpu2.DispatchErr()
	if err == nil {
		t.Fatal("DispatchErr() = nil error, want ErrUnmappedAddress")
	}
}

func TestLDCommaAIsOneByteEightCycles(t *testing.T) {
	cpu := newTestCPU()
	cpu.loadProgram(0, 0xE2)
	cpu.C = 0x10
	cpu.A = 0x77

	cycles := cpu.Dispatch()
	if cycles != 8 || cpu.PC != 1 {
		t.Errorf("LD (C),A = cycles=%d PC=%#x, want 8,1", cycles, cpu.PC)
	}
	if v := cpu.mustRead(0xFF10); v != 0x77 {
		t.Errorf("memory at 0xFF10 = %#x, want 0x77", v)
	}
}

func TestDecHLIndirectCostsTwelveCycles(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetHL(0x100)
	cpu.mustWrite(0x100, 5)
	cpu.loadProgram(0, 0x35) // DEC (HL)

	cycles := cpu.Dispatch()
	if cycles != 12 {
		t.Errorf("DEC (HL) cycles = %d, want 12", cycles)
	}
	if v := cpu.mustRead(0x100); v != 4 {
		t.Errorf("(HL) after DEC = %d, want 4", v)
	}
}

func TestRotateAClearsZero(t *testing.T) {
	cpu := newTestCPU()
	cpu.loadProgram(0, 0x07) // RLCA
	cpu.A = 0

	cpu.Dispatch()
	if cpu.GetZ() {
		t.Errorf("RLCA on A=0 must clear Z per DMG behavior, got Z=true")
	}
}

func TestRegisterPairRoundTrip(t *testing.T) {
	cpu := newTestCPU()
	cpu.SetBC(0x1234)
	if cpu.BC() != 0x1234 {
		t.Errorf("BC round trip = %#x, want 0x1234", cpu.BC())
	}
	cpu.SetAF(0x12FF)
	if cpu.F&0x0F != 0 {
		t.Errorf("F low nibble = %#x, want 0", cpu.F&0x0F)
	}
}
