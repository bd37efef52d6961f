package gb

// buildPrimaryTable constructs the 256-entry unprefixed opcode table.
// Grounded on the teacher's InstLookup array (nes/cpu.go): a table of
// closures built once and indexed by opcode, rather than a switch
// statement per dispatch. Regular families (register loads, 8-bit ALU
// against r/(HL)) are filled by loops over register index; irregular
// opcodes are assigned individually afterward, mirroring the mix the
// teacher itself uses for addressing-mode-driven vs one-off instructions.
func buildPrimaryTable() (t [256]opcodeFunc) {
	fetch8 := func(cpu *CPU) byte {
		v := cpu.mustRead(cpu.PC + 1)
		return v
	}
	fetch16 := func(cpu *CPU) uint16 {
		return cpu.mustReadWord(cpu.PC + 1)
	}

	// 0x00 NOP
	t[0x00] = func(cpu *CPU) uint32 { cpu.PC += 1; return 4 }

	// 0x10 STOP
	t[0x10] = func(cpu *CPU) uint32 { cpu.Stopped = true; cpu.PC += 2; return 4 }

	// 0x76 HALT is assigned after the 0x40-0x7F LD r,r loop below, which
	// skips that slot.

	// LD rr,d16 : 0x01 BC, 0x11 DE, 0x21 HL, 0x31 SP
	t[0x01] = func(cpu *CPU) uint32 { cpu.SetBC(fetch16(cpu)); cpu.PC += 3; return 12 }
	t[0x11] = func(cpu *CPU) uint32 { cpu.SetDE(fetch16(cpu)); cpu.PC += 3; return 12 }
	t[0x21] = func(cpu *CPU) uint32 { cpu.SetHL(fetch16(cpu)); cpu.PC += 3; return 12 }
	t[0x31] = func(cpu *CPU) uint32 { cpu.SP = fetch16(cpu); cpu.PC += 3; return 12 }

	// 0x08 LD (a16),SP: stores SP little-endian at the fetched address.
	t[0x08] = func(cpu *CPU) uint32 {
		addr := fetch16(cpu)
		cpu.mustWriteWord(addr, cpu.SP)
		cpu.PC += 3
		return 20
	}

	// LD (BC),A / LD (DE),A / LD (HL+),A / LD (HL-),A
	t[0x02] = func(cpu *CPU) uint32 { cpu.mustWrite(cpu.BC(), cpu.A); cpu.PC += 1; return 8 }
	t[0x12] = func(cpu *CPU) uint32 { cpu.mustWrite(cpu.DE(), cpu.A); cpu.PC += 1; return 8 }
	t[0x22] = func(cpu *CPU) uint32 {
		cpu.mustWrite(cpu.HL(), cpu.A)
		cpu.SetHL(cpu.HL() + 1)
		cpu.PC += 1
		return 8
	}
	t[0x32] = func(cpu *CPU) uint32 {
		cpu.mustWrite(cpu.HL(), cpu.A)
		cpu.SetHL(cpu.HL() - 1)
		cpu.PC += 1
		return 8
	}

	// LD A,(BC) / LD A,(DE) / LD A,(HL+) / LD A,(HL-)
	t[0x0A] = func(cpu *CPU) uint32 { cpu.A = cpu.mustRead(cpu.BC()); cpu.PC += 1; return 8 }
	t[0x1A] = func(cpu *CPU) uint32 { cpu.A = cpu.mustRead(cpu.DE()); cpu.PC += 1; return 8 }
	t[0x2A] = func(cpu *CPU) uint32 {
		cpu.A = cpu.mustRead(cpu.HL())
		cpu.SetHL(cpu.HL() + 1)
		cpu.PC += 1
		return 8
	}
	t[0x3A] = func(cpu *CPU) uint32 {
		cpu.A = cpu.mustRead(cpu.HL())
		cpu.SetHL(cpu.HL() - 1)
		cpu.PC += 1
		return 8
	}

	// INC rr / DEC rr (16-bit, no flags)
	t[0x03] = func(cpu *CPU) uint32 { cpu.SetBC(cpu.BC() + 1); cpu.PC += 1; return 8 }
	t[0x13] = func(cpu *CPU) uint32 { cpu.SetDE(cpu.DE() + 1); cpu.PC += 1; return 8 }
	t[0x23] = func(cpu *CPU) uint32 { cpu.SetHL(cpu.HL() + 1); cpu.PC += 1; return 8 }
	t[0x33] = func(cpu *CPU) uint32 { cpu.SP++; cpu.PC += 1; return 8 }
	t[0x0B] = func(cpu *CPU) uint32 { cpu.SetBC(cpu.BC() - 1); cpu.PC += 1; return 8 }
	t[0x1B] = func(cpu *CPU) uint32 { cpu.SetDE(cpu.DE() - 1); cpu.PC += 1; return 8 }
	t[0x2B] = func(cpu *CPU) uint32 { cpu.SetHL(cpu.HL() - 1); cpu.PC += 1; return 8 }
	t[0x3B] = func(cpu *CPU) uint32 { cpu.SP--; cpu.PC += 1; return 8 }

	// ADD HL,rr
	addHL := func(get func(cpu *CPU) uint16) opcodeFunc {
		return func(cpu *CPU) uint32 {
			r := Add16(cpu.HL(), get(cpu))
			cpu.SetHL(r.Value)
			cpu.SetFlags(MaskN|MaskH|MaskC, r)
			cpu.PC += 1
			return 8
		}
	}
	t[0x09] = addHL(func(cpu *CPU) uint16 { return cpu.BC() })
	t[0x19] = addHL(func(cpu *CPU) uint16 { return cpu.DE() })
	t[0x29] = addHL(func(cpu *CPU) uint16 { return cpu.HL() })
	t[0x39] = addHL(func(cpu *CPU) uint16 { return cpu.SP })

	// INC r / DEC r (8-bit, indices per row: B,C,D,E,H,L,(HL),A at
	// opcodes 0x04+8n / 0x05+8n).
	incOpcodes := []byte{0x04, 0x0C, 0x14, 0x1C, 0x24, 0x2C, 0x34, 0x3C}
	decOpcodes := []byte{0x05, 0x0D, 0x15, 0x1D, 0x25, 0x2D, 0x35, 0x3D}
	for i := 0; i < 8; i++ {
		idx := i
		cycles := uint32(4)
		if idx == 6 {
			cycles = 12
		}
		t[incOpcodes[i]] = func(cpu *CPU) uint32 {
			r := Add8(cpu.get8(idx), 1, false)
			cpu.set8(idx, byte(r.Value))
			cpu.SetFlags(MaskZ|MaskN|MaskH, r)
			cpu.PC += 1
			return cycles
		}
		t[decOpcodes[i]] = func(cpu *CPU) uint32 {
			r := Sub8(cpu.get8(idx), 1, false)
			cpu.set8(idx, byte(r.Value))
			cpu.SetFlags(MaskZ|MaskN|MaskH, r)
			cpu.PC += 1
			return cycles
		}
	}

	// LD r,d8
	ldImmOpcodes := []byte{0x06, 0x0E, 0x16, 0x1E, 0x26, 0x2E, 0x36, 0x3E}
	for i := 0; i < 8; i++ {
		idx := i
		cycles := uint32(8)
		if idx == 6 {
			cycles = 12
		}
		t[ldImmOpcodes[i]] = func(cpu *CPU) uint32 {
			cpu.set8(idx, fetch8(cpu))
			cpu.PC += 2
			return cycles
		}
	}

	// RLCA / RRCA / RLA / RRA: clear Z unconditionally, per the
	// redesign note in spec.md §9 (these read as 8-bit accumulator ops,
	// not the CB-group rotations, even though they share formulas).
	t[0x07] = func(cpu *CPU) uint32 {
		r := RotateLeftCircular(cpu.A)
		cpu.A = byte(r.Value)
		cpu.SetFlags(MaskN|MaskH|MaskC, r)
		cpu.SetZ(false)
		cpu.PC += 1
		return 4
	}
	t[0x0F] = func(cpu *CPU) uint32 {
		r := RotateRightCircular(cpu.A)
		cpu.A = byte(r.Value)
		cpu.SetFlags(MaskN|MaskH|MaskC, r)
		cpu.SetZ(false)
		cpu.PC += 1
		return 4
	}
	t[0x17] = func(cpu *CPU) uint32 {
		r := RotateLeftThroughCarry(cpu.A, cpu.GetC())
		cpu.A = byte(r.Value)
		cpu.SetFlags(MaskN|MaskH|MaskC, r)
		cpu.SetZ(false)
		cpu.PC += 1
		return 4
	}
	t[0x1F] = func(cpu *CPU) uint32 {
		r := RotateRightThroughCarry(cpu.A, cpu.GetC())
		cpu.A = byte(r.Value)
		cpu.SetFlags(MaskN|MaskH|MaskC, r)
		cpu.SetZ(false)
		cpu.PC += 1
		return 4
	}

	// 0x18 JR r8 (unconditional)
	t[0x18] = func(cpu *CPU) uint32 {
		off := Signed8(fetch8(cpu))
		cpu.PC += 2
		cpu.PC = uint16(int32(cpu.PC) + int32(off))
		return 12
	}

	// JR cc,r8 : NZ,Z,NC,C
	jrCond := func(cond func(cpu *CPU) bool) opcodeFunc {
		return func(cpu *CPU) uint32 {
			off := Signed8(fetch8(cpu))
			cpu.PC += 2
			if cond(cpu) {
				cpu.PC = uint16(int32(cpu.PC) + int32(off))
				return 12
			}
			return 8
		}
	}
	t[0x20] = jrCond(func(cpu *CPU) bool { return !cpu.GetZ() })
	t[0x28] = jrCond(func(cpu *CPU) bool { return cpu.GetZ() })
	t[0x30] = jrCond(func(cpu *CPU) bool { return !cpu.GetC() })
	t[0x38] = jrCond(func(cpu *CPU) bool { return cpu.GetC() })

	// 0x27 DAA: adjusts A to valid BCD after an 8-bit add/sub, following
	// N/H/C from the preceding instruction. Implemented per the exact
	// contract in spec.md §4.3, not transcribed from any Z80 source (the
	// spec flags the common source-level DAA as unreliable at the carry
	// boundary).
	t[0x27] = func(cpu *CPU) uint32 {
		a := int(cpu.A)
		correction := 0
		carry := cpu.GetC()
		if cpu.GetN() {
			if cpu.GetH() {
				correction |= 0x06
			}
			if carry {
				correction |= 0x60
			}
			a -= correction
		} else {
			if cpu.GetH() || a&0x0F > 0x09 {
				correction |= 0x06
			}
			if carry || a > 0x99 {
				correction |= 0x60
				carry = true
			}
			a += correction
		}
		cpu.A = byte(a)
		cpu.SetZ(cpu.A == 0)
		cpu.SetH(false)
		cpu.SetC(carry)
		cpu.PC += 1
		return 4
	}

	// 0x2F CPL
	t[0x2F] = func(cpu *CPU) uint32 {
		cpu.A = ^cpu.A
		cpu.SetN(true)
		cpu.SetH(true)
		cpu.PC += 1
		return 4
	}

	// 0x37 SCF
	t[0x37] = func(cpu *CPU) uint32 {
		cpu.SetN(false)
		cpu.SetH(false)
		cpu.SetC(true)
		cpu.PC += 1
		return 4
	}

	// 0x3F CCF
	t[0x3F] = func(cpu *CPU) uint32 {
		cpu.SetN(false)
		cpu.SetH(false)
		cpu.SetC(!cpu.GetC())
		cpu.PC += 1
		return 4
	}

	// 0x40-0x7F: LD r,r' (regular block, r'=src idx 0-7, r=dst idx 0-7),
	// excluding 0x76 which is HALT.
	for dst := 0; dst < 8; dst++ {
		for src := 0; src < 8; src++ {
			op := byte(0x40 + dst*8 + src)
			if op == 0x76 {
				continue
			}
			d, s := dst, src
			cycles := uint32(4)
			if d == 6 || s == 6 {
				cycles = 8
			}
			t[op] = func(cpu *CPU) uint32 {
				cpu.set8(d, cpu.get8(s))
				cpu.PC += 1
				return cycles
			}
		}
	}
	t[0x76] = func(cpu *CPU) uint32 { cpu.Halted = true; cpu.PC += 1; return 4 }

	// 0x80-0xBF: 8-bit ALU against r (ADD,ADC,SUB,SBC,AND,XOR,OR,CP)
	aluRows := []struct {
		base byte
		fn   func(cpu *CPU, v byte)
	}{
		{0x80, func(cpu *CPU, v byte) {
			r := Add8(cpu.A, v, false)
			cpu.A = byte(r.Value)
			cpu.SetFlags(MaskZNHC, r)
		}},
		{0x88, func(cpu *CPU, v byte) {
			r := Add8(cpu.A, v, cpu.GetC())
			cpu.A = byte(r.Value)
			cpu.SetFlags(MaskZNHC, r)
		}},
		{0x90, func(cpu *CPU, v byte) {
			r := Sub8(cpu.A, v, false)
			cpu.A = byte(r.Value)
			cpu.SetFlags(MaskZNHC, r)
		}},
		{0x98, func(cpu *CPU, v byte) {
			r := Sub8(cpu.A, v, cpu.GetC())
			cpu.A = byte(r.Value)
			cpu.SetFlags(MaskZNHC, r)
		}},
		{0xA0, func(cpu *CPU, v byte) {
			cpu.A &= v
			cpu.SetZ(cpu.A == 0)
			cpu.SetN(false)
			cpu.SetH(true)
			cpu.SetC(false)
		}},
		{0xA8, func(cpu *CPU, v byte) {
			cpu.A ^= v
			cpu.SetZ(cpu.A == 0)
			cpu.SetN(false)
			cpu.SetH(false)
			cpu.SetC(false)
		}},
		{0xB0, func(cpu *CPU, v byte) {
			cpu.A |= v
			cpu.SetZ(cpu.A == 0)
			cpu.SetN(false)
			cpu.SetH(false)
			cpu.SetC(false)
		}},
		{0xB8, func(cpu *CPU, v byte) {
			r := Sub8(cpu.A, v, false)
			cpu.SetFlags(MaskZNHC, r)
		}},
	}
	for _, row := range aluRows {
		for i := 0; i < 8; i++ {
			op := row.base + byte(i)
			idx := i
			apply := row.fn
			cycles := uint32(4)
			if idx == 6 {
				cycles = 8
			}
			t[op] = func(cpu *CPU) uint32 {
				apply(cpu, cpu.get8(idx))
				cpu.PC += 1
				return cycles
			}
		}
	}

	// RET cc / RET / RETI
	retCond := func(cond func(cpu *CPU) bool) opcodeFunc {
		return func(cpu *CPU) uint32 {
			if cond(cpu) {
				cpu.PC = cpu.Pop()
				return 20
			}
			cpu.PC += 1
			return 8
		}
	}
	t[0xC0] = retCond(func(cpu *CPU) bool { return !cpu.GetZ() })
	t[0xC8] = retCond(func(cpu *CPU) bool { return cpu.GetZ() })
	t[0xD0] = retCond(func(cpu *CPU) bool { return !cpu.GetC() })
	t[0xD8] = retCond(func(cpu *CPU) bool { return cpu.GetC() })
	t[0xC9] = func(cpu *CPU) uint32 { cpu.PC = cpu.Pop(); return 16 }
	t[0xD9] = func(cpu *CPU) uint32 { cpu.PC = cpu.Pop(); cpu.IME = true; return 16 }

	// POP rr
	t[0xC1] = func(cpu *CPU) uint32 { cpu.SetBC(cpu.Pop()); cpu.PC += 1; return 12 }
	t[0xD1] = func(cpu *CPU) uint32 { cpu.SetDE(cpu.Pop()); cpu.PC += 1; return 12 }
	t[0xE1] = func(cpu *CPU) uint32 { cpu.SetHL(cpu.Pop()); cpu.PC += 1; return 12 }
	t[0xF1] = func(cpu *CPU) uint32 { cpu.SetAF(cpu.Pop()); cpu.PC += 1; return 12 }

	// PUSH rr
	t[0xC5] = func(cpu *CPU) uint32 { cpu.PC += 1; cpu.Push(cpu.BC()); return 16 }
	t[0xD5] = func(cpu *CPU) uint32 { cpu.PC += 1; cpu.Push(cpu.DE()); return 16 }
	t[0xE5] = func(cpu *CPU) uint32 { cpu.PC += 1; cpu.Push(cpu.HL()); return 16 }
	t[0xF5] = func(cpu *CPU) uint32 { cpu.PC += 1; cpu.Push(cpu.AF()); return 16 }

	// JP cc,a16 / JP a16
	jpCond := func(cond func(cpu *CPU) bool) opcodeFunc {
		return func(cpu *CPU) uint32 {
			target := fetch16(cpu)
			if cond(cpu) {
				cpu.PC = target
				return 16
			}
			cpu.PC += 3
			return 12
		}
	}
	t[0xC2] = jpCond(func(cpu *CPU) bool { return !cpu.GetZ() })
	t[0xCA] = jpCond(func(cpu *CPU) bool { return cpu.GetZ() })
	t[0xD2] = jpCond(func(cpu *CPU) bool { return !cpu.GetC() })
	t[0xDA] = jpCond(func(cpu *CPU) bool { return cpu.GetC() })
	t[0xC3] = func(cpu *CPU) uint32 { cpu.PC = fetch16(cpu); return 16 }

	// 0xE9 JP (HL): loads PC directly from HL, not through a memory
	// read, per the redesign note in spec.md §9.
	t[0xE9] = func(cpu *CPU) uint32 { cpu.PC = cpu.HL(); return 4 }

	// CALL cc,a16 / CALL a16
	callCond := func(cond func(cpu *CPU) bool) opcodeFunc {
		return func(cpu *CPU) uint32 {
			target := fetch16(cpu)
			ret := cpu.PC + 3
			if cond(cpu) {
				cpu.Push(ret)
				cpu.PC = target
				return 24
			}
			cpu.PC = ret
			return 12
		}
	}
	t[0xC4] = callCond(func(cpu *CPU) bool { return !cpu.GetZ() })
	t[0xCC] = callCond(func(cpu *CPU) bool { return cpu.GetZ() })
	t[0xD4] = callCond(func(cpu *CPU) bool { return !cpu.GetC() })
	t[0xDC] = callCond(func(cpu *CPU) bool { return cpu.GetC() })
	t[0xCD] = func(cpu *CPU) uint32 {
		target := fetch16(cpu)
		cpu.Push(cpu.PC + 3)
		cpu.PC = target
		return 24
	}

	// ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,d8
	t[0xC6] = func(cpu *CPU) uint32 {
		r := Add8(cpu.A, fetch8(cpu), false)
		cpu.A = byte(r.Value)
		cpu.SetFlags(MaskZNHC, r)
		cpu.PC += 2
		return 8
	}
	t[0xCE] = func(cpu *CPU) uint32 {
		r := Add8(cpu.A, fetch8(cpu), cpu.GetC())
		cpu.A = byte(r.Value)
		cpu.SetFlags(MaskZNHC, r)
		cpu.PC += 2
		return 8
	}
	t[0xD6] = func(cpu *CPU) uint32 {
		r := Sub8(cpu.A, fetch8(cpu), false)
		cpu.A = byte(r.Value)
		cpu.SetFlags(MaskZNHC, r)
		cpu.PC += 2
		return 8
	}
	t[0xDE] = func(cpu *CPU) uint32 {
		r := Sub8(cpu.A, fetch8(cpu), cpu.GetC())
		cpu.A = byte(r.Value)
		cpu.SetFlags(MaskZNHC, r)
		cpu.PC += 2
		return 8
	}
	t[0xE6] = func(cpu *CPU) uint32 {
		cpu.A &= fetch8(cpu)
		cpu.SetZ(cpu.A == 0)
		cpu.SetN(false)
		cpu.SetH(true)
		cpu.SetC(false)
		cpu.PC += 2
		return 8
	}
	t[0xEE] = func(cpu *CPU) uint32 {
		cpu.A ^= fetch8(cpu)
		cpu.SetZ(cpu.A == 0)
		cpu.SetN(false)
		cpu.SetH(false)
		cpu.SetC(false)
		cpu.PC += 2
		return 8
	}
	t[0xF6] = func(cpu *CPU) uint32 {
		cpu.A |= fetch8(cpu)
		cpu.SetZ(cpu.A == 0)
		cpu.SetN(false)
		cpu.SetH(false)
		cpu.SetC(false)
		cpu.PC += 2
		return 8
	}
	t[0xFE] = func(cpu *CPU) uint32 {
		r := Sub8(cpu.A, fetch8(cpu), false)
		cpu.SetFlags(MaskZNHC, r)
		cpu.PC += 2
		return 8
	}

	// RST n: vectors at 0x00,0x08,...,0x38
	for i := 0; i < 8; i++ {
		op := byte(0xC7 + i*8)
		vector := uint16(i * 8)
		t[op] = func(cpu *CPU) uint32 {
			cpu.Push(cpu.PC + 1)
			cpu.PC = vector
			return 16
		}
	}

	// 0xE0 LDH (a8),A / 0xF0 LDH A,(a8)
	t[0xE0] = func(cpu *CPU) uint32 {
		addr := 0xFF00 + uint16(fetch8(cpu))
		cpu.mustWrite(addr, cpu.A)
		cpu.PC += 2
		return 12
	}
	t[0xF0] = func(cpu *CPU) uint32 {
		addr := 0xFF00 + uint16(fetch8(cpu))
		cpu.A = cpu.mustRead(addr)
		cpu.PC += 2
		return 12
	}

	// 0xE2 LD (C),A / 0xF2 LD A,(C): 1-byte, 8-cycle, per spec.md §9.
	t[0xE2] = func(cpu *CPU) uint32 {
		cpu.mustWrite(0xFF00+uint16(cpu.C), cpu.A)
		cpu.PC += 1
		return 8
	}
	t[0xF2] = func(cpu *CPU) uint32 {
		cpu.A = cpu.mustRead(0xFF00 + uint16(cpu.C))
		cpu.PC += 1
		return 8
	}

	// 0xE8 ADD SP,r8
	t[0xE8] = func(cpu *CPU) uint32 {
		off := Signed8(fetch8(cpu))
		sp := cpu.SP
		operand := uint16(int32(off))
		cpu.SetZ(false)
		cpu.SetN(false)
		cpu.SetH((sp&0xF)+(operand&0xF) > 0xF)
		cpu.SetC((sp&0xFF)+(operand&0xFF) > 0xFF)
		cpu.SP = uint16(int32(sp) + int32(off))
		cpu.PC += 2
		return 16
	}

	// 0xF8 LD HL,SP+r8
	t[0xF8] = func(cpu *CPU) uint32 {
		off := Signed8(fetch8(cpu))
		sp := cpu.SP
		operand := uint16(int32(off))
		cpu.SetZ(false)
		cpu.SetN(false)
		cpu.SetH((sp&0xF)+(operand&0xF) > 0xF)
		cpu.SetC((sp&0xFF)+(operand&0xFF) > 0xFF)
		cpu.SetHL(uint16(int32(sp) + int32(off)))
		cpu.PC += 2
		return 12
	}

	// 0xF9 LD SP,HL
	t[0xF9] = func(cpu *CPU) uint32 { cpu.SP = cpu.HL(); cpu.PC += 1; return 8 }

	// 0xEA LD (a16),A / 0xFA LD A,(a16)
	t[0xEA] = func(cpu *CPU) uint32 {
		addr := fetch16(cpu)
		cpu.mustWrite(addr, cpu.A)
		cpu.PC += 3
		return 16
	}
	t[0xFA] = func(cpu *CPU) uint32 {
		addr := fetch16(cpu)
		cpu.A = cpu.mustRead(addr)
		cpu.PC += 3
		return 16
	}

	// 0xF3 DI / 0xFB EI
	t[0xF3] = func(cpu *CPU) uint32 { cpu.IME = false; cpu.PC += 1; return 4 }
	t[0xFB] = func(cpu *CPU) uint32 { cpu.IME = true; cpu.PC += 1; return 4 }

	// 0xCB is handled specially: it fetches the extended table entry and
	// computes its own cycle cost, since that depends on the (HL) target.
	t[0xCB] = func(cpu *CPU) uint32 {
		sub := cpu.mustRead(cpu.PC + 1)
		fn := cpu.extended[sub]
		cpu.PC += 2
		fn(cpu)
		if sub&0x07 == 6 {
			return 16
		}
		return 8
	}

	return t
}
