package chip8

// Step performs one fetch-decode-execute cycle: read the opcode at PC,
// advance PC by 2, decode it, and apply its semantics. It returns a
// non-nil *FatalError only for stack overflow (CALL) or underflow (RET);
// unknown opcodes, and a PC that has run off the end of RAM, are reported
// through the trace hook and treated as a no-op, never returned as an
// error.
func (m *Machine) Step() error {
	pcAtFetch := m.pc
	m.pc += 2

	if int(pcAtFetch)+1 >= memSize {
		m.reportUnknown(pcAtFetch, pcAtFetch)
		return nil
	}
	op := uint16(m.ram[pcAtFetch])<<8 | uint16(m.ram[pcAtFetch+1])

	in := Decode(op)
	return m.execute(in, pcAtFetch)
}

func (m *Machine) execute(in Instruction, pcAtFetch uint16) error {
	switch in.Op {
	case OpCLS:
		m.fb = [displayWidth * displayHigh]bool{}

	case OpRET:
		addr, err := m.pop()
		if err != nil {
			return err
		}
		m.pc = addr

	case OpJP:
		m.pc = in.NNN

	case OpCALL:
		if err := m.push(m.pc); err != nil {
			return err
		}
		m.pc = in.NNN

	case OpSEVxByte:
		if m.v[in.X] == in.NN {
			m.pc += 2
		}

	case OpSNEVxByte:
		if m.v[in.X] != in.NN {
			m.pc += 2
		}

	case OpSEVxVy:
		if m.v[in.X] == m.v[in.Y] {
			m.pc += 2
		}

	case OpLDVxByte:
		m.v[in.X] = in.NN

	case OpADDVxByte:
		m.v[in.X] += in.NN

	case OpLDVxVy:
		m.v[in.X] = m.v[in.Y]

	case OpOR:
		m.v[in.X] |= m.v[in.Y]

	case OpAND:
		m.v[in.X] &= m.v[in.Y]

	case OpXOR:
		m.v[in.X] ^= m.v[in.Y]

	case OpADDVxVy:
		sum := uint16(m.v[in.X]) + uint16(m.v[in.Y])
		m.v[in.X] = byte(sum)
		if sum > 0xFF {
			m.v[0xF] = 1
		} else {
			m.v[0xF] = 0
		}

	case OpSUB:
		borrow := m.v[in.X] < m.v[in.Y]
		m.v[in.X] = m.v[in.X] - m.v[in.Y]
		if borrow {
			m.v[0xF] = 0
		} else {
			m.v[0xF] = 1
		}

	case OpSHR:
		lsb := m.v[in.X] & 0x1
		m.v[in.X] = m.v[in.X] >> 1
		m.v[0xF] = lsb

	case OpSUBN:
		borrow := m.v[in.Y] < m.v[in.X]
		m.v[in.X] = m.v[in.Y] - m.v[in.X]
		if borrow {
			m.v[0xF] = 0
		} else {
			m.v[0xF] = 1
		}

	case OpSHL:
		msb := (m.v[in.X] >> 7) & 0x1
		m.v[in.X] = m.v[in.X] << 1
		m.v[0xF] = msb

	case OpSNEVxVy:
		if m.v[in.X] != m.v[in.Y] {
			m.pc += 2
		}

	case OpLDI:
		m.i = in.NNN

	case OpJPV0:
		m.pc = in.NNN + uint16(m.v[0])

	case OpRND:
		m.v[in.X] = byte(m.Rand.Intn(256)) & in.NN

	case OpDRW:
		m.drawSprite(in.X, in.Y, in.N)

	case OpSKP:
		if m.Keypad(m.v[in.X] & 0x0F) {
			m.pc += 2
		}

	case OpSKNP:
		if !m.Keypad(m.v[in.X] & 0x0F) {
			m.pc += 2
		}

	case OpLDVxDT:
		m.v[in.X] = m.delay

	case OpLDVxK:
		m.waitForKey(in.X, pcAtFetch)

	case OpLDDTVx:
		m.delay = m.v[in.X]

	case OpLDSTVx:
		m.sound = m.v[in.X]

	case OpADDIVx:
		m.i += uint16(m.v[in.X])

	case OpLDFVx:
		m.i = uint16(m.v[in.X]&0x0F) * fontGlyphBytes

	case OpLDBVx:
		m.storeBCD(in.X)

	case OpLDIVx:
		for idx := uint32(0); idx <= uint32(in.X); idx++ {
			addr := uint32(m.i) + idx
			if addr >= memSize {
				m.reportUnknown(m.pc, uint16(addr))
				break
			}
			m.ram[addr] = m.v[idx]
		}

	case OpLDVxI:
		for idx := uint32(0); idx <= uint32(in.X); idx++ {
			addr := uint32(m.i) + idx
			if addr >= memSize {
				m.reportUnknown(m.pc, uint16(addr))
				break
			}
			m.v[idx] = m.ram[addr]
		}

	default:
		m.reportUnknown(pcAtFetch, in.Raw)
	}

	return nil
}

// drawSprite implements DXYN: start coordinates wrap modulo the screen
// dimensions, but stepping across a sprite row clips at the right edge
// instead of wrapping, and a row that falls below the bottom edge stops
// the whole draw.
func (m *Machine) drawSprite(xReg, yReg, n byte) {
	sx := int(m.v[xReg]) % displayWidth
	sy := int(m.v[yReg]) % displayHigh
	m.v[0xF] = 0

	for row := 0; row < int(n); row++ {
		py := sy + row
		if py >= displayHigh {
			break
		}
		addr := uint32(m.i) + uint32(row)
		if addr >= memSize {
			m.reportUnknown(m.pc, uint16(addr))
			break
		}
		spriteByte := m.ram[addr]

		for bit := 7; bit >= 0; bit-- {
			px := sx + (7 - bit)
			if px >= displayWidth {
				break
			}
			if (spriteByte>>uint(bit))&1 == 0 {
				continue
			}
			idx := py*displayWidth + px
			if m.fb[idx] {
				m.v[0xF] = 1
			}
			m.fb[idx] = !m.fb[idx]
		}
	}
}

// waitForKey implements FX0A: if any key is held, the lowest-indexed one
// wins and PC is left at the already-incremented position after this
// instruction.
// Otherwise PC is rewound to re-execute this instruction next cycle,
// which preserves timer ticks while waiting.
func (m *Machine) waitForKey(x byte, pcAtFetch uint16) {
	for k := 0; k < numKeys; k++ {
		if m.keypad[k] {
			m.v[x] = byte(k)
			return
		}
	}
	m.pc = pcAtFetch
}

// storeBCD implements FX33. Per spec.md's open question, an out-of-range I
// is treated as a recoverable guest error: the whole 3-byte write is
// reported via the trace hook and skipped, rather than writing whichever
// digits happen to still land in bounds.
func (m *Machine) storeBCD(x byte) {
	if uint32(m.i)+2 >= memSize {
		m.reportUnknown(m.pc, m.i)
		return
	}

	val := m.v[x]
	digits := [3]byte{val / 100, (val / 10) % 10, val % 10}
	for off, d := range digits {
		m.ram[int(m.i)+off] = d
	}
}

func (m *Machine) reportUnknown(pc, op uint16) {
	if m.trace == nil {
		return
	}
	if m.tracedOps[op] {
		return
	}
	m.tracedOps[op] = true
	m.trace(pc, op)
}
