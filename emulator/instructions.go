package emulator

import "fmt"

/*
INSTRUCTIONS IMPLEMENTATION

Every handler returns how the program counter moves afterwards: to the next instruction,
over the next instruction, or to an absolute address.
See this documentation for more details:
https://github.com/mattmikolay/chip-8/wiki/CHIP%E2%80%908-Instruction-Set
*/

/*
00E0: CLS
Clear the display.
*/
func (c8 *Chip8) op00E0() pcUpdate {
	c8.screen.reset()
	c8.dirty = true
	return next()
}

/*
00EE: RET
Return from a subroutine.
The stack pointer is decremented and the program counter is set to the address in that slot.
*/
func (c8 *Chip8) op00EE() (pcUpdate, error) {
	if c8.stackPointer == 0 {
		return pcUpdate{}, ErrStackUnderflow
	}

	c8.stackPointer--
	return jump(c8.stack[c8.stackPointer]), nil
}

/*
1nnn: JP addr
Jump to location nnn.
*/
func (c8 *Chip8) op1nnn(in instruction) pcUpdate {
	return jump(in.nnn())
}

/*
2nnn: CALL addr
Call subroutine at nnn.
The address of the following instruction is pushed so that 00EE resumes after the call.
*/
func (c8 *Chip8) op2nnn(in instruction) (pcUpdate, error) {
	if c8.stackPointer >= stackSize {
		return pcUpdate{}, fmt.Errorf("%w: %d frames in use", ErrStackOverflow, c8.stackPointer)
	}

	c8.stack[c8.stackPointer] = c8.programCounter + 2
	c8.stackPointer++
	return jump(in.nnn()), nil
}

/*
3xkk: SE Vx, byte
Skip next instruction if Vx = kk.
*/
func (c8 *Chip8) op3xkk(in instruction) pcUpdate {
	return skipIf(c8.registers[in.x] == in.kk())
}

/*
4xkk: SNE Vx, byte
Skip next instruction if Vx != kk.
*/
func (c8 *Chip8) op4xkk(in instruction) pcUpdate {
	return skipIf(c8.registers[in.x] != in.kk())
}

/*
5xy0: SE Vx, Vy
Skip next instruction if Vx = Vy.
*/
func (c8 *Chip8) op5xy0(in instruction) pcUpdate {
	return skipIf(c8.registers[in.x] == c8.registers[in.y])
}

/*
6xkk: LD Vx, byte
Set Vx = kk.
*/
func (c8 *Chip8) op6xkk(in instruction) pcUpdate {
	c8.registers[in.x] = in.kk()
	return next()
}

/*
7xkk: ADD Vx, byte
Set Vx = Vx + kk. The result wraps around and VF is not touched.
*/
func (c8 *Chip8) op7xkk(in instruction) pcUpdate {
	c8.registers[in.x] += in.kk()
	return next()
}

/*
8xy0: LD Vx, Vy
Set Vx = Vy.
*/
func (c8 *Chip8) op8xy0(in instruction) pcUpdate {
	c8.registers[in.x] = c8.registers[in.y]
	return next()
}

// 8xy1: OR Vx, Vy
func (c8 *Chip8) op8xy1(in instruction) pcUpdate {
	c8.registers[in.x] |= c8.registers[in.y]
	return next()
}

// 8xy2: AND Vx, Vy
func (c8 *Chip8) op8xy2(in instruction) pcUpdate {
	c8.registers[in.x] &= c8.registers[in.y]
	return next()
}

// 8xy3: XOR Vx, Vy
func (c8 *Chip8) op8xy3(in instruction) pcUpdate {
	c8.registers[in.x] ^= c8.registers[in.y]
	return next()
}

/*
8xy4: ADD Vx, Vy
Set Vx = Vx + Vy, set VF = carry.
If the sum is greater than 8 bits VF is set to 1, otherwise 0. Only the lowest 8 bits are kept in Vx.
The flag is written last, so it wins when x is F.
*/
func (c8 *Chip8) op8xy4(in instruction) pcUpdate {
	sum := uint16(c8.registers[in.x]) + uint16(c8.registers[in.y])

	c8.registers[in.x] = byte(sum)
	c8.registers[flagIndex] = boolToByte(sum > 0xFF)
	return next()
}

/*
8xy5: SUB Vx, Vy
Set Vx = Vx - Vy, set VF = NOT borrow.
If Vx > Vy before the subtraction VF is set to 1, otherwise 0.
*/
func (c8 *Chip8) op8xy5(in instruction) pcUpdate {
	vx, vy := c8.registers[in.x], c8.registers[in.y]

	c8.registers[in.x] = vx - vy
	c8.registers[flagIndex] = boolToByte(vx > vy)
	return next()
}

/*
8xy6: SHR Vx
Set Vx = Vx SHR 1, VF receives the bit that was shifted out.
*/
func (c8 *Chip8) op8xy6(in instruction) pcUpdate {
	vx := c8.registers[in.x]

	c8.registers[in.x] = vx >> 1
	c8.registers[flagIndex] = vx & 0x01
	return next()
}

/*
8xy7: SUBN Vx, Vy
Set Vx = Vy - Vx, set VF = NOT borrow.
If Vy > Vx before the subtraction VF is set to 1, otherwise 0.
*/
func (c8 *Chip8) op8xy7(in instruction) pcUpdate {
	vx, vy := c8.registers[in.x], c8.registers[in.y]

	c8.registers[in.x] = vy - vx
	c8.registers[flagIndex] = boolToByte(vy > vx)
	return next()
}

/*
8xyE: SHL Vx
Set Vx = Vx SHL 1, VF receives the most significant bit that was shifted out.
*/
func (c8 *Chip8) op8xyE(in instruction) pcUpdate {
	vx := c8.registers[in.x]

	c8.registers[in.x] = vx << 1
	c8.registers[flagIndex] = vx >> 7
	return next()
}

/*
9xy0: SNE Vx, Vy
Skip next instruction if Vx != Vy.
*/
func (c8 *Chip8) op9xy0(in instruction) pcUpdate {
	return skipIf(c8.registers[in.x] != c8.registers[in.y])
}

/*
Annn: LD I, addr
Set I = nnn.
*/
func (c8 *Chip8) opAnnn(in instruction) pcUpdate {
	c8.indexRegister = in.nnn()
	return next()
}

/*
Bnnn: JP V0, addr
Jump to location nnn + V0.
*/
func (c8 *Chip8) opBnnn(in instruction) pcUpdate {
	return jump(in.nnn() + uint16(c8.registers[0]))
}

/*
Cxkk: RND Vx, byte
Set Vx = random byte AND kk.
*/
func (c8 *Chip8) opCxkk(in instruction) pcUpdate {
	c8.registers[in.x] = c8.randomByte() & in.kk()
	return next()
}

/*
Dxyn: DRW Vx, Vy, nibble
Display n-byte sprite starting at memory location I at (Vx, Vy), set VF = collision.

Every sprite row is one byte wide, the most significant bit is the leftmost pixel. Sprite pixels are
XORed onto the screen and wrap around to the opposite edge when they would leave it.
VF is cleared first and set to 1 if any lit pixel gets erased.
*/
func (c8 *Chip8) opDxyn(in instruction) pcUpdate {
	originX := int(c8.registers[in.x])
	originY := int(c8.registers[in.y])

	c8.registers[flagIndex] = 0
	for row := range int(in.n) {
		sprite := c8.read(c8.indexRegister + uint16(row))
		y := (originY + row) % Height

		for col := range 8 {
			if sprite&(0x80>>col) == 0 {
				continue
			}

			x := (originX + col) % Width
			if c8.screen.toggle(x, y) {
				c8.registers[flagIndex] = 1
			}
		}
	}

	c8.dirty = true
	return next()
}

/*
Ex9E: SKP Vx
Skip next instruction if key with the value of Vx is pressed.
Only the low nibble of Vx selects the key.
*/
func (c8 *Chip8) opEx9E(in instruction) pcUpdate {
	key := c8.registers[in.x] & 0xF
	return skipIf(c8.keypad[key])
}

/*
ExA1: SKNP Vx
Skip next instruction if key with the value of Vx is not pressed.
*/
func (c8 *Chip8) opExA1(in instruction) pcUpdate {
	key := c8.registers[in.x] & 0xF
	return skipIf(!c8.keypad[key])
}

/*
Fx07: LD Vx, DT
Set Vx = delay timer value.
*/
func (c8 *Chip8) opFx07(in instruction) pcUpdate {
	c8.registers[in.x] = c8.delayTimer
	return next()
}

/*
Fx0A: LD Vx, K
Wait for a key press, store the value of the key in Vx.
The wait does not block: the machine enters the waiting state and the following cycles poll the keypad.
*/
func (c8 *Chip8) opFx0A(in instruction) pcUpdate {
	c8.waitingForKey = true
	c8.keyRegister = in.x
	return next()
}

/*
Fx15: LD DT, Vx
Set delay timer = Vx.
*/
func (c8 *Chip8) opFx15(in instruction) pcUpdate {
	c8.delayTimer = c8.registers[in.x]
	return next()
}

/*
Fx18: LD ST, Vx
Set sound timer = Vx.
*/
func (c8 *Chip8) opFx18(in instruction) pcUpdate {
	c8.soundTimer = c8.registers[in.x]
	return next()
}

/*
Fx1E: ADD I, Vx
Set I = I + Vx.
With the index overflow flag enabled VF is set to 1 when I leaves the 12-bit address space, otherwise 0.
*/
func (c8 *Chip8) opFx1E(in instruction) pcUpdate {
	sum := uint32(c8.indexRegister) + uint32(c8.registers[in.x])

	c8.indexRegister = uint16(sum)
	if c8.indexOverflowFlag {
		c8.registers[flagIndex] = boolToByte(sum > addressMask)
	}
	return next()
}

/*
Fx29: LD F, Vx
Set I = location of sprite for digit Vx.
The glyphs are five bytes each starting at the font base address.
*/
func (c8 *Chip8) opFx29(in instruction) pcUpdate {
	digit := uint16(c8.registers[in.x])

	c8.indexRegister = FontStartAddress + glyphSize*digit
	return next()
}

/*
Fx33: LD B, Vx
Store BCD representation of Vx in memory locations I, I+1, and I+2.
*/
func (c8 *Chip8) opFx33(in instruction) pcUpdate {
	value := c8.registers[in.x]

	c8.write(c8.indexRegister, value/100)
	c8.write(c8.indexRegister+1, (value/10)%10)
	c8.write(c8.indexRegister+2, value%10)
	return next()
}

/*
Fx55: LD [I], Vx
Store registers V0 through Vx in memory starting at location I. I itself is left unchanged.
*/
func (c8 *Chip8) opFx55(in instruction) pcUpdate {
	for i := range uint16(in.x) + 1 {
		c8.write(c8.indexRegister+i, c8.registers[i])
	}
	return next()
}

/*
Fx65: LD Vx, [I]
Read registers V0 through Vx from memory starting at location I.
*/
func (c8 *Chip8) opFx65(in instruction) pcUpdate {
	for i := range uint16(in.x) + 1 {
		c8.registers[i] = c8.read(c8.indexRegister + i)
	}
	return next()
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
