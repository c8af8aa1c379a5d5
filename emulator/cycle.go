package emulator

import "fmt"

// instruction is a decoded opcode word split into its four nibbles.
type instruction struct {
	word  uint16
	group byte
	x     byte
	y     byte
	n     byte
}

func decode(word uint16) instruction {
	return instruction{
		word:  word,
		group: byte(word >> 12),
		x:     byte(word>>8) & 0xF,
		y:     byte(word>>4) & 0xF,
		n:     byte(word) & 0xF,
	}
}

// kk is the lowest 8 bits of the instruction.
func (in instruction) kk() byte {
	return byte(in.word)
}

// nnn is the lowest 12 bits of the instruction, an address.
func (in instruction) nnn() uint16 {
	return in.word & 0x0FFF
}

type pcAction uint8

const (
	pcNext pcAction = iota
	pcSkip
	pcJump
)

// pcUpdate tells the cycle how to move the program counter after an instruction executed.
type pcUpdate struct {
	action  pcAction
	address uint16
}

func next() pcUpdate {
	return pcUpdate{action: pcNext}
}

func jump(address uint16) pcUpdate {
	return pcUpdate{action: pcJump, address: address}
}

func skipIf(condition bool) pcUpdate {
	if condition {
		return pcUpdate{action: pcSkip}
	}
	return next()
}

/*
Advance runs one cycle of the machine with the given keypad state.

While the machine waits for a key (Fx0A) a cycle only scans the keypad: the lowest pressed key is stored
and the wait ends, timers are not decremented and no instruction is fetched.
Otherwise a cycle decrements the timers, then fetches, decodes and executes exactly one instruction.

The returned error is only set when the program corrupts the call stack, the machine should not be
advanced any further in that case.
*/
func (c8 *Chip8) Advance(keys Keypad) (Output, error) {
	c8.keypad = keys
	c8.dirty = false

	var err error
	if c8.waitingForKey {
		c8.serviceKeyWait()
	} else {
		err = c8.cycle()
	}

	return Output{
		Framebuffer: &c8.screen,
		Dirty:       c8.dirty,
		Sound:       c8.soundTimer > 0,
	}, err
}

func (c8 *Chip8) serviceKeyWait() {
	for key, pressed := range c8.keypad {
		if pressed {
			c8.registers[c8.keyRegister] = byte(key)
			c8.waitingForKey = false
			return
		}
	}
}

func (c8 *Chip8) cycle() error {
	if c8.delayTimer > 0 {
		c8.delayTimer--
	}
	if c8.soundTimer > 0 {
		c8.soundTimer--
	}

	address := c8.programCounter
	in := decode(c8.fetch())
	c8.traceInstruction(address, in)

	update, err := c8.execute(in)
	if err != nil {
		return fmt.Errorf("executing opcode %04X at %03X: %w", in.word, address, err)
	}

	switch update.action {
	case pcNext:
		c8.programCounter += 2
	case pcSkip:
		c8.programCounter += 4
	case pcJump:
		c8.programCounter = update.address
	}
	return nil
}

// fetch combines the two bytes at the program counter into one big endian opcode word.
func (c8 *Chip8) fetch() uint16 {
	return uint16(c8.read(c8.programCounter))<<8 | uint16(c8.read(c8.programCounter+1))
}

// execute dispatches a decoded instruction to its handler.
// Words that match no instruction are ignored and the program counter advances normally.
func (c8 *Chip8) execute(in instruction) (pcUpdate, error) {
	switch in.group {
	case 0x0:
		switch in.word {
		case 0x00E0:
			return c8.op00E0(), nil
		case 0x00EE:
			return c8.op00EE()
		}
	case 0x1:
		return c8.op1nnn(in), nil
	case 0x2:
		return c8.op2nnn(in)
	case 0x3:
		return c8.op3xkk(in), nil
	case 0x4:
		return c8.op4xkk(in), nil
	case 0x5:
		if in.n == 0x0 {
			return c8.op5xy0(in), nil
		}
	case 0x6:
		return c8.op6xkk(in), nil
	case 0x7:
		return c8.op7xkk(in), nil
	case 0x8:
		return c8.executeArithmetic(in), nil
	case 0x9:
		if in.n == 0x0 {
			return c8.op9xy0(in), nil
		}
	case 0xA:
		return c8.opAnnn(in), nil
	case 0xB:
		return c8.opBnnn(in), nil
	case 0xC:
		return c8.opCxkk(in), nil
	case 0xD:
		return c8.opDxyn(in), nil
	case 0xE:
		switch in.kk() {
		case 0x9E:
			return c8.opEx9E(in), nil
		case 0xA1:
			return c8.opExA1(in), nil
		}
	case 0xF:
		return c8.executeMisc(in), nil
	}

	return next(), nil
}

func (c8 *Chip8) executeArithmetic(in instruction) pcUpdate {
	switch in.n {
	case 0x0:
		return c8.op8xy0(in)
	case 0x1:
		return c8.op8xy1(in)
	case 0x2:
		return c8.op8xy2(in)
	case 0x3:
		return c8.op8xy3(in)
	case 0x4:
		return c8.op8xy4(in)
	case 0x5:
		return c8.op8xy5(in)
	case 0x6:
		return c8.op8xy6(in)
	case 0x7:
		return c8.op8xy7(in)
	case 0xE:
		return c8.op8xyE(in)
	}
	return next()
}

func (c8 *Chip8) executeMisc(in instruction) pcUpdate {
	switch in.kk() {
	case 0x07:
		return c8.opFx07(in)
	case 0x0A:
		return c8.opFx0A(in)
	case 0x15:
		return c8.opFx15(in)
	case 0x18:
		return c8.opFx18(in)
	case 0x1E:
		return c8.opFx1E(in)
	case 0x29:
		return c8.opFx29(in)
	case 0x33:
		return c8.opFx33(in)
	case 0x55:
		return c8.opFx55(in)
	case 0x65:
		return c8.opFx65(in)
	}
	return next()
}
