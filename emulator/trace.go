package emulator

import (
	"math/bits"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/log"
)

// traceInstruction logs the instruction about to be executed when tracing is enabled.
func (c8 *Chip8) traceInstruction(address uint16, in instruction) {
	if !c8.trace || c8.logger == nil {
		return
	}

	c8.logger.Debug("Executing instruction",
		log.Hex("address", address),
		log.Hex("opcode", in.word),
		log.String("instruction", mnemonic(in.word)),
	)
}

// mnemonic returns the instruction name for an opcode word. When several table entries
// match, the one with the most specific mask wins, so that 00E0 is not reported as SYS.
func mnemonic(word uint16) string {
	var name string
	specificity := -1

	for _, op := range chip8.Opcodes[int(word>>12)] {
		if op.Instruction == nil || op.Info.Mask&word != op.Info.Value {
			continue
		}
		if ones := bits.OnesCount16(op.Info.Mask); ones > specificity {
			name = op.Instruction.Name
			specificity = ones
		}
	}

	if name == "" {
		return "unknown"
	}
	return name
}
