// Package asm turns MIPS assembly source into the decoded instruction
// stream the pipeline executes. Parsing is a pure, one-shot pass that runs
// entirely before the core starts: there is no relocation, no linking, and
// no symbolic labels, so every instruction is independent of every other.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sarchlab/mipspipe/insts"
)

// ParseError reports a source-level problem found while parsing a single
// line. Line is 1-indexed; Col is a byte offset into the line, or 0 when
// no location is available. The parser in this package always reports 0.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Col > 0 {
		return fmt.Sprintf("line %d col %d: %s", e.Line, e.Col, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func parseErr(line, col int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// isDelimiter reports whether r separates two operand tokens. lw/sw's
// "offset($rs)" form is tokenized the same way as any other operand list:
// the parens are just more delimiters.
func isDelimiter(r rune) bool {
	switch r {
	case ' ', '\t', ',', '(', ')', ';':
		return true
	default:
		return false
	}
}

// Tokenize splits a line of assembly into its whitespace/comma/paren
// separated fields, dropping a trailing "#" comment first. A blank or
// comment-only line tokenizes to nil.
func Tokenize(line string) []string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.FieldsFunc(line, isDelimiter)
}

// registerNames maps the symbolic MIPS register names to their index,
// following the standard calling convention (the same table assemblers for
// this ISA have always used).
var registerNames = map[string]uint8{
	"zero": 0,
	"at":   1,
	"v0":   2, "v1": 3,
	"a0": 4, "a1": 5, "a2": 6, "a3": 7,
	"t0": 8, "t1": 9, "t2": 10, "t3": 11, "t4": 12, "t5": 13, "t6": 14, "t7": 15,
	"s0": 16, "s1": 17, "s2": 18, "s3": 19, "s4": 20, "s5": 21, "s6": 22, "s7": 23,
	"t8": 24, "t9": 25,
	"k0": 26, "k1": 27,
	"gp": 28,
	"sp": 29,
	"fp": 30,
	"ra": 31,
}

// ResolveRegister maps a register token, with or without its leading "$",
// to its 0-31 index. Both numeric ($0-$31) and symbolic ($zero, $t0, ...)
// forms are accepted.
func ResolveRegister(name string) (uint8, error) {
	name = strings.TrimPrefix(name, "$")
	if name == "" {
		return 0, fmt.Errorf("empty register name")
	}

	if name[0] >= '0' && name[0] <= '9' {
		n, err := strconv.Atoi(name)
		if err != nil || n < 0 || n > 31 {
			return 0, fmt.Errorf("invalid register number: $%s", name)
		}
		return uint8(n), nil
	}

	if idx, ok := registerNames[name]; ok {
		return idx, nil
	}
	return 0, fmt.Errorf("unrecognized register name: $%s", name)
}

func mustRegister(tok string, lineNo int) (uint8, error) {
	reg, err := ResolveRegister(tok)
	if err != nil {
		return 0, parseErr(lineNo, 0, "%s", err)
	}
	return reg, nil
}

func parseImmediate(tok string, lineNo int) (int16, error) {
	n, err := strconv.ParseInt(tok, 0, 32)
	if err != nil {
		return 0, parseErr(lineNo, 0, "expected an immediate, found %q", tok)
	}
	if n < -32768 || n > 32767 {
		return 0, parseErr(lineNo, 0, "immediate %d out of range [-32768, 32767]", n)
	}
	return int16(n), nil
}

// opcodes maps a lowercased mnemonic to its Op. "haltsimulation" is the
// mnemonic this ISA uses for HALT.
var opcodes = map[string]insts.Op{
	"add":            insts.OpADD,
	"addi":           insts.OpADDI,
	"sub":            insts.OpSUB,
	"mul":            insts.OpMUL,
	"beq":            insts.OpBEQ,
	"lw":             insts.OpLW,
	"sw":             insts.OpSW,
	"haltsimulation": insts.OpHALT,
}

// ParseProgram reads r line by line and returns the decoded instruction
// stream. Blank lines and "#" comments are ignored. Parsing stops at, and
// includes, the first haltSimulation instruction found; returns the first
// ParseError encountered.
func ParseProgram(r io.Reader) ([]insts.Instruction, error) {
	var program []insts.Instruction

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		tokens := Tokenize(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		inst, err := parseInstruction(tokens, lineNo)
		if err != nil {
			return nil, err
		}
		program = append(program, inst)
		if inst.Op == insts.OpHALT {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	return program, nil
}

func parseInstruction(tokens []string, lineNo int) (insts.Instruction, error) {
	mnemonic := strings.ToLower(tokens[0])
	op, ok := opcodes[mnemonic]
	if !ok {
		return insts.Instruction{}, parseErr(lineNo, 0, "unrecognized instruction %q", tokens[0])
	}

	inst := insts.New(op)
	inst.Line = lineNo

	switch op {
	case insts.OpHALT:
		return inst, nil
	case insts.OpADD, insts.OpSUB, insts.OpMUL:
		return parseRType(inst, tokens, lineNo)
	case insts.OpADDI:
		return parseAddi(inst, tokens, lineNo)
	case insts.OpBEQ:
		return parseBeq(inst, tokens, lineNo)
	case insts.OpLW, insts.OpSW:
		return parseLwSw(inst, tokens, lineNo)
	default:
		return insts.Instruction{}, parseErr(lineNo, 0, "unrecognized instruction %q", tokens[0])
	}
}

// operandCount checks tokens (including the mnemonic) has exactly want
// entries, returning a ParseError naming the instruction if not.
func operandCount(tokens []string, want int, lineNo int) error {
	if len(tokens) != want {
		return parseErr(lineNo, 0, "%q expects %d operands, got %d", tokens[0], want-1, len(tokens)-1)
	}
	return nil
}

// parseRType parses "op rd, rs, rt".
func parseRType(inst insts.Instruction, tokens []string, lineNo int) (insts.Instruction, error) {
	if err := operandCount(tokens, 4, lineNo); err != nil {
		return insts.Instruction{}, err
	}
	rd, err := mustRegister(tokens[1], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	rs, err := mustRegister(tokens[2], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	rt, err := mustRegister(tokens[3], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	inst.Rd = rd
	inst.Rs = int16(rs)
	inst.Rt = int16(rt)
	return inst, nil
}

// parseAddi parses "addi rt, rs, imm". Rt carries the destination index
// pre-dispatch; decode later mirrors it into Rd.
func parseAddi(inst insts.Instruction, tokens []string, lineNo int) (insts.Instruction, error) {
	if err := operandCount(tokens, 4, lineNo); err != nil {
		return insts.Instruction{}, err
	}
	rt, err := mustRegister(tokens[1], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	rs, err := mustRegister(tokens[2], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	imm, err := parseImmediate(tokens[3], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	inst.Rt = int16(rt)
	inst.Rs = int16(rs)
	inst.Immediate = imm
	return inst, nil
}

// parseBeq parses "beq rt, rs, offset".
func parseBeq(inst insts.Instruction, tokens []string, lineNo int) (insts.Instruction, error) {
	if err := operandCount(tokens, 4, lineNo); err != nil {
		return insts.Instruction{}, err
	}
	rt, err := mustRegister(tokens[1], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	rs, err := mustRegister(tokens[2], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	imm, err := parseImmediate(tokens[3], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	inst.Rt = int16(rt)
	inst.Rs = int16(rs)
	inst.Immediate = imm
	return inst, nil
}

// parseLwSw parses "op rt, offset(rs)"; Tokenize has already reduced the
// parens to plain delimiters, so the tokens read as "op rt offset rs".
func parseLwSw(inst insts.Instruction, tokens []string, lineNo int) (insts.Instruction, error) {
	if err := operandCount(tokens, 4, lineNo); err != nil {
		return insts.Instruction{}, err
	}
	rt, err := mustRegister(tokens[1], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	imm, err := parseImmediate(tokens[2], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	rs, err := mustRegister(tokens[3], lineNo)
	if err != nil {
		return insts.Instruction{}, err
	}
	if imm%4 != 0 {
		return insts.Instruction{}, parseErr(lineNo, 0, "misaligned memory access: offset %d is not a multiple of 4", imm)
	}
	inst.Rt = int16(rt)
	inst.Immediate = imm
	inst.Rs = int16(rs)
	return inst, nil
}
