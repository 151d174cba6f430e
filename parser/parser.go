package parser

import (
	"strconv"
	"strings"
)

// Operand is one resolved instruction operand: its addressing mode plus
// whatever the mode needs to encode it later (spec.md §4.3 step 5, §4.4).
type Operand struct {
	Mode  AddressingMode
	Text  string // register name or symbol name; unused for IMMEDIATE
	Value int    // parsed value; only meaningful when Mode == AddrImmediate
}

// ExtraWord reports whether this operand contributes a second machine word
// (IMMEDIATE, DIRECT, and RELATIVE each do; REGISTER never does, since two
// register operands share one word — spec.md §4.4, §9).
func (o *Operand) ExtraWord() bool {
	return o != nil && o.Mode != AddrRegister
}

// Instruction is a parsed instruction statement (spec.md §4.3).
type Instruction struct {
	Label    string // "" if none
	Mnemonic string
	Info     InstructionInfo
	Src      *Operand // nil if the instruction has no source slot
	Dst      *Operand // nil if the instruction has no destination slot
	Pos      Position
}

// WordCount returns the number of machine words this instruction occupies:
// one header word plus one per operand that needs an extra word. Register
// operands add no word, since their numbers live in the header word, so two
// register operands give a count of 1 (spec.md §9).
func (inst *Instruction) WordCount() int {
	n := 1
	if inst.Src.ExtraWord() {
		n++
	}
	if inst.Dst.ExtraWord() {
		n++
	}
	return n
}

// DirectiveKind distinguishes the four directive statements.
type DirectiveKind int

const (
	DirData DirectiveKind = iota
	DirString
	DirEntry
	DirExtern
)

// Directive is a parsed directive statement (spec.md §4.3).
type Directive struct {
	Label string
	Kind  DirectiveKind
	Ints  []int  // .data operand values, in source order
	Str   string // .string contents, quotes stripped
	Name  string // .entry / .extern operand
	Pos   Position
}

// WordCount returns the number of data words a .data or .string directive
// contributes; 0 for .entry and .extern, which emit no words at all.
func (d *Directive) WordCount() int {
	switch d.Kind {
	case DirData:
		return len(d.Ints)
	case DirString:
		return len(d.Str) + 1 // + NUL terminator, spec.md §4.3
	default:
		return 0
	}
}

// Statement is one parsed source line: exactly one of Inst or Dir is set,
// unless parsing abandoned the line entirely (both nil).
type Statement struct {
	Inst *Instruction
	Dir  *Directive
	Pos  Position
}

// ParseLine parses one already-tokenized line into a Statement, per
// spec.md §4.3's five steps. When validate is false (second pass, where the
// line already parsed clean in the first pass) structural diagnostics are
// suppressed; the operand/addressing-mode structure is still built so the
// encoder has something to work with.
func ParseLine(tokens []Token, pos Position, validate bool, errs *ErrorList, limits Limits) *Statement {
	idx := 0
	label := ""

	if len(tokens) > 0 {
		switch tokens[0].Kind {
		case TokLabel:
			label = tokens[0].Lexeme
			idx = 1
			if idx < len(tokens) && tokens[idx].Kind == TokColon {
				idx++
			}
		case TokIdentifier:
			// A bare identifier can only legally appear as an operand, never
			// as the first token of a statement — so at this position it is
			// always an attempted label lacking its colon.
			if validate {
				errs.Add(NewError(ErrLabelMissingColon, pos, tokens[0].Lexeme, "label is missing its colon"))
			}
			return nil
		}
	}

	rest := tokens[idx:]
	if len(rest) == 0 {
		if validate {
			errs.Add(NewError(ErrInvalidStatement, pos, "", "empty statement"))
		}
		return nil
	}

	switch {
	case rest[0].Kind == TokInstruction:
		return parseInstruction(label, rest, pos, validate, errs, limits)

	case rest[0].Kind == TokDot && len(rest) > 1 && isDirectiveKind(rest[1].Kind):
		return parseDirective(label, rest[1].Kind, rest[2:], pos, validate, errs, limits)

	case isDirectiveKind(rest[0].Kind):
		if validate {
			errs.Add(NewError(ErrDirDotMissing, pos, "", "directive is missing its leading '.'"))
		}
		return parseDirective(label, rest[0].Kind, rest[1:], pos, validate, errs, limits)

	default:
		if validate {
			errs.Add(NewError(ErrInvalidStatement, pos, rest[0].Lexeme, "statement is neither an instruction nor a directive"))
		}
		return nil
	}
}

// splitOperandGroups breaks an instruction's operand tokens at top-level
// commas, returning one token slice per operand slot (possibly empty).
func splitOperandGroups(toks []Token) ([][]Token, int) {
	var groups [][]Token
	var cur []Token
	commas := 0
	for _, t := range toks {
		if t.Kind == TokComma {
			commas++
			groups = append(groups, cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	groups = append(groups, cur)
	return groups, commas
}

func parseInstruction(label string, rest []Token, pos Position, validate bool, errs *ErrorList, limits Limits) *Statement {
	mnemonic := rest[0].Lexeme
	info := ISA[mnemonic]
	groups, commas := splitOperandGroups(rest[1:])

	nonEmpty := groups
	if len(groups) == 1 && len(groups[0]) == 0 {
		nonEmpty = nil
	}

	inst := &Instruction{Label: label, Mnemonic: mnemonic, Info: info, Pos: pos}

	switch info.NumOperands {
	case 0:
		if validate && len(nonEmpty) > 0 {
			errs.Add(NewError(ErrWrongOperandCount, pos, mnemonic, "%s takes no operands", mnemonic))
		}

	case 1:
		if validate && commas != 0 {
			errs.Add(NewError(ErrInstIllegalNumComma, pos, mnemonic, "%s takes exactly one operand", mnemonic))
		}
		if len(nonEmpty) == 0 {
			if validate {
				errs.Add(NewError(ErrWrongOperandCount, pos, mnemonic, "%s requires one operand", mnemonic))
			}
			break
		}
		// A single operand always occupies the destination slot (spec.md §4.3 step 4).
		inst.Dst = resolveOperand(groups[0], pos, validate, errs, limits)
		checkMode(inst.Dst, info.DstModes, pos, validate, errs)

	case 2:
		if validate && commas != 1 {
			errs.Add(NewError(ErrInstIllegalNumComma, pos, mnemonic, "%s takes exactly two operands separated by one comma", mnemonic))
		}
		if len(groups) < 2 {
			if validate {
				errs.Add(NewError(ErrWrongOperandCount, pos, mnemonic, "%s requires two operands", mnemonic))
			}
			break
		}
		inst.Src = resolveOperand(groups[0], pos, validate, errs, limits)
		inst.Dst = resolveOperand(groups[1], pos, validate, errs, limits)
		checkMode(inst.Src, info.SrcModes, pos, validate, errs)
		checkMode(inst.Dst, info.DstModes, pos, validate, errs)
	}

	return &Statement{Inst: inst, Pos: pos}
}

func checkMode(op *Operand, allowed AddressingMode, pos Position, validate bool, errs *ErrorList) {
	if !validate || op == nil {
		return
	}
	if allowed&op.Mode == 0 {
		errs.Add(NewError(ErrBadAddressingMode, pos, op.Text, "addressing mode not permitted here"))
	}
}

// resolveOperand classifies one operand's token group into an addressing
// mode, per spec.md §4.3 step 5: '#' IMMEDIATE, '&' RELATIVE, a bare
// register REGISTER, a bare identifier DIRECT. Any other leading token is
// reported as an invalid operand and yields nil.
func resolveOperand(toks []Token, pos Position, validate bool, errs *ErrorList, limits Limits) *Operand {
	if len(toks) == 0 {
		if validate {
			errs.Add(NewError(ErrWrongOperandCount, pos, "", "missing operand"))
		}
		return nil
	}

	switch toks[0].Kind {
	case TokHash:
		if len(toks) < 2 {
			if validate {
				errs.Add(NewError(ErrInvalidImm, pos, "#", "missing value after '#'"))
			}
			return nil
		}
		value, err := strconv.Atoi(toks[1].Lexeme)
		if err != nil {
			if validate {
				errs.Add(NewError(ErrInvalidImm, pos, toks[1].Lexeme, "immediate value is not an integer"))
			}
			return &Operand{Mode: AddrImmediate, Text: toks[1].Lexeme}
		}
		if validate && (value < limits.MinImmediate || value > limits.MaxImmediate) {
			errs.Add(NewError(ErrImmOutOfBounds, pos, toks[1].Lexeme, "immediate value out of range"))
		}
		return &Operand{Mode: AddrImmediate, Text: toks[1].Lexeme, Value: value}

	case TokAmpersand:
		if len(toks) < 2 {
			if validate {
				errs.Add(NewError(ErrInvalidStatement, pos, "&", "missing label after '&'"))
			}
			return nil
		}
		return &Operand{Mode: AddrRelative, Text: toks[1].Lexeme}

	case TokRegister:
		return &Operand{Mode: AddrRegister, Text: toks[0].Lexeme}

	case TokIdentifier:
		return &Operand{Mode: AddrDirect, Text: toks[0].Lexeme}

	default:
		if validate {
			errs.Add(NewError(ErrInvalidStatement, pos, toks[0].Lexeme, "not a valid operand"))
		}
		return nil
	}
}

func parseDirective(label string, kind TokenKind, rest []Token, pos Position, validate bool, errs *ErrorList, limits Limits) *Statement {
	switch kind {
	case TokDirectiveData:
		return parseDataDirective(label, rest, pos, validate, errs, limits)
	case TokDirectiveString:
		return parseStringDirective(label, rest, pos, validate, errs)
	case TokDirectiveEntry:
		return parseEntryExtern(label, DirEntry, rest, pos, validate, errs)
	case TokDirectiveExtern:
		return parseEntryExtern(label, DirExtern, rest, pos, validate, errs)
	}
	return nil
}

// parseDataDirective validates the .data operand list in a single forward
// pass, reporting every illegal comma rather than stopping at the first
// (spec.md §9's resolution of the open question on comma-list validation).
func parseDataDirective(label string, rest []Token, pos Position, validate bool, errs *ErrorList, limits Limits) *Statement {
	dir := &Directive{Label: label, Kind: DirData, Pos: pos}

	if len(rest) == 0 {
		if validate {
			errs.Add(NewError(ErrInvalidData, pos, "", ".data requires at least one value"))
		}
		return &Statement{Dir: dir, Pos: pos}
	}

	expectingValue := true
	for _, t := range rest {
		if t.Kind == TokComma {
			if expectingValue && validate {
				errs.Add(NewError(ErrDataIllegalComma, pos, "", "illegal comma in .data list"))
			}
			expectingValue = true
			continue
		}

		if !expectingValue && validate {
			errs.Add(NewError(ErrDataIllegalComma, pos, t.Lexeme, "missing comma between .data values"))
		}

		value, err := strconv.Atoi(t.Lexeme)
		if err != nil {
			if validate {
				errs.Add(NewError(ErrInvalidData, pos, t.Lexeme, "value is not an integer"))
			}
		} else {
			if validate && (value < limits.MinImmediate || value > limits.MaxImmediate) {
				errs.Add(NewError(ErrImmOutOfBounds, pos, t.Lexeme, "value out of range"))
			}
			dir.Ints = append(dir.Ints, value)
		}
		expectingValue = false
	}

	if expectingValue && validate {
		errs.Add(NewError(ErrDataIllegalComma, pos, "", "illegal trailing comma in .data list"))
	}

	return &Statement{Dir: dir, Pos: pos}
}

// parseStringDirective validates the '"' ... '"' shape and strips the
// quotes, reconstructing inter-token spacing from each token's
// spacedBefore flag (spec.md §4.1's whitespace normalization already
// collapsed runs, so this is the closest recoverable approximation).
func parseStringDirective(label string, rest []Token, pos Position, validate bool, errs *ErrorList) *Statement {
	dir := &Directive{Label: label, Kind: DirString, Pos: pos}

	if len(rest) < 2 || rest[0].Kind != TokQuote || rest[len(rest)-1].Kind != TokQuote {
		if validate {
			errs.Add(NewError(ErrStrMissingQuote, pos, "", ".string is missing an opening or closing quote"))
		}
		return &Statement{Dir: dir, Pos: pos}
	}

	content := rest[1 : len(rest)-1]
	if len(content) > 0 {
		if content[0].Lexeme == "," && validate {
			errs.Add(NewError(ErrStrIllegalComma, pos, "", ".string contents may not begin with a comma"))
		}
		if content[len(content)-1].Lexeme == "," && validate {
			errs.Add(NewError(ErrStrIllegalComma, pos, "", ".string contents may not end with a comma"))
		}
	}

	dir.Str = joinTokens(content)
	return &Statement{Dir: dir, Pos: pos}
}

func joinTokens(toks []Token) string {
	var sb strings.Builder
	for i, t := range toks {
		if i > 0 && t.spacedBefore {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Lexeme)
	}
	return sb.String()
}

func parseEntryExtern(label string, kind DirectiveKind, rest []Token, pos Position, validate bool, errs *ErrorList) *Statement {
	word := "entry"
	if kind == DirExtern {
		word = "extern"
	}
	dir := &Directive{Label: label, Kind: kind, Pos: pos}

	if len(rest) != 1 || (rest[0].Kind != TokIdentifier && rest[0].Kind != TokLabel) {
		if validate {
			errs.Add(NewError(ErrWrongOperandCount, pos, "", ".%s requires exactly one symbol name", word))
		}
		return &Statement{Dir: dir, Pos: pos}
	}

	dir.Name = rest[0].Lexeme
	return &Statement{Dir: dir, Pos: pos}
}

// ValidateLabelName applies spec.md §4.5's label-definition checks shared by
// the parser and the assembler's first pass. It reports every violation it
// finds rather than stopping at the first.
func ValidateLabelName(name string, pos Position, errs *ErrorList, limits Limits) bool {
	ok := true
	if name == "" {
		errs.Add(NewError(ErrLabelEmpty, pos, "", "label is empty"))
		return false
	}
	if len(name) > limits.MaxLabelLen {
		errs.Add(NewError(ErrLabelMaxLen, pos, name, "label exceeds %d characters", limits.MaxLabelLen))
		ok = false
	}
	if isDigit(name[0]) {
		errs.Add(NewError(ErrLabelStartsWithDigit, pos, name, "label starts with a digit"))
		ok = false
	}
	if !isIdentLexeme(name) {
		errs.Add(NewError(ErrLabelInvalidChar, pos, name, "label contains an invalid character"))
		ok = false
	}
	if IsInstruction(name) {
		errs.Add(NewError(ErrLabelCollidesInstruction, pos, name, "label collides with an instruction mnemonic"))
		ok = false
	}
	if IsRegister(name) {
		errs.Add(NewError(ErrLabelCollidesRegister, pos, name, "label collides with a register name"))
		ok = false
	}
	if IsDirective(name) {
		errs.Add(NewError(ErrLabelCollidesDirective, pos, name, "label collides with a directive keyword"))
		ok = false
	}
	return ok
}
