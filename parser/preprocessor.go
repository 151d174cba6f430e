package parser

import "strings"

type ppState int

const (
	ppDefault ppState = iota
	ppMacro
)

// Preprocessor implements spec.md §4.1's two-state machine: DEFAULT accepts
// ordinary lines and macro-call sites, MACRO buffers a macro body between
// `mcro NAME` and `mcroend`. It never aborts on a bad macro definition —
// the definition is simply not stored, and the file keeps processing.
type Preprocessor struct {
	macros *MacroTable
	errors *ErrorList
	limits Limits
}

// NewPreprocessor creates an empty preprocessor bound to the given limits.
func NewPreprocessor(limits Limits) *Preprocessor {
	return &Preprocessor{macros: NewMacroTable(), errors: &ErrorList{}, limits: limits}
}

// Errors returns every diagnostic raised while processing the file so far.
func (p *Preprocessor) Errors() *ErrorList { return p.errors }

// Macros returns the table of macros stored during processing.
func (p *Preprocessor) Macros() *MacroTable { return p.macros }

// Process expands raw source lines into spec.md §4.1's intermediate
// representation: comments and blank lines removed, macro bodies inlined at
// their call sites, non-macro text whitespace-normalized.
func (p *Preprocessor) Process(lines []string, filename string) []string {
	var out []string
	state := ppDefault
	var headerLine string
	var body []string
	headerPos := Position{}

	for i, raw := range lines {
		pos := Position{Filename: filename, Line: i + 1}
		if len(raw) > p.limits.MaxLineLen {
			p.errors.Add(NewError(ErrLineLen, pos, "", "line exceeds %d characters", p.limits.MaxLineLen))
		}
		trimmed := strings.TrimSpace(raw)

		switch state {
		case ppDefault:
			if trimmed == "" || strings.HasPrefix(trimmed, ";") {
				continue
			}
			if isMacroHeader(trimmed) {
				state = ppMacro
				headerLine = trimmed
				headerPos = pos
				body = nil
				continue
			}
			if name, ok := soleToken(trimmed); ok {
				if m, found := p.macros.Lookup(name); found {
					out = append(out, m.Body...)
					continue
				}
			}
			out = append(out, normalizeWhitespace(trimmed))

		case ppMacro:
			if strings.HasPrefix(trimmed, "mcroend") {
				p.commitMacro(headerLine, trimmed, body, headerPos)
				state = ppDefault
				continue
			}
			body = append(body, strings.TrimRight(raw, " \t"))
		}
	}

	if state == ppMacro {
		p.errors.Add(NewError(ErrMcroDefExtra, headerPos, "", "macro %q has no matching mcroend", headerLine))
	}

	return out
}

// isMacroHeader reports whether trimmed opens a macro definition: it starts
// with the literal "mcro" but is not the "mcroend" terminator.
func isMacroHeader(trimmed string) bool {
	return strings.HasPrefix(trimmed, "mcro") && !strings.HasPrefix(trimmed, "mcroend")
}

// soleToken reports whether trimmed is exactly one whitespace-delimited
// token (a bare macro-call candidate), returning it.
func soleToken(trimmed string) (string, bool) {
	fields := strings.Fields(trimmed)
	if len(fields) == 1 {
		return fields[0], true
	}
	return "", false
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// commitMacro validates a buffered macro definition per spec.md §4.1's
// table and stores it only if every check passes.
func (p *Preprocessor) commitMacro(headerLine, endLine string, body []string, pos Position) {
	ok := true

	if endFields := strings.Fields(endLine); len(endFields) > 1 {
		p.errors.Add(NewError(ErrMcroDefExtra, pos, "", "mcroend has trailing characters"))
		ok = false
	}

	name, hasName := p.validateHeader(headerLine, pos, &ok)

	if hasName {
		p.validateMacroName(name, pos, &ok)
	}

	if ok && hasName {
		if err := p.macros.Define(&Macro{Name: name, Body: body, Pos: pos}); err != nil {
			p.errors.Add(NewError(ErrMcroName, pos, name, "%s", err.Error()))
		}
	}
}

// validateHeader checks the "mcro" + one space + NAME shape and returns the
// candidate name, if any could be recovered for further checks.
func (p *Preprocessor) validateHeader(headerLine string, pos Position, ok *bool) (string, bool) {
	if headerLine == "mcro" {
		p.errors.Add(NewError(ErrMcroName, pos, "", "macro name is empty"))
		*ok = false
		return "", false
	}

	if headerLine[4] != ' ' {
		p.errors.Add(NewError(ErrMcroSpaceMissing, pos, headerLine, "missing space between mcro and macro name"))
		*ok = false
		fields := strings.Fields(headerLine)
		if len(fields) > 1 {
			p.errors.Add(NewError(ErrMcroDefExtra, pos, "", "extra tokens after macro name"))
		}
		return strings.TrimPrefix(fields[0], "mcro"), true
	}

	fields := strings.Fields(headerLine)
	if len(fields) < 2 {
		p.errors.Add(NewError(ErrMcroName, pos, "", "macro name is empty"))
		*ok = false
		return "", false
	}
	if len(fields) > 2 {
		p.errors.Add(NewError(ErrMcroDefExtra, pos, "", "extra tokens after macro name"))
		*ok = false
	}
	return fields[1], true
}

// validateMacroName applies spec.md §4.1's NAME checks.
func (p *Preprocessor) validateMacroName(name string, pos Position, ok *bool) {
	if name == "" {
		p.errors.Add(NewError(ErrMcroName, pos, "", "macro name is empty"))
		*ok = false
		return
	}
	if len(name) > p.limits.MaxLabelLen {
		p.errors.Add(NewError(ErrMcroName, pos, name, "macro name exceeds %d characters", p.limits.MaxLabelLen))
		*ok = false
	}
	if _, exists := p.macros.Lookup(name); exists {
		p.errors.Add(NewError(ErrMcroName, pos, name, "macro name already defined"))
		*ok = false
	}
	first := name[0]
	if first >= '0' && first <= '9' {
		p.errors.Add(NewError(ErrMcroName, pos, name, "macro name starts with a digit"))
		*ok = false
	} else if first >= 'A' && first <= 'Z' {
		p.errors.Add(NewError(ErrMcroName, pos, name, "macro name starts with an uppercase letter"))
		*ok = false
	}
	for _, c := range name {
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			p.errors.Add(NewError(ErrMcroDefExtra, pos, name, "macro name contains an invalid character"))
			*ok = false
			break
		}
	}
	if IsInstruction(name) || IsRegister(name) || IsDirective(name) || strings.HasSuffix(name, ":") {
		p.errors.Add(NewError(ErrMcroName, pos, name, "macro name collides with a reserved word"))
		*ok = false
	}
}
