package parser

// Bounds fixed by spec.md §6; overridable via config.Config for a variant
// ISA, but these are the values a deployment gets with no config file.
const (
	MaxLineLen  = 80
	MaxLabelLen = 31
	InitialIC   = 100

	MinImmediate = -1 << 20
	MaxImmediate = 1<<20 - 1

	MaxWordValue = 1<<24 - 1
)

// Limits is the set of bounds the preprocessor, lexer, and parser enforce.
// config.Config threads its own values through a Limits value so that a
// TOML override of max_line_len/max_label_len/min_immediate/max_immediate
// actually changes validation behavior, rather than just round-tripping
// through the config file unused.
type Limits struct {
	MaxLineLen   int
	MaxLabelLen  int
	MinImmediate int
	MaxImmediate int
}

// DefaultLimits returns spec.md §6's fixed bounds, used whenever nothing
// overrides them.
func DefaultLimits() Limits {
	return Limits{
		MaxLineLen:   MaxLineLen,
		MaxLabelLen:  MaxLabelLen,
		MinImmediate: MinImmediate,
		MaxImmediate: MaxImmediate,
	}
}
