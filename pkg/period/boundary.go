package period

// BoundaryType describes which endpoints of an Interval are part of it.
// The zero value is IncludeStartExcludeEnd.
type BoundaryType uint8

const (
	excludeStartBit BoundaryType = 1 << iota
	includeEndBit
)

const (
	IncludeStartExcludeEnd = BoundaryType(0)                 // [start, end)
	ExcludeStartIncludeEnd = excludeStartBit | includeEndBit // (start, end]
	IncludeAll             = includeEndBit                   // [start, end]
	ExcludeAll             = excludeStartBit                 // (start, end)
)

// supportedBoundaryTypes lists the textual form of each BoundaryType, in declaration order.
var supportedBoundaryTypes = []string{"[)", "(]", "[]", "()"}

// ParseBoundaryType returns the BoundaryType written in bracket notation, for example "[)".
func ParseBoundaryType(s string) (BoundaryType, error) {
	switch s {
	case "[)":
		return IncludeStartExcludeEnd, nil
	case "(]":
		return ExcludeStartIncludeEnd, nil
	case "[]":
		return IncludeAll, nil
	case "()":
		return ExcludeAll, nil
	}
	return IncludeStartExcludeEnd, invalidBoundaryType(s)
}

func invalidBoundaryType(value string) *InvalidBoundaryTypeError {
	supported := make([]string, len(supportedBoundaryTypes))
	copy(supported, supportedBoundaryTypes)
	return &InvalidBoundaryTypeError{Value: value, Supported: supported}
}

func (b BoundaryType) ExcludesStart() bool {
	return b&excludeStartBit != 0
}

func (b BoundaryType) IncludesStart() bool {
	return !b.ExcludesStart()
}

func (b BoundaryType) ExcludesEnd() bool {
	return b&includeEndBit == 0
}

func (b BoundaryType) IncludesEnd() bool {
	return !b.ExcludesEnd()
}

// String returns the bracket notation of b.
func (b BoundaryType) String() string {
	return b.startBracket() + b.endBracket()
}

func (b BoundaryType) startBracket() string {
	if b.ExcludesStart() {
		return "("
	}
	return "["
}

func (b BoundaryType) endBracket() string {
	if b.ExcludesEnd() {
		return ")"
	}
	return "]"
}

// known drops the bits that are not part of any BoundaryType.
func (b BoundaryType) known() BoundaryType {
	return b & (excludeStartBit | includeEndBit)
}

func (b BoundaryType) valid() bool {
	return b <= excludeStartBit|includeEndBit
}

func (b BoundaryType) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *BoundaryType) UnmarshalText(text []byte) error {
	v, err := ParseBoundaryType(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// boundsOf builds the BoundaryType with the given inclusion for each endpoint.
func boundsOf(includeStart, includeEnd bool) BoundaryType {
	var b BoundaryType
	if !includeStart {
		b |= excludeStartBit
	}
	if includeEnd {
		b |= includeEndBit
	}
	return b
}
