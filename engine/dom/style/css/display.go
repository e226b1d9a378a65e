package css

import (
	"bytes"
	"fmt"
	"strings"
)

// DisplayMode is a type for CSS property "display".
type DisplayMode uint16

// Flags for box context and display mode (outer and inner).
const (
	NoMode            DisplayMode = iota   // unset or error condition
	DisplayNone       DisplayMode = 0x0001 // CSS outer display = none
	FlowMode          DisplayMode = 0x0002 // CSS inner display = flow
	BlockMode         DisplayMode = 0x0004 // CSS block context (inner or outer)
	InlineMode        DisplayMode = 0x0008 // CSS inline context
	ListItemMode      DisplayMode = 0x0010 // CSS list-item display
	FlowRoot          DisplayMode = 0x0020 // CSS flow-root display property
	FlexMode          DisplayMode = 0x0040 // CSS inner display = flex
	GridMode          DisplayMode = 0x0080 // CSS inner display = grid
	TableMode         DisplayMode = 0x0100 // CSS table display property (inner or outer)
	TableRowGroupMode DisplayMode = 0x0200 // CSS table-row-group, -header-group, -footer-group
	TableRowMode      DisplayMode = 0x0400 // CSS table-row
	TableCellMode     DisplayMode = 0x0800 // CSS table-cell
)

var allDisplayModes = []DisplayMode{
	DisplayNone, FlowMode, BlockMode, InlineMode, ListItemMode, FlowRoot, FlexMode,
	GridMode, TableMode, TableRowGroupMode, TableRowMode, TableCellMode,
}

var displayModeNames = map[DisplayMode]string{
	DisplayNone:       "none",
	FlowMode:          "flow",
	BlockMode:         "block",
	InlineMode:        "inline",
	ListItemMode:      "list-item",
	FlowRoot:          "flow-root",
	FlexMode:          "flex",
	GridMode:          "grid",
	TableMode:         "table",
	TableRowGroupMode: "table-row-group",
	TableRowMode:      "table-row",
	TableCellMode:     "table-cell",
}

// Set sets a given atomic mode within this display mode.
func (disp *DisplayMode) Set(d DisplayMode) {
	*disp = (*disp) | d
}

// Contains checks if a display mode contains a given atomic mode.
// Returns false for d = NoMode.
func (disp DisplayMode) Contains(d DisplayMode) bool {
	return d != NoMode && (disp&d > 0)
}

// Overlaps returns true if a given display mode shares at least one atomic
// mode flag with disp (excluding NoMode).
func (disp DisplayMode) Overlaps(d DisplayMode) bool {
	for _, m := range allDisplayModes {
		if disp.Contains(m) && d.Contains(m) {
			return true
		}
	}
	return false
}

// IsBlockLevel is true for modes which take part in a block formatting
// context of their parent, i.e. which stack vertically.
func (disp DisplayMode) IsBlockLevel() bool {
	if disp.Contains(InlineMode) {
		return false
	}
	return disp.Overlaps(BlockMode | ListItemMode | TableMode | TableRowGroupMode | TableRowMode)
}

// IsInlineLevel is true for modes which flow within lines.
func (disp DisplayMode) IsInlineLevel() bool {
	return disp.Contains(InlineMode)
}

// IsAtomicInline is true for inline-level boxes which are laid out as a unit,
// e.g. inline-blocks and inline tables.
func (disp DisplayMode) IsAtomicInline() bool {
	return disp.Contains(InlineMode) && disp.Overlaps(FlowRoot|TableMode)
}

func (disp DisplayMode) String() string {
	if disp == NoMode {
		return "NoMode"
	}
	if s, ok := displayModeNames[disp]; ok {
		return s
	}
	return disp.FullString()
}

// FullString returns all atomic modes set in a display mode.
func (disp DisplayMode) FullString() string {
	var b bytes.Buffer
	first := true
	for _, m := range allDisplayModes {
		if disp.Contains(m) {
			if !first {
				b.WriteString(" ")
			}
			first = false
			b.WriteString(displayModeNames[m])
		}
	}
	return b.String()
}

// Symbol returns a Unicode symbol for a mode.
func (disp DisplayMode) Symbol() string {
	if disp == FlowMode {
		return "▧"
	} else if disp.Contains(TableCellMode) || disp.Contains(TableRowMode) {
		return "▦"
	} else if disp.Contains(TableMode) {
		return "▥"
	} else if disp.Contains(ListItemMode) {
		return "▣"
	} else if disp.Contains(InlineMode) {
		return "►"
	} else if disp.Contains(BlockMode) {
		return "▩"
	} else if disp.Contains(FlexMode) {
		return "▤"
	} else if disp.Contains(GridMode) {
		return "◰"
	}
	return "?"
}

// ParseDisplay returns mode flags from a display property string (outer and inner).
// Flex and grid containers are laid out like blocks.
func ParseDisplay(display string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(display)) {
	case "none":
		return DisplayNone, nil
	case "block":
		return BlockMode | FlowMode, nil
	case "inline":
		return InlineMode | FlowMode, nil
	case "inline-block":
		return InlineMode | FlowRoot, nil
	case "list-item":
		return ListItemMode | BlockMode | FlowMode, nil
	case "flow-root", "table-caption":
		return BlockMode | FlowRoot, nil
	case "table":
		return BlockMode | TableMode, nil
	case "inline-table":
		return InlineMode | TableMode, nil
	case "table-row-group", "table-header-group", "table-footer-group":
		return TableRowGroupMode, nil
	case "table-row":
		return TableRowMode, nil
	case "table-cell":
		return TableCellMode | FlowRoot, nil
	case "flex":
		return BlockMode | FlexMode, nil
	case "grid":
		return BlockMode | GridMode, nil
	}
	return InlineMode | FlowMode, fmt.Errorf("unknown display mode: %s", display)
}
