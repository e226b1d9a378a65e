package frame

import (
	"github.com/npillmayer/cssbox/engine/dom/style"
	"github.com/npillmayer/cssbox/engine/dom/style/css"
)

// FormattingContextType classifies how a box lays out its children.
type FormattingContextType uint8

// Formatting contexts known to the layout engine.
const (
	NoContext FormattingContextType = iota
	BlockFormattingContext
	InlineFormattingContext
	TableFormattingContext
	TableRowContext
	ReplacedContent
)

var contextNames = [...]string{"none", "block", "inline", "table", "table-row", "replaced"}

func (fc FormattingContextType) String() string {
	if int(fc) < len(contextNames) {
		return contextNames[fc]
	}
	return "?"
}

// InnerContext returns the formatting context a box with the given display
// mode establishes for its children. hasBlockChildren tells whether any child
// box is block-level; inline boxes containing blocks are laid out like blocks.
func InnerContext(mode css.DisplayMode, hasBlockChildren bool) FormattingContextType {
	switch {
	case mode == css.NoMode || mode.Contains(css.DisplayNone):
		return NoContext
	case mode.Contains(css.TableMode) || mode.Contains(css.TableRowGroupMode):
		return TableFormattingContext
	case mode.Contains(css.TableRowMode):
		return TableRowContext
	case hasBlockChildren:
		return BlockFormattingContext
	case mode.IsInlineLevel() && !mode.IsAtomicInline():
		return InlineFormattingContext
	}
	return BlockFormattingContext
}

// EstablishesContainingBlock is true for boxes which establish a containing
// block different from the one of their parent: absolutely positioned boxes,
// table cells and inline-blocks.
func EstablishesContainingBlock(spec *style.Spec) bool {
	if spec == nil {
		return false
	}
	return spec.Position.IsOutOfFlow() ||
		spec.Display.Contains(css.TableCellMode) ||
		spec.Display.IsAtomicInline()
}

// IsAbsolutePositioningAnchor is true for boxes which act as the containing
// block of absolutely positioned descendants.
func IsAbsolutePositioningAnchor(spec *style.Spec) bool {
	return spec != nil && spec.Position.IsPositioned()
}

// ShrinksToFit is true for boxes whose `auto` width is computed from their
// content rather than from the containing block.
func ShrinksToFit(spec *style.Spec) bool {
	if spec == nil {
		return false
	}
	return spec.Position.IsOutOfFlow() || spec.Display.IsAtomicInline() ||
		spec.Display.Contains(css.TableMode)
}
