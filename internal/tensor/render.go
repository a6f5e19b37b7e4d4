package tensor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/x448/float16"
)

const (
	// renderThreshold is the number of elements per dimension printed before
	// the dimension is summarized with an ellipsis.
	renderThreshold = 6
	renderEllipsis  = "..."

	// Line feed widths for 1-D tensors.
	lineFeedFloat = renderThreshold * 2
	lineFeedInt   = renderThreshold * 4
	lineFeedBool  = renderThreshold * 2

	uninitializedText = "<uninitialized>"
)

// Render walks the buffer depth first and prints at most renderThreshold
// entries per dimension. Skipped blocks advance the cursor without being
// visited. A scalar has no dimension to walk and renders as "".
func (s *typedStorage[T]) Render(dtype DataType, shape Shape) string {
	if s.size == 0 {
		return ""
	}
	if s.state == Unallocated {
		return uninitializedText
	}
	var sb strings.Builder
	cursor := 0
	s.summarize(&sb, dtype, shape, &cursor, 0)
	return sb.String()
}

func (s *typedStorage[T]) summarize(sb *strings.Builder, dtype DataType, shape Shape, cursor *int, depth int) {
	ndim := len(shape)
	if depth >= ndim {
		return
	}
	sb.WriteByte('[')
	defer sb.WriteByte(']')

	num := shape[depth]
	if depth == ndim-1 {
		if num > renderThreshold && ndim > 1 {
			s.writeRun(sb, dtype, ndim, *cursor, 0, renderThreshold/2)
			sb.WriteString(" " + renderEllipsis + " ")
			s.writeRun(sb, dtype, ndim, *cursor, num-renderThreshold/2, num)
		} else {
			s.writeRun(sb, dtype, ndim, *cursor, 0, num)
		}
		*cursor += num
		return
	}

	indent := strings.Repeat(" ", depth+1)
	head := num
	if num > renderThreshold {
		head = renderThreshold / 2
	}
	for i := range head {
		if i > 0 {
			sb.WriteString("\n" + indent)
		}
		s.summarize(sb, dtype, shape, cursor, depth+1)
	}
	// The head/tail split only applies above the threshold; smaller
	// dimensions were printed in full by the loop above.
	if num <= renderThreshold {
		return
	}

	sb.WriteString("\n" + indent + renderEllipsis)
	*cursor += shape[depth+1:].NumElements() * (num - renderThreshold)
	for range renderThreshold / 2 {
		sb.WriteString("\n" + indent)
		s.summarize(sb, dtype, shape, cursor, depth+1)
	}
}

// writeRun prints elements [start, end) of the run beginning at cursor.
func (s *typedStorage[T]) writeRun(sb *strings.Builder, dtype DataType, ndim, cursor, start, end int) {
	lineFeed := lineFeedWidth[T](dtype)
	for i := start; i < end && cursor+i < len(s.data); i++ {
		sb.WriteString(formatElement(s.data[cursor+i], dtype))
		if i != end-1 {
			sb.WriteByte(' ')
		}
		if ndim == 1 && (i+1)%lineFeed == 0 {
			sb.WriteString("\n ")
		}
	}
}

func lineFeedWidth[T Element](dtype DataType) int {
	switch {
	case dataTypeOf[T]().IsFloat():
		return lineFeedFloat
	case dtype == Bool:
		return lineFeedBool
	default:
		return lineFeedInt
	}
}

// formatElement prints one value: floats in fixed width scientific notation,
// bools as True/False, signed integers with a leading space when
// non-negative so they line up with negative values.
func formatElement[T Element](v T, dtype DataType) string {
	kind := dataTypeOf[T]()
	switch {
	case kind.IsFloat():
		var f float64
		if h, ok := any(v).(float16.Float16); ok {
			f = float64(h.Float32())
		} else {
			f = float64(v)
		}
		return fmt.Sprintf("%15.8e", f)
	case dtype == Bool:
		if v == 0 {
			return "False"
		}
		return " True"
	case kind.IsSigned():
		n := int64(v)
		if n >= 0 {
			return " " + strconv.FormatInt(n, 10)
		}
		return strconv.FormatInt(n, 10)
	default:
		return strconv.FormatUint(uint64(v), 10)
	}
}
