package graphics

import "fmt"

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpClear OpKind = iota
	OpCircle
	OpArc
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpCircle:
		return "circle"
	case OpArc:
		return "arc"
	case OpText:
		return "text"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// DrawOp is one recorded canvas call. Only the fields relevant to Kind are set.
type DrawOp struct {
	Kind   OpKind
	Color  Color
	Center Offset
	Radius float64
	Start  float64
	Sweep  float64
	Paint  Paint
	Text   string
}

// Recorder is a Canvas that keeps every call it receives. It stands in for a
// raster surface wherever the drawing calls themselves need inspecting.
type Recorder struct {
	ops  []DrawOp
	size Size
}

// NewRecorder returns a Recorder reporting the given size.
func NewRecorder(size Size) *Recorder {
	return &Recorder{size: size}
}

// SetSize changes the size reported by the recorder.
func (r *Recorder) SetSize(size Size) {
	r.size = size
}

// Reset discards recorded operations.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// Ops returns a copy of the operations recorded since the last Reset.
func (r *Recorder) Ops() []DrawOp {
	return append([]DrawOp(nil), r.ops...)
}

// Count returns how many operations of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) Clear(color Color) {
	r.ops = append(r.ops, DrawOp{Kind: OpClear, Color: color})
}

func (r *Recorder) DrawCircle(center Offset, radius float64, paint Paint) {
	r.ops = append(r.ops, DrawOp{Kind: OpCircle, Center: center, Radius: radius, Paint: paint})
}

func (r *Recorder) DrawArc(center Offset, radius, startAngle, sweepAngle float64, paint Paint) {
	r.ops = append(r.ops, DrawOp{
		Kind:   OpArc,
		Center: center,
		Radius: radius,
		Start:  startAngle,
		Sweep:  sweepAngle,
		Paint:  paint,
	})
}

func (r *Recorder) DrawText(text string, center Offset, color Color) {
	r.ops = append(r.ops, DrawOp{Kind: OpText, Center: center, Color: color, Text: text})
}

func (r *Recorder) Size() Size {
	return r.size
}
