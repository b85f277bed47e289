package demo

// Op is one recorded draw operation. The browser client replays ops onto a
// 2D canvas context in order.
type Op struct {
	Op    string  `json:"op"`
	X     float64 `json:"x,omitempty"`
	Y     float64 `json:"y,omitempty"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	R     float64 `json:"r,omitempty"`
	X2    float64 `json:"x2,omitempty"`
	Y2    float64 `json:"y2,omitempty"`
	Size  float64 `json:"size,omitempty"`
	Color string  `json:"color,omitempty"`
	Text  string  `json:"text,omitempty"`
}

// Draw op names.
const (
	OpClear  = "clear"
	OpRect   = "rect"
	OpCircle = "circle"
	OpLine   = "line"
	OpText   = "text"
)

// Canvas records draw operations for one frame.
type Canvas struct {
	bounds Bounds
	ops    []Op
}

// NewCanvas creates a canvas for the given bounds.
func NewCanvas(b Bounds) *Canvas {
	return &Canvas{bounds: b}
}

// Bounds returns the canvas size.
func (c *Canvas) Bounds() Bounds { return c.bounds }

// Clear fills the whole surface.
func (c *Canvas) Clear(color string) {
	c.ops = append(c.ops, Op{Op: OpClear, Color: color})
}

// Rect fills a rectangle.
func (c *Canvas) Rect(x, y, w, h float64, color string) {
	c.ops = append(c.ops, Op{Op: OpRect, X: x, Y: y, W: w, H: h, Color: color})
}

// Circle fills a circle.
func (c *Canvas) Circle(x, y, r float64, color string) {
	c.ops = append(c.ops, Op{Op: OpCircle, X: x, Y: y, R: r, Color: color})
}

// Line strokes a line of the given width.
func (c *Canvas) Line(x1, y1, x2, y2, width float64, color string) {
	c.ops = append(c.ops, Op{Op: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, W: width, Color: color})
}

// Text draws monospace text with its top-left corner at x, y.
func (c *Canvas) Text(x, y, size float64, text, color string) {
	c.ops = append(c.ops, Op{Op: OpText, X: x, Y: y, Size: size, Text: text, Color: color})
}

// Len returns the number of recorded ops.
func (c *Canvas) Len() int { return len(c.ops) }

// take hands the recorded ops to the caller and starts a new frame.
func (c *Canvas) take() []Op {
	ops := c.ops
	c.ops = make([]Op, 0, len(ops))
	return ops
}
