package demo

import (
	"math/rand/v2"
	"time"
)

const (
	matrixFont  = 14
	matrixTrail = 18
)

var matrixGlyphs = []rune("ｱｲｳｴｵｶｷｸｹｺｻｼｽｾｿﾀﾁﾂﾃﾄﾅﾆﾇﾈﾉﾊﾋﾌﾍﾎﾏﾐﾑﾒﾓﾔﾕﾖﾗﾘﾙﾚﾛﾜﾝ0123456789")

type matrixColumn struct {
	head   float64 // y of the leading glyph, in rows
	speed  float64 // rows per second
	glyphs [matrixTrail]rune
}

type matrix struct {
	b    Bounds
	rng  *rand.Rand
	rows float64
	cols []matrixColumn
}

func (m *matrix) Init(b Bounds, rng *rand.Rand) {
	m.b = b
	m.rng = rng
	m.rows = b.H / matrixFont
	m.cols = make([]matrixColumn, int(b.W/matrixFont))
	for i := range m.cols {
		m.reset(&m.cols[i])
		m.cols[i].head = rng.Float64() * m.rows
	}
}

func (m *matrix) reset(col *matrixColumn) {
	col.head = -m.rng.Float64() * m.rows / 2
	col.speed = 6 + m.rng.Float64()*14
	for i := range col.glyphs {
		col.glyphs[i] = m.glyph()
	}
}

func (m *matrix) glyph() rune {
	return matrixGlyphs[m.rng.IntN(len(matrixGlyphs))]
}

func (m *matrix) Step(dt time.Duration) {
	s := dt.Seconds()
	for i := range m.cols {
		col := &m.cols[i]
		col.head += col.speed * s
		if col.head-matrixTrail > m.rows {
			m.reset(col)
			continue
		}
		if m.rng.IntN(8) == 0 {
			col.glyphs[m.rng.IntN(matrixTrail)] = m.glyph()
		}
	}
}

func (m *matrix) Draw(c *Canvas) {
	c.Clear("#000")
	for i := range m.cols {
		col := &m.cols[i]
		x := float64(i) * matrixFont
		for j := 0; j < matrixTrail; j++ {
			row := float64(int(col.head) - j)
			if row < 0 || row > m.rows {
				continue
			}
			color := matrixShade(j)
			c.Text(x, row*matrixFont, matrixFont, string(col.glyphs[j]), color)
		}
	}
}

// matrixShade fades the trail from a white head to dark green.
func matrixShade(pos int) string {
	switch {
	case pos == 0:
		return "#dfffdf"
	case pos < matrixTrail/3:
		return "#3f3"
	case pos < 2*matrixTrail/3:
		return "#0a0"
	default:
		return "#050"
	}
}
