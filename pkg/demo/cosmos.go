package demo

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

const (
	cosmosPlanets = 8
	cosmosStars   = 120
)

type planet struct {
	orbit  float64 // radius as a fraction of the shorter side
	angle  float64
	period float64 // seconds per revolution
	radius float64
	color  string
}

type star struct {
	x, y  float64
	phase float64
}

type cosmos struct {
	b       Bounds
	t       float64
	planets [cosmosPlanets]planet
	stars   [cosmosStars]star
}

var planetColors = [cosmosPlanets]string{
	"#b1adad", "#e3bb76", "#6b93d6", "#c1440e",
	"#d8ca9d", "#ead6b8", "#d1e7e7", "#5b5ddf",
}

func (c *cosmos) Init(b Bounds, rng *rand.Rand) {
	c.b = b
	for i := range c.planets {
		orbit := 0.08 + float64(i)*0.05
		c.planets[i] = planet{
			orbit: orbit,
			angle: rng.Float64() * 2 * math.Pi,
			// Kepler: T^2 ∝ a^3
			period: 4 * math.Pow(orbit/0.08, 1.5),
			radius: 2 + rng.Float64()*4,
			color:  planetColors[i],
		}
	}
	for i := range c.stars {
		c.stars[i] = star{
			x:     rng.Float64() * b.W,
			y:     rng.Float64() * b.H,
			phase: rng.Float64() * 2 * math.Pi,
		}
	}
}

func (c *cosmos) Step(dt time.Duration) {
	s := dt.Seconds()
	c.t += s
	for i := range c.planets {
		p := &c.planets[i]
		p.angle = math.Mod(p.angle+2*math.Pi*s/p.period, 2*math.Pi)
	}
}

func (c *cosmos) Draw(cv *Canvas) {
	cv.Clear("#02010a")
	for i := range c.stars {
		st := &c.stars[i]
		a := 0.4 + 0.6*(0.5+0.5*math.Sin(c.t*2+st.phase))
		cv.Rect(st.x, st.y, 1, 1, fmt.Sprintf("rgba(255,255,255,%.2f)", a))
	}

	cx, cy := c.b.W/2, c.b.H/2
	scale := math.Min(c.b.W, c.b.H)
	cv.Circle(cx, cy, 14, "#fdb813")
	for i := range c.planets {
		p := &c.planets[i]
		r := p.orbit * scale
		cv.Circle(cx+math.Cos(p.angle)*r, cy+math.Sin(p.angle)*r, p.radius, p.color)
	}
}
