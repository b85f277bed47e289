package demo

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

const (
	blitzLights  = 3
	blitzBombers = 4
	blitzFlak    = 24
)

type searchlight struct {
	x     float64
	angle float64 // radians from vertical
	speed float64
}

type bomber struct {
	x, y, vx float64
}

type burst struct {
	x, y float64
	age  float64 // <0 when the slot is free
}

// blitz is a night raid over a skyline: sweeping searchlights, a bomber
// stream crossing the sky and flak bursts recycled from a fixed pool.
type blitz struct {
	b        Bounds
	rng      *rand.Rand
	t        float64
	lights   [blitzLights]searchlight
	bombers  [blitzBombers]bomber
	flak     [blitzFlak]burst
	skyline  []float64
	nextFlak float64
}

func (w *blitz) Init(b Bounds, rng *rand.Rand) {
	w.b = b
	w.rng = rng
	for i := range w.lights {
		w.lights[i] = searchlight{
			x:     b.W * float64(i+1) / float64(blitzLights+1),
			angle: (rng.Float64() - 0.5) * math.Pi / 3,
			speed: 0.3 + rng.Float64()*0.4,
		}
	}
	for i := range w.bombers {
		w.launch(&w.bombers[i])
		w.bombers[i].x = rng.Float64() * b.W
	}
	for i := range w.flak {
		w.flak[i].age = -1
	}
	w.skyline = make([]float64, int(b.W/20)+1)
	for i := range w.skyline {
		w.skyline[i] = b.H*0.08 + rng.Float64()*b.H*0.12
	}
}

func (w *blitz) launch(bm *bomber) {
	bm.x = -40 - w.rng.Float64()*w.b.W/2
	bm.y = w.b.H*0.1 + w.rng.Float64()*w.b.H*0.3
	bm.vx = 40 + w.rng.Float64()*30
}

func (w *blitz) Step(dt time.Duration) {
	s := dt.Seconds()
	w.t += s

	for i := range w.lights {
		l := &w.lights[i]
		l.angle = math.Sin(w.t*l.speed+float64(i)) * math.Pi / 4
	}
	for i := range w.bombers {
		bm := &w.bombers[i]
		bm.x += bm.vx * s
		if bm.x > w.b.W+40 {
			w.launch(bm)
		}
	}
	for i := range w.flak {
		if w.flak[i].age >= 0 {
			w.flak[i].age += s
			if w.flak[i].age > 1.2 {
				w.flak[i].age = -1
			}
		}
	}

	w.nextFlak -= s
	if w.nextFlak <= 0 {
		w.nextFlak = 0.15 + w.rng.Float64()*0.35
		w.fire()
	}
}

// fire places a burst near a random bomber in a free pool slot. A full pool
// skips the shot.
func (w *blitz) fire() {
	for i := range w.flak {
		if w.flak[i].age < 0 {
			bm := &w.bombers[w.rng.IntN(blitzBombers)]
			w.flak[i] = burst{
				x: bm.x + (w.rng.Float64()-0.5)*120,
				y: bm.y + (w.rng.Float64()-0.5)*80,
			}
			return
		}
	}
}

func (w *blitz) Draw(c *Canvas) {
	c.Clear("#05070f")
	ground := w.b.H
	for i := range w.lights {
		l := &w.lights[i]
		length := w.b.H * 1.2
		c.Line(l.x, ground, l.x+math.Sin(l.angle)*length, ground-math.Cos(l.angle)*length, 18, "rgba(255,250,200,0.12)")
	}
	for i := range w.bombers {
		bm := &w.bombers[i]
		c.Rect(bm.x-14, bm.y-2, 28, 4, "#111")
		c.Rect(bm.x-3, bm.y-10, 6, 20, "#111")
	}
	for i := range w.flak {
		f := &w.flak[i]
		if f.age < 0 {
			continue
		}
		a := 1 - f.age/1.2
		c.Circle(f.x, f.y, 4+f.age*14, fmt.Sprintf("rgba(255,170,60,%.2f)", a))
	}
	for i, h := range w.skyline {
		c.Rect(float64(i)*20, ground-h, 20, h, "#000")
	}
}
