package demo

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

const (
	particleCount   = 300
	particleGravity = 90
)

type particle struct {
	x, y, vx, vy float64
	life, ttl    float64
	hue          float64
}

type particles struct {
	b    Bounds
	rng  *rand.Rand
	pool [particleCount]particle
	t    float64
}

func (p *particles) Init(b Bounds, rng *rand.Rand) {
	p.b = b
	p.rng = rng
	for i := range p.pool {
		p.spawn(&p.pool[i])
		// stagger ages so the fountain starts full
		p.pool[i].life = rng.Float64() * p.pool[i].ttl
	}
}

// emitter traces a slow Lissajous path around the middle of the surface.
func (p *particles) emitter() (float64, float64) {
	return p.b.W/2 + math.Sin(p.t*0.7)*p.b.W/4,
		p.b.H/2 + math.Sin(p.t*1.1)*p.b.H/6
}

func (p *particles) spawn(pt *particle) {
	ex, ey := p.emitter()
	angle := -math.Pi/2 + (p.rng.Float64()-0.5)*math.Pi/2
	speed := 80 + p.rng.Float64()*120
	*pt = particle{
		x:   ex,
		y:   ey,
		vx:  math.Cos(angle) * speed,
		vy:  math.Sin(angle) * speed,
		ttl: 1 + p.rng.Float64()*2,
		hue: math.Mod(p.t*40+p.rng.Float64()*40, 360),
	}
	pt.life = pt.ttl
}

func (p *particles) Step(dt time.Duration) {
	s := dt.Seconds()
	p.t += s
	for i := range p.pool {
		pt := &p.pool[i]
		pt.vy += particleGravity * s
		pt.x += pt.vx * s
		pt.y += pt.vy * s
		pt.life -= s
		if pt.life <= 0 || pt.x < 0 || pt.x > p.b.W || pt.y > p.b.H {
			p.spawn(pt)
		}
	}
}

func (p *particles) Draw(c *Canvas) {
	c.Clear("rgba(0,0,0,0.25)")
	for i := range p.pool {
		pt := &p.pool[i]
		alpha := pt.life / pt.ttl
		c.Circle(pt.x, pt.y, 1+2*alpha, fmt.Sprintf("hsla(%.0f,90%%,60%%,%.2f)", pt.hue, alpha))
	}
}
