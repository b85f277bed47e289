package demo

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"
)

var neuralLayers = [...]int{4, 6, 6, 3}

const neuralSampleEvery = 800 * time.Millisecond

type neuron struct {
	layer  int
	x, y   float64
	bias   float64
	output float64
}

type synapse struct {
	from, to *neuron
	weight   float64
	pulse    float64 // 0..1 progress of the travelling signal, <0 when idle
}

// neural animates forward passes through a small fixed network. A fresh
// random input is fed in periodically and pulses travel along the edges.
type neural struct {
	rng      *rand.Rand
	layers   [][]neuron
	synapses []synapse
	since    time.Duration
}

func (n *neural) Init(b Bounds, rng *rand.Rand) {
	n.rng = rng
	n.layers = make([][]neuron, len(neuralLayers))
	colGap := b.W / float64(len(neuralLayers)+1)
	for li, size := range neuralLayers {
		layer := make([]neuron, size)
		rowGap := b.H / float64(size+1)
		for i := range layer {
			layer[i] = neuron{
				layer: li,
				x:     colGap * float64(li+1),
				y:     rowGap * float64(i+1),
				bias:  rng.Float64()*2 - 1,
			}
		}
		n.layers[li] = layer
	}
	for li := 0; li+1 < len(n.layers); li++ {
		for i := range n.layers[li] {
			for j := range n.layers[li+1] {
				n.synapses = append(n.synapses, synapse{
					from:   &n.layers[li][i],
					to:     &n.layers[li+1][j],
					weight: rng.Float64()*4 - 2,
					pulse:  -1,
				})
			}
		}
	}
	n.sample()
}

// sample sets new inputs and runs a sigmoid forward pass.
func (n *neural) sample() {
	for i := range n.layers[0] {
		n.layers[0][i].output = n.rng.Float64()
	}
	for li := 1; li < len(n.layers); li++ {
		for j := range n.layers[li] {
			n.layers[li][j].output = n.layers[li][j].bias
		}
	}
	// each layer settles before the next one reads it
	for li := 1; li < len(n.layers); li++ {
		for si := range n.synapses {
			s := &n.synapses[si]
			if s.to.layer == li {
				s.to.output += s.from.output * s.weight
			}
		}
		for j := range n.layers[li] {
			n.layers[li][j].output = sigmoid(n.layers[li][j].output)
		}
	}
	for si := range n.synapses {
		if n.synapses[si].from.output > 0.5 {
			n.synapses[si].pulse = 0
		}
	}
}

func (n *neural) Step(dt time.Duration) {
	n.since += dt
	if n.since >= neuralSampleEvery {
		n.since -= neuralSampleEvery
		n.sample()
	}
	adv := dt.Seconds() / neuralSampleEvery.Seconds()
	for si := range n.synapses {
		s := &n.synapses[si]
		if s.pulse < 0 {
			continue
		}
		s.pulse += adv
		if s.pulse > 1 {
			s.pulse = -1
		}
	}
}

func (n *neural) Draw(c *Canvas) {
	c.Clear("#0b0f1a")
	for si := range n.synapses {
		s := &n.synapses[si]
		color := "rgba(90,160,255,0.25)"
		if s.weight < 0 {
			color = "rgba(255,110,90,0.25)"
		}
		c.Line(s.from.x, s.from.y, s.to.x, s.to.y, math.Min(math.Abs(s.weight), 2), color)
		if s.pulse >= 0 {
			px := s.from.x + (s.to.x-s.from.x)*s.pulse
			py := s.from.y + (s.to.y-s.from.y)*s.pulse
			c.Circle(px, py, 3, "#fff")
		}
	}
	for li := range n.layers {
		for _, nr := range n.layers[li] {
			g := int(40 + nr.output*215)
			c.Circle(nr.x, nr.y, 12, fmt.Sprintf("rgb(%d,%d,255)", g/2, g))
		}
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
