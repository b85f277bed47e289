package demo

import (
	"math/rand/v2"
	"testing"
	"time"
)

func newTestScene(t *testing.T, k Kind, b Bounds) Scene {
	t.Helper()
	s, err := NewScene(k)
	if err != nil {
		t.Fatalf("NewScene(%v): %v", k, err)
	}
	s.Init(b, rand.New(rand.NewPCG(7, 11)))
	return s
}

// Every scene draws a bounded number of ops per frame no matter how long
// it runs.
func TestScenesHaveFixedSize(t *testing.T) {
	b := Bounds{W: DefaultWidth, H: DefaultHeight}
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			s := newTestScene(t, k, b)
			c := NewCanvas(b)
			maxOps := 0
			for i := 0; i < 600; i++ {
				s.Step(DefaultFrameInterval)
				s.Draw(c)
				ops := c.take()
				if len(ops) == 0 {
					t.Fatalf("frame %d drew nothing", i)
				}
				if ops[0].Op != OpClear {
					t.Fatalf("frame %d starts with %q, want clear", i, ops[0].Op)
				}
				maxOps = max(maxOps, len(ops))
			}
			if maxOps > 1000 {
				t.Errorf("max ops per frame = %d, want <= 1000", maxOps)
			}
		})
	}
}

func TestPongBallStaysInBounds(t *testing.T) {
	b := Bounds{W: 400, H: 300}
	p := newTestScene(t, KindPong, b).(*pong)
	for i := 0; i < 5000; i++ {
		p.Step(DefaultFrameInterval)
		if p.ballX < 0 || p.ballX > b.W || p.ballY < pongBallR || p.ballY > b.H-pongBallR {
			t.Fatalf("step %d: ball at (%.1f, %.1f) outside %vx%v", i, p.ballX, p.ballY, b.W, b.H)
		}
		if p.left.y < 0 || p.left.y > b.H-pongPaddleH || p.right.y < 0 || p.right.y > b.H-pongPaddleH {
			t.Fatalf("step %d: paddle out of range", i)
		}
		if speed := p.vx*p.vx + p.vy*p.vy; speed > pongMaxSpeed*pongMaxSpeed+1 {
			t.Fatalf("step %d: speed %.1f over cap", i, speed)
		}
	}
}

func TestPongKeyboard(t *testing.T) {
	b := Bounds{W: 400, H: 300}
	p := newTestScene(t, KindPong, b).(*pong)
	start := p.left.y

	p.Input(Input{Type: "keydown", Key: "ArrowUp"})
	for i := 0; i < 5; i++ {
		p.Step(DefaultFrameInterval)
	}
	if !p.player {
		t.Fatal("keyboard input did not take over the left paddle")
	}
	if p.left.y >= start {
		t.Errorf("paddle y = %.1f, want above %.1f", p.left.y, start)
	}

	p.Input(Input{Type: "keyup", Key: "ArrowUp"})
	held := p.left.y
	p.Step(DefaultFrameInterval)
	if p.left.y != held {
		t.Errorf("paddle moved after keyup: %.1f -> %.1f", held, p.left.y)
	}

	p.Input(Input{Type: "keydown", Key: "Enter"})
	if p.left.dir != 0 {
		t.Errorf("unrelated key changed direction to %v", p.left.dir)
	}
}

func TestParticlesPoolIsFixed(t *testing.T) {
	b := Bounds{W: 320, H: 240}
	p := newTestScene(t, KindParticles, b).(*particles)
	for i := 0; i < 300; i++ {
		p.Step(50 * time.Millisecond)
	}
	c := NewCanvas(b)
	p.Draw(c)
	if c.Len() != particleCount+1 {
		t.Errorf("ops = %d, want %d", c.Len(), particleCount+1)
	}
	for i, pt := range p.pool {
		if pt.life <= 0 || pt.life > pt.ttl {
			t.Errorf("particle %d life %.2f outside (0, %.2f]", i, pt.life, pt.ttl)
		}
	}
}

func TestNeuralOutputsAreSigmoid(t *testing.T) {
	n := newTestScene(t, KindNeural, Bounds{W: 640, H: 400}).(*neural)
	for i := 0; i < 100; i++ {
		n.Step(DefaultFrameInterval)
	}
	for li := 1; li < len(n.layers); li++ {
		for j, nr := range n.layers[li] {
			if nr.output <= 0 || nr.output >= 1 {
				t.Errorf("layer %d neuron %d output %.3f outside (0, 1)", li, j, nr.output)
			}
		}
	}
	want := 0
	for i := 0; i+1 < len(neuralLayers); i++ {
		want += neuralLayers[i] * neuralLayers[i+1]
	}
	if len(n.synapses) != want {
		t.Errorf("synapses = %d, want %d", len(n.synapses), want)
	}
}

func TestCosmosAnglesWrap(t *testing.T) {
	c := newTestScene(t, KindCosmos, Bounds{W: 640, H: 400}).(*cosmos)
	for i := 0; i < 10000; i++ {
		c.Step(DefaultFrameInterval)
	}
	for i, p := range c.planets {
		if p.angle < 0 || p.angle >= 6.2832 {
			t.Errorf("planet %d angle %.3f not wrapped", i, p.angle)
		}
	}
	if c.planets[0].period >= c.planets[len(c.planets)-1].period {
		t.Error("inner planets should orbit faster")
	}
}

func TestPongPaddleReturnsBall(t *testing.T) {
	b := Bounds{W: 400, H: 300}
	p := newTestScene(t, KindPong, b).(*pong)

	face := float64(pongMargin + pongPaddleW)
	p.left.y = 100
	p.ballX, p.ballY = face+pongBallR-1, 135
	p.vx, p.vy = -200, 0
	p.player = true

	p.Step(time.Millisecond)

	if p.vx <= 0 {
		t.Fatalf("vx = %.1f after hitting the left paddle, want > 0", p.vx)
	}
	if p.ballX != face+pongBallR {
		t.Errorf("ballX = %.1f, want the ball resting on the paddle face at %.1f", p.ballX, face+pongBallR)
	}
	if p.scoreR != 0 {
		t.Errorf("scoreR = %d, a returned ball should not score", p.scoreR)
	}
}
