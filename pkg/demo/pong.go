package demo

import (
	"math"
	"math/rand/v2"
	"strconv"
	"time"
)

const (
	pongPaddleW     = 10
	pongPaddleH     = 70
	pongMargin      = 16
	pongBallR       = 6
	pongPaddleSpeed = 320
	pongServeSpeed  = 260
	pongMaxSpeed    = 640
)

type pongPaddle struct {
	y   float64 // top edge
	dir float64 // -1, 0, 1 while a key is held
}

// pong has the left paddle under keyboard control once a key is pressed;
// until then both paddles are driven by the tracker.
type pong struct {
	b   Bounds
	rng *rand.Rand

	ballX, ballY float64
	vx, vy       float64

	left, right    pongPaddle
	player         bool
	scoreL, scoreR int
}

func (p *pong) Init(b Bounds, rng *rand.Rand) {
	p.b = b
	p.rng = rng
	p.left.y = (b.H - pongPaddleH) / 2
	p.right.y = p.left.y
	p.serve(rng.IntN(2) == 0)
}

// serve puts the ball in the middle heading toward the given side.
func (p *pong) serve(towardLeft bool) {
	p.ballX, p.ballY = p.b.W/2, p.b.H/2
	angle := (p.rng.Float64() - 0.5) * math.Pi / 3
	p.vx = math.Cos(angle) * pongServeSpeed
	p.vy = math.Sin(angle) * pongServeSpeed
	if towardLeft {
		p.vx = -p.vx
	}
}

func (p *pong) Input(ev Input) {
	var dir float64
	switch ev.Key {
	case "ArrowUp", "w", "W":
		dir = -1
	case "ArrowDown", "s", "S":
		dir = 1
	default:
		return
	}
	p.player = true
	switch ev.Type {
	case "keydown":
		p.left.dir = dir
	case "keyup":
		if p.left.dir == dir {
			p.left.dir = 0
		}
	}
}

func (p *pong) Step(dt time.Duration) {
	s := dt.Seconds()

	if p.player {
		p.left.y += p.left.dir * pongPaddleSpeed * s
	} else {
		p.track(&p.left, s)
	}
	p.track(&p.right, s)
	p.left.y = clamp(p.left.y, 0, p.b.H-pongPaddleH)
	p.right.y = clamp(p.right.y, 0, p.b.H-pongPaddleH)

	p.ballX += p.vx * s
	p.ballY += p.vy * s

	if p.ballY < pongBallR {
		p.ballY = pongBallR
		p.vy = math.Abs(p.vy)
	} else if p.ballY > p.b.H-pongBallR {
		p.ballY = p.b.H - pongBallR
		p.vy = -math.Abs(p.vy)
	}

	leftFace := float64(pongMargin + pongPaddleW)
	rightFace := p.b.W - pongMargin - pongPaddleW
	switch {
	case p.vx < 0 && p.ballX-pongBallR <= leftFace && p.ballX > pongMargin && p.hits(p.left):
		p.ballX = leftFace + pongBallR
		p.bounce(p.left)
	case p.vx > 0 && p.ballX+pongBallR >= rightFace && p.ballX < p.b.W-pongMargin && p.hits(p.right):
		p.ballX = rightFace - pongBallR
		p.bounce(p.right)
	}

	if p.ballX < 0 {
		p.scoreR++
		p.serve(false)
	} else if p.ballX > p.b.W {
		p.scoreL++
		p.serve(true)
	}
}

// track moves a paddle toward the ball, a little slower than a human could.
func (p *pong) track(pad *pongPaddle, s float64) {
	center := pad.y + pongPaddleH/2
	diff := p.ballY - center
	maxMove := pongPaddleSpeed * 0.8 * s
	pad.y += clamp(diff, -maxMove, maxMove)
}

func (p *pong) hits(pad pongPaddle) bool {
	return p.ballY+pongBallR >= pad.y && p.ballY-pongBallR <= pad.y+pongPaddleH
}

// bounce reverses the ball, speeding it up and adding spin from where it
// struck the paddle.
func (p *pong) bounce(pad pongPaddle) {
	offset := (p.ballY - (pad.y + pongPaddleH/2)) / (pongPaddleH / 2)
	p.vx = -p.vx * 1.05
	p.vy += offset * 140

	speed := math.Hypot(p.vx, p.vy)
	if speed > pongMaxSpeed {
		p.vx *= pongMaxSpeed / speed
		p.vy *= pongMaxSpeed / speed
	}
}

func (p *pong) Draw(c *Canvas) {
	c.Clear("#000")
	for y := 0.0; y < p.b.H; y += 24 {
		c.Rect(p.b.W/2-1, y, 2, 12, "#333")
	}
	c.Rect(pongMargin, p.left.y, pongPaddleW, pongPaddleH, "#fff")
	c.Rect(p.b.W-pongMargin-pongPaddleW, p.right.y, pongPaddleW, pongPaddleH, "#fff")
	c.Circle(p.ballX, p.ballY, pongBallR, "#0f0")
	c.Text(p.b.W/2-60, 16, 32, strconv.Itoa(p.scoreL), "#888")
	c.Text(p.b.W/2+40, 16, 32, strconv.Itoa(p.scoreR), "#888")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
