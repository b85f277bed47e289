package demo

import (
	"strings"

	"github.com/starbugmolt/starbug/internal/errors"
)

// Kind identifies one demo variant.
type Kind uint8

const (
	KindPong Kind = iota + 1
	KindParticles
	KindMatrix
	KindCosmos
	KindNeural
	KindWWII
)

type kindInfo struct {
	name  string
	slug  string
	blurb string
}

var kinds = map[Kind]kindInfo{
	KindPong:      {"Pong", "pong", "The classic. Arrow keys move the left paddle."},
	KindParticles: {"Particles", "particles", "A wandering fountain of short-lived sparks."},
	KindMatrix:    {"Matrix", "matrix", "Falling green glyphs. You know the one."},
	KindCosmos:    {"Cosmos", "cosmos", "A tiny star system with Kepler-ish orbits."},
	KindNeural:    {"Neural", "neural", "A small feed-forward net thinking out loud."},
	KindWWII:      {"WWII", "wwii", "Searchlights over a blacked-out city, 1940."},
}

// Kinds returns every demo kind in display order.
func Kinds() []Kind {
	return []Kind{KindPong, KindParticles, KindMatrix, KindCosmos, KindNeural, KindWWII}
}

// Valid reports whether k is a known variant.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// String returns the display name, e.g. "Pong".
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return "Unknown"
}

// Slug returns the URL segment, e.g. "pong".
func (k Kind) Slug() string {
	return kinds[k].slug
}

// Blurb returns a one-line description.
func (k Kind) Blurb() string {
	return kinds[k].blurb
}

// TakesInput reports whether the scene for k reacts to keyboard input.
func (k Kind) TakesInput() bool {
	s, err := NewScene(k)
	if err != nil {
		return false
	}
	_, ok := s.(Interactive)
	return ok
}

// ParseKind accepts a slug or a display name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if strings.EqualFold(s, kinds[k].slug) || strings.EqualFold(s, kinds[k].name) {
			return k, nil
		}
	}
	return 0, errors.New("E130").WithDetailf("%q is not a demo", s)
}

// NewScene creates a fresh scene for k.
func NewScene(k Kind) (Scene, error) {
	switch k {
	case KindPong:
		return &pong{}, nil
	case KindParticles:
		return &particles{}, nil
	case KindMatrix:
		return &matrix{}, nil
	case KindCosmos:
		return &cosmos{}, nil
	case KindNeural:
		return &neural{}, nil
	case KindWWII:
		return &blitz{}, nil
	default:
		return nil, errors.New("E130").WithDetailf("kind %d", k)
	}
}
