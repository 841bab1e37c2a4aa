package main

import (
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/softpipe/pkg/render"
)

func keySet(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool { return slices.Contains(keys, k) }
}

func TestWindowInputOrder(t *testing.T) {
	none := keySet()

	for range 20 {
		pressed, _ := windowInput(keySet(ebiten.KeyS, ebiten.KeyW), none, none)
		if !slices.Equal(pressed, []action{actionForward, actionBackward}) {
			t.Fatalf("pressed = %v, want forward then backward", pressed)
		}
	}

	p := testPipeline(t)
	ctrl := newController(render.NewCamera(), 30)
	pressed, _ := windowInput(keySet(ebiten.KeyW, ebiten.KeyS), none, none)
	for _, a := range pressed {
		ctrl.apply(a, p)
	}
	if ctrl.speed.target != 0 {
		t.Errorf("speed target = %v, want 0", ctrl.speed.target)
	}
}

func TestWindowInputHeldAndReleased(t *testing.T) {
	down := keySet(ebiten.KeyA, ebiten.KeyC)
	pressed, released := windowInput(keySet(), down, keySet(ebiten.KeyArrowUp))

	if !slices.Equal(pressed, []action{actionTurnLeft}) {
		t.Errorf("pressed = %v, want only the held turn", pressed)
	}
	if !slices.Equal(released, []action{actionLookUp}) {
		t.Errorf("released = %v, want look up", released)
	}
}
