package main

import (
	"context"
	"errors"
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
)

func TestReadInputClosedEvents(t *testing.T) {
	in := make(chan uv.Event)
	close(in)
	out := make(chan inputEvent, 1)

	done := make(chan error, 1)
	go func() { done <- readInput(context.Background(), in, out) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("readInput = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("readInput kept running after its events closed")
	}
	if len(out) != 0 {
		t.Errorf("got %d events from a closed source, want 0", len(out))
	}
}

func TestReadInputEvents(t *testing.T) {
	in := make(chan uv.Event, 2)
	in <- uv.WindowSizeEvent{Width: 80, Height: 24}
	in <- uv.KeyPressEvent{Code: 'q', Text: "q"}
	out := make(chan inputEvent, 2)

	err := readInput(context.Background(), in, out)
	if !errors.Is(err, errQuit) {
		t.Fatalf("readInput = %v, want errQuit", err)
	}
	ev := <-out
	if ev.cols != 80 || ev.rows != 24 {
		t.Errorf("resize = %dx%d, want 80x24", ev.cols, ev.rows)
	}
}
