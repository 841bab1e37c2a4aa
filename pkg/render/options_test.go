package render

import (
	"log/slog"
	"testing"
)

func TestRenderMode(t *testing.T) {
	m := ModeFilled | ModeWireframe
	if !m.Has(ModeFilled) || !m.Has(ModeWireframe) || m.Has(ModeTextured) {
		t.Errorf("Has reported wrong bits for %v", m)
	}
	if got := m.String(); got != "wireframe+filled" {
		t.Errorf("String = %q", got)
	}
	m = m.Toggle(ModeWireframe)
	if m != ModeFilled {
		t.Errorf("Toggle = %v", m)
	}
	if RenderMode(0).String() != "none" {
		t.Error("zero mode should print none")
	}
	if CullNone.String() != "none" || CullBackface.String() != "backface" {
		t.Error("unexpected cull mode names")
	}
}

func TestLoggerDefaultsSilent(t *testing.T) {
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("default logger should be silent")
	}
	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(t.Context(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
