package main

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/softpipe/pkg/models"
	"github.com/taigrr/softpipe/pkg/render"
)

// hud renders the status line: frame rate, model name, triangle counts and
// the active modes.
type hud struct {
	name  string
	faces int

	fps    float64
	frames int
	since  time.Time

	title lipgloss.Style
	label lipgloss.Style
	value lipgloss.Style
}

func newHUD(mesh *models.Mesh, now time.Time) *hud {
	bg := lipgloss.Color("#1f1f28")
	return &hud{
		name:  mesh.Name,
		faces: mesh.FaceCount(),
		since: now,
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f2f2f2")).Background(bg).Padding(0, 1),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")).Background(bg).PaddingLeft(1),
		value: lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Background(bg).PaddingRight(1),
	}
}

// tick counts a frame and refreshes the rate once a second.
func (h *hud) tick(now time.Time) {
	h.frames++
	if elapsed := now.Sub(h.since); elapsed >= time.Second {
		h.fps = float64(h.frames) / elapsed.Seconds()
		h.frames = 0
		h.since = now
	}
}

type hudField struct{ label, value string }

func (h *hud) fields(opts render.Options, st render.Stats) []hudField {
	return []hudField{
		{"fps", fmt.Sprintf("%.0f", h.fps)},
		{"tris", fmt.Sprintf("%d/%d", st.Triangles, h.faces)},
		{"culled", fmt.Sprintf("%d", st.FacesBackfaced+st.FacesClipped)},
		{"mode", opts.Mode.String()},
		{"cull", opts.Cull.String()},
	}
}

// plain returns the status line without styling.
func (h *hud) plain(opts render.Options, st render.Stats) string {
	s := h.name
	for _, f := range h.fields(opts, st) {
		s += fmt.Sprintf("  %s %s", f.label, f.value)
	}
	return s
}

// styled returns the status line with terminal styling.
func (h *hud) styled(opts render.Options, st render.Stats) string {
	parts := []string{h.title.Render(h.name)}
	for _, f := range h.fields(opts, st) {
		parts = append(parts, h.label.Render(f.label), h.value.Render(f.value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// draw paints the status line over the top row of area.
func (h *hud) draw(scr uv.Screen, area uv.Rectangle, opts render.Options, st render.Stats) {
	line := uv.Rect(area.Min.X, area.Min.Y, area.Dx(), 1)
	uv.NewStyledString(h.styled(opts, st)).Draw(scr, line)
}

// summary describes a rendered frame for the snapshot command.
func summary(mesh *models.Mesh, st render.Stats, path string) string {
	key := lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c")).Width(10)
	val := lipgloss.NewStyle().Bold(true)
	row := func(k, v string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, key.Render(k), val.Render(v))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		row("model", mesh.Name),
		row("faces", fmt.Sprintf("%d (%d backfaced, %d clipped away)", st.Faces, st.FacesBackfaced, st.FacesClipped)),
		row("drawn", fmt.Sprintf("%d triangles", st.Triangles)),
		row("wrote", path),
	)
}
