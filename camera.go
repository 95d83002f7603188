package main

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/common"
	"github.com/milk9111/bossfight/physics"
)

// Camera maps arena units (y up) to screen pixels (y down). It follows a
// world point horizontally and never shows past the arena walls.
type Camera struct {
	PosX float64

	screenW float64
	screenH float64
	// zoom is pixels per arena unit.
	zoom float64
	// floorRow is the screen row the arena floor is drawn on.
	floorRow float64
	floorY   float64
	minX     float64
	maxX     float64

	// smoothing factor (0..1). higher -> faster follow.
	smooth float64
}

func NewCamera(screenW, screenH int, arena physics.Config) *Camera {
	c := &Camera{screenW: float64(screenW), screenH: float64(screenH), smooth: 0.15}
	c.SetArena(arena)
	return c
}

// SetArena fits the arena width to the screen with a small margin.
func (c *Camera) SetArena(arena physics.Config) {
	c.minX = arena.MinX
	c.maxX = arena.MaxX
	c.floorY = arena.FloorY
	width := arena.MaxX - arena.MinX
	c.zoom = 40
	if width > 0 {
		c.zoom = math.Min(c.screenW/(width+2), 60)
	}
	c.floorRow = c.screenH * 0.8
	c.PosX = (arena.MinX + arena.MaxX) / 2
}

func (c *Camera) Zoom() float64 {
	return c.zoom
}

// Update moves the camera toward target.
func (c *Camera) Update(targetX float64) {
	if c.smooth <= 0 {
		c.PosX = targetX
	} else {
		c.PosX += (targetX - c.PosX) * c.smooth
	}
	halfW := c.screenW / c.zoom / 2
	if c.maxX-c.minX <= 2*halfW {
		c.PosX = (c.minX + c.maxX) / 2
		return
	}
	c.PosX = common.Clamp(c.PosX, c.minX+halfW, c.maxX-halfW)
}

// ToScreen converts an arena point to screen pixels.
func (c *Camera) ToScreen(p cp.Vector) (float32, float32) {
	x := c.screenW/2 + (p.X-c.PosX)*c.zoom
	y := c.floorRow - (p.Y-c.floorY)*c.zoom
	return float32(x), float32(y)
}

// ToWorld converts a screen pixel to an arena point.
func (c *Camera) ToWorld(x, y float64) cp.Vector {
	return cp.Vector{
		X: c.PosX + (x-c.screenW/2)/c.zoom,
		Y: c.floorY + (c.floorRow-y)/c.zoom,
	}
}

// Rect returns the screen rectangle of a box centred on p.
func (c *Camera) Rect(p cp.Vector, w, h float64) (x, y, sw, sh float32) {
	cx, cy := c.ToScreen(p)
	sw = float32(w * c.zoom)
	sh = float32(h * c.zoom)
	return cx - sw/2, cy - sh/2, sw, sh
}
