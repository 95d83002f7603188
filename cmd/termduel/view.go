package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/actor"
	ecscomp "github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/encounter"
)

var (
	stylePlayer = tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue)
	styleBoss   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleShield = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHurt   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleFloor  = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleFire   = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleBolt   = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleText   = tcell.StyleDefault
)

// view maps the arena onto the terminal grid: one column per 1/scale units
// and the floor two rows above the bottom.
type view struct {
	screen tcell.Screen
	enc    *encounter.Encounter
	scale  float64
	minX   float64
	floorY float64
	width  int
	height int
}

func newView(screen tcell.Screen, enc *encounter.Encounter) *view {
	v := &view{screen: screen}
	v.reset(enc)
	return v
}

func (v *view) reset(enc *encounter.Encounter) {
	v.enc = enc
	v.resize()
}

func (v *view) resize() {
	v.width, v.height = v.screen.Size()
	arena := v.enc.Arena()
	v.minX = arena.MinX
	v.floorY = arena.FloorY
	v.scale = 1
	if span := arena.MaxX - arena.MinX; span > 0 && v.width > 0 {
		v.scale = float64(v.width) / span
	}
}

func (v *view) floorRow() int {
	return v.height - 3
}

// cell converts an arena point to a column and row. Rows are twice as
// tall as columns are wide, so vertical distance is halved.
func (v *view) cell(p cp.Vector) (int, int) {
	col := int(math.Floor((p.X - v.minX) * v.scale))
	row := v.floorRow() - int(math.Floor((p.Y-v.floorY)*v.scale/2))
	return col, row
}

func (v *view) fill(p cp.Vector, w, h float64, r rune, style tcell.Style) {
	x0, y1 := v.cell(cp.Vector{X: p.X - w/2, Y: p.Y - h/2})
	x1, y0 := v.cell(cp.Vector{X: p.X + w/2, Y: p.Y + h/2})
	if y1 > v.floorRow() {
		y1 = v.floorRow()
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			v.set(x, y, r, style)
		}
	}
}

func (v *view) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

func (v *view) text(x, y int, s string) {
	for i, r := range s {
		v.set(x+i, y, r, styleText)
	}
}

func (v *view) draw() {
	v.screen.Clear()
	for x := 0; x < v.width; x++ {
		v.set(x, v.floorRow()+1, '=', styleFloor)
	}

	for _, pr := range v.enc.Projectiles() {
		switch pr.Kind {
		case ecscomp.KindArrow:
			c, r := v.cell(pr.Position)
			v.set(c, r, '-', styleText)
		case ecscomp.KindBossBolt:
			c, r := v.cell(pr.Position)
			v.set(c, r, 'o', styleBolt)
		case ecscomp.KindFireRain:
			c, r := v.cell(pr.Position)
			v.set(c, r, '*', styleFire)
		case ecscomp.KindFlamePillar:
			v.fill(pr.Position, pr.Width, pr.Height, '|', styleFire)
		}
	}

	p := v.enc.Player()
	pw, ph := p.Body().Size()
	ps := stylePlayer
	switch {
	case p.State() == actor.PlayerHit:
		ps = styleHurt
	case p.Invincible():
		ps = styleShield
	}
	v.fill(p.Position(), pw, ph, '@', ps)

	b := v.enc.Boss()
	bw, bh := b.Body().Size()
	bs := styleBoss
	switch {
	case b.State() == actor.BossHit:
		bs = styleHurt
	case !b.Vulnerable() && b.Alive():
		bs = styleShield
	}
	v.fill(b.Position(), bw, bh, 'B', bs)

	v.text(0, 0, fmt.Sprintf("player %-11s hp %4.0f", p.State(), p.HealthStat().Get()))
	status := fmt.Sprintf("boss %-12s hp %4.0f", b.State(), b.HealthStat().Get())
	if b.Flight().Running() {
		status += " " + b.Flight().Phase().String()
	}
	v.text(v.width-len(status), 0, status)
	v.text(0, v.height-1, "a/d move  space jump  l roll  j strike/fire  k bow  b bot  r restart  q quit")

	switch v.enc.Outcome() {
	case encounter.PlayerWon:
		v.text(v.width/2-8, v.height/2, "BOSS DEFEATED")
	case encounter.BossWon:
		v.text(v.width/2-4, v.height/2, "YOU DIED")
	}
	v.screen.Show()
}
