package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/bossfight/actor"
	"github.com/milk9111/bossfight/audio"
	"github.com/milk9111/bossfight/encounter"
	ecscomp "github.com/milk9111/bossfight/ecs/component"
	"github.com/milk9111/bossfight/event"
	"github.com/milk9111/bossfight/input"
	"github.com/milk9111/bossfight/prefabs"
	"github.com/milk9111/bossfight/spectate"
	"golang.org/x/image/font/basicfont"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	journalLines = 6
)

var (
	colorSky     = color.RGBA{R: 0x1b, G: 0x1e, B: 0x2b, A: 0xff}
	colorFloor   = color.RGBA{R: 0x4a, G: 0x40, B: 0x3a, A: 0xff}
	colorPlayer  = color.RGBA{R: 0x5f, G: 0xb4, B: 0xff, A: 0xff}
	colorBoss    = color.RGBA{R: 0xd0, G: 0x4a, B: 0x3a, A: 0xff}
	colorHurt    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorShield  = color.RGBA{R: 0xff, G: 0xd7, B: 0x5e, A: 0xff}
	colorArrow   = color.RGBA{R: 0xe8, G: 0xe8, B: 0xd0, A: 0xff}
	colorBolt    = color.RGBA{R: 0xb0, G: 0x6c, B: 0xff, A: 0xff}
	colorRain    = color.RGBA{R: 0xff, G: 0x8c, B: 0x1a, A: 0xff}
	colorPillar  = color.RGBA{R: 0xff, G: 0x50, B: 0x10, A: 0x90}
	colorHealth  = color.RGBA{R: 0x3c, G: 0xc8, B: 0x64, A: 0xff}
	colorMissing = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	colorText    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type Game struct {
	logger   *log.Logger
	specFile string
	spec     prefabs.EncounterSpec

	enc      *encounter.Encounter
	controls *Controls
	camera   *Camera
	bot      input.Provider
	useBot   bool

	cues    *audio.CueSink
	hub     *spectate.Hub
	watcher *prefabs.Watcher

	face    text.Face
	journal []string
	paused  bool
	debug   bool
}

type GameOptions struct {
	SpecFile string
	Debug    bool
	Bot      bool
	Logger   *log.Logger
	Cues     *audio.CueSink
	Hub      *spectate.Hub
	Watcher  *prefabs.Watcher
}

func NewGame(opts GameOptions) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	spec, err := prefabs.LoadEncounter(opts.SpecFile)
	if err != nil {
		return nil, err
	}
	g := &Game{
		logger:   logger,
		specFile: opts.SpecFile,
		spec:     spec,
		camera:   NewCamera(baseWidth, baseHeight, spec.Arena),
		cues:     opts.Cues,
		hub:      opts.Hub,
		watcher:  opts.Watcher,
		face:     text.NewGoXFace(basicfont.Face7x13),
		debug:    opts.Debug,
		useBot:   opts.Bot,
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	return g, nil
}

// restart builds a fresh encounter from the current spec.
func (g *Game) restart() error {
	sinks := []event.Sink{event.SinkFunc(g.record)}
	if g.cues != nil {
		g.cues.SetCues(g.spec.Audio)
		sinks = append(sinks, g.cues)
	}
	if g.hub != nil {
		sinks = append(sinks, g.hub)
	}
	if g.debug {
		sinks = append(sinks, event.NewLogSink(g.logger))
	}
	enc, err := encounter.New(g.spec, encounter.Deps{Sink: event.Join(sinks...), Logger: g.logger})
	if err != nil {
		return err
	}
	g.enc = enc
	g.journal = g.journal[:0]
	g.camera.SetArena(g.spec.Arena)
	g.controls = NewControls(g.camera, enc.Player().Position)
	g.bot = enc.BotProvider(input.DefaultBotConfig())
	return nil
}

// reload picks up edited spec and script files. A broken edit keeps the
// running fight.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	spec, err := prefabs.LoadEncounter(g.specFile)
	if err == nil {
		_, err = prefabs.LoadPhaseScript(spec)
	}
	if err != nil {
		g.logger.Printf("reload %s: %v", strings.Join(changed, ", "), err)
		return
	}
	g.spec = spec
	if err := g.restart(); err != nil {
		g.logger.Printf("reload: %v", err)
		return
	}
	g.logger.Printf("reloaded %s", strings.Join(changed, ", "))
}

func (g *Game) record(e event.Event) {
	switch e.Type {
	case event.TypeSpawned, event.TypeDestroyed, event.TypeExpired, event.TypeWorldHit:
		return
	}
	g.journal = append(g.journal, e.String())
	if over := len(g.journal) - journalLines; over > 0 {
		g.journal = append(g.journal[:0], g.journal[over:]...)
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	g.reload()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			g.logger.Printf("restart: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.useBot = !g.useBot
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}

	frame := g.controls.Next()
	if g.useBot {
		frame = g.bot.Next()
	}
	if !g.paused && !g.enc.Over() {
		g.enc.Tick(frame)
	}

	p, b := g.enc.Player().Position(), g.enc.Boss().Position()
	g.camera.Update((p.X + b.X) / 2)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorSky)

	arena := g.spec.Arena
	left, floor := g.camera.ToScreen(cp.Vector{X: arena.MinX, Y: arena.FloorY})
	right, _ := g.camera.ToScreen(cp.Vector{X: arena.MaxX, Y: arena.FloorY})
	vector.FillRect(screen, left, floor, right-left, float32(baseHeight)-floor, colorFloor, false)
	_, top := g.camera.ToScreen(cp.Vector{Y: arena.FloorY + 12})
	vector.StrokeLine(screen, left, floor, left, top, 2, colorFloor, false)
	vector.StrokeLine(screen, right, floor, right, top, 2, colorFloor, false)

	for _, pr := range g.enc.Projectiles() {
		g.drawProjectile(screen, pr)
	}
	g.drawPlayer(screen)
	g.drawBoss(screen)
	g.drawHUD(screen)
}

func (g *Game) drawPlayer(screen *ebiten.Image) {
	p := g.enc.Player()
	w, h := p.Body().Size()
	clr := color.Color(colorPlayer)
	switch {
	case p.State() == actor.PlayerHit:
		clr = colorHurt
	case p.Invincible():
		clr = colorShield
	}
	x, y, sw, sh := g.camera.Rect(p.Position(), w, h)
	vector.FillRect(screen, x, y, sw, sh, clr, false)

	if p.State() == actor.PlayerRangedAim {
		dir, ok := p.AimDirection()
		lineClr := color.Color(colorArrow)
		if !ok {
			lineClr = colorBoss
		}
		fx, fy := g.camera.ToScreen(p.Position())
		tx, ty := g.camera.ToScreen(p.Position().Add(dir.Mult(2)))
		vector.StrokeLine(screen, fx, fy, tx, ty, 2, lineClr, true)
	}
}

func (g *Game) drawBoss(screen *ebiten.Image) {
	b := g.enc.Boss()
	w, h := b.Body().Size()
	clr := color.Color(colorBoss)
	switch {
	case b.State() == actor.BossHit:
		clr = colorHurt
	case !b.Vulnerable() && b.Alive():
		clr = colorShield
	}
	x, y, sw, sh := g.camera.Rect(b.Position(), w, h)
	vector.FillRect(screen, x, y, sw, sh, clr, false)
	if g.debug {
		r := float32(b.Config().DetectionRange * g.camera.Zoom())
		cx, cy := g.camera.ToScreen(b.Position())
		vector.StrokeCircle(screen, cx, cy, r, 1, colorMissing, true)
	}
}

func (g *Game) drawProjectile(screen *ebiten.Image, pr encounter.Projectile) {
	var clr color.Color
	switch pr.Kind {
	case ecscomp.KindArrow:
		clr = colorArrow
	case ecscomp.KindBossBolt:
		clr = colorBolt
	case ecscomp.KindFireRain:
		clr = colorRain
	case ecscomp.KindFlamePillar:
		clr = colorPillar
	default:
		clr = colorText
	}
	x, y, sw, sh := g.camera.Rect(pr.Position, pr.Width, pr.Height)
	vector.FillRect(screen, x, y, sw, sh, clr, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	p, b := g.enc.Player(), g.enc.Boss()
	g.drawBar(screen, 20, 20, 300, p.Health().Ratio())
	g.drawBar(screen, baseWidth-320, 20, 300, b.Health().Ratio())

	g.drawText(screen, 20, 40, fmt.Sprintf("player %s  hp %.0f", p.State(), p.HealthStat().Get()))
	status := fmt.Sprintf("boss %s  hp %.0f", b.State(), b.HealthStat().Get())
	if phase := b.Phase(); phase >= 0 && phase < len(g.spec.Phases) {
		status += "  " + g.spec.Phases[phase].Name
	}
	if b.Flight().Running() {
		status += "  " + b.Flight().Phase().String()
	}
	g.drawText(screen, baseWidth-320, 40, status)

	line := fmt.Sprintf("t %.1fs  FPS %.0f", g.enc.Elapsed(), ebiten.ActualFPS())
	if g.useBot {
		line += "  [bot]"
	}
	if g.paused {
		line += "  [paused]"
	}
	if g.hub != nil {
		line += fmt.Sprintf("  spectators %d", g.hub.Spectators())
	}
	g.drawText(screen, 20, baseHeight-24, line)

	for i, entry := range g.journal {
		g.drawText(screen, 20, 70+float64(i)*16, entry)
	}

	if g.enc.Over() {
		msg := "YOU DIED - press R"
		if g.enc.Outcome() == encounter.PlayerWon {
			msg = "BOSS DEFEATED - press R"
		}
		g.drawText(screen, baseWidth/2-float64(len(msg))*7/2, baseHeight/2, msg)
	}
}

func (g *Game) drawBar(screen *ebiten.Image, x, y, w float32, ratio float64) {
	if ratio < 0 {
		ratio = 0
	}
	vector.FillRect(screen, x, y, w, 10, colorMissing, false)
	vector.FillRect(screen, x, y, w*float32(ratio), 10, colorHealth, false)
}

func (g *Game) drawText(screen *ebiten.Image, x, y float64, s string) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(colorText)
	text.Draw(screen, s, g.face, op)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
