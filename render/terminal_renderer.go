package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/space-invasion/formation"
	"github.com/lixenwraith/space-invasion/parameter"
	"github.com/lixenwraith/space-invasion/playarea"
	"github.com/lixenwraith/space-invasion/vmath"
)

const (
	// FieldColumns and FieldRows are the play area in terminal cells
	FieldColumns = int(parameter.PlayAreaWidth / parameter.UnitsPerColumn)
	FieldRows    = int(parameter.PlayAreaHeight / parameter.UnitsPerRow)
)

// Sprites, two animation frames per rank
var invaderSprites = [formation.RankCount][2]string{
	formation.RankPawn:    {"{@@}", "/@@\\"},
	formation.RankCaptain: {"/MM\\", "|MM|"},
	formation.RankGeneral: {"<oo>", ">oo<"},
}

const (
	shipSprite          = "_/^\\_"
	ufoSprite           = "<=O=>"
	invaderBlastSprite  = "\\*/"
	shipBlastSprite     = "#*#*#"
	missileGlyph        = '|'
	slowBombGlyph       = ':'
	fastBombGlyph       = '!'
	shieldBlastGlyph    = '*'
	groundGlyph         = '_'
	debugGlyph          = '.'
	shieldCellsPerGlyph = int(parameter.UnitsPerColumn/parameter.ShieldCellSize) *
		int(parameter.UnitsPerRow/parameter.ShieldCellSize)
)

var shadeGlyphs = [...]rune{'░', '▒', '▓', '█'}

// View is everything drawn in one frame
type View struct {
	Frame     playarea.Frame
	Score     int
	HighScore int
	Lives     int
	Paused    bool
	GameOver  bool
	Limbo     time.Duration
	Debug     bool
	Muted     bool
}

// TerminalRenderer draws views onto a tcell screen
type TerminalRenderer struct {
	screen tcell.Screen
	bg     tcell.Style

	// field origin on screen, recomputed each draw to follow resizes
	originX int
	originY int
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		bg:     tcell.StyleDefault.Background(RgbBackground.Color()),
	}
}

// Draw renders the entire view and shows it
func (r *TerminalRenderer) Draw(v View) {
	w, h := r.screen.Size()
	r.originX = max(0, (w-FieldColumns)/2)
	r.originY = max(0, (h-FieldRows-parameter.HUDRows)/2) + parameter.HUDRows

	r.screen.Fill(' ', r.bg)

	f := v.Frame
	if v.Debug && f.Extent.Max.X > f.Extent.Min.X {
		r.drawExtent(f.Extent)
	}
	r.drawShields(f.Shields)
	r.drawGround()

	for _, inv := range f.Invaders {
		r.drawInvader(inv, f.AnimationFrame)
	}
	if f.Ufo.Active {
		r.drawSprite(f.Ufo.Position, ufoSprite, RgbUfo)
	}
	if f.Ship.Active {
		r.drawSprite(f.Ship.Position, shipSprite, RgbShip)
	}
	if f.Missile.Active {
		r.drawGlyph(f.Missile.Position, missileGlyph, RgbMissile)
	}
	for _, b := range f.Bombs {
		if b.Fast {
			r.drawGlyph(b.Position, fastBombGlyph, RgbBombHot)
		} else {
			r.drawGlyph(b.Position, slowBombGlyph, RgbBomb)
		}
	}
	for _, e := range f.Explosions {
		r.drawExplosion(e)
	}

	r.drawLives(v.Lives)
	r.drawHUD(v)
	r.drawOverlay(v)

	r.screen.Show()
}

// cellAt maps a play area point to a screen cell, Y is flipped
func (r *TerminalRenderer) cellAt(p vmath.Vec2) (int, int) {
	col := int(p.X / parameter.UnitsPerColumn)
	row := int((parameter.PlayAreaHeight - p.Y) / parameter.UnitsPerRow)
	return r.originX + col, r.originY + row
}

func (r *TerminalRenderer) inField(x, y int) bool {
	return x >= r.originX && x < r.originX+FieldColumns &&
		y >= r.originY && y < r.originY+FieldRows
}

func (r *TerminalRenderer) set(x, y int, ch rune, fg RGB) {
	if !r.inField(x, y) {
		return
	}
	r.screen.SetContent(x, y, ch, nil, r.bg.Foreground(fg.Color()))
}

func (r *TerminalRenderer) drawText(x, y int, text string, style tcell.Style) {
	w, h := r.screen.Size()
	if y < 0 || y >= h {
		return
	}
	for _, ch := range text {
		if x >= 0 && x < w {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}

func (r *TerminalRenderer) drawGlyph(p vmath.Vec2, ch rune, fg RGB) {
	x, y := r.cellAt(p)
	r.set(x, y, ch, fg)
}

// drawSprite centres a one-line sprite on p
func (r *TerminalRenderer) drawSprite(p vmath.Vec2, sprite string, fg RGB) {
	x, y := r.cellAt(p)
	x -= len([]rune(sprite)) / 2
	for _, ch := range sprite {
		r.set(x, y, ch, fg)
		x++
	}
}

func (r *TerminalRenderer) drawInvader(inv playarea.InvaderView, frame int) {
	if inv.Rank < 0 || inv.Rank >= formation.RankCount {
		return
	}
	r.drawSprite(inv.Position, invaderSprites[inv.Rank][frame&1], rankColors[inv.Rank])
}

// drawShields shades each screen cell by how many intact shield cells fall inside it
func (r *TerminalRenderer) drawShields(shields []playarea.ShieldView) {
	type cell struct{ x, y int }
	for _, s := range shields {
		counts := make(map[cell]int)
		minX := s.Position.X - parameter.ShieldWidth/2
		minY := s.Position.Y - parameter.ShieldHeight/2
		for row, word := range s.Bitmap {
			for col := 0; col < 32; col++ {
				if word&(1<<col) == 0 {
					continue
				}
				center := vmath.Vec2{
					X: minX + (float64(col)+0.5)*parameter.ShieldCellSize,
					Y: minY + (float64(row)+0.5)*parameter.ShieldCellSize,
				}
				x, y := r.cellAt(center)
				counts[cell{x, y}]++
			}
		}
		for c, n := range counts {
			r.set(c.x, c.y, shadeGlyph(n), RgbShield)
		}
	}
}

func shadeGlyph(intact int) rune {
	i := intact * len(shadeGlyphs) / (shieldCellsPerGlyph + 1)
	return shadeGlyphs[min(i, len(shadeGlyphs)-1)]
}

func (r *TerminalRenderer) drawGround() {
	_, y := r.cellAt(vmath.Vec2{Y: parameter.GroundY})
	for x := r.originX; x < r.originX+FieldColumns; x++ {
		r.set(x, y, groundGlyph, RgbGround)
	}
}

// drawExplosion fades from the kind colour to the background as the explosion ages
func (r *TerminalRenderer) drawExplosion(e playarea.Explosion) {
	alpha := 1.0
	if total := e.Kind.Duration(); total > 0 {
		alpha = float64(e.Remaining) / float64(total)
	}
	fg := RgbBackground.Blend(explosionColors[e.Kind], alpha)

	switch e.Kind {
	case playarea.ExplosionInvader:
		r.drawSprite(e.Position, invaderBlastSprite, fg)
	case playarea.ExplosionShip:
		r.drawSprite(e.Position, shipBlastSprite, fg)
	case playarea.ExplosionUfo:
		r.drawSprite(e.Position, fmt.Sprintf("%d", e.Score), fg)
	case playarea.ExplosionShield:
		r.drawGlyph(e.Position, shieldBlastGlyph, fg)
	}
}

// drawLives prints the count and one ship per spare life
func (r *TerminalRenderer) drawLives(lives int) {
	x, y := r.cellAt(vmath.Vec2{X: parameter.UnitsPerColumn, Y: parameter.LivesIndicatorY})
	r.set(x, y, rune('0'+min(max(lives, 0), 9)), RgbHUDText)
	x += 2
	for i := 1; i < lives; i++ {
		for _, ch := range shipSprite {
			r.set(x, y, ch, RgbShip)
			x++
		}
		x++
	}
}

func (r *TerminalRenderer) drawExtent(ext vmath.Rect) {
	x0, y0 := r.cellAt(vmath.Vec2{X: ext.Min.X, Y: ext.Max.Y})
	x1, y1 := r.cellAt(vmath.Vec2{X: ext.Max.X, Y: ext.Min.Y})
	for x := x0; x <= x1; x++ {
		r.set(x, y0, debugGlyph, RgbDebug)
		r.set(x, y1, debugGlyph, RgbDebug)
	}
	for y := y0; y <= y1; y++ {
		r.set(x0, y, debugGlyph, RgbDebug)
		r.set(x1, y, debugGlyph, RgbDebug)
	}
}

func (r *TerminalRenderer) drawHUD(v View) {
	y := r.originY - parameter.HUDRows
	label := r.bg.Foreground(RgbHUDLabel.Color())
	value := r.bg.Foreground(RgbHUDText.Color()).Bold(true)

	x := r.originX
	for _, item := range []struct{ name, value string }{
		{"SCORE", fmt.Sprintf("%05d", v.Score)},
		{"HI", fmt.Sprintf("%05d", v.HighScore)},
		{"LEVEL", fmt.Sprintf("%d", v.Frame.Level)},
	} {
		r.drawText(x, y, item.name, label)
		x += len(item.name) + 1
		r.drawText(x, y, item.value, value)
		x += len(item.value) + 3
	}
	if v.Muted {
		r.drawText(x, y, "MUTE", label)
	}
	if v.Debug {
		tick := fmt.Sprintf("tick %d", v.Frame.Tick)
		r.drawText(r.originX+FieldColumns-len(tick), y, tick, label)
	}
}

func (r *TerminalRenderer) drawOverlay(v View) {
	var lines []string
	switch {
	case v.GameOver:
		lines = []string{"GAME OVER", "press Enter to play"}
	case v.Paused:
		lines = []string{"PAUSED"}
	case v.Limbo > 0:
		lines = []string{"GET READY"}
	default:
		return
	}

	style := tcell.StyleDefault.Background(RgbOverlayBg.Color()).Foreground(RgbOverlayText.Color()).Bold(true)
	y := r.originY + FieldRows/2 - len(lines)/2
	for i, line := range lines {
		text := " " + line + " "
		x := r.originX + (FieldColumns-len(text))/2
		r.drawText(x, y+i, text, style)
	}
}
