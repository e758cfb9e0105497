package render

import (
	"github.com/lixenwraith/space-invasion/formation"
	"github.com/lixenwraith/space-invasion/playarea"
)

// Palette
var (
	RgbBackground = RGB{10, 10, 20}
	RgbHUDText    = RGB{230, 230, 230}
	RgbHUDLabel   = RGB{140, 140, 160}
	RgbGround     = RGB{60, 200, 60}

	RgbShip    = RGB{60, 220, 60}
	RgbMissile = RGB{255, 255, 255}
	RgbBomb    = RGB{255, 200, 80}
	RgbBombHot = RGB{255, 90, 60}
	RgbUfo     = RGB{230, 60, 60}
	RgbShield  = RGB{60, 200, 60}

	RgbOverlayText = RGB{255, 255, 255}
	RgbOverlayBg   = RGB{40, 40, 80}
	RgbDebug       = RGB{90, 90, 120}
)

// rankColors tints invaders by rank
var rankColors = [formation.RankCount]RGB{
	formation.RankPawn:    {120, 200, 255},
	formation.RankCaptain: {200, 140, 255},
	formation.RankGeneral: {255, 120, 200},
}

// explosionColors is the colour an explosion starts at, it fades to the background
var explosionColors = map[playarea.ExplosionKind]RGB{
	playarea.ExplosionInvader: {255, 255, 255},
	playarea.ExplosionShip:    {255, 160, 40},
	playarea.ExplosionUfo:     {255, 80, 80},
	playarea.ExplosionShield:  {200, 255, 200},
}
