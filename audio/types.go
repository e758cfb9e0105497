package audio

// SoundType represents different sound effects
type SoundType int

const (
	SoundMarch0        SoundType = iota // Formation step, tone 1 of 4
	SoundMarch1                         // tone 2
	SoundMarch2                         // tone 3
	SoundMarch3                         // tone 4
	SoundFire                           // Missile launch
	SoundInvaderKilled                  // Invader destroyed
	SoundShipExplosion                  // Ship destroyed
	SoundUfoHit                         // Ufo destroyed
	soundTypeCount
)

var soundNames = [...]string{
	SoundMarch0:        "march0",
	SoundMarch1:        "march1",
	SoundMarch2:        "march2",
	SoundMarch3:        "march3",
	SoundFire:          "fire",
	SoundInvaderKilled: "invader_killed",
	SoundShipExplosion: "ship_explosion",
	SoundUfoHit:        "ufo_hit",
}

func (s SoundType) String() string {
	if s >= 0 && s < soundTypeCount {
		return soundNames[s]
	}
	return "unknown"
}

// marchSound maps a march index to its tone, wrapping past the last one
func marchSound(index int) SoundType {
	n := int(SoundMarch3-SoundMarch0) + 1
	return SoundMarch0 + SoundType(((index%n)+n)%n)
}
