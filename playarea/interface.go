package playarea

// Controls is the normalized input source, sampled once per update
type Controls interface {
	MoveLeftPressed() bool
	MoveRightPressed() bool
	FirePressed() bool
}

// ScoreKeeper receives scoring and life events from contact resolution
type ScoreKeeper interface {
	AddToScore(amount int)
	ShipDestroyed()
	InvadersDestroyed()
}
