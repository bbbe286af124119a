package event

import "github.com/qixgo/arena/internal/core/ecs"

// Sound asks the audio sink to play a named effect. Fire-and-forget.
type Sound struct {
	Name string
}

// Sound names understood by the audio sinks.
const (
	SoundBallReflect     = "ball_reflect"
	SoundMineReflect     = "mine_reflect"
	SoundBallSelfCollide = "ball_selfCollide"
	SoundDrawWall        = "player_drawWall"
	SoundExplode         = "player_explode"
	SoundDeathYell       = "player_deathYell"
	SoundWinLaugh        = "player_winLaugh"
)

// TrailStarted fires when the player leaves claimed territory.
type TrailStarted struct {
	X, Z    int
	Heading string
}

// TerritoryClaimed fires once per closed trail.
type TerritoryClaimed struct {
	TrailCells  int
	FilledCells int // cells added by flood fill, excluding the trail
	SkippedSeed int // seeds whose region held a hostile
	Covered     float64
}

// PlayerDied fires after the death reset has been applied.
type PlayerDied struct {
	Killer    ecs.EntityID
	ByTrail   bool
	LivesLeft int
}

type LevelComplete struct {
	Covered float64
}

type GameOver struct {
	Covered float64
}
