// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 320
	ScreenHeight = 200
	WindowScale  = 3
	MaxDeltaTime = 0.06 // seconds

	CellSize     = 64.0 // world units per sector
	TextureSize  = 64   // texels per wall face
	FOV          = 60.0 // degrees
	ViewDistance = CellSize * 16
	MinShade     = 0.15
	MaxRaySteps  = 64

	EyeHeight         = CellSize / 2
	CrouchHeight      = CellSize / 3
	MaxPitch          = ScreenHeight / 4 // pixels of horizon shift
	PitchSpeed        = 120.0            // pixels per second
	MaxShake          = 4.0
	ShakeSpeed        = 24.0             // shake units per second while moving
	ShakeDecay        = 16.0             // shake units per second while idle
	EffectLightRadius = CellSize * 2
	EffectLight       = 0.35

	PlayerRadius       = CellSize / 4
	PlayerMaxVelocity  = 192.0 // units per second
	PlayerAcceleration = 768.0
	PlayerMaxTurn      = 150.0 // degrees per second
	PlayerTurnAccel    = 900.0
	PlayerHealth       = 100
	PlayerFireCooldown = 0.35  // seconds
	PlayerShotDamage   = 34
	PlayerAimCone      = 6.0   // degrees either side of the view axis
	PlayerStartAmmo    = 24

	EnemyRadius = CellSize / 4

	DoorSpeed      = 1.5 // open fraction per second
	DoorStayOpen   = 3.0 // seconds before a door closes itself
	DoorPathWeight = 2.0
	DoorTexture    = 6
	ExitTexture    = 7

	EffectTTL  = 2000 // milliseconds
	MaxEffects = 64
	MaxBodies  = 512

	FadeDuration = 0.5 // seconds

	DebugFeedInterval = 100 // milliseconds between websocket frames
)

// Enemy behaviour defaults, overridden per definition.
const (
	AlertRadius      = CellSize * 8
	AttackRange      = CellSize * 4
	AimDelay         = 0.6 // seconds
	AttackCooldown   = 0.8
	StaggerDuration  = 0.3
	DyingDuration    = 1.0
	RepathInterval   = 0.5
	LoseSightTimeout = 3.0
	EnemyDamage      = 8
	WaypointReach    = CellSize / 4
)

var (
	BackgroundColor = color.RGBA{0, 0, 0, 255}
	CeilingColor    = color.RGBA{40, 40, 48, 255}
	FloorColor      = color.RGBA{72, 64, 56, 255}
	OverlayColor    = color.RGBA{0, 0, 0, 160}
	TextColor       = color.RGBA{240, 240, 240, 255}
	ErrorTextColor  = color.RGBA{255, 90, 90, 255}
	EnemyColor      = color.RGBA{200, 40, 40, 255}
	ItemColor       = color.RGBA{60, 200, 90, 255}
	EffectColor     = color.RGBA{255, 200, 60, 255}
	ObjectColor     = color.RGBA{150, 150, 160, 255}

	// WallColors is indexed by face texture id; id 0 means open.
	WallColors = []color.RGBA{
		{0, 0, 0, 0},
		{150, 150, 150, 255}, // stone
		{140, 90, 60, 255},   // wood
		{70, 90, 160, 255},   // blue brick
		{120, 40, 40, 255},   // red brick
		{90, 120, 70, 255},   // moss
		{180, 160, 60, 255},  // door
		{60, 180, 60, 255},   // exit
	}
)
