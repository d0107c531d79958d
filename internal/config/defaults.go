package config

import (
	_ "embed"
)

//go:embed defaults/world.yaml
var defaultWorldYAML []byte

//go:embed defaults/minigames.yaml
var defaultMiniGamesYAML []byte

// DefaultWorldConfig returns the default overworld configuration.
func DefaultWorldConfig() World {
	return World{
		Map: MapConfig{
			Width:    1280,
			Height:   960,
			TileSize: 16,
		},
		Player: PlayerConfig{
			StartX:     625,
			StartY:     770,
			Speed:      4,
			MoveTickMs: 30,
		},
		Input: InputConfig{
			MaxThrow:  40,
			DeadZone:  10,
			KeyHoldMs: 400,
		},
		Zones: ZoneConfig{
			Size:        5,
			Cap:         5,
			NearbyRange: 48,
			GrassAreas: []AreaConfig{
				{X: 2, Y: 32, Width: 7, Height: 14},
				{X: 18, Y: 18, Width: 15, Height: 5},
				{X: 14, Y: 24, Width: 7, Height: 7},
				{X: 22, Y: 24, Width: 3, Height: 3},
				{X: 30, Y: 24, Width: 3, Height: 3},
				{X: 24, Y: 45, Width: 8, Height: 6},
				{X: 20, Y: 51, Width: 14, Height: 13},
				{X: 44, Y: 24, Width: 7, Height: 10},
				{X: 52, Y: 30, Width: 6, Height: 3},
				{X: 58, Y: 20, Width: 15, Height: 5},
				{X: 60, Y: 25, Width: 7, Height: 3},
				{X: 65, Y: 28, Width: 7, Height: 4},
				{X: 48, Y: 50, Width: 11, Height: 7},
				{X: 60, Y: 51, Width: 3, Height: 3},
			},
		},
	}
}

// DefaultMiniGamesConfig returns the default mini-game configuration.
func DefaultMiniGamesConfig() MiniGames {
	return MiniGames{
		ResultDelayMs: 1000,
		Mosaic: MosaicConfig{
			Names:   []string{"Ingjwi", "Dairy", "Secu", "Cocomo", "Ingdebyu", "Iai"},
			Choices: 3,
		},
		Spot: SpotConfig{
			GridSize:   6,
			MaxMisses:  3,
			TimeLimitS: 30,
			NormalText: "DS",
			OddText:    "D5",
		},
		Cipher: CipherConfig{
			MinShift: 1,
			MaxShift: 26,
			Questions: []CipherQuestion{
				{CipherText: "jgnnqyqtnf", Answer: "helloworld"},
				{CipherText: "vdxjggzbz", Answer: "aicollege"},
				{CipherText: "xpatngboxklbmr", Answer: "ewhauniversity"},
				{CipherText: "qmpsfgsqifwhm", Answer: "cybersecurity"},
				{CipherText: "trvjri", Answer: "caesar"},
			},
		},
		Circuit: CircuitConfig{
			Wires: []string{"red", "yellow", "blue", "purple"},
		},
		Ladder: LadderConfig{
			Labels: []string{"Indebu", "Inji", "Desa"},
			Target: "Indebu",
		},
	}
}
