// Package config provides deal preset management for the FreeCell server.
//
// The config package handles:
//   - Loading deal presets from JSON and YAML files
//   - Validating presets before they are used to deal a game
//   - Built-in presets that exist without any files
//   - Listing and saving presets
//
// Deal Format:
//
// A deal preset names how the deck for a new game is built:
//
//	name: Seeded practice
//	description: Same deal every time
//	order: shuffled   # fresh | shuffled | explicit
//	seed: 617         # optional, shuffled only
//	cards: [AS, 2S]   # explicit only, bottom of the deck first
//
// Files live in the deals directory as <id>.json, <id>.yaml or <id>.yml. A
// file named default becomes the default preset; otherwise the built-in
// random preset is used. A file may override the built-in fresh and random
// presets by using the same id.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	deal, err := manager.LoadDeal("fresh")
//	game, err := engine.NewGameFromConfig(deal)
//
//	// List available presets
//	deals, err := manager.ListDeals()
package config
