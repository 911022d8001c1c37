// Package engine provides the FreeCell rules engine.
//
// The engine package implements:
//   - Cards, decks and the three pile kinds (cells, foundations, cascades)
//   - Dealing a deck onto the tableau
//   - Single card moves and multi-card supermoves with rollback
//   - Undo history and the move log
//   - The text command grammar
//
// Core Types:
//
// Game owns a history of Tableau snapshots. Every move is applied to a scratch
// copy of the current Tableau and committed only when it succeeds, so a
// rejected move never changes the game. DealConfig describes how a deck is
// built for a new game.
//
// Usage:
//
//	game := engine.DealGame(engine.ShuffledDeck())
//
//	action, err := engine.ParseAction("15+78")
//	if err != nil {
//		fmt.Println(err)
//		return
//	}
//	if err := game.Apply(action); err != nil {
//		fmt.Println(err) // e.g. "Those cards cannot go on that cascade."
//	}
//	board := game.Current()
//
// Game Rules:
//
// A card may go on a cascade when the cascade is empty or the card is one rank
// lower and of the other colour. Foundations build up by suit from Ace. Cells
// hold one card each. A run of cards may move between cascades in one step when
// there is room to shuffle it through: (free cells + 1) x (empty cascades + 1).
// The game is won when every cascade descends in rank from the bottom.
package engine
