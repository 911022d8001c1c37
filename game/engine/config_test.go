package engine

import (
	"strings"
	"testing"
)

func createValidConfig() *DealConfig {
	return &DealConfig{
		Name:        "Test Deal",
		Description: "A valid test deal",
		Order:       OrderFresh,
	}
}

func deckNotation(d *Deck) []string {
	cards := d.Cards()
	out := make([]string, len(cards))
	for i, card := range cards {
		out[i] = card.String()
	}
	return out
}

func TestValidateDealConfig(t *testing.T) {
	seed := uint64(5)

	tests := []struct {
		name        string
		modify      func(*DealConfig)
		expectError string
	}{
		{
			name:   "valid fresh",
			modify: func(c *DealConfig) {},
		},
		{
			name:   "valid shuffled with seed",
			modify: func(c *DealConfig) { c.Order = OrderShuffled; c.Seed = &seed },
		},
		{
			name: "valid explicit",
			modify: func(c *DealConfig) {
				c.Order = OrderExplicit
				c.Cards = deckNotation(SeededDeck(1))
			},
		},
		{
			name:        "missing name",
			modify:      func(c *DealConfig) { c.Name = "  " },
			expectError: "name is required",
		},
		{
			name:        "unknown order",
			modify:      func(c *DealConfig) { c.Order = "sorted" },
			expectError: "order must be one of",
		},
		{
			name:        "empty order",
			modify:      func(c *DealConfig) { c.Order = "" },
			expectError: "order must be one of",
		},
		{
			name:        "cards without explicit order",
			modify:      func(c *DealConfig) { c.Cards = []string{"AS"} },
			expectError: "cards are only allowed",
		},
		{
			name:        "explicit without cards",
			modify:      func(c *DealConfig) { c.Order = OrderExplicit },
			expectError: "requires cards",
		},
		{
			name:        "seed on fresh deal",
			modify:      func(c *DealConfig) { c.Seed = &seed },
			expectError: "seed is only allowed",
		},
		{
			name: "bad card notation",
			modify: func(c *DealConfig) {
				c.Order = OrderExplicit
				c.Cards = deckNotation(FreshDeck())
				c.Cards[10] = "ZZ"
			},
			expectError: "card 11",
		},
		{
			name: "short deck",
			modify: func(c *DealConfig) {
				c.Order = OrderExplicit
				c.Cards = deckNotation(FreshDeck())[:51]
			},
			expectError: "expected 52 cards",
		},
		{
			name: "duplicate card",
			modify: func(c *DealConfig) {
				c.Order = OrderExplicit
				c.Cards = deckNotation(FreshDeck())
				c.Cards[0] = c.Cards[1]
			},
			expectError: "duplicate card",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := createValidConfig()
			tt.modify(config)

			err := ValidateDealConfig(config)
			if tt.expectError == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.expectError)
			}
			if !strings.Contains(err.Error(), tt.expectError) {
				t.Errorf("expected error containing %q, got %q", tt.expectError, err.Error())
			}
		})
	}
}

func TestValidateDealConfigNil(t *testing.T) {
	if err := ValidateDealConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestDealConfigDeck(t *testing.T) {
	t.Run("fresh", func(t *testing.T) {
		deck, err := createValidConfig().Deck()
		if err != nil {
			t.Fatalf("Deck: %v", err)
		}
		if strings.Join(deckNotation(deck), " ") != strings.Join(deckNotation(FreshDeck()), " ") {
			t.Error("fresh preset should produce the fresh deck")
		}
	})

	t.Run("seeded", func(t *testing.T) {
		seed := uint64(77)
		config := &DealConfig{Name: "seeded", Order: OrderShuffled, Seed: &seed}
		a, err := config.Deck()
		if err != nil {
			t.Fatalf("Deck: %v", err)
		}
		b, _ := config.Deck()
		if strings.Join(deckNotation(a), " ") != strings.Join(deckNotation(b), " ") {
			t.Error("seeded preset should deal the same deck every time")
		}
	})

	t.Run("random", func(t *testing.T) {
		config := &DealConfig{Name: "random", Order: OrderShuffled}
		deck, err := config.Deck()
		if err != nil {
			t.Fatalf("Deck: %v", err)
		}
		if err := deck.Validate(); err != nil {
			t.Errorf("random deck invalid: %v", err)
		}
	})

	t.Run("explicit", func(t *testing.T) {
		cards := deckNotation(SeededDeck(9))
		config := &DealConfig{Name: "explicit", Order: OrderExplicit, Cards: cards}
		deck, err := config.Deck()
		if err != nil {
			t.Fatalf("Deck: %v", err)
		}
		top, _ := deck.Pop()
		if top.String() != cards[len(cards)-1] {
			t.Errorf("expected last listed card %s on top, got %s", cards[len(cards)-1], top)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		if _, err := (&DealConfig{Order: "weird"}).Deck(); err == nil {
			t.Error("expected error for unknown order")
		}
	})
}

func TestNewGameFromConfig(t *testing.T) {
	game, err := NewGameFromConfig(createValidConfig())
	if err != nil {
		t.Fatalf("NewGameFromConfig: %v", err)
	}
	current := game.Current()
	if current.CardCount() != DeckSize {
		t.Errorf("expected %d cards, got %d", DeckSize, current.CardCount())
	}

	if _, err := NewGameFromConfig(&DealConfig{Name: "bad", Order: "nope"}); err == nil {
		t.Error("expected validation error")
	}
}

func TestDefaultDealConfigs(t *testing.T) {
	configs := DefaultDealConfigs()
	if len(configs) != 2 {
		t.Fatalf("expected 2 default deals, got %d", len(configs))
	}
	for _, config := range configs {
		if err := ValidateDealConfig(config); err != nil {
			t.Errorf("default deal %q invalid: %v", config.Name, err)
		}
	}
}
