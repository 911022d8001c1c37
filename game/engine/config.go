package engine

import (
	"fmt"
	"strings"
)

// DealOrder selects how a deal preset builds its deck
type DealOrder string

const (
	OrderFresh    DealOrder = "fresh"
	OrderShuffled DealOrder = "shuffled"
	OrderExplicit DealOrder = "explicit"
)

// DealConfig describes a deal preset loaded from a configuration file
type DealConfig struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Order       DealOrder `json:"order" yaml:"order"`
	// Seed makes a shuffled deal reproducible. Without it every deal differs.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	// Cards lists an explicit deck bottom first, in card notation ("AS", "TH").
	// The last card is dealt first.
	Cards []string `json:"cards,omitempty" yaml:"cards,omitempty"`
}

// DefaultDealConfigs returns the presets that exist without any files
func DefaultDealConfigs() []*DealConfig {
	return []*DealConfig{
		{
			Name:        "fresh",
			Description: "Unshuffled deck in new-box order",
			Order:       OrderFresh,
		},
		{
			Name:        "random",
			Description: "Freshly shuffled deck",
			Order:       OrderShuffled,
		},
	}
}

// ValidateDealConfig checks a deal preset for correctness
func ValidateDealConfig(config *DealConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if strings.TrimSpace(config.Name) == "" {
		return fmt.Errorf("config validation: name is required")
	}

	switch config.Order {
	case OrderFresh, OrderShuffled:
		if len(config.Cards) > 0 {
			return fmt.Errorf("config validation: cards are only allowed with order %q, got %q", OrderExplicit, config.Order)
		}
	case OrderExplicit:
		if len(config.Cards) == 0 {
			return fmt.Errorf("config validation: order %q requires cards", OrderExplicit)
		}
	default:
		return fmt.Errorf("config validation: order must be one of fresh, shuffled, explicit, got %q", config.Order)
	}

	if config.Seed != nil && config.Order != OrderShuffled {
		return fmt.Errorf("config validation: seed is only allowed with order %q", OrderShuffled)
	}

	if config.Order == OrderExplicit {
		cards, err := parseCards(config.Cards)
		if err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		if err := checkFullDeck(cards); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
	}

	return nil
}

// Deck builds the deck described by the preset
func (c *DealConfig) Deck() (*Deck, error) {
	switch c.Order {
	case OrderFresh:
		return FreshDeck(), nil
	case OrderShuffled:
		if c.Seed != nil {
			return SeededDeck(*c.Seed), nil
		}
		return ShuffledDeck(), nil
	case OrderExplicit:
		cards, err := parseCards(c.Cards)
		if err != nil {
			return nil, err
		}
		return NewDeck(cards), nil
	}
	return nil, fmt.Errorf("unknown deal order %q", c.Order)
}

// NewGameFromConfig validates config and deals a game from it
func NewGameFromConfig(config *DealConfig) (*Game, error) {
	if err := ValidateDealConfig(config); err != nil {
		return nil, err
	}
	deck, err := config.Deck()
	if err != nil {
		return nil, err
	}
	return DealGame(deck), nil
}

func parseCards(raw []string) ([]Card, error) {
	cards := make([]Card, 0, len(raw))
	for i, s := range raw {
		card, err := ParseCard(s)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		cards = append(cards, card)
	}
	return cards, nil
}
