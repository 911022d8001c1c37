// Command analyze prints quick, human-readable heuristics about the deal
// presets in a directory. For every preset it deals the board and reports
// the cascade shape, how many sources have a legal first move, whether an
// Ace is immediately playable and the supermove capacity of the deal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/freecell/game/config"
	"github.com/wricardo/freecell/game/engine"
)

// Report summarizes one dealt preset
type Report struct {
	Name           string
	Order          engine.DealOrder
	Seeded         bool
	CascadeLengths [engine.NumCascades]int
	Cards          int
	Won            bool
	// Sources that can reach a foundation, a free cell or another cascade
	ToFoundation int
	ToCell       int
	ToCascade    int
	Capacity     int
	Err          error
}

// Reproducible reports whether dealing the preset twice gives the same board
func (r Report) Reproducible() bool {
	return r.Order != engine.OrderShuffled || r.Seeded
}

func main() {
	cmd := &cli.Command{
		Name:      "analyze",
		Usage:     "Summarize FreeCell deal presets",
		ArgsUsage: "[deal names...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "configs",
				Usage:   "Directory containing deal presets",
				Sources: cli.EnvVars("DEALS_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(os.Stdout, cmd.String("dir"), cmd.Args().Slice())
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run analyzes the named presets, or every preset when names is empty.
func run(out io.Writer, dir string, names []string) error {
	if _, err := os.Stat(dir); err != nil {
		fmt.Fprintf(out, "Deal directory %s not found, analyzing built-in deals only\n", dir)
		dir = ""
	}
	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		infos, err := manager.ListDeals()
		if err != nil {
			return err
		}
		for _, info := range infos {
			names = append(names, info.DealID)
		}
	}

	for _, name := range names {
		fmt.Fprintf(out, "\n=== Analyzing %s ===\n", name)
		deal, err := manager.LoadDeal(name)
		if err != nil {
			fmt.Fprintf(out, "Error loading deal: %v\n", err)
			continue
		}
		printReport(out, analyzeDeal(deal))
	}
	return nil
}

// analyzeDeal deals the preset once and inspects the opening position.
func analyzeDeal(deal *engine.DealConfig) Report {
	report := Report{
		Name:   deal.Name,
		Order:  deal.Order,
		Seeded: deal.Seed != nil,
	}

	game, err := engine.NewGameFromConfig(deal)
	if err != nil {
		report.Err = err
		return report
	}

	tab := game.Current()
	for i := range tab.Cascades {
		report.CascadeLengths[i] = tab.Cascades[i].Len()
	}
	report.Cards = tab.CardCount()
	report.Won = tab.IsWon()
	report.Capacity = (tab.EmptyCells() + 1) * (tab.EmptyCascades() + 1)

	for i := 0; i < engine.NumCascades; i++ {
		from := engine.CascadeAt(i)
		if anyLegal(&tab, from, foundations()) {
			report.ToFoundation++
		}
		if anyLegal(&tab, from, cells()) {
			report.ToCell++
		}
		for j := 0; j < engine.NumCascades; j++ {
			if j != i && legal(&tab, engine.Move{From: from, To: engine.CascadeAt(j)}) {
				report.ToCascade++
				break
			}
		}
	}

	return report
}

func foundations() []engine.Coordinate {
	out := make([]engine.Coordinate, engine.NumFoundations)
	for i := range out {
		out[i] = engine.FoundationAt(i)
	}
	return out
}

func cells() []engine.Coordinate {
	out := make([]engine.Coordinate, engine.NumCells)
	for i := range out {
		out[i] = engine.CellAt(i)
	}
	return out
}

func anyLegal(tab *engine.Tableau, from engine.Coordinate, targets []engine.Coordinate) bool {
	for _, to := range targets {
		if legal(tab, engine.Move{From: from, To: to}) {
			return true
		}
	}
	return false
}

// legal tries m on a copy of tab
func legal(tab *engine.Tableau, m engine.Move) bool {
	scratch := tab.Clone()
	return scratch.Apply(m) == nil
}

func printReport(out io.Writer, r Report) {
	if r.Err != nil {
		fmt.Fprintf(out, "⚠️  Cannot deal %s: %v\n", r.Name, r.Err)
		return
	}

	lengths := make([]string, len(r.CascadeLengths))
	for i, n := range r.CascadeLengths {
		lengths[i] = fmt.Sprint(n)
	}

	fmt.Fprintf(out, "Name: %s\n", r.Name)
	fmt.Fprintf(out, "Order: %s\n", r.Order)
	fmt.Fprintf(out, "Cascades: %s (%d cards)\n", strings.Join(lengths, " "), r.Cards)
	fmt.Fprintf(out, "Supermove capacity: %d\n", r.Capacity)
	fmt.Fprintf(out, "Opening moves: %d to foundation, %d to cell, %d to cascade\n", r.ToFoundation, r.ToCell, r.ToCascade)

	if !r.Reproducible() {
		fmt.Fprintf(out, "ℹ️  Unseeded shuffle: every deal differs, figures describe one sample\n")
	}
	if r.Won {
		fmt.Fprintf(out, "⚠️  WARNING: the deal is already won\n")
	}
	if r.ToFoundation == 0 && r.ToCascade == 0 {
		fmt.Fprintf(out, "⚠️  No Ace and no cascade move available; the first moves must use free cells\n")
	} else {
		fmt.Fprintf(out, "✅ Playable opening\n")
	}
}
