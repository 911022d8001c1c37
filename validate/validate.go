// Command validate checks the deal preset files in the ../configs directory.
// It checks:
//   - JSON or YAML structure
//   - Required fields and a known order (fresh, shuffled, explicit)
//   - That explicit decks hold all 52 cards exactly once
//   - That the name matches the file name
//   - That the dealt board conserves every card and is not already won
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wricardo/freecell/game/config"
	"github.com/wricardo/freecell/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateDeal loads and validates a single preset file.
func validateDeal(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	deal, err := config.DecodeDeal(filePath, data)
	if err != nil {
		result.fail("Invalid %s: %v", formatName(filePath), err)
		return result
	}

	if err := engine.ValidateDealConfig(deal); err != nil {
		result.fail("%v", err)
		return result
	}

	base := strings.TrimSuffix(result.File, filepath.Ext(result.File))
	if deal.Name != base {
		result.fail("name %q does not match file name %q", deal.Name, base)
	}

	board := validateBoard(deal)
	result.Errors = append(result.Errors, board.Errors...)
	if !board.Valid {
		result.Valid = false
	}

	if result.Valid {
		result.info("Name: %s", deal.Name)
		result.info("Order: %s", deal.Order)
		if deal.Seed != nil {
			result.info("Seed: %d", *deal.Seed)
		}
	}

	return result
}

// validateBoard deals the preset and checks the resulting tableau.
func validateBoard(deal *engine.DealConfig) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}}

	game, err := engine.NewGameFromConfig(deal)
	if err != nil {
		result.fail("Cannot deal: %v", err)
		return result
	}

	tab := game.Initial()
	if err := tab.Validate(); err != nil {
		result.fail("Dealt board is inconsistent: %v", err)
		return result
	}
	if tab.IsWon() {
		result.fail("Dealt board is already won")
		return result
	}

	result.info("Board: %d cards on %d cascades", tab.CardCount(), engine.NumCascades)
	return result
}

func formatName(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "YAML"
	default:
		return "JSON"
	}
}

// dealFiles lists the preset files in dir, sorted by name.
func dealFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && config.HasDealExtension(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// main scans ../configs for preset files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	dealDir := "../configs"
	if len(os.Args) > 1 {
		dealDir = os.Args[1]
	}

	files, err := dealFiles(dealDir)
	if err != nil {
		fmt.Printf("Error finding deal files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateDeal(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All deals are valid!")
	} else {
		fmt.Println("❌ Some deals have errors")
		os.Exit(1)
	}
}
