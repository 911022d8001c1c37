package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/freecell/game/engine"
)

func TestAnalyzeFreshDeal(t *testing.T) {
	report := analyzeDeal(&engine.DealConfig{Name: "fresh", Order: engine.OrderFresh})

	if report.Err != nil {
		t.Fatalf("unexpected error: %v", report.Err)
	}

	want := [engine.NumCascades]int{7, 7, 7, 7, 6, 6, 6, 6}
	if report.CascadeLengths != want {
		t.Errorf("Expected cascade lengths %v, got %v", want, report.CascadeLengths)
	}
	if report.Cards != 52 {
		t.Errorf("Expected 52 cards, got %d", report.Cards)
	}
	if report.Won {
		t.Error("A fresh deal should not be won")
	}
	// Only cascade 4 shows an Ace (AS)
	if report.ToFoundation != 1 {
		t.Errorf("Expected 1 source playable to a foundation, got %d", report.ToFoundation)
	}
	if report.ToCell != engine.NumCascades {
		t.Errorf("Expected every cascade to reach a cell, got %d", report.ToCell)
	}
	// Every top card is a spade, so no cascade accepts another
	if report.ToCascade != 0 {
		t.Errorf("Expected no cascade moves, got %d", report.ToCascade)
	}
	if report.Capacity != 5 {
		t.Errorf("Expected capacity 5, got %d", report.Capacity)
	}
	if !report.Reproducible() {
		t.Error("A fresh deal is reproducible")
	}
}

func TestAnalyzeInvalidDeal(t *testing.T) {
	report := analyzeDeal(&engine.DealConfig{Name: "broken", Order: engine.OrderExplicit, Cards: []string{"AS"}})

	if report.Err == nil {
		t.Fatal("Expected an error for a one-card explicit deck")
	}

	var out bytes.Buffer
	printReport(&out, report)
	if !strings.Contains(out.String(), "Cannot deal broken") {
		t.Errorf("Expected a deal error in the output, got %q", out.String())
	}
}

func TestReproducible(t *testing.T) {
	seed := uint64(3)
	tests := []struct {
		name   string
		report Report
		want   bool
	}{
		{name: "fresh", report: Report{Order: engine.OrderFresh}, want: true},
		{name: "seeded shuffle", report: Report{Order: engine.OrderShuffled, Seeded: seed > 0}, want: true},
		{name: "unseeded shuffle", report: Report{Order: engine.OrderShuffled}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.Reproducible(); got != tt.want {
				t.Errorf("Reproducible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunWithDirectory(t *testing.T) {
	dir := t.TempDir()
	preset := "name: daily\ndescription: Seeded\norder: shuffled\nseed: 7\n"
	if err := os.WriteFile(filepath.Join(dir, "daily.yaml"), []byte(preset), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run(&out, dir, []string{"daily", "fresh", "missing"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	output := out.String()
	for _, want := range []string{
		"=== Analyzing daily ===",
		"Order: shuffled",
		"=== Analyzing fresh ===",
		"Supermove capacity: 5",
		"=== Analyzing missing ===",
		"Error loading deal",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q\n%s", want, output)
		}
	}
}

func TestRunBuiltinsOnly(t *testing.T) {
	var out bytes.Buffer
	if err := run(&out, filepath.Join(t.TempDir(), "nowhere"), nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	output := out.String()
	if !strings.Contains(output, "built-in deals only") {
		t.Errorf("Expected a fallback notice, got %q", output)
	}
	if !strings.Contains(output, "=== Analyzing fresh ===") || !strings.Contains(output, "=== Analyzing random ===") {
		t.Errorf("Expected both built-in deals to be analyzed:\n%s", output)
	}
	if !strings.Contains(output, "Unseeded shuffle") {
		t.Errorf("Expected the random deal to be flagged as unseeded:\n%s", output)
	}
}
