package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/freecell/game/engine"
	"github.com/wricardo/freecell/game/service"
)

var (
	ErrDealNotFound = service.ErrDealNotFound
	ErrInvalidDeal  = errors.New("invalid deal")
)

// Extensions recognised in the deals directory, in lookup order
var dealExtensions = []string{".json", ".yaml", ".yml"}

// DefaultDealName is used when a session is created without naming a deal
const DefaultDealName = "random"

// Manager handles deal preset loading and caching. Built-in presets are
// always available; files in the deals directory add to or override them.
type Manager struct {
	dealDir     string
	defaultDeal *engine.DealConfig
	builtins    map[string]*engine.DealConfig
	deals       map[string]*engine.DealConfig
	mu          sync.RWMutex
}

// NewManager creates a new deal manager. An empty dealDir serves only the
// built-in presets.
func NewManager(dealDir string) (*Manager, error) {
	if dealDir != "" {
		info, err := os.Stat(dealDir)
		if err != nil {
			return nil, fmt.Errorf("deal directory does not exist: %s", dealDir)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("deal path is not a directory: %s", dealDir)
		}
	}

	m := &Manager{
		dealDir:  dealDir,
		builtins: make(map[string]*engine.DealConfig),
		deals:    make(map[string]*engine.DealConfig),
	}
	for _, deal := range engine.DefaultDealConfigs() {
		m.builtins[deal.Name] = deal
	}

	if err := m.loadDefaultDeal(); err != nil {
		return nil, fmt.Errorf("failed to load default deal: %w", err)
	}

	return m, nil
}

// LoadDeal loads a deal preset by name
func (m *Manager) LoadDeal(name string) (*engine.DealConfig, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return m.GetDefault(), nil
	}

	m.mu.RLock()
	if deal, exists := m.deals[name]; exists {
		m.mu.RUnlock()
		return deal, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if deal, exists := m.deals[name]; exists {
		return deal, nil
	}

	deal, err := m.readDealFile(name)
	if errors.Is(err, ErrDealNotFound) {
		if builtin, ok := m.builtins[stripExtension(name)]; ok {
			return builtin, nil
		}
	}
	if err != nil {
		return nil, err
	}

	m.deals[name] = deal
	return deal, nil
}

// readDealFile reads and validates name from the deals directory
func (m *Manager) readDealFile(name string) (*engine.DealConfig, error) {
	if m.dealDir == "" {
		return nil, ErrDealNotFound
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: %q", ErrDealNotFound, name)
	}

	candidates := []string{name}
	if !HasDealExtension(name) {
		candidates = candidates[:0]
		for _, ext := range dealExtensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, filename := range candidates {
		path := filepath.Join(m.dealDir, filename)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read deal file: %w", err)
		}

		deal, err := DecodeDeal(filename, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse deal %s: %w", filename, err)
		}
		if err := engine.ValidateDealConfig(deal); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDeal, err)
		}
		return deal, nil
	}

	return nil, ErrDealNotFound
}

// ListDeals returns information about all available deal presets
func (m *Manager) ListDeals() ([]*service.DealInfo, error) {
	seen := make(map[string]bool)
	var deals []*service.DealInfo

	if m.dealDir != "" {
		entries, err := os.ReadDir(m.dealDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read deal directory: %w", err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !HasDealExtension(entry.Name()) {
				continue
			}

			id := stripExtension(entry.Name())
			if seen[id] {
				continue
			}

			deal, err := m.LoadDeal(id)
			if err != nil {
				// Skip invalid deals
				continue
			}

			seen[id] = true
			deals = append(deals, newDealInfo(entry.Name(), id, deal))
		}
	}

	for name, deal := range m.builtins {
		if seen[name] {
			continue
		}
		deals = append(deals, newDealInfo("", name, deal))
	}

	sort.Slice(deals, func(i, j int) bool { return deals[i].DealID < deals[j].DealID })
	return deals, nil
}

func newDealInfo(filename, id string, deal *engine.DealConfig) *service.DealInfo {
	return &service.DealInfo{
		Filename:    filename,
		DealID:      id,
		Name:        deal.Name,
		Description: deal.Description,
		Order:       string(deal.Order),
		Seeded:      deal.Seed != nil,
		Builtin:     filename == "",
	}
}

// GetDefault returns the default deal preset
func (m *Manager) GetDefault() *engine.DealConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultDeal
}

// SetDefault sets the default deal preset by name
func (m *Manager) SetDefault(name string) error {
	deal, err := m.LoadDeal(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultDeal = deal
	return nil
}

// RefreshCache drops every cached deal so files are read again
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.deals = make(map[string]*engine.DealConfig)
	m.mu.Unlock()

	return m.loadDefaultDeal()
}

// loadDefaultDeal picks the default preset: a "default" file when one exists,
// otherwise the built-in random deal
func (m *Manager) loadDefaultDeal() error {
	deal, err := m.LoadDeal("default")
	if err != nil {
		if !errors.Is(err, ErrDealNotFound) {
			return err
		}
		deal = m.builtins[DefaultDealName]
	}

	m.mu.Lock()
	m.defaultDeal = deal
	m.mu.Unlock()
	return nil
}

// SaveDeal writes a deal preset to disk. The extension of name picks the
// format; names without one are written as JSON.
func (m *Manager) SaveDeal(name string, deal *engine.DealConfig) error {
	if err := engine.ValidateDealConfig(deal); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDeal, err)
	}
	if m.dealDir == "" {
		return fmt.Errorf("no deal directory configured")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: bad file name %q", ErrInvalidDeal, name)
	}

	filename := name
	if !HasDealExtension(filename) {
		filename = name + ".json"
	}

	data, err := encodeDeal(filename, deal)
	if err != nil {
		return fmt.Errorf("failed to marshal deal: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.dealDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write deal file: %w", err)
	}

	m.mu.Lock()
	m.deals[stripExtension(name)] = deal
	m.deals[filename] = deal
	m.mu.Unlock()

	return nil
}

// DecodeDeal parses a preset file body. The extension of filename picks
// YAML or JSON. The result is not validated.
func DecodeDeal(filename string, data []byte) (*engine.DealConfig, error) {
	var deal engine.DealConfig
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &deal); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &deal); err != nil {
			return nil, err
		}
	}
	return &deal, nil
}

func encodeDeal(filename string, deal *engine.DealConfig) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return yaml.Marshal(deal)
	default:
		return json.MarshalIndent(deal, "", "  ")
	}
}

// HasDealExtension reports whether name ends in a preset file extension
func HasDealExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range dealExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

func stripExtension(name string) string {
	if HasDealExtension(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}
