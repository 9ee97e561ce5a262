// Package feeplan loads the brokerage's agent fee plan catalog.
package feeplan

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/SscSPs/brokerage_trade_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed plans.yaml
var defaultCatalogYAML string

type catalogFile struct {
	Default string     `yaml:"default"`
	Plans   []planFile `yaml:"plans"`
}

type planFile struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

// Catalog is an immutable set of fee plans keyed by code.
type Catalog struct {
	defaultCode string
	plans       map[string]domain.FeePlan
	order       []string
}

// Load parses a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode fee plan catalog: %w", err)
	}
	if len(file.Plans) == 0 {
		return nil, fmt.Errorf("fee plan catalog has no plans")
	}

	c := &Catalog{
		defaultCode: file.Default,
		plans:       make(map[string]domain.FeePlan, len(file.Plans)),
		order:       make([]string, 0, len(file.Plans)),
	}
	for _, p := range file.Plans {
		plan, err := p.toDomain()
		if err != nil {
			return nil, err
		}
		if _, dup := c.plans[plan.Code]; dup {
			return nil, fmt.Errorf("duplicate fee plan code %q", plan.Code)
		}
		c.plans[plan.Code] = plan
		c.order = append(c.order, plan.Code)
	}

	if c.defaultCode == "" {
		c.defaultCode = domain.DefaultFeePlanCode
	}
	if _, ok := c.plans[c.defaultCode]; !ok {
		return nil, fmt.Errorf("default fee plan %q is not in the catalog", c.defaultCode)
	}
	return c, nil
}

// LoadFile loads a catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fee plan catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the catalog built into the binary.
func Default() *Catalog {
	c, err := Load(strings.NewReader(defaultCatalogYAML))
	if err != nil {
		panic(fmt.Sprintf("feeplan: embedded catalog is invalid: %v", err))
	}
	return c
}

func (p planFile) toDomain() (domain.FeePlan, error) {
	code := strings.TrimSpace(p.Code)
	if code == "" {
		return domain.FeePlan{}, fmt.Errorf("fee plan with label %q has no code", p.Label)
	}

	plan := domain.FeePlan{Code: code, Label: p.Label, Kind: domain.FeePlanKind(strings.ToUpper(p.Kind)), Value: decimal.Zero}
	switch plan.Kind {
	case domain.FeePlanFlat, domain.FeePlanPercentage:
		v, err := decimal.NewFromString(strings.TrimSpace(p.Value))
		if err != nil {
			return domain.FeePlan{}, fmt.Errorf("fee plan %q has invalid value %q: %w", code, p.Value, err)
		}
		if v.IsNegative() {
			return domain.FeePlan{}, fmt.Errorf("fee plan %q has negative value", code)
		}
		if plan.Kind == domain.FeePlanPercentage && v.GreaterThan(decimal.NewFromInt(100)) {
			return domain.FeePlan{}, fmt.Errorf("fee plan %q percentage exceeds 100", code)
		}
		plan.Value = v
	case domain.FeePlanFlexible:
	default:
		return domain.FeePlan{}, fmt.Errorf("fee plan %q has unknown kind %q", code, p.Kind)
	}
	return plan, nil
}

// Lookup finds a plan by code. An empty code resolves to the default plan.
func (c *Catalog) Lookup(code string) (domain.FeePlan, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = c.defaultCode
	}
	p, ok := c.plans[code]
	return p, ok
}

// DefaultPlan is the plan applied when a split names none.
func (c *Catalog) DefaultPlan() domain.FeePlan {
	return c.plans[c.defaultCode]
}

// List returns plans in catalog order.
func (c *Catalog) List() []domain.FeePlan {
	out := make([]domain.FeePlan, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.plans[code])
	}
	return out
}

// Codes returns the plan codes sorted alphabetically.
func (c *Catalog) Codes() []string {
	codes := append([]string(nil), c.order...)
	sort.Strings(codes)
	return codes
}
