// Package scenario loads a self-contained catalog, parameter history and
// planning batch from YAML, for dry runs and demos.
package scenario

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/infrastructure/repositories/memory"
	"gopkg.in/yaml.v3"
)

// Scenario is the YAML document
type Scenario struct {
	Firm       string      `yaml:"firm"`
	Period     string      `yaml:"period"`
	LastFiche  int         `yaml:"last_fiche"`
	Items      []Item      `yaml:"items"`
	Parameters []Parameter `yaml:"parameters"`
	Batch      []BatchItem `yaml:"batch"`
}

// Item is a catalog entry
type Item struct {
	Code         string  `yaml:"code"`
	Ref          int64   `yaml:"ref"`
	Unit         string  `yaml:"unit"`
	CardType     string  `yaml:"card_type"`
	OnHand       float64 `yaml:"on_hand"`
	OpenPO       float64 `yaml:"open_po"`
	ClientRef    int64   `yaml:"client_ref"`
	BOMMasterRef int64   `yaml:"bom_master_ref"`
	BOMRevRef    int64   `yaml:"bom_rev_ref"`
}

// Parameter is a previously stored parameter record
type Parameter struct {
	Item           string  `yaml:"item"`
	Classification string  `yaml:"classification"`
	PlanningType   string  `yaml:"planning_type"`
	SafetyStock    float64 `yaml:"safety_stock"`
	ROP            float64 `yaml:"rop"`
	Max            float64 `yaml:"max"`
	OrderQuantity  float64 `yaml:"order_quantity"`
}

// BatchItem is one planning batch entry. Omitted keys stay absent.
type BatchItem struct {
	Item           string   `yaml:"item"`
	Classification *string  `yaml:"classification"`
	PlanningType   *string  `yaml:"planning_type"`
	SafetyStock    *float64 `yaml:"safety_stock"`
	ROP            *float64 `yaml:"rop"`
	Max            *float64 `yaml:"max"`
	OrderQuantity  *float64 `yaml:"order_quantity"`
}

// Load reads a scenario file
func Load(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario %s: %w", filename, err)
	}
	return Parse(data)
}

// Parse decodes and checks a scenario document
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if s.Firm == "" {
		return nil, fmt.Errorf("scenario firm cannot be empty")
	}
	if s.Period == "" {
		s.Period = "01"
	}

	seen := make(map[string]bool, len(s.Items))
	for i, item := range s.Items {
		if item.Code == "" || item.Ref <= 0 {
			return nil, fmt.Errorf("scenario item %d needs a code and a positive ref", i+1)
		}
		if seen[item.Code] {
			return nil, fmt.Errorf("duplicate scenario item %s", item.Code)
		}
		seen[item.Code] = true
	}
	return &s, nil
}

// FirmNo returns the scenario firm
func (s *Scenario) FirmNo() entities.FirmNo { return entities.FirmNo(s.Firm) }

// PeriodNo returns the scenario period
func (s *Scenario) PeriodNo() entities.PeriodNo { return entities.PeriodNo(s.Period) }

// BuildCatalog returns an in-memory catalog holding the scenario items
func (s *Scenario) BuildCatalog() *memory.Catalog {
	catalog := memory.NewCatalog(len(s.Items), s.FirmNo())
	catalog.SetLastFicheNumber(s.FirmNo(), s.PeriodNo(), s.LastFiche)
	for _, item := range s.Items {
		catalog.AddItem(memory.CatalogItem{
			Code:         entities.ItemCode(item.Code),
			Ref:          entities.ItemRef(item.Ref),
			UnitCode:     item.Unit,
			CardType:     item.CardType,
			OnHand:       decimal.NewFromFloat(item.OnHand),
			OpenPO:       decimal.NewFromFloat(item.OpenPO),
			ClientRef:    entities.ClientRef(item.ClientRef),
			BOMMasterRef: entities.BOMRef(item.BOMMasterRef),
			BOMRevRef:    entities.BOMRef(item.BOMRevRef),
		})
	}
	return catalog
}

// BuildParameterStore returns an in-memory store seeded with the scenario parameters
func (s *Scenario) BuildParameterStore() *memory.ParameterStore {
	store := memory.NewParameterStore()
	for _, p := range s.Parameters {
		store.Seed(entities.ItemParameter{
			FirmNo:         s.FirmNo(),
			ItemCode:       entities.ItemCode(p.Item),
			Classification: optional(p.Classification),
			PlanType:       optional(p.PlanningType),
			SafetyStock:    decimal.NewFromFloat(p.SafetyStock),
			ReorderPoint:   decimal.NewFromFloat(p.ROP),
			Max:            decimal.NewFromFloat(p.Max),
			OrderQuantity:  decimal.NewFromFloat(p.OrderQuantity),
		})
	}
	return store
}

// RawItems returns the scenario batch
func (s *Scenario) RawItems() []entities.RawItem {
	items := make([]entities.RawItem, 0, len(s.Batch))
	for _, b := range s.Batch {
		items = append(items, entities.RawItem{
			ItemCode:       entities.ItemCode(b.Item),
			Classification: b.Classification,
			PlanType:       b.PlanningType,
			SafetyStock:    quantity(b.SafetyStock),
			ReorderPoint:   quantity(b.ROP),
			Max:            quantity(b.Max),
			OrderQuantity:  quantity(b.OrderQuantity),
		})
	}
	return items
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func quantity(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
