package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/vsinha/ropfeed/pkg/domain/entities"
	"github.com/vsinha/ropfeed/pkg/domain/repositories"
)

// CatalogItem is an item master record with its stock figures
type CatalogItem struct {
	Code         entities.ItemCode
	Ref          entities.ItemRef
	UnitCode     string
	CardType     string
	OnHand       decimal.Decimal
	OpenPO       decimal.Decimal
	ClientRef    entities.ClientRef
	BOMMasterRef entities.BOMRef
	BOMRevRef    entities.BOMRef
}

// Catalog provides in-memory catalog storage for one or more firms.
// Items are shared across firms and periods.
type Catalog struct {
	mu          sync.RWMutex
	firms       map[entities.FirmNo]bool
	items       []CatalogItem
	itemsByCode map[entities.ItemCode]int
	itemsByRef  map[entities.ItemRef]int
	lastFiche   map[string]int

	specialCodes      map[entities.ItemRef]string
	inventoryDefaults map[entities.ItemRef]entities.InventoryDefaults
	// updates lists every catalog write in order, e.g. "specode:101"
	updates []string
	// Err, when set, is returned by every read
	Err error
}

// NewCatalog creates a new in-memory catalog for the given firms
func NewCatalog(expectedItems int, firms ...entities.FirmNo) *Catalog {
	c := &Catalog{
		firms:             make(map[entities.FirmNo]bool, len(firms)),
		items:             make([]CatalogItem, 0, expectedItems),
		itemsByCode:       make(map[entities.ItemCode]int, expectedItems),
		itemsByRef:        make(map[entities.ItemRef]int, expectedItems),
		lastFiche:         make(map[string]int),
		specialCodes:      make(map[entities.ItemRef]string),
		inventoryDefaults: make(map[entities.ItemRef]entities.InventoryDefaults),
	}
	for _, firm := range firms {
		c.firms[firm] = true
	}
	return c
}

// Verify interface compliance
var _ repositories.Catalog = (*Catalog)(nil)

// AddItem adds an item to the catalog
func (c *Catalog) AddItem(item CatalogItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.itemsByCode[item.Code] = len(c.items)
	c.itemsByRef[item.Ref] = len(c.items)
	c.items = append(c.items, item)
}

// SetLastFicheNumber sets the last used demand fiche number of a firm period
func (c *Catalog) SetLastFicheNumber(firm entities.FirmNo, period entities.PeriodNo, last int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastFiche[ficheKey(firm, period)] = last
}

func ficheKey(firm entities.FirmNo, period entities.PeriodNo) string {
	return string(firm) + "/" + string(period)
}

// FirmExists reports whether the firm is registered
func (c *Catalog) FirmExists(_ context.Context, firm entities.FirmNo) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Err != nil {
		return false, c.Err
	}
	return c.firms[firm], nil
}

// NextFicheNumber returns the next zero-padded demand fiche number
func (c *Catalog) NextFicheNumber(_ context.Context, firm entities.FirmNo, period entities.PeriodNo) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return "", c.Err
	}
	key := ficheKey(firm, period)
	c.lastFiche[key]++
	return fmt.Sprintf("%08d", c.lastFiche[key]), nil
}

// ResolveItem returns the reference and unit code of an item, or a zero
// reference when the item is unknown
func (c *Catalog) ResolveItem(_ context.Context, _ entities.FirmNo, code entities.ItemCode) (entities.ItemRef, string, error) {
	item, err := c.byCode(code)
	if err != nil || item == nil {
		return 0, "", err
	}
	return item.Ref, item.UnitCode, nil
}

// CardType returns the card type code of an item
func (c *Catalog) CardType(_ context.Context, _ entities.FirmNo, code entities.ItemCode) (string, error) {
	item, err := c.byCode(code)
	if err != nil || item == nil {
		return "", err
	}
	return item.CardType, nil
}

// OnHandQuantity returns the on-hand stock of an item
func (c *Catalog) OnHandQuantity(_ context.Context, _ entities.FirmNo, _ entities.PeriodNo, ref entities.ItemRef) (decimal.Decimal, error) {
	item, err := c.byRef(ref)
	if err != nil || item == nil {
		return decimal.Zero, err
	}
	return item.OnHand, nil
}

// OpenPurchaseQuantity returns the quantity on open purchase orders
func (c *Catalog) OpenPurchaseQuantity(_ context.Context, _ entities.FirmNo, _ entities.PeriodNo, ref entities.ItemRef) (decimal.Decimal, error) {
	item, err := c.byRef(ref)
	if err != nil || item == nil {
		return decimal.Zero, err
	}
	return item.OpenPO, nil
}

// ClientRef returns the supplier client assigned to an item
func (c *Catalog) ClientRef(_ context.Context, _ entities.FirmNo, ref entities.ItemRef) (entities.ClientRef, error) {
	item, err := c.byRef(ref)
	if err != nil || item == nil {
		return 0, err
	}
	return item.ClientRef, nil
}

// BOMRefs returns the BOM master and revision of an item
func (c *Catalog) BOMRefs(_ context.Context, _ entities.FirmNo, ref entities.ItemRef) (entities.BOMRef, entities.BOMRef, error) {
	item, err := c.byRef(ref)
	if err != nil || item == nil {
		return 0, 0, err
	}
	return item.BOMMasterRef, item.BOMRevRef, nil
}

// UpdateSpecialCode records the special code of an item
func (c *Catalog) UpdateSpecialCode(_ context.Context, _ entities.FirmNo, ref entities.ItemRef, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.specialCodes[ref] = code
	c.updates = append(c.updates, fmt.Sprintf("specode:%d", ref))
	return nil
}

// UpdateInventoryDefaults records the inventory defaults of an item
func (c *Catalog) UpdateInventoryDefaults(_ context.Context, _ entities.FirmNo, defaults entities.InventoryDefaults) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inventoryDefaults[defaults.ItemRef] = defaults
	c.updates = append(c.updates, fmt.Sprintf("invdef:%d", defaults.ItemRef))
	return nil
}

// SpecialCode returns the last special code written for ref
func (c *Catalog) SpecialCode(ref entities.ItemRef) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	code, ok := c.specialCodes[ref]
	return code, ok
}

// InventoryDefaults returns the last inventory defaults written for ref
func (c *Catalog) InventoryDefaults(ref entities.ItemRef) (entities.InventoryDefaults, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	defaults, ok := c.inventoryDefaults[ref]
	return defaults, ok
}

// Updates returns every catalog write in order
func (c *Catalog) Updates() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.updates...)
}

func (c *Catalog) byCode(code entities.ItemCode) (*CatalogItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Err != nil {
		return nil, c.Err
	}
	index, ok := c.itemsByCode[code]
	if !ok {
		return nil, nil
	}
	item := c.items[index]
	return &item, nil
}

func (c *Catalog) byRef(ref entities.ItemRef) (*CatalogItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.Err != nil {
		return nil, c.Err
	}
	index, ok := c.itemsByRef[ref]
	if !ok {
		return nil, nil
	}
	item := c.items[index]
	return &item, nil
}
