package economy

// InventoryParams is the configuration bundle for a firm's warehouse.
// SpoilageRate, MinStockLevel and StorageCostFactor are accepted for
// forward compatibility and are currently inert.
type InventoryParams struct {
	HoldingCost       float64 `mapstructure:"holding_cost" yaml:"holding_cost" json:"holding_cost" validate:"min=0"`
	MaxCapacity       float64 `mapstructure:"max_capacity" yaml:"max_capacity" json:"max_capacity" validate:"gt=0"`
	SpoilageRate      float64 `mapstructure:"spoilage_rate" yaml:"spoilage_rate" json:"spoilage_rate" validate:"min=0,max=1"`
	MinStockLevel     float64 `mapstructure:"min_stock_level" yaml:"min_stock_level" json:"min_stock_level" validate:"min=0"`
	StorageCostFactor float64 `mapstructure:"storage_cost_factor" yaml:"storage_cost_factor" json:"storage_cost_factor" validate:"min=0"`
}

// Inventory holds finished goods. Stock always stays within [0, MaxCapacity].
type Inventory struct {
	HoldingCost       float64 `json:"holding_cost"` // Per unit left after sales
	MaxCapacity       float64 `json:"max_capacity"`
	SpoilageRate      float64 `json:"spoilage_rate"`
	MinStockLevel     float64 `json:"min_stock_level"`
	StorageCostFactor float64 `json:"storage_cost_factor"`

	stock float64
}

// NewInventory creates an empty inventory from its parameter bundle.
func NewInventory(p InventoryParams) *Inventory {
	return &Inventory{
		HoldingCost:       p.HoldingCost,
		MaxCapacity:       p.MaxCapacity,
		SpoilageRate:      p.SpoilageRate,
		MinStockLevel:     p.MinStockLevel,
		StorageCostFactor: p.StorageCostFactor,
	}
}

// Stock returns the quantity currently held.
func (inv *Inventory) Stock() float64 {
	return inv.stock
}

// AvailableSpace returns how much more the inventory can take.
func (inv *Inventory) AvailableSpace() float64 {
	return inv.MaxCapacity - inv.stock
}

// AddStock stores quantity units. Anything beyond MaxCapacity is discarded.
func (inv *Inventory) AddStock(quantity float64) {
	if quantity < 0 {
		quantity = 0
	}
	inv.stock = min(inv.stock+quantity, inv.MaxCapacity)
}

// RemoveStock takes quantity units out. Removing more than is held empties it.
func (inv *Inventory) RemoveStock(quantity float64) {
	if quantity < 0 {
		quantity = 0
	}
	inv.stock = max(0, inv.stock-quantity)
}
