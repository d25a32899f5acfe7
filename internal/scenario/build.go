package scenario

import (
	"fmt"
	"log/slog"

	"github.com/talgya/market-sim/internal/economy"
	"github.com/talgya/market-sim/internal/engine"
	"github.com/talgya/market-sim/internal/firms"
)

// Rejection is a firm left out of a built market.
type Rejection struct {
	Name string
	Err  error
}

func (r Rejection) Error() string {
	return fmt.Sprintf("firm %q: %v", r.Name, r.Err)
}

// Build creates the market described by the document. Firms whose parameters
// fail to resolve or construct are logged and skipped; the market is built
// from the rest.
func (d *Document) Build() (*engine.Market, []Rejection) {
	m := engine.New(d.Market, economy.NewDemand(d.Demand))

	var rejected []Rejection
	for _, spec := range d.Firms {
		f, err := d.buildFirm(spec)
		if err == nil {
			err = m.AddFirm(f)
		}
		if err != nil {
			slog.Error("error creating firm", "firm", spec.Name, "error", err)
			rejected = append(rejected, Rejection{Name: spec.Name, Err: err})
			continue
		}
		slog.Debug("firm added",
			"firm", f.Name,
			"strategy", f.Strategy,
			"capital", f.Capital,
			"capacity", f.Production.Capacity,
		)
	}
	return m, rejected
}

func (d *Document) buildFirm(spec FirmSpec) (*firms.Firm, error) {
	p, err := d.ResolveParams(spec)
	if err != nil {
		return nil, err
	}
	return firms.New(spec.Name, p)
}
