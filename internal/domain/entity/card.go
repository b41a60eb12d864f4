package entity

// CardRef points at one product card located on the storefront page. The
// orchestrator only carries it between session calls; the fields are filled
// and interpreted by the storefront implementation.
type CardRef struct {
	ProductID string
	Title     string
	Price     string
	AddTarget string
	Selected  bool
	SoldOut   bool
}

// Zero reports whether the ref points at nothing.
func (c CardRef) Zero() bool {
	return c.ProductID == "" && c.AddTarget == ""
}
