package domain

// Product groups the plans offered under one insurance product. The product
// type (life, medical, ...) is carried as an opaque attribute; it never
// changes how a premium is calculated.
type Product struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Plans       []Plan `yaml:"plans" json:"plans"`
}

// ActivePlans returns the product's plans that are open for sale
func (p *Product) ActivePlans() []Plan {
	active := make([]Plan, 0, len(p.Plans))
	for _, plan := range p.Plans {
		if plan.IsActive {
			active = append(active, plan)
		}
	}
	return active
}

// Catalog is the full set of products handed to the engine by the caller
type Catalog struct {
	Products []Product `yaml:"products" json:"products"`
}

// FindProduct looks up a product by id
func (c *Catalog) FindProduct(id string) (*Product, bool) {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i], true
		}
	}
	return nil, false
}

// FindPlan looks up a plan by id across all products
func (c *Catalog) FindPlan(id string) (*Plan, bool) {
	for i := range c.Products {
		for j := range c.Products[i].Plans {
			if c.Products[i].Plans[j].ID == id {
				return &c.Products[i].Plans[j], true
			}
		}
	}
	return nil, false
}

// Plans returns every plan in the catalog
func (c *Catalog) Plans() []Plan {
	var all []Plan
	for i := range c.Products {
		all = append(all, c.Products[i].Plans...)
	}
	return all
}
