// Package config loads plan catalogs from YAML files and validates them
// before they reach the rating engine.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tbecker/insurate/internal/domain"
)

// CatalogParser handles parsing of plan catalog files
type CatalogParser struct{}

// NewCatalogParser creates a new catalog parser
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

// LoadFromFile loads a catalog from a YAML file
func (cp *CatalogParser) LoadFromFile(filename string) (*domain.Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var catalog domain.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cp.ValidateCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	return &catalog, nil
}

// ValidateCatalog validates the loaded catalog
func (cp *CatalogParser) ValidateCatalog(catalog *domain.Catalog) error {
	if len(catalog.Products) == 0 {
		return fmt.Errorf("no products provided")
	}

	productIDs := make(map[string]bool)
	planIDs := make(map[string]bool)

	for i := range catalog.Products {
		product := &catalog.Products[i]
		if product.ID == "" {
			return fmt.Errorf("product %d: id is required", i)
		}
		if productIDs[product.ID] {
			return fmt.Errorf("duplicate product id %s", product.ID)
		}
		productIDs[product.ID] = true

		if len(product.Plans) == 0 {
			return fmt.Errorf("product %s: at least one plan is required", product.ID)
		}

		for j := range product.Plans {
			plan := &product.Plans[j]
			if err := cp.validatePlan(product, plan); err != nil {
				return fmt.Errorf("product %s plan %d (%s) validation failed: %w",
					product.ID, j, plan.ID, err)
			}
			if planIDs[plan.ID] {
				return fmt.Errorf("duplicate plan id %s", plan.ID)
			}
			planIDs[plan.ID] = true
		}
	}

	return nil
}

// validatePlan checks a single plan's configuration and its link to the
// parent product
func (cp *CatalogParser) validatePlan(product *domain.Product, plan *domain.Plan) error {
	if plan.ProductID == "" {
		plan.ProductID = product.ID
	}
	if plan.ProductID != product.ID {
		return fmt.Errorf("plan references product %s but belongs to %s", plan.ProductID, product.ID)
	}
	return plan.Validate()
}
