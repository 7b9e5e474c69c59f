// Package graphql exposes a read-only catalogue query surface alongside the
// REST API. The storefront uses it to fetch products with their option
// groups in one round trip and to price a variant without mutating state.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/lumicea/lumicea/app/models"
	"github.com/lumicea/lumicea/app/repositories"
	"github.com/lumicea/lumicea/app/services"
)

var optionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Option",
	Fields: graphql.Fields{
		"code":            &graphql.Field{Type: graphql.String},
		"name":            &graphql.Field{Type: graphql.String},
		"priceAdjustment": &graphql.Field{Type: graphql.Float},
		"detail":          &graphql.Field{Type: graphql.String},
		"diameterMm":      &graphql.Field{Type: graphql.Float},
		"soldOut":         &graphql.Field{Type: graphql.Boolean},
	},
})

var optionGroupType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OptionGroup",
	Fields: graphql.Fields{
		"code":     &graphql.Field{Type: graphql.String},
		"name":     &graphql.Field{Type: graphql.String},
		"required": &graphql.Field{Type: graphql.Boolean},
		"options":  &graphql.Field{Type: graphql.NewList(optionType)},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.Int},
		"name":         &graphql.Field{Type: graphql.String},
		"slug":         &graphql.Field{Type: graphql.String},
		"description":  &graphql.Field{Type: graphql.String},
		"basePrice":    &graphql.Field{Type: graphql.Float},
		"category":     &graphql.Field{Type: graphql.String},
		"imageUrl":     &graphql.Field{Type: graphql.String},
		"optionGroups": &graphql.Field{Type: graphql.NewList(optionGroupType)},
	},
})

var quoteType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Quote",
	Fields: graphql.Fields{
		"sku":       &graphql.Field{Type: graphql.String},
		"unitPrice": &graphql.Field{Type: graphql.Float},
		"lineTotal": &graphql.Field{Type: graphql.Float},
		"quantity":  &graphql.Field{Type: graphql.Int},
	},
})

var selectionInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "SelectionInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"group":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"option": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
	},
})

// NewSchema builds the catalogue query schema over the given repositories.
func NewSchema(products *repositories.ProductRepository, variants *services.VariantService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					category, _ := p.Args["category"].(string)
					out, _, err := products.Published(category, 1, 100)
					return productViews(out), err
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, err := products.FindBySlug(p.Args["slug"].(string))
					if err != nil {
						return nil, err
					}
					return productView(product), nil
				},
			},
			"quote": &graphql.Field{
				Type: quoteType,
				Args: graphql.FieldConfigArgument{
					"productId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"quantity":   &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"selections": &graphql.ArgumentConfig{Type: graphql.NewList(selectionInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					product, err := products.FindByID(uint(p.Args["productId"].(int)))
					if err != nil {
						return nil, err
					}

					selections := map[string]string{}
					if raw, ok := p.Args["selections"].([]interface{}); ok {
						for _, item := range raw {
							pair := item.(map[string]interface{})
							selections[pair["group"].(string)] = pair["option"].(string)
						}
					}

					sel, err := variants.Compose(product, selections, p.Args["quantity"].(int))
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{
						"sku":       variants.SKU(product, sel),
						"unitPrice": sel.UnitPrice,
						"lineTotal": sel.LineTotal,
						"quantity":  sel.Quantity,
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

// productView flattens a model into resolver-friendly keys.
func productView(p models.Product) map[string]interface{} {
	groups := make([]map[string]interface{}, 0, len(p.OptionGroups))
	for _, g := range p.OptionGroups {
		options := make([]map[string]interface{}, 0, len(g.Options))
		for _, o := range g.Options {
			options = append(options, map[string]interface{}{
				"code":            o.Code,
				"name":            o.Name,
				"priceAdjustment": o.PriceAdjustment,
				"detail":          o.Detail,
				"diameterMm":      o.DiameterMM,
				"soldOut":         o.SoldOut,
			})
		}
		groups = append(groups, map[string]interface{}{
			"code":     g.Code,
			"name":     g.Name,
			"required": g.Required,
			"options":  options,
		})
	}
	return map[string]interface{}{
		"id":           int(p.ID),
		"name":         p.Name,
		"slug":         p.Slug,
		"description":  p.Description,
		"basePrice":    p.BasePrice,
		"category":     p.Category,
		"imageUrl":     p.ImageURL,
		"optionGroups": groups,
	}
}

func productViews(products []models.Product) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		out = append(out, productView(p))
	}
	return out
}
