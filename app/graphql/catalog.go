// Package graphql defines the read-only catalog query root served on
// /graphql. It exposes the same reads as the REST surface so storefront
// clients can batch their queries.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/stamahmudtonmoy/agriculture-e-commerce-site/app/services"
)

var categoryType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Category",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.Int},
		"name": &graphql.Field{Type: graphql.String},
		"slug": &graphql.Field{Type: graphql.String},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"name":        &graphql.Field{Type: graphql.String},
		"slug":        &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"quantity":    &graphql.Field{Type: graphql.Int},
		"category":    &graphql.Field{Type: graphql.Int},
		"shipping":    &graphql.Field{Type: graphql.Boolean},
	},
})

// NewRootQuery builds the catalog query root over the service layer.
func NewRootQuery(catalog *services.CatalogService, categories *services.CategoryService) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"products": &graphql.Field{
				Type:        graphql.NewList(productType),
				Description: "One page of products, newest-first, 6 per page.",
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{
						Type:         graphql.Int,
						DefaultValue: 1,
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Args["page"].(int)
					return catalog.ListProducts(p.Context, page)
				},
			},
			"product": &graphql.Field{
				Type:        productType,
				Description: "A single product by slug.",
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.String),
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					slug, _ := p.Args["slug"].(string)
					return catalog.GetProduct(p.Context, slug)
				},
			},
			"search": &graphql.Field{
				Type:        graphql.NewList(productType),
				Description: "Products whose name or description contains the keyword.",
				Args: graphql.FieldConfigArgument{
					"keyword": &graphql.ArgumentConfig{
						Type:         graphql.String,
						DefaultValue: "",
					},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					keyword, _ := p.Args["keyword"].(string)
					return catalog.SearchProducts(p.Context, keyword)
				},
			},
			"categories": &graphql.Field{
				Type:        graphql.NewList(categoryType),
				Description: "All categories.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return categories.All(p.Context)
				},
			},
			"productCount": &graphql.Field{
				Type:        graphql.Int,
				Description: "Total number of products.",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.CountProducts(p.Context)
				},
			},
		},
	})
}
