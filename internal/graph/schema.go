// Package graph wires the catalog resolvers and the checkout transaction
// into an executable GraphQL schema and serves it over HTTP.
package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/merchkit/catalog/internal/checkout"
	"github.com/merchkit/catalog/internal/resolve"
)

// BuildSchema constructs the executable schema over the given resolver and
// checkout service. Entity fields resolve from the map shapes the resolvers
// produce; only root fields carry explicit resolve functions.
func BuildSchema(resolver *resolve.Resolver, orders *checkout.Service) (graphql.Schema, error) {
	categoryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	currencyType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Currency",
		Fields: graphql.Fields{
			"label":  &graphql.Field{Type: graphql.String},
			"symbol": &graphql.Field{Type: graphql.String},
		},
	})

	priceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Price",
		Fields: graphql.Fields{
			"amount":   &graphql.Field{Type: graphql.Float},
			"currency": &graphql.Field{Type: currencyType},
		},
	})

	attributeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Attribute",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"displayValue": &graphql.Field{Type: graphql.String},
			"value":        &graphql.Field{Type: graphql.String},
		},
	})

	attributeSetType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AttributeSet",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.String},
			"name":  &graphql.Field{Type: graphql.String},
			"type":  &graphql.Field{Type: graphql.String},
			"items": &graphql.Field{Type: graphql.NewList(attributeType)},
		},
	})

	productType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Product",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":         &graphql.Field{Type: graphql.String},
			"inStock":      &graphql.Field{Type: graphql.Boolean},
			"gallery":      &graphql.Field{Type: graphql.NewList(graphql.String)},
			"description":  &graphql.Field{Type: graphql.String},
			"category":     &graphql.Field{Type: graphql.String},
			"attributes":   &graphql.Field{Type: graphql.NewList(attributeSetType)},
			"prices":       &graphql.Field{Type: graphql.NewList(priceType)},
			"brand":        &graphql.Field{Type: graphql.String},
			"productType":  &graphql.Field{Type: graphql.String},
			"warrantyInfo": &graphql.Field{Type: graphql.String},
		},
	})

	orderItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderItem",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.Int},
			"productId":          &graphql.Field{Type: graphql.String},
			"quantity":           &graphql.Field{Type: graphql.Int},
			"unitPrice":          &graphql.Field{Type: graphql.Float},
			"selectedAttributes": &graphql.Field{Type: graphql.String},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.Int},
			"reference":     &graphql.Field{Type: graphql.String},
			"customerEmail": &graphql.Field{Type: graphql.String},
			"customerName":  &graphql.Field{Type: graphql.String},
			"totalAmount":   &graphql.Field{Type: graphql.Float},
			"status":        &graphql.Field{Type: graphql.String},
			"items":         &graphql.Field{Type: graphql.NewList(orderItemType)},
			"createdAt":     &graphql.Field{Type: graphql.String},
			"updatedAt":     &graphql.Field{Type: graphql.String},
		},
	})

	createOrderResponseType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderResponse",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"order":   &graphql.Field{Type: orderType},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	orderItemInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"productId":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"quantity":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"selectedAttributes": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	createOrderInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateOrderInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"customerEmail": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"customerName":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"items":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(orderItemInputType))},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type:        graphql.NewList(categoryType),
				Description: "Get all categories",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return resolver.Categories(p.Context), nil
				},
			},
			"category": &graphql.Field{
				Type:        categoryType,
				Description: "Get a category by ID or name",
				Args: graphql.FieldConfigArgument{
					"id":   &graphql.ArgumentConfig{Type: graphql.Int},
					"name": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, err := resolver.Category(p.Context, intArg(p, "id"), stringArg(p, "name"))
					if err != nil {
						return nil, err
					}
					if result == nil {
						return nil, nil
					}
					return result, nil
				},
			},
			"products": &graphql.Field{
				Type:        graphql.NewList(productType),
				Description: "Get products with optional filtering",
				Args: graphql.FieldConfigArgument{
					"categoryId":   &graphql.ArgumentConfig{Type: graphql.Int},
					"categoryName": &graphql.ArgumentConfig{Type: graphql.String},
					"inStock":      &graphql.ArgumentConfig{Type: graphql.Boolean},
					"brand":        &graphql.ArgumentConfig{Type: graphql.String},
					"sortBy":       &graphql.ArgumentConfig{Type: graphql.String},
					"sortOrder":    &graphql.ArgumentConfig{Type: graphql.String},
					"limit":        &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := resolve.ProductFilter{
						CategoryID:   intArg(p, "categoryId"),
						CategoryName: stringArg(p, "categoryName"),
						InStock:      boolArg(p, "inStock"),
						Brand:        stringArg(p, "brand"),
					}
					if sortBy := stringArg(p, "sortBy"); sortBy != nil {
						filter.SortBy = *sortBy
					}
					if sortOrder := stringArg(p, "sortOrder"); sortOrder != nil {
						filter.SortOrder = *sortOrder
					}
					if limit := intArg(p, "limit"); limit != nil {
						filter.Limit = *limit
					}
					return resolver.Products(p.Context, filter)
				},
			},
			"product": &graphql.Field{
				Type:        productType,
				Description: "Get a product by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					result, err := resolver.Product(p.Context, id)
					if err != nil {
						return nil, err
					}
					if result == nil {
						return nil, nil
					}
					return result, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createOrder": &graphql.Field{
				Type:        createOrderResponseType,
				Description: "Create a new order",
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createOrderInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, err := decodeOrderInput(p.Args["input"])
					if err != nil {
						return map[string]any{
							"success": false,
							"order":   nil,
							"message": err.Error(),
						}, nil
					}
					result := orders.PlaceOrder(p.Context, input)
					return map[string]any{
						"success": result.Success,
						"order":   result.Order,
						"message": result.Message,
					}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func decodeOrderInput(arg interface{}) (checkout.Input, error) {
	raw, ok := arg.(map[string]interface{})
	if !ok {
		return checkout.Input{}, fmt.Errorf("invalid createOrder input")
	}

	var input checkout.Input
	if email, ok := raw["customerEmail"].(string); ok {
		input.CustomerEmail = email
	}
	if name, ok := raw["customerName"].(string); ok {
		input.CustomerName = name
	}

	items, _ := raw["items"].([]interface{})
	for _, entry := range items {
		line, ok := entry.(map[string]interface{})
		if !ok {
			return checkout.Input{}, fmt.Errorf("invalid order item input")
		}
		var li checkout.LineInput
		if id, ok := line["productId"].(string); ok {
			li.ProductID = id
		}
		if qty, ok := line["quantity"].(int); ok {
			li.Quantity = qty
		}
		if selected, ok := line["selectedAttributes"].(string); ok {
			li.SelectedAttributes = selected
		}
		input.Items = append(input.Items, li)
	}
	return input, nil
}

func intArg(p graphql.ResolveParams, name string) *int {
	if value, ok := p.Args[name].(int); ok {
		return &value
	}
	return nil
}

func stringArg(p graphql.ResolveParams, name string) *string {
	if value, ok := p.Args[name].(string); ok {
		return &value
	}
	return nil
}

func boolArg(p graphql.ResolveParams, name string) *bool {
	if value, ok := p.Args[name].(bool); ok {
		return &value
	}
	return nil
}
