package graphql

import (
	"github.com/graphql-go/graphql"
)

// Argument extraction helpers. graphql-go has already coerced the values
// against the schema types, so the assertions here only guard against
// absent optional arguments.

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func intArg(p graphql.ResolveParams, name string) int {
	v, _ := p.Args[name].(int)
	return v
}

func objectArg(p graphql.ResolveParams, name string) map[string]interface{} {
	v, _ := p.Args[name].(map[string]interface{})
	return v
}

func stringField(m map[string]interface{}, name string) string {
	v, _ := m[name].(string)
	return v
}

func floatField(m map[string]interface{}, name string) float64 {
	v, _ := m[name].(float64)
	return v
}

func optStringField(m map[string]interface{}, name string) *string {
	if v, ok := m[name].(string); ok {
		return &v
	}
	return nil
}

func optFloatField(m map[string]interface{}, name string) *float64 {
	if v, ok := m[name].(float64); ok {
		return &v
	}
	return nil
}
