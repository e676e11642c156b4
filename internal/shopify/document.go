package shopify

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// connectionArguments must be declared by every paginated document
var connectionArguments = []string{"first", "after", "last", "before"}

// Document is a parsed, named GraphQL operation
type Document struct {
	Name      string // operation name, used in logs and errors
	Query     string
	Root      string // response key of the first top-level field
	Paginated bool
}

// ParseDocument checks query syntax and reads the operation name and root
// field. Paginated documents must declare $first, $after, $last and $before.
func ParseDocument(query string, paginated bool) (Document, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "document", Input: query})
	if err != nil {
		return Document{}, fmt.Errorf("parse graphql document: %w", err)
	}
	if len(doc.Operations) != 1 {
		return Document{}, fmt.Errorf("graphql document must contain exactly one operation, got %d", len(doc.Operations))
	}

	op := doc.Operations[0]
	if op.Name == "" {
		return Document{}, fmt.Errorf("graphql operation must be named")
	}
	if len(op.SelectionSet) == 0 {
		return Document{}, fmt.Errorf("graphql operation %s selects nothing", op.Name)
	}
	field, ok := op.SelectionSet[0].(*ast.Field)
	if !ok {
		return Document{}, fmt.Errorf("graphql operation %s must start with a field selection", op.Name)
	}

	if paginated {
		declared := make(map[string]bool, len(op.VariableDefinitions))
		for _, v := range op.VariableDefinitions {
			declared[v.Variable] = true
		}
		for _, name := range connectionArguments {
			if !declared[name] {
				return Document{}, fmt.Errorf("paginated operation %s does not declare $%s", op.Name, name)
			}
		}
	}

	return Document{
		Name:      op.Name,
		Query:     query,
		Root:      field.Alias,
		Paginated: paginated,
	}, nil
}

// MustParseDocument is ParseDocument for package-level documents
func MustParseDocument(query string, paginated bool) Document {
	doc, err := ParseDocument(query, paginated)
	if err != nil {
		panic(err)
	}
	return doc
}
