package curriculum

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.json
var defaultCatalog []byte

// catalogDocument is the top-level shape of a catalog file.
type catalogDocument struct {
	Trees []SkillTree `json:"trees"`
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// compiledCatalogSchema compiles the embedded catalog schema once.
func compiledCatalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(catalogSchema), &parsed); err != nil {
			schemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://catalog.json"
		if err := c.AddResource(url, parsed); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
	})
	return compiledSchema, schemaErr
}

// LoadCatalog parses, schema-validates, and registers a catalog document,
// returning the populated graph. Any defect is fatal: a schema violation,
// a dangling or cyclic prerequisite, or invalid lesson data.
func LoadCatalog(raw []byte) (*Graph, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	schema, err := compiledCatalogSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("catalog schema validation: %w", err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	g := NewGraph()
	for _, tree := range doc.Trees {
		if err := g.Register(tree); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// DefaultGraph loads the catalog embedded in the binary.
func DefaultGraph() (*Graph, error) {
	return LoadCatalog(defaultCatalog)
}
