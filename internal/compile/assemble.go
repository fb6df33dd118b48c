package compile

import "fmt"

// assemble lays out the module as one flat byte buffer. Every function is
// recorded as an unresolved location first so future cross-function
// references have an entry to resolve against; with no calls generated yet,
// only the entry function's bytes are materialized.
func (c *Compiler) assemble(mod *Module) (*Program, error) {
	c.locations = make(map[Label]*Location, len(mod.Funcs))
	for _, label := range mod.Order {
		c.locations[label] = &Location{Name: mod.Funcs[label].Name}
	}

	entry, ok := mod.Funcs[mod.Entry]
	if !ok {
		return nil, fmt.Errorf("compile: entry label %d missing from function table", mod.Entry)
	}

	code, effective, err := c.emitFunction(entry)
	if err != nil {
		return nil, err
	}
	return &Program{
		Entry: entry.Name,
		Kind:  entry.Return,
		Width: effective.width(),
		Code:  code,
	}, nil
}
