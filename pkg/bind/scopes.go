package bind

import "vslc.dev/compiler/pkg/sym"

// scopeStack is the runtime lexical-scope structure used during pass 2: a
// stack of name->symbol frames, one per active block, searched innermost to
// outermost. Grounded on pkg/jack/scopes.go's ScopeTable/Scope design,
// collapsed from Jack's four independent scope stacks (local/field/
// parameter/static) down to VSL's single block-scope stack, since VSL's
// parameters are resolved through the function's own LocalTable; only
// block-declared locals are registered in these frames, and they are not
// findable by name anywhere else.
type scopeStack struct {
	frames []map[string]*sym.Symbol
}

func newScopeStack() *scopeStack {
	return &scopeStack{}
}

// push enters a new block scope.
func (s *scopeStack) push() {
	s.frames = append(s.frames, map[string]*sym.Symbol{})
}

// pop leaves the innermost block scope.
func (s *scopeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// register binds name to sym in the current (innermost) scope.
func (s *scopeStack) register(symbol *sym.Symbol) {
	s.frames[len(s.frames)-1][symbol.Name] = symbol
}

// resolve searches innermost to outermost, returning the first match.
func (s *scopeStack) resolve(name string) (*sym.Symbol, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if symbol, ok := s.frames[i][name]; ok {
			return symbol, true
		}
	}
	return nil, false
}
