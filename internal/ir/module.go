package ir

// ModuleKind classifies the deployable artifact a module compiles to.
type ModuleKind int

const (
	ModuleKindContract ModuleKind = iota
	ModuleKindLibrary
	ModuleKindPredicate
	ModuleKindScript
)

func (k ModuleKind) String() string {
	switch k {
	case ModuleKindContract:
		return "contract"
	case ModuleKindLibrary:
		return "library"
	case ModuleKindPredicate:
		return "predicate"
	case ModuleKindScript:
		return "script"
	}
	return "?"
}

// Module is a handle to a collection of functions in a context.
type Module struct {
	idx arenaIndex
}

type moduleContent struct {
	kind      ModuleKind
	functions []Function
}

// NewModule creates an empty module of the given kind.
func NewModule(c *Context, kind ModuleKind) Module {
	return Module{idx: c.modules.insert(moduleContent{kind: kind})}
}

// Kind returns the module's kind.
func (m Module) Kind(c *Context) ModuleKind {
	return c.modules.get(m.idx).kind
}

// Functions returns the module's functions in creation order.
func (m Module) Functions(c *Context) []Function {
	return append([]Function{}, c.modules.get(m.idx).functions...)
}

// FunctionNamed returns the module's function with the given name.
// Scripts and predicates locate their entry point this way.
func (m Module) FunctionNamed(c *Context, name string) (Function, bool) {
	for _, fn := range c.modules.get(m.idx).functions {
		if fn.Name(c) == name {
			return fn, true
		}
	}
	return Function{}, false
}
