package nacha

// Registry maps a one-character type code to the record kind it introduces.
type Registry struct {
	kinds map[string]Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]Kind)}
}

// Register maps code to kind. Panics on duplicate code.
func (r *Registry) Register(code string, kind Kind) {
	if _, ok := r.kinds[code]; ok {
		panic("duplicate record type code: " + code)
	}
	r.kinds[code] = kind
}

// Lookup returns the kind registered for code.
func (r *Registry) Lookup(code string) (Kind, bool) {
	k, ok := r.kinds[code]
	return k, ok
}

// DefaultRegistry returns the NACHA record type codes.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("1", KindFileHeader)
	r.Register("5", KindBatchHeader)
	r.Register("6", KindEntryDetail)
	r.Register("7", KindEntryAddendum)
	r.Register("8", KindBatchControl)
	r.Register("9", KindFileControl)
	return r
}

var defaultRegistry = DefaultRegistry()
