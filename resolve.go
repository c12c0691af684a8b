package lingmatch

// Source is one named place an argument reference can resolve from. Sources
// are consulted in the order given; resolution is deterministic and fails
// with a NotFoundError when no source contains the reference.
type Source interface {
	Name() string
	Lookup(ref string) (any, bool)
}

type datasetSource struct {
	name string
	data Dataset
}

// DatasetSource exposes a Dataset's columns as a resolution source.
func DatasetSource(name string, d Dataset) Source {
	return &datasetSource{name: name, data: d}
}

func (s *datasetSource) Name() string { return s.name }

func (s *datasetSource) Lookup(ref string) (any, bool) {
	if s.data == nil {
		return nil, false
	}
	v, ok := s.data[ref]
	return v, ok
}

type literalSource struct {
	name   string
	values map[string]any
}

// LiteralSource exposes a fixed map of named values as a resolution source.
func LiteralSource(name string, values map[string]any) Source {
	return &literalSource{name: name, values: values}
}

func (s *literalSource) Name() string { return s.name }

func (s *literalSource) Lookup(ref string) (any, bool) {
	v, ok := s.values[ref]
	return v, ok
}

// resolveRef walks the source chain for a reference and returns the first
// hit plus the name of the source that supplied it.
func resolveRef(ref string, sources ...Source) (any, string, error) {
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(ref); ok {
			return v, src.Name(), nil
		}
		names = append(names, src.Name())
	}
	return nil, "", &NotFoundError{Ref: ref, Sources: names}
}
