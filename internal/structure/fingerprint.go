// Package structure implements the structural core: fingerprinting one JSON
// value into a path-indexed descriptor map, and diffing two fingerprints
// field by field.
package structure

import (
	"github.com/routerlab/conformance-go/internal/domain"
)

// Fingerprint walks a decoded JSON value and records a descriptor for every
// path reachable by repeated key / first-index traversal from the root.
// Sequences are sampled at index 0 only; later elements are deliberately not
// inspected, so heterogeneous arrays under-report divergence past index 0.
// Any well-formed decoded JSON value is accepted; there is no error path.
func Fingerprint(v any) domain.Fingerprint {
	fp := make(domain.Fingerprint)
	walk(v, "", fp)
	return fp
}

func walk(v any, path string, fp domain.Fingerprint) {
	switch val := v.(type) {
	case map[string]any:
		for key, child := range val {
			childPath := joinKey(path, key)
			switch domain.KindOf(child) {
			case domain.KindMapping:
				fp[childPath] = domain.FieldDescriptor{Path: childPath, Kind: domain.KindMapping}
				walk(child, childPath, fp)
			case domain.KindSequence:
				// The sequence branch records its own descriptor, with length.
				walk(child, childPath, fp)
			default:
				fp[childPath] = scalarDescriptor(childPath, child)
			}
		}
	case []any:
		if len(val) > 0 {
			walk(val[0], path+"[0]", fp)
		}
		fp[path] = domain.FieldDescriptor{
			Path:   path,
			Kind:   domain.KindSequence,
			Length: len(val),
		}
	default:
		// Scalar at the root or at a sampled element position.
		fp[path] = scalarDescriptor(path, val)
	}
}

func scalarDescriptor(path string, v any) domain.FieldDescriptor {
	return domain.FieldDescriptor{
		Path:       path,
		Kind:       domain.KindOf(v),
		Literal:    v,
		HasLiteral: true,
	}
}

func joinKey(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
