package enumparam

import (
	"context"
	"github.com/gburgyan/go-enumparam/internal/ctxlog"
	"reflect"
)

// Association pairs a wrapper type with the parameter type presenting it.
type Association struct {
	Param   *ParamType
	Wrapper *Type
}

// Discover maps every native enumeration wrapped in m to its wrapper and
// parameter types. A declared parameter type targeting the wrapper is used
// when there is one; otherwise the template is synthesized. Abstract or
// unresolvable entries are skipped. Discover never fails.
func Discover(ctx context.Context, m *Module) map[reflect.Type]Association {
	found := discover(ctx, m)
	result := make(map[reflect.Type]Association, len(found))
	for _, a := range found {
		result[a.Wrapper.native] = a
	}
	return result
}

// discover returns the associations in declaration order, one per native
// enumeration.
func discover(ctx context.Context, m *Module) []Association {
	logger := ctxlog.FromContext(ctx).With("module", m.name)

	var params []*ParamType
	for _, e := range m.entries {
		if e.newParam != nil {
			params = append(params, newParamType(e.newParam, false))
		}
	}

	var result []Association
	seen := map[reflect.Type]bool{}
	for _, e := range m.entries {
		if e.newParam != nil {
			continue
		}
		wt, err := TypeFor(e.typ)
		if err != nil {
			logger.Debug("Skipping type that is not an enumeration wrapper.", "type", e.typ.String())
			continue
		}

		var candidates []*ParamType
		for _, p := range params {
			if p.target == wt.goType {
				candidates = append(candidates, p)
			}
		}
		pt, ok := firstMatch(candidates)
		if !ok {
			pt, err = m.Synthesize(e.typ)
			if err != nil {
				logger.Debug("Skipping wrapper without a parameter type.", "type", e.typ.String(), "error", err)
				continue
			}
		}
		if len(candidates) > 1 {
			logger.Debug("Several parameter types target one wrapper; using the first.", "type", e.typ.String(), "param", pt.String())
		}

		if seen[wt.native] {
			logger.Debug("Native enumeration already wrapped; keeping the first wrapper.", "native", wt.native.String(), "type", e.typ.String())
			continue
		}
		seen[wt.native] = true
		logger.Debug("Discovered enumeration wrapper.", "type", e.typ.String(), "param", pt.String(), "synthesized", pt.synthesized)
		result = append(result, Association{Param: pt, Wrapper: wt})
	}
	return result
}

// firstMatch is the policy resolving several candidates for one slot: the
// first in declaration order wins.
func firstMatch[T any](candidates []T) (T, bool) {
	if len(candidates) == 0 {
		var zero T
		return zero, false
	}
	return candidates[0], true
}
