package export

import (
	"github.com/c360studio/cxrdf/cx"
)

// handler exports every entry of one aspect fragment.
type handler func(s *session, a cx.Aspect) error

// dispatcher routes aspect fragments, in document order, to the handler for
// their kind. Aspects without a handler go to fallback.
type dispatcher struct {
	handlers map[cx.AspectKind]handler
	fallback handler
}

func (d dispatcher) dispatch(s *session, doc cx.Document) error {
	for _, a := range doc.Aspects() {
		h, ok := d.handlers[a.Kind()]
		if !ok {
			h = d.fallback
		}
		if err := h(s, a); err != nil {
			return err
		}
	}
	return nil
}

// eachEntry calls fn for every entry and tags returned errors with the
// aspect name and entry position.
func eachEntry(a cx.Aspect, fn func(e cx.Entry) error) error {
	for i, e := range a.Entries {
		if err := fn(e); err != nil {
			return cx.InAspect(err, a.Name, i)
		}
	}
	return nil
}

// reject is the fallback of strict policies.
func reject(_ *session, a cx.Aspect) error {
	return &cx.UnknownAspectError{Name: a.Name, Known: a.Kind().Known()}
}

// degrade is the fallback of lenient policies: the aspect is exported with
// the structural shape and the fallback is logged.
func degrade(s *session, a cx.Aspect) error {
	kind := a.Kind()
	s.opts.logger.Warn("Unhandled aspect exported structurally",
		"policy", s.policy,
		"aspect", a.Name,
		"known", kind.Known(),
		"entries", len(a.Entries))
	s.opts.metrics.RecordFallback(kind.String())
	return structural(s, a)
}
