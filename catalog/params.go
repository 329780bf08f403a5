package catalog

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/katalvlaran/algotrace/trace"
)

// validate is shared by every params struct; validator caches struct
// metadata per type.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decode overlays in onto out. Strings are weakly converted so values from
// "--set k=v" flags work: "3,1,2" becomes []int{3, 1, 2} and "true" a bool.
// A supplied slice replaces the default slice instead of merging into it.
func decode(in map[string]any, out any) error {
	if len(in) == 0 {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		ZeroFields:       true,
		Result:           out,
	})
	if err != nil {
		return errors.NewAssertionErrorWithWrappedErrf(err, "catalog: decoder for %T", out)
	}

	return dec.Decode(in)
}

// define builds an Entry from a params type P, its defaults and an engine run.
// Decoding, validation and engine input errors all wrap ErrInvalidParams
// alongside their own cause.
func define[P any, S any](name, family, summary string, defaults func() P, run func(P) (trace.Trace[S], error)) Entry {
	return Entry{
		Name:     name,
		Family:   family,
		Summary:  summary,
		Defaults: defaults(),
		Generate: func(params map[string]any) (trace.Trace[any], error) {
			p := defaults()
			if err := decode(params, &p); err != nil {
				return trace.Trace[any]{}, invalid(name, err)
			}
			if err := validate.Struct(p); err != nil {
				return trace.Trace[any]{}, invalid(name, err)
			}
			tr, err := run(p)
			if err != nil {
				return trace.Trace[any]{}, invalid(name, err)
			}

			return trace.Erase(tr), nil
		},
	}
}

func invalid(name string, err error) error {
	return fmt.Errorf("%s: %w: %w", name, ErrInvalidParams, err)
}
