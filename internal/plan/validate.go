package plan

import (
	"errors"

	"clonegen/internal/analyze"
	"clonegen/internal/diagnostic"
)

// validate checks every owned field against the clonability rules and returns
// the fields that passed. Every failing rule is reported as an error; the
// caller skips the whole type when any error was reported.
func (r *Resolver) validate(fields []ClassifiedField, is *issues) []OwnedField {
	var owned []OwnedField

	for _, cf := range fields {
		if cf.Kind != analyze.KindOwned {
			continue
		}

		if of, ok := r.validateOwned(cf.Field, is); ok {
			owned = append(owned, of)
		}
	}

	return owned
}

func (r *Resolver) validateOwned(f *analyze.FieldDescriptor, is *issues) (OwnedField, bool) {
	ok := true

	if !f.Mutable {
		ok = false

		reason := "it is not exported from the package that declares its struct"
		if f.Name == "_" {
			reason = "blank fields cannot be assigned"
		}

		is.fieldIssue(f, diagnostic.SeverityError, CodeReadOnlyOwned, nil,
			"owned field of %s cannot be reassigned by generated code: %s", is.desc.ID.Name, reason)
	}

	if f.Embedded {
		is.fieldIssue(f, diagnostic.SeverityError, CodeNonTrivialOwned,
			[]string{"give the field a name, or drop the marker to make it a base"},
			"owned field must be a plain data holder: embedded fields promote their methods into %s",
			is.desc.ID.Name)

		return OwnedField{}, false
	}

	if kind, isBehaviour := behaviour(f.Type); isBehaviour {
		is.fieldIssue(f, diagnostic.SeverityError, CodeNonTrivialOwned, nil,
			"owned field must be a plain data holder, not a %s", kind)

		return OwnedField{}, false
	}

	strategy, nilable, err := r.capability(f.Type, is.stringer)
	if err != nil {
		var suggestions []string
		if errors.Is(err, errNoCapability) {
			suggestions = []string{
				"implement Clone() on the field type",
				"or mark the type with " + analyze.DirectivePrefix,
			}
		}

		is.fieldIssue(f, diagnostic.SeverityError, CodeUncloneableOwned, suggestions,
			"type %s of owned field cannot be cloned: %v", is.stringer.TypeString(f.Type), err)

		return OwnedField{}, false
	}

	return OwnedField{
		Field:    f,
		Strategy: strategy,
		Nilable:  nilable,
	}, ok
}
