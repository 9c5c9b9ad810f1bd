package api

// Policy controls how two fragments are merged. The zero value is the default deep merge policy
// where conflicting scalars are coalesced into sequences.
type Policy struct {
	// Overwrite makes the extension win every top-level conflict. No recursion takes place and no
	// sequences are created. Overwrite takes precedence over Shallow.
	Overwrite bool

	// Shallow requests a flat merge. The result is the same as with Overwrite.
	Shallow bool

	// NoCreateArray makes the extension win a conflict between two values that are neither
	// sequences nor both mappings, instead of combining them into a two element sequence.
	NoCreateArray bool
}

// CreateArray returns true unless NoCreateArray is set
func (p Policy) CreateArray() bool {
	return !p.NoCreateArray
}

// IsFlat returns true when either Overwrite or Shallow is set
func (p Policy) IsFlat() bool {
	return p.Overwrite || p.Shallow
}

// NewPolicy creates a Policy from an options map. The recognized keys are OptionOverwrite,
// OptionShallow, and OptionCreateArray. All values must be booleans. An error is returned for
// unknown keys and for values of other types.
func NewPolicy(options map[string]interface{}) (Policy, error) {
	p := Policy{}
	for k, v := range options {
		var err error
		switch k {
		case OptionOverwrite:
			p.Overwrite, err = BoolOption(k, v)
		case OptionShallow:
			p.Shallow, err = BoolOption(k, v)
		case OptionCreateArray:
			var b bool
			b, err = BoolOption(k, v)
			p.NoCreateArray = !b
		default:
			err = UnknownOption(k)
		}
		if err != nil {
			return Policy{}, err
		}
	}
	return p, nil
}

// BoolOption returns the value of a boolean option or an error wrapping ErrBadOption
func BoolOption(name string, v interface{}) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return false, BadOption(name, v)
}

// Options returns the options map that NewPolicy would turn into this policy. Only options
// that differ from the default are included.
func (p Policy) Options() map[string]interface{} {
	m := make(map[string]interface{}, 3)
	if p.Overwrite {
		m[OptionOverwrite] = true
	}
	if p.Shallow {
		m[OptionShallow] = true
	}
	if p.NoCreateArray {
		m[OptionCreateArray] = false
	}
	return m
}
