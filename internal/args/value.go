package args

import (
	"sort"
	"strconv"
)

// OptionalString is the payload of a KindOptionalString option. A record
// without the key is the absent state; HasValue distinguishes a bare flag
// from one given a value, including the empty string.
type OptionalString struct {
	Value    string
	HasValue bool
}

// Value holds one option value. Only the field matching Kind is meaningful.
type Value struct {
	Kind     Kind
	Bool     bool
	Str      string
	List     []string
	Optional OptionalString
	Number   int
}

// String renders the value the way it is written after "--key=".
func (v Value) String() string {
	switch v.Kind {
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	case KindString, KindEnum:
		return v.Str
	case KindNumber:
		return strconv.Itoa(v.Number)
	case KindOptionalString:
		return v.Optional.Value
	default:
		return ""
	}
}

// BoolValue builds a KindBoolean value.
func BoolValue(b bool) Value { return Value{Kind: KindBoolean, Bool: b} }

// StringValue builds a KindString value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// EnumValue builds a KindEnum value.
func EnumValue(s string) Value { return Value{Kind: KindEnum, Str: s} }

// NumberValue builds a KindNumber value.
func NumberValue(n int) Value { return Value{Kind: KindNumber, Number: n} }

// ListValue builds a KindStringList value holding a copy of items.
func ListValue(items ...string) Value {
	return Value{Kind: KindStringList, List: append([]string(nil), items...)}
}

// OptionalValue builds a KindOptionalString value with a payload.
func OptionalValue(s string) Value {
	return Value{Kind: KindOptionalString, Optional: OptionalString{Value: s, HasValue: true}}
}

// BareOptionalValue builds a KindOptionalString value without a payload.
func BareOptionalValue() Value {
	return Value{Kind: KindOptionalString}
}

// Args is a parsed configuration record: typed option values keyed by
// option name plus the positional arguments in order.
type Args struct {
	values     map[string]Value
	Positional []string
}

// New returns an empty record.
func New() *Args {
	return &Args{values: make(map[string]Value)}
}

// Has reports whether the option is set.
func (a *Args) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Get returns the raw value of an option.
func (a *Args) Get(name string) (Value, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Bool returns a boolean option; unset reads as false.
func (a *Args) Bool(name string) bool {
	return a.values[name].Bool
}

// Str returns a string or enum option.
func (a *Args) Str(name string) (string, bool) {
	v, ok := a.values[name]
	if !ok {
		return "", false
	}
	return v.Str, true
}

// Strings returns a list option. The slice is a copy.
func (a *Args) Strings(name string) []string {
	v, ok := a.values[name]
	if !ok {
		return nil
	}
	return append([]string(nil), v.List...)
}

// Optional returns an optional-string option.
func (a *Args) Optional(name string) (OptionalString, bool) {
	v, ok := a.values[name]
	if !ok {
		return OptionalString{}, false
	}
	return v.Optional, true
}

// Number returns a numeric option.
func (a *Args) Number(name string) (int, bool) {
	v, ok := a.values[name]
	if !ok {
		return 0, false
	}
	return v.Number, true
}

// Keys returns the names of all set options, sorted.
func (a *Args) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of set options, not counting positionals.
func (a *Args) Len() int {
	return len(a.values)
}

// Clone returns a copy that shares no mutable state with a.
func (a *Args) Clone() *Args {
	c := &Args{
		values:     make(map[string]Value, len(a.values)),
		Positional: append([]string(nil), a.Positional...),
	}
	for k, v := range a.values {
		if v.List != nil {
			v.List = append([]string(nil), v.List...)
		}
		c.values[k] = v
	}
	return c
}

// With returns a copy of a with the option set to v.
func (a *Args) With(name string, v Value) *Args {
	c := a.Clone()
	c.values[name] = v
	return c
}

// Without returns a copy of a with the option removed.
func (a *Args) Without(name string) *Args {
	c := a.Clone()
	delete(c.values, name)
	return c
}

// Set stores v in place. Callers must own the record.
func (a *Args) Set(name string, v Value) {
	a.values[name] = v
}

// Delete removes an option in place. Callers must own the record.
func (a *Args) Delete(name string) {
	delete(a.values, name)
}

// Merge returns a new record holding base's values with override's values
// replacing them key by key. Positionals come from override when it has
// any, otherwise from base.
func Merge(base, override *Args) *Args {
	out := base.Clone()
	for k, v := range override.Clone().values {
		out.values[k] = v
	}
	if len(override.Positional) > 0 {
		out.Positional = append([]string(nil), override.Positional...)
	}
	return out
}

// Argv serializes the record back into tokens that Parse accepts.
// Unset booleans and false booleans are omitted. Positionals follow a "--".
func (a *Args) Argv() []string {
	var out []string
	for _, k := range a.Keys() {
		v := a.values[k]
		switch v.Kind {
		case KindBoolean:
			if v.Bool {
				out = append(out, "--"+k)
			}
		case KindStringList:
			for _, item := range v.List {
				out = append(out, "--"+k+"="+item)
			}
		case KindOptionalString:
			if v.Optional.HasValue {
				out = append(out, "--"+k+"="+v.Optional.Value)
			} else {
				out = append(out, "--"+k)
			}
		default:
			out = append(out, "--"+k+"="+v.String())
		}
	}
	if len(a.Positional) > 0 {
		out = append(out, "--")
		out = append(out, a.Positional...)
	}
	return out
}

// LogFields flattens the record for structured logging.
func (a *Args) LogFields() map[string]interface{} {
	fields := make(map[string]interface{}, len(a.values)+1)
	for k, v := range a.values {
		switch v.Kind {
		case KindBoolean:
			fields[k] = v.Bool
		case KindNumber:
			fields[k] = v.Number
		case KindStringList:
			fields[k] = append([]string(nil), v.List...)
		case KindOptionalString:
			if v.Optional.HasValue {
				fields[k] = v.Optional.Value
			} else {
				fields[k] = true
			}
		default:
			fields[k] = v.Str
		}
	}
	fields["_"] = append([]string(nil), a.Positional...)
	return fields
}
