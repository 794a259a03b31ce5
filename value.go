package viewjson

// Kind discriminates the Value union.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value pair of an object. Objects keep members in
// encounter order; duplicate keys are permitted and preserved (last-one-wins
// is applied at serialization time, not here).
type Member struct {
	Key   string
	Value Value
}

// Value is the document model: a tagged union over the JSON value kinds.
// Number holds the decimal-preserving source text of the number.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  string
	Str     string
	Items   []Value
	Members []Member
}

// Null returns the null value.
func Null() Value { return Value{Kind: KindNull} }

// Boolean wraps b as a Value.
func Boolean(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// NumberText wraps the verbatim number text as a Value.
func NumberText(text string) Value { return Value{Kind: KindNumber, Number: text} }

// String wraps s as a Value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Array wraps items as a Value.
func Array(items ...Value) Value { return Value{Kind: KindArray, Items: items} }

// Object wraps members as a Value.
func Object(members ...Member) Value { return Value{Kind: KindObject, Members: members} }

// Get returns the value of the last member with the given key, honoring the
// last-one-wins duplicate policy.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	for i := len(v.Members) - 1; i >= 0; i-- {
		if v.Members[i].Key == key {
			return v.Members[i].Value, true
		}
	}
	return Value{}, false
}

// Len returns the element count for arrays and the member count for objects,
// zero otherwise.
func (v Value) Len() int {
	switch v.Kind {
	case KindArray:
		return len(v.Items)
	case KindObject:
		return len(v.Members)
	default:
		return 0
	}
}
