package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Field names an entity attribute tracked in a change set.
type Field string

// Project fields.
const (
	FieldName        Field = "Name"
	FieldDescription Field = "Description"
	FieldStatus      Field = "Status"
	FieldVisibility  Field = "Visibility"
	FieldIsArchived  Field = "IsArchived"
	FieldOwnerID     Field = "OwnerId"
)

// Membership fields.
const (
	FieldUserID Field = "UserId"
	FieldRole   Field = "Role"
)

// Column fields.
const (
	FieldOrder    Field = "Order"
	FieldWipLimit Field = "WipLimit"
)

// Task fields.
const (
	FieldTitle      Field = "Title"
	FieldPriority   Field = "Priority"
	FieldDueDate    Field = "DueDate"
	FieldPosition   Field = "Position"
	FieldColumnID   Field = "ColumnId"
	FieldAssigneeID Field = "AssigneeId"
	FieldBoardID    Field = "BoardId"
)

// Comment fields.
const (
	FieldContent   Field = "Content"
	FieldIsDeleted Field = "IsDeleted"
)

// ValueKind tags the payload held by a Value.
type ValueKind string

const (
	ValueNull   ValueKind = "null"
	ValueString ValueKind = "string"
	ValueInt    ValueKind = "int"
	ValueBool   ValueKind = "bool"
	ValueTime   ValueKind = "time"
)

// Value is a tagged field value. The tag survives a JSON round trip so an
// integer never comes back as a float and a timestamp never comes back as a
// plain string.
type Value struct {
	kind ValueKind
	str  string
	num  int64
	flag bool
	at   time.Time
}

func NullValue() Value { return Value{kind: ValueNull} }
func StringValue(s string) Value { return Value{kind: ValueString, str: s} }
func IntValue(n int64) Value { return Value{kind: ValueInt, num: n} }
func BoolValue(b bool) Value { return Value{kind: ValueBool, flag: b} }
func TimeValue(t time.Time) Value { return Value{kind: ValueTime, at: t.UTC()} }
func IDValue(id uint64) Value { return IntValue(int64(id)) }

// OptionalTimeValue boxes a nullable timestamp.
func OptionalTimeValue(t *time.Time) Value {
	if t == nil {
		return NullValue()
	}
	return TimeValue(*t)
}

// OptionalIDValue boxes a nullable identifier.
func OptionalIDValue(id *uint64) Value {
	if id == nil {
		return NullValue()
	}
	return IDValue(*id)
}

// OptionalIntValue boxes a nullable integer.
func OptionalIntValue(n *int) Value {
	if n == nil {
		return NullValue()
	}
	return IntValue(int64(*n))
}

func (v Value) Kind() ValueKind {
	if v.kind == "" {
		return ValueNull
	}
	return v.kind
}

func (v Value) IsNull() bool { return v.Kind() == ValueNull }
func (v Value) Str() string { return v.str }
func (v Value) Int() int64 { return v.num }
func (v Value) Bool() bool { return v.flag }
func (v Value) Time() time.Time { return v.at }

// String renders the value for human-readable descriptions.
func (v Value) String() string {
	switch v.Kind() {
	case ValueString:
		return v.str
	case ValueInt:
		return strconv.FormatInt(v.num, 10)
	case ValueBool:
		return strconv.FormatBool(v.flag)
	case ValueTime:
		return v.at.Format(time.RFC3339)
	default:
		return "null"
	}
}

// Equal reports whether both values carry the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.Kind() != o.Kind() {
		return false
	}
	switch v.Kind() {
	case ValueString:
		return v.str == o.str
	case ValueInt:
		return v.num == o.num
	case ValueBool:
		return v.flag == o.flag
	case ValueTime:
		return v.at.Equal(o.at)
	default:
		return true
	}
}

type wireValue struct {
	Kind  ValueKind       `json:"kind"`
	Value json.RawMessage `json:"value,omitempty"`
}

// MarshalJSON encodes the value as {"kind": ..., "value": ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.Kind() {
	case ValueString:
		payload = v.str
	case ValueInt:
		payload = v.num
	case ValueBool:
		payload = v.flag
	case ValueTime:
		payload = v.at.Format(time.RFC3339Nano)
	default:
		return json.Marshal(wireValue{Kind: ValueNull})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireValue{Kind: v.Kind(), Value: raw})
}

// UnmarshalJSON decodes the tagged form written by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var w wireValue
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	switch w.Kind {
	case ValueNull, "":
		*v = NullValue()
	case ValueString:
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return err
		}
		*v = StringValue(s)
	case ValueInt:
		var n int64
		if err := json.Unmarshal(w.Value, &n); err != nil {
			return err
		}
		*v = IntValue(n)
	case ValueBool:
		var b bool
		if err := json.Unmarshal(w.Value, &b); err != nil {
			return err
		}
		*v = BoolValue(b)
	case ValueTime:
		var s string
		if err := json.Unmarshal(w.Value, &s); err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return err
		}
		*v = TimeValue(t)
	default:
		return fmt.Errorf("unknown value kind %q", w.Kind)
	}
	return nil
}

// Changes is a sparse map of field values. Only changed fields are present.
type Changes map[Field]Value

// Fields returns the field names in sorted order.
func (c Changes) Fields() []Field {
	fields := make([]Field, 0, len(c))
	for f := range c {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Clone returns an independent copy.
func (c Changes) Clone() Changes {
	if c == nil {
		return nil
	}
	out := make(Changes, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// diff accumulates old/new pairs for the fields an operation actually changed.
type diff struct {
	old Changes
	new Changes
}

func newDiff() *diff {
	return &diff{old: Changes{}, new: Changes{}}
}

func (d *diff) record(field Field, oldValue, newValue Value) {
	if oldValue.Equal(newValue) {
		return
	}
	d.old[field] = oldValue
	d.new[field] = newValue
}

func (d *diff) empty() bool {
	return len(d.new) == 0
}
