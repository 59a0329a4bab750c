package table

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ValueType defines the storage type for values
type ValueType string

const (
	ValueTypeString    ValueType = "string"
	ValueTypeNumeric   ValueType = "numeric"
	ValueTypeBoolean   ValueType = "boolean"
	ValueTypeTimestamp ValueType = "timestamp"
	ValueTypeMissing   ValueType = "missing"
)

// Value is a tagged-union cell. The zero Value is missing.
type Value struct {
	kind ValueType
	str  string
	num  float64
	flag bool
	ts   time.Time
}

// NewString creates a string value; the empty string is missing
func NewString(s string) Value {
	if s == "" {
		return NewMissing()
	}
	return Value{kind: ValueTypeString, str: s}
}

// NewNumeric creates a numeric value; NaN is stored as missing
func NewNumeric(n float64) Value {
	if math.IsNaN(n) {
		return NewMissing()
	}
	return Value{kind: ValueTypeNumeric, num: n}
}

// NewBoolean creates a boolean value
func NewBoolean(b bool) Value {
	return Value{kind: ValueTypeBoolean, flag: b}
}

// NewTimestamp creates a timestamp value
func NewTimestamp(t time.Time) Value {
	return Value{kind: ValueTypeTimestamp, ts: t}
}

// NewMissing creates a missing value
func NewMissing() Value {
	return Value{kind: ValueTypeMissing}
}

// Type returns the kind of the value
func (v Value) Type() ValueType {
	if v.kind == "" {
		return ValueTypeMissing
	}
	return v.kind
}

// IsMissing reports whether the cell holds no value
func (v Value) IsMissing() bool {
	return v.Type() == ValueTypeMissing
}

// Float returns the numeric payload
func (v Value) Float() (float64, bool) {
	if v.kind != ValueTypeNumeric {
		return 0, false
	}
	return v.num, true
}

// Str returns the string payload
func (v Value) Str() (string, bool) {
	if v.kind != ValueTypeString {
		return "", false
	}
	return v.str, true
}

// Bool returns the boolean payload
func (v Value) Bool() (bool, bool) {
	if v.kind != ValueTypeBoolean {
		return false, false
	}
	return v.flag, true
}

// Time returns the timestamp payload
func (v Value) Time() (time.Time, bool) {
	if v.kind != ValueTypeTimestamp {
		return time.Time{}, false
	}
	return v.ts, true
}

// String returns the display form. Missing values print as NaN.
func (v Value) String() string {
	switch v.Type() {
	case ValueTypeString:
		return v.str
	case ValueTypeNumeric:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case ValueTypeBoolean:
		if v.flag {
			return "True"
		}
		return "False"
	case ValueTypeTimestamp:
		if v.ts.Hour() == 0 && v.ts.Minute() == 0 && v.ts.Second() == 0 && v.ts.Nanosecond() == 0 {
			return v.ts.Format("2006-01-02")
		}
		return v.ts.Format("2006-01-02 15:04:05")
	}
	return "NaN"
}

// Equal compares kind and payload. Missing never equals anything, itself included.
func (v Value) Equal(o Value) bool {
	if v.IsMissing() || o.IsMissing() || v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueTypeString:
		return v.str == o.str
	case ValueTypeNumeric:
		return v.num == o.num
	case ValueTypeBoolean:
		return v.flag == o.flag
	case ValueTypeTimestamp:
		return v.ts.Equal(o.ts)
	}
	return false
}

// Key is a hashable identity for grouping and de-duplication. Unlike Equal,
// two missing values share a key.
func (v Value) Key() string {
	switch v.Type() {
	case ValueTypeString:
		return "s:" + v.str
	case ValueTypeNumeric:
		return "n:" + strconv.FormatFloat(v.num, 'g', -1, 64)
	case ValueTypeBoolean:
		return "b:" + strconv.FormatBool(v.flag)
	case ValueTypeTimestamp:
		return "t:" + strconv.FormatInt(v.ts.UnixNano(), 10)
	}
	return "m:"
}

var kindRank = map[ValueType]int{
	ValueTypeBoolean:   0,
	ValueTypeNumeric:   1,
	ValueTypeTimestamp: 2,
	ValueTypeString:    3,
	ValueTypeMissing:   4,
}

// Compare orders values of the same kind naturally; missing sorts last and
// differing kinds order by kind.
func (v Value) Compare(o Value) int {
	vk, ok := v.Type(), o.Type()
	if vk != ok {
		return kindRank[vk] - kindRank[ok]
	}
	switch vk {
	case ValueTypeString:
		return strings.Compare(v.str, o.str)
	case ValueTypeNumeric:
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		}
		return 0
	case ValueTypeBoolean:
		switch {
		case v.flag == o.flag:
			return 0
		case !v.flag:
			return -1
		}
		return 1
	case ValueTypeTimestamp:
		return v.ts.Compare(o.ts)
	}
	return 0
}
