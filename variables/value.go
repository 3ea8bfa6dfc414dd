package variables

import (
	"math"
	"strconv"
	"strings"

	"github.com/reusee/scajl/syntaxes"
)

const (
	NullText  = "null"
	TrueText  = "true"
	FalseText = "false"
)

// Value is raw scalar text.
type Value struct {
	source
	orphan
	text string
}

var _ Variable = new(Value)

var (
	Null  = ValueOf(NullText)
	True  = ValueOf(TrueText)
	False = ValueOf(FalseText)
)

func ValueOf(text string) *Value {
	return &Value{
		source: source{
			input:   text,
			modless: text,
		},
		text: text,
	}
}

func NumberOf(f float64) *Value {
	return ValueOf(FormatNumber(f))
}

func BoolOf(b bool) *Value {
	if b {
		return True
	}
	return False
}

func (v *Value) Kind() Kind {
	return KindValue
}

func (v *Value) Raw() string {
	return v.text
}

func (v *Value) Val(Context) (string, error) {
	return v.text, nil
}

func (v *Value) Clone() Variable {
	c := *v
	return &c
}

// FormatNumber renders integral values without a fraction.
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func IsNumber(text string) bool {
	if text == "" {
		return false
	}
	switch c := text[0]; {
	case c >= '0' && c <= '9', c == '-', c == '+', c == '.':
	default:
		return false
	}
	if strings.Trim(text, "0123456789.-+eE") != "" {
		return false
	}
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}

func ParseNumber(text string) (float64, bool) {
	if !IsNumber(text) {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseInt parses a number and rounds it to the nearest integer.
func ParseInt(text string) (int, bool) {
	f, ok := ParseNumber(text)
	if !ok {
		return 0, false
	}
	return int(math.Round(f)), true
}

// ParseBool accepts only the canonical true and false texts.
func ParseBool(text string) (bool, bool) {
	switch text {
	case TrueText:
		return true, true
	case FalseText:
		return false, true
	}
	return false, false
}

// String is a string literal.
type String struct {
	source
	orphan
	text string
}

var _ Variable = new(String)

func StringOf(text string) *String {
	s := &String{
		text: text,
	}
	s.input = s.Raw()
	s.modless = s.input
	return s
}

func (s *String) Kind() Kind {
	return KindString
}

func (s *String) Raw() string {
	return string(syntaxes.Quote) + syntaxes.EscapeString(s.text) + string(syntaxes.Quote)
}

func (s *String) Val(Context) (string, error) {
	return s.text, nil
}

func (s *String) Clone() Variable {
	c := *s
	return &c
}

// Reference names another variable and is re-resolved on every read.
type Reference struct {
	source
	orphan
	name string
}

var _ Variable = new(Reference)

const RefPrefix = string(ModRef)

func RefTo(name string) *Reference {
	return &Reference{
		source: source{
			input:   RefPrefix + name,
			modless: name,
		},
		name: name,
	}
}

func (r *Reference) Kind() Kind {
	return KindReference
}

func (r *Reference) Name() string {
	return r.name
}

func (r *Reference) Raw() string {
	return RefPrefix + r.name
}

func (r *Reference) Deref(ctx Context) (Variable, error) {
	return Resolve(ctx, r.name, false, nil)
}

func (r *Reference) Val(ctx Context) (string, error) {
	v, err := r.Deref(ctx)
	if err != nil {
		return "", err
	}
	return v.Val(ctx)
}

func (r *Reference) Clone() Variable {
	c := *r
	return &c
}
