// Package reflectvar resolves participant variables by name at runtime.
//
// A variable is an exported struct field on the participant. The field named
// by a `dialogue:"..."` tag wins over the Go field name, which lets dialogue
// assets keep names such as "bIsAlive" that are not valid exported Go
// identifiers. The participant must be a non-nil pointer to a struct so the
// resolved field is settable.
package reflectvar

import (
	"math"
	"reflect"
	"strconv"

	apperrors "github.com/louisbranch/dialogue/internal/platform/errors"
)

// TagKey is the struct tag consulted before the Go field name.
const TagKey = "dialogue"

// Accessor modifies named participant variables through package reflect.
// The zero value is ready to use.
type Accessor struct{}

// ModifyInt adds value to, or overwrites, a signed integer field. A result
// that does not fit the field is rejected and the field keeps its value.
func (Accessor) ModifyInt(target any, field string, value int32, delta bool) error {
	v, err := resolve(target, field, "int", isInt)
	if err != nil {
		return err
	}
	next := int64(value)
	if delta {
		current := v.Int()
		if (value > 0 && current > math.MaxInt64-next) || (value < 0 && current < math.MinInt64-next) {
			return outOfRange(field, v, strconv.FormatInt(current, 10)+" + "+strconv.FormatInt(next, 10))
		}
		next += current
	}
	if v.OverflowInt(next) {
		return outOfRange(field, v, strconv.FormatInt(next, 10))
	}
	v.SetInt(next)
	return nil
}

// ModifyFloat adds value to, or overwrites, a floating point field. A result
// that does not fit the field is rejected and the field keeps its value.
func (Accessor) ModifyFloat(target any, field string, value float32, delta bool) error {
	v, err := resolve(target, field, "float", isFloat)
	if err != nil {
		return err
	}
	next := float64(value)
	if delta {
		next += v.Float()
	}
	if !math.IsInf(next, 0) && v.OverflowFloat(next) {
		return outOfRange(field, v, strconv.FormatFloat(next, 'g', -1, 64))
	}
	v.SetFloat(next)
	return nil
}

func outOfRange(field string, v reflect.Value, result string) error {
	return apperrors.WithMetadata(apperrors.CodeValueOutOfRange,
		"variable "+field+": "+result+" does not fit "+v.Kind().String(),
		map[string]string{"field": field, "got": v.Kind().String()})
}

// SetBool overwrites a bool field.
func (Accessor) SetBool(target any, field string, value bool) error {
	v, err := resolve(target, field, "bool", isBool)
	if err != nil {
		return err
	}
	v.SetBool(value)
	return nil
}

// SetName overwrites a string-kinded field.
func (Accessor) SetName(target any, field string, value string) error {
	v, err := resolve(target, field, "name", isString)
	if err != nil {
		return err
	}
	v.SetString(value)
	return nil
}

func resolve(target any, field, want string, accept func(reflect.Kind) bool) (reflect.Value, error) {
	meta := map[string]string{"field": field, "want": want}

	rv := reflect.ValueOf(target)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() {
		return reflect.Value{}, apperrors.WithMetadata(apperrors.CodeFieldNotSettable,
			"variable "+field+": participant must be a non-nil pointer to a struct", meta)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		meta["type"] = rv.Type().String()
		return reflect.Value{}, apperrors.WithMetadata(apperrors.CodeFieldNotFound,
			"variable "+field+": "+rv.Type().String()+" is not a struct", meta)
	}
	meta["type"] = rv.Type().String()
	if field == "" {
		return reflect.Value{}, apperrors.WithMetadata(apperrors.CodeFieldNotFound,
			"variable name is empty", meta)
	}

	sf, ok := lookupField(rv.Type(), field)
	if !ok {
		return reflect.Value{}, apperrors.WithMetadata(apperrors.CodeFieldNotFound,
			"variable "+field+" not found on "+rv.Type().String(), meta)
	}
	fv, err := rv.FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, apperrors.WithMetadata(apperrors.CodeFieldNotSettable,
			"variable "+field+" is behind a nil embedded pointer", meta)
	}
	if !accept(fv.Kind()) {
		meta["got"] = fv.Kind().String()
		return reflect.Value{}, apperrors.WithMetadata(apperrors.CodeFieldTypeMismatch,
			"variable "+field+" on "+rv.Type().String()+" is "+fv.Kind().String()+", not "+want, meta)
	}
	if !fv.CanSet() {
		return reflect.Value{}, apperrors.WithMetadata(apperrors.CodeFieldNotSettable,
			"variable "+field+" on "+rv.Type().String()+" is not exported", meta)
	}
	return fv, nil
}

func lookupField(t reflect.Type, name string) (reflect.StructField, bool) {
	for _, sf := range reflect.VisibleFields(t) {
		if tag, ok := sf.Tag.Lookup(TagKey); ok && tag != "" && tag == name {
			return sf, true
		}
	}
	return t.FieldByName(name)
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func isBool(k reflect.Kind) bool {
	return k == reflect.Bool
}

func isString(k reflect.Kind) bool {
	return k == reflect.String
}
