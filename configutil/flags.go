package configutil

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/iancoleman/strcase"
	"github.com/spf13/pflag"
)

// BindFlags registers a flag on fs for every field of the struct cfg points to that carries a
// `usage` tag. The flag is named prefix plus the `flag` tag, or plus the kebab-cased field name
// without one. Nested structs are not descended into; bind them separately, for example on the
// sub-command that reads them.
//
// The field's pointer must implement pflag.Value, or the field must be a string, bool or int.
// The field's current value is the flag's default.
func BindFlags(fs *pflag.FlagSet, prefix string, cfg any) {
	v := structValue(cfg)
	eachFlagField(v.Type(), prefix, nil, false, func(name, usage string, index []int) {
		switch p := v.FieldByIndex(index).Addr().Interface().(type) {
		case pflag.Value:
			fs.Var(p, name, usage)
		case *string:
			fs.StringVar(p, name, *p, usage)
		case *bool:
			fs.BoolVar(p, name, *p, usage)
		case *int:
			fs.IntVar(p, name, *p, usage)
		default:
			panic(fmt.Sprintf("configutil: %T cannot back flag --%s", p, name))
		}
	})
}

// Overlay copies *src into *dst, keeping every field whose flag was given on the command line.
// Flag names are derived as in BindFlags, and nested structs are descended into. Fields whose
// flag is not defined on fs are copied.
func Overlay(fs *pflag.FlagSet, prefix string, dst, src any) {
	d, s := structValue(dst), structValue(src)
	if d.Type() != s.Type() {
		panic(fmt.Sprintf("configutil: cannot overlay %s onto %s", s.Type(), d.Type()))
	}
	type kept struct {
		index []int
		value reflect.Value
	}
	var keep []kept
	eachFlagField(d.Type(), prefix, nil, true, func(name, _ string, index []int) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			field := d.FieldByIndex(index)
			value := reflect.New(field.Type()).Elem()
			value.Set(field)
			keep = append(keep, kept{index: index, value: value})
		}
	})
	d.Set(s)
	for _, k := range keep {
		d.FieldByIndex(k.index).Set(k.value)
	}
}

func structValue(ptr any) reflect.Value {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("configutil: %T is not a pointer to a struct", ptr))
	}
	return v.Elem()
}

func eachFlagField(t reflect.Type, prefix string, index []int, nested bool, fn func(name, usage string, index []int)) {
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldIndex := append(slices.Clone(index), i)
		usage, ok := field.Tag.Lookup("usage")
		if !ok {
			if nested && field.Type.Kind() == reflect.Struct {
				eachFlagField(field.Type, prefix, fieldIndex, nested, fn)
			}
			continue
		}
		name := field.Tag.Get("flag")
		if name == "" {
			name = strcase.ToKebab(field.Name)
		}
		fn(prefix+name, usage, fieldIndex)
	}
}
