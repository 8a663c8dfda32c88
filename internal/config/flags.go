package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// RegisterFlags binds every tagged field of opts to a flag on fs and assigns
// the field its default tag value. Fields carrying a mode tag are registered
// only when it matches mode; an empty mode tag means the field is shared.
func RegisterFlags(fs *pflag.FlagSet, opts any, mode string) error {
	v := reflect.ValueOf(opts).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		fieldType := t.Field(i)
		help := fieldType.Tag.Get("help")
		if help == "" {
			continue
		}
		if m := fieldType.Tag.Get("mode"); m != "" && m != mode {
			continue
		}

		name := flagName(fieldType)
		short := fieldType.Tag.Get("short")
		def := fieldType.Tag.Get("default")

		switch p := v.Field(i).Addr().Interface().(type) {
		case *string:
			fs.StringVarP(p, name, short, def, help)
		case *bool:
			b := false
			if def != "" {
				parsed, err := strconv.ParseBool(def)
				if err != nil {
					return fmt.Errorf("field %s: bad default %q: %w", fieldType.Name, def, err)
				}
				b = parsed
			}
			fs.BoolVarP(p, name, short, b, help)
		case *int:
			n := 0
			if def != "" {
				parsed, err := strconv.Atoi(def)
				if err != nil {
					return fmt.Errorf("field %s: bad default %q: %w", fieldType.Name, def, err)
				}
				n = parsed
			}
			fs.IntVarP(p, name, short, n, help)
		case *[]string:
			var list []string
			if def != "" {
				list = strings.Split(def, ",")
			}
			fs.StringSliceVarP(p, name, short, list, help)
		default:
			return fmt.Errorf("field %s: unsupported flag type %s", fieldType.Name, fieldType.Type)
		}
	}
	return nil
}
