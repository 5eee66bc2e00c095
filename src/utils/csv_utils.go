package utils

import (
	"fmt"
	"reflect"
	"strings"
)

// StructsToCSV renders a slice of structs as CSV text. The header row is
// built from the json tag names of the element type in declaration order;
// each following row joins the field values with commas, rendering zero
// values of string fields as empty strings. Values are written as-is, with
// no quoting, so embedded commas or newlines are lossy.
func StructsToCSV(records interface{}) string {
	v := reflect.ValueOf(records)
	if v.Kind() != reflect.Slice || v.Len() == 0 {
		return ""
	}

	elemType := v.Type().Elem()
	if elemType.Kind() != reflect.Struct {
		return ""
	}

	var headers []string
	var fieldIdx []int
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName := strings.Split(tag, ",")[0]
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		headers = append(headers, name)
		fieldIdx = append(fieldIdx, i)
	}

	lines := make([]string, 0, v.Len()+1)
	lines = append(lines, strings.Join(headers, ","))

	for i := 0; i < v.Len(); i++ {
		elem := v.Index(i)
		values := make([]string, 0, len(fieldIdx))
		for _, idx := range fieldIdx {
			fv := elem.Field(idx)
			if fv.Kind() == reflect.String {
				values = append(values, fv.String())
				continue
			}
			values = append(values, fmt.Sprint(fv.Interface()))
		}
		lines = append(lines, strings.Join(values, ","))
	}

	return strings.Join(lines, "\n")
}
