/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package adapter

import (
	"reflect"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/projector/model"
)

// ReaderFunc reads a named property off a source instance. The boolean is false when
// the instance has no such property.
type ReaderFunc func(instance any, name string) (any, bool)

// fieldCache maps a struct type to its property name -> field index table.
var fieldCache sync.Map // map[reflect.Type]map[string][]int

// ReadProperty is the default ReaderFunc. It understands:
//   - structs and pointers to structs (json tag name, then Go field name)
//   - map[string]any and other string-keyed maps
//   - raw DynamoDB items (map[string]types.AttributeValue), decoding the attribute;
//     an attribute that fails to decode is returned as its raw types.AttributeValue
//
// A present nil value (nil pointer field, NULL attribute) is reported as found.
func ReadProperty(instance any, name string) (any, bool) {
	switch src := instance.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := src[name]
		return v, ok
	case map[string]types.AttributeValue:
		return readAttribute(src, name)
	}

	v := reflect.ValueOf(instance)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		return readField(v, name)
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	default:
		return nil, false
	}
}

// readAttribute decodes one attribute of a DynamoDB item. A NULL attribute is present
// with a nil value. An attribute that cannot be decoded is returned undecoded as its
// types.AttributeValue so the caller still sees it.
func readAttribute(item map[string]types.AttributeValue, name string) (any, bool) {
	av, ok := item[name]
	if !ok {
		return nil, false
	}
	if _, isNull := av.(*types.AttributeValueMemberNULL); isNull {
		return nil, true
	}
	var out any
	if err := attributevalue.Unmarshal(av, &out); err != nil {
		return av, true
	}
	return out, true
}

func readField(v reflect.Value, name string) (any, bool) {
	idx, ok := fieldIndex(v.Type())[name]
	if !ok {
		return nil, false
	}
	f, err := v.FieldByIndexErr(idx)
	if err != nil {
		// nil embedded pointer on the path
		return nil, false
	}
	return f.Interface(), true
}

// fieldIndex returns the property table for a struct type, building it on first use.
// It covers the fields model.StructProperties exposes; property names (json tags)
// take precedence over Go field names.
func fieldIndex(t reflect.Type) map[string][]int {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string][]int)
	}

	props := model.StructProperties(t)
	byProperty := make(map[string][]int, len(props))
	byField := make(map[string][]int, len(props))
	for _, p := range props {
		byProperty[p.Name] = p.Field.Index
		if _, dup := byField[p.Field.Name]; !dup {
			byField[p.Field.Name] = p.Field.Index
		}
	}
	for name, idx := range byField {
		if _, taken := byProperty[name]; !taken {
			byProperty[name] = idx
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, byProperty)
	return actual.(map[string][]int)
}
