// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// ToYAML renders the tree rooted at n as YAML, for debugging and for golden
// tests.
//
// Fields are written in declaration order with snake_case keys. Spans and
// empty fields are omitted. Nodes held through one of the sum type
// interfaces get a leading `node` key naming their concrete type.
func ToYAML(n Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toYAML(reflect.ValueOf(n), false)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var (
	spanType     = reflect.TypeFor[Span]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

func toYAML(v reflect.Value, tagged bool) *yaml.Node {
	if !v.IsValid() {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	if v.Kind() != reflect.Interface && v.Kind() != reflect.Pointer && v.Type().Implements(stringerType) {
		return scalar(v.Interface().(fmt.Stringer).String())
	}

	switch v.Kind() {
	case reflect.Interface:
		return toYAML(v.Elem(), true)
	case reflect.Pointer:
		if !tagged && !v.IsNil() && v.Type().Implements(stringerType) {
			// Data types print as they are spelled.
			return scalar(v.Interface().(fmt.Stringer).String())
		}
		return toYAML(v.Elem(), tagged)
	case reflect.String:
		return scalar(v.String())
	case reflect.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(v.Bool())}
	case reflect.Slice:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := range v.Len() {
			seq.Content = append(seq.Content, toYAML(v.Index(i), false))
		}
		return seq
	case reflect.Struct:
		m := &yaml.Node{Kind: yaml.MappingNode}
		if tagged {
			m.Content = append(m.Content, scalar("node"), scalar(v.Type().Name()))
		}
		for i := range v.NumField() {
			field := v.Type().Field(i)
			value := v.Field(i)
			if field.Type == spanType || omit(value) {
				continue
			}
			m.Content = append(m.Content, scalar(snakeCase(field.Name)), toYAML(value, false))
		}
		return m
	default:
		return scalar(fmt.Sprint(v.Interface()))
	}
}

// omit returns whether a field should be left out of the dump: nil
// pointers and interfaces, empty slices and strings, and false.
func omit(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	case reflect.Slice:
		return v.Len() == 0
	case reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	default:
		return false
	}
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// snakeCase converts a Go field name like HasPrivacy or LHS to has_privacy
// or lhs.
func snakeCase(name string) string {
	var out strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (nextLower && unicode.IsUpper(runes[i-1])) {
				out.WriteByte('_')
			}
		}
		out.WriteRune(unicode.ToLower(r))
	}
	return out.String()
}
