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

// enum generates the boilerplate for the closed keyword sets of OML: the
// constants themselves, their spellings, and lookups from spelling to value.
//
// To generate boilerplate for a given file, use
//
//	//go:generate go run github.com/bufbuild/oml/internal/enum kinds.yaml
//
// which writes kinds.go next to kinds.yaml. The YAML file contains an array
// of the Enum type defined in this package.
//
//nolint:revive // We use _ in field names to disambiguate them from methods, while still exporting them.
package main

import (
	_ "embed"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

type Enum struct {
	Name    string   `yaml:"name"`  // The name of the new type.
	Type    string   `yaml:"type"`  // The underlying type.
	Docs    string   `yaml:"docs"`  // Documentation for the type.
	Total   string   `yaml:"total"` // The name of a "total values" constant.
	Methods []Method `yaml:"methods"`
	Values_ []Value  `yaml:"values"`
}

func (e *Enum) Values() []Value {
	for i := range e.Values_ {
		e.Values_[i].Parent = e
		e.Values_[i].Idx = i
	}
	return e.Values_
}

// Has returns whether this enum asks for a method of the given kind.
func (e *Enum) Has(kind MethodKind) bool {
	return slices.ContainsFunc(e.Methods, func(m Method) bool { return m.Kind == kind })
}

// Parseable returns the values that a from-string method accepts.
func (e *Enum) Parseable() []Value {
	var skip []string
	for _, m := range e.Methods {
		if m.Kind == MethodFromString {
			skip = m.Skip
		}
	}
	var out []Value
	for _, v := range e.Values() {
		if !slices.Contains(skip, v.Name) {
			out = append(out, v)
		}
	}
	return out
}

type Value struct {
	Name    string `yaml:"name"`   // The name of the value.
	String_ string `yaml:"string"` // The spelling of this value.
	Docs    string `yaml:"docs"`   // Documentation for the value.

	Parent *Enum `yaml:"-"`
	Idx    int   `yaml:"-"`
}

func (v Value) String() string {
	if v.String_ == "" {
		return v.Name
	}
	return v.String_
}

type Method struct {
	Kind  MethodKind `yaml:"kind"` // The kind of method to generate.
	Name_ string     `yaml:"name"` // The method's name; optional for some methods.
	Docs_ string     `yaml:"docs"` // Documentation for the method.
	Skip  []string   `yaml:"skip"` // Enum values to ignore in this method.
}

func (m Method) Name() (string, error) {
	if m.Name_ != "" {
		return m.Name_, nil
	}

	switch m.Kind {
	case MethodFromString:
		return "", fmt.Errorf("missing name for kind: %#v", MethodFromString)
	case MethodGoString:
		return "GoString", nil
	case MethodString:
		return "String", nil
	default:
		return "", fmt.Errorf("unexpected kind: %#v", m.Kind)
	}
}

func (m Method) Docs() string {
	if m.Docs_ != "" {
		return m.Docs_
	}

	switch m.Kind {
	case MethodGoString:
		return "GoString implements [fmt.GoStringer]."
	case MethodString:
		return "String implements [fmt.Stringer]."
	default:
		return ""
	}
}

type MethodKind string

const (
	MethodString     MethodKind = "string"
	MethodGoString   MethodKind = "go-string"
	MethodFromString MethodKind = "from-string"
)

//go:embed enum.go.tmpl
var tmplText string

// makeDocs converts a data into doc comments.
func makeDocs(data, indent string) string {
	if data == "" {
		return ""
	}

	var out strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		out.WriteString(indent)
		if line == "" {
			out.WriteString("//\n")
			continue
		}
		out.WriteString("// ")
		out.WriteString(line)
		out.WriteString("\n")
	}
	return out.String()
}

// Generate renders the Go source for the enums described by the YAML in
// config. pkg is the package the output belongs to.
func Generate(pkg, config string, text []byte) ([]byte, error) {
	var input struct {
		Package, Config string
		YAML            []Enum
	}
	input.Package = pkg
	input.Config = filepath.Base(config)
	if err := yaml.Unmarshal(text, &input.YAML); err != nil {
		return nil, err
	}

	tmpl, err := template.New("enum.go.tmpl").Funcs(template.FuncMap{
		"makeDocs": makeDocs,
	}).Parse(tmplText)
	if err != nil {
		return nil, err
	}

	var out strings.Builder
	if err := tmpl.ExecuteTemplate(&out, "enum.go.tmpl", input); err != nil {
		return nil, err
	}
	return format.Source([]byte(out.String()))
}

func Main(config string) error {
	if filepath.Ext(config) != ".yaml" {
		return errors.New("file argument must end in .yaml")
	}

	text, err := os.ReadFile(config)
	if err != nil {
		return err
	}
	src, err := Generate(os.Getenv("GOPACKAGE"), config, text)
	if err != nil {
		return err
	}
	return os.WriteFile(strings.TrimSuffix(config, ".yaml")+".go", src, 0o644)
}

func main() {
	var failed bool
	for _, config := range os.Args[1:] {
		if err := Main(config); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", config, err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
