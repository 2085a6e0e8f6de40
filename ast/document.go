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
	"cmp"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Document is a parsed OML file: a header, a body of static blocks and
// aggregate items, and an optional privacy section.
type Document struct {
	Header  *Header
	Statics []*StaticBlock
	Items   []*Item

	// The privacy section. HasPrivacy is set when a second separator was
	// present, even if the section failed to parse.
	Privacy    []*PrivacyItem
	HasPrivacy bool

	Loc Span
}

func (d *Document) Span() Span { return d.Loc }

// Binding is one target of an item, together with the item that assigns it.
type Binding struct {
	Target *Target
	Item   *Item
	// The static block the item belongs to, if any.
	Static *StaticBlock
}

// Bindings returns every target the document assigns, in source order.
func (d *Document) Bindings() []Binding {
	var out []Binding
	for _, block := range d.Statics {
		for _, item := range block.Items {
			for _, target := range item.Targets {
				out = append(out, Binding{Target: target, Item: item, Static: block})
			}
		}
	}
	for _, item := range d.Items {
		for _, target := range item.Targets {
			out = append(out, Binding{Target: target, Item: item})
		}
	}
	slices.SortStableFunc(out, func(a, b Binding) int {
		return cmp.Compare(a.Target.Loc.Start, b.Target.Loc.Start)
	})
	return out
}

// PrivacyTags returns the privacy section as a map from field name to tag.
// If a name is tagged twice, the last tag wins.
func (d *Document) PrivacyTags() map[string]PrivacyKind {
	if !d.HasPrivacy {
		return nil
	}
	tags := make(map[string]PrivacyKind, len(d.Privacy))
	for _, item := range d.Privacy {
		tags[item.Name] = item.Kind
	}
	return tags
}

// Header is the part of a document before the first separator.
type Header struct {
	Name    *Path
	Enabled *bool // Nil when no `enable:` field was given.
	Rules   []*RulePath
	Loc     Span
}

func (h *Header) Span() Span { return h.Loc }

// IsEnabled returns the value of the `enable:` field, defaulting to true.
func (h *Header) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// MatchRule returns whether any of the header's rule patterns matches path.
//
// Patterns use doublestar syntax, so `*` stays within one path segment and
// `**` crosses segments. Malformed patterns never match.
func (h *Header) MatchRule(path string) bool {
	for _, rule := range h.Rules {
		if ok, err := doublestar.Match(rule.Pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Path is a name made of identifiers joined by `/` or `.`, such as
// `nginx/access` or `a.b`.
type Path struct {
	// The path as written, without whitespace.
	Text     string
	Segments []string
	Loc      Span
}

func (p *Path) Span() Span { return p.Loc }

// RulePath is one pattern of a `rule:` field. The pattern is kept as raw
// text.
type RulePath struct {
	Pattern string
	Loc     Span
}

func (r *RulePath) Span() Span { return r.Loc }

// StaticBlock is a `static { ... }` group of items.
type StaticBlock struct {
	Items []*Item
	Loc   Span
}

func (b *StaticBlock) Span() Span { return b.Loc }

// Item is an assignment `targets = value;`.
type Item struct {
	Targets []*Target
	Value   Eval
	Loc     Span
}

func (i *Item) Span() Span { return i.Loc }

// Target is one name on the left-hand side of an item, optionally typed.
type Target struct {
	Name TargetName
	Type *DataType
	Loc  Span
}

func (t *Target) Span() Span { return t.Loc }

// TargetKind distinguishes the three forms of a target name.
type TargetKind int

const (
	TargetIdent    TargetKind = iota // A plain identifier.
	TargetWildcard                   // A wildcard key: `*`, `*x` or `x*`.
	TargetDiscard                    // The discard marker `_`.
)

// String implements [fmt.Stringer].
func (k TargetKind) String() string {
	switch k {
	case TargetIdent:
		return "ident"
	case TargetWildcard:
		return "wildcard"
	case TargetDiscard:
		return "discard"
	default:
		return "TargetKind(?)"
	}
}

// TargetName is the name part of a [Target].
type TargetName struct {
	Kind TargetKind
	Text string
}

// DataType is a data type annotation, such as `ip` or `array/chars`.
type DataType struct {
	Kind DataTypeKind
	// The suffix of the parametrized forms `array/<name>` and `time/<name>`;
	// empty otherwise.
	Param string
	Loc   Span
}

func (t *DataType) Span() Span { return t.Loc }

// String returns the data type as it is spelled in source.
func (t *DataType) String() string {
	if t.Param != "" {
		return t.Kind.String() + "/" + t.Param
	}
	return t.Kind.String()
}

// PrivacyItem is an entry `name : privacy_*` of the privacy section.
type PrivacyItem struct {
	Name string
	Kind PrivacyKind
	Loc  Span
}

func (p *PrivacyItem) Span() Span { return p.Loc }
