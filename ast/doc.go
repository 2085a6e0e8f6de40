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

// Package ast defines the syntax tree of an OML document.
//
// The parser in package parser builds these trees; nothing in this package
// constructs them from text. Every node records the byte range of source it
// was parsed from, and nodes are never modified once the parser returns
// them.
//
// The sum types of the grammar (an [Eval], an [Arg], a [VarGet], a
// [CondAtom], a [SQLCond], a [SQLValue]) are sealed interfaces: only types
// in this package implement them, so a type switch over one of them can be
// exhaustive.
package ast

//go:generate go run github.com/bufbuild/oml/internal/enum kinds.yaml
