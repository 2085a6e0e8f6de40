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

// Package token defines the tokens produced by the OML lexer.
//
// OML has no reserved words: keywords such as `take` or `select` lex as
// [Ident] tokens, and the parser decides from their position whether they act
// as keywords.
package token

//go:generate go run github.com/bufbuild/oml/internal/enum kind.yaml
