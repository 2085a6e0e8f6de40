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

// Package oml is the front-end of OML, a rule language for shaping log
// records: a document names itself in a header, assigns fields in a body of
// items and static blocks, and can tag fields in a trailing privacy section.
//
//	name: nginx/access
//	rule: /nginx/*/access
//	---
//	ip: ip = take(option:[client, remote]);
//	level = match read(status) {
//	    starts_with("5") => chars(error);
//	    _ => chars(info);
//	};
//	---
//	ip: privacy_ip
//
// Processing a document has three steps:
//  1. Lexing the text into tokens.
//     Also see: parser.Lex
//  2. Parsing the tokens into an AST, recovering from errors so that one
//     mistake is reported once.
//     Also see: parser.Parse
//  3. Validating the constraints the grammar cannot express, such as the
//     width of tuple match arms.
//     Also see: parser.Validate
//
// Nothing here evaluates a document. The result is an [ast.Document] and a
// [report.Report] of diagnostics.
//
// # Compiler
//
// A [Compiler] runs the front-end over many documents at once. Only the
// Resolver field is required. A minimal Compiler, that loads files from the
// file system relative to the current working directory, is:
//
//	compiler := oml.Compiler{
//	    Resolver: &oml.SourceResolver{},
//	}
//
// This Compiler uses default parallelism, equal to the number of CPU cores
// detected, and collects every diagnostic instead of stopping at the first
// error. Both can be changed through its other fields.
//
// # Resolvers
//
// A [Resolver] locates the documents to compile. It can answer with source
// text, which is then parsed, or with an AST that was produced some other
// way, which is used as is.
package oml
