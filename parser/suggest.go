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

package parser

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/bufbuild/oml/report"
)

// suggest returns the candidate closest to word, or "" if none is close
// enough to be worth mentioning.
//
// Candidates that contain word as a subsequence win first (`b64` finds
// `base64`); otherwise the smallest edit distance within a third of the
// word's length, and at least two, wins (`chras` finds `chars`).
func suggest(word string, candidates []string) string {
	if word == "" {
		return ""
	}
	if len(word) >= 3 {
		ranks := fuzzy.RankFindFold(word, candidates)
		if len(ranks) > 0 {
			sort.Sort(ranks)
			return ranks[0].Target
		}
	}

	best, bestDist := "", max(2, len(word)/3)+1
	lower := strings.ToLower(word)
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(lower, strings.ToLower(c))
		if d < bestDist && d < len(word) {
			best, bestDist = c, d
		}
	}
	return best
}

// didYouMean returns a help option naming the closest candidate, or nil.
func didYouMean(word string, candidates []string) report.DiagnosticOption {
	if s := suggest(word, candidates); s != "" && s != word {
		return report.Help("did you mean `%s`?", s)
	}
	return nil
}
