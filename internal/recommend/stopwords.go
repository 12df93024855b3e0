// Pulse - Personalized Post Recommendations for Crown Social
// Copyright 2026 Crown Social
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/crown-social/pulse

package recommend

import "strings"

// englishStopWords lists common English function words excluded from the
// TF-IDF vocabulary. They carry no topical signal and would otherwise
// dominate the term statistics of short social posts.
const englishStopWords = `
a about above after again against all am an and any are as at be because
been before being below between both but by can cannot could did do does
doing down during each few for from further had has have having he her
here hers herself him himself his how i if in into is it its itself just
me more most my myself no nor not now of off on once only or other our
ours ourselves out over own same she should so some such than that the
their theirs them themselves then there these they this those through to
too under until up very was we were what when where which while who whom
why will with would you your yours yourself yourselves
`

// stopWords is the lookup set built from englishStopWords.
var stopWords = buildStopWords()

func buildStopWords() map[string]struct{} {
	words := strings.Fields(englishStopWords)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// isStopWord reports whether the lowercased token is a stop word.
func isStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
