// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package readability computes the Flesch-Kincaid Grade Level and the Flesch
// Reading Ease Score of a piece of text.
//
// Words and sentences are the pieces left after splitting the text on
// whitespace runs and on each '.', '!' or '?'. Empty pieces count, except
// those at the end of the text, and text with no separator at all is one
// piece. So "" is one word in one sentence, while "..." has no sentences.
// A word's syllables are its groups of consecutive vowels (a, e, i, o, u,
// y), minus one for a trailing 'e', with a minimum of one.
//
// Both scores are rounded to two decimals. Text without words or without
// sentences scores 0.
package readability

import (
	"math"
	"regexp"
	"strings"
)

var (
	wordSep     = regexp.MustCompile(`[ \t\n\x0B\f\r]+`)
	sentenceSep = regexp.MustCompile(`[.!?]`)
)

// Scores holds both metrics for one text.
type Scores struct {
	Grade float64 `json:"fkGrade"`
	Ease  float64 `json:"readingEase"`
}

// Counts are the raw statistics the formulas are built from.
type Counts struct {
	Words     int
	Sentences int
	Syllables int
}

// Count returns the word, sentence and syllable counts of text.
func Count(text string) Counts {
	words := split(wordSep, text)
	c := Counts{
		Words:     len(words),
		Sentences: countSentences(text),
	}
	for _, w := range words {
		c.Syllables += countSyllables(w)
	}
	return c
}

// Score computes both metrics in a single pass over text.
func Score(text string) Scores {
	c := Count(text)
	return Scores{Grade: c.Grade(), Ease: c.Ease()}
}

// Grade returns the Flesch-Kincaid Grade Level of text.
func Grade(text string) float64 { return Count(text).Grade() }

// Ease returns the Flesch Reading Ease Score of text.
func Ease(text string) float64 { return Count(text).Ease() }

// Grade applies 0.39·(w/s) + 11.8·(syl/w) − 15.59.
func (c Counts) Grade() float64 {
	if c.Words == 0 || c.Sentences == 0 {
		return 0
	}
	w, s, syl := float64(c.Words), float64(c.Sentences), float64(c.Syllables)
	return Round2(0.39*(w/s) + 11.8*(syl/w) - 15.59)
}

// Ease applies 206.835 − 1.015·(w/s) − 84.6·(syl/w).
func (c Counts) Ease() float64 {
	if c.Words == 0 || c.Sentences == 0 {
		return 0
	}
	w, s, syl := float64(c.Words), float64(c.Sentences), float64(c.Syllables)
	return Round2(206.835 - 1.015*(w/s) - 84.6*(syl/w))
}

// Round2 rounds v to two decimals, halves rounding up.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

func countSentences(text string) int {
	return len(split(sentenceSep, text))
}

// split cuts text around sep and drops the empty pieces at the end. Text
// without a match comes back whole, even when empty.
func split(sep *regexp.Regexp, text string) []string {
	parts := sep.Split(text, -1)
	if len(parts) == 1 {
		return parts
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func countSyllables(word string) int {
	word = strings.ToLower(word)
	count := 0
	lastWasVowel := false
	for _, r := range word {
		if strings.ContainsRune("aeiouy", r) {
			if !lastWasVowel {
				count++
			}
			lastWasVowel = true
		} else {
			lastWasVowel = false
		}
	}
	if strings.HasSuffix(word, "e") {
		count--
	}
	return max(count, 1)
}
