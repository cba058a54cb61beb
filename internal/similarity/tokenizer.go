// Package similarity scores text pairs with TF-IDF cosine similarity.
package similarity

import (
	"bufio"
	"bytes"
	"embed"
	"regexp"
	"strings"
)

//go:embed stopwords.txt
var stopwordsFS embed.FS

// stopwords holds the embedded English stopword list plus academic filler
// words (paper, study, figure, ...) that carry no plagiarism signal.
var stopwords = loadStopwords()

func loadStopwords() map[string]bool {
	data, err := stopwordsFS.ReadFile("stopwords.txt")
	if err != nil {
		// The file is embedded at compile time; this cannot happen in a built binary.
		panic("similarity: embedded stopwords missing: " + err.Error())
	}
	words := make(map[string]bool)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w != "" {
			words[w] = true
		}
	}
	return words
}

// IsStopword reports whether the lowercase word is in the stopword list.
func IsStopword(word string) bool {
	return stopwords[word]
}

var nonToken = regexp.MustCompile(`[^a-z0-9\s-]`)

// Tokenize lowercases text, strips punctuation, splits hyphenated compounds,
// and drops single characters and stopwords.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ToLower(text)
	text = nonToken.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "-", " ")

	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 1 && !stopwords[w] {
			tokens = append(tokens, w)
		}
	}
	return tokens
}
