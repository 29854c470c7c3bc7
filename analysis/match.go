package analysis

import (
	"strings"

	"github.com/c360studio/readyspec/annotate"
	"github.com/c360studio/readyspec/catalog"
)

// span is one trigger match: its byte range in the source text, the matched
// text, the sentence it starts in, and the index of its first token.
type span struct {
	start, end int
	text       string
	sentence   int
	firstToken int
}

// matchTrigger runs one trigger against the token sequence (and, for regex
// triggers, the raw text) and returns every match in source order.
func matchTrigger(text string, tokens []annotate.Token, trg catalog.Trigger) []span {
	switch trg.Kind {
	case catalog.TriggerLemma:
		return matchLemmas(tokens, trg.Lemmas)
	case catalog.TriggerLiteral:
		return matchLiterals(tokens, trg.Literals)
	case catalog.TriggerPhrase:
		return matchPhrases(tokens, trg.Phrases)
	case catalog.TriggerRegex:
		return matchRegex(text, tokens, trg)
	case catalog.TriggerQuantifier:
		return matchQuantifier(tokens, trg.Lemmas)
	default:
		return nil
	}
}

func matchLemmas(tokens []annotate.Token, lemmas []string) []span {
	set := toSet(lemmas)
	var out []span
	for i, tok := range tokens {
		if _, ok := set[tok.Lemma]; ok {
			out = append(out, tokenSpan(tokens, i, i))
		}
	}
	return out
}

// matchLiterals matches lower-cased surface forms; multiword literals match
// consecutive tokens.
func matchLiterals(tokens []annotate.Token, literals []string) []span {
	var sequences [][]string
	for _, lit := range literals {
		if fields := strings.Fields(lit); len(fields) > 0 {
			sequences = append(sequences, fields)
		}
	}

	var out []span
	for i := range tokens {
		for _, seq := range sequences {
			if surfaceMatch(tokens, i, seq) {
				out = append(out, tokenSpan(tokens, i, i+len(seq)-1))
			}
		}
	}
	return out
}

func surfaceMatch(tokens []annotate.Token, at int, seq []string) bool {
	if at+len(seq) > len(tokens) {
		return false
	}
	for k, want := range seq {
		tok := tokens[at+k]
		if tok.Sentence != tokens[at].Sentence || strings.ToLower(tok.Text) != want {
			return false
		}
	}
	return true
}

// matchPhrases matches contiguous lemma sequences within one sentence, which
// makes the match tolerant of inflection ("handles errors properly").
func matchPhrases(tokens []annotate.Token, phrases [][]string) []span {
	var out []span
	for i := range tokens {
		for _, phrase := range phrases {
			if lemmaMatch(tokens, i, phrase) {
				out = append(out, tokenSpan(tokens, i, i+len(phrase)-1))
			}
		}
	}
	return out
}

func lemmaMatch(tokens []annotate.Token, at int, phrase []string) bool {
	if at+len(phrase) > len(tokens) {
		return false
	}
	for k, want := range phrase {
		tok := tokens[at+k]
		if tok.Sentence != tokens[at].Sentence || tok.Lemma != want {
			return false
		}
	}
	return true
}

func matchRegex(text string, tokens []annotate.Token, trg catalog.Trigger) []span {
	if trg.Pattern == nil {
		return nil
	}
	var out []span
	for _, loc := range trg.Pattern.FindAllStringIndex(text, -1) {
		s := span{start: loc[0], end: loc[1], text: text[loc[0]:loc[1]]}
		s.firstToken, s.sentence = locateToken(tokens, loc[0])
		out = append(out, s)
	}
	return out
}

// matchQuantifier matches a number token immediately followed by a unit lemma
// in the same sentence ("2 seconds", "99.9 percent").
func matchQuantifier(tokens []annotate.Token, units []string) []span {
	set := toSet(units)
	var out []span
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].POS != annotate.POSNumber {
			continue
		}
		next := tokens[i+1]
		if next.Sentence != tokens[i].Sentence {
			continue
		}
		if _, ok := set[next.Lemma]; ok {
			out = append(out, tokenSpan(tokens, i, i+1))
		}
	}
	return out
}

// satisfied reports whether a satisfier match suppresses the trigger match:
// within the same sentence for ScopeSentence, or strictly earlier in the
// token stream for ScopeBefore.
func satisfied(text string, tokens []annotate.Token, rule catalog.Rule, match span) bool {
	if rule.Satisfier == nil {
		return false
	}
	for _, s := range matchTrigger(text, tokens, *rule.Satisfier) {
		switch rule.SatisfierScope {
		case catalog.ScopeSentence:
			if s.sentence == match.sentence {
				return true
			}
		case catalog.ScopeBefore:
			if s.start < match.start {
				return true
			}
		}
	}
	return false
}

// tokenSpan builds a span covering tokens[first..last], taking the matched
// text from the token surfaces' byte range.
func tokenSpan(tokens []annotate.Token, first, last int) span {
	return span{
		start:      tokens[first].Start,
		end:        tokens[last].End,
		text:       textBetween(tokens, first, last),
		sentence:   tokens[first].Sentence,
		firstToken: first,
	}
}

func textBetween(tokens []annotate.Token, first, last int) string {
	if first == last {
		return tokens[first].Text
	}
	parts := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		parts = append(parts, tokens[i].Text)
	}
	return strings.Join(parts, " ")
}

// locateToken finds the first token at or after a byte offset and returns its
// index and sentence. Regex matches between tokens inherit the following
// token's sentence.
func locateToken(tokens []annotate.Token, offset int) (index, sentence int) {
	for i, tok := range tokens {
		if tok.End > offset {
			return i, tok.Sentence
		}
	}
	if n := len(tokens); n > 0 {
		return n - 1, tokens[n-1].Sentence
	}
	return 0, 0
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
