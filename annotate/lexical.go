package annotate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidEncoding is returned when input is not valid UTF-8. The engine
// treats this as a terminal annotator failure.
var ErrInvalidEncoding = fmt.Errorf("input is not valid UTF-8")

// Lexical is a rule-based English annotator: sentence splitting on terminal
// punctuation and blank lines, word tokenization, suffix/irregular-form
// lemmatization, and closed-class coarse POS tagging. It holds no state and
// is safe for concurrent use.
//
// It deliberately stops far short of real NLP — unknown words default to
// NOUN, which is accurate enough for the lexical heuristics the detectors
// run. A spaCy-grade annotator can replace it behind the Annotator interface
// without touching the engine.
type Lexical struct{}

// NewLexical creates the built-in rule-based annotator.
func NewLexical() *Lexical {
	return &Lexical{}
}

// Annotate splits text into sentences and word tokens with lemma, coarse POS,
// sentence index, and byte spans. Empty or whitespace-only input yields an
// empty token sequence and no error.
func (l *Lexical) Annotate(text string) ([]Token, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidEncoding
	}

	var tokens []Token
	sentence := 0
	sawToken := false

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])

		switch {
		case isWordRune(r):
			start := i
			prev := utf8.RuneError
			for i < len(text) {
				r2, size2 := utf8.DecodeRuneInString(text[i:])
				if r2 == '.' && unicode.IsDigit(prev) {
					// Keep decimals ("2.5") as one token instead of
					// treating the dot as a sentence boundary.
					next, _ := utf8.DecodeRuneInString(text[i+size2:])
					if unicode.IsDigit(next) {
						prev = r2
						i += size2
						continue
					}
				}
				if !isWordRune(r2) {
					break
				}
				prev = r2
				i += size2
			}
			surface := trimWordEdges(text[start:i])
			if surface != "" {
				tokens = append(tokens, l.token(surface, sentence, start))
				sawToken = true
			}

		case isSentenceTerminator(r):
			i += size
			// Consume runs of terminators ("?!", "...").
			for i < len(text) {
				r2, size2 := utf8.DecodeRuneInString(text[i:])
				if !isSentenceTerminator(r2) {
					break
				}
				i += size2
			}
			if sawToken {
				sentence++
				sawToken = false
			}

		case r == '\n':
			i += size
			if sawToken {
				sentence++
				sawToken = false
			}

		default:
			i += size
		}
	}

	return tokens, nil
}

func (l *Lexical) token(surface string, sentence, start int) Token {
	lower := strings.ToLower(surface)
	lemma := Lemma(lower)
	return Token{
		Text:     surface,
		Lemma:    lemma,
		POS:      tag(lower, lemma),
		Sentence: sentence,
		Start:    start,
		End:      start + len(surface),
	}
}

// tag assigns a coarse POS from closed-class lists, falling back to NOUN.
func tag(lower, lemma string) POS {
	switch {
	case isNumeric(lower):
		return POSNumber
	case contains(modals, lower):
		return POSModal
	case contains(pronouns, lower):
		return POSPronoun
	case contains(determiners, lower):
		return POSDeterminer
	case contains(prepositions, lower):
		return POSPreposition
	case contains(conjunctions, lower):
		return POSConjunction
	case contains(writtenNumbers, lower):
		return POSNumber
	case contains(adjectives, lemma):
		return POSAdjective
	case contains(verbs, lemma):
		return POSVerb
	case strings.HasSuffix(lower, "ly") && len(lower) > 3:
		return POSAdverb
	default:
		return POSNoun
	}
}

// Lemma reduces a lower-cased word to its base form using an irregular-form
// table plus conservative suffix stripping. It never invents forms: when no
// rule applies the word is its own lemma.
func Lemma(lower string) string {
	if base, ok := irregularLemmas[lower]; ok {
		return base
	}

	switch {
	case strings.HasSuffix(lower, "ies") && len(lower) > 4:
		return lower[:len(lower)-3] + "y"
	case strings.HasSuffix(lower, "sses"):
		return lower[:len(lower)-2]
	case strings.HasSuffix(lower, "shes"), strings.HasSuffix(lower, "ches"),
		strings.HasSuffix(lower, "xes"), strings.HasSuffix(lower, "zes"):
		return lower[:len(lower)-2]
	case strings.HasSuffix(lower, "ss"), strings.HasSuffix(lower, "us"),
		strings.HasSuffix(lower, "is"):
		return lower
	case strings.HasSuffix(lower, "ing") && len(lower) > 5:
		return restoreStem(lower[:len(lower)-3])
	case strings.HasSuffix(lower, "ied") && len(lower) > 4:
		return lower[:len(lower)-3] + "y"
	case strings.HasSuffix(lower, "ed") && len(lower) > 4:
		return restoreStem(lower[:len(lower)-2])
	case strings.HasSuffix(lower, "s") && len(lower) > 3:
		return lower[:len(lower)-1]
	default:
		return lower
	}
}

// restoreStem repairs stems mangled by -ing/-ed stripping: doubled final
// consonants are undoubled (submitt -> submit) and a dropped final "e" is
// restored when that produces a known verb (handl -> handle).
func restoreStem(stem string) string {
	if len(stem) >= 2 && stem[len(stem)-1] == stem[len(stem)-2] && !isVowelByte(stem[len(stem)-1]) {
		undoubled := stem[:len(stem)-1]
		if contains(verbs, undoubled) {
			return undoubled
		}
	}
	if contains(verbs, stem) {
		return stem
	}
	if withE := stem + "e"; contains(verbs, withE) {
		return withE
	}
	return stem
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '\'' || r == '’'
}

// trimWordEdges removes hyphens/apostrophes left dangling at token edges
// ("--option" scans as "--option" before trimming).
func trimWordEdges(s string) string {
	return strings.Trim(s, "-'’")
}

func isSentenceTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == ';'
}

func isNumeric(s string) bool {
	digit := false
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case r == '.' || r == ',' || r == '-':
		default:
			return false
		}
	}
	return digit
}

func isVowelByte(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func contains(set map[string]struct{}, w string) bool {
	_, ok := set[w]
	return ok
}
