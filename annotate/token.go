// Package annotate defines the linguistic annotation boundary of readyspec.
// The analysis engine consumes annotated tokens through the Annotator
// interface and never tokenizes raw text itself. Lexical is the built-in,
// deterministic implementation used when no external NLP service is wired in.
package annotate

// POS is a coarse part-of-speech tag. The tag set is deliberately small:
// detection rules only need to distinguish open-class nouns from pronouns,
// modals, and numbers.
type POS string

// Coarse part-of-speech tags emitted by annotators.
const (
	POSNoun        POS = "NOUN"
	POSVerb        POS = "VERB"
	POSAdjective   POS = "ADJ"
	POSAdverb      POS = "ADV"
	POSPronoun     POS = "PRON"
	POSDeterminer  POS = "DET"
	POSModal       POS = "MODAL"
	POSNumber      POS = "NUM"
	POSPreposition POS = "ADP"
	POSConjunction POS = "CONJ"
	POSOther       POS = "X"
)

// Token is a single annotated word. Spans are byte offsets into the original
// input string. Tokens are produced once per analysis and never mutated.
type Token struct {
	// Text is the surface form as it appears in the input.
	Text string

	// Lemma is the lower-cased base form.
	Lemma string

	// POS is the coarse part-of-speech tag.
	POS POS

	// Sentence is the zero-based sentence index.
	Sentence int

	// Start and End delimit the token in the input ([Start, End)).
	Start int
	End   int
}

// Annotator converts raw text into a sequence of annotated tokens.
// Implementations must be safe for concurrent use and deterministic:
// identical input yields identical tokens.
type Annotator interface {
	Annotate(text string) ([]Token, error)
}
