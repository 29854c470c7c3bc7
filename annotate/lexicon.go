package annotate

// Closed-class word lists for coarse tagging. Open-class words fall back to
// NOUN, which is the dominant class in requirement prose and the only
// open-class tag the detectors rely on.

var pronouns = newSet(
	"i", "you", "he", "she", "it", "we", "they",
	"me", "him", "her", "us", "them",
	"this", "that", "these", "those",
	"itself", "themselves", "one", "ones", "something", "anything", "everything",
)

var determiners = newSet(
	"the", "a", "an", "some", "any", "each", "every", "no", "all", "both", "either", "neither",
)

var modals = newSet(
	"should", "could", "might", "may", "can", "must", "shall", "will", "would", "ought",
)

var prepositions = newSet(
	"on", "in", "at", "by", "with", "for", "of", "to", "from", "into", "onto",
	"under", "over", "within", "without", "before", "after", "during", "between",
	"through", "via", "per", "as",
)

var conjunctions = newSet(
	"and", "or", "but", "nor", "so", "yet", "if", "when", "while", "because",
	"although", "unless", "until", "then",
)

var writtenNumbers = newSet(
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "twenty", "fifty", "hundred", "thousand",
	"million",
)

// Common requirement-prose verbs, keyed by lemma. Anything that lemmatizes
// into this set is tagged VERB.
var verbs = newSet(
	"be", "have", "do", "go", "get", "make", "take", "give", "use",
	"load", "log", "sign", "click", "tap", "type", "select", "scroll", "hover",
	"handle", "work", "function", "behave", "perform", "process", "run",
	"display", "show", "render", "return", "respond", "send", "receive",
	"create", "add", "insert", "update", "edit", "modify", "delete", "remove",
	"save", "submit", "open", "close", "enter", "exit", "navigate", "access",
	"view", "see", "visit", "browse", "search", "filter", "sort", "find",
	"query", "verify", "check", "validate", "confirm", "ensure", "assert",
	"test", "upload", "download", "export", "import", "attach", "share",
	"notify", "configure", "set", "enable", "disable", "grant", "revoke",
	"fail", "crash", "recover", "retry", "redirect", "authenticate", "authorize",
	"appear", "disappear", "become", "turn", "contain", "include", "support", "require", "allow",
	"prevent", "accept", "reject", "complete", "start", "stop", "wait",
)

// Adjectives that matter for tagging quality terms; unknown words still
// default to NOUN, so this list only needs the common requirement qualifiers.
var adjectives = newSet(
	"fast", "slow", "quick", "rapid", "secure", "safe", "scalable", "optimal",
	"efficient", "user-friendly", "intuitive", "robust", "reliable", "stable",
	"flexible", "portable", "compatible", "accessible", "responsive", "smooth",
	"seamless", "clean", "proper", "correct", "appropriate", "adequate",
	"sufficient", "easy", "hard", "simple", "complex", "good", "bad", "valid",
	"invalid", "new", "old", "empty", "full", "large", "small", "available",
	"visible", "hidden", "active", "inactive", "successful",
)

// Irregular lemma forms that suffix stripping cannot recover.
var irregularLemmas = map[string]string{
	"is": "be", "are": "be", "was": "be", "were": "be", "been": "be",
	"being": "be", "am": "be",
	"has": "have", "had": "have", "having": "have",
	"does": "do", "did": "do", "done": "do", "doing": "do",
	"goes": "go", "went": "go", "gone": "go", "going": "go",
	"got": "get", "gotten": "get", "getting": "get",
	"made": "make", "making": "make",
	"took": "take", "taken": "take", "taking": "take",
	"gave": "give", "given": "give", "giving": "give",
	"ran": "run", "running": "run",
	"sent": "send", "sending": "send",
	"saw": "see", "seen": "see", "seeing": "see",
	"found": "find", "set": "set", "setting": "set",
	"logged": "log", "logging": "log",
	"men": "man", "women": "woman", "children": "child", "people": "person",
	"data": "data", "criteria": "criterion", "media": "media",
}

func newSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}
