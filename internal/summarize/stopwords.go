package summarize

// stopwords lists high-frequency English words excluded from sentence
// similarity so ranking is driven by content terms.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "have": true, "him": true, "his": true, "how": true,
	"its": true, "who": true, "with": true, "that": true, "this": true,
	"they": true, "them": true, "then": true, "than": true, "from": true,
	"were": true, "been": true, "their": true, "there": true, "these": true,
	"those": true, "will": true, "would": true, "could": true, "should": true,
	"what": true, "when": true, "where": true, "which": true, "while": true,
	"about": true, "after": true, "before": true, "into": true, "over": true,
	"under": true, "between": true, "because": true, "more": true, "most": true,
	"some": true, "such": true, "only": true, "other": true, "also": true,
	"said": true, "says": true, "being": true, "both": true, "each": true,
	"very": true, "just": true, "against": true, "during": true, "through": true,
}
