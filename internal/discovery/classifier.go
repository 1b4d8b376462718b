package discovery

// FallbackTagLimit caps the tags taken from raw tokens when no rule matched.
const FallbackTagLimit = 3

// minTokenLen is the rune length a token must exceed to become a tag.
const minTokenLen = 2

var fallbackStopwords = stopSet(
	"the", "and", "for", "with", "this", "that", "from", "are", "was", "you",
	"your", "our", "its", "how", "what", "why", "all", "new", "video", "videos",
	"watch", "show",
)

// Result is the classifier output. Empty Mood, Category or Duration means no
// rule set that slot.
type Result struct {
	Tags     []string         `json:"tags"`
	Mood     Mood             `json:"mood,omitempty"`
	Category Category         `json:"category,omitempty"`
	Duration DurationCategory `json:"durationCategory,omitempty"`
}

// Classifier matches text against an ordered rule table. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	table *RuleTable
}

// NewClassifier returns a classifier over table, or over DefaultRules when
// table is nil.
func NewClassifier(table *RuleTable) *Classifier {
	if table == nil {
		table = DefaultRules()
	}
	return &Classifier{table: table}
}

// Classify derives discovery metadata from free text. It never fails:
// unmatched or empty input yields fallback tokens or an empty result.
//
// Every rule is evaluated. Tags are the ordered union over all matching rules;
// Mood, Category and Duration come from the first matching rule that sets
// them, regardless of where in the text the later rules matched.
func (c *Classifier) Classify(text string) Result {
	res := Result{Tags: []string{}}
	text = Normalize(text)
	if text == "" {
		return res
	}

	seen := make(map[string]struct{})
	for i := range c.table.rules {
		r := &c.table.rules[i]
		if !r.Matches(text) {
			continue
		}
		res.Tags = appendUnique(res.Tags, seen, r.Tags...)
		if res.Mood == "" {
			res.Mood = r.Mood
		}
		if res.Category == "" {
			res.Category = r.Category
		}
		if res.Duration == "" {
			res.Duration = r.Duration
		}
	}

	if len(res.Tags) == 0 {
		res.Tags = appendUnique(res.Tags, seen, keywords(text, fallbackStopwords, minTokenLen, FallbackTagLimit)...)
	}
	return res
}
