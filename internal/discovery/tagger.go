package discovery

// KeywordLimit caps the keyword tokens extracted alongside the classifier tags.
const KeywordLimit = 10

var keywordStopwords = stopSet(
	"the", "and", "for", "with", "this", "that", "from", "your", "you", "are",
	"was", "have",
)

// Tagger combines classifier output with plain keyword extraction to produce
// the discovery metadata stored on a video.
type Tagger struct {
	classifier *Classifier
}

// NewTagger returns a Tagger backed by c.
func NewTagger(c *Classifier) *Tagger {
	return &Tagger{classifier: c}
}

// Tagging is the full discovery metadata for a title/description pair.
type Tagging struct {
	Tags     []string         `json:"tags"`
	Mood     Mood             `json:"mood,omitempty"`
	Category Category         `json:"category"`
	Duration DurationCategory `json:"durationCategory,omitempty"`
}

// Tag classifies title and description once and returns all metadata.
// Category is CategoryOther when no rule set one.
func (t *Tagger) Tag(title, description string) Tagging {
	text := Normalize(title + " " + description)
	res := t.classifier.Classify(text)

	tags := make([]string, 0, len(res.Tags)+KeywordLimit)
	seen := make(map[string]struct{}, cap(tags))
	tags = appendUnique(tags, seen, res.Tags...)
	tags = appendUnique(tags, seen, keywords(text, keywordStopwords, minTokenLen, KeywordLimit)...)

	category := res.Category
	if category == "" {
		category = CategoryOther
	}
	return Tagging{
		Tags:     tags,
		Mood:     res.Mood,
		Category: category,
		Duration: res.Duration,
	}
}

// GenerateTags returns classifier tags followed by keyword tokens, without
// duplicates.
func (t *Tagger) GenerateTags(title, description string) []string {
	return t.Tag(title, description).Tags
}

// DetectMood returns the classifier mood, or "" when none was detected.
func (t *Tagger) DetectMood(title, description string) Mood {
	return t.classifier.Classify(title + " " + description).Mood
}

// DetectCategory returns the classifier category, defaulting to CategoryOther.
func (t *Tagger) DetectCategory(title, description string) Category {
	if c := t.classifier.Classify(title + " " + description).Category; c != "" {
		return c
	}
	return CategoryOther
}
