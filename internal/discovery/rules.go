package discovery

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Mood is an exclusive, single-valued tone label.
type Mood string

const (
	MoodHappy       Mood = "happy"
	MoodFunny       Mood = "funny"
	MoodSad         Mood = "sad"
	MoodInspiring   Mood = "inspiring"
	MoodCalm        Mood = "calm"
	MoodEnergetic   Mood = "energetic"
	MoodRomantic    Mood = "romantic"
	MoodScary       Mood = "scary"
	MoodInformative Mood = "informative"
)

// Category is an exclusive, single-valued topical classification.
type Category string

const (
	CategoryMusic         Category = "music"
	CategoryGaming        Category = "gaming"
	CategoryCooking       Category = "cooking"
	CategoryFitness       Category = "fitness"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"
	CategoryTravel        Category = "travel"
	CategoryScience       Category = "science"
	CategoryNews          Category = "news"
	CategoryArt           Category = "art"
	CategoryEducation     Category = "education"
	CategoryComedy        Category = "comedy"
	CategoryEntertainment Category = "entertainment"
	CategoryLifestyle     Category = "lifestyle"
	CategoryOther         Category = "other"
)

// DurationCategory is a coarse length hint inferred from wording.
type DurationCategory string

const (
	DurationShort  DurationCategory = "short"
	DurationMedium DurationCategory = "medium"
	DurationLong   DurationCategory = "long"
)

var knownMoods = map[Mood]bool{
	MoodHappy: true, MoodFunny: true, MoodSad: true, MoodInspiring: true, MoodCalm: true,
	MoodEnergetic: true, MoodRomantic: true, MoodScary: true, MoodInformative: true,
}

var knownCategories = map[Category]bool{
	CategoryMusic: true, CategoryGaming: true, CategoryCooking: true, CategoryFitness: true,
	CategorySports: true, CategoryTechnology: true, CategoryTravel: true, CategoryScience: true,
	CategoryNews: true, CategoryArt: true, CategoryEducation: true, CategoryComedy: true,
	CategoryEntertainment: true, CategoryLifestyle: true, CategoryOther: true,
}

var knownDurations = map[DurationCategory]bool{
	DurationShort: true, DurationMedium: true, DurationLong: true,
}

// Rule maps a set of whole-word pattern alternatives to discovery metadata.
type Rule struct {
	Patterns []string         `yaml:"patterns"`
	Tags     []string         `yaml:"tags"`
	Mood     Mood             `yaml:"mood"`
	Category Category         `yaml:"category"`
	Duration DurationCategory `yaml:"duration"`

	re *regexp.Regexp
}

// Matches reports whether any pattern alternative occurs in text as a whole
// word, ignoring case.
func (r *Rule) Matches(text string) bool {
	return r.re.MatchString(text)
}

// RuleTable is an ordered, immutable list of rules. Order decides which rule
// wins the single-valued slots, so it must never be reordered after parsing.
type RuleTable struct {
	rules []Rule
}

// Len returns the number of rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

//go:embed rules.yaml
var defaultRulesYAML []byte

var defaultRules = sync.OnceValue(func() *RuleTable {
	t, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("discovery: embedded rule table: %v", err))
	}
	return t
})

// DefaultRules returns the process-wide rule table built from the embedded
// rules.yaml. It is parsed on first use and shared read-only afterwards.
func DefaultRules() *RuleTable {
	return defaultRules()
}

// LoadRules reads a YAML rule table from path.
func LoadRules(path string) (*RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule table: %w", err)
	}
	return ParseRules(data)
}

// ParseRules parses and validates a YAML sequence of rules and compiles their
// matchers.
func ParseRules(data []byte) (*RuleTable, error) {
	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse rule table: %w", err)
	}
	if len(rules) == 0 {
		return nil, errors.New("rule table is empty")
	}

	for i := range rules {
		if err := prepareRule(&rules[i]); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
	}
	return &RuleTable{rules: rules}, nil
}

func prepareRule(r *Rule) error {
	if len(r.Patterns) == 0 {
		return errors.New("no patterns")
	}
	alts := make([]string, 0, len(r.Patterns))
	for _, p := range r.Patterns {
		p = Normalize(p)
		if p == "" {
			return errors.New("blank pattern")
		}
		alts = append(alts, regexp.QuoteMeta(p))
	}
	for i, tag := range r.Tags {
		r.Tags[i] = Normalize(tag)
		if r.Tags[i] == "" {
			return errors.New("blank tag")
		}
	}

	if len(r.Tags) == 0 && r.Mood == "" && r.Category == "" && r.Duration == "" {
		return errors.New("rule sets no tags, mood, category or duration")
	}
	if r.Mood != "" && !knownMoods[r.Mood] {
		return fmt.Errorf("unknown mood %q", r.Mood)
	}
	if r.Category != "" && !knownCategories[r.Category] {
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if r.Duration != "" && !knownDurations[r.Duration] {
		return fmt.Errorf("unknown duration %q", r.Duration)
	}

	re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(alts, "|") + `)\b`)
	if err != nil {
		return fmt.Errorf("compile patterns: %w", err)
	}
	r.re = re
	return nil
}
