package intent

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Intent is the symbolic category of answer a question is asking for.
type Intent string

const (
	IntentCount        Intent = "COUNT"
	IntentWhy          Intent = "WHY"
	IntentDistribution Intent = "DISTRIBUTION"
	IntentTop          Intent = "TOP"
	IntentProblems     Intent = "PROBLEMS"
	IntentSummary      Intent = "SUMMARY"
	IntentGeneral      Intent = "GENERAL"
)

// rule is one entry of the ordered trigger table. Evaluation stops at the
// first rule whose trigger set matches, so the order below is load-bearing:
// root-cause questions ("why ... distribution of ...") must classify as WHY,
// not DISTRIBUTION.
type rule struct {
	intent   Intent
	triggers []string
}

var rules = []rule{
	{IntentCount, []string{"how many", "count", "number"}},
	{IntentWhy, []string{"why", "reason", "cause"}},
	{IntentDistribution, []string{"distribution", "breakdown", "split"}},
	{IntentTop, []string{"most", "top", "highest"}},
	{IntentProblems, []string{"problems", "facing"}},
	{IntentSummary, []string{"overview", "summary", "analyze"}},
}

type Classifier interface {
	Classify(question string) Intent
}

type keywordClassifier struct{}

// NewKeywordClassifier returns the fixed-rule lexical classifier. It is a
// total function: every input maps to exactly one intent, with GENERAL
// absorbing anything no trigger set matches.
func NewKeywordClassifier() Classifier {
	return &keywordClassifier{}
}

func (c *keywordClassifier) Classify(question string) Intent {
	q := strings.ToLower(question)

	for _, r := range rules {
		for _, trigger := range r.triggers {
			if strings.Contains(q, trigger) {
				log.Debug().Str("intent", string(r.intent)).Str("trigger", trigger).Msg("Question matched intent trigger")
				return r.intent
			}
		}
	}

	log.Debug().Str("question", question).Msg("No intent trigger matched, falling back to GENERAL")
	return IntentGeneral
}
