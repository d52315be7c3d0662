package tags

import (
	"strings"

	"github.com/ecofinds/catalogue-service/internal/catalogue"
)

// rule maps a tag label to the phrases that evidence it. A label is assigned
// when the lowercased input contains any trigger phrase and none of the
// exclusion phrases.
type rule struct {
	label      string
	triggers   []string
	exclusions []string
}

// Rules are evaluated independently, so multiple labels may co-occur.
// Order matches the canonical presentation order of the labels.
var rules = []rule{
	{
		label:    catalogue.TagRecycled,
		triggers: []string{"recycled", "recycle", "post-consumer"},
	},
	{
		label:    catalogue.TagUpcycled,
		triggers: []string{"upcycled", "upcycle", "repurposed"},
	},
	{
		label:    catalogue.TagHandmade,
		triggers: []string{"handmade", "hand made", "hand-made", "handcrafted", "hand crafted"},
	},
	{
		label:    catalogue.TagOrganic,
		triggers: []string{"organic"},
		// "organic" as a shape or marketing metaphor, not a material claim.
		exclusions: []string{"organic growth", "organic shapes", "organic shape", "organic traffic"},
	},
}

// Classify scans free text and returns the sustainability labels it evidences,
// in canonical order, each at most once. An empty result is valid and common.
func Classify(text string) []string {
	lowered := strings.ToLower(text)

	var labels []string
	for _, r := range rules {
		if matches(lowered, r) {
			labels = append(labels, r.label)
		}
	}
	return labels
}

func matches(lowered string, r rule) bool {
	triggered := false
	for _, t := range r.triggers {
		if strings.Contains(lowered, t) {
			triggered = true
			break
		}
	}
	if !triggered {
		return false
	}
	for _, e := range r.exclusions {
		if strings.Contains(lowered, e) {
			return false
		}
	}
	return true
}
