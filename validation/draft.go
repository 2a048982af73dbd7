package validation

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const DefaultDraft = "2020-12"

// DraftNames lists the accepted --draft values.
var DraftNames = []string{"4", "6", "7", "2019-09", "2020-12"}

var drafts = map[string]*jsonschema.Draft{
	"4":       jsonschema.Draft4,
	"6":       jsonschema.Draft6,
	"7":       jsonschema.Draft7,
	"2019-09": jsonschema.Draft2019,
	"2020-12": jsonschema.Draft2020,
}

// ParseDraft accepts "7", "draft7", "draft-07", "2020-12" and similar forms.
// An empty name selects DefaultDraft.
func ParseDraft(name string) (*jsonschema.Draft, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultDraft
	}

	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.TrimPrefix(normalized, "draft")
	normalized = strings.TrimPrefix(normalized, "-")
	normalized = strings.TrimLeft(normalized, "0")

	switch normalized {
	case "2019":
		normalized = "2019-09"
	case "2020":
		normalized = "2020-12"
	}

	draft, ok := drafts[normalized]

	if !ok {
		return nil, fmt.Errorf("Unknown draft %q, expected one of %s", name, strings.Join(DraftNames, ", "))
	}

	return draft, nil
}
