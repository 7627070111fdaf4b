package timeline

import (
	"fmt"
	"net/url"
	"strings"
)

const unknownEventText = "알 수 없는 이벤트"

// Normalizer turns raw upstream events into display events. It holds no
// mutable state, the same input always yields the same output.
type Normalizer struct {
	rules        map[string]Rule
	fallbacks    []Fallback
	imageBaseURL string
}

// NewNormalizer builds a normalizer over the default rule table. Rules given
// in overrides replace the default rule with the same code or add a new one.
func NewNormalizer(imageBaseURL string, overrides ...Rule) (*Normalizer, error) {
	rules := make(map[string]Rule)
	for _, r := range DefaultRules() {
		rules[r.Code] = r
	}
	for _, r := range overrides {
		if er := r.Validate(); er != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Code, er)
		}
		if r.Category == "" {
			r.Category = Categories.Default
		}
		rules[r.Code] = r
	}
	fallbacks := make([]Fallback, len(DefaultFallbacks))
	copy(fallbacks, DefaultFallbacks)
	return &Normalizer{
		rules:        rules,
		fallbacks:    fallbacks,
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
	}, nil
}

// Normalize renders ev. The boolean is false when the event renders to empty
// text and must not be shown.
func (n *Normalizer) Normalize(ev RawEvent) (DisplayEvent, bool) {
	rule, ok := n.rules[ev.Code.String()]
	if !ok {
		rule, ok = n.fallback(ev)
	}
	if !ok {
		return n.unknown(ev), true
	}

	text := rule.render(ev)
	if text == "" {
		return DisplayEvent{}, false
	}

	de := DisplayEvent{
		Code:     ev.Code,
		Name:     ev.Name,
		Text:     text,
		Category: rule.Category,
		Date:     ev.Date,
	}
	if rule.IconField != "" {
		if id := ev.Field(rule.IconField); id != "" {
			de.IconURL = n.ItemIconURL(id)
		}
	}
	for _, f := range rule.RarityFields {
		if rarity := ev.Field(f); rarity != "" {
			de.Category = Category(rarity)
			break
		}
	}
	return de, true
}

// NormalizeAll renders a page of events keeping upstream order and dropping
// the ones that render to nothing.
func (n *Normalizer) NormalizeAll(evs []RawEvent) []DisplayEvent {
	out := make([]DisplayEvent, 0, len(evs))
	for _, ev := range evs {
		if de, ok := n.Normalize(ev); ok {
			out = append(out, de)
		}
	}
	return out
}

func (n *Normalizer) ItemIconURL(itemID string) string {
	return n.imageBaseURL + "/items/" + url.PathEscape(itemID)
}

func (n *Normalizer) fallback(ev RawEvent) (Rule, bool) {
	for _, f := range n.fallbacks {
		if ev.Field(f.Field) == "" {
			continue
		}
		r, ok := n.rules[f.Code]
		if ok {
			return r, true
		}
	}
	return Rule{}, false
}

func (n *Normalizer) unknown(ev RawEvent) DisplayEvent {
	text := unknownEventText
	if ev.Code != "" {
		text = fmt.Sprintf("%s (%s)", unknownEventText, ev.Code)
	}
	return DisplayEvent{
		Code: ev.Code,
		Name: ev.Name,
		Text: text,
		Date: ev.Date,
	}
}
