package timeline

import (
	"fmt"
	"os"
	"strings"
)

// Rule maps one event code onto display text. Template placeholders use
// the ${field} form and are filled from the event payload.
type Rule struct {
	Code         string   `yaml:"code"`
	Template     string   `yaml:"template"`
	Category     Category `yaml:"category"`
	IconField    string   `yaml:"icon_field,omitempty"`
	RarityFields []string `yaml:"rarity_fields,omitempty"`
}

// Fallback picks a rule for an unknown code when the payload carries Field.
type Fallback struct {
	Field string
	Code  string
}

var DefaultFallbacks = []Fallback{
	{Field: FieldRaidName, Code: CodeRaidCleared},
	{Field: FieldDungeonName, Code: CodeDungeonCleared},
	{Field: FieldItemName, Code: CodeItemAcquired},
}

func DefaultRules() []Rule {
	return []Rule{
		{Code: CodeAdventureNameChanged, Template: "모험단명 변경: ${adventureName}", Category: Categories.Default},
		{Code: CodeGuildNameChanged, Template: "길드명 변경: ${guildName}", Category: Categories.Default},
		{Code: CodeJobChanged, Template: "전직: ${jobGrowName}", Category: Categories.JobGrow},
		{Code: CodeLevelUp, Template: "레벨 ${level} 달성", Category: Categories.Level},
		{Code: CodeRaidCleared, Template: "${raidName} 클리어", Category: Categories.Raid},
		{Code: CodeDungeonCleared, Template: "${dungeonName} 클리어", Category: Categories.Region},
		{
			Code:         CodeItemAcquired,
			Template:     "${itemName} 획득",
			Category:     Categories.Default,
			IconField:    FieldItemID,
			RarityFields: []string{FieldItemRarity, FieldItemGrade},
		},
		{Code: CodeChannelNote, Template: "채널 기록: ${channelName} ${channelNo}", Category: Categories.Default},
		{Code: CodeGuildJoined, Template: "길드 가입: ${guildName}", Category: Categories.Default},
		{Code: CodeGuildLeft, Template: "길드 탈퇴: ${guildName}", Category: Categories.Default},
	}
}

// Validate rejects rules without a code and templates that reference no
// payload field, since those would render the same text for every event.
func (r Rule) Validate() error {
	if strings.TrimSpace(r.Code) == "" || strings.TrimSpace(r.Template) == "" {
		return ErrInvalidRule
	}
	if len(r.Fields()) == 0 {
		return fmt.Errorf("%w: template %q has no ${field} placeholder", ErrInvalidRule, r.Template)
	}
	return nil
}

// Fields lists the payload keys referenced by the template.
func (r Rule) Fields() []string {
	fields := make([]string, 0)
	_ = os.Expand(r.Template, func(key string) string {
		fields = append(fields, key)
		return ""
	})
	return fields
}

// render fills the template. It returns "" when the template references
// payload fields and none of them is present.
func (r Rule) render(ev RawEvent) string {
	refs, found := 0, 0
	text := os.Expand(r.Template, func(key string) string {
		refs++
		v := ev.Field(key)
		if v != "" {
			found++
		}
		return v
	})
	if refs > 0 && found == 0 {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}
