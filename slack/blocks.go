package slack

import (
	"fmt"
	"strings"

	"github.com/warp/hours-sentinel/cadence"
	"github.com/warp/hours-sentinel/calendar"
	"github.com/warp/hours-sentinel/shortfall"
)

// =============================================================================
// BLOCK KIT RENDERING
// =============================================================================

// Block is one Block Kit element. Only the shapes this report needs.
type Block struct {
	Type string `json:"type"`
	Text *Text  `json:"text,omitempty"`
}

type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func headerBlock(s string) Block {
	return Block{Type: "header", Text: &Text{Type: "plain_text", Text: s}}
}

func sectionBlock(s string) Block {
	return Block{Type: "section", Text: &Text{Type: "mrkdwn", Text: s}}
}

// BuildReport renders the shortfall report for one cadence run.
//
// mentionByEmail maps lowercased roster emails to workspace member IDs;
// matched users are @-mentioned, unmatched ones fall back to their roster
// name. An empty record list produces an all-clear message.
func BuildReport(c cadence.Cadence, r calendar.Range, records []shortfall.Record, mentionByEmail map[string]string) []Block {
	title := fmt.Sprintf("Missing hours: %s check", c)

	if len(records) == 0 {
		return []Block{
			headerBlock(title),
			sectionBlock(fmt.Sprintf("Everyone logged their hours for %s. :tada:", describeRange(r))),
		}
	}

	var lines []string
	for _, rec := range records {
		name := rec.User.FullName()
		if id, ok := mentionByEmail[strings.ToLower(rec.User.Email)]; ok {
			name = fmt.Sprintf("<@%s>", id)
		}
		lines = append(lines, fmt.Sprintf("• %s logged *%sh* of *%sh* expected",
			name, rec.TotalHours.StringFixed(2), rec.ExpectedHours.StringFixed(2)))
	}

	return []Block{
		headerBlock(title),
		sectionBlock(fmt.Sprintf("These people are short on tracked hours for %s:", describeRange(r))),
		sectionBlock(strings.Join(lines, "\n")),
	}
}

// MemberIndex builds the email-to-ID map BuildReport consumes.
func MemberIndex(members []Member) map[string]string {
	idx := make(map[string]string, len(members))
	for _, m := range members {
		if m.Profile.Email != "" {
			idx[strings.ToLower(m.Profile.Email)] = m.ID
		}
	}
	return idx
}

func describeRange(r calendar.Range) string {
	if r.From.Equal(r.To) {
		return r.From.String()
	}
	return fmt.Sprintf("%s to %s", r.From, r.To)
}
