package slack

import (
	"fmt"
	"strings"

	"github.com/secmon-lab/opsboard/pkg/analytics"
	"github.com/secmon-lab/opsboard/pkg/domain/model"
	"github.com/slack-go/slack"
)

// BuildDigestBlocks renders a dashboard as a Block Kit message. The returned
// text is the notification fallback.
func BuildDigestBlocks(title string, d *model.Dashboard) ([]slack.Block, string) {
	period := fmt.Sprintf("%s to %s",
		d.Filter.Start.Format(model.DateLayout),
		d.Filter.End.Format(model.DateLayout))

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, title, false, false)),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("Period: *%s*  |  SLA: *%s*", period, d.Filter.SLA.Normalize()), false, false),
		),
	}

	if d.Empty {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, d.Message, false, false), nil, nil))
		return blocks, fmt.Sprintf("%s: %s", title, d.Message)
	}

	k := d.KPIs
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Total Incidents*\n"+analytics.FormatCount(k.TotalIncidents), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*SLA Breach Rate*\n"+analytics.FormatPercent(k.SLABreachRate), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Avg Resolution*\n%.2f h", k.AvgResolutionHours), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Financial Impact*\n"+analytics.FormatUSDCents(k.TotalFinancialImpact), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Repeat Rate*\n"+analytics.FormatPercent(k.RepeatRate), false, false),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil), slack.NewDividerBlock())

	if len(d.Insights) > 0 {
		lines := make([]string, 0, len(d.Insights))
		for _, in := range d.Insights {
			lines = append(lines, "• "+in.Text)
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Insights*\n"+strings.Join(lines, "\n"), false, false), nil, nil))
	}

	if len(d.TopIncidents) > 0 {
		var b strings.Builder
		b.WriteString("*Top incidents by financial impact*\n")
		for _, x := range d.TopIncidents {
			fmt.Fprintf(&b, "`%s` %s %s / %s (%s) %s\n",
				x.ID, x.Date.Format(model.DateLayout), x.Category, x.Subsystem, x.Severity,
				analytics.FormatUSDCents(x.FinancialImpact))
		}
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, strings.TrimRight(b.String(), "\n"), false, false), nil, nil))
	}

	text := fmt.Sprintf("%s: %s incidents, SLA breach %s, impact %s",
		title,
		analytics.FormatCount(k.TotalIncidents),
		analytics.FormatPercent(k.SLABreachRate),
		analytics.FormatUSD(k.TotalFinancialImpact))
	return blocks, text
}
