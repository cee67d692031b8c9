package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"retrace/internal/types"
)

func (m *Model) viewUsageScreen() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Usage"))
	b.WriteString("  ")
	b.WriteString(badgeStyle.Render(m.prefs.Source))
	b.WriteString("  ")
	for _, window := range []int{7, 30, 90, 365} {
		label := fmt.Sprintf(" %dd ", window)
		if window == m.usageDays {
			b.WriteString(tabActiveStyle.Render(label))
		} else {
			b.WriteString(tabStyle.Render(label))
		}
	}
	if m.loading {
		b.WriteString("  ")
		b.WriteString(m.loader.View())
	}
	b.WriteString("\n\n")

	if m.usageSummary != nil {
		b.WriteString(renderUsageSummary(*m.usageSummary))
		b.WriteString("\n")
	}
	if m.usageDetail != nil {
		b.WriteString(renderUsageDetail(*m.usageDetail, m.usageDays))
	}

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("1-4 window · s source · r refresh · esc back"))
	return b.String()
}

func renderUsageSummary(summary types.UsageSummary) string {
	var b strings.Builder
	rows := []struct {
		label string
		usage types.TokenUsage
	}{
		{"Today", summary.Today},
		{"This month", summary.ThisMonth},
		{"All time", summary.Total},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s  %s tokens  %s\n",
			usageLabelStyle.Render(padDisplay(row.label, 11)),
			usageValueStyle.Render(formatTokens(row.usage.TotalTokens)),
			sessionMetaStyle.Render(formatCost(row.usage.CostUSD)),
		))
	}
	return b.String()
}

func renderUsageDetail(detail types.UsageDetail, days int) string {
	var b strings.Builder
	b.WriteString(groupLabelStyle.Render(fmt.Sprintf("Last %d days", days)))
	b.WriteString("\n")
	for _, day := range detail.DailyUsage {
		line := fmt.Sprintf("%s  %8s in  %8s out  %s",
			day.Date,
			formatTokens(day.InputTokens),
			formatTokens(day.OutputTokens),
			formatCostPrecise(day.CostUSD),
		)
		if len(day.Models) > 0 {
			names := make([]string, 0, len(day.Models))
			for _, model := range day.Models {
				names = append(names, modelDisplayName(model))
			}
			line += "  " + sessionMetaStyle.Render(strings.Join(names, ", "))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(detail.ByModel) > 0 {
		b.WriteString("\n")
		b.WriteString(groupLabelStyle.Render("By model"))
		b.WriteString("\n")
		models := make([]string, 0, len(detail.ByModel))
		for model := range detail.ByModel {
			models = append(models, model)
		}
		sort.Strings(models)
		for _, model := range models {
			usage := detail.ByModel[model]
			b.WriteString(fmt.Sprintf("%s %10s tokens  %s\n",
				padDisplay(modelDisplayName(model), 24),
				formatTokens(usage.TotalTokens),
				sessionMetaStyle.Render(formatCost(usage.CostUSD)),
			))
		}
	}
	return b.String()
}

// padDisplay pads by terminal cell width so wide runes keep columns aligned.
func padDisplay(s string, width int) string {
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// formatTokens renders counts as 1.2K / 3.45M above the unit thresholds.
func formatTokens(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

// formatCostPrecise keeps sub-cent amounts visible in the daily table.
func formatCostPrecise(cost float64) string {
	return fmt.Sprintf("$%.4f", cost)
}

func formatCost(cost float64) string {
	if cost <= 0 {
		return "$0.00"
	}
	if cost < 0.01 {
		return "<$0.01"
	}
	return fmt.Sprintf("$%.2f", cost)
}

// modelDisplayName shortens raw model identifiers like
// "claude-sonnet-4-20250514" to "Sonnet 4".
func modelDisplayName(model string) string {
	trimmed := strings.TrimSpace(model)
	if trimmed == "" {
		return "unknown"
	}
	lower := strings.ToLower(trimmed)
	for _, family := range []string{"opus", "sonnet", "haiku"} {
		idx := strings.Index(lower, family)
		if idx < 0 {
			continue
		}
		name := strings.ToUpper(family[:1]) + family[1:]
		rest := strings.TrimPrefix(lower[idx+len(family):], "-")
		version := rest
		if dash := strings.IndexByte(rest, '-'); dash >= 0 {
			version = rest[:dash]
		}
		if version != "" && !isDateLike(version) {
			name += " " + version
		}
		return name
	}
	return trimmed
}

// isDateLike reports whether a version segment is actually a date stamp
// such as 20250514.
func isDateLike(segment string) bool {
	if len(segment) != 8 {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
