package app

import "github.com/charmbracelet/lipgloss/v2"

var (
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	groupLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("110"))
	projectStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	sessionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sessionMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
	selectedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	userBubbleStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	agentBubbleStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
	toolChipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	toolSummaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("251"))
	diffAddedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	diffRemovedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	diffContextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	diffNumberStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	matchStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("58")).Bold(true)
	badgeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	copyButtonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true).Underline(true)
	copiedButtonStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("70")).Bold(true)
	usageValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true)
	usageLabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tabStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tabActiveStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("239")).Bold(true)
)

func toolColorStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}
