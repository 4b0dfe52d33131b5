package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/cyberfolio/internal/profile"
	"github.com/san-kum/cyberfolio/internal/viz"
)

var sectionHeadings = map[string]string{
	"tech":         "TECH ARSENAL",
	"projects":     "PROJECT SHOWCASE",
	"experience":   "EXPERIENCE LOG",
	"certificates": "CERTIFICATE ARCHIVE",
}

// headingText is the scramble target for a section heading.
func headingText(item profile.NavItem) string {
	if h, ok := sectionHeadings[item.ID]; ok {
		return h
	}
	return item.Label
}

type renderCtx struct {
	st    viz.Styles
	p     *profile.Profile
	width int
}

func (r renderCtx) heading(icon, text string) string {
	return r.st.Title.Render(icon+" // ") + r.st.Heading.Render(text) + "\n" +
		viz.Separator(r.st.Theme, min(r.width, 72)) + "\n"
}

func (r renderCtx) hero(name, surname, title string) string {
	h := r.p.Hero
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + lipgloss.NewStyle().Bold(true).Render(viz.GradientText(name, r.st.Theme.Primary, r.st.Theme.Purple)) + "\n")
	b.WriteString("  " + r.st.Accent.Render(surname) + "\n\n")
	b.WriteString("  " + r.st.Muted.Render(title) + "\n\n")
	if h.Tagline != "" {
		b.WriteString("  " + r.st.Text.Render("> "+h.Tagline) + "\n")
	}
	var contact []string
	if h.Email != "" {
		contact = append(contact, "✉ "+h.Email)
	}
	if h.Location != "" {
		contact = append(contact, "⌖ "+h.Location)
	}
	if len(contact) > 0 {
		b.WriteString("  " + r.st.Muted.Render(strings.Join(contact, "  ·  ")) + "\n")
	}
	return b.String()
}

func (r renderCtx) tech() string {
	const cell = 14
	perRow := max(1, (r.width-2)/cell)

	var b strings.Builder
	for i, t := range r.p.Tech {
		if i%perRow == 0 {
			b.WriteString("  ")
		}
		name := t.Name
		if len(name) > cell-3 {
			name = name[:cell-3]
		}
		hex := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render("⬡ " + name)
		b.WriteString(hex + strings.Repeat(" ", cell-2-len([]rune(name))))
		if i%perRow == perRow-1 || i == len(r.p.Tech)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (r renderCtx) project() string {
	pr := r.p.Project
	inner := max(20, min(r.width, 76)-4)

	var body strings.Builder
	body.WriteString(lipgloss.NewStyle().Bold(true).Render(viz.GradientText(pr.Title, r.st.Theme.Purple, r.st.Theme.Primary)) + "\n")
	body.WriteString(r.st.Title.Render(pr.Subtitle) + "\n\n")
	body.WriteString(r.st.Text.Width(inner).Render(pr.Description) + "\n\n")

	tags := make([]string, len(pr.Stack))
	for i, s := range pr.Stack {
		tags[i] = r.st.Tag.Render(s)
	}
	body.WriteString(lipgloss.NewStyle().Width(inner).Render(strings.Join(tags, " ")))

	return r.st.Panel.Render(body.String()) + "\n"
}

func (r renderCtx) experience() string {
	var b strings.Builder
	for _, e := range r.p.Experience {
		kind := viz.Badge(fmt.Sprintf("%-5s", e.Type), viz.TypeColor(r.st.Theme, e.Type))
		status := viz.Badge(string(e.Status), viz.StatusColor(r.st.Theme, e.Status))
		b.WriteString(fmt.Sprintf("  %s %s %s\n", kind, r.st.Muted.Render(e.ID), status))
		b.WriteString(fmt.Sprintf("     %s %s %s\n",
			r.st.Heading.Render(e.Role),
			r.st.Muted.Render("@"),
			r.st.Text.Render(e.Organization)))
		b.WriteString("     " + r.st.Muted.Render(e.Period) + "\n")
	}
	return b.String()
}

func (r renderCtx) certificates() string {
	var b strings.Builder
	l := r.p.Legendary
	if l.ID != "" {
		inner := max(20, min(r.width, 76)-4)
		var body strings.Builder
		body.WriteString(viz.Badge(l.Tier, r.st.Theme.Accent) + " " + r.st.Accent.Render(l.Title) + "\n")
		body.WriteString(r.st.Muted.Render(l.Subtitle) + "\n\n")
		body.WriteString(r.st.Text.Width(inner).Render(l.Description) + "\n\n")
		for _, s := range l.Stats {
			body.WriteString(r.st.Tag.Render("✓ "+s) + " ")
		}
		b.WriteString(r.st.Legendary.Render(body.String()) + "\n\n")
	}

	for _, c := range r.p.Certificates {
		title := lipgloss.NewStyle().Foreground(viz.CertColor(c.Type)).Render(c.Title)
		b.WriteString(fmt.Sprintf("  %s %s %s\n", r.st.Muted.Render(c.ID), viz.RarityBadge(r.st.Theme, c.Rarity), title))
		b.WriteString("      " + r.st.Muted.Render(c.Issuer+" · "+string(c.Type)) + "\n")
	}

	counts := r.p.CountByRarity()
	b.WriteString(fmt.Sprintf("\n  %s %d  %s %d  %s %d\n",
		r.st.Muted.Render("TOTAL"), len(r.p.Certificates),
		viz.RarityBadge(r.st.Theme, profile.RarityEpic), counts[profile.RarityEpic],
		viz.RarityBadge(r.st.Theme, profile.RarityRare), counts[profile.RarityRare]))
	return b.String()
}

// body renders the content of a section below its heading.
func (r renderCtx) body(id string) string {
	switch id {
	case "tech":
		return r.tech()
	case "projects":
		return r.project()
	case "experience":
		return r.experience()
	case "certificates":
		return r.certificates()
	}
	return ""
}
