package knowledge

import (
	"fmt"
	"strings"
)

// AssistantName is the persona the chat widget presents.
const AssistantName = "Abel"

// pastHighlights is how many highlights each past position contributes.
const pastHighlights = 2

// BuildSystemPrompt assembles the system prompt from b. The output depends
// only on b, so callers rebuild it per request.
func BuildSystemPrompt(b Base) string {
	p := b.Person
	first := firstName(p.Name)

	var sb strings.Builder

	fmt.Fprintf(&sb, "You are %s, a friendly AI assistant on %s's portfolio website. Help visitors learn about %s in a warm, conversational way.\n\n",
		AssistantName, p.Name, first)

	sb.WriteString("## YOUR PERSONALITY:\n")
	sb.WriteString("- Friendly and helpful\n")
	sb.WriteString("- Conversational, not robotic\n")
	fmt.Fprintf(&sb, "- Proud to share %s's achievements\n", first)
	fmt.Fprintf(&sb, "- Encouraging visitors to connect with %s\n\n", first)

	sb.WriteString("## GUIDELINES:\n")
	fmt.Fprintf(&sb, "1. Answer questions about %s naturally - his work, projects, skills, background, etc.\n", first)
	sb.WriteString("2. Be flexible with how questions are asked (typos, casual language, etc.)\n")
	sb.WriteString("3. Keep responses concise (2-4 sentences) but informative\n")
	fmt.Fprintf(&sb, "4. For completely unrelated topics (like cooking recipes, movie reviews, etc.), gently redirect to %s-related topics\n", first)
	fmt.Fprintf(&sb, "5. You can have light small talk but always bring it back to %s\n\n", first)

	sb.WriteString("## COMMON QUESTIONS TO HANDLE WELL:\n")
	fmt.Fprintf(&sb, "- \"Where does %s work?\" → Tell about his CURRENT job from the Current Employment section\n", first)
	fmt.Fprintf(&sb, "- \"What does he do?\" → Explain he's an %s\n", p.Title)
	if featured := b.Featured(); len(featured) > 0 {
		fmt.Fprintf(&sb, "- \"What are his projects?\" → Highlight %s, etc.\n", strings.Join(featured, ", "))
	}
	sb.WriteString("- \"How to contact?\" → Share email and LinkedIn\n")
	if names := categoryNames(b.Skills); len(names) > 0 {
		fmt.Fprintf(&sb, "- \"What skills?\" → List his %s skills\n", joinAnd(names))
	}
	sb.WriteString("\n---\n\n")

	fmt.Fprintf(&sb, "## %s'S INFORMATION:\n\n", strings.ToUpper(first))

	sb.WriteString("### Basic Info\n")
	fmt.Fprintf(&sb, "- Name: %s\n", p.Name)
	fmt.Fprintf(&sb, "- Title: %s\n", p.Title)
	fmt.Fprintf(&sb, "- Location: %s\n", p.Location)
	fmt.Fprintf(&sb, "- Email: %s\n", p.Email)
	fmt.Fprintf(&sb, "- LinkedIn: %s\n", p.LinkedIn)
	fmt.Fprintf(&sb, "- GitHub: %s\n", p.GitHub)
	fmt.Fprintf(&sb, "- Bio: %s\n\n", p.Bio)

	e := b.Education
	sb.WriteString("### Education\n")
	fmt.Fprintf(&sb, "- %s - %s\n", e.Institution, e.Degree)
	fmt.Fprintf(&sb, "- Period: %s\n", e.Period)
	fmt.Fprintf(&sb, "- GPA: %s\n", e.GPA)
	fmt.Fprintf(&sb, "- Coursework: %s\n\n", strings.Join(e.Coursework, ", "))

	sb.WriteString("### Current Employment\n")
	sb.WriteString(currentSection(b))
	sb.WriteString("\n\n")

	sb.WriteString("### Past Experience\n")
	sb.WriteString(pastSection(b))
	sb.WriteString("\n\n")

	sb.WriteString("### Projects\n")
	sb.WriteString(projectSection(b))
	sb.WriteString("\n\n")

	sb.WriteString("### Achievements\n")
	sb.WriteString(achievementSection(b))
	sb.WriteString("\n\n")

	sb.WriteString("### Skills\n")
	sb.WriteString(skillSection(b))
	sb.WriteString("\n\n---\n\n")

	sb.WriteString("## RESPONSE STYLE:\n")
	sb.WriteString("- Be natural and conversational\n")
	sb.WriteString("- Use simple, clear language\n")
	sb.WriteString("- Share specific details when relevant (company names, project achievements, etc.)\n")
	fmt.Fprintf(&sb, "- For hiring/collaboration, share: Email (%s) or LinkedIn (%s)\n", p.Email, p.LinkedIn)
	sb.WriteString("- Feel free to ask follow-up questions to help visitors find what they need")

	return sb.String()
}

func currentSection(b Base) string {
	cur, ok := b.Current()
	if !ok {
		return ""
	}
	lines := []string{
		fmt.Sprintf("**CURRENT POSITION (%s):**", cur.Period),
		"- Role: " + cur.Role,
		"- Company: " + cur.Company,
		"- Location: " + cur.Location,
		"- Key accomplishments: " + strings.Join(cur.Highlights, "; "),
	}
	return strings.Join(lines, "\n")
}

func pastSection(b Base) string {
	past := b.Past()
	lines := make([]string, 0, len(past))
	for _, exp := range past {
		highlights := exp.Highlights
		if len(highlights) > pastHighlights {
			highlights = highlights[:pastHighlights]
		}
		lines = append(lines, fmt.Sprintf("- %s at %s (%s): %s",
			exp.Role, exp.Company, exp.Period, strings.Join(highlights, "; ")))
	}
	return strings.Join(lines, "\n")
}

func projectSection(b Base) string {
	lines := make([]string, 0, len(b.Projects))
	for _, proj := range b.Projects {
		line := fmt.Sprintf("- %s (%s): %s", proj.Title, proj.Role, proj.Description)
		if len(proj.Achievements) > 0 {
			line += " Achievements: " + strings.Join(proj.Achievements, ", ")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func achievementSection(b Base) string {
	lines := make([]string, 0, len(b.Achievements))
	for _, ach := range b.Achievements {
		lines = append(lines, fmt.Sprintf("- %s from %s (%s)", ach.Title, ach.Organization, ach.Year))
	}
	return strings.Join(lines, "\n")
}

func skillSection(b Base) string {
	lines := make([]string, 0, len(b.Skills))
	for _, cat := range b.Skills {
		lines = append(lines, fmt.Sprintf("%s: %s", cat.Name, strings.Join(cat.Skills, ", ")))
	}
	return strings.Join(lines, "\n")
}

func categoryNames(cats []SkillCategory) []string {
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}

func firstName(full string) string {
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i]
	}
	return full
}
