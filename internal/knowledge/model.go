// Package knowledge holds the static reference data the chat assistant
// answers from and assembles it into a system prompt.
package knowledge

// EmploymentType separates the single current position from past ones.
type EmploymentType string

const (
	EmploymentCurrent EmploymentType = "current"
	EmploymentPast    EmploymentType = "past"
)

type Person struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
	Tagline  string `json:"tagline"`
}

type Experience struct {
	ID         int            `json:"id"`
	Role       string         `json:"role"`
	Company    string         `json:"company"`
	Location   string         `json:"location"`
	Period     string         `json:"period"`
	Type       EmploymentType `json:"type"`
	Highlights []string       `json:"highlights"`
	Skills     []string       `json:"skills"`
}

type Project struct {
	ID           int               `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Tags         []string          `json:"tags"`
	Achievements []string          `json:"achievements"`
	Role         string            `json:"role"`
	Category     string            `json:"category"`
	Featured     bool              `json:"featured"`
	Links        map[string]string `json:"links,omitempty"`
}

type Achievement struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Year         string `json:"year"`
}

// SkillCategory keeps skills grouped in display order.
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

type Education struct {
	Institution string   `json:"institution"`
	Degree      string   `json:"degree"`
	Location    string   `json:"location"`
	Period      string   `json:"period"`
	GPA         string   `json:"gpa"`
	Coursework  []string `json:"coursework"`
}

// Base is the complete, read-only knowledge base.
type Base struct {
	Person       Person
	Experiences  []Experience
	Projects     []Project
	Achievements []Achievement
	Skills       []SkillCategory
	Education    Education
}

// Current returns the current position, if any.
func (b Base) Current() (Experience, bool) {
	for _, exp := range b.Experiences {
		if exp.Type == EmploymentCurrent {
			return exp, true
		}
	}
	return Experience{}, false
}

// Past returns all past positions in their original order.
func (b Base) Past() []Experience {
	var past []Experience
	for _, exp := range b.Experiences {
		if exp.Type == EmploymentPast {
			past = append(past, exp)
		}
	}
	return past
}

// Featured returns the titles of featured projects.
func (b Base) Featured() []string {
	var titles []string
	for _, p := range b.Projects {
		if p.Featured {
			titles = append(titles, p.Title)
		}
	}
	return titles
}
