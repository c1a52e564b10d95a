package model

// Reserved entry keys, never used as field names.
const (
	KeySubmittedAt = "submitted_at"
	KeyUpdatedAt   = "updated_at"
)

type FieldDefinition struct {
	Name        string `yaml:"name" json:"name"`
	Label       string `yaml:"label" json:"label"`
	Type        string `yaml:"type" json:"type"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
}

// Summary is the projection of an entry shown as one listing row.
type Summary struct {
	Filename    string `json:"filename"`
	SubmittedAt string `json:"submitted_at"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type Page struct {
	Items      []Summary `json:"items"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	Total      int       `json:"total"`
	PageRange  []int     `json:"page_range"`
	Search     string    `json:"search,omitempty"`
}

func (p Page) HasPrev() bool { return p.Page > 1 }
func (p Page) HasNext() bool { return p.Page < p.TotalPages }
func (p Page) Prev() int     { return p.Page - 1 }
func (p Page) Next() int     { return p.Page + 1 }
