package domain

import "regscope/internal/sortfilter"

// Agency represents a government agency and its regulation statistics
type Agency struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Slug         string  `json:"slug" yaml:"slug"`
	WordCount    int     `json:"word_count" yaml:"word_count"`
	Sections     int     `json:"sections" yaml:"sections"`
	SnapshotDate *string `json:"snapshot_date" yaml:"snapshot_date"`
	CreatedAt    string  `json:"created_at" yaml:"created_at"`
	UpdatedAt    string  `json:"updated_at" yaml:"updated_at"`
}

// SortKeys exposes the fields the list views search and sort on
func (a Agency) SortKeys() sortfilter.Keys {
	return sortfilter.Keys{
		Name:      a.Name,
		WordCount: a.WordCount,
		Sections:  a.Sections,
	}
}

// AgencyDetail is an agency together with its child agencies
type AgencyDetail struct {
	Agency   Agency   `json:"agency" yaml:"agency"`
	Children []Agency `json:"children" yaml:"children"`
}

// CorrectionCount is the number of corrections published in a year
type CorrectionCount struct {
	Year        int `json:"year" yaml:"year"`
	Corrections int `json:"corrections" yaml:"corrections"`
}

// TotalStatistics are aggregate counts across all agencies
type TotalStatistics struct {
	TotalAgencies int `json:"total_agencies" yaml:"total_agencies"`
	TotalSections int `json:"total_sections" yaml:"total_sections"`
	TotalWords    int `json:"total_words" yaml:"total_words"`
}

// Analytics combines the data shown on the analytics screen
type Analytics struct {
	Totals      TotalStatistics   `json:"totals" yaml:"totals"`
	Corrections []CorrectionCount `json:"corrections" yaml:"corrections"`
}

// ViewToken identifies one mounted view. Results carrying a token that no
// longer matches the mounted view are discarded.
type ViewToken uint64
