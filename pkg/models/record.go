package models

// Record is one scraped movie as persisted in a batch file.
// A nil field is written as JSON null.
type Record struct {
	TitleYear *string `json:"Movie Title and Year"`
	Script    *string `json:"Script Content"`
}

// NewRecord builds a record from a title-year and an optional transcript.
func NewRecord(titleYear, script *string) Record {
	return Record{TitleYear: titleYear, Script: script}
}
