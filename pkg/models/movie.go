package models

// Movie represents a row of the local movie index
type Movie struct {
	ID         int
	Title      string
	Year       int
	TitleYear  string
	Script     string
	HasScript  bool
	SourceFile string
	Line       int
}
