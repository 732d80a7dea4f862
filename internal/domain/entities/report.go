package entities

// Table is a rendered report section: localized headers and preformatted cells.
type Table struct {
	ID      string     `json:"id"`
	Caption string     `json:"caption"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Report is everything the index page shows.
type Report struct {
	Locale       string         `json:"locale"`
	Summary      CatalogSummary `json:"summary"`
	ContentTypes []Reference    `json:"content_types"`
	Countries    []Reference    `json:"countries"`
	Ratings      []Reference    `json:"ratings"`
	Tables       []Table        `json:"tables"`
}
