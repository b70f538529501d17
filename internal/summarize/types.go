package summarize

// Summary is a single model-produced summary item for a documentation page.
// The model contract returns an empty list for trivial changes and exactly
// one item otherwise. Header is "Overview" unless the model anchors the
// summary to a specific section of the page.
type Summary struct {
	Header  string `json:"header"`
	Summary string `json:"summary"`
}

// ChangeStatus is the git status letter of a changed documentation file.
type ChangeStatus string

const (
	// StatusAdded marks a newly added page.
	StatusAdded ChangeStatus = "A"
	// StatusModified marks an updated page.
	StatusModified ChangeStatus = "M"
	// StatusDeleted marks a removed page.
	StatusDeleted ChangeStatus = "D"
)

// ChangedFile is one parsed --files argument: a status letter and a
// repo-relative path.
type ChangedFile struct {
	Status ChangeStatus
	Path   string
}

// FileResult pairs a changed file with its model summaries and the raw
// diff/content that produced them.
type FileResult struct {
	File      ChangedFile
	Summaries []Summary
	Content   string
}
