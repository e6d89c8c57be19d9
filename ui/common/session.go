package common

// SessionState selects which top-level view the main model shows.
type SessionState uint

const (
	ReaderView SessionState = iota
	AdminPanelView
	CompletionView
)

// DataChangedMsg tells every view to reload from the catalog, e.g. after an
// admin edit or a reset.
type DataChangedMsg struct{}

// PageSelectedMsg switches the reader to another page.
type PageSelectedMsg struct {
	PageId int
}

// CompletedMsg is sent by the reader when every visible block is read.
type CompletedMsg struct{}

// ResetProgressMsg clears reading progress after the completion dialog.
type ResetProgressMsg struct{}
