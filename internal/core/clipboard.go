package core

import "github.com/inovacc/stargazer/internal/model"

// ClipboardOp is the pending clipboard operation.
type ClipboardOp string

const (
	ClipboardCopy ClipboardOp = "copy"
	ClipboardCut  ClipboardOp = "cut"
)

// ClipboardItem is one held repo together with the operation it was staged
// under. For cut operations SourceFolderID records where the repo must be
// removed from on paste.
type ClipboardItem struct {
	Repo           *model.StarredRepo
	SourceFolderID string
	Op             ClipboardOp
}

// Clipboard stages repos for copy/cut/paste between folders. It holds at
// most one uniform batch at a time; staging a new batch replaces the
// previous one unconditionally. State lives only for the process lifetime.
type Clipboard struct {
	items []ClipboardItem
}

// NewClipboard returns an empty clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Copy stages repos for copying. sourceFolderID may be empty when the
// selection did not come from a folder.
func (c *Clipboard) Copy(repos []*model.StarredRepo, sourceFolderID string) {
	c.items = make([]ClipboardItem, 0, len(repos))
	for _, repo := range repos {
		c.items = append(c.items, ClipboardItem{
			Repo:           repo,
			SourceFolderID: sourceFolderID,
			Op:             ClipboardCopy,
		})
	}
}

// Cut stages repos for moving out of sourceFolderID. A cut without a known
// source folder is a caller error; the paste path falls back to copy when
// the source is empty.
func (c *Clipboard) Cut(repos []*model.StarredRepo, sourceFolderID string) {
	c.items = make([]ClipboardItem, 0, len(repos))
	for _, repo := range repos {
		c.items = append(c.items, ClipboardItem{
			Repo:           repo,
			SourceFolderID: sourceFolderID,
			Op:             ClipboardCut,
		})
	}
}

// Items returns the held batch without mutating clipboard state. Clearing
// after a cut paste is the paste caller's responsibility.
func (c *Clipboard) Items() []ClipboardItem {
	out := make([]ClipboardItem, len(c.items))
	copy(out, c.items)
	return out
}

// Clear empties the clipboard.
func (c *Clipboard) Clear() {
	c.items = nil
}

// IsEmpty reports whether the clipboard holds anything.
func (c *Clipboard) IsEmpty() bool {
	return len(c.items) == 0
}

// Count returns the number of held repos.
func (c *Clipboard) Count() int {
	return len(c.items)
}

// Operation returns the pending operation, or "" when empty. All items in
// a batch share the same operation.
func (c *Clipboard) Operation() ClipboardOp {
	if c.IsEmpty() {
		return ""
	}
	return c.items[0].Op
}

// ClipboardStatus is the read-only view handed to the UI and MCP layers.
type ClipboardStatus struct {
	Count     int         `json:"count"`
	Operation ClipboardOp `json:"operation,omitempty"`
	IsEmpty   bool        `json:"is_empty"`
}
