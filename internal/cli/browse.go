// Package cli contains the bubbletea terminal interface. It is a thin
// presentation layer: every mutation goes through the core services.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/stargazer/internal/core"
	"github.com/inovacc/stargazer/internal/model"
)

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	activeStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62"))
	inactiveStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type pane int

const (
	paneFolders pane = iota
	paneRepos
)

// Messages produced by background commands. Remote loads run inside
// tea.Cmd goroutines so the event loop never blocks on network I/O.
type (
	foldersLoadedMsg struct{ folders []*model.VirtualFolder }
	reposLoadedMsg   struct {
		folderID string
		repos    []*model.StarredRepo
	}
	refreshDoneMsg struct{ count int }
	pastedMsg      struct{ count int }
	errMsg         struct{ err error }
)

// BrowseModel is the two-pane folder/repo browser.
type BrowseModel struct {
	loader  *core.DataLoader
	folders *core.FolderService
	keys    KeyMap

	folderList list.Model
	repoList   list.Model
	active     pane

	currentFolderID string
	status          string
	err             error
	quitting        bool
}

// NewBrowse builds the browser around the shared services. keys is the
// keybinding registry constructed at startup.
func NewBrowse(loader *core.DataLoader, folders *core.FolderService, keys KeyMap) BrowseModel {
	fl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	fl.Title = "Folders"
	fl.SetShowHelp(false)

	rl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	rl.Title = "Repositories"
	rl.SetFilteringEnabled(true)

	return BrowseModel{
		loader:     loader,
		folders:    folders,
		keys:       keys,
		folderList: fl,
		repoList:   rl,
		active:     paneFolders,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(false), m.loadFoldersCmd())
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		width := (msg.Width - h) / 2
		height := msg.Height - v - 2
		m.folderList.SetSize(width-2, height)
		m.repoList.SetSize(width-2, height)

		return m, nil

	case foldersLoadedMsg:
		items := make([]list.Item, len(msg.folders))
		for i, folder := range msg.folders {
			items[i] = folderItem{folder: folder}
		}
		m.folderList.SetItems(items)

		if m.currentFolderID == "" && len(msg.folders) > 0 {
			m.currentFolderID = msg.folders[0].ID
			return m, m.loadReposCmd(m.currentFolderID)
		}

		return m, nil

	case reposLoadedMsg:
		items := make([]list.Item, len(msg.repos))
		for i, repo := range msg.repos {
			items[i] = repoItem{repo: repo}
		}
		m.currentFolderID = msg.folderID
		m.repoList.SetItems(items)

		return m, nil

	case refreshDoneMsg:
		m.status = fmt.Sprintf("%d starred repos", msg.count)

		return m, tea.Batch(m.loadFoldersCmd(), m.reloadCurrentCmd())

	case pastedMsg:
		m.status = fmt.Sprintf("pasted %d repo(s)", msg.count)

		return m, tea.Batch(m.loadFoldersCmd(), m.reloadCurrentCmd())

	case errMsg:
		m.err = msg.err

		return m, nil

	case tea.KeyMsg:
		// While filtering, keys belong to the list
		if m.active == paneRepos && m.repoList.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true

			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			if m.active == paneFolders {
				m.active = paneRepos
			} else {
				m.active = paneFolders
			}

			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.status = "refreshing from github..."

			return m, m.refreshCmd(true)

		case key.Matches(msg, m.keys.Copy):
			return m.stageClipboard(core.ClipboardCopy)

		case key.Matches(msg, m.keys.Cut):
			return m.stageClipboard(core.ClipboardCut)

		case key.Matches(msg, m.keys.Paste):
			return m.pasteIntoSelected()

		case key.Matches(msg, m.keys.ClearClip):
			m.folders.ClipboardClear()
			m.status = "clipboard cleared"

			return m, nil

		case key.Matches(msg, m.keys.Remove):
			return m.removeSelected()

		case key.Matches(msg, m.keys.Categorize):
			return m, m.categorizeCmd()
		}

		if m.active == paneFolders && msg.String() == "enter" {
			if item, ok := m.folderList.SelectedItem().(folderItem); ok {
				m.active = paneRepos

				return m, m.loadReposCmd(item.folder.ID)
			}
		}
	}

	var cmd tea.Cmd
	if m.active == paneFolders {
		m.folderList, cmd = m.folderList.Update(msg)
	} else {
		m.repoList, cmd = m.repoList.Update(msg)
	}

	return m, cmd
}

func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	if m.err != nil {
		return docStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	left, right := inactiveStyle, inactiveStyle
	if m.active == paneFolders {
		left = activeStyle
	} else {
		right = activeStyle
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		left.Render(m.folderList.View()),
		right.Render(m.repoList.View()),
	)

	status := m.status
	if clip := m.folders.ClipboardStatus(); !clip.IsEmpty {
		status = fmt.Sprintf("%s | clipboard: %d (%s)", status, clip.Count, clip.Operation)
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, panes, statusStyle.Render(status)))
}

func (m BrowseModel) selectedRepo() *model.StarredRepo {
	if item, ok := m.repoList.SelectedItem().(repoItem); ok {
		return item.repo
	}
	return nil
}

func (m BrowseModel) stageClipboard(op core.ClipboardOp) (tea.Model, tea.Cmd) {
	repo := m.selectedRepo()
	if repo == nil {
		return m, nil
	}

	if op == core.ClipboardCut {
		m.folders.ClipboardCut([]*model.StarredRepo{repo}, m.currentFolderID)
		m.status = fmt.Sprintf("cut %s", repo.FullName)
	} else {
		m.folders.ClipboardCopy([]*model.StarredRepo{repo}, m.currentFolderID)
		m.status = fmt.Sprintf("copied %s", repo.FullName)
	}

	return m, nil
}

func (m BrowseModel) pasteIntoSelected() (tea.Model, tea.Cmd) {
	item, ok := m.folderList.SelectedItem().(folderItem)
	if !ok {
		return m, nil
	}

	targetID := item.folder.ID

	return m, func() tea.Msg {
		count, err := m.folders.ClipboardPaste(context.Background(), targetID)
		if err != nil {
			return errMsg{err: err}
		}
		return pastedMsg{count: count}
	}
}

func (m BrowseModel) removeSelected() (tea.Model, tea.Cmd) {
	repo := m.selectedRepo()
	if repo == nil || m.currentFolderID == "" {
		return m, nil
	}

	folderID := m.currentFolderID

	return m, func() tea.Msg {
		if err := m.folders.RemoveRepoFromFolder(context.Background(), repo.ID, folderID); err != nil {
			return errMsg{err: err}
		}
		repos, err := m.folders.FolderRepos(context.Background(), folderID)
		if err != nil {
			return errMsg{err: err}
		}
		return reposLoadedMsg{folderID: folderID, repos: repos}
	}
}

func (m BrowseModel) refreshCmd(force bool) tea.Cmd {
	return func() tea.Msg {
		repos, err := m.loader.Refresh(context.Background(), force)
		if err != nil {
			return errMsg{err: err}
		}
		return refreshDoneMsg{count: len(repos)}
	}
}

func (m BrowseModel) loadFoldersCmd() tea.Cmd {
	return func() tea.Msg {
		folders, err := m.folders.Folders(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return foldersLoadedMsg{folders: folders}
	}
}

func (m BrowseModel) loadReposCmd(folderID string) tea.Cmd {
	return func() tea.Msg {
		repos, err := m.folders.FolderRepos(context.Background(), folderID)
		if err != nil {
			return errMsg{err: err}
		}
		return reposLoadedMsg{folderID: folderID, repos: repos}
	}
}

func (m BrowseModel) reloadCurrentCmd() tea.Cmd {
	if m.currentFolderID == "" {
		return nil
	}
	return m.loadReposCmd(m.currentFolderID)
}

func (m BrowseModel) categorizeCmd() tea.Cmd {
	return func() tea.Msg {
		counts, err := m.folders.AutoCategorizeAll(context.Background(), nil)
		if err != nil {
			return errMsg{err: err}
		}
		total := 0
		for _, n := range counts {
			total += n
		}
		return pastedMsg{count: total}
	}
}
