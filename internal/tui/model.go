package tui

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
	"github.com/Void-n-Null/speedytavern-sub003/internal/config"
	"github.com/Void-n-Null/speedytavern-sub003/internal/draft"
	"github.com/Void-n-Null/speedytavern-sub003/internal/storage"
	pkgtui "github.com/Void-n-Null/speedytavern-sub003/pkg/tui"
)

type screen int

const (
	screenPicker screen = iota
	screenChat
)

// writeFailedMsg carries a rejected durable write from the storage
// writer's goroutine into the event loop.
type writeFailedMsg struct {
	op  string
	err error
}

// Model is the root Bubble Tea model: a conversation picker and the chat
// screen built around the branching-tree engine.
type Model struct {
	cfg    config.Config
	db     *sql.DB
	dbPath string
	writer *storage.Writer
	// failed writes land here and are drained by a listening command
	writeErrs chan writeFailedMsg

	screen screen
	picker list.Model

	// chat session state
	conversationID string
	convTitle      string
	store          *chat.Store
	tailID         string
	selectedID     string
	path           []string
	window         *chat.Window
	reconciler     *Reconciler
	history        *draft.History
	composer       *pkgtui.Composer
	mdCache        *MarkdownCache
	search         *SearchOverlay
	tr             transcript
	scrollTop      int

	// editing holds the node being edited in the composer; empty when
	// composing a new message. stash keeps the interrupted draft.
	editingID string
	stash     draft.Entry

	confirmDeleteID string

	keys        pkgtui.CommonKeys
	chatKeys    chatKeys
	helpOverlay pkgtui.HelpOverlay
	notice      notice

	width  int
	height int
	err    string
}

// NewModel opens the picker, or goes straight to the chat screen when
// only one conversation exists.
func NewModel(cfg config.Config, db *sql.DB, dbPath string) Model {
	m := Model{
		cfg:         cfg,
		db:          db,
		dbPath:      dbPath,
		writeErrs:   make(chan writeFailedMsg, 16),
		screen:      screenPicker,
		keys:        pkgtui.NewCommonKeys(),
		chatKeys:    newChatKeys(),
		helpOverlay: pkgtui.NewHelpOverlay(),
		width:       100,
		height:      30,
	}
	m.writer = storage.NewWriter(db, func(op string, err error) {
		select {
		case m.writeErrs <- writeFailedMsg{op: op, err: err}:
		default:
		}
	})

	convs, err := storage.ListConversations(db)
	if err != nil {
		m.err = err.Error()
		m.picker = newPicker(nil)
		return m
	}
	m.picker = newPicker(convs)
	if len(convs) == 1 {
		m.openConversation(convs[0].ID)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.listenWriteErrs(), watchCmd(m.dbPath)}
	if m.screen == screenChat && m.composer != nil {
		cmds = append(cmds, m.composer.Focus())
	}
	return tea.Batch(cmds...)
}

func (m *Model) listenWriteErrs() tea.Cmd {
	ch := m.writeErrs
	return func() tea.Msg { return <-ch }
}

// openConversation loads a conversation into the chat screen.
func (m *Model) openConversation(id string) {
	conv, err := storage.GetConversation(m.db, id)
	if err != nil {
		m.err = err.Error()
		return
	}
	nodes, speakers, err := storage.LoadConversation(m.db, id)
	if err != nil {
		m.err = err.Error()
		return
	}
	m.store = chat.NewStore()
	m.store.Load(nodes, speakers)
	m.conversationID = id
	m.convTitle = conv.Title
	m.tailID = conv.TailID
	if m.tailID == "" || m.store.Node(m.tailID) == nil {
		if roots := m.store.Roots(); len(roots) > 0 {
			m.tailID = m.store.SubtreeLeaf(roots[0])
		} else {
			m.tailID = ""
		}
	}
	m.selectedID = m.tailID
	m.window = chat.NewWindow(m.cfg.WindowLimit, m.cfg.WindowBatch)
	m.reconciler = NewReconciler(time.Duration(m.cfg.SettleMs) * time.Millisecond)
	m.history = draft.New(m.cfg.HistoryCap, time.Duration(m.cfg.CoalesceMs)*time.Millisecond)
	m.composer = pkgtui.NewComposer(4)
	m.composer.SetSize(m.width, composerHeight)
	m.composer.Focus()
	m.mdCache = NewMarkdownCache(m.cfg.RenderMarkdown)
	m.search = NewSearchOverlay()
	m.editingID = ""
	m.confirmDeleteID = ""
	m.screen = screenChat
	m.refresh()
	m.scrollToBottom()
}

const composerHeight = 7

func (m *Model) transcriptHeight() int {
	// header + separator + composer block + footer
	h := m.height - 1 - 1 - composerHeight - 1
	if h < 3 {
		h = 3
	}
	return h
}

// refresh re-derives everything downstream of the store and tail: the
// active path, the lazy window, and the rendered transcript.
func (m *Model) refresh() {
	if m.store == nil {
		return
	}
	m.path = m.store.ResolvePath(m.tailID)
	visible, hidden := m.window.Apply(m.path)
	m.tr = buildTranscript(m.store, visible, hidden, m.width, m.mdCache, m.selectedID)
	m.clampScroll()
	if m.selectedID != "" && m.tr.top(m.selectedID) < 0 {
		m.selectedID = m.tailID
	}
}

func (m *Model) maxScroll() int {
	max := m.tr.height() - m.transcriptHeight()
	if max < 0 {
		max = 0
	}
	return max
}

func (m *Model) clampScroll() {
	if m.scrollTop < 0 {
		m.scrollTop = 0
	}
	if max := m.maxScroll(); m.scrollTop > max {
		m.scrollTop = max
	}
}

func (m *Model) scrollToBottom() {
	m.scrollTop = m.maxScroll()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.picker.SetSize(msg.Width, msg.Height-2)
		if m.composer != nil {
			m.composer.SetSize(msg.Width, composerHeight)
		}
		if m.mdCache != nil {
			m.mdCache.Invalidate()
		}
		if m.screen == screenChat {
			m.refresh()
		}
		return m, nil

	case writeFailedMsg:
		cmd := m.notice.set(fmt.Sprintf("save failed (%s): %v", msg.op, msg.err), true)
		return m, tea.Batch(cmd, m.listenWriteErrs())

	case noticeMsg:
		return m, m.notice.set(msg.text, msg.isErr)

	case clearNoticeMsg:
		m.notice.clear(msg)
		return m, nil

	case dbChangedMsg:
		// Another process wrote the database. Skip the reload while a
		// reconciliation is pending against the current layout.
		if m.screen == screenChat && m.reconciler != nil && !m.reconciler.Armed() && !m.reconciler.Settling() {
			m.reloadFromDisk()
		}
		return m, watchCmd(m.dbPath)

	case settleTickMsg, settleTimeoutMsg:
		if m.reconciler != nil {
			return m, m.reconciler.HandleSettle(msg)
		}
		return m, nil

	case searchJumpMsg:
		m.jumpToNode(msg.nodeID)
		return m, nil

	case pickConversationMsg:
		m.openConversation(msg.id)
		var cmd tea.Cmd
		if m.composer != nil {
			cmd = m.composer.Focus()
		}
		return m, cmd

	case newConversationMsg:
		id, err := m.createConversation()
		if err != nil {
			return m, notifyCmd("create failed: "+err.Error(), true)
		}
		m.openConversation(id)
		var cmd tea.Cmd
		if m.composer != nil {
			cmd = m.composer.Focus()
		}
		return m, cmd

	case pkgtui.ToggleHelpMsg:
		m.helpOverlay.Toggle()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.screen == screenPicker {
		var cmd tea.Cmd
		m.picker, cmd = updatePicker(m.picker, msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd := pkgtui.HandleCommon(msg, m.keys); cmd != nil {
		return m, cmd
	}
	if m.helpOverlay.Visible {
		if msg.String() == "esc" || key.Matches(msg, m.keys.Help) {
			m.helpOverlay.Toggle()
		}
		return m, nil
	}

	if m.screen == screenPicker {
		var cmd tea.Cmd
		m.picker, cmd = updatePicker(m.picker, msg)
		return m, cmd
	}

	if m.search.Visible() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	// Any key other than the delete chord drops a pending confirmation.
	if m.confirmDeleteID != "" && !key.Matches(msg, m.chatKeys.Delete) {
		m.confirmDeleteID = ""
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.editingID != "" {
			m.cancelEdit()
			return m, nil
		}
		m.screen = screenPicker
		m.reloadPicker()
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.search.SetItems(m.store)
		m.search.Show()
		return m, nil

	case key.Matches(msg, m.keys.PrevBranch):
		return m, m.switchBranch(chat.Prev)

	case key.Matches(msg, m.keys.NextBranch):
		return m, m.switchBranch(chat.Next)

	case key.Matches(msg, m.keys.NavUp):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.NavDown):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.scrollTop -= m.transcriptHeight()
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.scrollTop += m.transcriptHeight()
		m.clampScroll()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.scrollTop = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.scrollToBottom()
		return m, nil

	case key.Matches(msg, m.chatKeys.Older):
		m.window.Expand()
		m.refresh()
		return m, nil

	case key.Matches(msg, m.chatKeys.Undo):
		if entry, ok := m.history.Undo(); ok {
			m.composer.Restore(entry.Text, entry.SelStart)
		}
		return m, nil

	case key.Matches(msg, m.chatKeys.Redo):
		if entry, ok := m.history.Redo(); ok {
			m.composer.Restore(entry.Text, entry.SelStart)
		}
		return m, nil

	case key.Matches(msg, m.chatKeys.Edit):
		m.beginEdit(m.selectedID)
		return m, nil

	case key.Matches(msg, m.chatKeys.Delete):
		return m, m.deleteSelected()

	case key.Matches(msg, m.chatKeys.Regenerate):
		return m, m.regenerate()

	case key.Matches(msg, m.chatKeys.Send):
		return m, m.submitComposer()
	}

	// Everything else is typing: forward to the composer, then snapshot
	// the draft.
	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	kind := draft.KindInput
	if msg.Paste {
		kind = draft.KindInsert
	}
	off := m.composer.CursorOffset()
	m.history.Commit(m.composer.Value(), off, off, kind)
	return m, cmd
}

// switchBranch runs the full anchored branch switch: capture, mutate,
// re-resolve, reconcile.
func (m *Model) switchBranch(dir chat.Direction) tea.Cmd {
	nodeID := m.selectedID
	if nodeID == "" {
		nodeID = m.tailID
	}
	node := m.store.Node(nodeID)
	if node == nil || node.ParentID == "" {
		return nil
	}

	// Capture before the mutation touches anything.
	m.reconciler.Capture(node.ParentID, dir, m.tr.top(nodeID), m.scrollTop)

	newTail, ok := m.store.SwitchBranch(nodeID, dir)
	if !ok {
		// Boundary no-op; nothing moved, drop the anchor.
		m.reconciler.Cancel()
		return nil
	}

	m.tailID = newTail
	m.persistActiveChild(node.ParentID)
	m.persistTail()

	// The path just changed: this is the observation that consumes the
	// auto-scroll suppression.
	m.refresh()
	m.reconciler.ConsumeSuppression()

	targetID := m.reconciler.AnchorTarget(m.path)
	m.selectedID = targetID
	m.refresh()

	newTop := m.tr.top(targetID)
	if targetID == "" || newTop < 0 {
		m.reconciler.Cancel()
		return nil
	}
	var cmd tea.Cmd
	m.scrollTop, cmd = m.reconciler.Reconcile(newTop, m.scrollTop, m.tr.height(), m.transcriptHeight())
	return cmd
}

func (m *Model) moveSelection(delta int) {
	if len(m.path) == 0 {
		return
	}
	idx := -1
	for i, id := range m.path {
		if id == m.selectedID {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = len(m.path) - 1
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(m.path)-1 {
		idx = len(m.path) - 1
	}
	m.selectedID = m.path[idx]
	m.refresh()
	m.scrollSelectionIntoView()
}

func (m *Model) scrollSelectionIntoView() {
	top := m.tr.top(m.selectedID)
	if top < 0 {
		return
	}
	if top < m.scrollTop {
		m.scrollTop = top
	}
	if bottom := m.scrollTop + m.transcriptHeight() - 1; top > bottom {
		m.scrollTop = top - m.transcriptHeight() + 1
	}
	m.clampScroll()
}

// submitComposer sends the draft as a new message, or applies the
// pending edit when one is open.
func (m *Model) submitComposer() tea.Cmd {
	text := strings.TrimSpace(m.composer.Value())
	if text == "" {
		return nil
	}

	if m.editingID != "" {
		id := m.editingID
		m.store.EditMessage(id, text)
		m.enqueueEdit(id, text)
		m.cancelEdit()
		m.refresh()
		return nil
	}

	// An empty tail means an empty conversation; the first message
	// becomes the root.
	speakerID := m.userSpeakerID()
	n := m.store.AddMessage(m.tailID, text, speakerID, false)
	if n == nil {
		return notifyCmd("send failed: tail is gone", true)
	}
	m.persistInsert(n)
	if n.ParentID != "" {
		m.persistActiveChild(n.ParentID)
	}
	m.tailID = n.ID
	m.selectedID = n.ID
	m.persistTail()

	m.history.Clear()
	m.composer.Reset()

	m.refresh()
	if m.cfg.AutoScroll && !m.reconciler.ConsumeSuppression() {
		m.scrollToBottom()
	}
	return nil
}

func (m *Model) beginEdit(id string) {
	n := m.store.Node(id)
	if n == nil {
		return
	}
	if m.editingID == "" {
		m.stash = m.history.Current()
	}
	m.editingID = id
	m.history = draft.New(m.cfg.HistoryCap, time.Duration(m.cfg.CoalesceMs)*time.Millisecond)
	m.history.Commit(n.Text, len([]rune(n.Text)), len([]rune(n.Text)), draft.KindInsert)
	m.composer.Restore(n.Text, len([]rune(n.Text)))
	m.composer.SetTitle("Editing message")
}

func (m *Model) cancelEdit() {
	m.editingID = ""
	m.composer.SetTitle("")
	m.history = draft.New(m.cfg.HistoryCap, time.Duration(m.cfg.CoalesceMs)*time.Millisecond)
	m.history.Commit(m.stash.Text, m.stash.SelStart, m.stash.SelEnd, draft.KindInsert)
	m.composer.Restore(m.stash.Text, m.stash.SelStart)
	m.stash = draft.Entry{}
}

// deleteSelected needs the chord pressed twice on the same node.
func (m *Model) deleteSelected() tea.Cmd {
	id := m.selectedID
	if id == "" || m.store.Node(id) == nil {
		return nil
	}
	if m.confirmDeleteID != id {
		m.confirmDeleteID = id
		return notifyCmd("press ctrl+d again to delete this message and its replies", false)
	}
	m.confirmDeleteID = ""

	parentID, ok := m.store.DeleteMessage(id)
	if !ok {
		return nil
	}
	m.enqueueDelete(id)
	if parentID != "" {
		m.persistActiveChild(parentID)
		// The in-memory child list was compacted; close the position gap
		// in the database too so the next insert cannot collide with a
		// survivor's stale position.
		if parent := m.store.Node(parentID); parent != nil {
			for i, child := range parent.ChildIDs {
				m.enqueuePosition(child, i)
			}
		}
		m.tailID = m.store.SubtreeLeaf(parentID)
	} else if roots := m.store.Roots(); len(roots) > 0 {
		m.tailID = m.store.SubtreeLeaf(roots[0])
	} else {
		m.tailID = ""
	}
	m.selectedID = m.tailID
	m.persistTail()
	m.refresh()
	m.scrollToBottom()
	return notifyCmd("message deleted", false)
}

// regenerate creates a fresh bot alternative next to the selected bot
// message and opens it in the composer, anchored like any other branch
// change.
func (m *Model) regenerate() tea.Cmd {
	id := m.selectedID
	node := m.store.Node(id)
	if node == nil || !node.IsBot || node.ParentID == "" {
		return notifyCmd("select a bot message to regenerate", false)
	}

	m.reconciler.Capture(node.ParentID, chat.Next, m.tr.top(id), m.scrollTop)

	n := m.store.CreateBranch(id, "", node.SpeakerID, true)
	if n == nil {
		m.reconciler.Cancel()
		return nil
	}
	m.persistInsert(n)
	m.persistActiveChild(node.ParentID)
	m.tailID = n.ID
	m.persistTail()

	m.refresh()
	m.reconciler.ConsumeSuppression()
	m.selectedID = n.ID
	m.refresh()

	var cmd tea.Cmd
	if top := m.tr.top(n.ID); top >= 0 {
		m.scrollTop, cmd = m.reconciler.Reconcile(top, m.scrollTop, m.tr.height(), m.transcriptHeight())
	} else {
		m.reconciler.Cancel()
	}
	m.beginEdit(n.ID)
	return cmd
}

func (m *Model) jumpToNode(id string) {
	tail, ok := m.store.RevealNode(id)
	if !ok {
		return
	}
	// Ancestor pointers moved; persist each so the branch choice sticks.
	for cur := m.store.Node(id); cur != nil && cur.ParentID != ""; cur = m.store.Node(cur.ParentID) {
		m.persistActiveChild(cur.ParentID)
	}
	m.tailID = tail
	m.selectedID = id
	m.persistTail()
	m.window = chat.NewWindow(m.cfg.WindowLimit, m.cfg.WindowBatch)
	m.refresh()
	if m.tr.top(id) < 0 {
		// The hit is hidden behind the lazy window; widen until visible.
		for i := 0; i < 64 && m.tr.top(id) < 0; i++ {
			m.window.Expand()
			m.refresh()
		}
	}
	m.scrollTop = m.tr.top(id)
	m.clampScroll()
}

func (m *Model) reloadFromDisk() {
	nodes, speakers, err := storage.LoadConversation(m.db, m.conversationID)
	if err != nil {
		m.err = err.Error()
		return
	}
	m.store.Load(nodes, speakers)
	if m.store.Node(m.tailID) == nil {
		if roots := m.store.Roots(); len(roots) > 0 {
			m.tailID = m.store.SubtreeLeaf(roots[0])
		} else {
			m.tailID = ""
		}
		m.selectedID = m.tailID
	}
	m.mdCache.Invalidate()
	m.refresh()
}

func (m *Model) reloadPicker() {
	convs, err := storage.ListConversations(m.db)
	if err != nil {
		m.err = err.Error()
		return
	}
	m.picker = newPicker(convs)
	m.picker.SetSize(m.width, m.height-2)
}

func (m *Model) createConversation() (string, error) {
	id := uuid.NewString()
	conv := storage.Conversation{
		ID:        id,
		Title:     fmt.Sprintf("Conversation %s", time.Now().Format("Jan 2 15:04")),
		CreatedAt: time.Now(),
	}
	if err := storage.InsertConversation(m.db, conv); err != nil {
		return "", err
	}
	user := chat.Speaker{ID: uuid.NewString(), Name: "You", IsUser: true}
	bot := chat.Speaker{ID: uuid.NewString(), Name: "Bot"}
	if err := storage.InsertSpeaker(m.db, id, user); err != nil {
		return "", err
	}
	if err := storage.InsertSpeaker(m.db, id, bot); err != nil {
		return "", err
	}
	return id, nil
}

func (m *Model) userSpeakerID() string {
	for _, sp := range m.store.Speakers() {
		if sp.IsUser {
			return sp.ID
		}
	}
	return ""
}

// persist helpers: the store is already updated; these queue the
// matching durable writes. Values are captured eagerly because the node
// may mutate again before the writer gets to the job.

func (m *Model) persistInsert(n *chat.Node) {
	conv := m.conversationID
	node := *n
	position := 0
	if parent := m.store.Node(n.ParentID); parent != nil {
		if idx := m.store.SiblingIndex(n.ID); idx >= 0 {
			position = idx
		}
	}
	m.writer.Enqueue("add message", func(db *sql.DB) error {
		return storage.InsertNode(db, conv, node, position)
	})
}

func (m *Model) persistActiveChild(nodeID string) {
	n := m.store.Node(nodeID)
	if n == nil {
		return
	}
	id, idx := n.ID, n.ActiveChild
	m.writer.Enqueue("update branch position", func(db *sql.DB) error {
		return storage.UpdateActiveChild(db, id, idx)
	})
}

func (m *Model) persistTail() {
	conv, tail := m.conversationID, m.tailID
	m.writer.Enqueue("persist tail", func(db *sql.DB) error {
		return storage.UpdateTail(db, conv, tail)
	})
}

func (m *Model) enqueueEdit(id, text string) {
	m.writer.Enqueue("edit message", func(db *sql.DB) error {
		return storage.UpdateNodeContent(db, id, text)
	})
}

func (m *Model) enqueuePosition(id string, position int) {
	m.writer.Enqueue("reindex sibling", func(db *sql.DB) error {
		return storage.UpdateNodePosition(db, id, position)
	})
}

func (m *Model) enqueueDelete(id string) {
	m.writer.Enqueue("delete message", func(db *sql.DB) error {
		return storage.DeleteSubtree(db, id)
	})
}

func (m Model) View() string {
	if m.screen == screenPicker {
		footer := pkgtui.FooterStyle.Width(m.width).Render("enter: open  n: new  ctrl+c: quit")
		return lipgloss.JoinVertical(lipgloss.Left, m.picker.View(), footer)
	}

	header := m.headerView()
	body := m.transcriptView()
	separator := lipgloss.NewStyle().
		Foreground(pkgtui.ColorMuted).
		Render(strings.Repeat("─", maxInt(1, m.width)))
	composerView := m.composer.View()
	footer := m.footerView()

	sections := []string{header, body, separator, composerView, footer}
	if m.search.Visible() {
		sections = []string{header, body, m.search.View(m.width), composerView, footer}
	}
	if m.helpOverlay.Visible {
		sections = append(sections, m.helpOverlay.Render(m.keys, m.chatKeys.helpBindings(), m.width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	title := m.convTitle
	if title == "" {
		title = "SpeedyTavern"
	}
	info := ""
	if m.selectedID != "" {
		if count := m.store.SiblingCount(m.selectedID); count > 1 {
			info = fmt.Sprintf("  alternative %d of %d", m.store.SiblingIndex(m.selectedID)+1, count)
		}
	}
	return pkgtui.HeaderStyle.Width(m.width).Render(title + pkgtui.SubtitleStyle.Render(info))
}

func (m Model) transcriptView() string {
	lines := visibleSlice(m.tr.lines, m.scrollTop+m.reconciler.VisualOffset(), m.transcriptHeight())
	if m.tr.height() == 0 {
		empty := hiddenStyle.Render("No messages yet. Type below to begin.")
		lines[0] = empty
	}
	return strings.Join(lines, "\n")
}

func (m Model) footerView() string {
	if m.notice.text != "" {
		style := pkgtui.StatusInfo
		if m.notice.isErr {
			style = pkgtui.StatusError
		}
		return pkgtui.FooterStyle.Width(m.width).Render(style.Render(m.notice.text))
	}
	if m.err != "" {
		return pkgtui.FooterStyle.Width(m.width).Render(pkgtui.StatusError.Render(m.err))
	}
	hint := "alt+←/→: alternatives  alt+↑/↓: select  ctrl+f: search  ctrl+g: help"
	if m.editingID != "" {
		hint = "editing  enter: save  esc: cancel"
	}
	return pkgtui.FooterStyle.Width(m.width).Render(hint)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
