package tui

import (
	"database/sql"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
	"github.com/Void-n-Null/speedytavern-sub003/internal/config"
	"github.com/Void-n-Null/speedytavern-sub003/internal/storage"
)

// newTestModel seeds a single conversation with root -> [a, b] where a is
// the active branch, and returns the model already on the chat screen.
func newTestModel(t *testing.T) Model {
	t.Helper()
	db, err := storage.OpenTemp()
	if err != nil {
		t.Fatalf("open temp db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	conv := storage.Conversation{ID: "c1", Title: "Test", TailID: "a", CreatedAt: time.Now()}
	if err := storage.InsertConversation(db, conv); err != nil {
		t.Fatalf("insert conversation: %v", err)
	}
	for _, sp := range []chat.Speaker{
		{ID: "u", Name: "You", IsUser: true},
		{ID: "b", Name: "Bot"},
	} {
		if err := storage.InsertSpeaker(db, "c1", sp); err != nil {
			t.Fatalf("insert speaker: %v", err)
		}
	}
	nodes := []struct {
		node chat.Node
		pos  int
	}{
		{chat.Node{ID: "root", Text: "hello", SpeakerID: "u", ActiveChild: 0, CreatedAt: time.Now()}, 0},
		{chat.Node{ID: "a", ParentID: "root", Text: "first reply", SpeakerID: "b", IsBot: true, ActiveChild: chat.NoActiveChild, CreatedAt: time.Now()}, 0},
		{chat.Node{ID: "b", ParentID: "root", Text: "second reply", SpeakerID: "b", IsBot: true, ActiveChild: chat.NoActiveChild, CreatedAt: time.Now()}, 1},
	}
	for _, n := range nodes {
		if err := storage.InsertNode(db, "c1", n.node, n.pos); err != nil {
			t.Fatalf("insert node %s: %v", n.node.ID, err)
		}
	}

	m := NewModel(config.Default(), db, "")
	t.Cleanup(m.writer.Close)
	if m.screen != screenChat {
		t.Fatalf("single conversation should open directly; screen = %d", m.screen)
	}
	return m
}

func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeRunes(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestOpenResolvesTailAndSelection(t *testing.T) {
	m := newTestModel(t)
	if m.tailID != "a" {
		t.Fatalf("tail = %s, want a", m.tailID)
	}
	if m.selectedID != "a" {
		t.Fatalf("selected = %s, want a", m.selectedID)
	}
	if len(m.path) != 2 || m.path[0] != "root" || m.path[1] != "a" {
		t.Fatalf("path = %v", m.path)
	}
}

func TestSendAppendsAndExtendsTail(t *testing.T) {
	m := newTestModel(t)
	before := m.store.Len()

	m = typeRunes(t, m, "ok")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.store.Len() != before+1 {
		t.Fatalf("store len = %d, want %d", m.store.Len(), before+1)
	}
	tail := m.store.Node(m.tailID)
	if tail == nil || tail.Text != "ok" {
		t.Fatalf("tail node = %+v", tail)
	}
	if tail.ParentID != "a" {
		t.Fatalf("new message parent = %s, want a", tail.ParentID)
	}
	if m.composer.Value() != "" {
		t.Fatalf("composer not cleared: %q", m.composer.Value())
	}
	if got := m.history.Current().Text; got != "" {
		t.Fatalf("draft history tip = %q, want empty", got)
	}
}

func TestBranchSwitchMovesTailToSibling(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	if m.tailID != "b" {
		t.Fatalf("tail = %s, want b", m.tailID)
	}
	if m.selectedID != "b" {
		t.Fatalf("selected = %s, want b", m.selectedID)
	}
	if root := m.store.Node("root"); root.ActiveChild != 1 {
		t.Fatalf("root active child = %d, want 1", root.ActiveChild)
	}

	// Switching past the last sibling is a quiet no-op.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	if m.tailID != "b" {
		t.Fatalf("tail moved past boundary: %s", m.tailID)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if m.tailID != "a" {
		t.Fatalf("tail = %s, want a after switching back", m.tailID)
	}
}

func TestBranchSwitchRoundTripRestoresLeaf(t *testing.T) {
	m := newTestModel(t)

	// Grow branch a so its subtree has a deeper leaf.
	m = typeRunes(t, m, "deeper")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	deepLeaf := m.tailID

	// Switching happens at the selected message's sibling level; move the
	// selection up to the branch point first.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp, Alt: true})
	if m.selectedID != "a" {
		t.Fatalf("selected = %s, want a", m.selectedID)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight, Alt: true})
	if m.tailID == deepLeaf {
		t.Fatal("switch did not move the tail")
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	if m.tailID != deepLeaf {
		t.Fatalf("tail = %s, want the remembered leaf %s", m.tailID, deepLeaf)
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := newTestModel(t)
	before := m.store.Len()

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.store.Len() != before {
		t.Fatal("first chord already deleted")
	}
	if m.confirmDeleteID != "a" {
		t.Fatalf("pending confirmation = %q, want a", m.confirmDeleteID)
	}

	// Any other key drops the pending confirmation.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if m.confirmDeleteID != "" {
		t.Fatal("confirmation survived an unrelated key")
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.store.Node("a") != nil {
		t.Fatal("node a still present after confirmed delete")
	}
	if m.tailID != "b" {
		t.Fatalf("tail = %s, want surviving sibling subtree leaf b", m.tailID)
	}
}

func TestUndoRestoresComposer(t *testing.T) {
	m := newTestModel(t)
	m = typeRunes(t, m, "abc")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.composer.Value(); got != "" {
		t.Fatalf("undo left composer = %q, want empty", got)
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.composer.Value(); got != "abc" {
		t.Fatalf("redo left composer = %q, want abc", got)
	}
}

func TestEditRewritesSelectedMessage(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	if m.editingID != "a" {
		t.Fatalf("editing = %q, want a", m.editingID)
	}
	if m.composer.Value() != "first reply" {
		t.Fatalf("composer = %q", m.composer.Value())
	}

	m = typeRunes(t, m, "!")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.editingID != "" {
		t.Fatal("edit mode still open after save")
	}
	if got := m.store.Node("a").Text; got != "first reply!" {
		t.Fatalf("edited text = %q", got)
	}
	// Editing must not fork a sibling.
	if got := len(m.store.Node("root").ChildIDs); got != 2 {
		t.Fatalf("root children = %d, want 2", got)
	}
}

func TestEditEscRestoresStashedDraft(t *testing.T) {
	m := newTestModel(t)
	m = typeRunes(t, m, "work in progress")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlE})
	m = typeRunes(t, m, "xxx")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.editingID != "" {
		t.Fatal("edit mode still open after esc")
	}
	if got := m.composer.Value(); got != "work in progress" {
		t.Fatalf("stashed draft lost, composer = %q", got)
	}
	if got := m.store.Node("a").Text; got != "first reply" {
		t.Fatalf("abandoned edit changed the message: %q", got)
	}
}

func TestRegenerateForksBotAlternative(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	root := m.store.Node("root")
	if len(root.ChildIDs) != 3 {
		t.Fatalf("root children = %d, want 3", len(root.ChildIDs))
	}
	newID := root.ChildIDs[2]
	if m.tailID != newID || m.selectedID != newID {
		t.Fatalf("tail/selected = %s/%s, want %s", m.tailID, m.selectedID, newID)
	}
	if m.editingID != newID {
		t.Fatalf("fresh alternative not opened for editing: %q", m.editingID)
	}
	if n := m.store.Node(newID); !n.IsBot {
		t.Fatal("regenerated alternative lost the bot flag")
	}
}

func TestWriteFailureSurfacesAsNotice(t *testing.T) {
	m := newTestModel(t)

	m.writer.Enqueue("test op", func(*sql.DB) error {
		return sql.ErrConnDone
	})

	select {
	case msg := <-m.writeErrs:
		next, _ := m.Update(msg)
		m = next.(Model)
	case <-time.After(2 * time.Second):
		t.Fatal("write failure never reported")
	}
	if m.notice.text == "" || !m.notice.isErr {
		t.Fatalf("notice = %+v", m.notice)
	}
}

func TestSiblingOrderSurvivesDeleteThenFork(t *testing.T) {
	m := newTestModel(t)

	// Third sibling under root, persisted at position 2.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	// Delete the middle sibling; survivors must have their stored
	// positions compacted along with the in-memory child list.
	next, _ := m.Update(searchJumpMsg{nodeID: "b"})
	m = next.(Model)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})

	// A fresh fork now lands at index 2 again; without reindexing it
	// would collide with the survivor that still held position 2.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m.writer.Close()
	nodes, _, err := storage.LoadConversation(m.db, "c1")
	if err != nil {
		t.Fatal(err)
	}
	want := m.store.Node("root").ChildIDs
	got := nodes["root"].ChildIDs
	if len(got) != len(want) {
		t.Fatalf("reloaded %d children, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reloaded order %v, want %v", got, want)
		}
	}
}

func TestSearchJumpRevealsInactiveBranch(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(searchJumpMsg{nodeID: "b"})
	m = next.(Model)
	if m.tailID != "b" {
		t.Fatalf("tail = %s, want b", m.tailID)
	}
	if m.store.Node("root").ActiveChild != 1 {
		t.Fatal("ancestor pointer not retargeted")
	}
	if m.tr.top("b") < 0 {
		t.Fatal("revealed node not materialized in the transcript")
	}
}
