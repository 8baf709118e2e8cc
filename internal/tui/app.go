// ABOUTME: Root AppModel wiring stores, editor session and page models for the Bubble Tea client
// ABOUTME: Routes messages and keys, runs server calls as commands, overlays popovers and toasts

package tui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/blinko-go/internal/api"
	"github.com/mauromedda/blinko-go/internal/auth"
	"github.com/mauromedda/blinko-go/internal/config"
	"github.com/mauromedda/blinko-go/internal/editor"
	"github.com/mauromedda/blinko-go/internal/eventbus"
	"github.com/mauromedda/blinko-go/internal/i18n"
	"github.com/mauromedda/blinko-go/internal/importer"
	"github.com/mauromedda/blinko-go/internal/linkpreview"
	"github.com/mauromedda/blinko-go/internal/log"
	"github.com/mauromedda/blinko-go/internal/nav"
	"github.com/mauromedda/blinko-go/internal/notes"
	"github.com/mauromedda/blinko-go/internal/prefs"
	"github.com/mauromedda/blinko-go/internal/tags"
	"github.com/mauromedda/blinko-go/internal/termfix"
	"github.com/mauromedda/blinko-go/internal/toast"
	"github.com/mauromedda/blinko-go/internal/upload"
)

const (
	pathSettings   = "/settings"
	tagMatchLimit  = 50
	toastPruneTick = time.Second
	// PrefTheme is the prefs key holding the chosen palette.
	PrefTheme = "theme"
)

type focusArea int

const (
	focusCompose focusArea = iota
	focusList
)

// liveCatalog lets every component keep one Translator across language
// switches.
type liveCatalog struct {
	cur atomic.Pointer[i18n.Catalog]
}

func (l *liveCatalog) T(key string) string               { return l.cur.Load().T(key) }
func (l *liveCatalog) Tf(key string, args ...any) string { return l.cur.Load().Tf(key, args...) }

// shared holds state that must survive AppModel value copies.
type shared struct {
	ctx    context.Context
	cancel context.CancelFunc
	bridge *Bridge
	tr     *liveCatalog
}

// AppModel is the root model.
type AppModel struct {
	sh   *shared
	deps AppDeps
	hub  *eventbus.Hub

	router   *nav.Router
	store    *notes.Store
	actions  *notes.Actions
	tags     *tags.Catalog
	toasts   *toast.Store
	previews *linkpreview.Service
	flow     *auth.Flow
	importer *importer.Importer
	session  *editor.Session
	queue    *upload.Queue

	compose  ComposeModel
	list     NoteListModel
	signin   SignInModel
	settings SettingsModel

	// Overlays, nil when hidden.
	menu   *MenuModel
	tagPop *TagPopoverModel
	aiPop  *AIPopoverModel

	focus         focusArea
	editingID     *int
	editType      api.NoteType
	pruning       bool
	width, height int
}

// NewAppModel wires every store to deps. Background notifications go
// through a Bridge that Run attaches to the program.
func NewAppModel(deps AppDeps) AppModel {
	if deps.Hub == nil {
		deps.Hub = eventbus.Default
	}
	if deps.Settings == nil {
		deps.Settings = config.Defaults()
	}
	if deps.Prefs == nil {
		deps.Prefs = prefs.NewMemory()
	}
	if deps.Catalog == nil {
		deps.Catalog = i18n.MustNew(deps.Settings.Locale)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sh := &shared{ctx: ctx, cancel: cancel, bridge: NewBridge(), tr: &liveCatalog{}}
	sh.tr.cur.Store(deps.Catalog)
	b, tr := sh.bridge, sh.tr

	m := AppModel{sh: sh, deps: deps, hub: deps.Hub, width: 80, height: 24}
	m.router = nav.NewRouter(deps.Prefs, func(p string) { b.Post(RouteChangedMsg{Path: p}) })
	m.store = notes.NewStore(deps.Backend, b.Notify(NotesChangedMsg{}))
	m.store.SetFilter(notes.FilterForPath(m.router.Path()))
	m.toasts = toast.NewStore(b.Notify(ToastsChangedMsg{}))
	m.actions = notes.NewActions(m.store, deps.Backend, m.toasts, tr)
	m.tags = tags.NewCatalog(deps.Backend)
	m.previews = linkpreview.New(linkpreview.Options{
		Remote: deps.Backend,
		Store:  deps.Prefs,
		Direct: deps.Settings.DirectPreview,
	})
	m.flow = auth.NewFlow(deps.Backend, deps.Prefs, m.router, m.toasts, tr)
	m.importer = importer.New(deps.Backend, m.toasts, tr)

	store, settings := m.store, deps.Settings
	aiOn := func() bool { return settings.AIEnabled(store.Config().IsUseAI) }
	m.session = editor.NewSession("", editor.Options{
		Hub:       deps.Hub,
		HideDelay: settings.HideDelay,
		AIEnabled: aiOn,
		OnChange:  func(string) { b.Post(EditorChangedMsg{}) },
	})
	m.session.Mount()
	m.queue = upload.NewQueue(upload.Options{
		Client:       deps.Backend,
		AIEnabled:    aiOn,
		OnTranscript: m.session.Insert,
		OnChange:     b.Notify(QueueChangedMsg{}),
	})

	m.compose = NewComposeModel(m.session, m.queue, deps.Hub, tr).SetFocused(true)
	m.list = NewNoteListModel(tr)
	m.settings = NewSettingsModel(tr, m.router.Locale(), CurrentTheme())
	return m
}

// Init loads server config, tags and the first page of notes.
func (m AppModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AppModel) loadCmd() tea.Cmd {
	ctx, store, catalog := m.sh.ctx, m.store, m.tags
	return func() tea.Msg {
		if err := store.LoadConfig(ctx); err != nil {
			return loadedMsg{err: err}
		}
		if err := catalog.Load(ctx); err != nil {
			log.Warn("loading tags: %v", err)
		}
		return loadedMsg{err: store.Refresh(ctx)}
	}
}

func (m AppModel) refreshCmd() tea.Cmd {
	ctx, store := m.sh.ctx, m.store
	return func() tea.Msg { return loadedMsg{err: store.Refresh(ctx)} }
}

func (m AppModel) prefetchCmd() tea.Cmd {
	links := m.list.Links()
	if len(links) == 0 {
		return nil
	}
	ctx, svc := m.sh.ctx, m.previews
	return func() tea.Msg { return previewsMsg{previews: svc.Prefetch(ctx, links)} }
}

func (m AppModel) aiEnabled() bool {
	return m.deps.Settings.AIEnabled(m.store.Config().IsUseAI)
}

func (m AppModel) tr() Translator { return m.sh.tr }

// Update routes every message.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m.layout(), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		updated, cmd := m.compose.Update(msg)
		m.compose = updated.(ComposeModel)
		return m, cmd

	case EditorChangedMsg, QueueChangedMsg:
		return m, nil

	case NotesChangedMsg:
		m.list = m.list.SetNotes(m.store.Notes())
		on, ids := m.store.MultiSelect()
		m.list = m.list.SetMulti(on, ids)
		m.syncSelection()
		return m, m.prefetchCmd()

	case previewsMsg:
		m.list = m.list.SetPreviews(msg.previews)
		return m, nil

	case ToastsChangedMsg:
		return m.schedulePrune()

	case pruneToastsMsg:
		m.pruning = false
		if len(m.toasts.List()) > 0 {
			return m.schedulePrune()
		}
		return m, nil

	case loadedMsg:
		return m.handleLoaded(msg.err)

	case RouteChangedMsg:
		return m.enterRoute(msg.Path)

	// Popover signals from the editor session.
	case TagShowMsg:
		if !m.compose.Focused() || !m.onMainPage() {
			return m, nil
		}
		pop := NewTagPopoverModel(msg.Query, m.tags.Match(msg.Query, tagMatchLimit), m.tr().T("no-tags"))
		m.tagPop = &pop
		return m, nil
	case TagHiddenMsg:
		m.tagPop = nil
		return m, nil
	case AIShowMsg:
		if m.aiPop == nil && m.compose.Focused() && m.onMainPage() {
			pop := NewAIPopoverModel(m.tr())
			m.aiPop = &pop
		}
		return m, nil
	case AIHiddenMsg:
		if m.aiPop != nil && !m.aiPop.Prompting() {
			m.aiPop = nil
		}
		return m, nil

	case TagSelectMsg:
		m.tagPop = nil
		eventbus.Emit(m.hub, editor.EvReplace, editor.ReplaceRequest{Text: msg.Tag, ForceFocus: true})
		eventbus.Emit(m.hub, editor.TagSelectHidden, struct{}{})
		return m, nil
	case TagDismissMsg:
		m.tagPop = nil
		eventbus.Emit(m.hub, editor.TagSelectHidden, struct{}{})
		return m, nil

	case AISelectMsg:
		return m.runAI(msg)
	case AIDismissMsg:
		m.aiPop = nil
		eventbus.Emit(m.hub, editor.AIWriteHidden, struct{}{})
		return m, nil
	case aiWriteDoneMsg:
		eventbus.Emit(m.hub, editor.EvSetLoading, false)
		if msg.err != nil {
			m.toasts.Error(m.errText(msg.err))
			return m, nil
		}
		m.session.Insert(msg.text)
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.toasts.Error(m.errText(msg.err))
			return m, nil
		}
		if m.editingID != nil {
			m.toasts.Success(m.tr().T("operation-success"))
		}
		m.editingID = nil
		eventbus.Emit(m.hub, editor.EvClear, struct{}{})
		m.queue.Reset()
		return m, nil

	case MenuSelectMsg:
		m.menu = nil
		ctx, actions := m.sh.ctx, m.actions
		return m, func() tea.Msg {
			res, err := actions.Run(ctx, msg.Kind)
			return actionDoneMsg{result: res, err: err}
		}
	case MenuDismissMsg:
		m.menu = nil
		return m, nil
	case actionDoneMsg:
		if msg.err != nil {
			log.Debug("action: %v", msg.err)
			return m, nil
		}
		if msg.result.OpenEditor {
			return m.openEditor(msg.result.Note)
		}
		return m, nil

	case SignInSubmitMsg:
		ctx, flow := m.sh.ctx, m.flow
		return m, func() tea.Msg { return signInDoneMsg{ok: flow.SignIn(ctx, msg.Username, msg.Password)} }
	case signInDoneMsg:
		if !msg.ok {
			m.signin = m.signin.Done()
			return m, nil
		}
		return m, m.loadCmd()
	case canRegisterMsg:
		m.signin = m.signin.SetCanRegister(msg.ok)
		return m, nil

	case LocaleChangeMsg:
		return m.changeLocale(msg.Value)
	case ThemeChangeMsg:
		m.applyTheme(msg.Name)
		if err := m.deps.Prefs.Set(PrefTheme, msg.Name); err != nil {
			log.Warn("saving theme: %v", err)
		}
		return m, nil
	case SettingsReloadedMsg:
		return m.reloadSettings(msg.Settings), nil
	case ImportRequestMsg:
		return m, m.importCmd(msg)
	case ImportProgressMsg:
		m.settings = m.settings.AddProgress(msg.Progress)
		return m, nil
	case importDoneMsg:
		m.settings = m.settings.Finish()
		if msg.err != nil {
			return m, nil
		}
		return m, m.loadCmd()
	}

	// Cursor blinks and other input ticks.
	switch {
	case m.onPath(nav.PathSignIn):
		updated, cmd := m.signin.Update(msg)
		m.signin = updated.(SignInModel)
		return m, cmd
	case m.aiPop != nil && m.aiPop.Prompting():
		updated, cmd := m.aiPop.Update(msg)
		pop := updated.(AIPopoverModel)
		m.aiPop = &pop
		return m, cmd
	}
	return m, nil
}

func (m AppModel) handleLoaded(err error) (tea.Model, tea.Cmd) {
	switch {
	case err == nil:
		return m, nil
	case errors.Is(err, api.ErrUnauthorized):
		if !m.onPath(nav.PathSignIn) {
			m.router.Push(nav.PathSignIn)
		}
	case errors.Is(err, context.Canceled):
	default:
		log.Warn("loading notes: %v", err)
		m.toasts.Error(m.errText(err))
	}
	return m, nil
}

func (m AppModel) enterRoute(path string) (tea.Model, tea.Cmd) {
	m.menu, m.tagPop, m.aiPop = nil, nil, nil
	switch path {
	case nav.PathSignIn:
		u, p := m.flow.Prefill()
		m.signin = NewSignInModel(m.tr(), u, p)
		ctx, flow := m.sh.ctx, m.flow
		return m, tea.Batch(m.signin.Init(), func() tea.Msg { return canRegisterMsg{ok: flow.CanRegister(ctx)} })
	case pathSettings:
		m.settings = NewSettingsModel(m.tr(), m.router.Locale(), CurrentTheme())
		return m, nil
	}
	m.store.SetFilter(notes.FilterForPath(path))
	return m, m.refreshCmd()
}

func (m AppModel) changeLocale(value string) (tea.Model, tea.Cmd) {
	if err := m.router.SetLocale(value); err != nil {
		m.toasts.Error(err.Error())
		return m, nil
	}
	cat, err := i18n.New(value)
	if err != nil {
		m.toasts.Error(err.Error())
		return m, nil
	}
	m.sh.tr.cur.Store(cat)
	m.deps.Settings.Locale = value
	return m, nil
}

func (m AppModel) applyTheme(name string) {
	SetTheme(name)
	termfix.SetTheme(name)
	m.deps.Settings.Theme = name
}

// reloadSettings applies edited config files for this run only. Choices made
// in the settings page stay persisted and win again on the next start.
func (m AppModel) reloadSettings(s *config.Settings) AppModel {
	if s == nil {
		return m
	}
	if s.Theme != "" && s.Theme != m.deps.Settings.Theme {
		m.applyTheme(s.Theme)
		m.settings = NewSettingsModel(m.sh.tr, m.router.Locale(), CurrentTheme())
	}
	if s.Locale != "" {
		cat, err := i18n.New(s.Locale)
		if err != nil {
			log.Warn("reloading locale: %v", err)
		} else if cat.Locale() != m.sh.tr.cur.Load().Locale() {
			m.sh.tr.cur.Store(cat)
			m.deps.Settings.Locale = cat.Locale()
		}
	}
	return m
}

func (m AppModel) importCmd(req ImportRequestMsg) tea.Cmd {
	ctx, imp, b := m.sh.ctx, m.importer, m.sh.bridge
	return func() tea.Msg {
		err := imp.Import(ctx, req.Kind, req.Path, func(p api.ImportProgress) {
			b.Post(ImportProgressMsg{Progress: p})
		})
		// Posted through the bridge so it lands after the last progress line.
		b.Post(importDoneMsg{err: err})
		return nil
	}
}

func (m AppModel) runAI(sel AISelectMsg) (tea.Model, tea.Cmd) {
	m.aiPop = nil
	eventbus.Emit(m.hub, editor.AIWriteHidden, struct{}{})
	eventbus.Emit(m.hub, editor.EvDeleteLastChar, struct{}{})

	content := m.session.Text()
	if sel.Kind == api.WriteCustom && sel.Prompt != "" {
		content = strings.TrimSpace(sel.Prompt + "\n\n" + content)
	}
	eventbus.Emit(m.hub, editor.EvSetLoading, true)

	ctx, backend, kind := m.sh.ctx, m.deps.Backend, sel.Kind
	return m, func() tea.Msg {
		text, err := backend.AIWrite(ctx, kind, content)
		return aiWriteDoneMsg{text: text, err: err}
	}
}

func (m AppModel) send() (tea.Model, tea.Cmd) {
	if !m.compose.Sendable() {
		return m, nil
	}
	typ := m.editType
	if m.editingID == nil {
		typ = api.TypeBlinko
		if m.router.Current().Path == "/notes" {
			typ = api.TypeNote
		}
	}
	draft := notes.Draft{
		ID:          m.editingID,
		Content:     m.session.Text(),
		Type:        typ,
		Attachments: m.queue.Attachments(),
	}
	ctx, store := m.sh.ctx, m.store
	return m, func() tea.Msg {
		n, err := store.Save(ctx, draft)
		return savedMsg{note: n, err: err}
	}
}

func (m AppModel) openEditor(n api.Note) (tea.Model, tea.Cmd) {
	id := n.ID
	m.editingID = &id
	m.editType = n.Type
	m.queue.Reset()
	m.queue.AddExisting(n.Attachments)
	m.session.Edit(func(d *editor.Document) { d.SetText(n.Content) })
	m = m.setFocus(focusCompose)
	return m, nil
}

func (m AppModel) cancelEdit() AppModel {
	if m.editingID == nil {
		return m
	}
	m.editingID = nil
	eventbus.Emit(m.hub, editor.EvClear, struct{}{})
	m.queue.Reset()
	return m
}

func (m AppModel) setFocus(f focusArea) AppModel {
	m.focus = f
	m.compose = m.compose.SetFocused(f == focusCompose)
	m.list = m.list.SetFocused(f == focusList)
	if f != focusCompose {
		m.tagPop, m.aiPop = nil, nil
	}
	return m
}

func (m *AppModel) syncSelection() {
	if n, ok := m.list.Selected(); ok {
		m.store.Select(n.ID)
	}
}

func (m AppModel) schedulePrune() (tea.Model, tea.Cmd) {
	if m.pruning {
		return m, nil
	}
	m.pruning = true
	return m, tea.Tick(toastPruneTick, func(time.Time) tea.Msg { return pruneToastsMsg{} })
}

func (m AppModel) onPath(p string) bool { return m.router.Path() == p }

func (m AppModel) onMainPage() bool {
	p := m.router.Path()
	return p != nav.PathSignIn && p != pathSettings
}

// --- Key handling ---

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.sh.cancel()
		return m, tea.Quit
	}

	if m.menu != nil {
		updated, cmd := m.menu.Update(msg)
		menu := updated.(MenuModel)
		m.menu = &menu
		return m, cmd
	}

	switch m.router.Path() {
	case nav.PathSignIn:
		updated, cmd := m.signin.Update(msg)
		m.signin = updated.(SignInModel)
		return m, cmd
	case pathSettings:
		if !m.settings.Editing() {
			switch msg.String() {
			case "esc":
				m.router.Push(nav.Routes[0].Path)
				return m, nil
			case "q":
				m.sh.cancel()
				return m, tea.Quit
			case "1", "2", "3", "4", "5":
				m.router.Push(nav.Routes[int(msg.String()[0]-'1')].Path)
				return m, nil
			}
		}
		updated, cmd := m.settings.Update(msg)
		m.settings = updated.(SettingsModel)
		return m, cmd
	}

	if m.focus == focusCompose {
		return m.composeKey(msg)
	}
	return m.listKey(msg)
}

func (m AppModel) composeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.aiPop != nil && m.aiPop.Handles(msg) {
		updated, cmd := m.aiPop.Update(msg)
		pop := updated.(AIPopoverModel)
		m.aiPop = &pop
		return m, cmd
	}
	if m.tagPop != nil && m.tagPop.Handles(msg) {
		updated, cmd := m.tagPop.Update(msg)
		pop := updated.(TagPopoverModel)
		m.tagPop = &pop
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+s", "alt+enter":
		return m.send()
	case "esc":
		m = m.cancelEdit()
		return m.setFocus(focusList), nil
	case "enter":
		if m.session.TagPopoverVisible() {
			return m, nil
		}
	}

	// Typing on: hide now so the edit captures a fresh snapshot and the
	// session re-shows the popover with the new query. The session flag is
	// checked too because the show signal may still be in the bridge.
	if m.tagPop != nil || m.aiPop != nil || m.session.PopoverVisible() {
		m.tagPop, m.aiPop = nil, nil
		eventbus.Emit(m.hub, editor.TagSelectHidden, struct{}{})
		eventbus.Emit(m.hub, editor.AIWriteHidden, struct{}{})
	}
	updated, cmd := m.compose.Update(msg)
	m.compose = updated.(ComposeModel)
	return m, cmd
}

func (m AppModel) listKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	multi, _ := m.store.MultiSelect()
	switch msg.String() {
	case "q":
		m.sh.cancel()
		return m, tea.Quit
	case "i", "n", "tab":
		return m.setFocus(focusCompose), nil
	case "enter", "m", ".":
		n, ok := m.list.Selected()
		if !ok {
			return m, nil
		}
		m.store.Select(n.ID)
		menu := NewMenuModel(notes.Menu(n, m.router.IsDetail(), m.aiEnabled()), m.tr())
		m.menu = &menu
		return m, nil
	case " ", "x":
		if n, ok := m.list.Selected(); ok && multi {
			m.store.TogglePick(n.ID)
		}
		return m, nil
	case "d", "delete":
		if !multi {
			return m, nil
		}
		ctx, actions := m.sh.ctx, m.actions
		return m, func() tea.Msg {
			if err := actions.DeletePicked(ctx); err != nil {
				log.Debug("delete picked: %v", err)
			}
			return nil
		}
	case "esc":
		if multi {
			m.store.ExitMultiSelect()
		}
		return m, nil
	case "r":
		return m, m.loadCmd()
	case "s":
		m.router.Push(pathSettings)
		return m, nil
	case "1", "2", "3", "4", "5":
		m.router.Push(nav.Routes[int(msg.String()[0]-'1')].Path)
		return m, nil
	}
	updated, cmd := m.list.Update(msg)
	m.list = updated.(NoteListModel)
	m.syncSelection()
	return m, cmd
}

// --- Layout and rendering ---

func (m AppModel) layout() AppModel {
	m.compose = m.compose.SetWidth(m.width)
	m.list = m.list.SetSize(m.width, m.height-m.chromeHeight())
	return m
}

// chromeHeight is everything on the main page except the note list.
func (m AppModel) chromeHeight() int {
	return 2 + lipgloss.Height(m.compose.View()) + 1
}

func (m AppModel) View() string {
	s := Styles()
	header := m.header()

	var body string
	switch m.router.Path() {
	case nav.PathSignIn:
		body = lipgloss.Place(m.width, max(m.height-3, 1), lipgloss.Center, lipgloss.Center, m.signin.View())
	case pathSettings:
		body = m.settings.View()
	default:
		composeView := m.compose.View()
		list := m.list.SetSize(m.width, m.height-2-lipgloss.Height(composeView)-1)
		body = composeView + "\n" + list.View()
		if pop := m.popoverView(); pop != "" {
			body = overlayAt(body, pop, lipgloss.Height(composeView)-1, 2)
		}
	}

	out := header + "\n" + body
	if m.menu != nil {
		out = overlayCenter(out, m.menu.View(), m.width, m.height)
	}
	if toasts := m.toastView(); toasts != "" {
		row := max(m.height-lipgloss.Height(toasts), 0)
		out = overlayAt(out, toasts, row, max(m.width-lipgloss.Width(toasts), 0))
	}
	return out + "\n" + s.Dim.Render(truncateWidth(m.hints(), m.width))
}

func (m AppModel) popoverView() string {
	switch {
	case m.aiPop != nil:
		return m.aiPop.View()
	case m.tagPop != nil:
		return m.tagPop.View()
	}
	return ""
}

func (m AppModel) header() string {
	s := Styles()
	current := m.router.Current()
	tabs := make([]string, 0, len(nav.Routes))
	for i, r := range nav.Routes {
		label := string(rune('1'+i)) + " " + r.Icon + " " + m.tr().T(r.Title)
		if r.Path == current.Path && m.onMainPage() || r.Path == pathSettings && m.onPath(pathSettings) {
			label = s.Title.Render(label)
		} else {
			label = s.Muted.Render(label)
		}
		tabs = append(tabs, label)
	}
	line := s.Bold.Render(m.router.Title(m.tr())) + "  " + strings.Join(tabs, "  ")
	if multi, ids := m.store.MultiSelect(); multi {
		line += "  " + s.Accent.Render(m.tr().Tf("multi-select-count", len(ids)))
	}
	if m.deps.Version != "" {
		line += "  " + s.Dim.Render(m.deps.Version)
	}
	return truncateWidth(line, m.width)
}

func (m AppModel) toastView() string {
	list := m.toasts.List()
	if len(list) == 0 {
		return ""
	}
	s := Styles()
	lines := make([]string, 0, len(list))
	for _, t := range list {
		style := s.Primary
		switch t.Kind {
		case toast.KindSuccess:
			style = s.Success
		case toast.KindError:
			style = s.Error
		}
		lines = append(lines, s.Box.Render(style.Render(truncateWidth(t.Message, max(m.width/2, 20)))))
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) hints() string {
	switch {
	case m.menu != nil:
		return m.tr().T("hint-menu")
	case m.onPath(nav.PathSignIn):
		return m.tr().T("hint-signin")
	case m.onPath(pathSettings):
		return m.tr().T("hint-settings")
	case m.focus == focusCompose:
		return m.tr().T("hint-compose")
	}
	if multi, _ := m.store.MultiSelect(); multi {
		return m.tr().T("hint-multi")
	}
	return m.tr().T("hint-list")
}

// errText prefers the server's message and falls back to a generic one.
func (m AppModel) errText(err error) string {
	if msg := api.Message(err); msg != "" {
		return msg
	}
	return m.tr().T("operation-failed")
}
