package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	hotel_client "github.com/hoteldesk/go-hotel-client"
	"github.com/hoteldesk/go-hotel-client/admin"
	"github.com/hoteldesk/go-hotel-client/core"
	"github.com/hoteldesk/go-hotel-client/internal/colors"
	log "github.com/hoteldesk/go-hotel-client/internal/logging"
	"github.com/hoteldesk/go-hotel-client/internal/msg_types"
	"github.com/hoteldesk/go-hotel-client/resources/schemas"
)

// Store keeps the state the app restores on the next start. *database.Service implements it.
type Store interface {
	CurrentScreen(fallback string) string
	SetCurrentScreen(resource string) error
	SaveSnapshot(profileID uint, resource string, records core.RecordSet) error
}

type Options struct {
	Ctx         context.Context
	Rest        *hotel_client.HotelRest
	Store       Store // optional
	ProfileID   uint
	ProfileName string
	ErrorHold   time.Duration // defaults to admin.DefaultErrorHold
}

// App is the root bubbletea model. It shows one admin screen at a time.
type App struct {
	opts      Options
	screens   []*admin.Screen
	forms     []*FormView
	cursors   []int
	current   int
	status    *StatusZone
	spinner   *Spinner
	width     int
	height    int
	pending   []tea.Cmd
	copyToClp func(string) error
}

func NewApp(opts Options) (*App, error) {
	if opts.Rest == nil {
		return nil, fmt.Errorf("rest client must be provided")
	}
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}
	if opts.ErrorHold == 0 {
		opts.ErrorHold = admin.DefaultErrorHold
	}
	app := &App{
		opts:      opts,
		status:    NewStatusZone(),
		spinner:   NewSpinner(),
		copyToClp: clipboard.WriteAll,
	}
	for _, schema := range schemas.All() {
		resource, err := opts.Rest.GetResource(schema.Resource)
		if err != nil {
			return nil, err
		}
		screen := admin.NewScreen(schema, resource, app,
			admin.WithContext(opts.Ctx),
			admin.WithErrorHold(opts.ErrorHold),
			admin.WithOnLoaded(app.saveSnapshot),
		)
		app.screens = append(app.screens, screen)
		app.forms = append(app.forms, NewFormView(screen.Form()))
		app.cursors = append(app.cursors, 0)
	}
	if opts.Store != nil {
		last := opts.Store.CurrentScreen(schemas.ResourceRooms)
		for i, screen := range app.screens {
			if screen.Schema().Resource == last {
				app.current = i
			}
		}
	}
	return app, nil
}

// Run starts the app on the terminal and blocks until it quits.
func Run(opts Options) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(app.opts.Ctx))
	_, err = p.Run()
	return err
}

// Screen returns the screen shown now.
func (a *App) Screen() *admin.Screen {
	return a.screens[a.current]
}

func (a *App) Status() *StatusZone {
	return a.status
}

func (a *App) Cursor() int {
	return a.cursors[a.current]
}

func (a *App) Init() tea.Cmd {
	log.Info("hotelix started",
		zap.String("profile", a.opts.ProfileName),
		zap.String("screen", a.Screen().Schema().Resource))
	return tea.Batch(tea.SetWindowTitle("hotelix"), a.Screen().Mount())
}

// Notify shows screen notifications in the status zone.
func (a *App) Notify(n admin.Notification) {
	switch n.Level {
	case admin.LevelError:
		log.Warn("Screen error", zap.String("resource", n.Resource), zap.String("message", n.Message), zap.Error(n.Err))
		a.status.SetError(n.Message)
	default:
		info := msg_types.NewInfo(n.Message)
		a.status.SetInfo(info, n.Level == admin.LevelWarn)
		a.pending = append(a.pending, msg_types.DebounceInfo(info.Tag))
	}
}

func (a *App) saveSnapshot(resource string, records core.RecordSet) {
	if a.opts.Store == nil {
		return
	}
	store, profileID := a.opts.Store, a.opts.ProfileID
	a.pending = append(a.pending, func() tea.Msg {
		if err := store.SaveSnapshot(profileID, resource, records); err != nil {
			log.Warn("Failed to save snapshot", zap.String("resource", resource), zap.Error(err))
		}
		return nil
	})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.status.SetWidth(msg.Width)
		for _, fv := range a.forms {
			fv.SetWidth(msg.Width)
		}
	case tea.KeyMsg:
		cmd = a.handleKey(msg)
	case spinnerTickMsg:
		cmd = a.spinner.Update(a.busy())
	case msg_types.InfoDebounceMsg:
		a.status.Debounced(msg.Tag)
	case msg_types.ClearErrorMsg:
		a.status.ClearError()
	case msg_types.ErrorMsg:
		a.status.SetError(msg.Err.Error())
	case msg_types.ClipboardMsg:
		if msg.Err != nil {
			a.status.SetError(fmt.Sprintf("Copy failed: %v", msg.Err))
		} else {
			a.Notify(admin.Notification{Level: admin.LevelInfo, Message: fmt.Sprintf("Copied %s", msg.Text)})
		}
	case msg_types.SetScreenMsg:
		cmd = a.switchTo(msg.Resource)
	default:
		var cmds []tea.Cmd
		for _, screen := range a.screens {
			cmds = append(cmds, screen.Update(msg))
		}
		cmd = tea.Batch(cmds...)
		a.clampCursor()
	}
	return a, a.flush(cmd)
}

// flush batches cmd with the commands queued by notifications and starts the spinner when busy.
func (a *App) flush(cmd tea.Cmd) tea.Cmd {
	cmds := append(a.pending, cmd)
	a.pending = nil
	if a.busy() {
		cmds = append(cmds, a.spinner.Start())
	}
	return tea.Batch(cmds...)
}

// busy reports whether the shown screen waits for the server.
func (a *App) busy() bool {
	screen := a.Screen()
	switch screen.State() {
	case admin.StateLoading, admin.StateSubmitting:
		return true
	}
	for _, row := range screen.Rows() {
		if screen.Deleting(row.ID) {
			return true
		}
	}
	return false
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if a.Screen().Form().Open() {
		return a.handleFormKey(msg)
	}
	return a.handleListKey(msg)
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	screen, fv := a.Screen(), a.forms[a.current]
	if screen.State() == admin.StateSubmitting {
		return nil
	}
	switch msg.String() {
	case "esc":
		screen.Cancel()
		return nil
	case "ctrl+s":
		return a.submit()
	case "enter":
		if fv.OnLastField() {
			return a.submit()
		}
		return fv.Move(1)
	case "tab", "down":
		return fv.Move(1)
	case "shift+tab", "up":
		return fv.Move(-1)
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		if fv.Cycle(delta) {
			return nil
		}
	}
	return fv.Update(msg)
}

func (a *App) submit() tea.Cmd {
	a.status.ClearError()
	return a.Screen().Submit()
}

func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	screen := a.Screen()
	cursor := a.cursors[a.current]
	key := msg.String()
	switch key {
	case "q":
		return tea.Quit
	case "1", "2", "3":
		index := int(key[0] - '1')
		if index < len(a.screens) {
			return a.switchTo(a.screens[index].Schema().Resource)
		}
	case "tab":
		return a.switchTo(a.screens[(a.current+1)%len(a.screens)].Schema().Resource)
	case "up", "k":
		if cursor > 0 {
			a.cursors[a.current]--
		}
	case "down", "j":
		if cursor < len(screen.Rows())-1 {
			a.cursors[a.current]++
		}
	case "a":
		a.status.ClearError()
		if screen.Add() {
			return a.forms[a.current].Reset()
		}
	case "e", "enter":
		a.status.ClearError()
		if screen.Edit(cursor) {
			return a.forms[a.current].Reset()
		}
	case "d":
		a.status.ClearError()
		return screen.Delete(cursor)
	case "r":
		return msg_types.ProcessWithClearError(screen.Refresh())
	case "y":
		rows := screen.Rows()
		if cursor < len(rows) {
			id, copyFn := rows[cursor].ID, a.copyToClp
			return func() tea.Msg {
				return msg_types.ClipboardMsg{Text: id, Err: copyFn(id)}
			}
		}
	}
	return nil
}

// switchTo unmounts the shown screen and mounts the one of resource.
func (a *App) switchTo(resource string) tea.Cmd {
	for i, screen := range a.screens {
		if screen.Schema().Resource != resource {
			continue
		}
		if i == a.current && screen.Active() {
			return nil
		}
		a.Screen().Unmount()
		a.current = i
		a.cursors[i] = 0
		a.status.ClearError()
		if a.opts.Store != nil {
			if err := a.opts.Store.SetCurrentScreen(resource); err != nil {
				log.Warn("Failed to save screen history", zap.Error(err))
			}
		}
		log.Debug("Switched screen", zap.String("resource", resource))
		return screen.Mount()
	}
	return nil
}

func (a *App) clampCursor() {
	for i, screen := range a.screens {
		if n := len(screen.Rows()); a.cursors[i] >= n {
			a.cursors[i] = max(n-1, 0)
		}
	}
}

func (a *App) View() string {
	screen := a.Screen()
	var b strings.Builder

	title := colors.ApplyGradient([]string{"hotelix"})[0]
	if a.opts.ProfileName != "" {
		title += lipgloss.NewStyle().Foreground(colors.DimColor).Render("  " + a.opts.ProfileName)
	}
	b.WriteString(title + "\n")
	b.WriteString(a.tabsView() + "\n\n")

	if screen.Form().Open() {
		b.WriteString(a.forms[a.current].View(screen.State() == admin.StateSubmitting))
	} else {
		b.WriteString(renderTable(screen, a.cursors[a.current], a.width))
	}
	b.WriteString("\n\n")

	spinner := ""
	if a.spinner.Running() {
		spinner = a.spinner.View()
	}
	b.WriteString(a.status.View(spinner) + "\n")

	bindings := listKeyBindings
	if screen.Form().Open() {
		bindings = formKeyBindings
	}
	b.WriteString(renderKeyBindings(bindings, a.width))
	return b.String()
}

func (a *App) tabsView() string {
	active := lipgloss.NewStyle().Background(colors.TabActiveBg).Foreground(colors.TabActiveFg).Bold(true).Padding(0, 1)
	inactive := lipgloss.NewStyle().Foreground(colors.TabInactiveFg).Padding(0, 1)
	tabs := make([]string, 0, len(a.screens))
	for i, screen := range a.screens {
		label := fmt.Sprintf("%d %s", i+1, screen.Schema().Title)
		if i == a.current {
			label += " · " + screen.State().String()
			tabs = append(tabs, active.Render(label))
		} else {
			tabs = append(tabs, inactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
