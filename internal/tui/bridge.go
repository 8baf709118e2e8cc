// ABOUTME: Ordered, unbounded hand-off from background goroutines to the Bubble Tea program
// ABOUTME: Bus handlers and store callbacks post here and never block on the UI loop

package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mauromedda/blinko-go/internal/config"
	"github.com/mauromedda/blinko-go/internal/editor"
	"github.com/mauromedda/blinko-go/internal/eventbus"
)

// ProgramSender is the part of *tea.Program the bridge needs.
type ProgramSender interface {
	Send(msg tea.Msg)
}

// Bridge queues messages and delivers them in order on one goroutine.
type Bridge struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []tea.Msg
	target ProgramSender
	closed bool
	done   chan struct{}
	subs   eventbus.Group
}

// NewBridge creates a bridge with no target yet; messages queue until
// Start is called.
func NewBridge() *Bridge {
	b := &Bridge{done: make(chan struct{})}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Post queues msg. It never blocks.
func (b *Bridge) Post(msg tea.Msg) {
	b.mu.Lock()
	if !b.closed {
		b.queue = append(b.queue, msg)
		b.cond.Signal()
	}
	b.mu.Unlock()
}

// Start begins delivery to target.
func (b *Bridge) Start(target ProgramSender) {
	b.mu.Lock()
	b.target = target
	b.mu.Unlock()
	go b.loop()
}

func (b *Bridge) loop() {
	defer close(b.done)
	for {
		b.mu.Lock()
		for len(b.queue) == 0 && !b.closed {
			b.cond.Wait()
		}
		if b.closed && len(b.queue) == 0 {
			b.mu.Unlock()
			return
		}
		batch := b.queue
		b.queue = nil
		target := b.target
		b.mu.Unlock()

		for _, msg := range batch {
			target.Send(msg)
		}
	}
}

// Stop drops bus subscriptions, delivers what is queued and ends the loop.
func (b *Bridge) Stop() {
	b.subs.Close()
	b.mu.Lock()
	started := b.target != nil
	b.closed = true
	b.cond.Broadcast()
	b.mu.Unlock()
	if started {
		<-b.done
	}
}

// Watch forwards popover signals from hub.
func (b *Bridge) Watch(hub *eventbus.Hub) {
	b.subs.Add(eventbus.On(hub, editor.TagSelectShow, func(q string) { b.Post(TagShowMsg{Query: q}) }))
	b.subs.Add(eventbus.On(hub, editor.TagSelectHidden, func(struct{}) { b.Post(TagHiddenMsg{}) }))
	b.subs.Add(eventbus.On(hub, editor.AIWriteShow, func(struct{}) { b.Post(AIShowMsg{}) }))
	b.subs.Add(eventbus.On(hub, editor.AIWriteHidden, func(struct{}) { b.Post(AIHiddenMsg{}) }))
	b.subs.Add(eventbus.On(hub, SettingsReloaded, func(s *config.Settings) { b.Post(SettingsReloadedMsg{Settings: s}) }))
}

// Notify returns a callback that posts msg, for store OnChange hooks.
func (b *Bridge) Notify(msg tea.Msg) func() {
	return func() { b.Post(msg) }
}
