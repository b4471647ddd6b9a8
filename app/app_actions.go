package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/kastheco/webmon/config/auditlog"
	"github.com/kastheco/webmon/internal/webmnt"
	"github.com/kastheco/webmon/log"

	tea "github.com/charmbracelet/bubbletea"
)

type listResultMsg struct {
	page uint
	// prev is the page the rows on screen belong to.
	prev   uint
	result webmnt.Page
	err    error
}

type deleteResultMsg struct {
	actionID string
	ids      []string
	err      error
}

type messageResultMsg struct {
	actionID string
	ids      []string
	text     string
	result   webmnt.MessageResult
	err      error
}

type renewResultMsg struct {
	token string
	err   error
}

// startCall marks a remote call as in flight and returns the command that
// performs it. Only one call runs at a time.
func (m *home) startCall(call func(ctx context.Context) tea.Msg) tea.Cmd {
	m.inflight = true
	ctx := m.ctx
	return func() tea.Msg {
		return call(ctx)
	}
}

// refresh refetches the current page.
func (m *home) refresh() tea.Cmd {
	return m.fetchPage(m.registry.Page())
}

// fetchPage lists the registry's page after a page change away from prev.
// The page number goes back to prev when the list fails, so the header keeps
// matching the rows on screen.
func (m *home) fetchPage(prev uint) tea.Cmd {
	remote, token := m.remote, m.token
	page, size := m.registry.Page(), m.cfg.PageSize
	return m.startCall(func(ctx context.Context) tea.Msg {
		res, err := remote.ListSessions(ctx, token, page, size)
		return listResultMsg{page: page, prev: prev, result: res, err: err}
	})
}

func (m *home) handleListResult(msg listResultMsg) {
	if msg.err != nil {
		if msg.page == m.registry.Page() && msg.prev != msg.page {
			m.registry.SetPage(msg.prev)
		}
		m.handleError(msg.err)
		return
	}
	if msg.page != m.registry.Page() {
		log.InfoLog.Printf("dropping list result for page %d, now on %d", msg.page, m.registry.Page())
		return
	}
	m.registry.Replace(msg.result.Items, msg.result.HasNext)
}

// deleteSessions removes ids on the server and refreshes afterwards whatever
// the outcome.
func (m *home) deleteSessions(ids []string) tea.Cmd {
	remote, token := m.remote, m.token
	actionID := auditlog.NewActionID()
	return m.startCall(func(ctx context.Context) tea.Msg {
		err := remote.DeleteSessions(ctx, token, ids)
		return deleteResultMsg{actionID: actionID, ids: ids, err: err}
	})
}

func (m *home) handleDeleteResult(msg deleteResultMsg) tea.Cmd {
	if msg.err != nil {
		m.handleError(msg.err, auditlog.WithAction(msg.actionID), auditlog.WithSessions(msg.ids...))
	} else {
		m.registry.Unmark(msg.ids...)
		m.audit.Emit(auditlog.NewEvent(auditlog.EventSessionsDeleted,
			"deleted "+describeTargets(msg.ids),
			auditlog.WithAction(msg.actionID), auditlog.WithSessions(msg.ids...)))
		log.InfoLog.Printf("deleted sessions %s", strings.Join(msg.ids, ","))
		m.toastManager.Success("deleted " + describeTargets(msg.ids))
	}
	return m.refresh()
}

// sendMessage sends text to ids. An empty text is sent as is.
func (m *home) sendMessage(ids []string, text string) tea.Cmd {
	remote, token := m.remote, m.token
	actionID := auditlog.NewActionID()
	return m.startCall(func(ctx context.Context) tea.Msg {
		res, err := remote.SendMessage(ctx, token, ids, text)
		return messageResultMsg{actionID: actionID, ids: ids, text: text, result: res, err: err}
	})
}

// handleMessageResult shows a non-empty server message in the banner; the
// server uses it to report refusals such as quotas.
func (m *home) handleMessageResult(msg messageResultMsg) {
	opts := []auditlog.EventOption{auditlog.WithAction(msg.actionID), auditlog.WithSessions(msg.ids...)}
	if msg.err != nil {
		m.handleError(msg.err, opts...)
		return
	}
	if msg.result.Message != "" {
		log.WarningLog.Printf("message to %s answered with level %d: %s",
			strings.Join(msg.ids, ","), msg.result.Level, msg.result.Message)
		m.audit.Emit(auditlog.NewEvent(auditlog.EventMessageSent, msg.result.Message,
			append(opts, auditlog.WithLevel("warn"), auditlog.WithDetail(msg.text))...))
		m.pushBanner(msg.result.Message)
		return
	}
	m.audit.Emit(auditlog.NewEvent(auditlog.EventMessageSent, "sent to "+describeTargets(msg.ids),
		append(opts, auditlog.WithDetail(msg.text))...))
	m.toastManager.Success("message sent to " + describeTargets(msg.ids))
}

// renewToken authenticates again and swaps the token on success.
func (m *home) renewToken() tea.Cmd {
	remote, creds := m.remote, credentials(m.cfg)
	return m.startCall(func(ctx context.Context) tea.Msg {
		token, err := remote.Authenticate(ctx, creds)
		return renewResultMsg{token: token, err: err}
	})
}

func (m *home) handleRenewResult(msg renewResultMsg) {
	if msg.err != nil {
		m.handleError(fmt.Errorf("renew token: %w", msg.err))
		return
	}
	m.token = msg.token
	m.audit.Emit(auditlog.NewEvent(auditlog.EventTokenRenewed, "token renewed"))
	log.InfoLog.Printf("token renewed")
}

// copySelectedID puts the cursor session's id on the clipboard.
func (m *home) copySelectedID() {
	rec, ok := m.registry.Selected()
	if !ok {
		return
	}
	if err := m.clipboard(rec.ID); err != nil {
		m.handleError(fmt.Errorf("copy session id: %w", err), auditlog.WithSessions(rec.ID))
		return
	}
	m.audit.Emit(auditlog.NewEvent(auditlog.EventIDCopied, "copied "+rec.ID, auditlog.WithSessions(rec.ID)))
	m.toastManager.Success("copied " + rec.ID)
}

func describeTargets(ids []string) string {
	if len(ids) == 1 {
		return ids[0]
	}
	return fmt.Sprintf("%d sessions", len(ids))
}
