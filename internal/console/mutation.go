package console

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/productbazar/bazaaradmin/internal/api"
	"github.com/productbazar/bazaaradmin/internal/roles"
	"github.com/productbazar/bazaaradmin/pkg/logger"
)

const (
	failedPrimaryMsg   = "Failed to update role"
	failedSecondaryMsg = "Failed to update secondary roles"
)

func (m *Model) Submitting() bool {
	return m.submitting
}

// CanCommitPrimary is false when the draft equals the current role.
func (m *Model) CanCommitPrimary() bool {
	if !m.editable() {
		return false
	}
	u, ok := m.dir.Get(m.sel.ID)
	return ok && m.sel.DraftPrimary != u.Role
}

func (m *Model) CanCommitSecondary() bool {
	return m.editable() && m.dir.Has(m.sel.ID)
}

func (m *Model) CanCancel() bool {
	return m.sel.Mode == Editing && !m.submitting
}

func (m *Model) editable() bool {
	return m.mounted && m.sel.Mode == Editing && !m.submitting
}

// CommitPrimary sends the draft primary role.
func (m *Model) CommitPrimary() tea.Cmd {
	if !m.CanCommitPrimary() {
		return nil
	}
	id, role := m.sel.ID, m.sel.DraftPrimary
	svc := m.svc
	done := mutationDoneMsg{kind: MutationPrimary, userID: id, epoch: m.sel.Epoch, role: role}
	return m.startMutation(done, func(ctx context.Context) error {
		return svc.UpdateUserRole(ctx, id, role)
	})
}

// CommitSecondary sends the draft secondary set in insertion order.
func (m *Model) CommitSecondary() tea.Cmd {
	if !m.CanCommitSecondary() {
		return nil
	}
	id, secondary := m.sel.ID, m.sel.DraftSecondary.Slice()
	svc := m.svc
	done := mutationDoneMsg{kind: MutationSecondary, userID: id, epoch: m.sel.Epoch, secondary: secondary}
	return m.startMutation(done, func(ctx context.Context) error {
		return svc.UpdateSecondaryRoles(ctx, id, secondary)
	})
}

func (m *Model) startMutation(done mutationDoneMsg, call func(context.Context) error) tea.Cmd {
	if m.mutationCancel != nil {
		m.mutationCancel()
	}
	done.mount = m.ctx
	ctx, cancel := context.WithCancel(m.ctx)
	m.mutationCancel = cancel
	m.submitting = true
	logger.Info("role_update_started", map[string]interface{}{
		"kind":    done.kind.String(),
		"user_id": done.userID,
	})
	return func() tea.Msg {
		defer cancel()
		done.err = call(ctx)
		return done
	}
}

func (m *Model) handleMutation(msg mutationDoneMsg) tea.Cmd {
	if !m.mounted || msg.mount != m.ctx {
		return nil
	}
	m.submitting = false
	m.mutationCancel = nil

	if msg.err != nil {
		if api.IsCanceled(msg.err) {
			return nil
		}
		fallback := failedPrimaryMsg
		if msg.kind == MutationSecondary {
			fallback = failedSecondaryMsg
		}
		text := api.Message(msg.err, fallback)
		logger.Error("role_update_failed", msg.err, map[string]interface{}{
			"kind":    msg.kind.String(),
			"user_id": msg.userID,
		})
		m.notify.Error(text)
		return m.setError(text)
	}

	var patched bool
	switch msg.kind {
	case MutationPrimary:
		patched = m.dir.Patch(msg.userID, func(u *api.User) { u.Role = msg.role })
	case MutationSecondary:
		secondary := append([]roles.Role{}, msg.secondary...)
		patched = m.dir.Patch(msg.userID, func(u *api.User) { u.SecondaryRoles = secondary })
	}
	if patched {
		m.engine.Apply(m.dir)
	}
	if m.sel.ID == msg.userID && m.sel.Epoch == msg.epoch && m.sel.Mode == Editing {
		m.sel.endEdit()
	}

	text := m.successText(msg)
	logger.Info("role_update_succeeded", map[string]interface{}{
		"kind":    msg.kind.String(),
		"user_id": msg.userID,
	})
	m.notify.Success(text)
	return m.setSuccess(text)
}

func (m *Model) successText(msg mutationDoneMsg) string {
	name := "user"
	if u, ok := m.dir.Get(msg.userID); ok {
		name = u.DisplayName()
	}
	if msg.kind == MutationPrimary {
		return fmt.Sprintf("Updated %s's role to %s", name, msg.role.Label())
	}
	return fmt.Sprintf("Updated secondary roles for %s", name)
}
