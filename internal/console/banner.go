package console

import tea "github.com/charmbracelet/bubbletea"

type banner struct {
	text string
	seq  uint64
}

func (m *Model) setSuccess(text string) tea.Cmd {
	m.success.seq++
	m.success.text = text
	return m.after(SuccessBannerTTL, bannerExpiredMsg{kind: bannerSuccess, seq: m.success.seq})
}

func (m *Model) setError(text string) tea.Cmd {
	m.failure.seq++
	m.failure.text = text
	return m.after(ErrorBannerTTL, bannerExpiredMsg{kind: bannerError, seq: m.failure.seq})
}

// expire clears a banner unless it has been replaced since the timer started.
func (m *Model) expire(msg bannerExpiredMsg) {
	b := &m.success
	if msg.kind == bannerError {
		b = &m.failure
	}
	if b.seq == msg.seq {
		b.text = ""
	}
}

func (m *Model) SuccessBanner() string {
	return m.success.text
}

func (m *Model) ErrorBanner() string {
	return m.failure.text
}

func (m *Model) DismissSuccess() {
	m.success.seq++
	m.success.text = ""
}

func (m *Model) DismissError() {
	m.failure.seq++
	m.failure.text = ""
}
