package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/catalog"
	"github.com/abhisek/codeval/internal/config"
	"github.com/abhisek/codeval/internal/router"
	"github.com/abhisek/codeval/internal/screens/workspace"
)

func testOptions() Options {
	return Options{
		Config:  config.DefaultConfig(),
		Backend: api.NewMockBackend(),
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestHeaderFollowsWorkspace(t *testing.T) {
	m := newAppModel(testOptions())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(AppModel)

	ws := workspace.New(workspace.Deps{
		Backend:   api.NewMockBackend(),
		ServerURL: "http://other.test",
		Language:  config.LanguageCPP,
	}, catalog.Fallback(), nil)
	updated, _ = m.Update(router.ReplaceScreenMsg{Screen: ws})
	m = updated.(AppModel)

	if m.info.Server != "http://other.test" {
		t.Errorf("header server = %q", m.info.Server)
	}
	if m.info.Language != config.LanguageLabel(config.LanguageCPP) {
		t.Errorf("header language = %q", m.info.Language)
	}
}

func TestEscAtRootIsForwarded(t *testing.T) {
	m := newAppModel(testOptions())
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("esc at the root must not pop")
		}
	}
}
