package setup

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// HuhPrompter는 charmbracelet/huh 기반의 Prompter 구현이다.
type HuhPrompter struct{}

var _ Prompter = (*HuhPrompter)(nil)

// Confirm은 확인 프롬프트를 실행한다.
func (h *HuhPrompter) Confirm(message string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Affirmative("예").
			Negative("아니오").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("setup.Confirm: %w", err)
	}
	return ok, nil
}
