package setup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hbjs97/rpg/internal/config"
	"github.com/hbjs97/rpg/internal/rcpatch"
	"github.com/hbjs97/rpg/internal/shell"
	"go.uber.org/zap"
)

// DetectShell은 현재 사용자의 셸을 감지한다.
func DetectShell() string {
	sh := os.Getenv("SHELL")
	if sh == "" {
		return ""
	}
	return filepath.Base(sh)
}

// ShellRCPath는 셸별 startup 파일 경로를 반환한다.
func ShellRCPath(home, shellType string) string {
	switch shellType {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "sh":
		return filepath.Join(home, ".profile")
	case "fish":
		return filepath.Join(home, ".config", "fish", "conf.d", "rpg.fish")
	default:
		return ""
	}
}

// ResolveTarget은 패치 대상 셸과 startup 파일 경로를 결정한다.
// 우선순위: 플래그 > 설정 파일 > $SHELL 감지. 셸을 알 수 없으면 bash로 간주한다.
func ResolveTarget(cfg *config.Config, home, shellFlag, rcFlag string) (shellType, rcPath string, err error) {
	shellType = shellFlag
	if shellType == "" {
		shellType = cfg.Shell
	}
	if shellType == "" {
		shellType = DetectShell()
	}
	if shellType == "" {
		shellType = "bash"
	}
	if !shell.Supported(shellType) {
		return "", "", fmt.Errorf("setup.ResolveTarget: 지원하지 않는 셸: %s", shellType)
	}

	rcPath = config.ExpandHome(rcFlag, home)
	if rcPath == "" {
		rcPath = cfg.ResolveRCPath(home)
	}
	if rcPath == "" {
		rcPath = ShellRCPath(home, shellType)
	}
	return shellType, rcPath, nil
}

// NewPatcher는 셸 유형과 설정에 맞는 Patcher를 만든다.
// lockPath가 비어있거나 설정에서 lock이 꺼져 있으면 잠금을 사용하지 않는다.
func NewPatcher(shellType string, cfg *config.Config, lockPath string, logger *zap.Logger) *rcpatch.Patcher {
	p := &rcpatch.Patcher{
		Marker:        shell.Marker,
		Block:         shell.CursorHideBlock(shellType),
		CreateMissing: cfg.CreateMissing,
		Logger:        logger,
	}
	if cfg.IsLock() {
		p.LockPath = lockPath
	}
	return p
}

// EnsureCursorHideBlock은 path에 bash용 커서 숨김 블록이 없으면 추가한다.
// 이미 있으면 아무것도 하지 않는다.
func EnsureCursorHideBlock(ctx context.Context, path string) (rcpatch.Outcome, error) {
	p := &rcpatch.Patcher{
		Marker: shell.Marker,
		Block:  shell.CursorHideBlock("bash"),
	}
	return p.Ensure(ctx, path)
}
