// Package doctor diagnoses whether the cursor-hide block can work on this machine.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hbjs97/rpg/internal/cmdexec"
	"github.com/hbjs97/rpg/internal/config"
	"github.com/hbjs97/rpg/internal/rcpatch"
	"github.com/hbjs97/rpg/internal/shell"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// CheckSetterm은 블록이 호출하는 setterm 존재 여부를 확인한다.
func CheckSetterm(ctx context.Context, cmd cmdexec.Commander) DiagResult {
	if _, err := cmd.LookPath("setterm"); err != nil {
		return DiagResult{
			Name:    "setterm",
			Status:  StatusFail,
			Message: "setterm 없음",
			Fix:     "util-linux 패키지를 설치하세요",
		}
	}
	out, err := cmd.Run(ctx, "setterm", "--version")
	if err != nil {
		return DiagResult{
			Name:    "setterm",
			Status:  StatusWarn,
			Message: fmt.Sprintf("setterm 실행 실패: %v", err),
			Fix:     "util-linux 패키지를 다시 설치하세요",
		}
	}
	return DiagResult{
		Name:    "setterm",
		Status:  StatusOK,
		Message: strings.TrimSpace(string(out)),
	}
}

// CheckRCFile은 startup 파일을 읽고 추가할 수 있는지 확인한다.
// 쓰기 가능 여부는 O_APPEND로 열었다 닫아서 확인하며 내용은 바꾸지 않는다.
func CheckRCFile(path string) DiagResult {
	name := "rc_file"
	if path == "" {
		return DiagResult{
			Name:    name,
			Status:  StatusFail,
			Message: "startup 파일 경로를 결정할 수 없음",
			Fix:     "설정 파일에 rc_path를 지정하거나 --rc 플래그를 사용하세요",
		}
	}
	f, err := os.Open(path)
	if err != nil {
		res := DiagResult{Name: name, Status: StatusFail, Message: fmt.Sprintf("%s 읽기 실패: %v", path, err)}
		switch {
		case errors.Is(err, fs.ErrNotExist):
			res.Fix = "rpg patch --create 로 생성하세요"
		case errors.Is(err, fs.ErrPermission):
			res.Fix = "sudo로 다시 실행하세요"
		}
		return res
	}
	f.Close()

	w, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return DiagResult{
			Name:    name,
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 쓰기 불가: %v", path, err),
			Fix:     "sudo로 다시 실행하세요",
		}
	}
	w.Close()

	return DiagResult{
		Name:    name,
		Status:  StatusOK,
		Message: fmt.Sprintf("%s 읽기/쓰기 가능", path),
	}
}

// CheckMarker는 marker 출현 횟수를 확인한다.
func CheckMarker(path string) DiagResult {
	name := "cursor_block"
	data, err := os.ReadFile(path)
	if err != nil {
		return DiagResult{
			Name:    name,
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 읽기 실패", path),
		}
	}
	switch n := rcpatch.CountMarker(data, shell.Marker); {
	case n == 0:
		return DiagResult{
			Name:    name,
			Status:  StatusWarn,
			Message: "커서 숨김 블록 없음",
			Fix:     "rpg patch 실행",
		}
	case n == 1:
		return DiagResult{
			Name:    name,
			Status:  StatusOK,
			Message: "커서 숨김 블록 설치됨",
		}
	default:
		return DiagResult{
			Name:    name,
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s가 %d번 등장 — 동시 설치로 중복 추가되었을 수 있음", shell.Marker, n),
			Fix:     fmt.Sprintf("%s에서 중복 블록을 직접 제거하세요", path),
		}
	}
}

// CheckSession은 현재 세션이 SSH 원격 세션인지 보고한다.
func CheckSession() DiagResult {
	if os.Getenv("SSH_CONNECTION") != "" {
		return DiagResult{
			Name:    "session",
			Status:  StatusOK,
			Message: "SSH 세션 — 커서가 표시됩니다",
		}
	}
	return DiagResult{
		Name:    "session",
		Status:  StatusOK,
		Message: "로컬 세션 — 커서가 숨겨집니다",
	}
}

// CheckConfigPermissions는 설정 파일이 있으면 권한이 0600인지 확인한다.
func CheckConfigPermissions(path string) DiagResult {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DiagResult{
			Name:    "config",
			Status:  StatusOK,
			Message: "설정 파일 없음 — 기본값 사용",
		}
	}
	if err := config.ValidateFilePermissions(path); err != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusWarn,
			Message: err.Error(),
			Fix:     fmt.Sprintf("chmod 600 %s", path),
		}
	}
	return DiagResult{
		Name:    "config",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s 권한 정상", path),
	}
}

// RunAll은 startup 파일 관련 진단을 모두 실행한다.
// startup 파일을 읽을 수 없으면 marker 검사는 건너뛴다.
func RunAll(ctx context.Context, cmd cmdexec.Commander, rcPath string) []DiagResult {
	var results []DiagResult
	results = append(results, CheckSetterm(ctx, cmd))
	rc := CheckRCFile(rcPath)
	results = append(results, rc)
	if rc.Status != StatusFail {
		results = append(results, CheckMarker(rcPath))
	}
	results = append(results, CheckSession())
	return results
}
