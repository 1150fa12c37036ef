package cli

import (
	"github.com/hbjs97/rpg/internal/config"
	"github.com/hbjs97/rpg/internal/rcpatch"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrPermissionDenied는 startup 파일을 읽거나 추가할 권한이 없을 때의 sentinel error다.
	ErrPermissionDenied = rcpatch.ErrPermissionDenied
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
)
