package setup

import "github.com/hbjs97/rpg/internal/rcpatch"

// Prompter는 사용자 확인 프롬프트를 추상화하는 interface다.
// 프로덕션에서는 huh 기반 구현, 테스트에서는 mock을 사용한다.
type Prompter interface {
	// Confirm은 예/아니오 질문을 표시한다.
	Confirm(message string) (bool, error)
}

// Report는 install 실행 결과다.
type Report struct {
	Shell   string
	RCPath  string
	Outcome rcpatch.Outcome
	// PatchErr는 startup 파일 패치 실패 원인이다. advisory 정책에서는 install이 계속된다.
	PatchErr error
	// Skipped는 사용자가 패치를 거절한 경우 true다.
	Skipped bool
	Built   bool
}
