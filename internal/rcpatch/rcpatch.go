package rcpatch

import (
	"errors"
	"strings"
)

// Outcome은 패치 시도의 결과다.
type Outcome int

const (
	// OutcomeUnknown은 분류되지 않은 실패다 (디스크 오류, 파일 없음 등).
	OutcomeUnknown Outcome = iota
	// OutcomePatched는 블록을 새로 추가한 경우다.
	OutcomePatched
	// OutcomeAlreadyPresent는 marker가 이미 있어 아무것도 하지 않은 경우다.
	OutcomeAlreadyPresent
	// OutcomePermissionDenied는 읽기 또는 추가 권한이 없는 경우다.
	OutcomePermissionDenied
)

func (o Outcome) String() string {
	switch o {
	case OutcomePatched:
		return "patched"
	case OutcomeAlreadyPresent:
		return "already-present"
	case OutcomePermissionDenied:
		return "permission-denied"
	default:
		return "unknown"
	}
}

// ParseOutcome은 String()의 역변환이다. 알 수 없는 값은 OutcomeUnknown이다.
func ParseOutcome(s string) Outcome {
	switch s {
	case "patched":
		return OutcomePatched
	case "already-present":
		return OutcomeAlreadyPresent
	case "permission-denied":
		return OutcomePermissionDenied
	default:
		return OutcomeUnknown
	}
}

// OK는 결과가 성공(추가 또는 이미 존재)인지 반환한다.
func (o Outcome) OK() bool {
	return o == OutcomePatched || o == OutcomeAlreadyPresent
}

// ErrPermissionDenied는 startup 파일 읽기/추가 권한이 없을 때의 sentinel error다.
var ErrPermissionDenied = errors.New("권한 없음")

// ErrInvalidBlock은 marker 또는 블록 설정이 잘못되었을 때의 sentinel error다.
var ErrInvalidBlock = errors.New("잘못된 블록 설정")

// Apply는 기존 내용에 marker가 있는지 확인하고 새 내용과 결과를 반환한다.
// marker가 있으면 existing을 그대로, 없으면 existing 뒤에 block을 붙인 값을 반환한다.
// 파일 시스템에 접근하지 않는다.
func Apply(existing []byte, marker, block string) ([]byte, Outcome) {
	if strings.Contains(string(existing), marker) {
		return existing, OutcomeAlreadyPresent
	}
	updated := make([]byte, 0, len(existing)+len(block))
	updated = append(updated, existing...)
	updated = append(updated, block...)
	return updated, OutcomePatched
}

// CountMarker는 content 안의 marker 출현 횟수를 반환한다.
func CountMarker(content []byte, marker string) int {
	if marker == "" {
		return 0
	}
	return strings.Count(string(content), marker)
}

func validate(marker, block string) error {
	if marker == "" || block == "" {
		return ErrInvalidBlock
	}
	// block이 marker를 포함하지 않으면 재실행 때마다 중복 추가된다.
	if !strings.Contains(block, marker) {
		return ErrInvalidBlock
	}
	return nil
}
