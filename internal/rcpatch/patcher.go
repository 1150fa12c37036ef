package rcpatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"
)

const lockRetryDelay = 50 * time.Millisecond

// Patcher는 startup 파일에 marker 블록을 멱등하게 추가한다.
type Patcher struct {
	// FS는 파일 접근 구현이다. nil이면 OSFileSystem.
	FS FileSystem
	// Marker는 블록 존재 여부를 판별하는 문자열이다.
	Marker string
	// Block은 추가할 텍스트다. Marker를 포함해야 한다.
	Block string
	// LockPath가 비어있지 않으면 읽기-확인-추가 구간을 advisory lock으로 감싼다.
	LockPath string
	// CreateMissing이 true면 없는 파일을 빈 파일로 취급한다.
	CreateMissing bool
	// Logger는 nil이면 로그를 남기지 않는다.
	Logger *zap.Logger
}

// Ensure는 path에 블록이 없으면 추가하고 결과를 반환한다.
// 권한 오류는 OutcomePermissionDenied와 ErrPermissionDenied를 감싼 에러로 반환한다.
// 읽기 단계에서 실패하면 쓰기는 시도하지 않는다. 재시도하지 않는다.
func (p *Patcher) Ensure(ctx context.Context, path string) (Outcome, error) {
	if err := validate(p.Marker, p.Block); err != nil {
		return OutcomeUnknown, fmt.Errorf("rcpatch.Ensure: %w", err)
	}
	log := p.logger().With(zap.String("path", path))

	if p.LockPath != "" {
		unlock, err := p.lock(ctx)
		if err != nil {
			return OutcomeUnknown, err
		}
		defer unlock()
	}

	existing, err := p.fileSystem().ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrPermission):
		log.Debug("startup 파일 읽기 권한 없음", zap.Error(err))
		return OutcomePermissionDenied, fmt.Errorf("rcpatch.Ensure: %s 읽기 실패, sudo로 다시 실행하세요: %w: %w", path, ErrPermissionDenied, err)
	case errors.Is(err, fs.ErrNotExist) && p.CreateMissing:
		existing = nil
	default:
		return OutcomeUnknown, fmt.Errorf("rcpatch.Ensure: %w", err)
	}

	updated, outcome := Apply(existing, p.Marker, p.Block)
	if outcome == OutcomeAlreadyPresent {
		log.Debug("marker 이미 존재", zap.String("marker", p.Marker))
		return outcome, nil
	}

	if err := p.fileSystem().AppendFile(path, updated[len(existing):]); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			log.Debug("startup 파일 쓰기 권한 없음", zap.Error(err))
			return OutcomePermissionDenied, fmt.Errorf("rcpatch.Ensure: %s 추가 실패, sudo로 다시 실행하세요: %w: %w", path, ErrPermissionDenied, err)
		}
		return OutcomeUnknown, fmt.Errorf("rcpatch.Ensure: %w", err)
	}

	log.Info("블록 추가 완료", zap.Int("bytes", len(updated)-len(existing)))
	return OutcomePatched, nil
}

// Preview는 Ensure가 만들 내용을 파일을 바꾸지 않고 계산한다.
func (p *Patcher) Preview(path string) (before, after []byte, outcome Outcome, err error) {
	if err := validate(p.Marker, p.Block); err != nil {
		return nil, nil, OutcomeUnknown, fmt.Errorf("rcpatch.Preview: %w", err)
	}
	existing, err := p.fileSystem().ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrPermission):
		return nil, nil, OutcomePermissionDenied, fmt.Errorf("rcpatch.Preview: %w: %w", ErrPermissionDenied, err)
	case errors.Is(err, fs.ErrNotExist) && p.CreateMissing:
		existing = nil
	default:
		return nil, nil, OutcomeUnknown, fmt.Errorf("rcpatch.Preview: %w", err)
	}
	updated, outcome := Apply(existing, p.Marker, p.Block)
	return existing, updated, outcome, nil
}

func (p *Patcher) lock(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(p.LockPath), 0700); err != nil {
		return nil, fmt.Errorf("rcpatch.lock: %w", err)
	}
	fl := flock.New(p.LockPath)
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("rcpatch.lock: %s: %w", p.LockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("rcpatch.lock: 잠금 획득 실패: %s", p.LockPath)
	}
	return func() {
		if err := fl.Unlock(); err != nil {
			p.logger().Warn("잠금 해제 실패", zap.String("lock", p.LockPath), zap.Error(err))
		}
	}, nil
}

func (p *Patcher) fileSystem() FileSystem {
	if p.FS == nil {
		return OSFileSystem{}
	}
	return p.FS
}

func (p *Patcher) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
