package rcpatch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watchQuiet는 마지막 이벤트 이후 Ensure를 실행하기까지 기다리는 시간이다.
const watchQuiet = 150 * time.Millisecond

// ReportFunc는 Watch가 Ensure를 실행할 때마다 호출된다.
type ReportFunc func(outcome Outcome, err error)

// Watch는 Ensure를 한 번 실행한 뒤 path가 쓰이거나 교체될 때마다 다시 실행한다.
// ctx가 취소되면 nil을 반환한다. 파일 대신 상위 디렉토리를 감시하므로
// rename으로 교체되는 경우도 감지한다.
//
// 재적용은 이벤트가 watchQuiet 동안 멈춘 뒤에만 실행한다. 그 시점에 파일이
// 비어 있으면 O_TRUNC로 연 writer가 아직 쓰는 중으로 보고 다음 이벤트를 기다린다.
// 비어 있는 파일에 추가하면 writer의 offset 0 쓰기가 블록을 덮어쓴다.
func Watch(ctx context.Context, p *Patcher, path string, report ReportFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("rcpatch.Watch: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("rcpatch.Watch: %w", err)
	}
	log := p.logger().With(zap.String("path", target))
	log.Debug("감시 시작")

	report(p.Ensure(ctx, target))

	timer := time.NewTimer(watchQuiet)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("감시 종료")
			return nil
		case <-timer.C:
			if p.truncated(target) {
				log.Debug("빈 파일, 쓰기 대기")
				continue
			}
			report(p.Ensure(ctx, target))
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			log.Debug("변경 감지", zap.Stringer("op", ev.Op))
			timer.Reset(watchQuiet)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("감시 오류", zap.Error(err))
		}
	}
}

// truncated는 path가 존재하지만 비어 있는지 반환한다.
func (p *Patcher) truncated(path string) bool {
	data, err := p.fileSystem().ReadFile(path)
	return err == nil && len(data) == 0
}
