package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hbjs97/rpg/internal/build"
	"github.com/hbjs97/rpg/internal/cmdexec"
	"github.com/hbjs97/rpg/internal/config"
	"github.com/hbjs97/rpg/internal/preview"
	"github.com/hbjs97/rpg/internal/rcpatch"
	"github.com/hbjs97/rpg/internal/shell"
	"github.com/hbjs97/rpg/internal/state"
	"go.uber.org/zap"
)

// Runner는 install 플로우의 진입점이다.
// startup 파일 패치 후 네이티브 확장을 빌드한다.
type Runner struct {
	Config    *config.Config
	Home      string
	StatePath string
	LockPath  string
	Commander cmdexec.Commander
	Prompter  Prompter
	Logger    *zap.Logger
	Out       io.Writer

	ShellFlag string
	RCFlag    string
	Confirm   bool // 패치 전에 Prompter로 확인한다.
	SkipBuild bool
	DryRun    bool
}

// Install은 install 플로우를 실행한다.
// 권한 오류로 인한 패치 실패는 출력 후 계속 진행하며, strict 설정이면 에러를 반환한다.
// 그 밖의 패치 실패와 빌드 실패는 항상 에러다.
func (r *Runner) Install(ctx context.Context) (*Report, error) {
	report := &Report{}

	if err := r.patchStep(ctx, report); err != nil {
		report.PatchErr = err
		PrintFailure(r.out(), err)
		if r.Config.Strict || !errors.Is(err, rcpatch.ErrPermissionDenied) {
			return report, err
		}
		r.logger().Warn("startup 파일 패치 실패, 설치 계속", zap.Error(err))
	}

	if r.SkipBuild {
		return report, nil
	}
	if r.DryRun {
		fmt.Fprintf(r.out(), "빌드 명령: %s\n", build.CommandLine(r.Config.Extension))
		return report, nil
	}
	b := &build.Builder{Commander: r.Commander, Logger: r.Logger}
	if err := b.Build(ctx, r.Config.Extension); err != nil {
		return report, err
	}
	report.Built = true
	fmt.Fprintf(r.out(), "확장 빌드 완료: %s\n", build.OutputPath(r.Config.Extension))
	return report, nil
}

func (r *Runner) patchStep(ctx context.Context, report *Report) error {
	shellType, rcPath, err := ResolveTarget(r.Config, r.Home, r.ShellFlag, r.RCFlag)
	if err != nil {
		return err
	}
	report.Shell, report.RCPath = shellType, rcPath

	if r.Confirm && r.Prompter != nil {
		ok, err := r.Prompter.Confirm(fmt.Sprintf("%s에 커서 숨김 블록을 추가할까요?", rcPath))
		if err != nil {
			return err
		}
		if !ok {
			report.Skipped = true
			fmt.Fprintln(r.out(), "startup 파일 패치를 건너뜁니다.")
			return nil
		}
	}

	p := NewPatcher(shellType, r.Config, r.LockPath, r.Logger)

	if r.DryRun {
		before, after, outcome, err := p.Preview(rcPath)
		report.Outcome = outcome
		if err != nil {
			return err
		}
		if diff := preview.Unified(rcPath, string(before), string(after)); diff != "" {
			fmt.Fprint(r.out(), diff)
		} else {
			fmt.Fprintf(r.out(), "%s: 이미 적용됨\n", rcPath)
		}
		return nil
	}

	outcome, err := p.Ensure(ctx, rcPath)
	report.Outcome = outcome
	r.record(rcPath, outcome)
	if err != nil {
		return err
	}
	PrintOutcome(r.out(), rcPath, outcome)
	return nil
}

// record는 결과를 state 파일에 남긴다. 실패해도 install을 막지 않는다.
func (r *Runner) record(rcPath string, outcome rcpatch.Outcome) {
	if r.StatePath == "" {
		return
	}
	st, err := state.Load(r.StatePath)
	if err == nil {
		st.Record(rcPath, shell.Marker, outcome)
		err = st.Save(r.StatePath)
	}
	if err != nil {
		r.logger().Warn("state 기록 실패", zap.String("state", r.StatePath), zap.Error(err))
	}
}

// PrintOutcome은 성공한 패치 결과를 출력한다.
func PrintOutcome(w io.Writer, rcPath string, outcome rcpatch.Outcome) {
	switch outcome {
	case rcpatch.OutcomePatched:
		fmt.Fprintf(w, "커서 숨김 블록이 추가되었습니다: %s\n", rcPath)
	case rcpatch.OutcomeAlreadyPresent:
		fmt.Fprintf(w, "커서 숨김 블록이 이미 있습니다: %s\n", rcPath)
	}
}

// PrintFailure는 패치 실패 안내를 출력한다.
// 권한 오류면 sudo 재실행을 안내한다.
func PrintFailure(w io.Writer, err error) {
	fmt.Fprintln(w, "Install failed")
	if errors.Is(err, rcpatch.ErrPermissionDenied) {
		fmt.Fprintln(w, "Try running install as sudo")
		return
	}
	fmt.Fprintf(w, "  %v\n", err)
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
