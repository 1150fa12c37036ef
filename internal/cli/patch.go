package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hbjs97/rpg/internal/preview"
	"github.com/hbjs97/rpg/internal/rcpatch"
	"github.com/hbjs97/rpg/internal/setup"
	"github.com/hbjs97/rpg/internal/shell"
	"github.com/hbjs97/rpg/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type patchOptions struct {
	shell  string
	rc     string
	dryRun bool
	watch  bool
	create bool
}

func (a *App) newPatchCmd() *cobra.Command {
	var opts patchOptions

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "startup 파일에 커서 숨김 블록을 추가한다 (이미 있으면 건너뜀)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPatch(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.shell, "shell", "", "셸 유형 (bash, zsh, sh, fish)")
	cmd.Flags().StringVar(&opts.rc, "rc", "", "startup 파일 경로")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "변경 내용을 diff로 출력만 한다")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "파일이 다시 쓰일 때마다 블록을 재적용한다")
	cmd.Flags().BoolVar(&opts.create, "create", false, "startup 파일이 없으면 생성한다")
	return cmd
}

func (a *App) runPatch(ctx context.Context, out io.Writer, opts patchOptions) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if opts.create {
		cfg.CreateMissing = true
	}

	shellType, rcPath, err := setup.ResolveTarget(cfg, a.Home, opts.shell, opts.rc)
	if err != nil {
		return err
	}
	p := setup.NewPatcher(shellType, cfg, a.lockPath(), a.Logger)

	switch {
	case opts.dryRun:
		before, after, _, err := p.Preview(rcPath)
		if err != nil {
			setup.PrintFailure(out, err)
			return err
		}
		if diff := preview.Unified(rcPath, string(before), string(after)); diff != "" {
			fmt.Fprint(out, diff)
		} else {
			fmt.Fprintf(out, "%s: 이미 적용됨\n", rcPath)
		}
		return nil
	case opts.watch:
		return a.watchPatch(ctx, out, p, rcPath)
	}

	outcome, err := p.Ensure(ctx, rcPath)
	a.record(rcPath, outcome)
	if err != nil {
		setup.PrintFailure(out, err)
		return err
	}
	setup.PrintOutcome(out, rcPath, outcome)
	return nil
}

func (a *App) watchPatch(ctx context.Context, out io.Writer, p *rcpatch.Patcher, rcPath string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(out, "%s 감시 중 (Ctrl+C로 종료)\n", rcPath)
	return rcpatch.Watch(ctx, p, rcPath, func(outcome rcpatch.Outcome, err error) {
		a.record(rcPath, outcome)
		if err != nil {
			setup.PrintFailure(out, err)
			return
		}
		if outcome == rcpatch.OutcomePatched {
			setup.PrintOutcome(out, rcPath, outcome)
		}
	})
}

func (a *App) record(rcPath string, outcome rcpatch.Outcome) {
	st, err := state.Load(a.statePath())
	if err == nil {
		st.Record(rcPath, shell.Marker, outcome)
		err = st.Save(a.statePath())
	}
	if err != nil && a.Logger != nil {
		a.Logger.Warn("state 기록 실패", zap.Error(err))
	}
}
