package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hbjs97/rpg/internal/rcpatch"
	"github.com/hbjs97/rpg/internal/setup"
	"github.com/hbjs97/rpg/internal/shell"
	"github.com/hbjs97/rpg/internal/state"
	"github.com/spf13/cobra"
)

func (a *App) newStatusCmd() *cobra.Command {
	var shellFlag, rcFlag string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "startup 파일의 커서 숨김 블록 상태를 표시한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd.OutOrStdout(), shellFlag, rcFlag)
		},
	}
	cmd.Flags().StringVar(&shellFlag, "shell", "", "셸 유형 (bash, zsh, sh, fish)")
	cmd.Flags().StringVar(&rcFlag, "rc", "", "startup 파일 경로")
	return cmd
}

func (a *App) runStatus(out io.Writer, shellFlag, rcFlag string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	shellType, rcPath, err := setup.ResolveTarget(cfg, a.Home, shellFlag, rcFlag)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "셸:          %s\n", shellType)
	fmt.Fprintf(out, "startup 파일: %s\n", rcPath)

	data, err := os.ReadFile(rcPath)
	if err != nil {
		fmt.Fprintf(out, "블록:        확인 불가 (%v)\n", err)
	} else {
		fmt.Fprintf(out, "블록:        %s %d개\n", shell.Marker, rcpatch.CountMarker(data, shell.Marker))
	}

	st, err := state.Load(a.statePath())
	if err != nil {
		return err
	}
	if e, ok := st.Lookup(rcPath); ok {
		outcome := e.OutcomeOf()
		fmt.Fprintf(out, "마지막 결과:  %s (%s)\n", outcome, e.RecordedAt)
		if !outcome.OK() {
			fmt.Fprintln(out, "  rpg doctor로 원인을 확인하세요.")
		}
	} else {
		fmt.Fprintln(out, "마지막 결과:  기록 없음")
	}
	return nil
}
