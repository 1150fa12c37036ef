package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hbjs97/rpg/internal/doctor"
	"github.com/hbjs97/rpg/internal/setup"
	"github.com/spf13/cobra"
)

func (a *App) newDoctorCmd() *cobra.Command {
	var shellFlag, rcFlag string
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "커서 숨김 환경을 진단한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context(), cmd.OutOrStdout(), shellFlag, rcFlag)
		},
	}
	cmd.Flags().StringVar(&shellFlag, "shell", "", "셸 유형 (bash, zsh, sh, fish)")
	cmd.Flags().StringVar(&rcFlag, "rc", "", "startup 파일 경로")
	return cmd
}

func (a *App) runDoctor(ctx context.Context, out io.Writer, shellFlag, rcFlag string) error {
	results := []doctor.DiagResult{doctor.CheckConfigPermissions(a.CfgPath)}

	cfg, err := a.loadConfig()
	if err != nil {
		fmt.Fprintf(out, "[FAIL] config: %v\n", err)
		fmt.Fprintln(out, "      Fix: rpg init 실행 또는 설정 파일 확인")
		return nil
	}

	_, rcPath, err := setup.ResolveTarget(cfg, a.Home, shellFlag, rcFlag)
	if err != nil {
		results = append(results, doctor.DiagResult{
			Name:    "shell",
			Status:  doctor.StatusFail,
			Message: err.Error(),
			Fix:     "--shell 또는 설정 파일의 shell로 bash, zsh, sh, fish 중 하나를 지정하세요",
		})
		printDiagResults(out, results)
		return nil
	}

	results = append(results, doctor.RunAll(ctx, a.Commander, rcPath)...)
	printDiagResults(out, results)
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(out io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		fmt.Fprintf(out, "  [%s] %s: %s\n", statusIcon(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(out, "      Fix: %s\n", r.Fix)
		}
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return color.GreenString("OK")
	case doctor.StatusWarn:
		return color.YellowString("!!")
	case doctor.StatusFail:
		return color.RedString("FAIL")
	default:
		return "??"
	}
}
