package cli

import (
	"github.com/hbjs97/rpg/internal/setup"
	"github.com/spf13/cobra"
)

func (a *App) newInstallCmd() *cobra.Command {
	r := &setup.Runner{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: "startup 파일을 패치하고 네이티브 확장을 빌드한다",
		Long: `install은 startup 파일에 커서 숨김 블록을 추가한 뒤 외부 컴파일러로
네이티브 grating 확장을 빌드한다. 권한 부족으로 인한 패치 실패는 기본적으로
안내만 출력하고 계속한다. 설정 파일에 strict = true를 지정하면 이 경우에도 중단한다.
파일이 없는 등 그 밖의 패치 실패는 항상 중단한다.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			r.Config = cfg
			r.Home = a.Home
			r.StatePath = a.statePath()
			r.LockPath = a.lockPath()
			r.Commander = a.Commander
			r.Prompter = a.Prompter
			r.Logger = a.Logger
			r.Out = cmd.OutOrStdout()

			_, err = r.Install(cmd.Context())
			return err
		},
	}
	cmd.Flags().StringVar(&r.ShellFlag, "shell", "", "셸 유형 (bash, zsh, sh, fish)")
	cmd.Flags().StringVar(&r.RCFlag, "rc", "", "startup 파일 경로")
	cmd.Flags().BoolVar(&r.Confirm, "confirm", false, "패치 전에 확인한다")
	cmd.Flags().BoolVar(&r.SkipBuild, "skip-build", false, "확장 빌드 생략")
	cmd.Flags().BoolVar(&r.DryRun, "dry-run", false, "변경 내용과 빌드 명령을 출력만 한다")
	return cmd
}
