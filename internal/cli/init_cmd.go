package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// initTemplate는 rpg init이 생성하는 기본 config.toml 내용이다.
const initTemplate = `# rpg configuration file

version = 1
# shell = "bash"
# rc_path = "~/.bashrc"
# strict = false
# lock = true
# create_missing = false

[extension]
name = "_rpigratings"
sources = ["rpg/_rpigratings.c"]
compile_args = ["-O3"]
link_args = ["-lwiringPi"]
compiler = "cc"
output_dir = "."
`

func (a *App) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "기본 설정 파일을 생성한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd.OutOrStdout())
		},
	}
}

// runInit은 설정 파일 템플릿을 생성한다.
func (a *App) runInit(out io.Writer) error {
	if _, err := os.Stat(a.CfgPath); err == nil {
		return fmt.Errorf("cli.init: 설정 파일이 이미 존재합니다: %s", a.CfgPath)
	}

	dir := filepath.Dir(a.CfgPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("cli.init: 디렉토리 생성 실패: %w", err)
	}

	if err := os.WriteFile(a.CfgPath, []byte(initTemplate), 0600); err != nil {
		return fmt.Errorf("cli.init: 설정 파일 생성 실패: %w", err)
	}

	fmt.Fprintf(out, "설정 파일이 생성되었습니다: %s\n", a.CfgPath)
	fmt.Fprintln(out, "설정을 확인한 후 rpg doctor로 환경을 점검하세요.")
	return nil
}
