package cli

import (
	"fmt"

	"github.com/hbjs97/rpg/internal/setup"
	"github.com/hbjs97/rpg/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newBlockCmd() *cobra.Command {
	var shellType string
	cmd := &cobra.Command{
		Use:   "block",
		Short: "startup 파일에 추가될 블록을 출력한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			sh, _, err := setup.ResolveTarget(cfg, a.Home, shellType, "")
			if err != nil {
				return err
			}
			block := shell.CursorHideBlock(sh)
			if block == "" {
				return fmt.Errorf("cli.block: 지원하지 않는 셸: %s", sh)
			}
			fmt.Fprint(cmd.OutOrStdout(), block)
			return nil
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", "", "셸 유형 (bash, zsh, sh, fish)")
	return cmd
}
