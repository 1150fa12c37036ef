package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hbjs97/rpg/internal/cmdexec"
	"github.com/hbjs97/rpg/internal/config"
	"github.com/hbjs97/rpg/internal/setup"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// App은 CLI 명령들이 공유하는 의존성이다.
// 테스트에서는 FakeCommander, mock Prompter, 임시 Home을 주입한다.
type App struct {
	Commander cmdexec.Commander
	Prompter  setup.Prompter
	CfgPath   string
	Home      string
	Verbose   bool
	Logger    *zap.Logger
}

// NewApp은 실제 프로세스 환경 기반 App을 생성한다.
func NewApp() *App {
	home := homeDir()
	return &App{
		Commander: &cmdexec.RealCommander{},
		Prompter:  &setup.HuhPrompter{},
		CfgPath:   filepath.Join(config.Dir(home), "config.toml"),
		Home:      home,
	}
}

// NewRootCmd는 실제 환경으로 rpg 루트 명령을 생성한다.
func NewRootCmd() *cobra.Command {
	return NewApp().NewRootCmd()
}

// NewRootCmd는 rpg CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rpg",
		Short:        "RPG 설치 도우미 — 로컬 콘솔에서 커서를 숨긴다",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.Logger != nil {
				return nil
			}
			logger, err := newLogger(a.Verbose)
			if err != nil {
				return fmt.Errorf("cli: 로거 초기화 실패: %w", err)
			}
			a.Logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.Logger != nil {
				_ = a.Logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", a.CfgPath, "설정 파일 경로")
	cmd.PersistentFlags().BoolVar(&a.Verbose, "verbose", false, "상세 출력")

	cmd.AddCommand(
		a.newPatchCmd(),
		a.newInstallCmd(),
		a.newStatusCmd(),
		a.newBlockCmd(),
		a.newDoctorCmd(),
		a.newInitCmd(),
	)
	return cmd
}

// newLogger는 stderr로 출력하는 console 로거를 만든다. 기본 레벨은 info다.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func (a *App) loadConfig() (*config.Config, error) {
	return config.Load(a.CfgPath)
}

func (a *App) statePath() string {
	return filepath.Join(config.Dir(a.Home), "state.json")
}

func (a *App) lockPath() string {
	return filepath.Join(config.Dir(a.Home), "patch.lock")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "경고: 홈 디렉토리 확인 실패: %v\n", err)
		return "."
	}
	return home
}
