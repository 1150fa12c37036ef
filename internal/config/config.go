package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hbjs97/rpg/internal/shell"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("설정 오류")

// Config는 rpg 설정 파일의 최상위 구조체다.
type Config struct {
	Version       int       `toml:"version"`
	Shell         string    `toml:"shell,omitempty"`
	RCPath        string    `toml:"rc_path,omitempty"`
	Strict        bool      `toml:"strict"`
	Lock          *bool     `toml:"lock"`
	CreateMissing bool      `toml:"create_missing"`
	Extension     Extension `toml:"extension"`
}

// Extension은 외부 컴파일러로 빌드할 네이티브 확장 선언이다.
type Extension struct {
	Name        string   `toml:"name"`
	Sources     []string `toml:"sources"`
	CompileArgs []string `toml:"compile_args"`
	LinkArgs    []string `toml:"link_args"`
	Compiler    string   `toml:"compiler"`
	OutputDir   string   `toml:"output_dir"`
}

// Default는 설정 파일이 없을 때 사용하는 기본 설정을 반환한다.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load는 config.toml을 파싱하여 Config를 반환한다.
// 파일이 없으면 기본 설정을 반환한다.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save는 Config를 TOML로 저장한다 (0600 권한, 상위 디렉토리 0700 생성).
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// IsLock은 lock 설정값을 반환한다. 기본값은 true다.
func (c *Config) IsLock() bool {
	if c.Lock == nil {
		return true
	}
	return *c.Lock
}

// ResolveRCPath는 rc_path의 ~를 home으로 확장한다. 설정이 없으면 빈 문자열이다.
func (c *Config) ResolveRCPath(home string) string {
	return ExpandHome(c.RCPath, home)
}

// ExpandHome은 "~" 또는 "~/"로 시작하는 경로를 home 기준으로 확장한다.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Dir은 rpg 설정 디렉토리(~/.config/rpg)를 반환한다.
func Dir(home string) string {
	return filepath.Join(home, ".config", "rpg")
}

// ValidateFilePermissions는 파일 권한이 0600보다 넓으면 에러를 반환한다.
func ValidateFilePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("config.ValidateFilePermissions: %w", err)
	}
	perm := info.Mode().Perm()
	if perm&0077 != 0 {
		return fmt.Errorf("config.ValidateFilePermissions: %s 권한이 %o (0600 필요)", path, perm)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Lock == nil {
		t := true
		c.Lock = &t
	}
	ext := &c.Extension
	if ext.Name == "" {
		ext.Name = "_rpigratings"
	}
	if len(ext.Sources) == 0 {
		ext.Sources = []string{"rpg/_rpigratings.c"}
	}
	if ext.CompileArgs == nil {
		ext.CompileArgs = []string{"-O3"}
	}
	if ext.LinkArgs == nil {
		ext.LinkArgs = []string{"-lwiringPi"}
	}
	if ext.Compiler == "" {
		ext.Compiler = "cc"
	}
	if ext.OutputDir == "" {
		ext.OutputDir = "."
	}
}

func (c *Config) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("config.Load: %w: 지원하지 않는 version %d", ErrConfig, c.Version)
	}
	if c.Shell != "" && !shell.Supported(c.Shell) {
		return fmt.Errorf("config.Load: %w: 지원하지 않는 셸: %s", ErrConfig, c.Shell)
	}
	for _, src := range c.Extension.Sources {
		if strings.TrimSpace(src) == "" {
			return fmt.Errorf("config.Load: %w: extension.sources에 빈 경로", ErrConfig)
		}
	}
	if strings.ContainsAny(c.Extension.Name, `/\`) {
		return fmt.Errorf("config.Load: %w: extension.name에 경로 구분자 사용 불가: %s", ErrConfig, c.Extension.Name)
	}
	return nil
}
