// Package build invokes the external C compiler for the native grating extension.
// rpg never compiles anything itself; it only turns the declared extension into
// a compiler command line and runs it through cmdexec.
package build

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hbjs97/rpg/internal/cmdexec"
	"github.com/hbjs97/rpg/internal/config"
	"go.uber.org/zap"
)

// OutputPath는 확장 모듈 공유 라이브러리의 출력 경로를 반환한다.
func OutputPath(ext config.Extension) string {
	return filepath.Join(ext.OutputDir, ext.Name+".so")
}

// Command는 확장 빌드를 위한 컴파일러 명령과 인자를 반환한다.
// 순서: compile_args, -shared -fPIC -o <output>, sources, link_args.
func Command(ext config.Extension) (string, []string) {
	args := make([]string, 0, len(ext.CompileArgs)+len(ext.Sources)+len(ext.LinkArgs)+4)
	args = append(args, ext.CompileArgs...)
	args = append(args, "-shared", "-fPIC", "-o", OutputPath(ext))
	args = append(args, ext.Sources...)
	args = append(args, ext.LinkArgs...)
	return ext.Compiler, args
}

// CommandLine은 Command를 사람이 읽을 수 있는 한 줄로 만든다 (dry-run 출력용).
func CommandLine(ext config.Extension) string {
	name, args := Command(ext)
	return name + " " + strings.Join(args, " ")
}

// Builder는 Commander를 통해 확장을 빌드한다.
type Builder struct {
	Commander cmdexec.Commander
	Logger    *zap.Logger
}

// Build는 컴파일러를 실행한다. 실패 시 컴파일러 출력을 에러에 포함한다.
func (b *Builder) Build(ctx context.Context, ext config.Extension) error {
	if len(ext.Sources) == 0 {
		return fmt.Errorf("build.Build: %s: 소스 파일이 없습니다", ext.Name)
	}
	if _, err := b.Commander.LookPath(ext.Compiler); err != nil {
		return fmt.Errorf("build.Build: 컴파일러 %s 없음: %w", ext.Compiler, err)
	}

	name, args := Command(ext)
	if b.Logger != nil {
		b.Logger.Debug("확장 빌드", zap.String("compiler", name), zap.Strings("args", args))
	}
	out, err := b.Commander.Run(ctx, name, args...)
	if err != nil {
		return fmt.Errorf("build.Build: %s 빌드 실패: %w\n%s", ext.Name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
