package rcpatch

import (
	"fmt"
	"os"
)

// FileSystem은 패처가 사용하는 파일 접근을 추상화한다.
// 프로덕션에서는 OSFileSystem, 테스트에서는 fake 구현을 사용한다.
type FileSystem interface {
	// ReadFile은 파일 전체 내용을 읽는다.
	ReadFile(path string) ([]byte, error)
	// AppendFile은 파일 끝에 data를 한 번의 write로 추가한다.
	AppendFile(path string, data []byte) error
}

// OSFileSystem은 os 패키지 기반 FileSystem 구현이다.
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

// ReadFile은 os.ReadFile을 호출한다.
func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// AppendFile은 O_APPEND 모드로 파일을 열어 data를 기록한다.
// 파일이 없으면 0644로 생성한다.
func (OSFileSystem) AppendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
