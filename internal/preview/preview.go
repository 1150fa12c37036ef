// Package preview renders line diffs for dry-run output.
package preview

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Unified는 before와 after의 라인 단위 diff를 ---/+++ 헤더와 함께 반환한다.
// 두 내용이 같으면 빈 문자열을 반환한다.
func Unified(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString("--- a/" + path + "\n")
	sb.WriteString("+++ b/" + path + "\n")
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(prefix + line + "\n")
		}
	}
	return sb.String()
}

// splitLines는 마지막 개행 뒤의 빈 조각을 버린다.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
