package shell

// Marker는 startup 파일에 블록이 이미 추가되었는지 판별하는 고유 문자열이다.
const Marker = "RPG_CURSOR_HIDE"

const header = "\n# " + Marker + "\n# Added by Python RPG module to remove cursor all windows but SSH\n"

// CursorHideBlock은 셸별 커서 숨김 블록을 반환한다.
// 지원하지 않는 셸이면 빈 문자열을 반환한다.
func CursorHideBlock(shellType string) string {
	switch shellType {
	case "bash", "zsh", "sh":
		return header + `if [ -n "$SSH_CONNECTION" ]; then
  setterm -cursor on
else
  setterm -cursor off
fi
`
	case "fish":
		return header + `if test -n "$SSH_CONNECTION"
  setterm -cursor on
else
  setterm -cursor off
end
`
	default:
		return ""
	}
}

// Supported는 셸 유형에 대한 블록이 존재하는지 반환한다.
func Supported(shellType string) bool {
	return CursorHideBlock(shellType) != ""
}
