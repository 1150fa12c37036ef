// Package state keeps a small JSON journal of patch outcomes per startup file.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hbjs97/rpg/internal/rcpatch"
)

// State는 startup 파일별 마지막 패치 결과 기록이다.
type State struct {
	Version int              `json:"version"`
	Entries map[string]Entry `json:"entries"`
}

// Entry는 하나의 패치 기록이다.
type Entry struct {
	Outcome    string `json:"outcome"`
	RecordedAt string `json:"recorded_at"`
	Marker     string `json:"marker"`
}

// New는 빈 State를 생성한다.
func New() *State {
	return &State{Version: 1, Entries: make(map[string]Entry)}
}

// Load는 state 파일을 파싱한다. 파일 없음/파싱 실패 시 빈 State 반환 (graceful).
func Load(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("state.Load: %w", err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return New(), nil
	}
	if s.Entries == nil {
		s.Entries = make(map[string]Entry)
	}
	return &s, nil
}

// Record는 rcPath의 패치 결과를 현재 시각으로 기록한다.
func (s *State) Record(rcPath, marker string, outcome rcpatch.Outcome) {
	s.Entries[rcPath] = Entry{
		Outcome:    outcome.String(),
		RecordedAt: time.Now().UTC().Format(time.RFC3339),
		Marker:     marker,
	}
}

// Lookup은 rcPath의 기록을 조회한다.
func (s *State) Lookup(rcPath string) (*Entry, bool) {
	e, ok := s.Entries[rcPath]
	if !ok {
		return nil, false
	}
	return &e, true
}

// OutcomeOf는 기록된 결과를 rcpatch.Outcome으로 반환한다.
func (e *Entry) OutcomeOf() rcpatch.Outcome {
	return rcpatch.ParseOutcome(e.Outcome)
}

// Save는 State를 JSON 파일로 저장한다 (0600 권한).
func (s *State) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("state.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("state.Save: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("state.Save: %w", err)
	}
	return nil
}
