package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"summarist/internal/summary"
)

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows map[string]summary.Snapshot
		if err := json.Unmarshal(data, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for id, snap := range rows {
			if id == "" {
				continue
			}
			s.byID[id] = snap
		}
	})
}

func (s *Store) saveFile(snap summary.Snapshot) error {
	s.ensureLoadedFile()
	s.mu.Lock()
	s.byID[snap.ConversationID] = snap
	rows := make(map[string]summary.Snapshot, len(s.byID))
	for id, sn := range s.byID {
		rows[id] = sn
	}
	s.mu.Unlock()

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *Store) loadFile(conversationID string) (summary.Snapshot, bool, error) {
	s.ensureLoadedFile()
	s.mu.RLock()
	snap, ok := s.byID[conversationID]
	s.mu.RUnlock()
	return snap, ok, nil
}

func (s *Store) listFile() ([]string, error) {
	s.ensureLoadedFile()
	s.mu.RLock()
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids, nil
}
