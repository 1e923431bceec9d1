package filestate

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
)

// IngestState maps a source CSV path to the byte offset already published.
type IngestState map[string]int64

type Manager interface {
	LoadState() (IngestState, error)
	SaveState(state IngestState) error
	GetStateFilePath() string
}

type fileStateManager struct {
	filePath string
	mu       sync.RWMutex
}

func NewManager(filePath string) Manager {
	return &fileStateManager{
		filePath: filePath,
	}
}

func (m *fileStateManager) LoadState() (IngestState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("file", m.filePath).Msg("Ingest state file not found, starting fresh.")
			return make(IngestState), nil
		}
		log.Error().Err(err).Str("file", m.filePath).Msg("Failed to read ingest state file")
		return nil, err
	}

	if len(data) == 0 {
		log.Warn().Str("file", m.filePath).Msg("Ingest state file is empty, starting fresh.")
		return make(IngestState), nil
	}
	var state IngestState
	if err := json.Unmarshal(data, &state); err != nil {
		log.Error().Err(err).Str("file", m.filePath).Msg("Failed to unmarshal ingest state file")
		return nil, err
	}

	log.Debug().Str("file", m.filePath).Int("files_tracked", len(state)).Msg("Loaded ingest state")
	return state, nil
}

func (m *fileStateManager) SaveState(state IngestState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal ingest state")
		return err
	}

	// Write-then-rename keeps the state file whole if we crash mid-save.
	tempFilePath := m.filePath + ".tmp"
	if err := os.WriteFile(tempFilePath, data, 0644); err != nil {
		log.Error().Err(err).Str("file", tempFilePath).Msg("Failed to write temporary ingest state file")
		return err
	}

	if err := os.Rename(tempFilePath, m.filePath); err != nil {
		log.Error().Err(err).Str("from", tempFilePath).Str("to", m.filePath).Msg("Failed to rename ingest state file")
		_ = os.Remove(tempFilePath)
		return err
	}
	log.Debug().Str("file", m.filePath).Int("files_tracked", len(state)).Msg("Saved ingest state")
	return nil
}

func (m *fileStateManager) GetStateFilePath() string {
	return m.filePath
}
