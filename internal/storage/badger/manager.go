package badger

import (
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/domus/internal/common"
	"github.com/ternarybob/domus/internal/interfaces"
)

// gcInterval controls how often the value log garbage collector runs.
const gcInterval = 5 * time.Minute

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	property interfaces.PropertyStorage
	analysis interfaces.AnalysisStorage
	logger   arbor.ILogger
	stopGC   chan struct{}
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:       db,
		property: NewPropertyStorage(db, logger),
		analysis: NewAnalysisStorage(db, logger),
		logger:   logger,
		stopGC:   make(chan struct{}),
	}

	common.SafeGo(logger, "badger-gc", manager.gcLoop)

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// gcLoop runs the value log garbage collector until Close.
func (m *Manager) gcLoop() {
	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopGC:
			return
		case <-ticker.C:
			if err := m.db.RunValueLogGC(); err != nil {
				m.logger.Warn().Err(err).Msg("Badger value log GC failed")
			}
		}
	}
}

// PropertyStorage returns the property storage interface
func (m *Manager) PropertyStorage() interfaces.PropertyStorage {
	return m.property
}

// AnalysisStorage returns the analysis storage interface
func (m *Manager) AnalysisStorage() interfaces.AnalysisStorage {
	return m.analysis
}

// Close stops the GC loop and closes the database connection
func (m *Manager) Close() error {
	close(m.stopGC)
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
