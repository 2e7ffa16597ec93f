package build

import (
	"sort"
	"sync"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
)

// CategoryManager hands out one btclog logger per log category, all writing to
// the same backend handler. Categories are not declared up front: the first
// request for a name creates its logger at the manager's current default
// level. It implements LeveledSubLogger and CategoryRegistrar so debug level
// strings can target categories that have not logged yet.
type CategoryManager struct {
	handler btclog.Handler

	mu           sync.Mutex
	defaultLevel btclogv1.Level
	loggers      SubLoggers
}

// A compile-time check to ensure CategoryManager implements the interfaces
// consumed by ParseAndSetDebugLevels.
var (
	_ LeveledSubLogger  = (*CategoryManager)(nil)
	_ CategoryRegistrar = (*CategoryManager)(nil)
)

// NewCategoryManager returns a manager that derives category loggers from
// handler. New categories start at defaultLevel.
func NewCategoryManager(handler btclog.Handler,
	defaultLevel btclogv1.Level) *CategoryManager {

	return &CategoryManager{
		handler:      handler,
		defaultLevel: defaultLevel,
		loggers:      make(SubLoggers),
	}
}

// Register returns the logger of the given category, creating it if this is
// the first time the category is seen.
func (m *CategoryManager) Register(category string) btclog.Logger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[category]; ok {
		return logger
	}

	logger := btclog.NewSLogger(m.handler.SubSystem(category))
	logger.SetLevel(m.defaultLevel)
	m.loggers[category] = logger

	return logger
}

// GenSubLogger has the signature expected by NewSubLogger so the internal
// package loggers share the backend of the user facing categories.
func (m *CategoryManager) GenSubLogger(subsystem string) btclog.Logger {
	return m.Register(subsystem)
}

// SubLoggers returns a snapshot of all registered category loggers.
//
// NOTE: this is part of the LeveledSubLogger interface.
func (m *CategoryManager) SubLoggers() SubLoggers {
	m.mu.Lock()
	defer m.mu.Unlock()

	loggers := make(SubLoggers, len(m.loggers))
	for category, logger := range m.loggers {
		loggers[category] = logger
	}

	return loggers
}

// SupportedSubsystems returns the sorted names of all registered categories.
//
// NOTE: this is part of the LeveledSubLogger interface.
func (m *CategoryManager) SupportedSubsystems() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	categories := make([]string, 0, len(m.loggers))
	for category := range m.loggers {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	return categories
}

// SetLogLevel sets the logging level for the provided category. Unknown
// categories are ignored. Invalid levels default to info.
//
// NOTE: this is part of the LeveledSubLogger interface.
func (m *CategoryManager) SetLogLevel(category string, logLevel string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	logger, ok := m.loggers[category]
	if !ok {
		return
	}

	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level of every registered category and the level
// newly registered categories start at.
//
// NOTE: this is part of the LeveledSubLogger interface.
func (m *CategoryManager) SetLogLevels(logLevel string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	level, _ := btclog.LevelFromString(logLevel)
	m.defaultLevel = level
	for _, logger := range m.loggers {
		logger.SetLevel(level)
	}
}
