package logger

import "sync"

// components holds the loggers of the named parts of a run, such as "join"
// or "cli".
var components struct {
	sync.RWMutex
	byName map[string]*Logger
}

// Register makes l the logger returned by Get(name).
func Register(name string, l *Logger) {
	components.Lock()
	defer components.Unlock()
	if components.byName == nil {
		components.byName = make(map[string]*Logger)
	}
	components.byName[name] = l
}

// Get returns the logger registered for name. An unregistered name gets the
// global logger tagged with name as its component.
func Get(name string) *Logger {
	components.RLock()
	l := components.byName[name]
	components.RUnlock()
	if l != nil {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults registers, for each name, a component logger derived from
// the global logger. Call it once the global logger is configured.
func RegisterDefaults(names ...string) {
	base := GetGlobalLogger()
	for _, name := range names {
		Register(name, base.WithComponent(name))
	}
}

// Reset forgets every registered logger.
func Reset() {
	components.Lock()
	defer components.Unlock()
	components.byName = nil
}
