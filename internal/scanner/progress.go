package scanner

import (
	log "github.com/sirupsen/logrus"
)

// Observer receives per-plugin status transitions while a scan runs.
// Callbacks may arrive from concurrent goroutines.
type Observer interface {
	PluginStarted(name string)
	PluginCompleted(name string, findings int)
	PluginFailed(name string, err error)
}

// LogObserver reports plugin progress through the structured logger.
type LogObserver struct{}

func (LogObserver) PluginStarted(name string) {
	log.WithField("plugin", name).Info("Plugin running")
}

func (LogObserver) PluginCompleted(name string, findings int) {
	log.WithFields(log.Fields{
		"plugin":   name,
		"findings": findings,
	}).Info("Plugin completed")
}

func (LogObserver) PluginFailed(name string, err error) {
	log.WithFields(log.Fields{
		"plugin": name,
		"error":  err,
	}).Error("Plugin failed")
}
