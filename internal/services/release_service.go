package services

import (
	"log"
	"sync"
	"time"
)

// ReleaseNotifier is told when a new release has been deployed so open
// tabs can be nudged to re-check their service worker.
type ReleaseNotifier interface {
	NotifyRelease(version string)
}

// ReleaseService tracks the running build version and the most recent
// deployed version announced by the deploy hook.
type ReleaseService struct {
	mu             sync.Mutex
	runningVersion string
	latestVersion  string
	deployedAt     time.Time

	notifier ReleaseNotifier
}

// NewReleaseService creates a release service for the given build
// version (injected at link time by the build).
func NewReleaseService(runningVersion string, notifier ReleaseNotifier) *ReleaseService {
	return &ReleaseService{
		runningVersion: runningVersion,
		latestVersion:  runningVersion,
		notifier:       notifier,
	}
}

// RunningVersion returns the version this server binary was built from.
func (s *ReleaseService) RunningVersion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runningVersion
}

// LatestVersion returns the most recently announced release.
func (s *ReleaseService) LatestVersion() (string, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestVersion, s.deployedAt
}

// AnnounceRelease records a freshly deployed version and notifies open
// tabs. Re-announcing the current latest version is a no-op.
func (s *ReleaseService) AnnounceRelease(version string) bool {
	s.mu.Lock()
	if version == "" || version == s.latestVersion {
		s.mu.Unlock()
		return false
	}
	s.latestVersion = version
	s.deployedAt = time.Now()
	s.mu.Unlock()

	log.Printf("release: new version %s deployed", version)
	if s.notifier != nil {
		s.notifier.NotifyRelease(version)
	}
	return true
}
