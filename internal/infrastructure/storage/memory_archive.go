package storage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/fiscalmanager/backend/internal/domain/report"
)

// Ensure MemoryReportArchive implements report.Archive
var _ report.Archive = (*MemoryReportArchive)(nil)

// MemoryReportArchive keeps reports in process memory. It is used for local
// development and tests; contents are lost on restart.
type MemoryReportArchive struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	now     func() time.Time
}

type memoryObject struct {
	body         []byte
	contentType  string
	lastModified time.Time
}

// NewMemoryReportArchive creates an empty in-memory archive
func NewMemoryReportArchive() *MemoryReportArchive {
	return &MemoryReportArchive{
		objects: make(map[string]memoryObject),
		now:     time.Now,
	}
}

// Put stores a copy of body under key
func (m *MemoryReportArchive) Put(_ context.Context, key string, body []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{
		body:         append([]byte(nil), body...),
		contentType:  contentType,
		lastModified: m.now(),
	}
	return nil
}

// List returns every report under prefix, newest first
func (m *MemoryReportArchive) List(_ context.Context, prefix string) ([]report.ArchivedReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []report.ArchivedReport
	for key, obj := range m.objects {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		out = append(out, report.ArchivedReport{
			Key:          key,
			Size:         int64(len(obj.body)),
			LastModified: obj.lastModified,
		})
	}
	sortNewestFirst(out)
	return out, nil
}

// Get returns the stored body and content type
func (m *MemoryReportArchive) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	return obj.body, obj.contentType, true
}
