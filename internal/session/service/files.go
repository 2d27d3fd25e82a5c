package service

import (
	"sync"

	"github.com/google/uuid"
)

type blob struct {
	content     []byte
	contentType string
	sessionID   string
	fileKey     string
}

// blobStore holds uploaded reference content behind transient handles.
// Handles live only as long as the process: snapshots persist the
// descriptive triple, never the bytes. Releasing a handle when a file
// is removed (or the session is deleted) is the cleanup obligation
// that keeps memory bounded.
type blobStore struct {
	mu       sync.Mutex
	blobs    map[string]blob
	sessions map[string]map[string]string // session id -> file key -> handle
}

func newBlobStore() *blobStore {
	return &blobStore{
		blobs:    make(map[string]blob),
		sessions: make(map[string]map[string]string),
	}
}

func (s *blobStore) put(sessionID, fileKey, contentType string, content []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := uuid.NewString()
	s.blobs[handle] = blob{
		content:     content,
		contentType: contentType,
		sessionID:   sessionID,
		fileKey:     fileKey,
	}
	if s.sessions[sessionID] == nil {
		s.sessions[sessionID] = make(map[string]string)
	}
	s.sessions[sessionID][fileKey] = handle
	return handle
}

func (s *blobStore) get(handle string) (blob, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[handle]
	return b, ok
}

// handleFor recovers the live handle for a restored file reference.
func (s *blobStore) handleFor(sessionID, fileKey string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	handle, ok := s.sessions[sessionID][fileKey]
	return handle, ok
}

func (s *blobStore) release(handle string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[handle]
	if !ok {
		return
	}
	delete(s.blobs, handle)
	if keys, ok := s.sessions[b.sessionID]; ok {
		delete(keys, b.fileKey)
		if len(keys) == 0 {
			delete(s.sessions, b.sessionID)
		}
	}
}

func (s *blobStore) releaseSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, handle := range s.sessions[sessionID] {
		delete(s.blobs, handle)
	}
	delete(s.sessions, sessionID)
}
