package models

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("document not found")

// Document is a single record addressed by a slash separated path such as
// "Enquiry/{eventId}/registeredUsers/{phone}".
type Document struct {
	ID     string
	Path   string
	Fields map[string]interface{}
}

// DocumentStore is a path addressed document database. Paths alternate
// collection and document segments. No operation is transactional.
type DocumentStore interface {
	Get(ctx context.Context, docPath string) (*Document, error)
	Set(ctx context.Context, docPath string, fields map[string]interface{}, merge bool) error
	Delete(ctx context.Context, docPath string) error
	List(ctx context.Context, collectionPath string) ([]*Document, error)
	NewID(collectionPath string) string
}

func JoinPath(segments ...string) string {
	return strings.Join(segments, "/")
}

// splitDocPath returns the collection name, the parent document path ("" for
// top level collections) and the document id.
func splitDocPath(docPath string) (collection, parent, id string, err error) {
	segs := strings.Split(strings.Trim(docPath, "/"), "/")
	if len(segs) < 2 || len(segs)%2 != 0 {
		return "", "", "", fmt.Errorf("invalid document path %q", docPath)
	}
	for _, s := range segs {
		if s == "" {
			return "", "", "", fmt.Errorf("invalid document path %q", docPath)
		}
	}
	n := len(segs)
	return segs[n-2], strings.Join(segs[:n-2], "/"), segs[n-1], nil
}

func splitCollectionPath(collectionPath string) (collection, parent string, err error) {
	segs := strings.Split(strings.Trim(collectionPath, "/"), "/")
	if len(segs)%2 != 1 {
		return "", "", fmt.Errorf("invalid collection path %q", collectionPath)
	}
	for _, s := range segs {
		if s == "" {
			return "", "", fmt.Errorf("invalid collection path %q", collectionPath)
		}
	}
	n := len(segs)
	return segs[n-1], strings.Join(segs[:n-1], "/"), nil
}

func copyFields(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
