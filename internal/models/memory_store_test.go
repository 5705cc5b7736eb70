package models

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreSetReplaceAndMerge(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Set(ctx, "Enquiry/e1", map[string]interface{}{"a": 1, "b": 2}, false); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "Enquiry/e1", map[string]interface{}{"b": 3}, true); err != nil {
		t.Fatal(err)
	}
	doc, _ := s.Get(ctx, "Enquiry/e1")
	if doc.Fields["a"] != 1 || doc.Fields["b"] != 3 {
		t.Fatalf("merge result %v", doc.Fields)
	}

	if err := s.Set(ctx, "Enquiry/e1", map[string]interface{}{"c": 4}, false); err != nil {
		t.Fatal(err)
	}
	doc, _ = s.Get(ctx, "Enquiry/e1")
	if _, ok := doc.Fields["a"]; ok {
		t.Fatalf("replace kept old field: %v", doc.Fields)
	}
}

func TestMemoryStoreListDirectChildrenOnly(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "Enquiry/b", map[string]interface{}{}, false)
	_ = s.Set(ctx, "Enquiry/a", map[string]interface{}{}, false)
	_ = s.Set(ctx, "Enquiry/a/registeredUsers/9000000000", map[string]interface{}{}, false)

	docs, err := s.List(ctx, "Enquiry")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].ID != "a" || docs[1].ID != "b" {
		t.Fatalf("unexpected listing %+v", docs)
	}

	children, _ := s.List(ctx, "Enquiry/a/registeredUsers")
	if len(children) != 1 || children[0].ID != "9000000000" {
		t.Fatalf("unexpected children %+v", children)
	}
}

func TestMemoryStoreInvalidPaths(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if _, err := s.Get(ctx, "Enquiry"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("collection path accepted as document: %v", err)
	}
	if _, err := s.List(ctx, "Enquiry/e1"); err == nil {
		t.Error("document path accepted as collection")
	}
	if err := s.Set(ctx, "Enquiry//x/y", nil, false); err == nil {
		t.Error("empty segment accepted")
	}
}
