package dsl

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/atelier/pkg/domain"
)

func TestBuilder_Tree(t *testing.T) {
	b := New("shop")

	form := b.Root("toolbox.Form", "Orders").Set("text", "Orders")
	body := form.Add("toolbox.Panel", "body").Set("dock", "fill")
	body.Add("toolbox.Button", "ok").Set("text", "OK")
	body.AddTo("footer", "toolbox.Label", "status")
	body.AddTo("footer", "toolbox.Label", "hint")
	form.Add("toolbox.Timer", "clock").Set("interval", 500)

	doc, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if doc.RootClassName() != "shop.Orders" {
		t.Errorf("Expected class name 'shop.Orders', got '%s'", doc.RootClassName())
	}
	if doc.Count() != 6 {
		t.Errorf("Expected 6 components, got %d", doc.Count())
	}
	if doc.Root.Properties["text"] != "Orders" {
		t.Errorf("Expected root text 'Orders', got '%v'", doc.Root.Properties["text"])
	}
	if len(doc.Root.Children) != 2 {
		t.Fatalf("Expected 2 root children, got %d", len(doc.Root.Children))
	}

	panel := doc.Root.Children[0]
	if panel.Type != "toolbox.Panel" || panel.Properties["dock"] != "fill" {
		t.Errorf("Unexpected panel spec: %+v", panel)
	}
	if len(panel.Children) != 1 || panel.Children[0].Name != "ok" {
		t.Errorf("Expected panel child 'ok', got %+v", panel.Children)
	}
	if len(panel.Containers) != 1 {
		t.Fatalf("Expected one named container, got %d", len(panel.Containers))
	}
	footer := panel.Containers[0]
	if footer.Name != "footer" || len(footer.Components) != 2 {
		t.Errorf("Unexpected footer container: %+v", footer)
	}
	if doc.Root.Children[1].Properties["interval"] != 500 {
		t.Errorf("Expected interval 500, got %v", doc.Root.Children[1].Properties["interval"])
	}
}

func TestBuilder_LateChildren(t *testing.T) {
	b := New("")
	form := b.Root("toolbox.Form", "main")
	panel := form.Add("toolbox.Panel", "body")

	// Builders hold pointers; children added after Add are still built.
	panel.Add("toolbox.Button", "late")

	doc, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if got := doc.Root.Children[0].Children; len(got) != 1 || got[0].Name != "late" {
		t.Errorf("Expected late child, got %+v", got)
	}
	if doc.RootClassName() != "main" {
		t.Errorf("Expected unqualified class name, got '%s'", doc.RootClassName())
	}
}

func TestBuilder_MissingRoot(t *testing.T) {
	_, err := New("shop").Build()
	if !errors.Is(err, domain.ErrInvalidDocument) {
		t.Errorf("Expected ErrInvalidDocument, got %v", err)
	}
}

func TestBuilder_Store(t *testing.T) {
	b := New("shop")
	b.Root("toolbox.Form", "Orders")

	store, err := b.Store("orders")
	if err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	doc, err := store.Load(context.Background(), "orders")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if doc.ID != "orders" || doc.Root.Name != "Orders" {
		t.Errorf("Unexpected stored document: %+v", doc)
	}
}
