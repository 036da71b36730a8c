// Command gen-forms writes the sample form documents used by the examples.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/atelier"
	"github.com/aretw0/atelier/pkg/document"
	"github.com/aretw0/atelier/pkg/dsl"
)

func main() {
	targetDir := "examples/forms"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		panic(err)
	}
	fmt.Printf("Generating sample forms in: %s\n", targetDir)

	studio, err := atelier.New()
	check(err)

	// 1. Orders (YAML, nested panel and a named container)
	b := dsl.New("shop")
	form := b.Root("toolbox.Form", "Orders").Set("text", "Orders").Set("width", 640).Set("height", 480)
	body := form.Add("toolbox.Panel", "body").Set("dock", "fill")
	body.Add("toolbox.Button", "submit").Set("text", "Submit").Set("enabled", true)
	body.Add("toolbox.Button", "cancel").Set("text", "Cancel").Set("enabled", true)
	body.AddTo("footer", "toolbox.Label", "status").Set("text", "Ready")
	form.Add("toolbox.Timer", "refresh").Set("interval", 5000)
	form.Add("toolbox.ToolTip", "tips").Set("active", true)
	write(studio, b, filepath.Join(targetDir, "orders.yaml"))

	// 2. Login (JSON)
	b = dsl.New("auth")
	form = b.Root("toolbox.Form", "Login").Set("text", "Sign in")
	form.Add("toolbox.Label", "userLabel").Set("text", "User")
	form.Add("toolbox.Label", "passwordLabel").Set("text", "Password")
	form.Add("toolbox.Button", "ok").Set("text", "OK").Set("enabled", true)
	write(studio, b, filepath.Join(targetDir, "login.json"))

	fmt.Println("Done. Verify contents in", targetDir)
}

func write(studio *atelier.Studio, b *dsl.Builder, path string) {
	doc, err := b.Build()
	check(err)
	check(studio.Validate(doc))
	check(document.WriteFile(path, doc))
	fmt.Printf("  %s (%s, %d components)\n", filepath.Base(path), doc.RootClassName(), doc.Count())
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}
