package mdexport_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	mdexport "github.com/alnah/go-mdexport"
)

func ExampleMDXRenderer_Render() {
	r := mdexport.NewMDXRenderer()

	fmt.Println(r.Render("# Hello\n", mdexport.Options{
		Title:  "Notes",
		Author: "Ada",
		Date:   "2026-01-02",
	}))
	// Output:
	// ---
	// title: "Notes"
	// author: "Ada"
	// date: "2026-01-02"
	// ---
	//
	// # Hello
}

func ExampleTargets() {
	targets, err := mdexport.Targets("/x/y/report.md", []mdexport.Format{mdexport.FormatMDX, mdexport.FormatHTML})
	if err != nil {
		log.Fatal(err)
	}
	for _, t := range targets {
		fmt.Println(t.Format, filepath.ToSlash(t.Path))
	}
	// Output:
	// html /x/y/report.html
	// mdx /x/y/report.mdx
}

func ExampleExporter_Export() {
	dir, err := os.MkdirTemp("", "mdexport-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "report.md")
	if err := os.WriteFile(input, []byte("# Quarterly report\n\nAll good.\n"), 0o600); err != nil {
		log.Fatal(err)
	}

	exporter, err := mdexport.NewExporter(mdexport.WithTimeout(time.Minute))
	if err != nil {
		log.Fatal(err)
	}

	outcomes, err := exporter.Export(context.Background(), input,
		[]mdexport.Format{mdexport.FormatHTML, mdexport.FormatMDX},
		mdexport.Options{Title: "Q3", IncludeTOC: true})
	if err != nil {
		log.Fatal(err)
	}
	for _, o := range outcomes {
		fmt.Println(o.Target.Format, filepath.Base(o.Target.Path), o.Succeeded())
	}
	// Output:
	// html report.html true
	// mdx report.mdx true
}
