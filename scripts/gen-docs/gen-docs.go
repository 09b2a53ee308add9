// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

//go:generate go run gen-docs.go --path ../../docs

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	rawtracecmd "github.com/telekom/rawtrace/cmd"
)

const header = `<!--
SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH

SPDX-License-Identifier: CC-BY-4.0
-->

`

func main() {
	var docPath string

	cmd := &cobra.Command{
		Use:   "gen-docs",
		Short: "Generate the markdown documentation of the rawtrace commands",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return genDocs(docPath)
		},
	}
	cmd.Flags().StringVar(&docPath, "path", "docs", "directory path where the markdown files will be created")

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// genDocs writes one markdown file per rawtrace command into dir
func genDocs(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd // default directory permissions
		return fmt.Errorf("failed to create docs directory: %w", err)
	}

	root := rawtracecmd.BuildCmd("")
	root.DisableAutoGenTag = true

	prepend := func(string) string { return header }
	link := func(name string) string { return name }
	if err := doc.GenMarkdownTreeCustom(root, dir, prepend, link); err != nil {
		return fmt.Errorf("failed to generate docs: %w", err)
	}
	return nil
}
