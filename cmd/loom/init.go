package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom/internal/config"
	"github.com/loom-ui/loom/internal/errors"
)

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>%NAME%</title>
  <link rel="stylesheet" href="/app.css">
</head>
<body>
  <div id="app"></div>
</body>
</html>
`

func initCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Initialize a new Loom project",
		Long: `Initialize a new Loom project in the given directory.

Creates loom.json with default settings and a public/ directory
with an app shell.

Examples:
  loom init
  loom init my-app
  loom init my-app --name="My App"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(dir, name)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Project name (default: directory name)")

	return cmd
}

func runInit(dir, name string) error {
	if config.Exists(dir) {
		return errors.New("E161").
			WithDetail("A loom.json already exists in " + dir).
			WithSuggestion("Delete it first, or run init in an empty directory")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return err
		}
		name = filepath.Base(abs)
	}

	cfg := config.New()
	cfg.Name = name
	if err := cfg.SaveTo(filepath.Join(dir, config.ConfigFileName)); err != nil {
		return err
	}

	pub := filepath.Join(dir, "public")
	if err := os.MkdirAll(pub, 0755); err != nil {
		return err
	}

	index := []byte(strings.ReplaceAll(indexTemplate, "%NAME%", name))
	if err := os.WriteFile(filepath.Join(pub, "index.html"), index, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(pub, "app.css"), []byte("/* styles */\n"), 0644); err != nil {
		return err
	}

	printBanner()
	success("Created project %q in %s", name, dir)
	info("Next steps:")
	info("  cd %s", dir)
	info("  loom serve")
	return nil
}
