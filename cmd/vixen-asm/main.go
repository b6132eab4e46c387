// Command vixen-asm assembles Vixen assembly source into a flat ROM
// image ready for cmd/vixen-emu or cmd/vixen-dbg to load.
package main

import (
	"fmt"
	"os"

	"github.com/floofi-org/vixen/assembler"
	"gopkg.in/urfave/cli.v2"
)

func main() {
	app := &cli.App{
		Name:  "vixen-asm",
		Usage: "assemble Vixen source into a ROM image",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "source file"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output ROM path", Value: "a.rom"},
		},
		Action: func(c *cli.Context) error {
			inPath := c.String("in")
			if inPath == "" {
				return cli.Exit("--in is required", 1)
			}
			source, err := os.ReadFile(inPath)
			if err != nil {
				return fmt.Errorf("reading source: %w", err)
			}
			rom, err := assembler.Assemble(string(source))
			if err != nil {
				return fmt.Errorf("assembling: %w", err)
			}
			if err := os.WriteFile(c.String("out"), rom, 0o644); err != nil {
				return fmt.Errorf("writing ROM: %w", err)
			}
			fmt.Printf("wrote %d bytes to %s\n", len(rom), c.String("out"))
			return nil
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
