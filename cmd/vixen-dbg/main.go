// Command vixen-dbg is an interactive line-mode monitor over a
// loaded Vixen ROM: register/memory inspection, single stepping,
// disassembly and breakpoints, built on debugger.Monitor.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/floofi-org/vixen/core"
	"github.com/floofi-org/vixen/debugger"
	"github.com/floofi-org/vixen/devices"
	"gopkg.in/urfave/cli.v2"
)

func main() {
	app := &cli.App{
		Name:  "vixen-dbg",
		Usage: "step through a Vixen ROM image interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom", Aliases: []string{"r"}, Usage: "ROM image to load"},
			&cli.IntFlag{Name: "memory-size", Aliases: []string{"m"}, Usage: "RAM size in bytes", Value: core.DefaultMemorySize},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		return cli.Exit("--rom is required", 1)
	}
	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	cpu := core.NewCPU(c.Int("memory-size"))
	if err := cpu.AttachDevice(devices.NewRTC()); err != nil {
		return fmt.Errorf("attaching RTC: %w", err)
	}
	if err := cpu.LoadROM(rom); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	mon := debugger.NewMonitor(cpu, os.Stdout, rom)
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("vixen-dbg> ")
	for scanner.Scan() {
		cont, err := mon.Execute(scanner.Text())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if !cont {
			break
		}
		fmt.Print("vixen-dbg> ")
	}
	return nil
}
