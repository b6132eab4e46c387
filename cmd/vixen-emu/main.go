// Command vixen-emu loads a ROM image, wires up the bus device suite
// and drives core.CPU.Tick until a fault the interrupt engine can't
// route reaches the host, then prints a stack trace and exits.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/floofi-org/vixen/core"
	"github.com/floofi-org/vixen/devices"
	"gopkg.in/urfave/cli.v2"
)

func logf(format string, args ...any) {
	fmt.Printf("%s "+format+"\n", append([]any{time.Now().Format("15:04:05.000")}, args...)...)
}

func parseHexFlag(c *cli.Context, name string) (uint32, bool, error) {
	raw := c.String(name)
	if raw == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseUint(raw, 0, 32)
	if err != nil {
		return 0, false, fmt.Errorf("--%s: %w", name, err)
	}
	return uint32(v), true, nil
}

func main() {
	app := &cli.App{
		Name:  "vixen-emu",
		Usage: "run a Vixen ROM image to completion",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rom", Aliases: []string{"r"}, Usage: "ROM image to load"},
			&cli.IntFlag{Name: "memory-size", Aliases: []string{"m"}, Usage: "RAM size in bytes", Value: core.DefaultMemorySize},
			&cli.StringFlag{Name: "primary-vector", Usage: "primary interrupt handler address (hex or decimal)"},
			&cli.StringFlag{Name: "double-fault-vector", Usage: "double-fault handler address (hex or decimal)"},
			&cli.BoolFlag{Name: "no-terminal", Usage: "don't attach the stdio terminal device"},
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

	var term *devices.StdioTerminal
	if !c.Bool("no-terminal") {
		term, err = devices.NewStdioTerminal()
		if err != nil {
			return fmt.Errorf("attaching terminal: %w", err)
		}
		defer term.Restore()
		if err := cpu.AttachDevice(term); err != nil {
			return fmt.Errorf("attaching terminal: %w", err)
		}
	}
	if err := cpu.AttachDevice(devices.NewRTC()); err != nil {
		return fmt.Errorf("attaching RTC: %w", err)
	}

	if err := cpu.LoadROM(rom); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if primary, ok, err := parseHexFlag(c, "primary-vector"); err != nil {
		return err
	} else if ok {
		cpu.PokeWord(core.VectorInterrupt, primary)
	}
	if df, ok, err := parseHexFlag(c, "double-fault-vector"); err != nil {
		return err
	} else if ok {
		cpu.PokeWord(core.VectorDoubleFault, df)
	}

	logf("loaded %d bytes at 0x%08X", len(rom), core.ROMBase)

	for {
		if err := cpu.Tick(); err != nil {
			logf("fatal fault: %s", err)
			fmt.Print(cpu.StackTrace())
			return cli.Exit("", 1)
		}
	}
}
