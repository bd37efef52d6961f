// Command gbcore loads a flat DMG program image and drives the CPU core
// against it: run to completion/cycle budget, single-step with a register
// dump, or print a static disassembly. Grounded on the Cobra command
// layout in oisee-z80-optimizer/cmd/z80opt/main.go (root command plus one
// subcommand per verb, flags bound with Var/IntVar before Execute).
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lhartwell/gbcore/gb"
	"github.com/spf13/cobra"
)

func loadImage(path string, loadAddr uint16) (*gb.Bus, *gb.CPU, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read image: %w", err)
	}

	bus := gb.NewBus()
	bus.Register(gb.NewROM(data), loadAddr)
	bus.Register(gb.NewRAM(0x2000), 0xC000) // work RAM
	bus.Register(gb.NewRAM(0x0080), 0xFF80) // high RAM

	cpu := gb.NewCPU(bus)
	cpu.Reset(loadAddr)
	return bus, cpu, nil
}

func main() {
	var loadAddr uint16
	var traceFile string

	root := &cobra.Command{
		Use:   "gbcore",
		Short: "LR35902 CPU core driver",
	}
	root.PersistentFlags().Uint16Var(&loadAddr, "load-addr", 0x0100, "address the image is mapped to")
	root.PersistentFlags().StringVar(&traceFile, "trace", "", "write a per-instruction trace to this file")

	var maxCycles uint64
	runCmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Dispatch instructions until an error or the cycle budget is exhausted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cpu, err := loadImage(args[0], loadAddr)
			if err != nil {
				return err
			}
			attachTrace(cpu, traceFile)

			var total uint64
			for maxCycles == 0 || total < maxCycles {
				if cpu.Halted || cpu.Stopped {
					break
				}
				cycles, err := cpu.DispatchErr()
				if err != nil {
					return fmt.Errorf("dispatch at pc=%#04x: %w", cpu.PC, err)
				}
				total += uint64(cycles)
			}
			fmt.Printf("stopped after %d cycles at pc=%#04x\n", total, cpu.PC)
			return nil
		},
	}
	runCmd.Flags().Uint64Var(&maxCycles, "max-cycles", 0, "stop after this many cycles (0 = run until halted/errored)")

	var steps int
	stepCmd := &cobra.Command{
		Use:   "step <image>",
		Short: "Dispatch a fixed number of instructions, printing register state after each",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cpu, err := loadImage(args[0], loadAddr)
			if err != nil {
				return err
			}
			attachTrace(cpu, traceFile)

			for i := 0; i < steps; i++ {
				cycles, err := cpu.DispatchErr()
				if err != nil {
					return fmt.Errorf("dispatch at pc=%#04x: %w", cpu.PC, err)
				}
				fmt.Printf("cycles=%2d pc=%#04x af=%#04x bc=%#04x de=%#04x hl=%#04x sp=%#04x\n",
					cycles, cpu.PC, cpu.AF(), cpu.BC(), cpu.DE(), cpu.HL(), cpu.SP)
			}
			return nil
		},
	}
	stepCmd.Flags().IntVar(&steps, "steps", 1, "number of instructions to dispatch")

	var disasmEnd uint16
	disasmCmd := &cobra.Command{
		Use:   "disasm <image>",
		Short: "Print a static disassembly of the loaded image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bus, _, err := loadImage(args[0], loadAddr)
			if err != nil {
				return err
			}
			end := disasmEnd
			if end == 0 {
				end = loadAddr + 0x100
			}
			lines := gb.Disassemble(bus, loadAddr, end)
			for addr := loadAddr; addr <= end; addr++ {
				if line, ok := lines[addr]; ok {
					fmt.Println(line)
				}
			}
			return nil
		},
	}
	disasmCmd.Flags().Uint16Var(&disasmEnd, "end", 0, "last address to disassemble (default: load-addr+0x100)")

	root.AddCommand(runCmd, stepCmd, disasmCmd)
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func attachTrace(cpu *gb.CPU, path string) {
	if path == "" {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("unable to create trace file: %v", err)
	}
	cpu.SetTraceWriter(f)
}
