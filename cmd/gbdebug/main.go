// Command gbdebug is an interactive single-step TUI over the CPU core,
// grounded on the Bubble Tea/Lip Gloss/go-spew debugger in
// hejops-gone/cpu/debugger.go: a model wrapping the CPU, a memory-page
// view with the PC highlighted, a register/flag status panel, and a
// go-spew dump of the next instruction's decoded mnemonic.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/lhartwell/gbcore/gb"
)

type model struct {
	cpu    *gb.CPU
	bus    *gb.Bus
	offset uint16
	prevPC uint16
	err    error
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			m.prevPC = m.cpu.PC
			if _, err := m.cpu.DispatchErr(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) renderPage(start uint16) string {
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		addr := start + i
		b, err := m.bus.ReadByte(addr)
		if err != nil {
			s += " ?? "
			continue
		}
		if addr == m.cpu.PC {
			s += fmt.Sprintf("[%02x]", b)
		} else {
			s += fmt.Sprintf(" %02x ", b)
		}
	}
	return s
}

func (m model) status() string {
	flagChar := func(set bool, name string) string {
		if set {
			return name
		}
		return "-"
	}
	return fmt.Sprintf(`
PC: %04x (prev %04x)
AF: %04x  BC: %04x
DE: %04x  HL: %04x
SP: %04x
%s %s %s %s
`,
		m.cpu.PC, m.prevPC,
		m.cpu.AF(), m.cpu.BC(),
		m.cpu.DE(), m.cpu.HL(),
		m.cpu.SP,
		flagChar(m.cpu.GetZ(), "Z"), flagChar(m.cpu.GetN(), "N"),
		flagChar(m.cpu.GetH(), "H"), flagChar(m.cpu.GetC(), "C"),
	)
}

func (m model) pageTable() string {
	header := "addr | " + strings.Repeat(" x  ", 16)
	lines := []string{header}
	base := (m.cpu.PC / 16) * 16
	for i := -2; i <= 2; i++ {
		row := int32(base) + int32(i)*16
		if row < 0 {
			continue
		}
		lines = append(lines, m.renderPage(uint16(row)))
	}
	return strings.Join(lines, "\n")
}

func (m model) View() string {
	op, _ := m.bus.ReadByte(m.cpu.PC)
	next := gb.Disassemble(m.bus, m.cpu.PC, m.cpu.PC+2)[m.cpu.PC]
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, m.pageTable(), m.status()),
		"",
		spew.Sprintf("next opcode %#02x: %s", op, next),
		"",
		"space/j: step   q: quit",
	)
}

func main() {
	var loadAddr uint16
	root := &cobra.Command{
		Use:   "gbdebug <image>",
		Short: "Interactive single-step CPU debugger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			bus := gb.NewBus()
			bus.Register(gb.NewROM(data), loadAddr)
			bus.Register(gb.NewRAM(0x2000), 0xC000)
			bus.Register(gb.NewRAM(0x0080), 0xFF80)

			cpu := gb.NewCPU(bus)
			cpu.Reset(loadAddr)

			m, err := tea.NewProgram(model{cpu: cpu, bus: bus, offset: loadAddr}).Run()
			if err != nil {
				return err
			}
			if final, ok := m.(model); ok && final.err != nil {
				fmt.Println("error:", final.err)
			}
			return nil
		},
	}
	root.Flags().Uint16Var(&loadAddr, "load-addr", 0x0100, "address the image is mapped to")
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
