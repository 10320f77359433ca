package monitor_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/regsim/cpu"
	"github.com/ezrec/regsim/emulator"
	"github.com/ezrec/regsim/monitor"
)

var _ = Describe("ParseCommand", func() {
	It("should lowercase the name and keep arguments", func() {
		cmd := monitor.ParseCommand("  :LOAD prog.txt ")
		Expect(cmd.Name).To(Equal("load"))
		Expect(cmd.Args).To(Equal([]string{"prog.txt"}))
	})

	It("should return an empty command for a bare colon", func() {
		Expect(monitor.ParseCommand(":").Name).To(BeEmpty())
	})

	It("should tell commands from program text", func() {
		Expect(monitor.IsCommand(" :run")).To(BeTrue())
		Expect(monitor.IsCommand("MOV AX #1")).To(BeFalse())
	})
})

var _ = Describe("Monitor", func() {
	var (
		emu *emulator.Emulator
		out *bytes.Buffer
		mon *monitor.Monitor
	)

	exec := func(lines ...string) {
		for _, line := range lines {
			quit, err := mon.Exec(line)
			Expect(err).NotTo(HaveOccurred(), line)
			Expect(quit).To(BeFalse(), line)
		}
	}

	BeforeEach(func() {
		emu = emulator.NewEmulator()
		out = &bytes.Buffer{}
		mon = monitor.NewMonitor(emu, out)
	})

	Context("Editing", func() {
		It("should collect program text in the buffer", func() {
			exec("MOV AX #1", "   ", "  ADD AX #2  ")
			Expect(mon.Buffer).To(Equal([]string{"MOV AX #1", "ADD AX #2"}))
			Expect(mon.Text()).To(Equal("MOV AX #1\nADD AX #2"))
		})

		It("should list and clear the buffer", func() {
			exec("MOV AX #1", "ADD AX #2", ":list")
			Expect(out.String()).To(ContainSubstring("   1: MOV AX #1\n"))
			Expect(out.String()).To(ContainSubstring("   2: ADD AX #2\n"))

			exec(":clear")
			Expect(mon.Buffer).To(BeEmpty())
		})
	})

	Context("Run", func() {
		It("should run the buffer and display registers", func() {
			exec("MOV AX #10", "MOV BX #20", "ADD AX BX", ":run")
			Expect(emu.Snapshot().Get(cpu.REG_AX)).To(Equal(uint16(0x30)))
			Expect(out.String()).To(ContainSubstring("AX: 0030\nBX: 0020\nCX: 0000\nDX: 0000\n"))
			Expect(out.String()).To(ContainSubstring("program executed"))
		})

		It("should report the failing line", func() {
			exec("MOV AX #1", "MOV ZZ #2")
			_, err := mon.Exec(":run")
			Expect(err).To(MatchError(cpu.ErrUnknownRegister))

			var runtime *emulator.ErrRuntime
			Expect(err).To(BeAssignableToTypeOf(runtime))
			Expect(err.(*emulator.ErrRuntime).Index).To(Equal(1))
			Expect(emu.Snapshot().Get(cpu.REG_AX)).To(Equal(uint16(1)))
		})
	})

	Context("Step", func() {
		It("should execute one line per step and then complete", func() {
			exec("MOV AX #1", "ADD AX #1", ":step")
			Expect(emu.Snapshot().Get(cpu.REG_AX)).To(Equal(uint16(1)))

			exec(":step")
			Expect(emu.Snapshot().Get(cpu.REG_AX)).To(Equal(uint16(2)))

			out.Reset()
			exec(":step")
			Expect(out.String()).To(ContainSubstring("program execution complete"))
			Expect(emu.Snapshot().Get(cpu.REG_AX)).To(Equal(uint16(2)))
		})

		It("should keep stepping the program captured at the first step", func() {
			exec("MOV AX #1", "MOV BX #1", ":step", ":clear", "MOV CX #1", ":step")
			Expect(emu.Snapshot().Get(cpu.REG_BX)).To(Equal(uint16(1)))
			Expect(emu.Snapshot().Get(cpu.REG_CX)).To(Equal(uint16(0)))
		})

		It("should mark the cursor only while the buffer matches the stepped program", func() {
			exec("MOV AX #1", "ADD AX #2", ":step")
			out.Reset()
			exec(":list")
			Expect(out.String()).To(ContainSubstring(">   2: ADD AX #2\n"))

			exec("ADD AX #3")
			out.Reset()
			exec(":list")
			Expect(out.String()).NotTo(ContainSubstring(">"))
			Expect(out.String()).To(ContainSubstring("   2: ADD AX #2\n"))
		})

		It("should not advance past a failing line", func() {
			exec("SUB AX #1", "MOV #1 AX", ":step")
			_, err := mon.Exec(":step")
			Expect(err).To(MatchError(cpu.ErrInvalidDestination))
			Expect(emu.Cursor).To(Equal(1))
			Expect(emu.Snapshot().Get(cpu.REG_AX)).To(Equal(uint16(0xffff)))
		})
	})

	Context("Reset", func() {
		It("should clear registers and the captured program", func() {
			exec("MOV DX #abcd", ":step", ":reset")
			Expect(emu.Snapshot()).To(Equal(cpu.Registers{}))
			Expect(emu.Program).To(BeEmpty())
			Expect(emu.Cursor).To(BeZero())
			Expect(out.String()).To(ContainSubstring("processor reset"))
			Expect(mon.Buffer).To(Equal([]string{"MOV DX #abcd"}))
		})
	})

	Context("Files", func() {
		var dir string

		BeforeEach(func() {
			var err error
			dir, err = os.MkdirTemp("", "monitor")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)
		})

		It("should save and load the buffer as plain text", func() {
			path := filepath.Join(dir, "prog.txt")
			exec("MOV AX #1", "ADD AX #2", ":save "+path)

			data, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("MOV AX #1\nADD AX #2\n"))

			exec(":clear", ":load "+path)
			Expect(mon.Buffer).To(Equal([]string{"MOV AX #1", "ADD AX #2"}))
			Expect(out.String()).To(ContainSubstring("program loaded"))
		})

		It("should preprocess files when assembling", func() {
			path := filepath.Join(dir, "prog.asm")
			text := strings.Join([]string{
				"; mask test",
				".equ ACC DX",
				"MOV ACC #WORD_MASK",
				"SUB ACC #$(WORD_BITS - 1)",
			}, "\n")
			Expect(os.WriteFile(path, []byte(text), 0o644)).To(Succeed())

			mon.Assemble = true
			exec(":load "+path, ":run")
			Expect(mon.Buffer).To(Equal([]string{"MOV DX #FFFF", "SUB DX #F"}))
			Expect(emu.Snapshot().Get(cpu.REG_DX)).To(Equal(uint16(0xfff0)))
		})

		It("should report missing files", func() {
			_, err := mon.Exec(":load " + filepath.Join(dir, "missing.txt"))
			Expect(err).To(MatchError(os.ErrNotExist))
		})
	})

	Context("Commands", func() {
		It("should reject unknown commands and bad arguments", func() {
			_, err := mon.Exec(":jump")
			Expect(err).To(MatchError(monitor.ErrCommand("jump")))

			_, err = mon.Exec(":load")
			Expect(err).To(MatchError(monitor.ErrCommandArgs))

			_, err = mon.Exec(":run now")
			Expect(err).To(MatchError(monitor.ErrCommandArgs))
		})

		It("should quit", func() {
			quit, err := mon.Exec(":quit")
			Expect(err).NotTo(HaveOccurred())
			Expect(quit).To(BeTrue())
		})
	})

	Context("Serve", func() {
		It("should process input until quit, reporting errors", func() {
			input := strings.Join([]string{
				"MOV AX #ff",
				":bogus",
				"ADD AX #1",
				":run",
				":quit",
				"MOV BX #1",
			}, "\n")

			err := mon.Serve(monitor.NewScanner(strings.NewReader(input)))
			Expect(err).NotTo(HaveOccurred())
			Expect(out.String()).To(ContainSubstring("error: unknown command ':bogus'"))
			Expect(out.String()).To(ContainSubstring("AX: 0100"))
			Expect(mon.Buffer).To(HaveLen(2))
		})

		It("should stop at end of input", func() {
			err := mon.Serve(monitor.NewScanner(strings.NewReader("MOV AX #1\n:run\n")))
			Expect(err).NotTo(HaveOccurred())
			Expect(emu.Snapshot().Get(cpu.REG_AX)).To(Equal(uint16(1)))
		})
	})
})
