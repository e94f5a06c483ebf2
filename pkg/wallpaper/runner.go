package wallpaper

import (
	"os"
	"os/exec"
	"syscall"
)

// Process is a handle to a spawned renderer process.
type Process interface {
	// Pid returns the operating system process id.
	Pid() int
	// Signal delivers a signal to the process.
	Signal(sig os.Signal) error
	// Terminate asks the process to exit (SIGTERM).
	Terminate() error
	// Kill forcibly ends the process.
	Kill() error
	// Wait blocks until the process exits.
	Wait() error
}

// CommandRunner abstracts process execution so adapters can be exercised
// in tests without spawning external tools.
type CommandRunner interface {
	// LookPath reports whether the named binary is on PATH.
	LookPath(name string) (string, error)
	// Run executes a command and waits for it to finish.
	Run(name string, args ...string) error
	// StartDetached launches a command in its own process group and
	// returns without waiting.
	StartDetached(name string, args ...string) (Process, error)
}

// execRunner is the os/exec backed CommandRunner.
type execRunner struct{}

// NewExecRunner returns the production CommandRunner.
func NewExecRunner() CommandRunner {
	return execRunner{}
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (execRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (execRunner) StartDetached(name string, args ...string) (Process, error) {
	cmd := exec.Command(name, args...)
	// Own process group, so the renderer survives the CLI exiting and
	// signals sent to the CLI's group don't reach it.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &osProcess{cmd: cmd}, nil
}

// osProcess wraps an exec.Cmd as a Process.
type osProcess struct {
	cmd *exec.Cmd
}

func (p *osProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *osProcess) Signal(sig os.Signal) error {
	return p.cmd.Process.Signal(sig)
}

func (p *osProcess) Terminate() error {
	return p.cmd.Process.Signal(syscall.SIGTERM)
}

func (p *osProcess) Kill() error {
	return p.cmd.Process.Kill()
}

func (p *osProcess) Wait() error {
	return p.cmd.Wait()
}
