package audio

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

// commandFunc builds the process that plays file
type commandFunc func(file string) (*exec.Cmd, error)

// Player plays audio files with an external player. Only one file plays at
// a time: starting playback stops the previous one.
type Player struct {
	mu       sync.Mutex
	cmd      *exec.Cmd
	done     chan struct{}
	tempFile string
	command  commandFunc
}

// NewPlayer creates a player using the platform's audio player
func NewPlayer() *Player {
	return &Player{command: playerCommand}
}

// PlayWAV writes wav to a temporary file and plays it. The returned channel
// is closed when playback ends or is stopped.
func (p *Player) PlayWAV(wav []byte) (<-chan struct{}, error) {
	f, err := os.CreateTemp("", "vocabbuilder-*.wav")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.Write(wav); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	done, err := p.play(f.Name(), true)
	if err != nil {
		os.Remove(f.Name())
		return nil, err
	}
	return done, nil
}

// PlayFile plays an existing audio file
func (p *Player) PlayFile(path string) (<-chan struct{}, error) {
	return p.play(path, false)
}

func (p *Player) play(file string, temporary bool) (<-chan struct{}, error) {
	p.Stop()

	cmd, err := p.command(file)
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start audio player: %w", err)
	}

	done := make(chan struct{})

	p.mu.Lock()
	p.cmd = cmd
	p.done = done
	if temporary {
		p.tempFile = file
	}
	p.mu.Unlock()

	go func() {
		cmd.Wait()

		p.mu.Lock()
		if p.cmd == cmd {
			p.cmd = nil
			p.done = nil
			if p.tempFile != "" {
				os.Remove(p.tempFile)
				p.tempFile = ""
			}
		}
		p.mu.Unlock()

		close(done)
	}()

	return done, nil
}

// Stop stops playback and waits for the player process to exit
func (p *Player) Stop() {
	p.mu.Lock()
	cmd, done := p.cmd, p.done
	p.mu.Unlock()

	if cmd == nil {
		return
	}
	if cmd.Process != nil {
		cmd.Process.Kill()
	}
	<-done
}

// Done returns a channel closed when the current playback ends. It returns
// a closed channel when nothing is playing.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return p.done
}

// IsPlaying reports whether a file is being played
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cmd != nil
}

// playerCommand returns the platform-specific command that plays file
func playerCommand(file string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", file), nil
	case "linux":
		if _, err := exec.LookPath("mpg123"); err == nil {
			return exec.Command("mpg123", "-q", file), nil
		} else if _, err := exec.LookPath("ffplay"); err == nil {
			return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", file), nil
		} else if _, err := exec.LookPath("play"); err == nil {
			// SoX
			return exec.Command("play", "-q", file), nil
		} else if _, err := exec.LookPath("paplay"); err == nil {
			return exec.Command("paplay", file), nil
		} else if _, err := exec.LookPath("aplay"); err == nil {
			return exec.Command("aplay", "-q", file), nil
		}
		return nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Stopper is anything that can be silenced
type Stopper interface {
	Stop()
}

// StopAll silences every given audio source
func StopAll(stoppers ...Stopper) {
	for _, s := range stoppers {
		if s != nil {
			s.Stop()
		}
	}
}
