package audio

import (
	"os"
	"os/exec"
	"testing"
	"time"
)

func TestPlayerPlaysAndCleansUp(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}

	var played string
	p := &Player{command: func(file string) (*exec.Cmd, error) {
		played = file
		return exec.Command("true"), nil
	}}

	done, err := p.PlayWAV(EncodeWAV(make([]int16, 10), 24000))
	if err != nil {
		t.Fatalf("PlayWAV() error = %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not finish")
	}

	if _, err := os.Stat(played); !os.IsNotExist(err) {
		t.Errorf("temporary file %s was not removed", played)
	}
	if p.IsPlaying() {
		t.Error("IsPlaying() = true after playback finished")
	}
}

func TestPlayerStop(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	p := &Player{command: func(string) (*exec.Cmd, error) {
		return exec.Command("sleep", "5"), nil
	}}

	done, err := p.PlayWAV(EncodeWAV(nil, 24000))
	if err != nil {
		t.Fatalf("PlayWAV() error = %v", err)
	}
	if !p.IsPlaying() {
		t.Fatal("IsPlaying() = false right after start")
	}

	StopAll(p, nil)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop() did not end playback")
	}
	select {
	case <-p.Done():
	default:
		t.Error("Done() should be closed when idle")
	}
}
