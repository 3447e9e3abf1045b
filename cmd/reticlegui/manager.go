package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"
)

// WindowInfo is the overlay placement served by /api/window.
type WindowInfo struct {
	Title   string  `json:"title"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OffsetX int     `json:"offset_x"`
	OffsetY int     `json:"offset_y"`
}

// Manager starts or attaches to the overlay service and reports progress to
// the shell page.
type Manager struct {
	logFunc    func(string)
	termFunc   func(string)
	appFunc    func(string, WindowInfo)
	serverCmd  *exec.Cmd
	serverAddr string
	serverBin  string
	client     *http.Client
}

func NewManager(log, term func(string), app func(string, WindowInfo), serverAddr string) *Manager {
	return &Manager{
		logFunc:    log,
		termFunc:   term,
		appFunc:    app,
		serverAddr: serverAddr,
		serverBin:  "./reticlego",
		client:     &http.Client{Timeout: 1 * time.Second},
	}
}

func (m *Manager) log(msg string) {
	if m.logFunc != nil {
		m.logFunc(msg)
	}
}

func (m *Manager) term(name string) {
	if m.termFunc != nil {
		m.termFunc(name)
	}
}

// Stop asks a server this manager started to shut down.
func (m *Manager) Stop() {
	if m.serverCmd == nil || m.serverCmd.Process == nil {
		return
	}
	fmt.Println("> ReticleGUI closing: Sending shutdown signal to server...")

	url := fmt.Sprintf("http://%s/api/shutdown", m.resolveAddr())
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, http.NoBody)
	resp, err := m.client.Do(req)
	if err != nil {
		fmt.Printf("> API shutdown failed: %v\n", err)
		return
	}
	resp.Body.Close()
	fmt.Println("> Shutdown command sent successfully.")
	time.Sleep(500 * time.Millisecond)
}

func (m *Manager) Start() {
	go func() {
		if !m.checkPrerequisites() {
			m.log("> configs/ missing. Generating default config...")
			if err := m.run(exec.Command(m.serverBin, "-init-config")); err != nil {
				m.log(fmt.Sprintf("> Config generation failed: %v", err))
				return
			}
		}

		m.term("reticlego")
		if !m.isServerReady() {
			m.log("> Server not running. Starting reticlego...")
			go m.runServer()
		} else {
			m.log("> Server already active.")
			m.term("server.log")
			go m.tailServerLog("logs/server.log")
		}

		m.log("> Waiting for server...")
		for i := 0; i < 30; i++ {
			if m.isServerReady() {
				m.log("> Server ready!")
				info, err := m.windowInfo()
				if err != nil {
					m.log(fmt.Sprintf("> Could not read window settings: %v", err))
				}
				if m.appFunc != nil {
					m.appFunc(fmt.Sprintf("http://%s", m.resolveAddr()), info)
				}
				return
			}
			time.Sleep(1 * time.Second)
		}
		m.log("> Error: Server timed out.")
	}()
}

func (m *Manager) checkPrerequisites() bool {
	_, err := os.Stat("configs/reticle.yaml")
	return err == nil
}

func (m *Manager) runServer() {
	cmd := exec.Command(m.serverBin)
	m.serverCmd = cmd
	if err := m.run(cmd); err != nil {
		m.log(fmt.Sprintf("Server exited with error: %v", err))
	}
}

func (m *Manager) run(cmd *exec.Cmd) error {
	stdout, _ := cmd.StdoutPipe()
	stderr, _ := cmd.StderrPipe()

	if err := cmd.Start(); err != nil {
		return err
	}

	go m.streamReader(stdout)
	go m.streamReader(stderr)

	return cmd.Wait()
}

func (m *Manager) tailServerLog(path string) {
	file, err := os.Open(path)
	if err != nil {
		m.log(fmt.Sprintf("Could not open log file: %v", err))
		return
	}
	defer file.Close()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		m.log(fmt.Sprintf("Could not seek log file: %v", err))
		return
	}
	reader := bufio.NewReader(file)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				time.Sleep(500 * time.Millisecond)
				continue
			}
			break
		}
		m.log(strings.TrimSpace(line))
	}
}

func (m *Manager) streamReader(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m.log(scanner.Text())
	}
}

func (m *Manager) resolveAddr() string {
	addr := m.serverAddr
	if strings.HasPrefix(addr, ":") {
		return "127.0.0.1" + addr
	}
	if strings.HasPrefix(addr, "localhost:") {
		return strings.Replace(addr, "localhost:", "127.0.0.1:", 1)
	}
	return addr
}

func (m *Manager) isServerReady() bool {
	resp, err := m.client.Get(fmt.Sprintf("http://%s/api/version", m.resolveAddr()))
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (m *Manager) windowInfo() (WindowInfo, error) {
	var info WindowInfo
	resp, err := m.client.Get(fmt.Sprintf("http://%s/api/window", m.resolveAddr()))
	if err != nil {
		return info, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return info, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return info, fmt.Errorf("failed to decode window info: %w", err)
	}
	return info, nil
}
