// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

package websocket

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinemap/cinemap/internal/catalog"
	"github.com/cinemap/cinemap/internal/logging"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	// Initialize logging for tests with discard output
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// setupHub creates and starts a new hub for testing
func setupHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	go hub.Run()
	time.Sleep(10 * time.Millisecond)
	return hub
}

// createTestClient creates a mock client for testing
func createTestClient(hub *Hub) *Client {
	return &Client{id: clientIDCounter.Add(1), hub: hub, conn: nil, send: make(chan Message, 256)}
}

// registerClient registers a client and waits for registration to complete
func registerClient(hub *Hub, client *Client) {
	hub.Register <- client
	time.Sleep(20 * time.Millisecond)
}

// readyStatus returns a catalog status in the ready state
func readyStatus() catalog.Status {
	loadedAt := time.Now()
	return catalog.Status{
		State:          catalog.StateReady,
		Movies:         1682,
		Ratings:        100000,
		MovieReport:    catalog.Report{Parsed: 1682},
		RatingReport:   catalog.Report{Parsed: 100000},
		LoadedAt:       &loadedAt,
		LoadDurationMS: 1200,
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub returned nil")
	}

	checks := []struct {
		name   string
		check  bool
		errMsg string
	}{
		{"clients map", hub.clients != nil, "clients map not initialized"},
		{"broadcast channel", hub.broadcast != nil, "broadcast channel not initialized"},
		{"Register channel", hub.Register != nil, "Register channel not initialized"},
		{"Unregister channel", hub.Unregister != nil, "Unregister channel not initialized"},
		{"empty clients", len(hub.clients) == 0, "clients map should be empty"},
	}

	for _, c := range checks {
		if !c.check {
			t.Error(c.errMsg)
		}
	}
}

func TestHub_GetClientCount(t *testing.T) {
	hub := NewHub()

	if hub.GetClientCount() != 0 {
		t.Errorf("Expected 0 clients initially, got %d", hub.GetClientCount())
	}

	for i := 0; i < 5; i++ {
		hub.clients[createTestClient(hub)] = true
	}

	if hub.GetClientCount() != 5 {
		t.Errorf("Expected 5 clients, got %d", hub.GetClientCount())
	}
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	t.Run("NotifyCatalogState without clients", func(t *testing.T) {
		hub := setupHub(t)
		hub.NotifyCatalogState(readyStatus())
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("BroadcastJSON without clients", func(t *testing.T) {
		hub := setupHub(t)
		hub.BroadcastJSON("test_type", map[string]interface{}{"test_key": "test_value", "count": 42})
		time.Sleep(10 * time.Millisecond)
	})
}

func TestHub_ClientRegistration(t *testing.T) {
	hub := setupHub(t)
	client := createTestClient(hub)
	registerClient(hub, client)

	if hub.GetClientCount() != 1 {
		t.Errorf("Expected 1 client, got %d", hub.GetClientCount())
	}

	hub.mu.RLock()
	if !hub.clients[client] {
		t.Error("Client should be registered")
	}
	hub.mu.RUnlock()

	// Unregister
	hub.Unregister <- client
	time.Sleep(20 * time.Millisecond)

	if hub.GetClientCount() != 0 {
		t.Errorf("Expected 0 clients after unregister, got %d", hub.GetClientCount())
	}
}

func TestHub_UnregisterNonExistentClient(t *testing.T) {
	hub := setupHub(t)
	client := createTestClient(hub)

	hub.Unregister <- client
	time.Sleep(20 * time.Millisecond)

	if hub.GetClientCount() != 0 {
		t.Errorf("Expected 0 clients, got %d", hub.GetClientCount())
	}
}

func TestHub_BroadcastToClients(t *testing.T) {
	hub := setupHub(t)

	const numClients = 3
	clients := make([]*Client, numClients)
	var mu sync.Mutex
	received := make([]bool, numClients)
	var wg sync.WaitGroup

	for i := 0; i < numClients; i++ {
		clients[i] = createTestClient(hub)
		registerClient(hub, clients[i])
	}

	if hub.GetClientCount() != numClients {
		t.Fatalf("Expected %d clients, got %d", numClients, hub.GetClientCount())
	}

	for i := 0; i < numClients; i++ {
		wg.Add(1)
		go func(idx int, c *Client) {
			defer wg.Done()
			select {
			case msg := <-c.send:
				if msg.Type == MessageTypeCatalogState {
					mu.Lock()
					received[idx] = true
					mu.Unlock()
				}
			case <-time.After(500 * time.Millisecond):
			}
		}(i, clients[i])
	}

	time.Sleep(20 * time.Millisecond)
	hub.NotifyCatalogState(readyStatus())
	wg.Wait()

	mu.Lock()
	for i, r := range received {
		if !r {
			t.Errorf("Client %d did not receive broadcast", i)
		}
	}
	mu.Unlock()
}

func TestHub_ConcurrentOperations(t *testing.T) {
	hub := setupHub(t)
	done := make(chan bool)

	go func() {
		for i := 0; i < 10; i++ {
			registerClient(hub, createTestClient(hub))
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 20; i++ {
			hub.BroadcastJSON("test", map[string]int{"i": i})
			time.Sleep(2 * time.Millisecond)
		}
		done <- true
	}()

	go func() {
		for i := 0; i < 50; i++ {
			hub.GetClientCount()
			time.Sleep(1 * time.Millisecond)
		}
		done <- true
	}()

	for i := 0; i < 3; i++ {
		<-done
	}
	time.Sleep(100 * time.Millisecond)

	if hub.GetClientCount() != 10 {
		t.Errorf("Expected 10 clients, got %d", hub.GetClientCount())
	}
}

func TestMarshalMessage(t *testing.T) {
	tests := []struct {
		name    string
		message Message
	}{
		{"simple message", Message{Type: MessageTypePing, Data: nil}},
		{"string data", Message{Type: "test", Data: "hello world"}},
		{"map data", Message{Type: "test", Data: map[string]interface{}{"count": 42}}},
		{"catalog status data", Message{Type: MessageTypeCatalogState, Data: readyStatus()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalMessage(tt.message)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(data) == 0 || data[0] != '{' || data[len(data)-1] != '}' {
				t.Error("Invalid JSON output")
			}
		})
	}
}

func TestHub_MessageTypes(t *testing.T) {
	expected := map[string]string{
		MessageTypeCatalogState: "catalog_state",
		MessageTypePing:         "ping",
		MessageTypePong:         "pong",
	}

	for got, want := range expected {
		if got != want {
			t.Errorf("Message type = %q, want %q", got, want)
		}
	}
}

func TestHub_NotifyCatalogState(t *testing.T) {
	tests := []struct {
		name   string
		status catalog.Status
	}{
		{
			name:   "ready state",
			status: readyStatus(),
		},
		{
			name:   "loading state",
			status: catalog.Status{State: catalog.StateLoading},
		},
		{
			name: "failed state carries error",
			status: catalog.Status{
				State:     catalog.StateFailed,
				LastError: "fetch u.item: connection refused",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := setupHub(t)
			client := createTestClient(hub)
			registerClient(hub, client)

			hub.NotifyCatalogState(tt.status)

			select {
			case msg := <-client.send:
				if msg.Type != MessageTypeCatalogState {
					t.Errorf("Type = %q, want %q", msg.Type, MessageTypeCatalogState)
				}
				status, ok := msg.Data.(catalog.Status)
				if !ok {
					t.Fatalf("Expected catalog.Status data, got %T", msg.Data)
				}
				if status.State != tt.status.State {
					t.Errorf("State = %q, want %q", status.State, tt.status.State)
				}
				if status.LastError != tt.status.LastError {
					t.Errorf("LastError = %q, want %q", status.LastError, tt.status.LastError)
				}
			case <-time.After(100 * time.Millisecond):
				t.Error("Timeout waiting for message")
			}

			hub.Unregister <- client
		})
	}
}

func TestHub_ChannelFullBehavior(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer zerolog.SetGlobalLevel(oldLevel)

	tests := []struct {
		name      string
		broadcast func(*Hub)
	}{
		{"NotifyCatalogState", func(h *Hub) { h.NotifyCatalogState(readyStatus()) }},
		{"BroadcastJSON", func(h *Hub) { h.BroadcastJSON("test", map[string]string{"test": "data"}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := NewHub() // Don't start Run() so channel fills

			for i := 0; i < 256; i++ {
				tt.broadcast(hub)
			}
			tt.broadcast(hub) // Should hit default case and not block
		})
	}
}

// TestHub_BroadcastToFullClient tests broadcasting when a client's send channel is full
func TestHub_BroadcastToFullClient(t *testing.T) {
	hub := setupHub(t)

	// Create client with tiny buffer that will fill up
	client := &Client{id: clientIDCounter.Add(1), hub: hub, conn: nil, send: make(chan Message, 1)}
	registerClient(hub, client)

	// Fill the client's send channel
	client.send <- Message{Type: "filler", Data: nil}

	// Now broadcast - the hub should close the stuck client and remove it
	hub.NotifyCatalogState(readyStatus())

	// Wait for client removal with polling (more reliable in CI under load)
	var clientCount int
	for i := 0; i < 10; i++ {
		time.Sleep(20 * time.Millisecond)
		clientCount = hub.GetClientCount()
		if clientCount == 0 {
			break
		}
	}

	if clientCount != 0 {
		t.Errorf("Expected 0 clients after overflow handling, got %d", clientCount)
	}
}

// TestHub_RunWithContext tests the context-aware run method
func TestHub_RunWithContext(t *testing.T) {
	t.Run("shuts down on context cancellation", func(t *testing.T) {
		oldLevel := zerolog.GlobalLevel()
		zerolog.SetGlobalLevel(zerolog.Disabled)
		defer zerolog.SetGlobalLevel(oldLevel)

		hub := NewHub()
		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			errCh <- hub.RunWithContext(ctx)
		}()

		// Let it start
		time.Sleep(20 * time.Millisecond)

		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Error("RunWithContext did not return after context cancellation")
		}
	})

	t.Run("shuts down on context deadline", func(t *testing.T) {
		oldLevel := zerolog.GlobalLevel()
		zerolog.SetGlobalLevel(zerolog.Disabled)
		defer zerolog.SetGlobalLevel(oldLevel)

		hub := NewHub()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		errCh := make(chan error, 1)
		go func() {
			errCh <- hub.RunWithContext(ctx)
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("expected context.DeadlineExceeded, got %v", err)
			}
		case <-time.After(time.Second):
			t.Error("RunWithContext did not return after deadline")
		}
	})

	t.Run("closes all clients on shutdown", func(t *testing.T) {
		oldLevel := zerolog.GlobalLevel()
		zerolog.SetGlobalLevel(zerolog.Disabled)
		defer zerolog.SetGlobalLevel(oldLevel)

		hub := NewHub()
		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			errCh <- hub.RunWithContext(ctx)
		}()

		// Register some clients
		clients := make([]*Client, 3)
		for i := 0; i < 3; i++ {
			clients[i] = createTestClient(hub)
			hub.Register <- clients[i]
		}

		// Wait for registration with polling (more reliable in CI under load)
		var clientCount int
		for i := 0; i < 10; i++ {
			time.Sleep(20 * time.Millisecond)
			clientCount = hub.GetClientCount()
			if clientCount == 3 {
				break
			}
		}

		if clientCount != 3 {
			t.Fatalf("expected 3 clients, got %d", clientCount)
		}

		cancel()

		select {
		case <-errCh:
			// Hub has shut down
		case <-time.After(time.Second):
			t.Fatal("RunWithContext did not return after context cancellation")
		}

		if hub.GetClientCount() != 0 {
			t.Errorf("expected 0 clients after shutdown, got %d", hub.GetClientCount())
		}
	})

	t.Run("handles messages before shutdown", func(t *testing.T) {
		oldLevel := zerolog.GlobalLevel()
		zerolog.SetGlobalLevel(zerolog.Disabled)
		defer zerolog.SetGlobalLevel(oldLevel)

		hub := NewHub()
		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			errCh <- hub.RunWithContext(ctx)
		}()

		client := createTestClient(hub)
		hub.Register <- client
		time.Sleep(20 * time.Millisecond)

		hub.NotifyCatalogState(catalog.Status{State: catalog.StateLoading})

		select {
		case msg := <-client.send:
			if msg.Type != MessageTypeCatalogState {
				t.Errorf("expected message type %q, got %q", MessageTypeCatalogState, msg.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Error("did not receive message")
		}

		cancel()
		<-errCh
	})
}

// TestHub_CloseAllClients tests the closeAllClients method
func TestHub_CloseAllClients(t *testing.T) {
	hub := NewHub()

	// Manually add clients
	clients := make([]*Client, 5)
	for i := 0; i < 5; i++ {
		clients[i] = createTestClient(hub)
		hub.mu.Lock()
		hub.clients[clients[i]] = true
		hub.mu.Unlock()
	}

	if hub.GetClientCount() != 5 {
		t.Fatalf("expected 5 clients, got %d", hub.GetClientCount())
	}

	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.Disabled)
	hub.closeAllClients()
	zerolog.SetGlobalLevel(oldLevel)

	if hub.GetClientCount() != 0 {
		t.Errorf("expected 0 clients after closeAllClients, got %d", hub.GetClientCount())
	}
}

// TestGetShutdownReason verifies shutdown reason detection from context errors.
func TestGetShutdownReason(t *testing.T) {
	tests := []struct {
		name     string
		setupCtx func() context.Context
		expected ShutdownReason
	}{
		{
			name: "context canceled returns context_canceled",
			setupCtx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			expected: ShutdownReasonContextCanceled,
		},
		{
			name: "context deadline exceeded returns context_deadline",
			setupCtx: func() context.Context {
				ctx, cancel := context.WithTimeout(context.Background(), 1*time.Nanosecond)
				defer cancel()
				time.Sleep(10 * time.Millisecond) // Ensure deadline passes
				return ctx
			},
			expected: ShutdownReasonContextDeadline,
		},
		{
			name: "active context has no error (edge case)",
			setupCtx: func() context.Context {
				return context.Background()
			},
			expected: ShutdownReasonContextCanceled, // Fallback behavior
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tt.setupCtx()
			got := getShutdownReason(ctx)
			if got != tt.expected {
				t.Errorf("getShutdownReason() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// TestShutdownReason_Constants verifies shutdown reason constant values.
// These values appear in log output and may be parsed by log aggregators;
// changing them would break monitoring systems.
func TestShutdownReason_Constants(t *testing.T) {
	tests := []struct {
		constant ShutdownReason
		expected string
	}{
		{ShutdownReasonContextCanceled, "context_canceled"},
		{ShutdownReasonContextDeadline, "context_deadline"},
	}

	for _, tt := range tests {
		if string(tt.constant) != tt.expected {
			t.Errorf("ShutdownReason constant = %q, want %q", tt.constant, tt.expected)
		}
	}
}

// TestHub_logGracefulShutdown_Idempotent verifies calling shutdown multiple
// times doesn't panic (though this shouldn't happen in production).
func TestHub_logGracefulShutdown_Idempotent(t *testing.T) {
	oldLevel := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.Disabled)
	defer zerolog.SetGlobalLevel(oldLevel)

	hub := NewHub()

	client := createTestClient(hub)
	hub.mu.Lock()
	hub.clients[client] = true
	hub.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Pre-cancel

	hub.logGracefulShutdown(ctx)
	hub.logGracefulShutdown(ctx)
	hub.logGracefulShutdown(ctx)

	if hub.GetClientCount() != 0 {
		t.Errorf("expected 0 clients after shutdown, got %d", hub.GetClientCount())
	}
}

func BenchmarkHub_NotifyCatalogState(b *testing.B) {
	hub := NewHub()
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	for i := 0; i < 10; i++ {
		client := createTestClient(hub)
		hub.Register <- client
		go func(c *Client) {
			for range c.send {
			}
		}(client)
	}

	// Allow registrations and goroutines to start (100ms for CI reliability under load)
	time.Sleep(100 * time.Millisecond)

	status := readyStatus()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hub.NotifyCatalogState(status)
	}
}

func BenchmarkHub_RegisterUnregister(b *testing.B) {
	hub := NewHub()
	go hub.Run()
	time.Sleep(10 * time.Millisecond)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		client := createTestClient(hub)
		hub.Register <- client
		hub.Unregister <- client
	}
}
