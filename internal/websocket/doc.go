// Cinemap - Genre-Based Movie Recommendation Service
// Copyright 2026 The Cinemap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinemap/cinemap

/*
Package websocket pushes catalog lifecycle updates to connected browser clients.

The service loads its movie catalog from remote sources, so the catalog can be
loading, ready, or failed at any moment. This package broadcasts every state
transition as a catalog_state message so the frontend can show load progress
and re-enable the picker the instant a reload completes, without polling the
status endpoint. It uses the gorilla/websocket library with a hub-client
architecture.

Key Components:

  - Hub: Central broker that manages client connections and broadcasts
  - Client: A single WebSocket connection with read/write goroutines
  - Message: Typed envelope {type, data} for all traffic

Architecture:

The package implements a hub-and-spoke pattern:

	┌──────────┐
	│   Hub    │ ← Broadcasts to all clients
	└────┬─────┘
	     │
	┌────┴─────┬─────────┬─────────┐
	│          │         │         │
	│ Client1  │ Client2 │ Client3 │ Client4
	│          │         │         │
	└──────────┴─────────┴─────────┘

Each client has two goroutines:
  - readPump: Reads from WebSocket, answers application-level pings
  - writePump: Writes hub messages, sends protocol pings on a ticker

Message Types:

  - catalog_state: Catalog load state changed; data is the full catalog
    status (state, counts, parse reports, timing)
  - ping / pong: Application-level liveness check initiated by clients

Usage Example - Server:

	hub := websocket.NewHub()
	go func() { _ = hub.RunWithContext(ctx) }()

	// The catalog store pushes state transitions through the
	// catalog.StateNotifier interface, which Hub implements.
	store.SetNotifier(hub)

Usage Example - Client (JavaScript):

	const ws = new WebSocket('ws://localhost:8100/ws');

	ws.onmessage = (event) => {
	    const msg = JSON.parse(event.data);
	    if (msg.type === 'catalog_state') {
	        updateCatalogBanner(msg.data.state, msg.data.movies);
	    }
	};

Determinism:

Broadcast delivery and shutdown both iterate clients in ID order. Client IDs
come from an atomic counter, so delivery order is reproducible and tests do
not depend on map iteration order. The hub's run loop checks its channels in
priority tiers (shutdown, then lifecycle, then broadcast) because Go's select
picks randomly among ready channels.

Connection Lifecycle:

 1. Client connects via HTTP upgrade (handled in internal/api)
 2. Hub registers client
 3. Client starts read/write goroutines
 4. Hub broadcasts catalog_state messages as the store reports transitions
 5. Client disconnects (network error or explicit close)
 6. Hub unregisters client and cleans up

Slow clients are dropped rather than blocking the hub: a client whose send
buffer is full when a broadcast arrives is closed and removed.

Configuration:

WebSocket timing constants:
  - writeWait: 10 seconds (time allowed to write a message)
  - pongWait: 60 seconds (time allowed to read the next pong)
  - pingPeriod: 54 seconds (protocol ping interval, must be < pongWait)
  - maxMessageSize: 512 KB

See Also:

  - github.com/gorilla/websocket: Underlying WebSocket library
  - internal/api: WebSocket endpoint handler and origin checks
  - internal/catalog: StateNotifier interface and load state machine
*/
package websocket
