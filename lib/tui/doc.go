// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal user interface components for
// the console. Built on bubbletea (Elm architecture), these components
// handle common patterns like dropdown overlays, overlay splicing, and
// the color theme.
//
// The ticket console imports this package for consistent look and
// behavior; its own data source, layout, and domain rendering live in
// lib/ticketui.
package tui
