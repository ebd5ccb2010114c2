// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress provides real-time progress reporting for batch runs.
// The engine emits events at run, batch, and item boundaries; listeners such
// as the CLI subscribe through a reporter without coupling to the engine.
package progress
