// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package app wires configuration, operation store, target discovery, LLM
// gateway, batch engine and result sink into the surface the CLI and the
// scheduler drive.
package app
