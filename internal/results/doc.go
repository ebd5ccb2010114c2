// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package results persists run output. DocumentSink writes one markdown
// document per successful item into the output directory and a per-run
// summary document, and WriteReport renders a human-readable run report.
package results
