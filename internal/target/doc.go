// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package target models the files and directories a batch run operates on.
// It provides a content reader that renders directories as a one-level
// listing, and a glob-based finder that resolves file patterns to targets.
package target
