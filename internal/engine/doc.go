// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package engine drives batch runs: it partitions targets into consecutive
// batches, dispatches each batch with bounded concurrency against the model
// gateway, tolerates per-item failures, honours cooperative cancellation at
// batch boundaries, and aggregates outcomes in the original target order.
// At most one run may be active per engine instance at any time.
package engine
