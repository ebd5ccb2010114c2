// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package operation models the two kinds of work a batch run can apply to a
// target: reusable tasks and templated prompts. Operations are immutable once
// resolved for a run and are identified by name within their namespace.
// Prompt files may carry a frontmatter metadata block delimited by "---"
// lines; the store caches both namespaces until asked to refresh.
package operation
