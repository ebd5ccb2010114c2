// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package operation

// Kind identifies the operation namespace. Tasks and prompts are separate
// namespaces, so a task and a prompt may share a name without collision.
type Kind string

const (
	// KindTask identifies the task namespace.
	KindTask Kind = "task"
	// KindPrompt identifies the prompt namespace.
	KindPrompt Kind = "prompt"
)

// Valid reports whether the kind is one of the known namespaces.
func (k Kind) Valid() bool {
	return k == KindTask || k == KindPrompt
}

// Operation is the task or prompt applied to each target of a batch run.
// It is a closed sum: the only implementations are Task and Prompt, and
// consumers dispatch with an exhaustive type switch.
type Operation interface {
	// OperationName returns the name identifying the operation within its namespace.
	OperationName() string
	// OperationKind returns the namespace the operation belongs to.
	OperationKind() Kind

	isOperation()
}

// Task is a reusable operation backed by an underlying command identifier.
type Task struct {
	Name        string // Identity within the task namespace
	Command     string // Underlying command identifier
	Template    string // Optional embedded prompt template
	Description string // Optional human description
}

// OperationName implements Operation.
func (t Task) OperationName() string { return t.Name }

// OperationKind implements Operation.
func (t Task) OperationKind() Kind { return KindTask }

func (t Task) isOperation() {}

// Prompt is a templated operation resolved from a prompt file, with the
// frontmatter already stripped from its body.
type Prompt struct {
	Name        string // Identity within the prompt namespace
	Body        string // Resolved body template
	Description string // Optional human description
	Meta        Meta   // Optional metadata from the frontmatter block
}

// Meta holds optional prompt metadata parsed from the frontmatter block.
type Meta struct {
	Author  string   // Prompt author
	Version string   // Prompt version
	Tags    []string // Free-form tags
	Models  []string // Preferred model identifiers
}

// OperationName implements Operation.
func (p Prompt) OperationName() string { return p.Name }

// OperationKind implements Operation.
func (p Prompt) OperationKind() Kind { return KindPrompt }

func (p Prompt) isOperation() {}
