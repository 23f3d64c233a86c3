// Package domain defines the core domain types and interfaces.
//
// Shared types and cross-cutting contracts only, no implementation code.
// Keeping the interfaces here prevents circular imports between the comment
// source adapters and the monitor service consuming them.
package domain
