// Package types defines the todo item entity, the Storage interface that
// backends implement, configuration, and the standard errors shared by the
// store, the storage backends, and the command-line front ends.
package types
