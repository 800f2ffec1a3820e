// Package textutil sanitizes generated file names so they are safe to create
// on common filesystems.
package textutil
