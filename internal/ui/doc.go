// Package ui renders todos in the terminal and hosts the interactive
// toggle picker and title prompt.
package ui
