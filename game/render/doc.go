// Package render draws FreeCell boards as text for the terminal player, logs
// and MCP tool output.
package render
