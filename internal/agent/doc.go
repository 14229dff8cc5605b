// Package agent exposes headless frames to MCP clients over stdio.
//
// Tools:
//
//	xyte_screens  tab order with operational flags
//	xyte_frame    one runtime frame for a screen, as JSON text
//	xyte_status   the screen runtime status snapshot
//
// Frames come from the same headless session the CLI uses, so a tool call
// returns exactly what `xytectl headless --screen` would print.
package agent
