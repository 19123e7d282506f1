// Package display formats user-facing warnings for the command line.
//
// Display warnings with optional components:
//
//	warning := display.Warning{
//	    Title:      "3 files were skipped",
//	    Files:      []string{"data/monster/ghost.lua"},
//	    Suggestion: "Run 'monsterxml inspect <file>' to see what was extracted",
//	}
//	warning.Display(os.Stderr)
//
// Output is yellow when fatih/color detects a terminal and plain otherwise,
// so NO_COLOR is honored.
package display
