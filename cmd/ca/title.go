package main

// windowTitle is the viewer's window title for the named sim.
func windowTitle(sim string) string {
	return "antflock - " + sim
}
