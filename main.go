// SPDX-License-Identifier: MPL-2.0

// Command beamskin builds BeamNG.drive skin mods.
package main

import cmd "github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/cmd/beamskin"

func main() {
	cmd.Execute()
}
