// cubescene - Animated virtual 3x3x3 twisty puzzle with shuffles, a terminal
// player, and smart-cube input.
package main

import (
	"github.com/SeamusWaldron/cubescene/internal/cli"
)

func main() {
	cli.Execute()
}
