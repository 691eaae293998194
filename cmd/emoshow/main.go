// Emo-Show controller: runs the game session, the robot command channel
// and the operator control panel.
package main

import (
	stdlog "log"

	"github.com/spf13/cobra"
)

const releaseVersion = "1.0.0"

func main() {
	stdlog.SetFlags(0)
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}
