// Command pentagon runs and drives the five-approach signal sequencer.
package main

import "github.com/sarchlab/pentagon/pentagon/cmd"

func main() {
	cmd.Execute()
}
