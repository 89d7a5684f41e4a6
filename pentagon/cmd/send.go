package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type commandRsp struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

var sendCmd = &cobra.Command{
	Use:   "send <command>",
	Short: "Send an operator command to a running service.",
	Long: "`send '!order 4,3,2,1,0'` routes the command as if it were typed " +
		"on the serial console. Known commands are !pause, !resume, !status, " +
		"!order and !delay.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := strings.Join(args, " ")

		rsp := commandRsp{}
		err := postJSON(baseURL(cmd)+"/command", map[string]string{"command": raw}, &rsp)
		if err != nil {
			return err
		}

		if rsp.Status != "success" {
			return fmt.Errorf("command %q was not accepted", raw)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "sent %s\n", raw)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	addAddrFlag(sendCmd)
}
