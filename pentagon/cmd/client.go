package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pentagon/config"
)

var httpClient = &http.Client{Timeout: 5 * time.Second}

func addAddrFlag(cmd *cobra.Command) {
	cmd.Flags().String("addr", config.DefaultAddr, "Address of the running service")
}

func baseURL(cmd *cobra.Command) string {
	addr, _ := cmd.Flags().GetString("addr")
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimSuffix(addr, "/")
	}

	return "http://" + addr
}

func getJSON(url string, v any) error {
	rsp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer rsp.Body.Close()

	return decodeResponse(rsp, v)
}

func postJSON(url string, body, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	rsp, err := httpClient.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer rsp.Body.Close()

	return decodeResponse(rsp, v)
}

func decodeResponse(rsp *http.Response, v any) error {
	if rsp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(rsp.Body)
		return fmt.Errorf("%s: %s", rsp.Status, strings.TrimSpace(string(msg)))
	}

	return json.NewDecoder(rsp.Body).Decode(v)
}
