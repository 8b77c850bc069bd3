package main

import (
	"os"

	"github.com/protektor-crm/orderdesk/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
