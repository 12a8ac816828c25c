package main

import (
	"fmt"

	"github.com/katiamach/ev-charging-analysis/internal/api"
	"github.com/katiamach/ev-charging-analysis/internal/logger"
)

func main() {
	err := api.Run()
	if err != nil {
		logger.Fatal(fmt.Errorf("failed to run ev charging analysis: %v", err))
	}
}
