package main

import (
	"context"
	"os"

	"github.com/kiddoland/backend/internal/cli"
)

// @title KiddoLand API
// @version 1.0.0
// @description Age-aware story generation and rewriting for children, with bearer-token auth and a keyword safety filter.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := cli.RootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
