package main

import (
	"os"

	"github.com/dmitrijs2005/snipkeeper/internal/server"
)

func main() {
	os.Exit(server.Main())
}
