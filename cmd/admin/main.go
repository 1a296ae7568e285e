package main

import (
	"os"

	"github.com/quochao170402/ecommerce-platform/internal/app"
)

func main() {
	os.Exit(app.Main(app.Admin))
}
